package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zestraw/storefront-backend/pkg/db"
	"github.com/zestraw/storefront-backend/pkg/enums"
	pkgerrors "github.com/zestraw/storefront-backend/pkg/errors"
)

// Service exposes catalog reads and the import path.
type Service interface {
	List(ctx context.Context, category string) ([]ProductDTO, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Import(ctx context.Context, raw RawProduct) (*ProductDTO, error)
}

type service struct {
	repo ProductRepository
}

// NewService builds a catalog service over the repository.
func NewService(repo ProductRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, category string) ([]ProductDTO, error) {
	var parsed enums.ProductCategory
	if category != "" {
		var err error
		parsed, err = enums.ParseProductCategory(category)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown category %q", category))
		}
	}

	products, err := s.repo.ListActive(ctx, parsed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, ToDTO(&products[i]))
	}
	return out, nil
}

func (s *service) GetDetail(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	model, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	dto := ToDTO(model)
	return &dto, nil
}

func (s *service) Import(ctx context.Context, raw RawProduct) (*ProductDTO, error) {
	model, err := raw.Normalize()
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, model)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("product %q already exists", model.Slug))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	dto := ToDTO(created)
	return &dto, nil
}
