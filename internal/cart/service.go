package cart

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/zestraw/storefront-backend/pkg/errors"
	"github.com/zestraw/storefront-backend/pkg/types"
)

// Snapshot is the cart state returned after every read or mutation.
type Snapshot struct {
	Items      []LineItem  `json:"items"`
	TotalItems int64       `json:"totalItems"`
	Subtotal   types.Money `json:"subtotal"`
}

// AddItemInput carries the descriptor for a line being added.
type AddItemInput struct {
	ProductID      string                       `json:"id" validate:"required"`
	Name           string                       `json:"name" validate:"required"`
	PriceCents     int64                        `json:"priceCents" validate:"gte=0"`
	Image          string                       `json:"image"`
	Category       string                       `json:"category"`
	Variant        string                       `json:"size"`
	Quantity       int64                        `json:"quantity"`
	Sustainability *types.SustainabilityMetrics `json:"sustainabilityMetrics"`
}

// Service exposes per-owner cart operations. The owner is a user ID for
// signed-in customers or an opaque cart key header for guests.
type Service interface {
	Get(ctx context.Context, owner string) (*Snapshot, error)
	Add(ctx context.Context, owner string, input AddItemInput) (*Snapshot, error)
	UpdateQuantity(ctx context.Context, owner, productID, variant string, quantity int64) (*Snapshot, error)
	Remove(ctx context.Context, owner, productID, variant string) (*Snapshot, error)
	Clear(ctx context.Context, owner string) (*Snapshot, error)
}

type service struct {
	store Store
}

// NewService builds a cart service over the provided store.
func NewService(store Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	return &service{store: store}, nil
}

func (s *service) Get(ctx context.Context, owner string) (*Snapshot, error) {
	engine, err := s.hydrate(ctx, owner)
	if err != nil {
		return nil, err
	}
	return snapshot(engine), nil
}

func (s *service) Add(ctx context.Context, owner string, input AddItemInput) (*Snapshot, error) {
	if strings.TrimSpace(input.ProductID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}

	engine, err := s.hydrate(ctx, owner)
	if err != nil {
		return nil, err
	}
	engine.Add(LineItem{
		ProductID:      input.ProductID,
		Name:           input.Name,
		PriceCents:     input.PriceCents,
		Image:          input.Image,
		Category:       input.Category,
		Variant:        input.Variant,
		Sustainability: input.Sustainability,
	}, input.Quantity)

	return s.persist(ctx, owner, engine)
}

func (s *service) UpdateQuantity(ctx context.Context, owner, productID, variant string, quantity int64) (*Snapshot, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	engine, err := s.hydrate(ctx, owner)
	if err != nil {
		return nil, err
	}
	engine.SetQuantity(productID, quantity, variant)
	return s.persist(ctx, owner, engine)
}

func (s *service) Remove(ctx context.Context, owner, productID, variant string) (*Snapshot, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	engine, err := s.hydrate(ctx, owner)
	if err != nil {
		return nil, err
	}
	engine.Remove(productID, variant)
	return s.persist(ctx, owner, engine)
}

func (s *service) Clear(ctx context.Context, owner string) (*Snapshot, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}
	engine := NewCart(nil)
	if err := s.store.Drop(ctx, owner); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
	}
	return snapshot(engine), nil
}

func (s *service) hydrate(ctx context.Context, owner string) (*Cart, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}
	items, err := s.store.Load(ctx, owner)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}
	return NewCart(items), nil
}

func (s *service) persist(ctx context.Context, owner string, engine *Cart) (*Snapshot, error) {
	if err := s.store.Save(ctx, owner, engine.Items()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return snapshot(engine), nil
}

func validateOwner(owner string) error {
	if strings.TrimSpace(owner) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart owner is required")
	}
	return nil
}

func snapshot(engine *Cart) *Snapshot {
	return &Snapshot{
		Items:      engine.Items(),
		TotalItems: engine.TotalItems(),
		Subtotal:   types.NewMoney(engine.SubtotalCents()),
	}
}
