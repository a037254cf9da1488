package product

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zestraw/storefront-backend/pkg/db/models"
	"github.com/zestraw/storefront-backend/pkg/enums"
)

// ProductRepository defines the persistence operations the catalog needs.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListActive(ctx context.Context, category enums.ProductCategory) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	EnsureBySlug(ctx context.Context, product *models.Product) (*models.Product, bool, error)
}

// Repository implements ProductRepository over GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the product by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySlug loads the product by its unique slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListActive returns purchasable products in catalog order, optionally
// narrowed to one category.
func (r *Repository) ListActive(ctx context.Context, category enums.ProductCategory) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var products []models.Product
	if err := query.
		Order("created_at ASC, slug ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create inserts a new product.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// EnsureBySlug inserts the product unless one with the same slug already
// exists. It reports whether a row was created.
func (r *Repository) EnsureBySlug(ctx context.Context, product *models.Product) (*models.Product, bool, error) {
	var existing models.Product
	err := r.db.WithContext(ctx).First(&existing, "slug = ?", product.Slug).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, false, err
	}
	return product, true, nil
}
