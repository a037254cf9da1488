package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbtypes "github.com/zestraw/storefront-backend/pkg/db/types"
	"github.com/zestraw/storefront-backend/pkg/enums"
)

// Product represents one catalog listing.
type Product struct {
	ID              uuid.UUID             `gorm:"column:id;type:text;primaryKey"`
	Slug            string                `gorm:"column:slug;not null;uniqueIndex"`
	Name            string                `gorm:"column:name;not null"`
	Category        enums.ProductCategory `gorm:"column:category;not null"`
	Description     string                `gorm:"column:description;not null;default:''"`
	PriceCents      int64                 `gorm:"column:price_cents;not null"`
	BulkPriceCents  int64                 `gorm:"column:bulk_price_cents;not null;default:0"`
	SizeLabel       string                `gorm:"column:size_label;not null;default:''"`
	Badge           string                `gorm:"column:badge;not null;default:''"`
	EcoScore        int64                 `gorm:"column:eco_score;not null;default:0"`
	Images          dbtypes.StringList    `gorm:"column:images;type:text;not null;default:'{}'"`
	SizeTiers       dbtypes.SizeTierList  `gorm:"column:size_tiers;type:text;not null;default:'[]'"`
	CarbonFootprint float64               `gorm:"column:carbon_footprint;not null;default:0"`
	PlasticUse      float64               `gorm:"column:plastic_use;not null;default:0"`
	PlasticAvoided  float64               `gorm:"column:plastic_avoided;not null;default:0"`
	Stock           int64                 `gorm:"column:stock;not null;default:0"`
	IsActive        bool                  `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
