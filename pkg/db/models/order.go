package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zestraw/storefront-backend/pkg/enums"
	"github.com/zestraw/storefront-backend/pkg/types"
)

// Order is one placed checkout with its line items.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:text;primaryKey"`
	UserID          uuid.UUID           `gorm:"column:user_id;type:text;not null;index"`
	Status          enums.OrderStatus   `gorm:"column:status;not null;default:'placed'"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;not null"`
	SubtotalCents   int64               `gorm:"column:subtotal_cents;not null"`
	ShippingCents   int64               `gorm:"column:shipping_cents;not null;default:0"`
	TotalCents      int64               `gorm:"column:total_cents;not null"`
	ShippingAddress types.Address       `gorm:"column:shipping_address;not null"`
	LineItems       []OrderLineItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
