package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderLineItem snapshots one cart line at the moment the order was placed.
type OrderLineItem struct {
	ID             uuid.UUID `gorm:"column:id;type:text;primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:text;not null;index"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:text;not null"`
	ProductName    string    `gorm:"column:product_name;not null"`
	Variant        string    `gorm:"column:variant;not null;default:''"`
	Image          string    `gorm:"column:image;not null;default:''"`
	UnitPriceCents int64     `gorm:"column:unit_price_cents;not null"`
	Quantity       int64     `gorm:"column:quantity;not null"`
}

func (i *OrderLineItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
