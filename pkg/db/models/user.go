package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zestraw/storefront-backend/pkg/types"
)

// User represents a storefront customer account.
type User struct {
	ID            uuid.UUID      `gorm:"column:id;type:text;primaryKey"`
	Name          string         `gorm:"column:name;not null"`
	Email         string         `gorm:"column:email;not null;uniqueIndex"`
	Phone         *string        `gorm:"column:phone"`
	PhoneVerified bool           `gorm:"column:phone_verified;not null;default:false"`
	PasswordHash  string         `gorm:"column:password_hash;not null"`
	Address       *types.Address `gorm:"column:address"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
