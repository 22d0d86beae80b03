// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns an identifier when the caller did not supply one.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Enums
type Role string

const (
	RoleGuest    Role = "guest"
	RoleUser     Role = "user"
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleUser, RoleCustomer, RoleAdmin:
		return true
	}
	return false
}

type ProductStatus string

const (
	ProductStatusOnline     ProductStatus = "online"
	ProductStatusPending    ProductStatus = "pending"
	ProductStatusOutOfStock ProductStatus = "out-of-stock"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusOnline, ProductStatusPending, ProductStatusOutOfStock:
		return true
	}
	return false
}

// Catalog limits
const (
	MaxGalleryImages     = 10
	MaxDescriptionImages = 20
	DefaultRating        = 5.0
)
