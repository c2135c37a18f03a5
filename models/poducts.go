package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is the catalog entry cart lines are priced from.
type Product struct {
	ID        string   `gorm:"primaryKey" json:"id"`
	Name      string   `gorm:"not null" json:"name"`
	Image     string   `json:"image"`
	Price     float64  `gorm:"not null" json:"price"` // Required
	Stock     int      `json:"stock"`
	Flavors   []string `gorm:"serializer:json" json:"flavors,omitempty"`
	Sizes     []string `gorm:"serializer:json" json:"sizes,omitempty"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// OffersVariant reports whether value is empty or one of the allowed options.
func OffersVariant(options []string, value string) bool {
	if value == "" || len(options) == 0 {
		return true
	}
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
