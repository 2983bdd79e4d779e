package model

import (
	"time"

	"github.com/google/uuid"
)

// ListingAddressModel is embedded into the listings table with an address_ prefix.
type ListingAddressModel struct {
	House      string `gorm:"type:varchar(50)"`
	Street     string `gorm:"type:varchar(200)"`
	City       string `gorm:"type:varchar(100);index"`
	PostalCode string `gorm:"type:varchar(20)"`
}

// ListingModel mirrors the 'listings' table. OwnerID references sellers.id.
type ListingModel struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Title         string              `gorm:"type:varchar(200);not null"`
	Type          string              `gorm:"type:varchar(16);not null;index"`
	Description   string              `gorm:"type:text"`
	Address       ListingAddressModel `gorm:"embedded;embeddedPrefix:address_"`
	ForSale       bool                `gorm:"not null;index"`
	Price         float64             `gorm:"not null;index"`
	DiscountPrice *float64
	Beds          *int
	Baths         *int
	ParkingSpot   bool
	Furnished     bool
	Images        []string  `gorm:"type:jsonb;serializer:json;not null"`
	OwnerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time `gorm:"not null;index"`
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (ListingModel) TableName() string {
	return "listings"
}
