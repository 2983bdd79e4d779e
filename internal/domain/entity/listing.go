package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PropertyType classifies a listing.
type PropertyType string

const (
	PropertyTypeResidential PropertyType = "Residential"
	PropertyTypeCommercial  PropertyType = "Commercial"
	PropertyTypeIndustrial  PropertyType = "Industrial"
)

// IsValid checks if the PropertyType is a valid value.
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeResidential, PropertyTypeCommercial, PropertyTypeIndustrial:
		return true
	default:
		return false
	}
}

// ListingAddress is the postal address of a property.
type ListingAddress struct {
	House      string `json:"house"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// Listing is a property record owned by a seller profile.
type Listing struct {
	ID            uuid.UUID      `json:"id"`
	Title         string         `json:"title"`
	Type          PropertyType   `json:"type"`
	Description   string         `json:"description"`
	Address       ListingAddress `json:"address"`
	ForSale       bool           `json:"forSale"`
	Price         float64        `json:"price"`
	DiscountPrice *float64       `json:"discountPrice,omitempty"`
	Beds          *int           `json:"beds,omitempty"`
	Baths         *int           `json:"baths,omitempty"`
	ParkingSpot   bool           `json:"parkingSpot"`
	Furnished     bool           `json:"furnished"`
	Images        []string       `json:"images"`
	OwnerID       uuid.UUID      `json:"ownerId"` // References SellerProfile.ID.
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// ListingFilter narrows a listing query. A nil field places no constraint on that field.
type ListingFilter struct {
	Type     *PropertyType
	City     *string // Case-insensitive substring of Address.City.
	MinPrice *float64
	MaxPrice *float64
	ForSale  *bool
	OwnerID  *uuid.UUID
	MinBeds  *int
	MinBaths *int
}

// Page bounds a list query. A zero Limit returns every match after Offset.
type Page struct {
	Limit  int
	Offset int
}

// Matches reports whether the listing satisfies every constraint of the filter.
func (f ListingFilter) Matches(l *Listing) bool {
	if f.Type != nil && l.Type != *f.Type {
		return false
	}
	if f.City != nil && !containsFold(l.Address.City, *f.City) {
		return false
	}
	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	if f.ForSale != nil && l.ForSale != *f.ForSale {
		return false
	}
	if f.OwnerID != nil && l.OwnerID != *f.OwnerID {
		return false
	}
	if f.MinBeds != nil && (l.Beds == nil || *l.Beds < *f.MinBeds) {
		return false
	}
	if f.MinBaths != nil && (l.Baths == nil || *l.Baths < *f.MinBaths) {
		return false
	}

	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
