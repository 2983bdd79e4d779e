package model

import (
	"time"

	"github.com/google/uuid"
)

// SellerSocialLinks is stored as a JSON column.
type SellerSocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// SellerBusiness is stored as a JSON column.
type SellerBusiness struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Website string `json:"website,omitempty"`
}

// SellerProfileModel mirrors the 'sellers' table. ID references principals.id.
type SellerProfileModel struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey"`
	FirstName          string             `gorm:"type:varchar(100);not null"`
	LastName           string             `gorm:"type:varchar(100);not null"`
	Email              string             `gorm:"type:varchar(255);not null;uniqueIndex:uq_sellers_email"`
	Phone              string             `gorm:"type:varchar(50);not null"`
	IdentificationDoc  string             `gorm:"type:text;not null"`
	ProfilePicture     string             `gorm:"type:text"`
	Bio                string             `gorm:"type:text"`
	SocialLinks        *SellerSocialLinks `gorm:"type:jsonb;serializer:json"`
	PreferredLanguages []string           `gorm:"type:jsonb;serializer:json"`
	Business           *SellerBusiness    `gorm:"type:jsonb;serializer:json"`
	Username           string             `gorm:"type:varchar(100);not null;uniqueIndex:uq_sellers_username"`
	Status             string             `gorm:"type:varchar(16);not null;index"`
	RegisteredAt       time.Time          `gorm:"not null;index"`
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (SellerProfileModel) TableName() string {
	return "sellers"
}

// CustomerProfileModel mirrors the 'customers' table. ID references principals.id.
type CustomerProfileModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName    string    `gorm:"type:varchar(100)"`
	LastName     string    `gorm:"type:varchar(100)"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_customers_email"`
	Phone        string    `gorm:"type:varchar(50)"`
	Address      string    `gorm:"type:text"`
	Interests    []string  `gorm:"type:jsonb;serializer:json"`
	RegisteredAt time.Time `gorm:"not null;index"`
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerProfileModel) TableName() string {
	return "customers"
}
