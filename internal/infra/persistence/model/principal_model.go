// Package model holds the GORM persistence models. They mirror the domain entities
// column by column and are mapped to and from them by the postgres repositories.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Unique constraint names. The repositories inspect them to tell an email clash from a username clash.
const (
	UniquePrincipalEmail = "uq_principals_email"
	UniqueSellerEmail    = "uq_sellers_email"
	UniqueSellerUsername = "uq_sellers_username"
	UniqueCustomerEmail  = "uq_customers_email"
)

// PrincipalModel mirrors the 'principals' table.
type PrincipalModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role        string    `gorm:"type:varchar(16);not null;index"`
	DisplayName string    `gorm:"type:varchar(200);not null"`
	Email       string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_principals_email"`
	SecretHash  string    `gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (PrincipalModel) TableName() string {
	return "principals"
}
