// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Principal is the credential record of an account. Exactly one Principal exists per ID,
// and a seller or customer Principal shares its ID with the matching profile.
type Principal struct {
	ID          uuid.UUID `json:"id"`          // Shared identifier, equal to the paired profile's ID.
	Role        Role      `json:"role"`        // One of admin, seller, customer.
	DisplayName string    `json:"displayName"` // Name shown in the client.
	Email       string    `json:"email"`       // Login identifier, stored lowercase.
	SecretHash  string    `json:"-"`           // One-way hash of the password. Never serialized.
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NormalizeEmail lowercases and trims an email so that uniqueness and lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
