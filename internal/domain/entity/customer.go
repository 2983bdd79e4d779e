package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CustomerProfile holds data specific to the customer role. Its ID equals the ID of a customer Principal.
type CustomerProfile struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address,omitempty"`
	Interests    []string  `json:"interests,omitempty"`
	RegisteredAt time.Time `json:"registeredAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FullName joins the first and last name.
func (c *CustomerProfile) FullName() string {
	return joinName(c.FirstName, c.LastName)
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
