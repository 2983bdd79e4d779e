// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import "estate/internal/errors"

// Domain-specific persistence errors.
// This allows the application layer to handle specific outcomes without depending on driver-specific errors.
var (
	// ErrPrincipalNotFound is returned when no principal matches the lookup.
	ErrPrincipalNotFound = errors.New("principal not found")
	// ErrSellerNotFound is returned when no seller profile matches the lookup.
	ErrSellerNotFound = errors.New("seller profile not found")
	// ErrCustomerNotFound is returned when no customer profile matches the lookup.
	ErrCustomerNotFound = errors.New("customer profile not found")
	// ErrListingNotFound is returned when no listing matches the lookup.
	ErrListingNotFound = errors.New("listing not found")
	// ErrConversationNotFound is returned when no conversation matches the lookup.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrDuplicateEmail is returned when a unique email index rejects a write.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrDuplicateUsername is returned when a unique username index rejects a write.
	ErrDuplicateUsername = errors.New("username already exists")
)
