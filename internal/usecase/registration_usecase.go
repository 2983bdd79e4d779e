// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"estate/internal/domain/access"
	"estate/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SellerProfileFields are the profile attributes supplied when a seller account is created.
type SellerProfileFields struct {
	FirstName          string
	LastName           string
	Phone              string
	IdentificationDoc  string
	ProfilePicture     string
	Bio                string
	SocialLinks        *entity.SocialLinks
	PreferredLanguages []string
	Business           *entity.BusinessInfo
	Username           string
}

// CustomerProfileFields are the profile attributes supplied when a customer account is created.
type CustomerProfileFields struct {
	FirstName string
	LastName  string
	Phone     string
	Address   string
	Interests []string
}

// RegisterSellerInput defines the data required for seller self-registration.
type RegisterSellerInput struct {
	Email    string
	Password string
	Profile  SellerProfileFields
}

// RegisterCustomerInput defines the data required for customer self-registration.
// DisplayName is optional and defaults to the customer's full name.
type RegisterCustomerInput struct {
	Email       string
	Password    string
	DisplayName string
	Profile     CustomerProfileFields
}

// CreatePrincipalInput defines an admin-issued account. Profile fields are optional;
// when present for the matching role, the profile is created in the same transaction.
type CreatePrincipalInput struct {
	Role            entity.Role
	DisplayName     string
	Email           string
	Password        string
	SellerProfile   *SellerProfileFields
	CustomerProfile *CustomerProfileFields
}

// --- Output DTOs ---

// RegisterSellerOutput returns the created pair.
type RegisterSellerOutput struct {
	ProfileID uuid.UUID
	Status    entity.SellerStatus
	Principal *entity.Principal
	Profile   *entity.SellerProfile
}

// RegisterCustomerOutput returns the created pair.
type RegisterCustomerOutput struct {
	ProfileID uuid.UUID
	Principal *entity.Principal
	Profile   *entity.CustomerProfile
}

// RegistrationUsecase creates and destroys accounts. Every operation writes the
// principal and its profile in a single transaction.
type RegistrationUsecase interface {
	RegisterSeller(ctx context.Context, input RegisterSellerInput) (*RegisterSellerOutput, error)
	RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*RegisterCustomerOutput, error)
	CreatePrincipal(ctx context.Context, actor *access.Principal, input CreatePrincipalInput) (*entity.Principal, error)

	// DeleteAccount removes the principal identified by id together with its profile, listings and conversations.
	// kind selects which collection the caller addressed and therefore which not-found error applies.
	DeleteAccount(ctx context.Context, actor *access.Principal, kind access.ResourceKind, id uuid.UUID) error

	// EnsureAdmin creates an administrator unless a principal already uses the email.
	EnsureAdmin(ctx context.Context, email, password, displayName string) (created bool, err error)
}
