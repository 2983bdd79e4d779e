package entity

import (
	"time"

	"github.com/google/uuid"
)

// SellerStatus is the approval state of a seller profile.
type SellerStatus string

const (
	SellerStatusPending  SellerStatus = "Pending"
	SellerStatusApproved SellerStatus = "Approved"
	SellerStatusRejected SellerStatus = "Rejected"
)

// IsValid checks if the SellerStatus is a valid value.
func (s SellerStatus) IsValid() bool {
	switch s {
	case SellerStatusPending, SellerStatusApproved, SellerStatusRejected:
		return true
	default:
		return false
	}
}

// SocialLinks holds optional public profile links of a seller.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// BusinessInfo describes the agency a seller works for, if any.
type BusinessInfo struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Website string `json:"website,omitempty"`
}

// SellerProfile holds data specific to the seller role. Its ID equals the ID of a seller Principal.
type SellerProfile struct {
	ID                 uuid.UUID     `json:"id"`
	FirstName          string        `json:"firstName"`
	LastName           string        `json:"lastName"`
	Email              string        `json:"email"`
	Phone              string        `json:"phone"`
	IdentificationDoc  string        `json:"identificationDoc"`
	ProfilePicture     string        `json:"profilePicture,omitempty"`
	Bio                string        `json:"bio,omitempty"`
	SocialLinks        *SocialLinks  `json:"socialLinks,omitempty"`
	PreferredLanguages []string      `json:"preferredLanguages"`
	Business           *BusinessInfo `json:"business,omitempty"`
	Username           string        `json:"username"`
	Status             SellerStatus  `json:"status"`
	RegisteredAt       time.Time     `json:"registeredAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// FullName joins the first and last name.
func (s *SellerProfile) FullName() string {
	return joinName(s.FirstName, s.LastName)
}
