// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"strings"
)

// Role represents the type of role a principal can have in the system.
type Role string

const (
	// RoleAdmin can manage every account, listing and conversation.
	RoleAdmin Role = "admin"
	// RoleSeller owns listings and a seller profile.
	RoleSeller Role = "seller"
	// RoleCustomer browses listings and owns a customer profile.
	RoleCustomer Role = "customer"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleCustomer:
		return true
	default:
		return false
	}
}

// HasProfile reports whether principals of this role are paired with a profile record.
func (r Role) HasProfile() bool {
	return r == RoleSeller || r == RoleCustomer
}

// ParseRole converts a string to a Role, returning false if it is not a known role.
func ParseRole(s string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))

	return role, role.IsValid()
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}
