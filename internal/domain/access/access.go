// Package access decides whether a principal may perform an operation on a resource.
// Every authorization check in the application goes through CanAccess.
package access

import (
	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"

	"github.com/google/uuid"
)

// Principal is the resolved caller of an operation.
type Principal struct {
	ID   uuid.UUID
	Role entity.Role
}

// IsAdmin reports whether the principal holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == entity.RoleAdmin
}

// ResourceKind names the kind of entity being accessed.
type ResourceKind string

const (
	KindPrincipal    ResourceKind = "principal"
	KindSeller       ResourceKind = "seller"
	KindCustomer     ResourceKind = "customer"
	KindListing      ResourceKind = "listing"
	KindConversation ResourceKind = "conversation"
)

// Operation names what the principal wants to do with the resource.
type Operation string

const (
	OpRead               Operation = "read"
	OpList               Operation = "list"
	OpCreate             Operation = "create"
	OpUpdate             Operation = "update"
	OpDelete             Operation = "delete"
	OpUpdateStatus       Operation = "updateStatus"
	OpUpdateAvailability Operation = "updateAvailability"
	OpAppend             Operation = "append"
)

// Resource identifies the target of an operation. OwnerID is the id of the owning
// principal and is the zero UUID for collection-level operations.
type Resource struct {
	Kind    ResourceKind
	OwnerID uuid.UUID
}

// DenyReason explains a negative decision.
type DenyReason string

const (
	ReasonNone            DenyReason = ""
	ReasonUnauthenticated DenyReason = "unauthenticated"
	ReasonForbidden       DenyReason = "forbidden"
)

// Decision is the outcome of an access check.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Err converts a negative decision into the matching domain error, or nil when allowed.
func (d Decision) Err() error {
	switch {
	case d.Allowed:
		return nil
	case d.Reason == ReasonUnauthenticated:
		return domainerrors.ErrAuthenticationRequired
	default:
		return domainerrors.ErrAuthorizationDenied
	}
}

type rule func(p *Principal, res Resource) bool

type ruleKey struct {
	kind ResourceKind
	op   Operation
}

func selfOrAdmin(p *Principal, res Resource) bool {
	return p.IsAdmin() || p.ID == res.OwnerID
}

func listingOwnerOrAdmin(p *Principal, res Resource) bool {
	return p.IsAdmin() || (p.Role == entity.RoleSeller && p.ID == res.OwnerID)
}

func roleGate(roles ...entity.Role) rule {
	allowed := entity.Roles(roles)

	return func(p *Principal, _ Resource) bool {
		return allowed.Contains(p.Role)
	}
}

var rules = map[ruleKey]rule{
	{KindPrincipal, OpRead}:   selfOrAdmin,
	{KindPrincipal, OpUpdate}: selfOrAdmin,
	{KindPrincipal, OpDelete}: selfOrAdmin,
	{KindPrincipal, OpList}:   roleGate(entity.RoleAdmin),
	{KindPrincipal, OpCreate}: roleGate(entity.RoleAdmin),

	{KindSeller, OpRead}:         selfOrAdmin,
	{KindSeller, OpUpdate}:       selfOrAdmin,
	{KindSeller, OpDelete}:       selfOrAdmin,
	{KindSeller, OpList}:         roleGate(entity.RoleAdmin),
	{KindSeller, OpUpdateStatus}: roleGate(entity.RoleAdmin),

	{KindCustomer, OpRead}:   selfOrAdmin,
	{KindCustomer, OpUpdate}: selfOrAdmin,
	{KindCustomer, OpDelete}: selfOrAdmin,
	{KindCustomer, OpList}:   roleGate(entity.RoleAdmin),

	{KindListing, OpCreate}:             roleGate(entity.RoleSeller, entity.RoleAdmin),
	{KindListing, OpUpdate}:             listingOwnerOrAdmin,
	{KindListing, OpUpdateAvailability}: listingOwnerOrAdmin,
	{KindListing, OpDelete}:             listingOwnerOrAdmin,

	{KindConversation, OpCreate}: roleGate(entity.RoleAdmin, entity.RoleSeller, entity.RoleCustomer),
	{KindConversation, OpRead}:   selfOrAdmin,
	{KindConversation, OpList}:   selfOrAdmin,
	{KindConversation, OpAppend}: selfOrAdmin,
	{KindConversation, OpDelete}: selfOrAdmin,
}

// CanAccess evaluates the rule for the (kind, operation) pair. A nil principal is
// always unauthenticated; pairs without a rule are forbidden.
func CanAccess(p *Principal, op Operation, res Resource) Decision {
	if p == nil {
		return Decision{Reason: ReasonUnauthenticated}
	}

	check, ok := rules[ruleKey{res.Kind, op}]
	if !ok || !check(p, res) {
		return Decision{Reason: ReasonForbidden}
	}

	return Decision{Allowed: true}
}

// Authorize is CanAccess returning the decision as an error.
func Authorize(p *Principal, op Operation, res Resource) error {
	return CanAccess(p, op, res).Err()
}
