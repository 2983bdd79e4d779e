package access

import (
	"testing"

	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanAccess(t *testing.T) {
	admin := &Principal{ID: uuid.New(), Role: entity.RoleAdmin}
	sellerA := &Principal{ID: uuid.New(), Role: entity.RoleSeller}
	sellerB := &Principal{ID: uuid.New(), Role: entity.RoleSeller}
	customer := &Principal{ID: uuid.New(), Role: entity.RoleCustomer}
	otherCustomer := &Principal{ID: uuid.New(), Role: entity.RoleCustomer}

	tests := []struct {
		name      string
		principal *Principal
		op        Operation
		res       Resource
		allowed   bool
		reason    DenyReason
	}{
		{"no principal", nil, OpRead, Resource{Kind: KindCustomer, OwnerID: customer.ID}, false, ReasonUnauthenticated},
		{"customer reads self", customer, OpRead, Resource{Kind: KindCustomer, OwnerID: customer.ID}, true, ReasonNone},
		{"customer reads other customer", customer, OpRead, Resource{Kind: KindCustomer, OwnerID: otherCustomer.ID}, false, ReasonForbidden},
		{"admin reads any customer", admin, OpRead, Resource{Kind: KindCustomer, OwnerID: customer.ID}, true, ReasonNone},
		{"customer lists customers", customer, OpList, Resource{Kind: KindCustomer}, false, ReasonForbidden},
		{"admin lists sellers", admin, OpList, Resource{Kind: KindSeller}, true, ReasonNone},
		{"seller updates own status", sellerA, OpUpdateStatus, Resource{Kind: KindSeller, OwnerID: sellerA.ID}, false, ReasonForbidden},
		{"admin updates seller status", admin, OpUpdateStatus, Resource{Kind: KindSeller, OwnerID: sellerA.ID}, true, ReasonNone},
		{"seller creates listing", sellerA, OpCreate, Resource{Kind: KindListing}, true, ReasonNone},
		{"customer creates listing", customer, OpCreate, Resource{Kind: KindListing}, false, ReasonForbidden},
		{"seller updates own listing", sellerA, OpUpdate, Resource{Kind: KindListing, OwnerID: sellerA.ID}, true, ReasonNone},
		{"seller updates foreign listing", sellerB, OpUpdate, Resource{Kind: KindListing, OwnerID: sellerA.ID}, false, ReasonForbidden},
		{"seller deletes foreign listing", sellerB, OpDelete, Resource{Kind: KindListing, OwnerID: sellerA.ID}, false, ReasonForbidden},
		{"admin deletes any listing", admin, OpDelete, Resource{Kind: KindListing, OwnerID: sellerA.ID}, true, ReasonNone},
		{"customer with matching id cannot edit listing", customer, OpUpdate, Resource{Kind: KindListing, OwnerID: customer.ID}, false, ReasonForbidden},
		{"owner toggles availability", sellerA, OpUpdateAvailability, Resource{Kind: KindListing, OwnerID: sellerA.ID}, true, ReasonNone},
		{"customer opens chat", customer, OpCreate, Resource{Kind: KindConversation}, true, ReasonNone},
		{"customer appends to own chat", customer, OpAppend, Resource{Kind: KindConversation, OwnerID: customer.ID}, true, ReasonNone},
		{"customer appends to foreign chat", customer, OpAppend, Resource{Kind: KindConversation, OwnerID: sellerA.ID}, false, ReasonForbidden},
		{"admin reads foreign chat", admin, OpRead, Resource{Kind: KindConversation, OwnerID: sellerA.ID}, true, ReasonNone},
		{"customer creates principal", customer, OpCreate, Resource{Kind: KindPrincipal}, false, ReasonForbidden},
		{"unknown pair is denied", admin, OpAppend, Resource{Kind: KindListing}, false, ReasonForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := CanAccess(tt.principal, tt.op, tt.res)
			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.Equal(t, tt.reason, decision.Reason)
		})
	}
}

func TestDecision_Err(t *testing.T) {
	assert.NoError(t, Decision{Allowed: true}.Err())
	assert.True(t, errors.Is(Decision{Reason: ReasonUnauthenticated}.Err(), domainerrors.ErrAuthenticationRequired))
	assert.True(t, errors.Is(Decision{Reason: ReasonForbidden}.Err(), domainerrors.ErrAuthorizationDenied))
}

func TestAuthorize(t *testing.T) {
	seller := &Principal{ID: uuid.New(), Role: entity.RoleSeller}

	err := Authorize(seller, OpList, Resource{Kind: KindPrincipal})
	assert.Equal(t, domainerrors.KindAuthorizationDenied, domainerrors.KindOf(err))
	assert.NoError(t, Authorize(seller, OpRead, Resource{Kind: KindPrincipal, OwnerID: seller.ID}))
}
