package domain

import (
	"github.com/google/uuid"

	catalogDomain "github.com/glennballman/Community-Canvas-sub004/internal/catalog/domain"
)

// RestrictToOwned applies the own/all rule for a resource-scoped check. An
// all-qualified capability is unconditionally allowed within scope. An
// own-qualified capability is allowed only when the principal owns the resource
// or an explicit resource grant names this principal and resource. Pure: the
// caller supplies every fact.
func RestrictToOwned(
	principalID uuid.UUID,
	capability catalogDomain.Capability,
	resourceOwnerID *uuid.UUID,
	hasResourceGrant bool,
) *Decision {
	switch capability.Qualifier {
	case catalogDomain.QualifierAll, catalogDomain.QualifierNone:
		return Allow()
	case catalogDomain.QualifierOwn:
		if resourceOwnerID != nil && *resourceOwnerID == principalID {
			return Allow()
		}
		if hasResourceGrant {
			return Allow()
		}
		return Deny(ReasonResourceOwnershipMismatch)
	default:
		return Deny(ReasonResourceOwnershipMismatch)
	}
}

// OwnershipFilter is the predicate form of RestrictToOwned for list endpoints.
// Listing code must restrict queries with this predicate, not post-filter
// results for display.
type OwnershipFilter struct {
	PrincipalID uuid.UUID
	Capability  catalogDomain.Capability
	// GrantedResourceScopeIDs holds the resource scope nodes explicit resource
	// grants give this principal for the capability.
	GrantedResourceScopeIDs []uuid.UUID
}

// Unrestricted reports whether the filter passes everything in scope.
func (f OwnershipFilter) Unrestricted() bool {
	return f.Capability.Qualifier != catalogDomain.QualifierOwn
}

// Matches reports whether one resource passes the filter.
func (f OwnershipFilter) Matches(resourceOwnerID uuid.UUID, resourceScopeID uuid.UUID) bool {
	if f.Unrestricted() {
		return true
	}
	if resourceOwnerID == f.PrincipalID {
		return true
	}
	for _, id := range f.GrantedResourceScopeIDs {
		if id == resourceScopeID {
			return true
		}
	}
	return false
}
