// Package domain defines grants: the records that attach roles or capabilities
// to principals at scopes, plus per-resource capability grants.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
)

// Grant attaches exactly one role or one capability to a principal at a scope.
// The grant applies at the scope and everything beneath it. Expiry and
// revocation are kept as timestamps, never deletions, so the evaluator can
// report GRANT_EXPIRED and GRANT_REVOKED distinctly and audits stay explainable.
type Grant struct {
	ID          uuid.UUID
	PrincipalID uuid.UUID
	ScopeID     uuid.UUID
	// RoleName XOR CapabilityCode: exactly one is set.
	RoleName       *string
	CapabilityCode *string
	// Conditions is the raw JSON condition payload, decoded at evaluation time.
	// Stored opaque: a payload with a key this binary does not recognize must
	// hard-fail evaluation, not be rejected into nonexistence here.
	Conditions json.RawMessage
	ExpiresAt  *time.Time
	RevokedAt  *time.Time
	CreatedAt  time.Time
}

// Expired reports whether the grant's expiry has passed.
func (g *Grant) Expired(now time.Time) bool {
	return g.ExpiresAt != nil && !now.Before(*g.ExpiresAt)
}

// Revoked reports whether the grant has been revoked.
func (g *Grant) Revoked() bool {
	return g.RevokedAt != nil
}

// Active reports whether the grant currently applies.
func (g *Grant) Active(now time.Time) bool {
	return !g.Revoked() && !g.Expired(now)
}

// ResourceGrant gives a principal a capability on one specific resource,
// independent of ownership. It is how "own"-qualified capabilities reach
// resources the principal does not own.
type ResourceGrant struct {
	ID          uuid.UUID
	PrincipalID uuid.UUID
	// ScopeID points at the resource-level scope node.
	ScopeID        uuid.UUID
	CapabilityCode string
	RevokedAt      *time.Time
	CreatedAt      time.Time
}

// Active reports whether the resource grant currently applies.
func (g *ResourceGrant) Active() bool {
	return g.RevokedAt == nil
}

// Grant errors.
var (
	// ErrGrantNotFound indicates no grant exists for the given ID.
	ErrGrantNotFound = apperrors.Wrap(apperrors.ErrNotFound, "grant not found")

	// ErrGrantAlreadyRevoked indicates the grant was revoked before this call.
	ErrGrantAlreadyRevoked = apperrors.Wrap(apperrors.ErrConflict, "grant already revoked")

	// ErrRoleXorCapability indicates a grant naming both or neither of role and
	// capability.
	ErrRoleXorCapability = apperrors.Wrap(
		apperrors.ErrInvalidInput, "grant must name exactly one of role or capability")
)
