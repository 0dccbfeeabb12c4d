package usecase

import (
	"context"

	"github.com/google/uuid"

	engineDomain "github.com/glennballman/Community-Canvas-sub004/internal/engine/domain"
	grantDomain "github.com/glennballman/Community-Canvas-sub004/internal/grant/domain"
	principalDomain "github.com/glennballman/Community-Canvas-sub004/internal/principal/domain"
	scopeDomain "github.com/glennballman/Community-Canvas-sub004/internal/scope/domain"
)

// PrincipalReader is the slice of the principal module the engine consumes.
type PrincipalReader interface {
	Get(ctx context.Context, principalID uuid.UUID) (*principalDomain.Principal, error)
}

// ScopeReader is the slice of the scope module the engine consumes.
type ScopeReader interface {
	Resolve(ctx context.Context, ref scopeDomain.Ref) (*scopeDomain.Scope, error)
	Chain(ctx context.Context, scopeID uuid.UUID) ([]*scopeDomain.Scope, error)
}

// GrantReader is the slice of the grant module the engine consumes. The list
// includes revoked and expired grants so denial reasons stay precise.
type GrantReader interface {
	ListForPrincipalInScopes(ctx context.Context, principalID uuid.UUID, scopeIDs []uuid.UUID) ([]*grantDomain.Grant, error)
}

// ResourceGrantReader checks explicit per-resource grants.
type ResourceGrantReader interface {
	Exists(ctx context.Context, principalID, scopeID uuid.UUID, capabilityCode string) (bool, error)
}

// SafetyReader supplies the machine safety gate's ground truth.
type SafetyReader interface {
	HasActiveSupervisedSession(ctx context.Context, principalID uuid.UUID) (bool, error)
	CurrentCertificationCodes(ctx context.Context, principalID uuid.UUID) ([]string, error)
}

// AuditRecorder receives every decision before it is returned.
type AuditRecorder interface {
	Record(input RecordedDecision)
}

// RecordedDecision mirrors the audit module's record input. Defined here so the
// engine depends on a narrow local contract rather than the audit package's
// full surface.
type RecordedDecision struct {
	PrincipalID         uuid.UUID
	OriginalPrincipalID uuid.UUID
	CapabilityCode      string
	ScopeID             *uuid.UUID
	ResourceKey         string
	Effect              engineDomain.Effect
	Reason              string
	RequestID           string
}

// Engine defines the authorization operations.
type Engine interface {
	// Authorize answers one authorization question. Expected denials come back
	// as a Decision; only infrastructure faults return an error, and callers
	// must treat those as Deny.
	Authorize(ctx context.Context, input engineDomain.AuthorizeInput) (*engineDomain.Decision, error)
	// ListEffectiveCapabilities reports the capability codes a principal holds
	// at a scope. Advisory, for UI rendering; every action is still authorized
	// server-side per call.
	ListEffectiveCapabilities(ctx context.Context, principalID uuid.UUID, ref scopeDomain.Ref) ([]string, error)
}

// Impersonation defines the impersonation state machine. Starting substitutes
// the acting principal for a session; stopping replaces the state with normal.
type Impersonation interface {
	Start(ctx context.Context, sessionID string, originalID, impersonatedID uuid.UUID) error
	Stop(ctx context.Context, sessionID string) error
	// Acting resolves the authorization context a session's calls run under.
	Acting(sessionID string, principalID uuid.UUID) engineDomain.AuthContext
}
