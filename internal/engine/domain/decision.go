// Package domain defines the authorization decision types: the typed outcome of
// every authorize call, the request facts it is decided against, and the
// impersonation-aware authorization context.
package domain

import (
	"github.com/google/uuid"

	scopeDomain "github.com/glennballman/Community-Canvas-sub004/internal/scope/domain"
)

// Effect is the outcome class of a decision. HardFail is a denial that
// overrides any Allow computed upstream and aborts the call.
type Effect string

const (
	EffectAllow    Effect = "allow"
	EffectDeny     Effect = "deny"
	EffectHardFail Effect = "hard_fail"
)

// Reason codes. Expected denial paths are resolved inside the engine and
// returned as a typed decision; callers never see them as Go errors.
const (
	ReasonGranted                   = "GRANTED"
	ReasonNoPrincipal               = "NO_PRINCIPAL"
	ReasonUnknownCapability         = "UNKNOWN_CAPABILITY"
	ReasonCapabilityNotGranted      = "CAPABILITY_NOT_GRANTED"
	ReasonGrantExpired              = "GRANT_EXPIRED"
	ReasonGrantRevoked              = "GRANT_REVOKED"
	ReasonConditionNotMet           = "CONDITION_NOT_MET"
	ReasonUnknownConditionKey       = "UNKNOWN_CONDITION_KEY"
	ReasonResourceOwnershipMismatch = "RESOURCE_OWNERSHIP_MISMATCH"
	ReasonMachineSafetyUnmet        = "MACHINE_SAFETY_UNMET"
)

// Decision is the typed result of an authorize call.
type Decision struct {
	Effect Effect
	Reason string
}

// Allowed reports whether the decision permits the action.
func (d *Decision) Allowed() bool {
	return d.Effect == EffectAllow
}

// HardFailed reports whether the decision is a hard fail.
func (d *Decision) HardFailed() bool {
	return d.Effect == EffectHardFail
}

// Allow builds an Allow decision.
func Allow() *Decision {
	return &Decision{Effect: EffectAllow, Reason: ReasonGranted}
}

// Deny builds a Deny decision with a reason code.
func Deny(reason string) *Decision {
	return &Decision{Effect: EffectDeny, Reason: reason}
}

// HardFail builds a HardFail decision with a reason code.
func HardFail(reason string) *Decision {
	return &Decision{Effect: EffectHardFail, Reason: reason}
}

// RequestContext carries the request facts grant conditions and the ownership
// enforcer are evaluated against. The engine never reaches into ambient state
// for these.
type RequestContext struct {
	// AmountCents is the monetary amount of the request, when the caller has
	// one. Required to satisfy a max_amount_cents condition.
	AmountCents *int64
	// ResourceOwnerID is the owning principal of the target resource, when the
	// target is a resource. Required for own-qualified capability checks.
	ResourceOwnerID *uuid.UUID
	// RequestID correlates the decision with the inbound request in the audit
	// trail.
	RequestID string
}

// AuthorizeInput is one authorization question.
type AuthorizeInput struct {
	// SessionID selects the impersonation state the call runs under. Empty
	// means no session tracking: the principal acts as itself.
	SessionID      string
	PrincipalID    uuid.UUID
	CapabilityCode string
	ScopeRef       scopeDomain.Ref
	Request        RequestContext
}
