// Package domain defines the append-only audit record: one row per
// authorization decision, including denials.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
)

// Effect is the outcome class of an authorization decision.
type Effect string

const (
	EffectAllow    Effect = "allow"
	EffectDeny     Effect = "deny"
	EffectHardFail Effect = "hard_fail"
)

// Record is one authorization decision. OriginalPrincipalID differs from
// PrincipalID only while an impersonation is in effect.
type Record struct {
	ID                  uuid.UUID
	PrincipalID         uuid.UUID
	OriginalPrincipalID uuid.UUID
	CapabilityCode      string
	ScopeID             *uuid.UUID
	ResourceKey         string
	Effect              Effect
	Reason              string
	RequestID           string
	CreatedAt           time.Time
}

// ErrRecordNotFound indicates no audit record exists for the given ID.
var ErrRecordNotFound = apperrors.Wrap(apperrors.ErrNotFound, "audit record not found")
