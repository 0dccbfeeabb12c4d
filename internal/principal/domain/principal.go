// Package domain defines principals: the unified identity every authorization
// decision is made about. People, service accounts, machines, and delegates all
// become principals, so the evaluator never cares what kind of actor is asking.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
)

// Kind identifies what sort of actor a principal represents.
type Kind string

const (
	KindHuman    Kind = "human"
	KindService  Kind = "service"
	KindMachine  Kind = "machine"
	KindDelegate Kind = "delegate"
)

// Valid reports whether the kind is one of the recognized principal kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindHuman, KindService, KindMachine, KindDelegate:
		return true
	}
	return false
}

// Principal is the engine-side identity for an external account. Exactly one
// principal exists per account ref; principals are deactivated, never deleted,
// so audit records always resolve.
type Principal struct {
	ID uuid.UUID
	// AccountRef is the external account identifier this principal mirrors.
	AccountRef  string
	Kind        Kind
	DisplayName string
	// PersonProfileID is set for human principals only.
	PersonProfileID *uuid.UUID
	// DeviceRegistrationID is set for machine principals only.
	DeviceRegistrationID *uuid.UUID
	Active               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PersonProfile holds the person-facing details behind a human principal.
// Created in the same transaction as the principal so a human principal never
// points at a missing profile.
type PersonProfile struct {
	ID          uuid.UUID
	DisplayName string
	CreatedAt   time.Time
}

// DeviceRegistration records the device identity behind a machine principal.
type DeviceRegistration struct {
	ID        uuid.UUID
	DeviceRef string
	CreatedAt time.Time
}

// ResolveInput carries the account facts needed to resolve or lazily create a
// principal.
type ResolveInput struct {
	AccountRef  string
	Kind        Kind
	DisplayName string
}

// Principal errors.
var (
	// ErrPrincipalNotFound indicates no principal exists for the given ID or account.
	ErrPrincipalNotFound = apperrors.Wrap(apperrors.ErrNotFound, "principal not found")

	// ErrInvalidPrincipalKind indicates an unrecognized principal kind.
	ErrInvalidPrincipalKind = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid principal kind")
)
