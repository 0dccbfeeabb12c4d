// Package domain defines machine control sessions and safety certifications:
// the ground truth the machine safety gate checks before any safety-flagged
// capability is allowed.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
)

// ControlMode is how a machine is currently being controlled.
type ControlMode string

const (
	ModeManualOnly         ControlMode = "manual_only"
	ModeTeleop             ControlMode = "teleop"
	ModeSupervisedAutonomy ControlMode = "supervised_autonomy"
	ModeAutonomous         ControlMode = "autonomous"
)

// Valid reports whether the mode is one of the recognized control modes.
func (m ControlMode) Valid() bool {
	switch m {
	case ModeManualOnly, ModeTeleop, ModeSupervisedAutonomy, ModeAutonomous:
		return true
	}
	return false
}

// Supervised reports whether a human is in the loop. An autonomous session
// never satisfies a supervision requirement.
func (m ControlMode) Supervised() bool {
	return m.Valid() && m != ModeAutonomous
}

// SessionStatus is the lifecycle state of a control session.
type SessionStatus string

const (
	StatusActive           SessionStatus = "active"
	StatusEnded            SessionStatus = "ended"
	StatusEmergencyStopped SessionStatus = "emergency_stopped"
	StatusTimedOut         SessionStatus = "timed_out"
)

// ControlSession binds an operator principal to a machine principal in a
// control mode. All transitions out of active are terminal.
type ControlSession struct {
	ID                  uuid.UUID
	MachinePrincipalID  uuid.UUID
	OperatorPrincipalID uuid.UUID
	Mode                ControlMode
	Status              SessionStatus
	StartedAt           time.Time
	EndedAt             *time.Time
}

// Active reports whether the session is still running.
func (s *ControlSession) Active() bool {
	return s.Status == StatusActive
}

// Certification records that a principal holds a safety certification.
// A nil expiry never expires.
type Certification struct {
	ID                uuid.UUID
	PrincipalID       uuid.UUID
	CertificationCode string
	IssuedAt          time.Time
	ExpiresAt         *time.Time
}

// Current reports whether the certification is valid at the given instant.
func (c *Certification) Current(now time.Time) bool {
	return c.ExpiresAt == nil || now.Before(*c.ExpiresAt)
}

// Machine session errors.
var (
	// ErrSessionNotFound indicates no control session exists for the given ID.
	ErrSessionNotFound = apperrors.Wrap(apperrors.ErrNotFound, "machine control session not found")

	// ErrSessionNotActive indicates a transition on a session that already ended.
	ErrSessionNotActive = apperrors.Wrap(apperrors.ErrConflict, "machine control session is not active")

	// ErrInvalidControlMode indicates an unrecognized control mode.
	ErrInvalidControlMode = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid control mode")

	// ErrSelfOperation indicates a machine principal set as its own operator.
	ErrSelfOperation = apperrors.Wrap(apperrors.ErrInvalidInput,
		"operator and machine must be different principals")
)
