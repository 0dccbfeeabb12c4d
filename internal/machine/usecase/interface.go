package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	machineDomain "github.com/glennballman/Community-Canvas-sub004/internal/machine/domain"
)

// MachineRepository defines the interface for machine session and certification
// persistence.
type MachineRepository interface {
	CreateSession(ctx context.Context, session *machineDomain.ControlSession) error
	GetSession(ctx context.Context, sessionID uuid.UUID) (*machineDomain.ControlSession, error)
	GetSessionForUpdate(ctx context.Context, sessionID uuid.UUID) (*machineDomain.ControlSession, error)
	UpdateSessionStatus(ctx context.Context, sessionID uuid.UUID, status machineDomain.SessionStatus, endedAt time.Time) error
	HasActiveSupervisedSession(ctx context.Context, principalID uuid.UUID) (bool, error)
	ExpireStaleSessions(ctx context.Context, cutoff, endedAt time.Time) (int64, error)
	CreateCertification(ctx context.Context, certification *machineDomain.Certification) error
	ListCurrentCertificationCodes(ctx context.Context, principalID uuid.UUID, now time.Time) ([]string, error)
}

// StartSessionInput carries the parameters for starting a control session.
type StartSessionInput struct {
	MachinePrincipalID  uuid.UUID
	OperatorPrincipalID uuid.UUID
	Mode                machineDomain.ControlMode
}

// Machine defines the machine session and certification operations.
type Machine interface {
	StartSession(ctx context.Context, input StartSessionInput) (*machineDomain.ControlSession, error)
	EndSession(ctx context.Context, sessionID uuid.UUID) error
	EmergencyStop(ctx context.Context, sessionID uuid.UUID) error
	GetSession(ctx context.Context, sessionID uuid.UUID) (*machineDomain.ControlSession, error)
	ExpireStaleSessions(ctx context.Context, maxAge time.Duration) (int64, error)
	// HasActiveSupervisedSession and CurrentCertificationCodes feed the
	// machine safety gate.
	HasActiveSupervisedSession(ctx context.Context, principalID uuid.UUID) (bool, error)
	CurrentCertificationCodes(ctx context.Context, principalID uuid.UUID) ([]string, error)
	GrantCertification(ctx context.Context, principalID uuid.UUID, code string, expiresAt *time.Time) (*machineDomain.Certification, error)
}
