// Package usecase implements machine control session lifecycle and
// certification business logic.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glennballman/Community-Canvas-sub004/internal/database"
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
	machineDomain "github.com/glennballman/Community-Canvas-sub004/internal/machine/domain"
)

// MachineUsecase implements machine control session lifecycle. Every
// transition row-locks the session inside a transaction, so concurrent end /
// emergency-stop / timeout calls on one session serialize instead of racing.
type MachineUsecase struct {
	txManager   database.TxManager
	machineRepo MachineRepository
}

// NewMachineUsecase creates a new machine usecase.
func NewMachineUsecase(
	txManager database.TxManager,
	machineRepo MachineRepository,
) *MachineUsecase {
	return &MachineUsecase{
		txManager:   txManager,
		machineRepo: machineRepo,
	}
}

// StartSession starts a control session binding an operator to a machine.
func (u *MachineUsecase) StartSession(
	ctx context.Context,
	input StartSessionInput,
) (*machineDomain.ControlSession, error) {
	if !input.Mode.Valid() {
		return nil, machineDomain.ErrInvalidControlMode
	}
	if input.MachinePrincipalID == input.OperatorPrincipalID {
		return nil, machineDomain.ErrSelfOperation
	}

	session := &machineDomain.ControlSession{
		ID:                  uuid.Must(uuid.NewV7()),
		MachinePrincipalID:  input.MachinePrincipalID,
		OperatorPrincipalID: input.OperatorPrincipalID,
		Mode:                input.Mode,
		Status:              machineDomain.StatusActive,
		StartedAt:           time.Now().UTC(),
	}
	if err := u.machineRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// EndSession ends an active session normally.
func (u *MachineUsecase) EndSession(ctx context.Context, sessionID uuid.UUID) error {
	return u.transition(ctx, sessionID, machineDomain.StatusEnded)
}

// EmergencyStop ends an active session with an emergency stop. The transition
// itself is deliberately ungated: stopping a machine must never wait on an
// authorization decision.
func (u *MachineUsecase) EmergencyStop(ctx context.Context, sessionID uuid.UUID) error {
	return u.transition(ctx, sessionID, machineDomain.StatusEmergencyStopped)
}

// transition moves an active session to a terminal status under a row lock.
func (u *MachineUsecase) transition(
	ctx context.Context,
	sessionID uuid.UUID,
	status machineDomain.SessionStatus,
) error {
	return u.txManager.WithTx(ctx, func(ctx context.Context) error {
		session, err := u.machineRepo.GetSessionForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if !session.Active() {
			return machineDomain.ErrSessionNotActive
		}
		return u.machineRepo.UpdateSessionStatus(ctx, sessionID, status, time.Now().UTC())
	})
}

// GetSession retrieves a session by ID.
func (u *MachineUsecase) GetSession(
	ctx context.Context,
	sessionID uuid.UUID,
) (*machineDomain.ControlSession, error) {
	return u.machineRepo.GetSession(ctx, sessionID)
}

// ExpireStaleSessions times out active sessions older than maxAge. Run
// periodically so an abandoned session cannot satisfy the supervision
// requirement forever.
func (u *MachineUsecase) ExpireStaleSessions(
	ctx context.Context,
	maxAge time.Duration,
) (int64, error) {
	if maxAge <= 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "session max age must be positive")
	}
	now := time.Now().UTC()
	return u.machineRepo.ExpireStaleSessions(ctx, now.Add(-maxAge), now)
}

// HasActiveSupervisedSession reports whether the principal is involved in an
// active human-in-the-loop session.
func (u *MachineUsecase) HasActiveSupervisedSession(
	ctx context.Context,
	principalID uuid.UUID,
) (bool, error) {
	return u.machineRepo.HasActiveSupervisedSession(ctx, principalID)
}

// CurrentCertificationCodes returns the certification codes the principal
// currently holds.
func (u *MachineUsecase) CurrentCertificationCodes(
	ctx context.Context,
	principalID uuid.UUID,
) ([]string, error) {
	return u.machineRepo.ListCurrentCertificationCodes(ctx, principalID, time.Now().UTC())
}

// GrantCertification records a certification for a principal.
func (u *MachineUsecase) GrantCertification(
	ctx context.Context,
	principalID uuid.UUID,
	code string,
	expiresAt *time.Time,
) (*machineDomain.Certification, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "certification code must not be blank")
	}

	certification := &machineDomain.Certification{
		ID:                uuid.Must(uuid.NewV7()),
		PrincipalID:       principalID,
		CertificationCode: code,
		IssuedAt:          time.Now().UTC(),
		ExpiresAt:         expiresAt,
	}
	if err := u.machineRepo.CreateCertification(ctx, certification); err != nil {
		return nil, err
	}
	return certification, nil
}
