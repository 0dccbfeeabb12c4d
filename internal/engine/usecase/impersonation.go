package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"

	engineDomain "github.com/glennballman/Community-Canvas-sub004/internal/engine/domain"
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
)

// Impersonation errors.
var (
	// ErrAlreadyImpersonating indicates the session already has an active
	// impersonation. Impersonations substitute, never stack.
	ErrAlreadyImpersonating = apperrors.Wrap(
		apperrors.ErrConflict, "session is already impersonating")

	// ErrNotImpersonating indicates a stop on a session with no active
	// impersonation.
	ErrNotImpersonating = apperrors.Wrap(
		apperrors.ErrConflict, "session is not impersonating")

	// ErrSelfImpersonation indicates a principal impersonating itself.
	ErrSelfImpersonation = apperrors.Wrap(
		apperrors.ErrInvalidInput, "principal cannot impersonate itself")
)

// impersonationState is the substitution recorded for one session.
type impersonationState struct {
	originalID     uuid.UUID
	impersonatedID uuid.UUID
}

// ImpersonationManager implements the Impersonation interface. State lives in
// memory keyed by session ID; each toggle happens under one lock so concurrent
// requests observe either the fully-before or the fully-after state, never a
// torn intermediate. No capability data is cached across the toggle: the
// engine computes every decision from store reads, so stopping impersonation
// restores the original principal's effective set exactly.
type ImpersonationManager struct {
	principalReader PrincipalReader

	mu       sync.RWMutex
	sessions map[string]impersonationState
}

// NewImpersonationManager creates a new impersonation manager.
func NewImpersonationManager(principalReader PrincipalReader) *ImpersonationManager {
	return &ImpersonationManager{
		principalReader: principalReader,
		sessions:        make(map[string]impersonationState),
	}
}

// Start substitutes the acting principal for a session. The impersonated
// principal must exist and be active; the impersonator gains exactly that
// principal's grants and nothing else.
func (m *ImpersonationManager) Start(
	ctx context.Context,
	sessionID string,
	originalID, impersonatedID uuid.UUID,
) error {
	if sessionID == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "session id must not be blank")
	}
	if originalID == impersonatedID {
		return ErrSelfImpersonation
	}

	impersonated, err := m.principalReader.Get(ctx, impersonatedID)
	if err != nil {
		return err
	}
	if !impersonated.Active {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "impersonated principal is inactive")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, active := m.sessions[sessionID]; active {
		return ErrAlreadyImpersonating
	}
	m.sessions[sessionID] = impersonationState{
		originalID:     originalID,
		impersonatedID: impersonatedID,
	}
	return nil
}

// Stop ends a session's impersonation, restoring the original principal. The
// state is replaced, not unwound; there is nothing partial to restore.
func (m *ImpersonationManager) Stop(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, active := m.sessions[sessionID]; !active {
		return ErrNotImpersonating
	}
	delete(m.sessions, sessionID)
	return nil
}

// Acting resolves the authorization context a session's calls run under. A
// session without an active impersonation, or a call without a session, acts
// as itself.
func (m *ImpersonationManager) Acting(
	sessionID string,
	principalID uuid.UUID,
) engineDomain.AuthContext {
	if sessionID == "" {
		return engineDomain.SelfContext(principalID)
	}

	m.mu.RLock()
	state, active := m.sessions[sessionID]
	m.mu.RUnlock()

	if !active {
		return engineDomain.SelfContext(principalID)
	}
	return engineDomain.AuthContext{
		OriginalPrincipalID: state.originalID,
		ActingPrincipalID:   state.impersonatedID,
	}
}
