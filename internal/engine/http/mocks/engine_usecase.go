// Package mocks provides mock implementations for testing engine handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	engineDomain "github.com/glennballman/Community-Canvas-sub004/internal/engine/domain"
	scopeDomain "github.com/glennballman/Community-Canvas-sub004/internal/scope/domain"
)

// MockEngineUsecase is a mock implementation of the Engine usecase for testing.
type MockEngineUsecase struct {
	mock.Mock
}

// Authorize mocks the Authorize method of the Engine usecase.
func (m *MockEngineUsecase) Authorize(
	ctx context.Context,
	input engineDomain.AuthorizeInput,
) (*engineDomain.Decision, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engineDomain.Decision), args.Error(1)
}

// ListEffectiveCapabilities mocks the ListEffectiveCapabilities method of the Engine usecase.
func (m *MockEngineUsecase) ListEffectiveCapabilities(
	ctx context.Context,
	principalID uuid.UUID,
	ref scopeDomain.Ref,
) ([]string, error) {
	args := m.Called(ctx, principalID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockImpersonationUsecase is a mock implementation of the Impersonation usecase for testing.
type MockImpersonationUsecase struct {
	mock.Mock
}

// Start mocks the Start method of the Impersonation usecase.
func (m *MockImpersonationUsecase) Start(
	ctx context.Context,
	sessionID string,
	originalID, impersonatedID uuid.UUID,
) error {
	args := m.Called(ctx, sessionID, originalID, impersonatedID)
	return args.Error(0)
}

// Stop mocks the Stop method of the Impersonation usecase.
func (m *MockImpersonationUsecase) Stop(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// Acting mocks the Acting method of the Impersonation usecase.
func (m *MockImpersonationUsecase) Acting(
	sessionID string,
	principalID uuid.UUID,
) engineDomain.AuthContext {
	args := m.Called(sessionID, principalID)
	return args.Get(0).(engineDomain.AuthContext)
}
