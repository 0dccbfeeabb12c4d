// Package mocks provides mock implementations for testing engine usecases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	engineDomain "github.com/glennballman/Community-Canvas-sub004/internal/engine/domain"
	engineUseCase "github.com/glennballman/Community-Canvas-sub004/internal/engine/usecase"
	grantDomain "github.com/glennballman/Community-Canvas-sub004/internal/grant/domain"
	principalDomain "github.com/glennballman/Community-Canvas-sub004/internal/principal/domain"
	scopeDomain "github.com/glennballman/Community-Canvas-sub004/internal/scope/domain"
)

// MockPrincipalReader is a mock implementation of PrincipalReader for testing.
type MockPrincipalReader struct {
	mock.Mock
}

// Get mocks the Get method of PrincipalReader.
func (m *MockPrincipalReader) Get(
	ctx context.Context,
	principalID uuid.UUID,
) (*principalDomain.Principal, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*principalDomain.Principal), args.Error(1)
}

// MockScopeReader is a mock implementation of ScopeReader for testing.
type MockScopeReader struct {
	mock.Mock
}

// Resolve mocks the Resolve method of ScopeReader.
func (m *MockScopeReader) Resolve(
	ctx context.Context,
	ref scopeDomain.Ref,
) (*scopeDomain.Scope, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scopeDomain.Scope), args.Error(1)
}

// Chain mocks the Chain method of ScopeReader.
func (m *MockScopeReader) Chain(
	ctx context.Context,
	scopeID uuid.UUID,
) ([]*scopeDomain.Scope, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*scopeDomain.Scope), args.Error(1)
}

// MockGrantReader is a mock implementation of GrantReader for testing.
type MockGrantReader struct {
	mock.Mock
}

// ListForPrincipalInScopes mocks the ListForPrincipalInScopes method of GrantReader.
func (m *MockGrantReader) ListForPrincipalInScopes(
	ctx context.Context,
	principalID uuid.UUID,
	scopeIDs []uuid.UUID,
) ([]*grantDomain.Grant, error) {
	args := m.Called(ctx, principalID, scopeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*grantDomain.Grant), args.Error(1)
}

// MockResourceGrantReader is a mock implementation of ResourceGrantReader for testing.
type MockResourceGrantReader struct {
	mock.Mock
}

// Exists mocks the Exists method of ResourceGrantReader.
func (m *MockResourceGrantReader) Exists(
	ctx context.Context,
	principalID, scopeID uuid.UUID,
	capabilityCode string,
) (bool, error) {
	args := m.Called(ctx, principalID, scopeID, capabilityCode)
	return args.Bool(0), args.Error(1)
}

// MockSafetyReader is a mock implementation of SafetyReader for testing.
type MockSafetyReader struct {
	mock.Mock
}

// HasActiveSupervisedSession mocks the HasActiveSupervisedSession method of SafetyReader.
func (m *MockSafetyReader) HasActiveSupervisedSession(
	ctx context.Context,
	principalID uuid.UUID,
) (bool, error) {
	args := m.Called(ctx, principalID)
	return args.Bool(0), args.Error(1)
}

// CurrentCertificationCodes mocks the CurrentCertificationCodes method of SafetyReader.
func (m *MockSafetyReader) CurrentCertificationCodes(
	ctx context.Context,
	principalID uuid.UUID,
) ([]string, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// RecordingAuditRecorder captures recorded decisions for assertions.
type RecordingAuditRecorder struct {
	Records []engineUseCase.RecordedDecision
}

// Record appends the decision to the captured slice.
func (r *RecordingAuditRecorder) Record(input engineUseCase.RecordedDecision) {
	r.Records = append(r.Records, input)
}

// Last returns the most recently recorded decision.
func (r *RecordingAuditRecorder) Last() engineUseCase.RecordedDecision {
	return r.Records[len(r.Records)-1]
}

// MockImpersonation is a mock implementation of Impersonation for testing.
type MockImpersonation struct {
	mock.Mock
}

// Start mocks the Start method of Impersonation.
func (m *MockImpersonation) Start(
	ctx context.Context,
	sessionID string,
	originalID, impersonatedID uuid.UUID,
) error {
	args := m.Called(ctx, sessionID, originalID, impersonatedID)
	return args.Error(0)
}

// Stop mocks the Stop method of Impersonation.
func (m *MockImpersonation) Stop(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// Acting mocks the Acting method of Impersonation.
func (m *MockImpersonation) Acting(
	sessionID string,
	principalID uuid.UUID,
) engineDomain.AuthContext {
	args := m.Called(sessionID, principalID)
	return args.Get(0).(engineDomain.AuthContext)
}
