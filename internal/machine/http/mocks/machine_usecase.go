// Package mocks provides mock implementations for testing machine handlers.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	machineDomain "github.com/glennballman/Community-Canvas-sub004/internal/machine/domain"
	machineUseCase "github.com/glennballman/Community-Canvas-sub004/internal/machine/usecase"
)

// MockMachineUsecase is a mock implementation of the Machine usecase for testing.
type MockMachineUsecase struct {
	mock.Mock
}

// StartSession mocks the StartSession method of the Machine usecase.
func (m *MockMachineUsecase) StartSession(
	ctx context.Context,
	input machineUseCase.StartSessionInput,
) (*machineDomain.ControlSession, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*machineDomain.ControlSession), args.Error(1)
}

// EndSession mocks the EndSession method of the Machine usecase.
func (m *MockMachineUsecase) EndSession(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// EmergencyStop mocks the EmergencyStop method of the Machine usecase.
func (m *MockMachineUsecase) EmergencyStop(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// GetSession mocks the GetSession method of the Machine usecase.
func (m *MockMachineUsecase) GetSession(
	ctx context.Context,
	sessionID uuid.UUID,
) (*machineDomain.ControlSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*machineDomain.ControlSession), args.Error(1)
}

// ExpireStaleSessions mocks the ExpireStaleSessions method of the Machine usecase.
func (m *MockMachineUsecase) ExpireStaleSessions(
	ctx context.Context,
	maxAge time.Duration,
) (int64, error) {
	args := m.Called(ctx, maxAge)
	return args.Get(0).(int64), args.Error(1)
}

// HasActiveSupervisedSession mocks the HasActiveSupervisedSession method of the Machine usecase.
func (m *MockMachineUsecase) HasActiveSupervisedSession(
	ctx context.Context,
	principalID uuid.UUID,
) (bool, error) {
	args := m.Called(ctx, principalID)
	return args.Bool(0), args.Error(1)
}

// CurrentCertificationCodes mocks the CurrentCertificationCodes method of the Machine usecase.
func (m *MockMachineUsecase) CurrentCertificationCodes(
	ctx context.Context,
	principalID uuid.UUID,
) ([]string, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// GrantCertification mocks the GrantCertification method of the Machine usecase.
func (m *MockMachineUsecase) GrantCertification(
	ctx context.Context,
	principalID uuid.UUID,
	code string,
	expiresAt *time.Time,
) (*machineDomain.Certification, error) {
	args := m.Called(ctx, principalID, code, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*machineDomain.Certification), args.Error(1)
}
