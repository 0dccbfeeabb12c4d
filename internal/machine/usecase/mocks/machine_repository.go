// Package mocks provides mock implementations for testing machine usecases.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	machineDomain "github.com/glennballman/Community-Canvas-sub004/internal/machine/domain"
)

// MockMachineRepository is a mock implementation of MachineRepository for testing.
type MockMachineRepository struct {
	mock.Mock
}

// CreateSession mocks the CreateSession method of MachineRepository.
func (m *MockMachineRepository) CreateSession(
	ctx context.Context,
	session *machineDomain.ControlSession,
) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// GetSession mocks the GetSession method of MachineRepository.
func (m *MockMachineRepository) GetSession(
	ctx context.Context,
	sessionID uuid.UUID,
) (*machineDomain.ControlSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*machineDomain.ControlSession), args.Error(1)
}

// GetSessionForUpdate mocks the GetSessionForUpdate method of MachineRepository.
func (m *MockMachineRepository) GetSessionForUpdate(
	ctx context.Context,
	sessionID uuid.UUID,
) (*machineDomain.ControlSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*machineDomain.ControlSession), args.Error(1)
}

// UpdateSessionStatus mocks the UpdateSessionStatus method of MachineRepository.
func (m *MockMachineRepository) UpdateSessionStatus(
	ctx context.Context,
	sessionID uuid.UUID,
	status machineDomain.SessionStatus,
	endedAt time.Time,
) error {
	args := m.Called(ctx, sessionID, status, endedAt)
	return args.Error(0)
}

// HasActiveSupervisedSession mocks the HasActiveSupervisedSession method of MachineRepository.
func (m *MockMachineRepository) HasActiveSupervisedSession(
	ctx context.Context,
	principalID uuid.UUID,
) (bool, error) {
	args := m.Called(ctx, principalID)
	return args.Bool(0), args.Error(1)
}

// ExpireStaleSessions mocks the ExpireStaleSessions method of MachineRepository.
func (m *MockMachineRepository) ExpireStaleSessions(
	ctx context.Context,
	cutoff, endedAt time.Time,
) (int64, error) {
	args := m.Called(ctx, cutoff, endedAt)
	return args.Get(0).(int64), args.Error(1)
}

// CreateCertification mocks the CreateCertification method of MachineRepository.
func (m *MockMachineRepository) CreateCertification(
	ctx context.Context,
	certification *machineDomain.Certification,
) error {
	args := m.Called(ctx, certification)
	return args.Error(0)
}

// ListCurrentCertificationCodes mocks the ListCurrentCertificationCodes method of MachineRepository.
func (m *MockMachineRepository) ListCurrentCertificationCodes(
	ctx context.Context,
	principalID uuid.UUID,
	now time.Time,
) ([]string, error) {
	args := m.Called(ctx, principalID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
