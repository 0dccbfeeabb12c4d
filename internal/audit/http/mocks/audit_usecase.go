// Package mocks provides mock implementations for testing audit handlers.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	auditDomain "github.com/glennballman/Community-Canvas-sub004/internal/audit/domain"
	auditUseCase "github.com/glennballman/Community-Canvas-sub004/internal/audit/usecase"
)

// MockAuditUsecase is a mock implementation of the Audit usecase for testing.
type MockAuditUsecase struct {
	mock.Mock
}

// Record mocks the Record method of the Audit usecase.
func (m *MockAuditUsecase) Record(input auditUseCase.RecordInput) {
	m.Called(input)
}

// List mocks the List method of the Audit usecase.
func (m *MockAuditUsecase) List(
	ctx context.Context,
	principalID uuid.UUID,
	offset, limit int,
) ([]*auditDomain.Record, error) {
	args := m.Called(ctx, principalID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auditDomain.Record), args.Error(1)
}

// CleanOldRecords mocks the CleanOldRecords method of the Audit usecase.
func (m *MockAuditUsecase) CleanOldRecords(
	ctx context.Context,
	retention time.Duration,
) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}

// Close mocks the Close method of the Audit usecase.
func (m *MockAuditUsecase) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
