// Package mocks provides mock implementations for testing audit usecases.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	auditDomain "github.com/glennballman/Community-Canvas-sub004/internal/audit/domain"
)

// MockAuditRepository is a mock implementation of AuditRepository for testing.
type MockAuditRepository struct {
	mock.Mock
}

// Create mocks the Create method of AuditRepository.
func (m *MockAuditRepository) Create(ctx context.Context, record *auditDomain.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// ListByPrincipal mocks the ListByPrincipal method of AuditRepository.
func (m *MockAuditRepository) ListByPrincipal(
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

// DeleteOlderThan mocks the DeleteOlderThan method of AuditRepository.
func (m *MockAuditRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
