// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	grantDomain "github.com/glennballman/Community-Canvas-sub004/internal/grant/domain"
	grantUseCase "github.com/glennballman/Community-Canvas-sub004/internal/grant/usecase"
)

// MockGrantUseCase is a mock implementation of the Grant usecase for testing.
type MockGrantUseCase struct {
	mock.Mock
}

// CreateGrant mocks the CreateGrant method of the Grant usecase.
func (m *MockGrantUseCase) CreateGrant(
	ctx context.Context,
	input grantUseCase.CreateGrantInput,
) (*grantDomain.Grant, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grantDomain.Grant), args.Error(1)
}

// RevokeGrant mocks the RevokeGrant method of the Grant usecase.
func (m *MockGrantUseCase) RevokeGrant(ctx context.Context, grantID uuid.UUID) error {
	args := m.Called(ctx, grantID)
	return args.Error(0)
}

// ListGrants mocks the ListGrants method of the Grant usecase.
func (m *MockGrantUseCase) ListGrants(
	ctx context.Context,
	principalID uuid.UUID,
	offset, limit int,
) ([]*grantDomain.Grant, error) {
	args := m.Called(ctx, principalID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*grantDomain.Grant), args.Error(1)
}

// CreateResourceGrant mocks the CreateResourceGrant method of the Grant usecase.
func (m *MockGrantUseCase) CreateResourceGrant(
	ctx context.Context,
	input grantUseCase.CreateResourceGrantInput,
) (*grantDomain.ResourceGrant, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grantDomain.ResourceGrant), args.Error(1)
}

// RevokeResourceGrant mocks the RevokeResourceGrant method of the Grant usecase.
func (m *MockGrantUseCase) RevokeResourceGrant(ctx context.Context, grantID uuid.UUID) error {
	args := m.Called(ctx, grantID)
	return args.Error(0)
}

// ListResourceGrants mocks the ListResourceGrants method of the Grant usecase.
func (m *MockGrantUseCase) ListResourceGrants(
	ctx context.Context,
	principalID uuid.UUID,
	offset, limit int,
) ([]*grantDomain.ResourceGrant, error) {
	args := m.Called(ctx, principalID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*grantDomain.ResourceGrant), args.Error(1)
}
