// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	principalDomain "github.com/glennballman/Community-Canvas-sub004/internal/principal/domain"
)

// MockPrincipalUseCase is a mock implementation of the Principal usecase for testing.
type MockPrincipalUseCase struct {
	mock.Mock
}

// Resolve mocks the Resolve method of the Principal usecase.
func (m *MockPrincipalUseCase) Resolve(
	ctx context.Context,
	input principalDomain.ResolveInput,
) (*principalDomain.Principal, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*principalDomain.Principal), args.Error(1)
}

// Get mocks the Get method of the Principal usecase.
func (m *MockPrincipalUseCase) Get(
	ctx context.Context,
	principalID uuid.UUID,
) (*principalDomain.Principal, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*principalDomain.Principal), args.Error(1)
}

// Deactivate mocks the Deactivate method of the Principal usecase.
func (m *MockPrincipalUseCase) Deactivate(ctx context.Context, principalID uuid.UUID) error {
	args := m.Called(ctx, principalID)
	return args.Error(0)
}
