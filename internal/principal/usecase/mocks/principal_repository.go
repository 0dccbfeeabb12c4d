// Package mocks provides mock implementations for testing principal usecases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	principalDomain "github.com/glennballman/Community-Canvas-sub004/internal/principal/domain"
)

// MockPrincipalRepository is a mock implementation of PrincipalRepository for testing.
type MockPrincipalRepository struct {
	mock.Mock
}

// Create mocks the Create method of PrincipalRepository.
func (m *MockPrincipalRepository) Create(
	ctx context.Context,
	principal *principalDomain.Principal,
) error {
	args := m.Called(ctx, principal)
	return args.Error(0)
}

// GetByID mocks the GetByID method of PrincipalRepository.
func (m *MockPrincipalRepository) GetByID(
	ctx context.Context,
	principalID uuid.UUID,
) (*principalDomain.Principal, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*principalDomain.Principal), args.Error(1)
}

// GetByAccountRef mocks the GetByAccountRef method of PrincipalRepository.
func (m *MockPrincipalRepository) GetByAccountRef(
	ctx context.Context,
	accountRef string,
) (*principalDomain.Principal, error) {
	args := m.Called(ctx, accountRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*principalDomain.Principal), args.Error(1)
}

// Deactivate mocks the Deactivate method of PrincipalRepository.
func (m *MockPrincipalRepository) Deactivate(ctx context.Context, principalID uuid.UUID) error {
	args := m.Called(ctx, principalID)
	return args.Error(0)
}

// CreatePersonProfile mocks the CreatePersonProfile method of PrincipalRepository.
func (m *MockPrincipalRepository) CreatePersonProfile(
	ctx context.Context,
	profile *principalDomain.PersonProfile,
) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// CreateDeviceRegistration mocks the CreateDeviceRegistration method of PrincipalRepository.
func (m *MockPrincipalRepository) CreateDeviceRegistration(
	ctx context.Context,
	registration *principalDomain.DeviceRegistration,
) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}
