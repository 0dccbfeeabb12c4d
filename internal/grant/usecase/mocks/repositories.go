// Package mocks provides mock implementations for testing grant usecases.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	grantDomain "github.com/glennballman/Community-Canvas-sub004/internal/grant/domain"
	scopeDomain "github.com/glennballman/Community-Canvas-sub004/internal/scope/domain"
)

// MockGrantRepository is a mock implementation of GrantRepository for testing.
type MockGrantRepository struct {
	mock.Mock
}

// Create mocks the Create method of GrantRepository.
func (m *MockGrantRepository) Create(ctx context.Context, grant *grantDomain.Grant) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

// GetByID mocks the GetByID method of GrantRepository.
func (m *MockGrantRepository) GetByID(
	ctx context.Context,
	grantID uuid.UUID,
) (*grantDomain.Grant, error) {
	args := m.Called(ctx, grantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grantDomain.Grant), args.Error(1)
}

// ListForPrincipalInScopes mocks the ListForPrincipalInScopes method of GrantRepository.
func (m *MockGrantRepository) ListForPrincipalInScopes(
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

// ListByPrincipal mocks the ListByPrincipal method of GrantRepository.
func (m *MockGrantRepository) ListByPrincipal(
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

// Revoke mocks the Revoke method of GrantRepository.
func (m *MockGrantRepository) Revoke(
	ctx context.Context,
	grantID uuid.UUID,
	revokedAt time.Time,
) error {
	args := m.Called(ctx, grantID, revokedAt)
	return args.Error(0)
}

// MockResourceGrantRepository is a mock implementation of ResourceGrantRepository for testing.
type MockResourceGrantRepository struct {
	mock.Mock
}

// Create mocks the Create method of ResourceGrantRepository.
func (m *MockResourceGrantRepository) Create(
	ctx context.Context,
	grant *grantDomain.ResourceGrant,
) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

// Exists mocks the Exists method of ResourceGrantRepository.
func (m *MockResourceGrantRepository) Exists(
	ctx context.Context,
	principalID, scopeID uuid.UUID,
	capabilityCode string,
) (bool, error) {
	args := m.Called(ctx, principalID, scopeID, capabilityCode)
	return args.Bool(0), args.Error(1)
}

// Revoke mocks the Revoke method of ResourceGrantRepository.
func (m *MockResourceGrantRepository) Revoke(
	ctx context.Context,
	grantID uuid.UUID,
	revokedAt time.Time,
) error {
	args := m.Called(ctx, grantID, revokedAt)
	return args.Error(0)
}

// ListByPrincipal mocks the ListByPrincipal method of ResourceGrantRepository.
func (m *MockResourceGrantRepository) ListByPrincipal(
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

// MockScopeResolver is a mock implementation of ScopeResolver for testing.
type MockScopeResolver struct {
	mock.Mock
}

// Resolve mocks the Resolve method of ScopeResolver.
func (m *MockScopeResolver) Resolve(
	ctx context.Context,
	ref scopeDomain.Ref,
) (*scopeDomain.Scope, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scopeDomain.Scope), args.Error(1)
}
