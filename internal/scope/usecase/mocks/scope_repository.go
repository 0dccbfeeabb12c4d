// Package mocks provides mock implementations for testing scope usecases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	scopeDomain "github.com/glennballman/Community-Canvas-sub004/internal/scope/domain"
)

// MockScopeRepository is a mock implementation of ScopeRepository for testing.
type MockScopeRepository struct {
	mock.Mock
}

// Create mocks the Create method of ScopeRepository.
func (m *MockScopeRepository) Create(ctx context.Context, scope *scopeDomain.Scope) error {
	args := m.Called(ctx, scope)
	return args.Error(0)
}

// Get mocks the Get method of ScopeRepository.
func (m *MockScopeRepository) Get(ctx context.Context, scopeID uuid.UUID) (*scopeDomain.Scope, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scopeDomain.Scope), args.Error(1)
}

// GetByTypeAndRef mocks the GetByTypeAndRef method of ScopeRepository.
func (m *MockScopeRepository) GetByTypeAndRef(
	ctx context.Context,
	scopeType scopeDomain.Type,
	externalRef string,
) (*scopeDomain.Scope, error) {
	args := m.Called(ctx, scopeType, externalRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scopeDomain.Scope), args.Error(1)
}

// GetChild mocks the GetChild method of ScopeRepository.
func (m *MockScopeRepository) GetChild(
	ctx context.Context,
	parentID uuid.UUID,
	scopeType scopeDomain.Type,
	externalRef string,
) (*scopeDomain.Scope, error) {
	args := m.Called(ctx, parentID, scopeType, externalRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scopeDomain.Scope), args.Error(1)
}
