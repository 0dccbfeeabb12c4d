// Package mocks provides mock implementations for testing database helpers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of TxManager for testing.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks the WithTx method of TxManager.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// FakeTxManager runs the transactional function directly, propagating its
// error. Use it in tests that only care about what happens inside the
// transaction, not about transaction mechanics.
type FakeTxManager struct{}

// WithTx executes fn without any real transaction.
func (FakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
