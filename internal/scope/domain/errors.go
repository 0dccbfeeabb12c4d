package domain

import (
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
)

// Scope hierarchy errors.
var (
	// ErrScopeNotFound indicates a scope with the specified ID or ref was not found.
	ErrScopeNotFound = apperrors.Wrap(apperrors.ErrNotFound, "scope not found")

	// ErrScopeCycle indicates the parent-chain walk revisited a node or exceeded
	// MaxDepth. The tree is corrupt; decisions against it must fail, not guess.
	ErrScopeCycle = apperrors.New("scope hierarchy cycle detected")

	// ErrInvalidScopeRef indicates the caller's scope reference names nothing
	// resolvable.
	ErrInvalidScopeRef = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid scope reference")
)
