package usecase

import (
	"context"

	"github.com/google/uuid"

	scopeDomain "github.com/glennballman/Community-Canvas-sub004/internal/scope/domain"
)

// ScopeRepository defines the interface for scope node persistence.
type ScopeRepository interface {
	Create(ctx context.Context, scope *scopeDomain.Scope) error
	Get(ctx context.Context, scopeID uuid.UUID) (*scopeDomain.Scope, error)
	GetByTypeAndRef(ctx context.Context, scopeType scopeDomain.Type, externalRef string) (*scopeDomain.Scope, error)
	GetChild(ctx context.Context, parentID uuid.UUID, scopeType scopeDomain.Type, externalRef string) (*scopeDomain.Scope, error)
}

// Scope defines the scope hierarchy operations.
type Scope interface {
	// Resolve turns a caller-supplied ref into a concrete node, auto-vivifying
	// resource-type and resource nodes on first reference.
	Resolve(ctx context.Context, ref scopeDomain.Ref) (*scopeDomain.Scope, error)
	// Chain returns the node's ancestor chain, root first, target last.
	Chain(ctx context.Context, scopeID uuid.UUID) ([]*scopeDomain.Scope, error)
	// IsAncestor reports whether ancestorID lies on the chain of scopeID
	// (a node is its own ancestor).
	IsAncestor(ctx context.Context, ancestorID, scopeID uuid.UUID) (bool, error)
	// EnsureTenant creates the organization and tenant nodes for a tenant if
	// they do not exist, returning the tenant node.
	EnsureTenant(ctx context.Context, organizationRef string, tenantID uuid.UUID) (*scopeDomain.Scope, error)
}
