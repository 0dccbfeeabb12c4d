package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	grantDomain "github.com/glennballman/Community-Canvas-sub004/internal/grant/domain"
	scopeDomain "github.com/glennballman/Community-Canvas-sub004/internal/scope/domain"
)

// GrantRepository defines the interface for grant persistence.
type GrantRepository interface {
	Create(ctx context.Context, grant *grantDomain.Grant) error
	GetByID(ctx context.Context, grantID uuid.UUID) (*grantDomain.Grant, error)
	ListForPrincipalInScopes(ctx context.Context, principalID uuid.UUID, scopeIDs []uuid.UUID) ([]*grantDomain.Grant, error)
	ListByPrincipal(ctx context.Context, principalID uuid.UUID, offset, limit int) ([]*grantDomain.Grant, error)
	Revoke(ctx context.Context, grantID uuid.UUID, revokedAt time.Time) error
}

// ResourceGrantRepository defines the interface for resource grant persistence.
type ResourceGrantRepository interface {
	Create(ctx context.Context, grant *grantDomain.ResourceGrant) error
	Exists(ctx context.Context, principalID, scopeID uuid.UUID, capabilityCode string) (bool, error)
	Revoke(ctx context.Context, grantID uuid.UUID, revokedAt time.Time) error
	ListByPrincipal(ctx context.Context, principalID uuid.UUID, offset, limit int) ([]*grantDomain.ResourceGrant, error)
}

// ScopeResolver is the slice of the scope usecase grant administration needs.
type ScopeResolver interface {
	Resolve(ctx context.Context, ref scopeDomain.Ref) (*scopeDomain.Scope, error)
}

// CreateGrantInput carries the parameters for creating a grant.
type CreateGrantInput struct {
	PrincipalID    uuid.UUID
	ScopeRef       scopeDomain.Ref
	RoleName       string
	CapabilityCode string
	Conditions     json.RawMessage
	ExpiresAt      *time.Time
}

// CreateResourceGrantInput carries the parameters for creating a resource grant.
type CreateResourceGrantInput struct {
	PrincipalID    uuid.UUID
	ScopeRef       scopeDomain.Ref
	CapabilityCode string
}

// Grant defines the grant administration operations.
type Grant interface {
	CreateGrant(ctx context.Context, input CreateGrantInput) (*grantDomain.Grant, error)
	RevokeGrant(ctx context.Context, grantID uuid.UUID) error
	ListGrants(ctx context.Context, principalID uuid.UUID, offset, limit int) ([]*grantDomain.Grant, error)
	CreateResourceGrant(ctx context.Context, input CreateResourceGrantInput) (*grantDomain.ResourceGrant, error)
	RevokeResourceGrant(ctx context.Context, grantID uuid.UUID) error
	ListResourceGrants(ctx context.Context, principalID uuid.UUID, offset, limit int) ([]*grantDomain.ResourceGrant, error)
}
