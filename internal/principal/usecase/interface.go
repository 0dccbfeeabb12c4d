package usecase

import (
	"context"

	"github.com/google/uuid"

	principalDomain "github.com/glennballman/Community-Canvas-sub004/internal/principal/domain"
)

// PrincipalRepository defines the interface for principal persistence.
type PrincipalRepository interface {
	Create(ctx context.Context, principal *principalDomain.Principal) error
	GetByID(ctx context.Context, principalID uuid.UUID) (*principalDomain.Principal, error)
	GetByAccountRef(ctx context.Context, accountRef string) (*principalDomain.Principal, error)
	Deactivate(ctx context.Context, principalID uuid.UUID) error
	CreatePersonProfile(ctx context.Context, profile *principalDomain.PersonProfile) error
	CreateDeviceRegistration(ctx context.Context, registration *principalDomain.DeviceRegistration) error
}

// Principal defines the principal resolution operations.
type Principal interface {
	// Resolve returns the principal for an account, creating it on first sight.
	// Idempotent: every call for the same account ref yields the same principal.
	Resolve(ctx context.Context, input principalDomain.ResolveInput) (*principalDomain.Principal, error)
	// Get retrieves a principal by ID.
	Get(ctx context.Context, principalID uuid.UUID) (*principalDomain.Principal, error)
	// Deactivate marks a principal inactive; it is never deleted.
	Deactivate(ctx context.Context, principalID uuid.UUID) error
}
