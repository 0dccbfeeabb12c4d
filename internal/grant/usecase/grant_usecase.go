// Package usecase implements grant administration business logic.
package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	catalogDomain "github.com/glennballman/Community-Canvas-sub004/internal/catalog/domain"
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
	grantDomain "github.com/glennballman/Community-Canvas-sub004/internal/grant/domain"
	scopeDomain "github.com/glennballman/Community-Canvas-sub004/internal/scope/domain"
)

// GrantUsecase implements grant and resource grant administration.
type GrantUsecase struct {
	grantRepo         GrantRepository
	resourceGrantRepo ResourceGrantRepository
	scopes            ScopeResolver
}

// NewGrantUsecase creates a new grant usecase.
func NewGrantUsecase(
	grantRepo GrantRepository,
	resourceGrantRepo ResourceGrantRepository,
	scopes ScopeResolver,
) *GrantUsecase {
	return &GrantUsecase{
		grantRepo:         grantRepo,
		resourceGrantRepo: resourceGrantRepo,
		scopes:            scopes,
	}
}

// CreateGrant creates a grant naming exactly one of role or capability at the
// resolved scope.
//
// Capabilities must exist in the catalog and roles must be defined for the
// scope's level; both are operator mistakes worth rejecting at write time. The
// condition payload is checked to be a JSON object but its keys are not
// validated here: key recognition is the evaluator's contract, where an
// unrecognized key must hard-fail the decision rather than be impossible to
// store.
func (u *GrantUsecase) CreateGrant(
	ctx context.Context,
	input CreateGrantInput,
) (*grantDomain.Grant, error) {
	hasRole := input.RoleName != ""
	hasCapability := input.CapabilityCode != ""
	if hasRole == hasCapability {
		return nil, grantDomain.ErrRoleXorCapability
	}

	scope, err := u.scopes.Resolve(ctx, input.ScopeRef)
	if err != nil {
		return nil, err
	}

	if hasCapability {
		if _, ok := catalogDomain.Lookup(input.CapabilityCode); !ok {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput,
				"capability does not exist in the catalog")
		}
	} else {
		if _, err := catalogDomain.ExpandRole(
			input.RoleName, catalogDomain.ScopeKind(scope.Type),
		); err != nil {
			return nil, err
		}
	}

	if len(input.Conditions) > 0 {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(input.Conditions, &probe); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput,
				"condition payload must be a JSON object")
		}
	}

	grant := &grantDomain.Grant{
		ID:          uuid.Must(uuid.NewV7()),
		PrincipalID: input.PrincipalID,
		ScopeID:     scope.ID,
		Conditions:  input.Conditions,
		ExpiresAt:   input.ExpiresAt,
		CreatedAt:   time.Now().UTC(),
	}
	if hasRole {
		grant.RoleName = &input.RoleName
	} else {
		grant.CapabilityCode = &input.CapabilityCode
	}

	if err := u.grantRepo.Create(ctx, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

// RevokeGrant marks a grant revoked. Already-revoked grants are a conflict.
func (u *GrantUsecase) RevokeGrant(ctx context.Context, grantID uuid.UUID) error {
	return u.grantRepo.Revoke(ctx, grantID, time.Now().UTC())
}

// ListGrants returns a page of grants for a principal.
func (u *GrantUsecase) ListGrants(
	ctx context.Context,
	principalID uuid.UUID,
	offset, limit int,
) ([]*grantDomain.Grant, error) {
	return u.grantRepo.ListByPrincipal(ctx, principalID, offset, limit)
}

// CreateResourceGrant creates a per-resource capability grant. The scope ref
// must resolve to a resource-level node; resource grants on broader scopes
// would be ordinary grants in disguise.
func (u *GrantUsecase) CreateResourceGrant(
	ctx context.Context,
	input CreateResourceGrantInput,
) (*grantDomain.ResourceGrant, error) {
	if _, ok := catalogDomain.Lookup(input.CapabilityCode); !ok {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput,
			"capability does not exist in the catalog")
	}

	scope, err := u.scopes.Resolve(ctx, input.ScopeRef)
	if err != nil {
		return nil, err
	}
	if scope.Type != scopeDomain.TypeResource {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput,
			"resource grants require a resource-level scope")
	}

	grant := &grantDomain.ResourceGrant{
		ID:             uuid.Must(uuid.NewV7()),
		PrincipalID:    input.PrincipalID,
		ScopeID:        scope.ID,
		CapabilityCode: input.CapabilityCode,
		CreatedAt:      time.Now().UTC(),
	}
	if err := u.resourceGrantRepo.Create(ctx, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

// RevokeResourceGrant marks a resource grant revoked.
func (u *GrantUsecase) RevokeResourceGrant(ctx context.Context, grantID uuid.UUID) error {
	return u.resourceGrantRepo.Revoke(ctx, grantID, time.Now().UTC())
}

// ListResourceGrants returns a page of resource grants for a principal.
func (u *GrantUsecase) ListResourceGrants(
	ctx context.Context,
	principalID uuid.UUID,
	offset, limit int,
) ([]*grantDomain.ResourceGrant, error) {
	return u.resourceGrantRepo.ListByPrincipal(ctx, principalID, offset, limit)
}
