// Package usecase implements the scope hierarchy business logic.
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"

	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
	scopeDomain "github.com/glennballman/Community-Canvas-sub004/internal/scope/domain"
)

// PlatformRef is the external ref of the single platform root node.
const PlatformRef = "platform"

// ScopeUsecase implements scope resolution and ancestry over the immutable tree.
type ScopeUsecase struct {
	scopeRepo ScopeRepository
	// chains caches ancestor chains keyed by scope ID. Nodes are immutable and
	// the tree only grows, so a cached chain never goes stale.
	chains *ristretto.Cache
}

// NewScopeUsecase creates a new scope usecase with an in-process chain cache.
func NewScopeUsecase(scopeRepo ScopeRepository) (*ScopeUsecase, error) {
	chains, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100_000,
		MaxCost:     10_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create scope chain cache")
	}
	return &ScopeUsecase{scopeRepo: scopeRepo, chains: chains}, nil
}

// Resolve turns a caller-supplied ref into a concrete scope node.
//
// A ref naming a scope ID must point at an existing node. A tenant-path ref
// requires the tenant node to exist already (tenants are provisioned, never
// vivified); its resource-type and resource nodes are created on first
// reference so collaborating services never pre-register resources.
func (u *ScopeUsecase) Resolve(
	ctx context.Context,
	ref scopeDomain.Ref,
) (*scopeDomain.Scope, error) {
	if ref.ScopeID != nil {
		return u.scopeRepo.Get(ctx, *ref.ScopeID)
	}

	if ref.TenantID == nil {
		return nil, scopeDomain.ErrInvalidScopeRef
	}
	if ref.ResourceType == "" && ref.ResourceKey != "" {
		return nil, scopeDomain.ErrInvalidScopeRef
	}

	tenant, err := u.scopeRepo.GetByTypeAndRef(ctx, scopeDomain.TypeTenant, ref.TenantID.String())
	if err != nil {
		if errors.Is(err, scopeDomain.ErrScopeNotFound) {
			return nil, scopeDomain.ErrInvalidScopeRef
		}
		return nil, err
	}
	if ref.ResourceType == "" {
		return tenant, nil
	}

	resourceType, err := u.ensureChild(ctx, tenant.ID, scopeDomain.TypeResourceType, ref.ResourceType)
	if err != nil {
		return nil, err
	}
	if ref.ResourceKey == "" {
		return resourceType, nil
	}

	return u.ensureChild(ctx, resourceType.ID, scopeDomain.TypeResource, ref.ResourceKey)
}

// Chain returns the ancestor chain of a node, root first, the node itself last.
// Fails with ErrScopeCycle if the walk revisits a node or outruns the tree depth.
func (u *ScopeUsecase) Chain(
	ctx context.Context,
	scopeID uuid.UUID,
) ([]*scopeDomain.Scope, error) {
	if cached, ok := u.chains.Get(scopeID.String()); ok {
		return cached.([]*scopeDomain.Scope), nil
	}

	chain := make([]*scopeDomain.Scope, 0, scopeDomain.MaxDepth)
	seen := make(map[uuid.UUID]bool, scopeDomain.MaxDepth)

	current := &scopeID
	for current != nil {
		if seen[*current] || len(chain) >= scopeDomain.MaxDepth {
			return nil, scopeDomain.ErrScopeCycle
		}
		seen[*current] = true

		node, err := u.scopeRepo.Get(ctx, *current)
		if err != nil {
			return nil, err
		}
		chain = append(chain, node)
		current = node.ParentID
	}

	// Walked leaf-to-root; callers want root first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	u.chains.Set(scopeID.String(), chain, int64(len(chain)))
	return chain, nil
}

// IsAncestor reports whether ancestorID lies on the chain of scopeID. A node
// counts as its own ancestor, matching grant applicability at the granted scope.
func (u *ScopeUsecase) IsAncestor(
	ctx context.Context,
	ancestorID, scopeID uuid.UUID,
) (bool, error) {
	chain, err := u.Chain(ctx, scopeID)
	if err != nil {
		return false, err
	}
	for _, node := range chain {
		if node.ID == ancestorID {
			return true, nil
		}
	}
	return false, nil
}

// EnsureTenant provisions the platform, organization, and tenant nodes for a
// tenant, creating whichever are missing, and returns the tenant node. Safe to
// call concurrently; creation is conflict-tolerant.
func (u *ScopeUsecase) EnsureTenant(
	ctx context.Context,
	organizationRef string,
	tenantID uuid.UUID,
) (*scopeDomain.Scope, error) {
	if organizationRef == "" || tenantID == uuid.Nil {
		return nil, scopeDomain.ErrInvalidScopeRef
	}

	platform, err := u.ensureRoot(ctx)
	if err != nil {
		return nil, err
	}

	organization, err := u.ensureChild(ctx, platform.ID, scopeDomain.TypeOrganization, organizationRef)
	if err != nil {
		return nil, err
	}

	return u.ensureChild(ctx, organization.ID, scopeDomain.TypeTenant, tenantID.String())
}

// ensureRoot fetches or creates the single platform root node.
func (u *ScopeUsecase) ensureRoot(ctx context.Context) (*scopeDomain.Scope, error) {
	root, err := u.scopeRepo.GetByTypeAndRef(ctx, scopeDomain.TypePlatform, PlatformRef)
	if err == nil {
		return root, nil
	}
	if !errors.Is(err, scopeDomain.ErrScopeNotFound) {
		return nil, err
	}

	createErr := u.scopeRepo.Create(ctx, &scopeDomain.Scope{
		ID:          uuid.Must(uuid.NewV7()),
		Type:        scopeDomain.TypePlatform,
		ExternalRef: PlatformRef,
		CreatedAt:   time.Now().UTC(),
	})
	if createErr != nil {
		return nil, createErr
	}

	// Re-read: a concurrent creator may have won the insert.
	return u.scopeRepo.GetByTypeAndRef(ctx, scopeDomain.TypePlatform, PlatformRef)
}

// ensureChild fetches or creates a child node under a parent.
func (u *ScopeUsecase) ensureChild(
	ctx context.Context,
	parentID uuid.UUID,
	scopeType scopeDomain.Type,
	externalRef string,
) (*scopeDomain.Scope, error) {
	child, err := u.scopeRepo.GetChild(ctx, parentID, scopeType, externalRef)
	if err == nil {
		return child, nil
	}
	if !errors.Is(err, scopeDomain.ErrScopeNotFound) {
		return nil, err
	}

	createErr := u.scopeRepo.Create(ctx, &scopeDomain.Scope{
		ID:          uuid.Must(uuid.NewV7()),
		Type:        scopeType,
		ParentID:    &parentID,
		ExternalRef: externalRef,
		CreatedAt:   time.Now().UTC(),
	})
	if createErr != nil {
		return nil, createErr
	}

	return u.scopeRepo.GetChild(ctx, parentID, scopeType, externalRef)
}
