package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
	grantDomain "github.com/glennballman/Community-Canvas-sub004/internal/grant/domain"
	"github.com/glennballman/Community-Canvas-sub004/internal/grant/usecase/mocks"
	scopeDomain "github.com/glennballman/Community-Canvas-sub004/internal/scope/domain"
)

func setupGrantUsecase() (*GrantUsecase, *mocks.MockGrantRepository, *mocks.MockResourceGrantRepository, *mocks.MockScopeResolver) {
	mockGrantRepo := new(mocks.MockGrantRepository)
	mockResourceRepo := new(mocks.MockResourceGrantRepository)
	mockScopes := new(mocks.MockScopeResolver)
	return NewGrantUsecase(mockGrantRepo, mockResourceRepo, mockScopes), mockGrantRepo, mockResourceRepo, mockScopes
}

// TestGrantUsecase_CreateGrant tests grant creation.
func TestGrantUsecase_CreateGrant(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.Must(uuid.NewV7())
	tenantScope := &scopeDomain.Scope{
		ID:          uuid.Must(uuid.NewV7()),
		Type:        scopeDomain.TypeTenant,
		ExternalRef: tenantID.String(),
	}

	t.Run("Success_CapabilityGrant", func(t *testing.T) {
		uc, mockGrantRepo, _, mockScopes := setupGrantUsecase()

		principalID := uuid.Must(uuid.NewV7())
		ref := scopeDomain.Ref{TenantID: &tenantID}
		mockScopes.On("Resolve", ctx, ref).Return(tenantScope, nil).Once()
		mockGrantRepo.On("Create", ctx, mock.MatchedBy(func(g *grantDomain.Grant) bool {
			return g.PrincipalID == principalID &&
				g.ScopeID == tenantScope.ID &&
				g.RoleName == nil &&
				g.CapabilityCode != nil && *g.CapabilityCode == "reservations.create"
		})).Return(nil).Once()

		grant, err := uc.CreateGrant(ctx, CreateGrantInput{
			PrincipalID:    principalID,
			ScopeRef:       ref,
			CapabilityCode: "reservations.create",
		})
		require.NoError(t, err)
		assert.NotNil(t, grant.CapabilityCode)
		mockGrantRepo.AssertExpectations(t)
	})

	t.Run("Success_RoleGrantWithConditions", func(t *testing.T) {
		uc, mockGrantRepo, _, mockScopes := setupGrantUsecase()

		ref := scopeDomain.Ref{TenantID: &tenantID}
		conditions := json.RawMessage(`{"max_amount_cents": 5000}`)
		mockScopes.On("Resolve", ctx, ref).Return(tenantScope, nil).Once()
		mockGrantRepo.On("Create", ctx, mock.MatchedBy(func(g *grantDomain.Grant) bool {
			return g.RoleName != nil && *g.RoleName == "coordinator" && len(g.Conditions) > 0
		})).Return(nil).Once()

		grant, err := uc.CreateGrant(ctx, CreateGrantInput{
			PrincipalID: uuid.Must(uuid.NewV7()),
			ScopeRef:    ref,
			RoleName:    "coordinator",
			Conditions:  conditions,
		})
		require.NoError(t, err)
		assert.NotNil(t, grant.RoleName)
	})

	t.Run("Success_ConditionsWithUnfamiliarKeyAreStored", func(t *testing.T) {
		// Key recognition is the evaluator's contract, not the writer's:
		// a payload like this must be storable and then hard-fail evaluation.
		uc, mockGrantRepo, _, mockScopes := setupGrantUsecase()

		ref := scopeDomain.Ref{TenantID: &tenantID}
		mockScopes.On("Resolve", ctx, ref).Return(tenantScope, nil).Once()
		mockGrantRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		_, err := uc.CreateGrant(ctx, CreateGrantInput{
			PrincipalID:    uuid.Must(uuid.NewV7()),
			ScopeRef:       ref,
			CapabilityCode: "reservations.create",
			Conditions:     json.RawMessage(`{"moon_phase": "full"}`),
		})
		assert.NoError(t, err)
	})

	t.Run("Error_RoleAndCapability", func(t *testing.T) {
		uc, _, _, _ := setupGrantUsecase()

		_, err := uc.CreateGrant(ctx, CreateGrantInput{
			PrincipalID:    uuid.Must(uuid.NewV7()),
			ScopeRef:       scopeDomain.Ref{TenantID: &tenantID},
			RoleName:       "viewer",
			CapabilityCode: "reservations.create",
		})
		assert.ErrorIs(t, err, grantDomain.ErrRoleXorCapability)
	})

	t.Run("Error_NeitherRoleNorCapability", func(t *testing.T) {
		uc, _, _, _ := setupGrantUsecase()

		_, err := uc.CreateGrant(ctx, CreateGrantInput{
			PrincipalID: uuid.Must(uuid.NewV7()),
			ScopeRef:    scopeDomain.Ref{TenantID: &tenantID},
		})
		assert.ErrorIs(t, err, grantDomain.ErrRoleXorCapability)
	})

	t.Run("Error_UnknownCapability", func(t *testing.T) {
		uc, _, _, mockScopes := setupGrantUsecase()

		ref := scopeDomain.Ref{TenantID: &tenantID}
		mockScopes.On("Resolve", ctx, ref).Return(tenantScope, nil).Once()

		_, err := uc.CreateGrant(ctx, CreateGrantInput{
			PrincipalID:    uuid.Must(uuid.NewV7()),
			ScopeRef:       ref,
			CapabilityCode: "reservations.vaporize",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_RoleScopeKindMismatch", func(t *testing.T) {
		uc, _, _, mockScopes := setupGrantUsecase()

		// platform_admin is defined for platform scopes, not tenants.
		ref := scopeDomain.Ref{TenantID: &tenantID}
		mockScopes.On("Resolve", ctx, ref).Return(tenantScope, nil).Once()

		_, err := uc.CreateGrant(ctx, CreateGrantInput{
			PrincipalID: uuid.Must(uuid.NewV7()),
			ScopeRef:    ref,
			RoleName:    "platform_admin",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_ConditionsNotAnObject", func(t *testing.T) {
		uc, _, _, mockScopes := setupGrantUsecase()

		ref := scopeDomain.Ref{TenantID: &tenantID}
		mockScopes.On("Resolve", ctx, ref).Return(tenantScope, nil).Once()

		_, err := uc.CreateGrant(ctx, CreateGrantInput{
			PrincipalID:    uuid.Must(uuid.NewV7()),
			ScopeRef:       ref,
			CapabilityCode: "reservations.create",
			Conditions:     json.RawMessage(`["not","an","object"]`),
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

// TestGrantUsecase_RevokeGrant tests grant revocation.
func TestGrantUsecase_RevokeGrant(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		uc, mockGrantRepo, _, _ := setupGrantUsecase()

		grantID := uuid.Must(uuid.NewV7())
		mockGrantRepo.On("Revoke", ctx, grantID, mock.AnythingOfType("time.Time")).
			Return(nil).Once()

		assert.NoError(t, uc.RevokeGrant(ctx, grantID))
		mockGrantRepo.AssertExpectations(t)
	})

	t.Run("Error_AlreadyRevoked", func(t *testing.T) {
		uc, mockGrantRepo, _, _ := setupGrantUsecase()

		grantID := uuid.Must(uuid.NewV7())
		mockGrantRepo.On("Revoke", ctx, grantID, mock.AnythingOfType("time.Time")).
			Return(grantDomain.ErrGrantAlreadyRevoked).Once()

		err := uc.RevokeGrant(ctx, grantID)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

// TestGrantUsecase_CreateResourceGrant tests resource grant creation.
func TestGrantUsecase_CreateResourceGrant(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.Must(uuid.NewV7())

	resourceScope := &scopeDomain.Scope{
		ID:          uuid.Must(uuid.NewV7()),
		Type:        scopeDomain.TypeResource,
		ExternalRef: "run-42",
	}

	t.Run("Success", func(t *testing.T) {
		uc, _, mockResourceRepo, mockScopes := setupGrantUsecase()

		ref := scopeDomain.Ref{TenantID: &tenantID, ResourceType: "service_runs", ResourceKey: "run-42"}
		mockScopes.On("Resolve", ctx, ref).Return(resourceScope, nil).Once()
		mockResourceRepo.On("Create", ctx, mock.MatchedBy(func(g *grantDomain.ResourceGrant) bool {
			return g.ScopeID == resourceScope.ID && g.CapabilityCode == "service_runs.own.view"
		})).Return(nil).Once()

		grant, err := uc.CreateResourceGrant(ctx, CreateResourceGrantInput{
			PrincipalID:    uuid.Must(uuid.NewV7()),
			ScopeRef:       ref,
			CapabilityCode: "service_runs.own.view",
		})
		require.NoError(t, err)
		assert.True(t, grant.Active())
	})

	t.Run("Error_NotAResourceScope", func(t *testing.T) {
		uc, _, _, mockScopes := setupGrantUsecase()

		tenantScope := &scopeDomain.Scope{
			ID:   uuid.Must(uuid.NewV7()),
			Type: scopeDomain.TypeTenant,
		}
		ref := scopeDomain.Ref{TenantID: &tenantID}
		mockScopes.On("Resolve", ctx, ref).Return(tenantScope, nil).Once()

		_, err := uc.CreateResourceGrant(ctx, CreateResourceGrantInput{
			PrincipalID:    uuid.Must(uuid.NewV7()),
			ScopeRef:       ref,
			CapabilityCode: "service_runs.own.view",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_UnknownCapability", func(t *testing.T) {
		uc, _, _, _ := setupGrantUsecase()

		_, err := uc.CreateResourceGrant(ctx, CreateResourceGrantInput{
			PrincipalID:    uuid.Must(uuid.NewV7()),
			ScopeRef:       scopeDomain.Ref{TenantID: &tenantID},
			CapabilityCode: "service_runs.own.launch",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

// TestGrant_Lifecycle tests the grant state helpers.
func TestGrant_Lifecycle(t *testing.T) {
	now := time.Now().UTC()

	t.Run("ActiveGrant", func(t *testing.T) {
		g := &grantDomain.Grant{}
		assert.True(t, g.Active(now))
	})

	t.Run("ExpiredGrant", func(t *testing.T) {
		expired := now.Add(-time.Hour)
		g := &grantDomain.Grant{ExpiresAt: &expired}
		assert.True(t, g.Expired(now))
		assert.False(t, g.Active(now))
	})

	t.Run("RevokedGrant", func(t *testing.T) {
		revoked := now.Add(-time.Minute)
		g := &grantDomain.Grant{RevokedAt: &revoked}
		assert.True(t, g.Revoked())
		assert.False(t, g.Active(now))
	})

	t.Run("ExpiryBoundaryIsExclusive", func(t *testing.T) {
		g := &grantDomain.Grant{ExpiresAt: &now}
		assert.True(t, g.Expired(now))
	})
}
