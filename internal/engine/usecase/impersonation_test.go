package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	engineDomain "github.com/glennballman/Community-Canvas-sub004/internal/engine/domain"
	"github.com/glennballman/Community-Canvas-sub004/internal/engine/usecase"
	"github.com/glennballman/Community-Canvas-sub004/internal/engine/usecase/mocks"
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
	principalDomain "github.com/glennballman/Community-Canvas-sub004/internal/principal/domain"
)

func TestImpersonationManager_StartStop(t *testing.T) {
	ctx := context.Background()

	activePrincipal := func(reader *mocks.MockPrincipalReader) *principalDomain.Principal {
		p := &principalDomain.Principal{ID: uuid.Must(uuid.NewV7()), Active: true}
		reader.On("Get", mock.Anything, p.ID).Return(p, nil)
		return p
	}

	t.Run("Success_StartAndStop", func(t *testing.T) {
		reader := new(mocks.MockPrincipalReader)
		manager := usecase.NewImpersonationManager(reader)

		original := uuid.Must(uuid.NewV7())
		impersonated := activePrincipal(reader)

		require.NoError(t, manager.Start(ctx, "session-1", original, impersonated.ID))

		ac := manager.Acting("session-1", original)
		assert.True(t, ac.Impersonating())
		assert.Equal(t, original, ac.OriginalPrincipalID)
		assert.Equal(t, impersonated.ID, ac.ActingPrincipalID)

		require.NoError(t, manager.Stop(ctx, "session-1"))

		ac = manager.Acting("session-1", original)
		assert.False(t, ac.Impersonating())
		assert.Equal(t, original, ac.ActingPrincipalID)
	})

	t.Run("Error_StartTwiceConflicts", func(t *testing.T) {
		reader := new(mocks.MockPrincipalReader)
		manager := usecase.NewImpersonationManager(reader)

		original := uuid.Must(uuid.NewV7())
		impersonated := activePrincipal(reader)

		require.NoError(t, manager.Start(ctx, "session-1", original, impersonated.ID))

		err := manager.Start(ctx, "session-1", original, impersonated.ID)
		assert.ErrorIs(t, err, usecase.ErrAlreadyImpersonating)
	})

	t.Run("Error_StopWithoutStart", func(t *testing.T) {
		manager := usecase.NewImpersonationManager(new(mocks.MockPrincipalReader))

		err := manager.Stop(ctx, "session-1")
		assert.ErrorIs(t, err, usecase.ErrNotImpersonating)
	})

	t.Run("Error_SelfImpersonation", func(t *testing.T) {
		manager := usecase.NewImpersonationManager(new(mocks.MockPrincipalReader))

		id := uuid.Must(uuid.NewV7())
		err := manager.Start(ctx, "session-1", id, id)
		assert.ErrorIs(t, err, usecase.ErrSelfImpersonation)
	})

	t.Run("Error_InactiveImpersonatedPrincipal", func(t *testing.T) {
		reader := new(mocks.MockPrincipalReader)
		manager := usecase.NewImpersonationManager(reader)

		inactive := &principalDomain.Principal{ID: uuid.Must(uuid.NewV7()), Active: false}
		reader.On("Get", mock.Anything, inactive.ID).Return(inactive, nil)

		err := manager.Start(ctx, "session-1", uuid.Must(uuid.NewV7()), inactive.ID)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_BlankSessionID", func(t *testing.T) {
		manager := usecase.NewImpersonationManager(new(mocks.MockPrincipalReader))

		err := manager.Start(ctx, "", uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Success_ConcurrentTogglesAreAtomic", func(t *testing.T) {
		reader := new(mocks.MockPrincipalReader)
		manager := usecase.NewImpersonationManager(reader)

		original := uuid.Must(uuid.NewV7())
		impersonated := activePrincipal(reader)

		var wg sync.WaitGroup
		for i := range 16 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if i%2 == 0 {
					_ = manager.Start(ctx, "session-1", original, impersonated.ID)
				} else {
					_ = manager.Stop(ctx, "session-1")
				}
				// Whatever interleaving happened, every observation is one of
				// the two consistent states, never a torn mix.
				ac := manager.Acting("session-1", original)
				ok := ac == engineDomain.SelfContext(original) ||
					ac == engineDomain.AuthContext{
						OriginalPrincipalID: original,
						ActingPrincipalID:   impersonated.ID,
					}
				assert.True(t, ok)
			}(i)
		}
		wg.Wait()
	})
}

// TestImpersonation_RoundTrip drives the full engine: after start and stop, the
// original principal's decisions and effective capability set are exactly what
// they were before impersonation began.
func TestImpersonation_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f := setupEngine()
	tr := buildTree()

	original := f.stubPrincipal(true)
	impersonated := f.stubPrincipal(true)
	ref := f.stubScope(tr.tenant, tr.tenantChain())

	// The original holds viewer; the impersonated principal holds only
	// machine_operator.
	f.stubGrants(original.ID, roleGrant(original.ID, tr.tenant.ID, "viewer"))
	f.stubGrants(impersonated.ID, roleGrant(impersonated.ID, tr.tenant.ID, "machine_operator"))

	authorizeAs := func(sessionID string) *engineDomain.Decision {
		decision, err := f.uc.Authorize(ctx, engineDomain.AuthorizeInput{
			SessionID:      sessionID,
			PrincipalID:    original.ID,
			CapabilityCode: "reservations.all.view",
			ScopeRef:       ref,
		})
		require.NoError(t, err)
		return decision
	}

	before, err := f.uc.ListEffectiveCapabilities(ctx, original.ID, ref)
	require.NoError(t, err)
	assert.True(t, authorizeAs("session-1").Allowed())

	require.NoError(t, f.impersonation.Start(ctx, "session-1", original.ID, impersonated.ID))

	// Grants are substituted, never layered: the viewer capability is gone
	// while impersonating a machine operator.
	during := authorizeAs("session-1")
	assert.Equal(t, engineDomain.EffectDeny, during.Effect)
	assert.Equal(t, engineDomain.ReasonCapabilityNotGranted, during.Reason)

	// The audit trail names both principals while impersonating.
	assert.Equal(t, impersonated.ID, f.audit.Last().PrincipalID)
	assert.Equal(t, original.ID, f.audit.Last().OriginalPrincipalID)

	require.NoError(t, f.impersonation.Stop(ctx, "session-1"))

	after, err := f.uc.ListEffectiveCapabilities(ctx, original.ID, ref)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.True(t, authorizeAs("session-1").Allowed())
}
