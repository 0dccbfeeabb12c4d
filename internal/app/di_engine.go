package app

import (
	"fmt"

	auditDomain "github.com/glennballman/Community-Canvas-sub004/internal/audit/domain"
	auditUsecase "github.com/glennballman/Community-Canvas-sub004/internal/audit/usecase"
	engineUsecase "github.com/glennballman/Community-Canvas-sub004/internal/engine/usecase"
)

// auditRecorderAdapter bridges the engine's narrow audit contract to the audit
// use case.
type auditRecorderAdapter struct {
	audit auditUsecase.Audit
}

func (a *auditRecorderAdapter) Record(input engineUsecase.RecordedDecision) {
	a.audit.Record(auditUsecase.RecordInput{
		PrincipalID:         input.PrincipalID,
		OriginalPrincipalID: input.OriginalPrincipalID,
		CapabilityCode:      input.CapabilityCode,
		ScopeID:             input.ScopeID,
		ResourceKey:         input.ResourceKey,
		Effect:              auditDomain.Effect(input.Effect),
		Reason:              input.Reason,
		RequestID:           input.RequestID,
	})
}

// Impersonation returns the impersonation manager instance.
func (c *Container) Impersonation() (*engineUsecase.ImpersonationManager, error) {
	var err error
	c.impersonationInit.Do(func() {
		c.impersonation, err = c.initImpersonation()
		if err != nil {
			c.initErrors["impersonation"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["impersonation"]; exists {
		return nil, storedErr
	}
	return c.impersonation, nil
}

// EngineUseCase returns the authorization engine instance, wrapped with the
// metrics decorator.
func (c *Container) EngineUseCase() (engineUsecase.Engine, error) {
	var err error
	c.engineUseCaseInit.Do(func() {
		c.engineUseCase, err = c.initEngineUseCase()
		if err != nil {
			c.initErrors["engineUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["engineUseCase"]; exists {
		return nil, storedErr
	}
	return c.engineUseCase, nil
}

// initImpersonation creates the impersonation manager.
func (c *Container) initImpersonation() (*engineUsecase.ImpersonationManager, error) {
	principalUseCase, err := c.PrincipalUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal use case for impersonation: %w", err)
	}
	return engineUsecase.NewImpersonationManager(principalUseCase), nil
}

// initEngineUseCase creates the engine use case with all its dependencies.
func (c *Container) initEngineUseCase() (engineUsecase.Engine, error) {
	principalUseCase, err := c.PrincipalUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal use case for engine: %w", err)
	}

	scopeUseCase, err := c.ScopeUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get scope use case for engine: %w", err)
	}

	grantRepo, err := c.GrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant repository for engine: %w", err)
	}

	resourceGrantRepo, err := c.ResourceGrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get resource grant repository for engine: %w", err)
	}

	machineUseCase, err := c.MachineUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get machine use case for engine: %w", err)
	}

	impersonation, err := c.Impersonation()
	if err != nil {
		return nil, fmt.Errorf("failed to get impersonation manager for engine: %w", err)
	}

	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for engine: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for engine: %w", err)
	}

	engine := engineUsecase.NewEngineUsecase(
		principalUseCase,
		scopeUseCase,
		grantRepo,
		resourceGrantRepo,
		machineUseCase,
		impersonation,
		&auditRecorderAdapter{audit: auditUseCase},
	)

	return engineUsecase.NewMetricsEngineDecorator(engine, businessMetrics), nil
}
