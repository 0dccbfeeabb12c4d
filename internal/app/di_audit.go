package app

import (
	"fmt"

	auditRepository "github.com/glennballman/Community-Canvas-sub004/internal/audit/repository"
	auditUsecase "github.com/glennballman/Community-Canvas-sub004/internal/audit/usecase"
)

// AuditRepository returns the audit repository instance.
func (c *Container) AuditRepository() (auditUsecase.AuditRepository, error) {
	var err error
	c.auditRepoInit.Do(func() {
		c.auditRepo, err = c.initAuditRepository()
		if err != nil {
			c.initErrors["auditRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditRepo"]; exists {
		return nil, storedErr
	}
	return c.auditRepo, nil
}

// AuditUseCase returns the audit use case instance. Creating it starts the
// background audit writer; Shutdown drains and stops it.
func (c *Container) AuditUseCase() (auditUsecase.Audit, error) {
	var err error
	c.auditUseCaseInit.Do(func() {
		c.auditUseCase, err = c.initAuditUseCase()
		if err != nil {
			c.initErrors["auditUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditUseCase, nil
}

// initAuditRepository creates the audit repository instance.
func (c *Container) initAuditRepository() (auditUsecase.AuditRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return auditRepository.NewMySQLAuditRepository(db), nil
	case "postgres":
		return auditRepository.NewPostgreSQLAuditRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuditUseCase creates the audit use case with all its dependencies.
func (c *Container) initAuditUseCase() (auditUsecase.Audit, error) {
	auditRepo, err := c.AuditRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit repository for audit use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for audit use case: %w", err)
	}

	return auditUsecase.NewAuditUsecase(
		auditRepo,
		c.Logger(),
		businessMetrics,
		c.config.AuditQueueSize,
	), nil
}
