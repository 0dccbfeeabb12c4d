package app

import (
	"fmt"

	principalRepository "github.com/glennballman/Community-Canvas-sub004/internal/principal/repository"
	principalUsecase "github.com/glennballman/Community-Canvas-sub004/internal/principal/usecase"
)

// PrincipalRepository returns the principal repository instance.
func (c *Container) PrincipalRepository() (principalUsecase.PrincipalRepository, error) {
	var err error
	c.principalRepoInit.Do(func() {
		c.principalRepo, err = c.initPrincipalRepository()
		if err != nil {
			c.initErrors["principalRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["principalRepo"]; exists {
		return nil, storedErr
	}
	return c.principalRepo, nil
}

// PrincipalUseCase returns the principal use case instance.
func (c *Container) PrincipalUseCase() (principalUsecase.Principal, error) {
	var err error
	c.principalUseCaseInit.Do(func() {
		c.principalUseCase, err = c.initPrincipalUseCase()
		if err != nil {
			c.initErrors["principalUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["principalUseCase"]; exists {
		return nil, storedErr
	}
	return c.principalUseCase, nil
}

// initPrincipalRepository creates the principal repository instance.
func (c *Container) initPrincipalRepository() (principalUsecase.PrincipalRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for principal repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return principalRepository.NewMySQLPrincipalRepository(db), nil
	case "postgres":
		return principalRepository.NewPostgreSQLPrincipalRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initPrincipalUseCase creates the principal use case with all its dependencies.
func (c *Container) initPrincipalUseCase() (principalUsecase.Principal, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for principal use case: %w", err)
	}

	principalRepo, err := c.PrincipalRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal repository for principal use case: %w", err)
	}

	return principalUsecase.NewPrincipalUsecase(txManager, principalRepo), nil
}
