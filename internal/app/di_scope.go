package app

import (
	"fmt"

	scopeRepository "github.com/glennballman/Community-Canvas-sub004/internal/scope/repository"
	scopeUsecase "github.com/glennballman/Community-Canvas-sub004/internal/scope/usecase"
)

// ScopeRepository returns the scope repository instance.
func (c *Container) ScopeRepository() (scopeUsecase.ScopeRepository, error) {
	var err error
	c.scopeRepoInit.Do(func() {
		c.scopeRepo, err = c.initScopeRepository()
		if err != nil {
			c.initErrors["scopeRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["scopeRepo"]; exists {
		return nil, storedErr
	}
	return c.scopeRepo, nil
}

// ScopeUseCase returns the scope use case instance.
func (c *Container) ScopeUseCase() (scopeUsecase.Scope, error) {
	var err error
	c.scopeUseCaseInit.Do(func() {
		c.scopeUseCase, err = c.initScopeUseCase()
		if err != nil {
			c.initErrors["scopeUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["scopeUseCase"]; exists {
		return nil, storedErr
	}
	return c.scopeUseCase, nil
}

// initScopeRepository creates the scope repository instance.
func (c *Container) initScopeRepository() (scopeUsecase.ScopeRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for scope repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return scopeRepository.NewMySQLScopeRepository(db), nil
	case "postgres":
		return scopeRepository.NewPostgreSQLScopeRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initScopeUseCase creates the scope use case with all its dependencies.
func (c *Container) initScopeUseCase() (scopeUsecase.Scope, error) {
	scopeRepo, err := c.ScopeRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get scope repository for scope use case: %w", err)
	}

	useCase, err := scopeUsecase.NewScopeUsecase(scopeRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to create scope use case: %w", err)
	}
	return useCase, nil
}
