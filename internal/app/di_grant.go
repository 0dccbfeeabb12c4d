package app

import (
	"fmt"

	grantRepository "github.com/glennballman/Community-Canvas-sub004/internal/grant/repository"
	grantUsecase "github.com/glennballman/Community-Canvas-sub004/internal/grant/usecase"
)

// GrantRepository returns the grant repository instance.
func (c *Container) GrantRepository() (grantUsecase.GrantRepository, error) {
	var err error
	c.grantRepoInit.Do(func() {
		c.grantRepo, err = c.initGrantRepository()
		if err != nil {
			c.initErrors["grantRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["grantRepo"]; exists {
		return nil, storedErr
	}
	return c.grantRepo, nil
}

// ResourceGrantRepository returns the resource grant repository instance.
func (c *Container) ResourceGrantRepository() (grantUsecase.ResourceGrantRepository, error) {
	var err error
	c.resourceGrantRepoInit.Do(func() {
		c.resourceGrantRepo, err = c.initResourceGrantRepository()
		if err != nil {
			c.initErrors["resourceGrantRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["resourceGrantRepo"]; exists {
		return nil, storedErr
	}
	return c.resourceGrantRepo, nil
}

// GrantUseCase returns the grant use case instance.
func (c *Container) GrantUseCase() (grantUsecase.Grant, error) {
	var err error
	c.grantUseCaseInit.Do(func() {
		c.grantUseCase, err = c.initGrantUseCase()
		if err != nil {
			c.initErrors["grantUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["grantUseCase"]; exists {
		return nil, storedErr
	}
	return c.grantUseCase, nil
}

// initGrantRepository creates the grant repository instance.
func (c *Container) initGrantRepository() (grantUsecase.GrantRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for grant repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return grantRepository.NewMySQLGrantRepository(db), nil
	case "postgres":
		return grantRepository.NewPostgreSQLGrantRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initResourceGrantRepository creates the resource grant repository instance.
func (c *Container) initResourceGrantRepository() (grantUsecase.ResourceGrantRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for resource grant repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return grantRepository.NewMySQLResourceGrantRepository(db), nil
	case "postgres":
		return grantRepository.NewPostgreSQLResourceGrantRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initGrantUseCase creates the grant use case with all its dependencies.
func (c *Container) initGrantUseCase() (grantUsecase.Grant, error) {
	grantRepo, err := c.GrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant repository for grant use case: %w", err)
	}

	resourceGrantRepo, err := c.ResourceGrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get resource grant repository for grant use case: %w", err)
	}

	scopeUseCase, err := c.ScopeUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get scope use case for grant use case: %w", err)
	}

	return grantUsecase.NewGrantUsecase(grantRepo, resourceGrantRepo, scopeUseCase), nil
}
