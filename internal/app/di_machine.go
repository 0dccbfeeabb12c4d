package app

import (
	"fmt"

	machineRepository "github.com/glennballman/Community-Canvas-sub004/internal/machine/repository"
	machineUsecase "github.com/glennballman/Community-Canvas-sub004/internal/machine/usecase"
)

// MachineRepository returns the machine repository instance.
func (c *Container) MachineRepository() (machineUsecase.MachineRepository, error) {
	var err error
	c.machineRepoInit.Do(func() {
		c.machineRepo, err = c.initMachineRepository()
		if err != nil {
			c.initErrors["machineRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["machineRepo"]; exists {
		return nil, storedErr
	}
	return c.machineRepo, nil
}

// MachineUseCase returns the machine use case instance.
func (c *Container) MachineUseCase() (machineUsecase.Machine, error) {
	var err error
	c.machineUseCaseInit.Do(func() {
		c.machineUseCase, err = c.initMachineUseCase()
		if err != nil {
			c.initErrors["machineUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["machineUseCase"]; exists {
		return nil, storedErr
	}
	return c.machineUseCase, nil
}

// initMachineRepository creates the machine repository instance.
func (c *Container) initMachineRepository() (machineUsecase.MachineRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for machine repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return machineRepository.NewMySQLMachineRepository(db), nil
	case "postgres":
		return machineRepository.NewPostgreSQLMachineRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMachineUseCase creates the machine use case with all its dependencies.
func (c *Container) initMachineUseCase() (machineUsecase.Machine, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for machine use case: %w", err)
	}

	machineRepo, err := c.MachineRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get machine repository for machine use case: %w", err)
	}

	return machineUsecase.NewMachineUsecase(txManager, machineRepo), nil
}
