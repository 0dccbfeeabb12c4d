package app

import (
	"context"
	"fmt"

	catalogRepository "github.com/glennballman/Community-Canvas-sub004/internal/catalog/repository"
)

// CatalogSeeder mirrors the compiled capability catalog into the database.
type CatalogSeeder interface {
	Seed(ctx context.Context) error
}

// CatalogSeeder returns the catalog seeder instance.
func (c *Container) CatalogSeeder() (CatalogSeeder, error) {
	var err error
	c.catalogSeederInit.Do(func() {
		c.catalogSeeder, err = c.initCatalogSeeder()
		if err != nil {
			c.initErrors["catalogSeeder"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["catalogSeeder"]; exists {
		return nil, storedErr
	}
	return c.catalogSeeder, nil
}

// initCatalogSeeder creates the catalog seeder instance.
func (c *Container) initCatalogSeeder() (CatalogSeeder, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for catalog seeder: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return catalogRepository.NewMySQLCatalogRepository(db), nil
	case "postgres":
		return catalogRepository.NewPostgreSQLCatalogRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}
