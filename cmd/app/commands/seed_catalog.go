package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/glennballman/Community-Canvas-sub004/internal/app"
	catalogDomain "github.com/glennballman/Community-Canvas-sub004/internal/catalog/domain"
	"github.com/glennballman/Community-Canvas-sub004/internal/config"
)

// RunSeedCatalog mirrors the compiled capability catalog into the database.
// Idempotent: safe to run on every deploy after migrations.
//
// Requirements: Database must be migrated and accessible.
func RunSeedCatalog(ctx context.Context) error {
	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("seeding capability catalog",
		slog.Int("capabilities", len(catalogDomain.All())),
		slog.Int("roles", len(catalogDomain.AllRoles())),
		slog.Int("condition_kinds", len(catalogDomain.ConditionRegistry())),
	)

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	seeder, err := container.CatalogSeeder()
	if err != nil {
		return fmt.Errorf("failed to initialize catalog seeder: %w", err)
	}

	if err := seeder.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	fmt.Printf("Seeded %d capabilities, %d roles, %d condition kinds\n",
		len(catalogDomain.All()),
		len(catalogDomain.AllRoles()),
		len(catalogDomain.ConditionRegistry()),
	)

	logger.Info("catalog seeding completed")
	return nil
}
