package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glennballman/Community-Canvas-sub004/internal/app"
	"github.com/glennballman/Community-Canvas-sub004/internal/config"
)

// RunExpireMachineSessions expires active machine control sessions older than
// the maximum age. A maxAgeMinutes value of zero falls back to the configured
// maximum. Intended to run on a schedule so a crashed operator client cannot
// leave a supervised session satisfying the safety gate forever.
//
// Requirements: Database must be migrated and accessible.
func RunExpireMachineSessions(ctx context.Context, maxAgeMinutes int) error {
	// Validate parameter
	if maxAgeMinutes < 0 {
		return fmt.Errorf("max-age-minutes must be a positive number, got: %d", maxAgeMinutes)
	}

	// Load configuration
	cfg := config.Load()

	maxAge := cfg.MachineSessionMaxAge
	if maxAgeMinutes > 0 {
		maxAge = time.Duration(maxAgeMinutes) * time.Minute
	}

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("expiring stale machine control sessions",
		slog.Duration("max_age", maxAge),
	)

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	machineUseCase, err := container.MachineUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize machine use case: %w", err)
	}

	count, err := machineUseCase.ExpireStaleSessions(ctx, maxAge)
	if err != nil {
		return fmt.Errorf("failed to expire machine sessions: %w", err)
	}

	fmt.Printf("Expired %d stale machine control session(s)\n", count)

	logger.Info("session expiry completed", slog.Int64("count", count))
	return nil
}
