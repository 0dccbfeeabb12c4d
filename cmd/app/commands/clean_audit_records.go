package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/glennballman/Community-Canvas-sub004/internal/app"
	"github.com/glennballman/Community-Canvas-sub004/internal/config"
)

// RunCleanAuditRecords deletes audit records older than the specified number of
// days. A days value of zero falls back to the configured retention. Supports
// text and JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanAuditRecords(ctx context.Context, days int, format string) error {
	// Validate days parameter
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	// Load configuration
	cfg := config.Load()

	retention := cfg.AuditRetention
	if days > 0 {
		retention = time.Duration(days) * 24 * time.Hour
	}

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("cleaning audit records",
		slog.Duration("retention", retention),
	)

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	auditUseCase, err := container.AuditUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize audit use case: %w", err)
	}

	count, err := auditUseCase.CleanOldRecords(ctx, retention)
	if err != nil {
		return fmt.Errorf("failed to delete audit records: %w", err)
	}

	if format == "json" {
		outputCleanJSON(count, retention)
	} else {
		outputCleanText(count, retention)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Duration("retention", retention),
	)

	return nil
}

// outputCleanText outputs the result in human-readable text format.
func outputCleanText(count int64, retention time.Duration) {
	fmt.Printf("Successfully deleted %d audit record(s) older than %s\n", count, retention)
}

// outputCleanJSON outputs the result in JSON format for machine consumption.
func outputCleanJSON(count int64, retention time.Duration) {
	result := map[string]interface{}{
		"count":     count,
		"retention": retention.String(),
	}
	_ = json.NewEncoder(os.Stdout).Encode(result)
}
