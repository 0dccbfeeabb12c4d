package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	engineDomain "github.com/glennballman/Community-Canvas-sub004/internal/engine/domain"
	"github.com/glennballman/Community-Canvas-sub004/internal/metrics"
	scopeDomain "github.com/glennballman/Community-Canvas-sub004/internal/scope/domain"
)

// MetricsEngineDecorator wraps an Engine with decision metrics: counts and
// latency by outcome.
type MetricsEngineDecorator struct {
	engine          Engine
	businessMetrics metrics.BusinessMetrics
}

// NewMetricsEngineDecorator creates a new metrics decorator around an engine.
func NewMetricsEngineDecorator(
	engine Engine,
	businessMetrics metrics.BusinessMetrics,
) *MetricsEngineDecorator {
	return &MetricsEngineDecorator{
		engine:          engine,
		businessMetrics: businessMetrics,
	}
}

// Authorize delegates and records the decision outcome.
func (d *MetricsEngineDecorator) Authorize(
	ctx context.Context,
	input engineDomain.AuthorizeInput,
) (*engineDomain.Decision, error) {
	start := time.Now()

	decision, err := d.engine.Authorize(ctx, input)

	status := "error"
	if err == nil {
		status = string(decision.Effect)
	}
	d.businessMetrics.RecordOperation(ctx, "engine", "authorize", status)
	d.businessMetrics.RecordDuration(ctx, "engine", "authorize", time.Since(start), status)

	return decision, err
}

// ListEffectiveCapabilities delegates and records the call outcome.
func (d *MetricsEngineDecorator) ListEffectiveCapabilities(
	ctx context.Context,
	principalID uuid.UUID,
	ref scopeDomain.Ref,
) ([]string, error) {
	start := time.Now()

	codes, err := d.engine.ListEffectiveCapabilities(ctx, principalID, ref)

	status := "success"
	if err != nil {
		status = "error"
	}
	d.businessMetrics.RecordOperation(ctx, "engine", "list_capabilities", status)
	d.businessMetrics.RecordDuration(ctx, "engine", "list_capabilities", time.Since(start), status)

	return codes, err
}
