package app

import (
	"fmt"

	auditHTTP "github.com/glennballman/Community-Canvas-sub004/internal/audit/http"
	engineHTTP "github.com/glennballman/Community-Canvas-sub004/internal/engine/http"
	grantHTTP "github.com/glennballman/Community-Canvas-sub004/internal/grant/http"
	"github.com/glennballman/Community-Canvas-sub004/internal/http"
	machineHTTP "github.com/glennballman/Community-Canvas-sub004/internal/machine/http"
	"github.com/glennballman/Community-Canvas-sub004/internal/metrics"
	principalHTTP "github.com/glennballman/Community-Canvas-sub004/internal/principal/http"
)

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	principalUseCase, err := c.PrincipalUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal use case for http server: %w", err)
	}

	grantUseCase, err := c.GrantUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant use case for http server: %w", err)
	}

	engineUseCase, err := c.EngineUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get engine use case for http server: %w", err)
	}

	impersonation, err := c.Impersonation()
	if err != nil {
		return nil, fmt.Errorf("failed to get impersonation manager for http server: %w", err)
	}

	machineUseCase, err := c.MachineUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get machine use case for http server: %w", err)
	}

	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for http server: %w", err)
	}

	handlers := http.Handlers{
		Principal: principalHTTP.NewPrincipalHandler(principalUseCase, logger),
		Grant:     grantHTTP.NewGrantHandler(grantUseCase, logger),
		Engine:    engineHTTP.NewEngineHandler(engineUseCase, impersonation, logger),
		Machine:   machineHTTP.NewMachineHandler(machineUseCase, logger),
		Audit:     auditHTTP.NewAuditHandler(auditUseCase, logger),
	}

	server := http.NewServer(
		db,
		c.config.ServerHost,
		c.config.ServerPort,
		logger,
		http.Config{
			RateLimitEnabled:        c.config.RateLimitEnabled,
			RateLimitRequestsPerSec: c.config.RateLimitRequestsPerSec,
			RateLimitBurst:          c.config.RateLimitBurst,
			CORSEnabled:             c.config.CORSEnabled,
			CORSAllowOrigins:        c.config.CORSAllowOrigins,
		},
		handlers,
	)

	if c.config.MetricsEnabled {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}
		server.SetMetricsMiddleware(metrics.HTTPMetricsMiddleware(
			provider.MeterProvider(),
			c.config.MetricsNamespace,
		))
	}

	return server, nil
}
