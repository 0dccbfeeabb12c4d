// Package http provides HTTP server implementation and route registration.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditHTTP "github.com/glennballman/Community-Canvas-sub004/internal/audit/http"
	engineHTTP "github.com/glennballman/Community-Canvas-sub004/internal/engine/http"
	grantHTTP "github.com/glennballman/Community-Canvas-sub004/internal/grant/http"
	machineHTTP "github.com/glennballman/Community-Canvas-sub004/internal/machine/http"
	principalHTTP "github.com/glennballman/Community-Canvas-sub004/internal/principal/http"
)

// Handlers groups the per-module HTTP handlers the router registers.
type Handlers struct {
	Principal *principalHTTP.PrincipalHandler
	Grant     *grantHTTP.GrantHandler
	Engine    *engineHTTP.EngineHandler
	Machine   *machineHTTP.MachineHandler
	Audit     *auditHTTP.AuditHandler
}

// Config holds the router-level settings for the HTTP server.
type Config struct {
	// RateLimitEnabled indicates whether the authorize endpoint is rate limited.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the per-IP request rate for the authorize endpoint.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the per-IP burst size for the authorize endpoint.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string
}

// Server represents the HTTP server.
type Server struct {
	server            *http.Server
	db                *sql.DB
	logger            *slog.Logger
	config            Config
	handlers          Handlers
	metricsMiddleware gin.HandlerFunc
}

// NewServer creates a new HTTP server. The db handle is only used by the
// readiness probe; passing nil reports the database component as down.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
	config Config,
	handlers Handlers,
) *Server {
	return &Server{
		db:       db,
		logger:   logger,
		config:   config,
		handlers: handlers,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetMetricsMiddleware installs an HTTP metrics middleware on the router.
// Must be called before Start.
func (s *Server) SetMetricsMiddleware(middleware gin.HandlerFunc) {
	s.metricsMiddleware = middleware
}

// setupRouter assembles the Gin router with middleware and all API routes.
func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if s.metricsMiddleware != nil {
		router.Use(s.metricsMiddleware)
	}

	if corsMiddleware := createCORSMiddleware(
		s.config.CORSEnabled,
		s.config.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// The authorize endpoint carries the platform's whole request volume and
	// gets its own rate limit group.
	authorize := v1.Group("")
	if s.config.RateLimitEnabled {
		authorize.Use(RateLimitMiddleware(
			s.config.RateLimitRequestsPerSec,
			s.config.RateLimitBurst,
			s.logger,
		))
	}
	authorize.POST("/authorize", s.handlers.Engine.AuthorizeHandler)

	v1.POST("/principals/resolve", s.handlers.Principal.ResolveHandler)
	v1.GET("/principals/:id", s.handlers.Principal.GetHandler)
	v1.POST("/principals/:id/deactivate", s.handlers.Principal.DeactivateHandler)
	v1.GET("/principals/:id/capabilities", s.handlers.Engine.CapabilitiesHandler)

	v1.POST("/grants", s.handlers.Grant.CreateHandler)
	v1.GET("/grants", s.handlers.Grant.ListHandler)
	v1.POST("/grants/:id/revoke", s.handlers.Grant.RevokeHandler)
	v1.POST("/resource-grants", s.handlers.Grant.CreateResourceGrantHandler)
	v1.GET("/resource-grants", s.handlers.Grant.ListResourceGrantsHandler)
	v1.POST("/resource-grants/:id/revoke", s.handlers.Grant.RevokeResourceGrantHandler)

	v1.POST("/impersonation/start", s.handlers.Engine.StartImpersonationHandler)
	v1.POST("/impersonation/stop", s.handlers.Engine.StopImpersonationHandler)

	v1.POST("/machine-sessions", s.handlers.Machine.StartSessionHandler)
	v1.GET("/machine-sessions/:id", s.handlers.Machine.GetSessionHandler)
	v1.POST("/machine-sessions/:id/end", s.handlers.Machine.EndSessionHandler)
	v1.POST("/machine-sessions/:id/emergency-stop", s.handlers.Machine.EmergencyStopHandler)
	v1.POST("/certifications", s.handlers.Machine.GrantCertificationHandler)

	v1.GET("/audit-records", s.handlers.Audit.ListHandler)

	return router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve decisions, checking
// each dependency it needs.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}
	status := http.StatusOK
	overall := "ready"

	if s.db == nil {
		components["database"] = "error"
		status = http.StatusServiceUnavailable
		overall = "not_ready"
	} else {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(pingCtx); err != nil {
			components["database"] = "error"
			status = http.StatusServiceUnavailable
			overall = "not_ready"
		}
	}

	c.JSON(status, gin.H{"status": overall, "components": components})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.setupRouter()

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
