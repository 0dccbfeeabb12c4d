// Package http provides HTTP server implementation and route registration.
package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditHTTP "github.com/glennballman/Community-Canvas-sub004/internal/audit/http"
	engineHTTP "github.com/glennballman/Community-Canvas-sub004/internal/engine/http"
	grantHTTP "github.com/glennballman/Community-Canvas-sub004/internal/grant/http"
	machineHTTP "github.com/glennballman/Community-Canvas-sub004/internal/machine/http"
	principalHTTP "github.com/glennballman/Community-Canvas-sub004/internal/principal/http"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// createTestServer creates a test server with a discarding logger and no
// database; handlers carry nil usecases since routing tests never invoke them.
func createTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers := Handlers{
		Principal: principalHTTP.NewPrincipalHandler(nil, logger),
		Grant:     grantHTTP.NewGrantHandler(nil, logger),
		Engine:    engineHTTP.NewEngineHandler(nil, nil, logger),
		Machine:   machineHTTP.NewMachineHandler(nil, logger),
		Audit:     auditHTTP.NewAuditHandler(nil, logger),
	}
	return NewServer(nil, "localhost", 8080, logger, Config{}, handlers)
}

// TestHealthHandler tests the health check endpoint handler.
func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "healthy", response["status"])
}

// TestReadinessHandler_NotReady_NilDB tests the readiness endpoint when DB is nil.
func TestReadinessHandler_NotReady_NilDB(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

	server.readinessHandler(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "not_ready", response["status"])

	components, ok := response["components"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "error", components["database"])
}

// TestCustomLoggerMiddleware tests the custom logging middleware.
func TestCustomLoggerMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "test", response["message"])
}

// TestRecoveryMiddleware tests Gin's built-in recovery middleware.
func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)

	// Should not panic - Recovery middleware catches it
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// TestRateLimitMiddleware tests burst exhaustion on the rate limiter.
func TestRateLimitMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(RateLimitMiddleware(1.0, 2, logger))
	router.POST("/authorize", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"allow": true})
	})

	// Burst of 2 allowed, third request rejected
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/authorize", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/authorize", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

// TestSetupRouter_RegistersRoutes verifies the full route table.
func TestSetupRouter_RegistersRoutes(t *testing.T) {
	server := createTestServer()
	router := server.setupRouter()

	registered := make(map[string]bool)
	for _, route := range router.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /v1/authorize",
		"POST /v1/principals/resolve",
		"GET /v1/principals/:id",
		"POST /v1/principals/:id/deactivate",
		"GET /v1/principals/:id/capabilities",
		"POST /v1/grants",
		"GET /v1/grants",
		"POST /v1/grants/:id/revoke",
		"POST /v1/resource-grants",
		"GET /v1/resource-grants",
		"POST /v1/resource-grants/:id/revoke",
		"POST /v1/impersonation/start",
		"POST /v1/impersonation/stop",
		"POST /v1/machine-sessions",
		"GET /v1/machine-sessions/:id",
		"POST /v1/machine-sessions/:id/end",
		"POST /v1/machine-sessions/:id/emergency-stop",
		"POST /v1/certifications",
		"GET /v1/audit-records",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

// TestSetupRouter_NotFound tests 404 handling through the full router.
func TestSetupRouter_NotFound(t *testing.T) {
	server := createTestServer()
	router := server.setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestRequestIDMiddleware_HeaderPresent verifies X-Request-Id header is present in response.
func TestRequestIDMiddleware_HeaderPresent(t *testing.T) {
	server := createTestServer()
	router := server.setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	requestID := w.Header().Get("X-Request-Id")
	require.NotEmpty(t, requestID)
	_, err := uuid.Parse(requestID)
	assert.NoError(t, err)
}
