// Package api provides the HTTP surface for the LLM gateway: a thin
// echo/v5 adapter translating requests into calls against the routing and
// escalation core and the metrics-store sink.
package api

import (
	"context"
	"net"
	"net/http"
	"time"

	echo "github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/opsmith/llm-gateway/pkg/escalation"
	"github.com/opsmith/llm-gateway/pkg/metrics"
	"github.com/opsmith/llm-gateway/pkg/metricsstore"
	"github.com/opsmith/llm-gateway/pkg/routing"
)

// metricsSink is the subset of *metricsstore.Store the API surface depends
// on, narrowed to an interface so handler tests can substitute a fake
// without a real PostgreSQL instance.
type metricsSink interface {
	Insert(ctx context.Context, rec metrics.RequestRecord) error
	Health(ctx context.Context) (*metricsstore.HealthStatus, error)
}

// Server is the HTTP API server.
type Server struct {
	echo       *echo.Echo
	httpServer *http.Server

	engine     *routing.Engine
	controller *escalation.Controller
	store      metricsSink

	complexModel string
	costRates    metrics.CostRates

	// backendHealthCheck is an optional probe of back-end reachability,
	// surfaced on the health endpoint as a non-fatal "degraded" signal.
	// Nil disables the check entirely.
	backendHealthCheck func(ctx context.Context) error

	// now is overridden in tests for deterministic timestamps.
	now func() time.Time
}

// NewServer creates a new API server with Echo v5. store is narrowed to the
// metricsSink interface so callers (and tests) can substitute a fake without
// a real PostgreSQL instance; production callers still pass a concrete
// *metricsstore.Store.
func NewServer(
	engine *routing.Engine,
	controller *escalation.Controller,
	store metricsSink,
	complexModel string,
	costRates metrics.CostRates,
) *Server {
	e := echo.New()

	s := &Server{
		echo:         e,
		engine:       engine,
		controller:   controller,
		store:        store,
		complexModel: complexModel,
		costRates:    costRates,
		now:          time.Now,
	}

	s.setupRoutes()
	return s
}

// SetBackendHealthCheck wires an optional back-end reachability probe used
// by the health endpoint.
func (s *Server) SetBackendHealthCheck(check func(ctx context.Context) error) {
	s.backendHealthCheck = check
}

// setupRoutes registers all API routes.
func (s *Server) setupRoutes() {
	s.echo.Use(middleware.BodyLimit(2 * 1024 * 1024))
	s.echo.Use(securityHeaders())

	s.echo.GET("/healthz", s.healthHandler)

	v1 := s.echo.Group("/v1")
	v1.POST("/chat/completions", s.chatCompletionHandler)
}

// Start starts the HTTP server on the given address. It blocks until the
// server stops and returns the error from ListenAndServe.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.echo,
	}
	return s.httpServer.ListenAndServe()
}

// StartWithListener starts the HTTP server on a pre-created listener.
// Used by test infrastructure to serve on a random OS-assigned port.
func (s *Server) StartWithListener(ln net.Listener) error {
	s.httpServer = &http.Server{Handler: s.echo}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
