package api

import (
	"context"
	"net/http"
	"time"

	echo "github.com/labstack/echo/v5"

	"github.com/opsmith/llm-gateway/pkg/version"
)

const (
	healthStatusHealthy   = "healthy"
	healthStatusDegraded  = "degraded"
	healthStatusUnhealthy = "unhealthy"
)

// healthHandler handles GET /healthz.
// The metrics store is checked directly; a back-end outage only degrades
// the response rather than marking it unhealthy, since the gateway can
// still serve requests routed to whichever model is actually up.
func (s *Server) healthHandler(c *echo.Context) error {
	reqCtx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]HealthCheck)
	status := healthStatusHealthy

	if _, err := s.store.Health(reqCtx); err != nil {
		status = healthStatusUnhealthy
		checks["metrics_store"] = HealthCheck{Status: healthStatusUnhealthy, Message: err.Error()}
	} else {
		checks["metrics_store"] = HealthCheck{Status: healthStatusHealthy}
	}

	if s.backendHealthCheck != nil {
		if err := s.backendHealthCheck(reqCtx); err != nil {
			if status == healthStatusHealthy {
				status = healthStatusDegraded
			}
			checks["backend"] = HealthCheck{Status: healthStatusDegraded, Message: err.Error()}
		} else {
			checks["backend"] = HealthCheck{Status: healthStatusHealthy}
		}
	}

	httpStatus := http.StatusOK
	if status == healthStatusUnhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, &HealthResponse{
		Status:  status,
		Version: version.Full(),
		Checks:  checks,
	})
}
