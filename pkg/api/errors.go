package api

import (
	"errors"
	"log/slog"
	"net/http"

	echo "github.com/labstack/echo/v5"

	"github.com/opsmith/llm-gateway/pkg/llm"
)

// mapBackendError maps a back-end error returned by the core to an HTTP
// error response using the llm.BackendError taxonomy.
func mapBackendError(err error) *echo.HTTPError {
	var backendErr llm.BackendError
	if errors.As(err, &backendErr) {
		switch backendErr.Code() {
		case llm.ErrorCodeTimeout:
			return echo.NewHTTPError(http.StatusGatewayTimeout, backendErr.Error())
		case llm.ErrorCodeRateLimit:
			return echo.NewHTTPError(http.StatusTooManyRequests, backendErr.Error())
		case llm.ErrorCodeContentFilter:
			return echo.NewHTTPError(http.StatusUnprocessableEntity, backendErr.Error())
		case llm.ErrorCodeAuthentication:
			return echo.NewHTTPError(http.StatusBadGateway, backendErr.Error())
		case llm.ErrorCodeInvalidRequest:
			return echo.NewHTTPError(http.StatusBadRequest, backendErr.Error())
		case llm.ErrorCodeModelNotFound:
			return echo.NewHTTPError(http.StatusBadGateway, backendErr.Error())
		default:
			return echo.NewHTTPError(http.StatusBadGateway, backendErr.Error())
		}
	}

	slog.Error("unexpected back-end error", "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
