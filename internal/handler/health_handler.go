package handler

import (
	"context"
	"net/http"

	"employee-list/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const serviceName = "employee-list"

// HealthHandler reports liveness; ?check=db also pings the database
type HealthHandler struct {
	ping func(ctx context.Context) error
}

func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) HealthCheck(c echo.Context) error {
	if c.QueryParam("check") == "db" && h.ping != nil {
		if err := h.ping(c.Request().Context()); err != nil {
			logger.FromContext(c).Error("Database health check failed", zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, echo.Map{
				"status":   "unhealthy",
				"service":  serviceName,
				"database": "unreachable",
			})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":   "healthy",
			"service":  serviceName,
			"database": "ok",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": serviceName,
	})
}
