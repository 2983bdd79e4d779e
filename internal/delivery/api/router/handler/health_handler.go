package handler

import (
	"estate/config"
	"estate/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness.
type HealthHandler struct {
	service string
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{service: cfg.Env.ServiceName}
}

func (h *HealthHandler) Check(c echo.Context) error {
	return response.OK(c, "Service is healthy", map[string]string{"service": h.service})
}
