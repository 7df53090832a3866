package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/membersonly/internal/server/http/dto"
)

// HealthHandler reports liveness of backing storage.
type HealthHandler struct {
	facade HealthFacade
	logger *slog.Logger
}

// NewHealthHandler creates HealthHandler instance.
func NewHealthHandler(facade HealthFacade, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{facade: facade, logger: logger}
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.facade.HealthCheck(c.Request.Context()); err != nil {
		h.logger.Warn("health check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "storage unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
