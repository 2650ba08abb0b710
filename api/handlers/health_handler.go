package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/download-it/internal/app"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// HealthHandler handles health check requests
type HealthHandler struct {
	inFlight *app.InFlight
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(inFlight *app.InFlight) *HealthHandler {
	return &HealthHandler{
		inFlight: inFlight,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// StatusResponse is the aggregate download indicator
type StatusResponse struct {
	InFlight int64 `json:"in_flight"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// Status handles GET /api/v1/status
func (h *HealthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{InFlight: h.inFlight.Count()})
}
