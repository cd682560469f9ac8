package handlers

import (
	"errors"
	"net/http"

	"modelgate/internal/apperror"
	"modelgate/internal/health"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	service *health.Service
}

func NewHealthHandler(s *health.Service) *HealthHandler {
	return &HealthHandler{service: s}
}

// Liveness answers that the process is scheduling requests at all.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Liveness())
}

// Readiness reports dependency connectivity. A failing database check
// answers 503 so orchestrators stop routing traffic here.
func (h *HealthHandler) Readiness(c *gin.Context) {
	resp, err := h.service.Readiness(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Check runs (or serves the cached) health report, optionally filtered
// by the model query parameter.
func (h *HealthHandler) Check(c *gin.Context) {
	report, err := h.service.CheckNow(c.Request.Context(), c.Query("model"))
	if err != nil {
		if errors.Is(err, apperror.ErrNoBackendsConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Model list not initialized"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

type testConnectionRequest struct {
	Mode             string            `json:"mode"`
	ConnectionParams map[string]string `json:"connection_params"`
}

// TestConnection probes caller-supplied connection parameters once and
// returns the redacted outcome without touching the configured model list.
func (h *HealthHandler) TestConnection(c *gin.Context) {
	var req testConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
		return
	}

	mode, err := health.ParseProbeMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	outcome := h.service.TestConnection(c.Request.Context(), health.Endpoint{
		Model:  req.ConnectionParams["model"],
		Mode:   mode,
		Params: req.ConnectionParams,
	})

	status := "success"
	if !outcome.Healthy() {
		status = "error"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "result": outcome})
}
