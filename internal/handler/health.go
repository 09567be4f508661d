package handler

import (
	"net/http"

	"reiadvisor/internal/model"
	"reiadvisor/internal/service"

	"github.com/gin-gonic/gin"
)

// ServiceName is reported by /health
const ServiceName = "rei-advisor"

// BuildInfo is stamped into the binary at link time
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// HealthHandler reports liveness and whether predictions are possible
type HealthHandler struct {
	predictionService *service.PredictionService
	build             BuildInfo
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(predictionService *service.PredictionService, build BuildInfo) *HealthHandler {
	return &HealthHandler{
		predictionService: predictionService,
		build:             build,
	}
}

// Health handles GET /health. The process stays up without artifacts, so
// that case is reported as degraded with 503 rather than as a crash.
func (h *HealthHandler) Health(c *gin.Context) {
	resp := model.HealthResponse{
		Status:    "healthy",
		Service:   ServiceName,
		Artifacts: "loaded",
		Version:   h.build.Version,
		BuildTime: h.build.BuildTime,
		GitCommit: h.build.GitCommit,
	}

	if err := h.predictionService.Status(c.Request.Context()); err != nil {
		resp.Status = "degraded"
		resp.Artifacts = "unavailable"
		resp.Error = err.Error()
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Version handles GET /version
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    h.build.Version,
		"build_time": h.build.BuildTime,
		"git_commit": h.build.GitCommit,
	})
}
