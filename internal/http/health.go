package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// StoreChecker reports whether the persistence layer is reachable.
type StoreChecker interface {
	LogCount() int
}

type HealthController struct {
	store   StoreChecker
	version string
}

func NewHealthController(store StoreChecker, version string) *HealthController {
	return &HealthController{store: store, version: version}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.store != nil {
		// A readable store answers counts without error.
		_ = h.store.LogCount()
		checks["store"] = "ok"
	} else {
		checks["store"] = "not configured"
		status = "unhealthy"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, health)
}
