// Package handler binds HTTP requests to the monitor registry and run
// service, translating results through pkg/response's envelope.
package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nerevar/traclusdl/internal/monitor"
	"github.com/nerevar/traclusdl/internal/service"
	"github.com/nerevar/traclusdl/pkg/response"
)

// Trigger starts a new run against inputPath and returns its id immediately;
// the run itself proceeds in the background and reports through the
// registry the handler was built with.
type Trigger func(inputPath string) (runID string, err error)

// RunHandler serves the monitor API's run endpoints.
type RunHandler struct {
	registry *monitor.Registry
	runs     *service.RunService
	trigger  Trigger
}

// NewRunHandler wires a registry, an optional run-store service (nil when
// -db wasn't set), and the trigger callback.
func NewRunHandler(registry *monitor.Registry, runs *service.RunService, trigger Trigger) *RunHandler {
	return &RunHandler{registry: registry, runs: runs, trigger: trigger}
}

// Health reports liveness.
func (h *RunHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "traclusdl monitor is running"})
}

type triggerRequest struct {
	InputPath string `json:"input_path" binding:"required"`
}

// Trigger starts a new run against a server-side file path.
func (h *RunHandler) Trigger(c *gin.Context) {
	var req triggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "input_path is required")
		return
	}

	id, err := h.trigger(req.InputPath)
	if err != nil {
		response.InternalError(c, "failed to start run", err)
		return
	}
	response.Success(c, gin.H{"run_id": id})
}

// GetRun returns the in-memory status/progress snapshot of a run.
func (h *RunHandler) GetRun(c *gin.Context) {
	id := c.Param("id")
	snap, ok := h.registry.Get(id)
	if !ok {
		response.NotFound(c, "unknown run id")
		return
	}
	response.Success(c, snap)
}

// GetCorridors returns the corridors of a completed run from the run store.
func (h *RunHandler) GetCorridors(c *gin.Context) {
	if h.runs == nil {
		response.Error(c, http.StatusServiceUnavailable, "run store not configured", nil)
		return
	}

	id := c.Param("id")
	corridors, err := h.runs.Corridors(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.NotFound(c, "unknown run id")
			return
		}
		response.Error(c, http.StatusConflict, err.Error(), err)
		return
	}
	response.Success(c, corridors)
}
