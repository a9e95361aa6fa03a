package handler

import (
	"log"

	"notekeeper/config"
	"notekeeper/usecase"
	"notekeeper/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	notesService *usecase.NotesService
	backend      string
}

func NewHealthHandler(notesService *usecase.NotesService, backend string) *HealthHandler {
	return &HealthHandler{notesService: notesService, backend: backend}
}

type HealthResponse struct {
	Status            string  `json:"status"`
	Store             string  `json:"store"`
	StoreError        string  `json:"store_error,omitempty"`
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryUsedPercent float64 `json:"memory_used_percent"`
	// Pool is only reported for the mongo store
	Pool *PoolStats `json:"pool,omitempty"`
}

type PoolStats struct {
	Active  int64 `json:"active"`
	Created int64 `json:"created"`
	Closed  int64 `json:"closed"`
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx := c.Request.Context()

	health := HealthResponse{
		Status:            "ok",
		Store:             h.backend,
		CPUPercent:        utils.GetCPUUsage(ctx),
		MemoryUsedPercent: utils.GetMemoryUsage(ctx),
	}

	if h.backend == config.BackendMongo {
		m := utils.GetMongoMetrics()
		health.Pool = &PoolStats{Active: m.ActiveConnections, Created: m.CreatedConnections, Closed: m.ClosedConnections}
	}

	if err := h.notesService.Ping(ctx); err != nil {
		log.Printf("Health check failed: %v", err)
		health.Status = "unavailable"
		health.StoreError = err.Error()
		utils.ServiceUnavailable(c, health)
		return
	}

	utils.Success(c, health)
}
