package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/dfs-optimizer/internal/services"
	"github.com/jstittsworth/dfs-optimizer/pkg/database"
)

// HealthHandler serves liveness/readiness probes. Readiness checks the two
// dependencies a request actually needs: run-history storage and the result
// cache; the solver itself has no persistent connection to check.
type HealthHandler struct {
	db    *database.DB
	cache *services.CacheService
}

func NewHealthHandler(db *database.DB, cache *services.CacheService) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// GetHealth is a basic liveness probe — always 200 if the process is up.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "dfs-optimizer"})
}

// GetReady is a readiness probe: 200 only once the database and cache are
// reachable. A dependency that is not configured (nil) is not checked.
func (h *HealthHandler) GetReady(c *gin.Context) {
	checks := gin.H{}
	ready := true

	if h.db != nil {
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.Ping() != nil {
			ready = false
			checks["database"] = "unreachable"
		} else {
			checks["database"] = "ok"
		}
	}

	if h.cache != nil {
		if _, err := h.cache.Exists(c.Request.Context(), "health:ping"); err != nil {
			ready = false
			checks["cache"] = "unreachable"
		} else {
			checks["cache"] = "ok"
		}
	}

	if ready {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
	} else {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": checks})
	}
}
