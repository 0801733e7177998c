// Package api wires together the optimizer's HTTP surface: the solve
// endpoint, run-history lookups, and the optional WebSocket progress
// stream.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/dfs-optimizer/internal/api/handlers"
	"github.com/jstittsworth/dfs-optimizer/internal/api/middleware"
	"github.com/jstittsworth/dfs-optimizer/internal/services"
	"github.com/jstittsworth/dfs-optimizer/pkg/config"
	"github.com/jstittsworth/dfs-optimizer/pkg/database"
)

// SetupRoutes configures every /api/v1 route.
func SetupRoutes(group *gin.RouterGroup, db *database.DB, cache *services.CacheService, history *services.HistoryService, wsHub *services.WebSocketHub, cfg *config.Config) {
	optimizerHandler := handlers.NewOptimizerHandler(cfg, cache, history, wsHub)
	healthHandler := handlers.NewHealthHandler(db, cache)
	streamHandler := handlers.NewStreamHandler(wsHub)

	group.GET("/health", healthHandler.GetHealth)
	group.GET("/ready", healthHandler.GetReady)

	optimizeGroup := group.Group("/optimize")
	optimizeGroup.Use(middleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	{
		optimizeGroup.POST("", optimizerHandler.OptimizeLineups)
		optimizeGroup.GET("/runs/:id", optimizerHandler.GetRun)
	}

	admin := group.Group("/optimize")
	admin.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		admin.GET("/runs", optimizerHandler.ListRuns)
	}

	group.GET("/ws/optimize", middleware.OptionalAuth(cfg.JWTSecret), streamHandler.HandleOptimizeStream)
}
