package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/dfs-optimizer/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamHandler upgrades a connection and subscribes it to one run's
// lineup-by-lineup progress events, adapted from the teacher's
// WebSocketHandler (there it streams simulation progress to a user).
type StreamHandler struct {
	hub *services.WebSocketHub
}

func NewStreamHandler(hub *services.WebSocketHub) *StreamHandler {
	return &StreamHandler{hub: hub}
}

// HandleOptimizeStream handles GET /api/v1/ws/optimize?runId=....
func (h *StreamHandler) HandleOptimizeStream(c *gin.Context) {
	runID := c.Query("runId")
	if runID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "runId query parameter is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("failed to upgrade websocket connection")
		return
	}

	client := services.NewClient(h.hub, conn, runID)
	h.hub.Register(client)

	if err := conn.WriteJSON(gin.H{"type": "welcome", "runId": runID}); err != nil {
		logrus.WithError(err).Warn("failed to send websocket welcome message")
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
