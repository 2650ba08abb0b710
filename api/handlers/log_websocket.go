package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yourusername/download-it/api/middleware"
	"github.com/yourusername/download-it/pkg/logger"
	"go.uber.org/zap"
)

const (
	initialLogEntries = 50
	pingInterval      = 30 * time.Second
)

// LogWebSocketHandler streams new log entries over a WebSocket
type LogWebSocketHandler struct {
	logReader *logger.LogReader
	logger    *zap.Logger
	upgrader  websocket.Upgrader
}

// NewLogWebSocketHandler creates a new WebSocket handler. Browsers may only
// connect from the server's own origin or one of allowedOrigins.
func NewLogWebSocketHandler(logsDir string, log *zap.Logger, allowedOrigins []string) *LogWebSocketHandler {
	return &LogWebSocketHandler{
		logReader: logger.NewLogReader(logsDir),
		logger:    log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return middleware.OriginAllowed(r, allowedOrigins)
			},
		},
	}
}

// HandleWebSocket handles GET /api/v1/logs/stream?category=download
func (h *LogWebSocketHandler) HandleWebSocket(c *gin.Context) {
	category := logger.LogCategory(c.DefaultQuery("category", string(logger.CategoryDownload)))
	if !logger.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade WebSocket", zap.Error(err))
		return
	}
	defer conn.Close()

	h.logger.Info("WebSocket client connected",
		zap.String("category", string(category)),
		zap.String("remote_addr", c.Request.RemoteAddr))

	// Send the tail of today's log first
	entries, err := h.logReader.ReadTodayLogs(category, initialLogEntries)
	if err == nil {
		for _, entry := range entries {
			if err := h.send(conn, entry); err != nil {
				return
			}
		}
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	entryChan := make(chan logger.LogEntry, 100)
	go func() {
		if err := h.logReader.TailLogs(ctx, category, entryChan); err != nil {
			h.logger.Error("Log tailing error", zap.Error(err))
		}
	}()

	// The read loop only detects the client going away
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case entry := <-entryChan:
			if err := h.send(conn, entry); err != nil {
				return
			}

		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			return
		}
	}
}

func (h *LogWebSocketHandler) send(conn *websocket.Conn, entry logger.LogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		h.logger.Error("Failed to marshal log entry", zap.Error(err))
		return nil
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.logger.Debug("Failed to send log entry", zap.Error(err))
		return err
	}
	return nil
}
