package handler

import (
	"ai-luthier-be/internal/pkg/logger"
	"ai-luthier-be/internal/repository/memory"
	internalWS "ai-luthier-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// StreamHandler upgrades browsers onto the per-session websocket that carries
// advisor reply fragments.
type StreamHandler struct {
	sessionRepo *memory.SessionRepository
	hub         *internalWS.Hub
	logger      logger.ILogger
}

func NewStreamHandler(sessionRepo *memory.SessionRepository, hub *internalWS.Hub, log logger.ILogger) *StreamHandler {
	return &StreamHandler{
		sessionRepo: sessionRepo,
		hub:         hub,
		logger:      log,
	}
}

// ServeWs handles websocket requests from the peer. The session id rides the
// query string ("session_id") because browsers cannot set headers on the
// websocket handshake.
func (h *StreamHandler) ServeWs(c *fiber.Ctx) error {
	sessionIDStr := c.Query("session_id")
	if sessionIDStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing 'session_id' query param"})
	}

	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id format"})
	}

	if _, found := h.sessionRepo.Get(sessionID.String()); !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found or expired"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("StreamHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})
			internalWS.ServeWs(h.hub, conn, sessionID)
			h.logger.Info("StreamHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the websocket endpoint.
func (h *StreamHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
