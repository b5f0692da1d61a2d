package websocket

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CounselorResponder produces AI counselor replies for inbound chat
// messages.
type CounselorResponder interface {
	ChatReply(ctx context.Context, message string) string
}

// Handler upgrades authenticated HTTP requests to WebSocket connections.
type Handler struct {
	hub       *Hub
	counselor CounselorResponder
	logger    zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, counselor CounselorResponder, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:       hub,
		counselor: counselor,
		logger:    logger,
	}
}

// HandleConnection godoc
// @Summary Establish the real-time WebSocket connection
// @Description Upgrades the HTTP connection to WebSocket. Admin sessions receive admin_risk_alert events; every session can exchange ai_counselor_message / ai_counselor_response events.
// @Tags websocket
// @Security BearerAuth
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} gin.H "Unauthorized: JWT token missing or invalid"
// @Router /ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	userIDValue, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	userID, ok := userIDValue.(int64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	role, _ := c.Get("roleType")
	roleStr, _ := role.(string)
	if roleStr == "" {
		roleStr = "student"
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:       h.hub,
		conn:      conn,
		send:      make(chan []byte, 256),
		userID:    userID,
		room:      roleStr,
		counselor: h.counselor,
		logger:    h.logger,
	}
	h.hub.register(client)

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Int64("userID", userID).
		Str("room", roleStr).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
