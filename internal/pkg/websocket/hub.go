package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event names carried in the wire envelope.
const (
	// EventAdminRiskAlert is pushed to connected admins when user-authored
	// text is classified as severe risk.
	EventAdminRiskAlert = "admin_risk_alert"

	// EventCounselorMessage is sent by a client to talk to the AI counselor.
	EventCounselorMessage = "ai_counselor_message"

	// EventCounselorResponse answers a counselor message on the same
	// connection.
	EventCounselorResponse = "ai_counselor_response"
)

// Envelope is the wire format for every WebSocket message, in both
// directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// RiskAlert is the payload of an admin_risk_alert event.
type RiskAlert struct {
	Type      string    `json:"type"` // originating entity kind, e.g. "post"
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Content   string    `json:"content"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// CounselorMessage is the payload of an ai_counselor_message event.
type CounselorMessage struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

// CounselorResponse is the payload of an ai_counselor_response event.
type CounselorResponse struct {
	Role      string    `json:"role"` // always "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients, grouped into rooms by role.
// Broadcasts are fire-and-forget: there is no acknowledgment, no delivery
// guarantee and no persistence of events missed by offline clients. The hub
// is constructed once at process start and passed to every component that
// needs it.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Client]bool
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]bool),
		logger: logger,
	}
}

// register adds a client to its role room.
func (h *Hub) register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := client.room
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true

	h.logger.Info().
		Str("room", room).
		Int64("userID", client.userID).
		Msg("WebSocket client registered")
}

// unregister removes a client and closes its send channel. Safe to call
// more than once for the same client.
func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := client.room
	clients, ok := h.rooms[room]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	client.closeSend()
	if len(clients) == 0 {
		delete(h.rooms, room)
	}

	h.logger.Info().
		Str("room", room).
		Int64("userID", client.userID).
		Msg("WebSocket client unregistered")
}

// BroadcastToRole pushes a named event to every client currently connected
// in the given role room. With zero connected clients the event is silently
// dropped. Slow clients whose send buffer is full are skipped.
func (h *Hub) BroadcastToRole(role, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Failed to marshal broadcast payload")
		return
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Failed to marshal broadcast envelope")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := h.rooms[role]
	if len(clients) == 0 {
		h.logger.Debug().Str("room", role).Str("event", event).Msg("No clients connected for broadcast")
		return
	}

	for client := range clients {
		if !client.trySend(frame) {
			h.logger.Warn().
				Str("room", role).
				Int64("userID", client.userID).
				Msg("Skipped slow WebSocket client")
		}
	}

	h.logger.Debug().
		Str("room", role).
		Str("event", event).
		Int("clientCount", len(clients)).
		Msg("Event broadcast to room")
}

// ClientCount returns the number of connected clients in a room.
func (h *Hub) ClientCount(role string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[role])
}
