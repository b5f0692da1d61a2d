package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024 // 64KB

	// Budget for one AI counselor reply
	counselorReplyTimeout = 15 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for development; restrict in production deployments
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// Buffered channel of outbound frames. Guarded by mu so the counselor
	// reply goroutine, which can outlive the connection, never sends on a
	// channel the hub has already closed.
	mu     sync.Mutex
	closed bool
	send   chan []byte

	userID int64
	room   string

	counselor CounselorResponder
	logger    zerolog.Logger
}

// readPump pumps messages from the websocket connection. The only inbound
// event the server understands is the AI counselor message; everything else
// is ignored.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info().Int64("userID", c.userID).Msg("WebSocket closed normally")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Int64("userID", c.userID).Msg("Unexpected WebSocket close")
			} else {
				c.logger.Debug().Err(err).Int64("userID", c.userID).Msg("WebSocket read error")
			}
			break
		}

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.logger.Error().Err(err).Int64("userID", c.userID).Msg("Failed to unmarshal client envelope")
			continue
		}

		switch env.Event {
		case EventCounselorMessage:
			c.handleCounselorMessage(env.Data)
		default:
			c.logger.Debug().Str("event", env.Event).Int64("userID", c.userID).Msg("Ignoring unknown client event")
		}
	}
}

// handleCounselorMessage generates an AI reply and sends it back on this
// connection only.
func (c *Client) handleCounselorMessage(data json.RawMessage) {
	var msg CounselorMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Error().Err(err).Int64("userID", c.userID).Msg("Failed to unmarshal counselor message")
		return
	}
	if msg.Message == "" {
		return
	}

	// The sender identity comes from the authenticated connection, not the
	// payload.
	msg.UserID = c.userID

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), counselorReplyTimeout)
		defer cancel()

		reply := c.counselor.ChatReply(ctx, msg.Message)
		c.sendEvent(EventCounselorResponse, CounselorResponse{
			Role:      "assistant",
			Content:   reply,
			Timestamp: time.Now(),
		})
	}()
}

// sendEvent queues one event for this client. Frames are dropped when the
// send buffer is full or the client has already disconnected.
func (c *Client) sendEvent(event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error().Err(err).Str("event", event).Msg("Failed to marshal event payload")
		return
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		c.logger.Error().Err(err).Str("event", event).Msg("Failed to marshal event envelope")
		return
	}

	if !c.trySend(frame) {
		c.logger.Warn().Int64("userID", c.userID).Str("event", event).Msg("Dropped event for slow or disconnected client")
	}
}

// trySend queues one frame for this client. Returns false when the send
// buffer is full or the client has already been unregistered.
func (c *Client) trySend(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// closeSend closes the send channel exactly once. Only the hub calls this,
// from unregister.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump pumps frames from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
