package websocket

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, userID int64, room string, buffer int) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, buffer),
		userID: userID,
		room:   room,
		logger: zerolog.Nop(),
	}
}

func TestBroadcastToRoleWithNoClients(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	// Must not panic or block
	hub.BroadcastToRole("admin", EventAdminRiskAlert, RiskAlert{Type: "post", ID: 1})
	assert.Zero(t, hub.ClientCount("admin"))
}

func TestBroadcastToRoleDeliversEnvelope(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	admin := newTestClient(hub, 1, "admin", 4)
	student := newTestClient(hub, 2, "student", 4)
	hub.register(admin)
	hub.register(student)

	alert := RiskAlert{Type: "post", ID: 9, UserID: 3, Reason: "keywords"}
	hub.BroadcastToRole("admin", EventAdminRiskAlert, alert)

	require.Len(t, admin.send, 1)
	assert.Empty(t, student.send, "event must stay inside the role room")

	var env Envelope
	require.NoError(t, json.Unmarshal(<-admin.send, &env))
	assert.Equal(t, EventAdminRiskAlert, env.Event)

	var got RiskAlert
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, alert.ID, got.ID)
	assert.Equal(t, alert.Reason, got.Reason)
}

func TestBroadcastSkipsSlowClient(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	slow := newTestClient(hub, 1, "admin", 1)
	hub.register(slow)

	hub.BroadcastToRole("admin", EventAdminRiskAlert, RiskAlert{ID: 1})
	// The buffer is now full; the second broadcast must not block
	hub.BroadcastToRole("admin", EventAdminRiskAlert, RiskAlert{ID: 2})

	assert.Len(t, slow.send, 1)
}

func TestRegisterUnregisterLifecycle(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := newTestClient(hub, 1, "counselor", 1)

	hub.register(client)
	assert.Equal(t, 1, hub.ClientCount("counselor"))

	hub.unregister(client)
	assert.Zero(t, hub.ClientCount("counselor"))

	// A second unregister for the same client is a no-op
	hub.unregister(client)
	assert.Zero(t, hub.ClientCount("counselor"))
}

func TestLateCounselorReplyAfterDisconnect(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := newTestClient(hub, 7, "student", 4)
	hub.register(client)
	hub.unregister(client)

	// The counselor reply goroutine can finish long after the connection is
	// gone. The frame must be dropped, not sent on the closed channel.
	assert.NotPanics(t, func() {
		client.sendEvent(EventCounselorResponse, CounselorResponse{
			Role:    "assistant",
			Content: "late reply",
		})
	})
	assert.Zero(t, hub.ClientCount("student"))
}
