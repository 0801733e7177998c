package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_IsSubscribedTo(t *testing.T) {
	client := NewClient(nil, nil, "run-1")
	assert.True(t, client.IsSubscribedTo("run-1"))
	assert.False(t, client.IsSubscribedTo("run-2"))
}

func TestWebSocketHub_BroadcastToRun_OnlySubscribedClientsReceive(t *testing.T) {
	hub := NewWebSocketHub()
	go hub.Run()

	subscribed := NewClient(hub, nil, "run-1")
	other := NewClient(hub, nil, "run-2")
	hub.Register(subscribed)
	hub.Register(other)

	// give the hub goroutine a moment to process the registrations
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, hub.BroadcastToRun("run-1", "lineup", map[string]int{"count": 1}))

	select {
	case msg := <-subscribed.send:
		assert.Contains(t, string(msg), "\"runId\":\"run-1\"")
	case <-time.After(time.Second):
		t.Fatal("expected subscribed client to receive broadcast")
	}

	select {
	case <-other.send:
		t.Fatal("unsubscribed client should not receive the broadcast")
	case <-time.After(50 * time.Millisecond):
	}
}
