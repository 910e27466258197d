package websockets

import (
	"testing"

	"renhold/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *Manager {
	return &Manager{
		hub: &Hub{
			broadcast:  make(chan Message, 1),
			register:   make(chan *Client, 1),
			unregister: make(chan *Client, 1),
			clients:    make(map[string]*Client),
		},
		log: logger.New("websockets"),
	}
}

func TestRetrySend_SurvivesClosedSendChannel(t *testing.T) {
	m := testManager()
	client := &Client{ID: "c1", send: make(chan Message)}

	// The hub closes send when the client unregisters mid-retry.
	close(client.send)

	assert.NotPanics(t, func() {
		m.retrySend(client, client.ID, Message{Type: "notification"}, m.log.Function("retrySend"))
	})
}

func TestRetrySend_DeliversOnceClientDrains(t *testing.T) {
	m := testManager()
	client := &Client{ID: "c2", send: make(chan Message, 1)}

	m.retrySend(client, client.ID, Message{Type: "booking_changed"}, m.log.Function("retrySend"))

	select {
	case msg := <-client.send:
		assert.Equal(t, "booking_changed", msg.Type)
	default:
		require.Fail(t, "expected a delivered message")
	}
}
