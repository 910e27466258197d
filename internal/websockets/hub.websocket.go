package websockets

import (
	"sync"
	"time"

	"renhold/internal/logger"

	"github.com/google/uuid"
)

const (
	STATUS_UNAUTHENTICATED = iota
	STATUS_AUTHENTICATED
	STATUS_CLOSED
)

type Hub struct {
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	clients    map[string]*Client
	mutex      sync.RWMutex
}

func (h *Hub) run(m *Manager) {
	for {
		select {
		case client := <-h.register:
			m.registerClient(client)

		case client := <-h.unregister:
			func() {
				defer func() {
					if r := recover(); r != nil {
						_ = r // Explicitly ignore recovered value
					}
				}()
				close(client.send)
			}()
			m.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message, m)
		}
	}
}

func (m *Manager) registerClient(client *Client) {
	log := m.log.Function("registerClient")

	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	m.hub.clients[client.ID] = client

	log.Debug("Client registered", "clientID", client.ID, "status", client.Status)
}

func (m *Manager) unregisterClient(client *Client) {
	log := m.log.Function("unregisterClient")

	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	delete(m.hub.clients, client.ID)

	log.Debug("Client unregistered", "clientID", client.ID, "userID", client.UserID)
}

func (h *Hub) broadcastMessage(message Message, m *Manager) {
	log := m.log.Function("broadcastMessage")

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if len(h.clients) == 0 {
		return
	}

	sentCount := 0

	for clientID, client := range h.clients {
		if client.Status != STATUS_AUTHENTICATED {
			continue
		}

		select {
		case client.send <- message:
			sentCount++
		default:
			go m.retrySend(client, clientID, message, log)
		}
	}

	log.Debug("Broadcast complete",
		"messageID", message.ID,
		"sentTo", sentCount,
		"totalClients", len(h.clients),
	)
}

// retrySend gives a slow client one more window to drain its queue before
// kicking it. The hub can close the send channel on unregister while this
// goroutine is blocked; the recover absorbs that race.
func (m *Manager) retrySend(client *Client, clientID string, message Message, log logger.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug("Client closed during retry", "clientID", clientID)
		}
	}()

	select {
	case client.send <- message:
		log.Debug("Message sent after retry", "clientID", clientID)
	case <-time.After(5 * time.Second):
		_ = log.Error("Client too slow, disconnecting", "clientID", clientID)
		m.hub.unregister <- client
	}
}

// SendMessageToUser delivers a message to every open connection for a user.
func (m *Manager) SendMessageToUser(userID uuid.UUID, message Message) {
	log := m.log.Function("SendMessageToUser")

	m.hub.mutex.RLock()
	defer m.hub.mutex.RUnlock()

	sentCount := 0

	for clientID, client := range m.hub.clients {
		if client.Status == STATUS_AUTHENTICATED && client.UserID == userID {
			select {
			case client.send <- message:
				sentCount++
			default:
				go m.retrySend(client, clientID, message, log)
			}
		}
	}

	if sentCount > 0 {
		log.Debug("Message sent to user connections",
			"userID", userID,
			"messageID", message.ID,
			"sentTo", sentCount,
		)
	}
}
