package websockets

import (
	"time"

	"renhold/config"
	"renhold/internal/database"
	"renhold/internal/events"
	"renhold/internal/logger"
	"renhold/internal/repositories"
	"renhold/internal/services"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	MESSAGE_TYPE_PING           = "ping"
	MESSAGE_TYPE_PONG           = "pong"
	MESSAGE_TYPE_AUTH_REQUEST   = "auth_request"
	MESSAGE_TYPE_AUTH_RESPONSE  = "auth_response"
	MESSAGE_TYPE_AUTH_SUCCESS   = "auth_success"
	MESSAGE_TYPE_AUTH_FAILURE   = "auth_failure"
	MESSAGE_TYPE_BOOKING_CHANGE = "booking_changed"
	MESSAGE_TYPE_NOTIFICATION   = "notification"

	PING_INTERVAL     = 30 * time.Second
	PONG_TIMEOUT      = 60 * time.Second
	WRITE_TIMEOUT     = 10 * time.Second
	MAX_MESSAGE_SIZE  = 64 * 1024
	SEND_CHANNEL_SIZE = 64
)

type Message struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	Action    string         `json:"action,omitempty"`
	UserID    string         `json:"userId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type Client struct {
	ID         string
	UserID     uuid.UUID
	Connection *websocket.Conn
	Manager    *Manager
	Status     int
	send       chan Message
}

// Manager bridges the event bus to connected clients. Booking change events
// fan out to each interested user's connections as "refetch" nudges; clients
// never receive row data over the socket.
type Manager struct {
	hub            *Hub
	db             database.DB
	config         config.Config
	log            logger.Logger
	eventBus       *events.EventBus
	sessionService *services.SessionService
	userRepo       repositories.UserRepository
}

func New(
	db database.DB,
	eventBus *events.EventBus,
	config config.Config,
	sessionService *services.SessionService,
	userRepo repositories.UserRepository,
) (*Manager, error) {
	log := logger.New("websockets")

	manager := &Manager{
		hub: &Hub{
			broadcast:  make(chan Message),
			register:   make(chan *Client),
			unregister: make(chan *Client),
			clients:    make(map[string]*Client),
		},
		db:             db,
		config:         config,
		log:            log,
		eventBus:       eventBus,
		sessionService: sessionService,
		userRepo:       userRepo,
	}

	log.Function("New").Info("Starting websocket hub")
	go manager.hub.run(manager)

	go manager.subscribeToBookingEvents()
	go manager.subscribeToNotificationEvents()

	return manager, nil
}

func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")
	clientID := uuid.New().String()

	client := &Client{
		ID:         clientID,
		UserID:     uuid.Nil,
		Connection: c,
		Manager:    m,
		Status:     STATUS_UNAUTHENTICATED,
		send:       make(chan Message, SEND_CHANNEL_SIZE),
	}

	if err := client.sendAuthRequest(); err != nil {
		if err := c.Close(); err != nil {
			log.Er("failed to close connection", err)
		}
		return
	}

	client.startAuthTimeout()

	m.hub.register <- client
	defer func() {
		log.Debug("Client disconnected", "clientID", clientID)
		m.hub.unregister <- client
		if err := c.Close(); err != nil {
			log.Er("failed to close connection", err)
		}
	}()

	go client.readPump()
	client.writePump()
}

func (c *Client) readPump() {
	log := c.Manager.log.Function("readPump")
	defer func() {
		c.Manager.hub.unregister <- c
		_ = c.Connection.Close()
	}()

	c.Connection.SetReadLimit(MAX_MESSAGE_SIZE)
	if err := c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
		log.Er("failed to set read deadline", err, "clientID", c.ID)
	}
	c.Connection.SetPongHandler(func(string) error {
		if err := c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
			log.Er("failed to set read deadline in pong handler", err, "clientID", c.ID)
		}
		return nil
	})

	for {
		var message Message
		err := c.Connection.ReadJSON(&message)
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				log.Er("Unexpected close error", err, "clientID", c.ID)
			}
			break
		}

		message.ID = uuid.New().String()
		message.Timestamp = time.Now()

		c.routeMessage(message)
	}
}

func (c *Client) routeMessage(message Message) {
	log := c.Manager.log.Function("routeMessage")

	if message.Type == MESSAGE_TYPE_AUTH_RESPONSE {
		c.handleAuthResponse(message)
		return
	}

	if c.Status == STATUS_UNAUTHENTICATED {
		c.handleUnauthenticatedMessage(message)
		return
	}

	switch message.Type {
	case MESSAGE_TYPE_PING:
		c.send <- Message{
			ID:        uuid.New().String(),
			Type:      MESSAGE_TYPE_PONG,
			Channel:   "system",
			Timestamp: time.Now(),
		}
	default:
		log.Warn("Unknown message type", "type", message.Type, "clientID", c.ID)
	}
}

func (c *Client) writePump() {
	log := c.Manager.log.Function("writePump")

	ticker := time.NewTicker(PING_INTERVAL)
	defer func() {
		ticker.Stop()
		_ = c.Connection.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline", err, "clientID", c.ID)
			}
			if !ok {
				_ = c.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Connection.WriteJSON(message); err != nil {
				log.Er("WebSocket write error", err, "clientID", c.ID)
				return
			}

		case <-ticker.C:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline for ping", err, "clientID", c.ID)
			}
			if err := c.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (m *Manager) subscribeToBookingEvents() {
	log := m.log.Function("subscribeToBookingEvents")
	log.Info("Starting booking events subscription")

	err := m.eventBus.Subscribe(events.BOOKINGS_CHANNEL, func(event events.Event) error {
		m.sendToUsers(event.UserIDs, Message{
			ID:        uuid.New().String(),
			Type:      MESSAGE_TYPE_BOOKING_CHANGE,
			Channel:   "bookings",
			Action:    "refetch",
			Data:      event.Data,
			Timestamp: time.Now(),
		})
		return nil
	})
	if err != nil {
		log.Er("Failed to subscribe to booking events", err)
	}
}

func (m *Manager) subscribeToNotificationEvents() {
	log := m.log.Function("subscribeToNotificationEvents")
	log.Info("Starting notification events subscription")

	err := m.eventBus.Subscribe(events.NOTIFICATIONS_CHANNEL, func(event events.Event) error {
		m.sendToUsers(event.UserIDs, Message{
			ID:        uuid.New().String(),
			Type:      MESSAGE_TYPE_NOTIFICATION,
			Channel:   "notifications",
			Action:    "show",
			Data:      event.Data,
			Timestamp: time.Now(),
		})
		return nil
	})
	if err != nil {
		log.Er("Failed to subscribe to notification events", err)
	}
}

// sendToUsers routes a message to every connection held by the listed users.
// Unknown or disconnected users are skipped silently; duplicates and missed
// deliveries are harmless because clients refetch.
func (m *Manager) sendToUsers(userIDs []string, message Message) {
	log := m.log.Function("sendToUsers")

	for _, userID := range userIDs {
		userUUID, err := uuid.Parse(userID)
		if err != nil {
			log.Warn("Invalid user ID in event", "userID", userID)
			continue
		}

		m.SendMessageToUser(userUUID, message)
	}
}
