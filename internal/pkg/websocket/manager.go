package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/nebengjek-tracking/internal/pkg/constants"
	"github.com/piresc/nebengjek-tracking/internal/pkg/logger"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
)

const defaultSendBuffer = 64

// Manager is the channel manager. It maps each trip channel to the set of
// subscribed user ids and each user id to its live connections. Delivery is
// best effort: a slow client loses messages instead of stalling the sender.
type Manager struct {
	mu       sync.RWMutex
	clients  map[string]map[*Client]struct{}
	rooms    map[string]map[string]struct{}
	upgrader websocket.Upgrader
	buffer   int
}

// NewManager creates a manager whose clients buffer up to sendBuffer messages
func NewManager(sendBuffer int) *Manager {
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}
	return &Manager{
		clients: make(map[string]map[*Client]struct{}),
		rooms:   make(map[string]map[string]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		buffer: sendBuffer,
	}
}

// HandleConnection upgrades the request for an already authenticated caller
// and blocks until the connection closes. onMessage runs on the read goroutine.
func (m *Manager) HandleConnection(c echo.Context, caller models.Caller, onMessage func(*Client, models.WSMessage)) error {
	ws, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already written the HTTP error
		logger.Warn("WebSocket upgrade failed",
			logger.String("user_id", caller.UserID),
			logger.Err(err))
		return nil
	}

	client := &Client{
		UserID: caller.UserID,
		Role:   caller.Role,
		conn:   ws,
		send:   make(chan []byte, m.buffer),
	}
	m.addClient(client)
	logger.Info("WebSocket client connected",
		logger.String("user_id", caller.UserID),
		logger.String("role", caller.Role))

	go client.writePump()
	client.readPump(onMessage)

	m.removeClient(client)
	logger.Info("WebSocket client disconnected", logger.String("user_id", caller.UserID))
	return nil
}

func (m *Manager) addClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conns, ok := m.clients[client.UserID]
	if !ok {
		conns = make(map[*Client]struct{})
		m.clients[client.UserID] = conns
	}
	conns[client] = struct{}{}
}

// removeClient drops one connection. Room membership is keyed by user id and
// survives reconnects.
func (m *Manager) removeClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conns, ok := m.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := conns[client]; !ok {
		return
	}
	delete(conns, client)
	close(client.send)
	if len(conns) == 0 {
		delete(m.clients, client.UserID)
	}
}

// Subscribe adds userIDs to the trip channel, creating it when needed
func (m *Manager) Subscribe(tripID string, userIDs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[tripID]
	if !ok {
		room = make(map[string]struct{})
		m.rooms[tripID] = room
	}
	for _, id := range userIDs {
		if id != "" {
			room[id] = struct{}{}
		}
	}
}

// Unsubscribe removes one user from the trip channel
func (m *Manager) Unsubscribe(tripID, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[tripID]
	if !ok {
		return
	}
	delete(room, userID)
	if len(room) == 0 {
		delete(m.rooms, tripID)
	}
}

// CloseRoom removes every subscriber of the trip channel
func (m *Manager) CloseRoom(tripID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, tripID)
}

// IsSubscribed reports whether userID receives messages for tripID
func (m *Manager) IsSubscribed(tripID, userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.rooms[tripID][userID]
	return ok
}

// Broadcast sends event to every connection of every subscriber of tripID
// and returns the number of connections that accepted the message.
func (m *Manager) Broadcast(tripID, event string, data interface{}) (int, error) {
	msg, err := encode(event, data)
	if err != nil {
		return 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	delivered := 0
	for userID := range m.rooms[tripID] {
		delivered += m.deliverLocked(userID, msg, event)
	}
	return delivered, nil
}

// Reply sends event to the single connection client, not to the user's other devices
func (m *Manager) Reply(client *Client, event string, data interface{}) {
	msg, err := encode(event, data)
	if err != nil {
		logger.Warn("Failed to encode WebSocket message", logger.String("event", event), logger.Err(err))
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.clients[client.UserID][client]; !ok {
		return
	}
	if !client.enqueue(msg) {
		logger.Warn("Dropping reply for slow WebSocket client",
			logger.String("user_id", client.UserID),
			logger.String("event", event))
	}
}

func (m *Manager) deliverLocked(userID string, msg []byte, event string) int {
	delivered := 0
	for client := range m.clients[userID] {
		if client.enqueue(msg) {
			delivered++
			continue
		}
		logger.Warn("Dropping message for slow WebSocket client",
			logger.String("user_id", userID),
			logger.String("event", event))
	}
	return delivered
}

// SendErrorMessage replies with an error event on client's connection
func (m *Manager) SendErrorMessage(client *Client, code, message string) {
	m.Reply(client, constants.EventError, models.WSErrorMessage{
		Code:    code,
		Message: message,
	})
}

// SendCategorizedError logs err and tells the client only what its severity allows
func (m *Manager) SendCategorizedError(client *Client, err error, code string, severity constants.ErrorSeverity) {
	logger.Error("WebSocket operation failed",
		logger.String("user_id", client.UserID),
		logger.String("error_code", code),
		logger.String("severity", severity.String()),
		logger.Err(err))

	switch severity {
	case constants.ErrorSeverityClient:
		m.SendErrorMessage(client, code, err.Error())
	case constants.ErrorSeveritySecurity:
		m.SendErrorMessage(client, code, "Access denied")
	default:
		m.SendErrorMessage(client, code, "Operation failed")
	}
}

func encode(event string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshaling message data: %w", err)
	}
	return json.Marshal(models.WSMessage{Event: event, Data: raw})
}
