package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"ecotrack/internal/domain/entity"
	"ecotrack/pkg/logger"
)

// Client represents one connected WebSocket client.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager tracks active connections and fans notifications out to them.
// It implements the usecase Notifier interface.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

// notification is the wire envelope pushed to clients.
type notification struct {
	Type      string           `json:"type"`
	LevelUps  []entity.LevelUp `json:"levelUps,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Debug("WebSocket client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client.UserID]; ok {
					delete(m.clients, client.UserID)
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Debug("WebSocket client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// NotifyLevelUps pushes a level-up notification to the user if connected.
// Delivery is best-effort: a disconnected user simply sees the new badge
// on their next progress fetch.
func (m *Manager) NotifyLevelUps(userID string, levelUps []entity.LevelUp) {
	if len(levelUps) == 0 {
		return
	}

	payload, err := json.Marshal(notification{
		Type:      "badge_level_up",
		LevelUps:  levelUps,
		Timestamp: time.Now(),
	})
	if err != nil {
		logger.Error("Failed to marshal level-up notification: %v", err)
		return
	}

	m.sendToUser(userID, payload)
}

func (m *Manager) sendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if !ok {
		return
	}

	select {
	case client.Send <- message:
	default:
		logger.Warn("Dropping notification for %s: send buffer full", userID)
	}
}

// ReadPump drains messages from the connection until it closes. Clients
// only listen on this stream; anything they send is discarded.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}
	}
}

// WritePump sends queued messages to the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("WebSocket write error for %s: %v", c.UserID, err)
			return
		}
	}
}
