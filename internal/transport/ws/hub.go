package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Session message types
const (
	MsgProgressUpdate MessageType = "progress_update"
	MsgQuizCompleted  MessageType = "quiz_completed"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Connection represents a WebSocket connection
type Connection struct {
	SessionID string // Empty for admin connections
	IsAdmin   bool
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	SessionID  string
	ToAdmins   bool
	Disconnect bool // Close the session's connections instead of sending
	Message    *Message
}

// Hub fans quiz events out to session and admin WebSocket connections
type Hub struct {
	sessionConns map[string]map[*Connection]struct{}
	adminConns   map[*Connection]struct{}

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage

	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
	logger    *zap.Logger
}

// NewHub creates a new WebSocket hub and starts its event loop
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		sessionConns: make(map[string]map[*Connection]struct{}),
		adminConns:   make(map[*Connection]struct{}),
		register:     make(chan *Connection),
		unregister:   make(chan *Connection),
		broadcast:    make(chan *BroadcastMessage, 256),
		done:         make(chan struct{}),
		stopped:      make(chan struct{}),
		logger:       logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	defer close(h.stopped)
	for {
		select {
		case <-h.done:
			h.closeAll()
			return

		case conn := <-h.register:
			if conn.IsAdmin {
				h.adminConns[conn] = struct{}{}
				h.logger.Debug("admin connected", zap.Int("admins", len(h.adminConns)))
				continue
			}
			if h.sessionConns[conn.SessionID] == nil {
				h.sessionConns[conn.SessionID] = make(map[*Connection]struct{})
			}
			h.sessionConns[conn.SessionID][conn] = struct{}{}
			h.logger.Debug("session connected", zap.String("session", conn.SessionID))

		case conn := <-h.unregister:
			h.remove(conn)

		case msg := <-h.broadcast:
			if msg.Disconnect {
				for conn := range h.sessionConns[msg.SessionID] {
					h.remove(conn)
				}
				continue
			}

			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.logger.Warn("failed to encode message", zap.Error(err))
				continue
			}
			targets := h.sessionConns[msg.SessionID]
			if msg.ToAdmins {
				targets = h.adminConns
			}
			for conn := range targets {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
		}
	}
}

func (h *Hub) remove(conn *Connection) {
	if conn.IsAdmin {
		if _, ok := h.adminConns[conn]; ok {
			delete(h.adminConns, conn)
			close(conn.Send)
			h.logger.Debug("admin disconnected")
		}
		return
	}
	conns, ok := h.sessionConns[conn.SessionID]
	if !ok {
		return
	}
	if _, ok := conns[conn]; ok {
		delete(conns, conn)
		close(conn.Send)
		h.logger.Debug("session disconnected", zap.String("session", conn.SessionID))
	}
	if len(conns) == 0 {
		delete(h.sessionConns, conn.SessionID)
	}
}

func (h *Hub) closeAll() {
	for conn := range h.adminConns {
		h.remove(conn)
	}
	for _, conns := range h.sessionConns {
		for conn := range conns {
			h.remove(conn)
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Close stops the event loop and closes every connection's send channel
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
	<-h.stopped
}

func (h *Hub) publish(msg *BroadcastMessage) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

func envelope(msgType string, payload interface{}) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: MessageType(msgType), Payload: data}, nil
}

// BroadcastToSession sends a message to every connection watching a session (implements service.Broadcaster)
func (h *Hub) BroadcastToSession(sessionID string, msgType string, payload interface{}) {
	msg, err := envelope(msgType, payload)
	if err != nil {
		h.logger.Warn("failed to encode payload", zap.String("type", msgType), zap.String("session", sessionID), zap.Error(err))
		return
	}
	h.publish(&BroadcastMessage{
		SessionID: sessionID,
		Message:   msg,
	})
}

// BroadcastToAdmins sends a message to all admin connections (implements service.Broadcaster)
func (h *Hub) BroadcastToAdmins(msgType string, payload interface{}) {
	msg, err := envelope(msgType, payload)
	if err != nil {
		h.logger.Warn("failed to encode payload", zap.String("type", msgType), zap.Error(err))
		return
	}
	h.publish(&BroadcastMessage{
		ToAdmins: true,
		Message:  msg,
	})
}

// DisconnectSession closes a session's connections once earlier broadcasts are delivered (implements service.Broadcaster)
func (h *Hub) DisconnectSession(sessionID string) {
	h.publish(&BroadcastMessage{
		SessionID:  sessionID,
		Disconnect: true,
	})
}
