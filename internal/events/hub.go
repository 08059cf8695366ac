package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 256
)

// Message is one entry on the admin live feed.
type Message struct {
	Event   string    `json:"event"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// session is a single connected admin. All writes to the underlying conn
// go through the send channel and its writer goroutine; gorilla allows at
// most one concurrent writer per connection.
type session struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
}

// Hub fans reconciliation and deletion events out to connected admin
// sessions. One connection per user; a new connection replaces the old.
type Hub struct {
	mu       sync.RWMutex
	sessions map[int64]*session
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[int64]*session),
	}
}

// ServeWS registers the connection and blocks reading it until the peer
// goes away. Callers own the HTTP handler goroutine this runs on.
func (h *Hub) ServeWS(conn *websocket.Conn, userID int64) {
	s := &session{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}

	h.register(s)

	go h.writePump(s)
	h.readPump(s)
}

func (h *Hub) register(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, exists := h.sessions[s.userID]; exists {
		close(old.send)
	}
	h.sessions[s.userID] = s
}

func (h *Hub) unregister(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.sessions[s.userID]; ok && existing == s {
		delete(h.sessions, s.userID)
		close(s.send)
	}
}

// Publish broadcasts to every connected session. Sessions whose send
// buffer is full are skipped rather than blocked on.
func (h *Hub) Publish(event string, payload any) {
	data, err := json.Marshal(Message{Event: event, Payload: payload, At: time.Now()})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.sessions {
		select {
		case s.send <- data:
		default:
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.sessions)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, s := range h.sessions {
		close(s.send)
		delete(h.sessions, userID)
	}
}

// writePump is the session's only writer: queued events plus keep-alive
// pings. A closed send channel tells it the session was replaced or the
// hub shut down.
func (h *Hub) writePump(s *session) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case data, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only serves to notice the peer going away.
func (h *Hub) readPump(s *session) {
	defer func() {
		h.unregister(s)
		_ = s.conn.Close()
	}()

	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}
