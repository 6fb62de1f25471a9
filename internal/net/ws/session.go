package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Session wraps a subscriber connection with a write lock so the broadcast
// loop and read-loop replies never interleave frames on the same socket.
type Session struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewSession(id string, conn *websocket.Conn) *Session {
	return &Session{id: id, conn: conn}
}

func (s *Session) ID() string {
	return s.id
}

// WriteJSON marshals and sends one text frame under the write deadline.
func (s *Session) WriteJSON(payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *Session) Close() error {
	return s.conn.Close()
}
