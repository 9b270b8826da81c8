package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/skeldnet/skeld/internal/core/protocol"
)

// Session is one connected client.
type Session struct {
	conn protocol.Conn
	seq  atomic.Uint32

	mu       sync.RWMutex
	player   string
	lastSeen time.Time
}

func newSession(conn protocol.Conn) *Session {
	return &Session{
		conn:     conn,
		lastSeen: time.Now(),
	}
}

// ID returns the underlying connection id.
func (s *Session) ID() string {
	return s.conn.ID()
}

// Player returns the player name announced in the hello message, or the
// empty string before it arrives.
func (s *Session) Player() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player
}

func (s *Session) setPlayer(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player = name
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

// LastSeen returns the time of the last received message.
func (s *Session) LastSeen() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}

// send frames and writes a message, stamping the per-session sequence
// number.
func (s *Session) send(kind protocol.Kind, payload []byte) error {
	msg := protocol.Message{
		Kind:    kind,
		Seq:     s.seq.Add(1),
		Payload: payload,
	}

	data, err := msg.Marshal()
	if err != nil {
		return err
	}
	return s.conn.Send(data)
}
