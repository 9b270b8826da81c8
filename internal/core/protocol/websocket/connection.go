package websocket

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/skeldnet/skeld/internal/core/protocol"
)

var _ protocol.Conn = (*Conn)(nil)

// Conn wraps a WebSocket connection. WebSocket frames already delimit
// messages, so no extra length framing is needed.
type Conn struct {
	id     string
	conn   *websocket.Conn
	config protocol.Config
	closed atomic.Bool

	// gorilla allows one concurrent writer only
	writeMu sync.Mutex

	bytesSent     atomic.Uint64
	bytesReceived atomic.Uint64
}

// NewConn wraps an upgraded or dialed WebSocket connection.
func NewConn(conn *websocket.Conn, config protocol.Config) *Conn {
	return &Conn{
		id:     protocol.GenerateConnID(),
		conn:   conn,
		config: config,
	}
}

func (c *Conn) ID() string {
	return c.id
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *Conn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// Send writes one binary frame.
func (c *Conn) Send(data []byte) error {
	if c.closed.Load() {
		return protocol.ErrConnectionClosed
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.config.WriteTimeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
	}

	if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return errors.Wrap(err, "write websocket frame")
	}

	c.bytesSent.Add(uint64(len(data)))
	return nil
}

// Receive blocks until the next binary frame arrives.
func (c *Conn) Receive() ([]byte, error) {
	if c.closed.Load() {
		return nil, protocol.ErrConnectionClosed
	}

	if c.config.ReadTimeout > 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
	}

	messageType, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, errors.Wrap(err, "read websocket frame")
	}
	if messageType != websocket.BinaryMessage {
		return nil, protocol.ErrInvalidMessage
	}

	c.bytesReceived.Add(uint64(len(data)))
	return data, nil
}

// Close closes the connection. Safe to call more than once.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.conn.Close()
}

// BytesSent returns the total payload bytes written.
func (c *Conn) BytesSent() uint64 {
	return c.bytesSent.Load()
}

// BytesReceived returns the total payload bytes read.
func (c *Conn) BytesReceived() uint64 {
	return c.bytesReceived.Load()
}
