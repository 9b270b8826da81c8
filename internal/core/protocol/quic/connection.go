package quic

import (
	"encoding/binary"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/quic-go/quic-go"

	"github.com/skeldnet/skeld/internal/core/protocol"
)

// frameHeaderSize is the length prefix on every frame: a big-endian uint32.
const frameHeaderSize = 4

var _ protocol.Conn = (*Conn)(nil)

// Conn carries frames over a single bidirectional QUIC stream. QUIC streams
// are byte streams, so every frame is length-prefixed.
type Conn struct {
	id     string
	conn   *quic.Conn
	stream *quic.Stream
	config protocol.Config
	closed atomic.Bool

	writeMu sync.Mutex
	readMu  sync.Mutex
}

// NewConn wraps an established QUIC connection and its message stream.
func NewConn(conn *quic.Conn, stream *quic.Stream, config protocol.Config) *Conn {
	return &Conn{
		id:     protocol.GenerateConnID(),
		conn:   conn,
		stream: stream,
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

// Send writes one length-prefixed frame to the stream.
func (c *Conn) Send(data []byte) error {
	if c.closed.Load() {
		return protocol.ErrConnectionClosed
	}
	if c.config.MaxMessageSize > 0 && len(data) > c.config.MaxMessageSize {
		return protocol.ErrMessageTooLarge
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.config.WriteTimeout > 0 {
		_ = c.stream.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
	}

	header := make([]byte, frameHeaderSize)
	binary.BigEndian.PutUint32(header, uint32(len(data)))

	if _, err := c.stream.Write(header); err != nil {
		return errors.Wrap(err, "write frame header")
	}
	if _, err := c.stream.Write(data); err != nil {
		return errors.Wrap(err, "write frame body")
	}

	return nil
}

// Receive reads one length-prefixed frame from the stream.
func (c *Conn) Receive() ([]byte, error) {
	if c.closed.Load() {
		return nil, protocol.ErrConnectionClosed
	}

	c.readMu.Lock()
	defer c.readMu.Unlock()

	if c.config.ReadTimeout > 0 {
		_ = c.stream.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
	}

	header := make([]byte, frameHeaderSize)
	if _, err := io.ReadFull(c.stream, header); err != nil {
		return nil, errors.Wrap(err, "read frame header")
	}

	length := binary.BigEndian.Uint32(header)
	if c.config.MaxMessageSize > 0 && int(length) > c.config.MaxMessageSize {
		return nil, protocol.ErrMessageTooLarge
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(c.stream, data); err != nil {
		return nil, errors.Wrap(err, "read frame body")
	}

	return data, nil
}

// Close closes the stream and the connection. Safe to call more than once.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	_ = c.stream.Close()
	return c.conn.CloseWithError(0, "connection closed")
}
