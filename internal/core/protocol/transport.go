package protocol

import (
	"context"
	"net"
	"time"

	"github.com/google/uuid"
)

// Config holds the transport settings shared by all implementations.
type Config struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	KeepAlive      time.Duration
	MaxMessageSize int
}

// DefaultConfig returns sensible development defaults.
func DefaultConfig() Config {
	return Config{
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   10 * time.Second,
		KeepAlive:      15 * time.Second,
		MaxMessageSize: 1 << 20, // 1MB
	}
}

// Conn is a single framed connection. Send and Receive move whole message
// frames; the transport owns the byte-level framing.
type Conn interface {
	// ID returns the connection's unique identifier.
	ID() string

	// Send writes one frame.
	Send(data []byte) error

	// Receive blocks until the next frame arrives or the connection
	// closes.
	Receive() ([]byte, error)

	// Close terminates the connection.
	Close() error

	RemoteAddr() net.Addr
	LocalAddr() net.Addr
}

// Listener accepts incoming connections for one transport.
type Listener interface {
	// Accept waits for and returns the next connection.
	Accept(ctx context.Context) (Conn, error)

	// Addr returns the listening address.
	Addr() net.Addr

	// Close stops the listener.
	Close() error
}

// Transport is a network protocol a game can run over.
type Transport interface {
	// Name identifies the transport in logs and config.
	Name() string

	// Listen starts accepting connections on addr.
	Listen(ctx context.Context, addr string) (Listener, error)

	// Dial connects to a remote server.
	Dial(ctx context.Context, addr string) (Conn, error)
}

// GenerateConnID returns a fresh connection identifier.
func GenerateConnID() string {
	return uuid.NewString()
}
