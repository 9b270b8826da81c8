// Package websocket provides the WebSocket transport. The server side is an
// HTTP listener upgrading requests on /ws; accepted connections are handed
// over through the Listener.
package websocket

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/skeldnet/skeld/internal/core/observability/log"
	"github.com/skeldnet/skeld/internal/core/protocol"
)

const acceptBacklog = 16

var _ protocol.Transport = (*Transport)(nil)

// Transport implements protocol.Transport over WebSocket.
type Transport struct {
	config protocol.Config
	logger log.Log
}

// NewTransport creates a WebSocket transport.
func NewTransport(config protocol.Config, logger log.Log) *Transport {
	if logger == nil {
		logger = log.Provide()
	}
	return &Transport{config: config, logger: logger}
}

func (t *Transport) Name() string {
	return "websocket"
}

// Listen starts an HTTP server on addr that upgrades /ws requests.
func (t *Transport) Listen(ctx context.Context, addr string) (protocol.Listener, error) {
	netListener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrap(protocol.ErrListenFailed, err.Error())
	}

	l := &Listener{
		addr:    netListener.Addr(),
		backlog: make(chan protocol.Conn, acceptBacklog),
		done:    make(chan struct{}),
		config:  t.config,
		logger:  t.logger.With(zap.String("listener_addr", netListener.Addr().String())),
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		wsConn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			l.logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		conn := NewConn(wsConn, l.config)
		select {
		case l.backlog <- conn:
			l.logger.Debug("connection queued",
				zap.String("connection_id", conn.ID()),
				zap.String("remote_addr", conn.RemoteAddr().String()))
		case <-l.done:
			_ = conn.Close()
		}
	})

	l.server = &http.Server{Handler: mux}

	go func() {
		if err := l.server.Serve(netListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.logger.Error("websocket server stopped", zap.Error(err))
		}
	}()

	t.logger.Info("websocket listener started", zap.String("addr", netListener.Addr().String()))
	return l, nil
}

// Dial connects to a WebSocket server at addr (host:port).
func (t *Transport) Dial(ctx context.Context, addr string) (protocol.Conn, error) {
	url := "ws://" + addr + "/ws"

	wsConn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.Wrap(protocol.ErrDialFailed, err.Error())
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	return NewConn(wsConn, t.config), nil
}

var _ protocol.Listener = (*Listener)(nil)

// Listener hands out connections accepted by the HTTP upgrade handler.
type Listener struct {
	addr    net.Addr
	server  *http.Server
	backlog chan protocol.Conn
	done    chan struct{}
	closed  atomic.Bool
	config  protocol.Config
	logger  log.Log
}

// Accept waits for the next upgraded connection.
func (l *Listener) Accept(ctx context.Context) (protocol.Conn, error) {
	if l.closed.Load() {
		return nil, protocol.ErrTransportClosed
	}

	select {
	case conn := <-l.backlog:
		return conn, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.done:
		return nil, protocol.ErrTransportClosed
	}
}

func (l *Listener) Addr() net.Addr {
	return l.addr
}

// Close shuts the HTTP server down and drops queued connections.
func (l *Listener) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}

	close(l.done)

	// Connections already queued for Accept would otherwise leak open.
drain:
	for {
		select {
		case conn := <-l.backlog:
			_ = conn.Close()
		default:
			break drain
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return l.server.Shutdown(shutdownCtx)
}
