// Package server runs one game: it accepts client sessions over a
// configurable transport, dispatches their messages against the task pool
// and the world geometry, and broadcasts dirty task state on a fixed tick.
package server

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/skeldnet/skeld/internal/core/observability/log"
	"github.com/skeldnet/skeld/internal/core/protocol"
	"github.com/skeldnet/skeld/internal/core/protocol/quic"
	"github.com/skeldnet/skeld/internal/core/protocol/websocket"
	"github.com/skeldnet/skeld/internal/core/tasks"
	"github.com/skeldnet/skeld/internal/core/wire"
)

// Server owns the sessions, the task pool and the world for one game.
type Server struct {
	config    Config
	transport protocol.Transport
	pool      *tasks.Pool
	world     *World
	logger    log.Log

	mu       sync.RWMutex
	sessions map[string]*Session

	listener protocol.Listener
	cancel   context.CancelFunc
	group    *errgroup.Group
}

// New creates a server. The transport is chosen by the config.
func New(config Config, pool *tasks.Pool, world *World, logger log.Log) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Provide()
	}

	transport, err := buildTransport(config, logger)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:    config,
		transport: transport,
		pool:      pool,
		world:     world,
		logger:    logger,
		sessions:  make(map[string]*Session),
	}, nil
}

func buildTransport(config Config, logger log.Log) (protocol.Transport, error) {
	switch config.Transport {
	case "websocket":
		return websocket.NewTransport(config.protocolConfig(), logger), nil
	case "quic":
		return quic.NewTransport(config.protocolConfig(), nil, logger)
	default:
		return nil, errors.Wrap(protocol.ErrTransportNotSupported, config.Transport)
	}
}

// Start begins accepting sessions and broadcasting task state. It returns
// once the listener is up; the loops run until Stop.
func (s *Server) Start(ctx context.Context) error {
	listener, err := s.transport.Listen(ctx, s.config.Addr)
	if err != nil {
		return err
	}
	s.listener = listener

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	group, groupCtx := errgroup.WithContext(loopCtx)
	s.group = group

	group.Go(func() error { return s.acceptLoop(groupCtx) })
	group.Go(func() error { return s.syncLoop(groupCtx) })

	s.logger.Info("server started",
		zap.String("addr", listener.Addr().String()),
		zap.String("transport", s.transport.Name()))

	return nil
}

// Stop shuts the server down and waits for the loops to drain.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}

	var closeErr error
	if s.listener != nil {
		closeErr = s.listener.Close()
	}

	s.mu.Lock()
	for id, session := range s.sessions {
		_ = session.conn.Close()
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if s.group != nil {
		if err := s.group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("server loops exited with error", zap.Error(err))
		}
	}

	s.logger.Info("server stopped")
	return closeErr
}

// SessionCount returns the number of connected sessions.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		conn, err := s.listener.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, protocol.ErrTransportClosed) {
				return nil
			}
			s.logger.Warn("accept failed", zap.Error(err))
			continue
		}

		if s.config.MaxSessions > 0 && s.SessionCount() >= s.config.MaxSessions {
			s.logger.Warn("session limit reached, rejecting connection",
				zap.String("remote_addr", conn.RemoteAddr().String()))
			_ = conn.Close()
			continue
		}

		session := newSession(conn)
		s.mu.Lock()
		s.sessions[session.ID()] = session
		s.mu.Unlock()

		s.logger.Info("session connected",
			zap.String("session_id", session.ID()),
			zap.String("remote_addr", conn.RemoteAddr().String()))

		go s.serveSession(ctx, session)
	}
}

func (s *Server) serveSession(ctx context.Context, session *Session) {
	defer s.dropSession(session)

	for ctx.Err() == nil {
		data, err := session.conn.Receive()
		if err != nil {
			s.logger.Debug("session read ended",
				zap.String("session_id", session.ID()),
				zap.Error(err))
			return
		}

		var msg protocol.Message
		if err := msg.Unmarshal(data); err != nil {
			s.logger.Warn("dropping malformed message",
				zap.String("session_id", session.ID()),
				zap.Error(err))
			continue
		}

		session.touch()

		if err := s.handleMessage(session, msg); err != nil {
			s.logger.Warn("message handling failed",
				zap.String("session_id", session.ID()),
				zap.String("kind", msg.Kind.String()),
				zap.Error(err))
		}
	}
}

// handleMessage dispatches one client message.
func (s *Server) handleMessage(session *Session, msg protocol.Message) error {
	switch msg.Kind {
	case protocol.KindHello:
		var hello HelloPayload
		if err := decodeInto(&hello, msg.Payload); err != nil {
			return err
		}
		session.setPlayer(hello.Player)

		// Greet the new session with the full task list.
		for _, snap := range s.pool.Snapshots() {
			payload, err := encodeSnapshot(snap)
			if err != nil {
				return err
			}
			if err := session.send(protocol.KindTaskUpdate, payload); err != nil {
				return err
			}
		}
		return nil

	case protocol.KindTaskBegin:
		var begin TaskBeginPayload
		if err := decodeInto(&begin, msg.Payload); err != nil {
			return err
		}
		return s.beginTask(session, begin)

	case protocol.KindHeartbeat:
		return session.send(protocol.KindHeartbeat, nil)

	default:
		return protocol.ErrUnknownKind
	}
}

// beginTask starts a task's minigame if the player stands in its zone.
func (s *Server) beginTask(session *Session, begin TaskBeginPayload) error {
	task, ok := s.pool.Get(begin.TaskID)
	if !ok {
		return errors.Errorf("unknown task %s", begin.TaskID)
	}

	allowed, err := s.world.CanInteract(begin.Player, begin.TaskID)
	if err != nil {
		return errors.Wrap(err, "interaction check")
	}
	if !allowed {
		s.logger.Debug("task begin rejected, player not in zone",
			zap.String("session_id", session.ID()),
			zap.String("task_id", begin.TaskID.String()))
		return nil
	}

	task.Begin(tasks.State{Player: begin.Player})

	s.logger.Info("task started",
		zap.String("session_id", session.ID()),
		zap.String("task", task.Name()))
	return nil
}

// syncLoop broadcasts dirty task snapshots on every tick.
func (s *Server) syncLoop(ctx context.Context) error {
	ticker := time.NewTicker(s.config.SyncInterval.Std())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, snap := range s.pool.DirtySnapshots() {
				payload, err := encodeSnapshot(snap)
				if err != nil {
					s.logger.Error("snapshot encode failed", zap.Error(err))
					continue
				}
				s.broadcast(protocol.KindTaskUpdate, payload)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// broadcast sends a message to every session, dropping the ones that fail.
func (s *Server) broadcast(kind protocol.Kind, payload []byte) {
	s.mu.RLock()
	targets := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		targets = append(targets, session)
	}
	s.mu.RUnlock()

	for _, session := range targets {
		if err := session.send(kind, payload); err != nil {
			s.logger.Warn("broadcast failed, dropping session",
				zap.String("session_id", session.ID()),
				zap.Error(err))
			s.dropSession(session)
		}
	}
}

func (s *Server) dropSession(session *Session) {
	s.mu.Lock()
	_, present := s.sessions[session.ID()]
	delete(s.sessions, session.ID())
	s.mu.Unlock()

	if present {
		_ = session.conn.Close()
		s.logger.Info("session disconnected", zap.String("session_id", session.ID()))
	}
}

// decodeInto decodes a payload into a wire.Unmarshaler.
func decodeInto(u wire.Unmarshaler, payload []byte) error {
	return wire.NewDecoder(payload).Decode(u)
}
