package server

import (
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skeldnet/skeld/internal/core/geometry"
	"github.com/skeldnet/skeld/internal/core/observability/log"
	"github.com/skeldnet/skeld/internal/core/protocol"
	"github.com/skeldnet/skeld/internal/core/tasks"
)

// fakeConn records sent frames in memory.
type fakeConn struct {
	id   string
	mu   sync.Mutex
	sent [][]byte
	fail bool
}

var _ protocol.Conn = (*fakeConn)(nil)

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return protocol.ErrConnectionClosed
	}
	frame := make([]byte, len(data))
	copy(frame, data)
	c.sent = append(c.sent, frame)
	return nil
}

func (c *fakeConn) Receive() ([]byte, error) { return nil, protocol.ErrConnectionClosed }
func (c *fakeConn) Close() error             { return nil }
func (c *fakeConn) RemoteAddr() net.Addr     { return &net.TCPAddr{} }
func (c *fakeConn) LocalAddr() net.Addr      { return &net.TCPAddr{} }

func (c *fakeConn) messages(t *testing.T) []protocol.Message {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]protocol.Message, len(c.sent))
	for i, frame := range c.sent {
		require.NoError(t, out[i].Unmarshal(frame))
	}
	return out
}

func newTestServer(t *testing.T) (*Server, *tasks.Task) {
	t.Helper()

	pool := tasks.NewPool(log.Nop())
	task := tasks.New("fix wiring", &tasks.Upload{})
	pool.Add(task)

	world := NewWorld(geometry.NewPolygon(
		geometry.V(-100, -100), geometry.V(100, -100),
		geometry.V(100, 100), geometry.V(-100, 100),
	))
	world.AddZone(Zone{
		Name: "electrical",
		Area: geometry.NewPolygon(
			geometry.V(10, 10), geometry.V(20, 10),
			geometry.V(20, 20), geometry.V(10, 20),
		),
		TaskID: task.ID(),
	})

	srv, err := New(DefaultConfig(), pool, world, log.Nop())
	require.NoError(t, err)
	return srv, task
}

func TestServer_HelloSendsTaskList(t *testing.T) {
	srv, task := newTestServer(t)

	conn := newFakeConn("c1")
	session := newSession(conn)

	payload, err := encodePayload(HelloPayload{Player: "red"})
	require.NoError(t, err)

	err = srv.handleMessage(session, protocol.Message{Kind: protocol.KindHello, Payload: payload})
	require.NoError(t, err)
	require.Equal(t, "red", session.Player())

	msgs := conn.messages(t)
	require.Len(t, msgs, 1)
	require.Equal(t, protocol.KindTaskUpdate, msgs[0].Kind)

	snap, err := decodeSnapshot(msgs[0].Payload)
	require.NoError(t, err)
	require.Equal(t, task.ID(), snap.ID)
	require.Equal(t, "fix wiring", snap.Name)
}

func TestServer_BeginTask(t *testing.T) {
	srv, task := newTestServer(t)
	session := newSession(newFakeConn("c1"))

	task.SetCompletion(0.4)

	t.Run("inside the zone", func(t *testing.T) {
		payload, err := encodePayload(TaskBeginPayload{
			TaskID: task.ID(),
			Player: geometry.NewCircle(geometry.V(15, 15), 1),
		})
		require.NoError(t, err)

		err = srv.handleMessage(session, protocol.Message{Kind: protocol.KindTaskBegin, Payload: payload})
		require.NoError(t, err)

		// The Upload minigame resets completion on begin.
		require.Zero(t, task.Completion())
	})

	t.Run("outside the zone", func(t *testing.T) {
		task.SetCompletion(0.4)

		payload, err := encodePayload(TaskBeginPayload{
			TaskID: task.ID(),
			Player: geometry.NewCircle(geometry.V(-50, -50), 1),
		})
		require.NoError(t, err)

		err = srv.handleMessage(session, protocol.Message{Kind: protocol.KindTaskBegin, Payload: payload})
		require.NoError(t, err)

		// Rejected silently; task state untouched.
		require.Equal(t, float32(0.4), task.Completion())
	})

	t.Run("unknown task", func(t *testing.T) {
		payload, err := encodePayload(TaskBeginPayload{
			Player: geometry.NewCircle(geometry.V(15, 15), 1),
		})
		require.NoError(t, err)

		err = srv.handleMessage(session, protocol.Message{Kind: protocol.KindTaskBegin, Payload: payload})
		require.Error(t, err)
	})
}

func TestServer_Heartbeat(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := newFakeConn("c1")
	session := newSession(conn)

	err := srv.handleMessage(session, protocol.Message{Kind: protocol.KindHeartbeat})
	require.NoError(t, err)

	msgs := conn.messages(t)
	require.Len(t, msgs, 1)
	require.Equal(t, protocol.KindHeartbeat, msgs[0].Kind)
}

func TestServer_BroadcastDropsFailedSessions(t *testing.T) {
	srv, _ := newTestServer(t)

	healthy := newFakeConn("healthy")
	broken := newFakeConn("broken")
	broken.fail = true

	srv.sessions[healthy.id] = newSession(healthy)
	srv.sessions[broken.id] = newSession(broken)

	srv.broadcast(protocol.KindHeartbeat, nil)

	require.Equal(t, 1, srv.SessionCount())
	require.Len(t, healthy.messages(t), 1)
}

func TestPayload_RoundTrips(t *testing.T) {
	t.Run("hello", func(t *testing.T) {
		data, err := encodePayload(HelloPayload{Player: "cyan"})
		require.NoError(t, err)

		var restored HelloPayload
		require.NoError(t, decodeInto(&restored, data))
		require.Equal(t, "cyan", restored.Player)
	})

	t.Run("task begin", func(t *testing.T) {
		original := TaskBeginPayload{
			TaskID: tasks.New("x", &tasks.Upload{}).ID(),
			Player: geometry.NewCircle(geometry.V(1.5, -2.25), 0.5),
		}

		data, err := encodePayload(original)
		require.NoError(t, err)

		var restored TaskBeginPayload
		require.NoError(t, decodeInto(&restored, data))
		require.Equal(t, original, restored)
	})
}
