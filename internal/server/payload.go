package server

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/skeldnet/skeld/internal/core/geometry"
	"github.com/skeldnet/skeld/internal/core/tasks"
	"github.com/skeldnet/skeld/internal/core/wire"
)

// Message payloads. The protocol package frames opaque bytes; the field
// layout of each payload kind lives here.

// HelloPayload announces the player behind a new connection.
type HelloPayload struct {
	Player string
}

var (
	_ wire.Marshaler   = HelloPayload{}
	_ wire.Unmarshaler = (*HelloPayload)(nil)
)

func (p HelloPayload) EncodeTo(e *wire.Encoder) error {
	return e.WriteString(p.Player)
}

func (p *HelloPayload) DecodeFrom(d *wire.Decoder) error {
	var err error
	p.Player, err = d.ReadString()
	return err
}

// TaskBeginPayload asks the server to start a task's minigame for a player
// standing at the given position.
type TaskBeginPayload struct {
	TaskID uuid.UUID
	Player geometry.Circle
}

var (
	_ wire.Marshaler   = TaskBeginPayload{}
	_ wire.Unmarshaler = (*TaskBeginPayload)(nil)
)

func (p TaskBeginPayload) EncodeTo(e *wire.Encoder) error {
	if err := e.WriteBytes(p.TaskID[:]); err != nil {
		return errors.Wrap(err, "encode task id")
	}
	center := p.Player.Center()
	e.WriteFloat64(center.X)
	e.WriteFloat64(center.Y)
	e.WriteFloat64(p.Player.Radius())
	return nil
}

func (p *TaskBeginPayload) DecodeFrom(d *wire.Decoder) error {
	raw, err := d.ReadBytes()
	if err != nil {
		return errors.Wrap(err, "decode task id")
	}
	if p.TaskID, err = uuid.FromBytes(raw); err != nil {
		return errors.Wrap(err, "decode task id")
	}

	x, err := d.ReadFloat64()
	if err != nil {
		return err
	}
	y, err := d.ReadFloat64()
	if err != nil {
		return err
	}
	radius, err := d.ReadFloat64()
	if err != nil {
		return err
	}

	p.Player = geometry.NewCircle(geometry.V(x, y), radius)
	return nil
}

// encodePayload runs a payload through a fresh encoder and copies the
// result out.
func encodePayload(m wire.Marshaler) ([]byte, error) {
	e := wire.NewEncoder()
	if err := e.Encode(m); err != nil {
		return nil, err
	}

	out := make([]byte, e.Len())
	copy(out, e.Bytes())
	return out, nil
}

// encodeSnapshot encodes one task snapshot for a task update message.
func encodeSnapshot(snap tasks.Snapshot) ([]byte, error) {
	return encodePayload(snap)
}

// decodeSnapshot decodes a task update payload.
func decodeSnapshot(payload []byte) (tasks.Snapshot, error) {
	var snap tasks.Snapshot
	err := wire.NewDecoder(payload).Decode(&snap)
	return snap, err
}
