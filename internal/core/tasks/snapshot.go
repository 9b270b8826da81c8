package tasks

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/skeldnet/skeld/internal/core/wire"
)

// Snapshot is the wire representation of a task's sync state.
type Snapshot struct {
	ID         uuid.UUID
	Name       string
	Completion float32
	Version    uint64
}

var (
	_ wire.Marshaler   = Snapshot{}
	_ wire.Unmarshaler = (*Snapshot)(nil)
)

// EncodeTo writes the snapshot's fields in wire order.
func (s Snapshot) EncodeTo(e *wire.Encoder) error {
	if err := e.WriteBytes(s.ID[:]); err != nil {
		return errors.Wrap(err, "encode task id")
	}
	if err := e.WriteString(s.Name); err != nil {
		return errors.Wrap(err, "encode task name")
	}
	e.WriteFloat32(s.Completion)
	e.WriteUint64(s.Version)
	return nil
}

// DecodeFrom reads the snapshot's fields in wire order.
func (s *Snapshot) DecodeFrom(d *wire.Decoder) error {
	raw, err := d.ReadBytes()
	if err != nil {
		return errors.Wrap(err, "decode task id")
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return errors.Wrap(err, "decode task id")
	}
	s.ID = id

	if s.Name, err = d.ReadString(); err != nil {
		return errors.Wrap(err, "decode task name")
	}
	if s.Completion, err = d.ReadFloat32(); err != nil {
		return errors.Wrap(err, "decode task completion")
	}
	if s.Version, err = d.ReadUint64(); err != nil {
		return errors.Wrap(err, "decode task version")
	}
	return nil
}
