package protocol

import (
	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/skeldnet/skeld/internal/core/wire"
)

// Kind identifies what a message carries.
type Kind uint8

const (
	// KindHello is the first message a client sends after connecting.
	KindHello Kind = iota
	// KindTaskBegin asks the server to start a task's minigame.
	KindTaskBegin
	// KindTaskUpdate carries one task snapshot, server to client.
	KindTaskUpdate
	// KindHeartbeat keeps an idle connection alive.
	KindHeartbeat

	kindEnd
)

func (k Kind) String() string {
	switch k {
	case KindHello:
		return "hello"
	case KindTaskBegin:
		return "task_begin"
	case KindTaskUpdate:
		return "task_update"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Message is one framed unit on the wire: a kind, a per-connection sequence
// number, and an opaque payload. The frame carries an xxhash64 checksum of
// the payload so corruption is caught before a payload is decoded.
type Message struct {
	Kind    Kind
	Seq     uint32
	Payload []byte
}

// Marshal encodes the message into its wire frame.
func (m Message) Marshal() ([]byte, error) {
	if m.Kind >= kindEnd {
		return nil, ErrUnknownKind
	}

	e := wire.NewEncoder()
	e.WriteUint8(uint8(m.Kind))
	e.WriteUint32(m.Seq)
	e.WriteUint64(xxhash.Sum64(m.Payload))
	if err := e.WriteBytes(m.Payload); err != nil {
		return nil, errors.Wrap(ErrMessageTooLarge, err.Error())
	}

	return e.Bytes(), nil
}

// Unmarshal decodes a wire frame, verifying the payload checksum.
func (m *Message) Unmarshal(data []byte) error {
	d := wire.NewDecoder(data)

	kind, err := d.ReadUint8()
	if err != nil {
		return errors.Wrap(ErrInvalidMessage, err.Error())
	}
	if Kind(kind) >= kindEnd {
		return ErrUnknownKind
	}

	seq, err := d.ReadUint32()
	if err != nil {
		return errors.Wrap(ErrInvalidMessage, err.Error())
	}

	sum, err := d.ReadUint64()
	if err != nil {
		return errors.Wrap(ErrInvalidMessage, err.Error())
	}

	payload, err := d.ReadBytes()
	if err != nil {
		return errors.Wrap(ErrInvalidMessage, err.Error())
	}

	if xxhash.Sum64(payload) != sum {
		return ErrChecksumMismatch
	}

	m.Kind = Kind(kind)
	m.Seq = seq
	if len(payload) == 0 {
		m.Payload = nil
	} else {
		m.Payload = payload
	}
	return nil
}
