package wire

import (
	"encoding/binary"
	"math"
)

const initialBufferSize = 512

// Encoder is an append-only buffer that binary fields are written into.
// The zero value is usable; NewEncoder pre-allocates a reasonable buffer.
type Encoder struct {
	buf []byte
}

// NewEncoder creates an encoder with a pre-allocated buffer.
func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, initialBufferSize)}
}

// Bytes returns the encoded buffer. The slice aliases the encoder's
// internal storage and is only valid until the next write.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of bytes encoded so far.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Reset empties the buffer, keeping its capacity.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

func (e *Encoder) WriteUint8(v uint8) {
	e.buf = append(e.buf, v)
}

func (e *Encoder) WriteUint16(v uint16) {
	e.buf = binary.LittleEndian.AppendUint16(e.buf, v)
}

func (e *Encoder) WriteUint32(v uint32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
}

func (e *Encoder) WriteUint64(v uint64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
}

func (e *Encoder) WriteInt8(v int8)   { e.WriteUint8(uint8(v)) }
func (e *Encoder) WriteInt16(v int16) { e.WriteUint16(uint16(v)) }
func (e *Encoder) WriteInt32(v int32) { e.WriteUint32(uint32(v)) }
func (e *Encoder) WriteInt64(v int64) { e.WriteUint64(uint64(v)) }

func (e *Encoder) WriteFloat32(v float32) {
	e.WriteUint32(math.Float32bits(v))
}

func (e *Encoder) WriteFloat64(v float64) {
	e.WriteUint64(math.Float64bits(v))
}

func (e *Encoder) WriteBool(v bool) {
	if v {
		e.WriteUint8(1)
	} else {
		e.WriteUint8(0)
	}
}

// WriteString writes a uint16 length prefix followed by the raw bytes of s.
func (e *Encoder) WriteString(s string) error {
	if len(s) > math.MaxUint16 {
		return ErrValueTooLarge
	}
	e.WriteUint16(uint16(len(s)))
	e.buf = append(e.buf, s...)
	return nil
}

// WriteBytes writes a uint16 length prefix followed by the slice contents.
func (e *Encoder) WriteBytes(b []byte) error {
	if len(b) > math.MaxUint16 {
		return ErrValueTooLarge
	}
	e.WriteUint16(uint16(len(b)))
	e.buf = append(e.buf, b...)
	return nil
}

// WriteRaw appends bytes without a length prefix.
func (e *Encoder) WriteRaw(b []byte) {
	e.buf = append(e.buf, b...)
}

// Encode appends a Marshaler's fields to the buffer.
func (e *Encoder) Encode(m Marshaler) error {
	return m.EncodeTo(e)
}
