package wire

import "errors"

var (
	// ErrUnexpectedEnd indicates the buffer ended before a field was
	// fully read.
	ErrUnexpectedEnd = errors.New("unexpected end of buffer")

	// ErrInvalidUTF8 indicates a decoded string field is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 in string field")

	// ErrValueTooLarge indicates a string or byte field exceeds the uint16
	// length prefix.
	ErrValueTooLarge = errors.New("value exceeds length prefix limit")
)

// Marshaler is a type that can append itself to an Encoder.
type Marshaler interface {
	EncodeTo(e *Encoder) error
}

// Unmarshaler is a type that can read itself from a Decoder.
type Unmarshaler interface {
	DecodeFrom(d *Decoder) error
}
