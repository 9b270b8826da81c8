package protocol

import "errors"

// Core protocol errors
var (
	// Connection errors

	ErrConnectionClosed  = errors.New("connection is closed")
	ErrConnectionTimeout = errors.New("connection timeout")
	ErrInvalidConnection = errors.New("invalid connection")

	// Message errors

	ErrMessageTooLarge  = errors.New("message too large")
	ErrInvalidMessage   = errors.New("invalid message")
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrUnknownKind      = errors.New("unknown message kind")

	// Transport errors

	ErrTransportClosed       = errors.New("transport is closed")
	ErrTransportNotSupported = errors.New("transport not supported")
	ErrListenFailed          = errors.New("listen failed")
	ErrDialFailed            = errors.New("dial failed")
)
