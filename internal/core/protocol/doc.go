// Package protocol defines the framed messages the server and clients
// exchange to sync task state, and the transport abstraction they travel
// over. Concrete transports live in the websocket and quic subpackages.
package protocol
