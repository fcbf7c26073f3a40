package relay

import (
	"errors"
	"fmt"
)

var (
	errHandleClosed     = errors.New("relay: handle already closed")
	errUnsupportedFrame = errors.New("relay: binary frames are not supported")
)

// HandshakeError ends a connection before any upstream session is opened.
// Message is what the client was told.
type HandshakeError struct {
	Message string
	Err     error
}

func (e *HandshakeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("handshake: %s: %v", e.Message, e.Err)
	}
	return "handshake: " + e.Message
}

func (e *HandshakeError) Unwrap() error { return e.Err }

// UpstreamStreamError is a failure of the remote live stream. Never retried.
type UpstreamStreamError struct {
	Op  string
	Err error
}

func (e *UpstreamStreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamStreamError) Unwrap() error { return e.Err }

// ClientTransportError is a client disconnect or a malformed client frame.
type ClientTransportError struct {
	Op  string
	Err error
}

func (e *ClientTransportError) Error() string {
	return fmt.Sprintf("client %s: %v", e.Op, e.Err)
}

func (e *ClientTransportError) Unwrap() error { return e.Err }
