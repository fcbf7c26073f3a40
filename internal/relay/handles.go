package relay

import (
	"encoding/json"
	"sync"
	"time"

	"VoiceChatRelay/internal/models"

	"github.com/gorilla/websocket"
)

const clientWriteTimeout = 10 * time.Second

// ClientConn is the client side of a session. *websocket.Conn satisfies it.
type ClientConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Upstream is one live AI stream.
type Upstream interface {
	SendAudio(chunk []byte, mimeType string) error
	SendText(text string) error
	Receive() (models.Turn, error)
	Close() error
}

// guardedClient refuses I/O once closed and closes the conn exactly once.
// Writes hold mu, so a close waits for at most one in-flight write
// (bounded by clientWriteTimeout). Reads only check the flag: a blocked read
// is released by closing the conn.
type guardedClient struct {
	conn   ClientConn
	mu     sync.Mutex
	closed bool
}

func (g *guardedClient) read() (int, []byte, error) {
	g.mu.Lock()
	closed := g.closed
	g.mu.Unlock()
	if closed {
		return 0, nil, errHandleClosed
	}
	return g.conn.ReadMessage()
}

func (g *guardedClient) setReadDeadline(t time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return errHandleClosed
	}
	return g.conn.SetReadDeadline(t)
}

func (g *guardedClient) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return errHandleClosed
	}
	if err := g.conn.SetWriteDeadline(time.Now().Add(clientWriteTimeout)); err != nil {
		return err
	}
	return g.conn.WriteMessage(websocket.TextMessage, data)
}

func (g *guardedClient) close() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	g.closed = true
	g.mu.Unlock()
	return g.conn.Close()
}

type guardedUpstream struct {
	stream Upstream
	mu     sync.Mutex
	closed bool
}

func (g *guardedUpstream) receive() (models.Turn, error) {
	g.mu.Lock()
	closed := g.closed
	g.mu.Unlock()
	if closed {
		return models.Turn{}, errHandleClosed
	}
	return g.stream.Receive()
}

func (g *guardedUpstream) sendAudio(chunk []byte, mimeType string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return errHandleClosed
	}
	return g.stream.SendAudio(chunk, mimeType)
}

func (g *guardedUpstream) sendText(text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return errHandleClosed
	}
	return g.stream.SendText(text)
}

func (g *guardedUpstream) close() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	g.closed = true
	g.mu.Unlock()
	return g.stream.Close()
}
