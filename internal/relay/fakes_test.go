package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"VoiceChatRelay/internal/models"

	"github.com/gorilla/websocket"
)

type frame struct {
	typ  int
	data []byte
}

func textFrame(s string) frame { return frame{typ: websocket.TextMessage, data: []byte(s)} }

// fakeClient records every call and flags I/O made after Close as a
// violation. One read may still enter right after Close: the session's single
// reader can pass its guard just before the close lands. Any read beyond that
// one is a violation.
type fakeClient struct {
	in       chan frame
	closedCh chan struct{}

	mu              sync.Mutex
	written         [][]byte
	readDeadlines   []time.Time
	closeCount      int
	closed          bool
	readsAfterClose int
	violations      []string
}

func newFakeClient(frames ...frame) *fakeClient {
	c := &fakeClient{in: make(chan frame, 128), closedCh: make(chan struct{})}
	for _, f := range frames {
		c.in <- f
	}
	return c
}

func (c *fakeClient) check(op string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		c.violations = append(c.violations, op)
		return false
	}
	return true
}

func (c *fakeClient) enterRead() (deadline time.Time, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		c.readsAfterClose++
		if c.readsAfterClose > 1 {
			c.violations = append(c.violations, "ReadMessage")
		}
		return time.Time{}, false
	}
	if n := len(c.readDeadlines); n > 0 {
		deadline = c.readDeadlines[n-1]
	}
	return deadline, true
}

func (c *fakeClient) ReadMessage() (int, []byte, error) {
	deadline, ok := c.enterRead()
	if !ok {
		return 0, nil, net.ErrClosed
	}

	var timeout <-chan time.Time
	if !deadline.IsZero() {
		timer := time.NewTimer(time.Until(deadline))
		defer timer.Stop()
		timeout = timer.C
	}
	select {
	case f, ok := <-c.in:
		if !ok {
			return 0, nil, &websocket.CloseError{Code: websocket.CloseNormalClosure}
		}
		return f.typ, f.data, nil
	case <-c.closedCh:
		return 0, nil, net.ErrClosed
	case <-timeout:
		return 0, nil, os.ErrDeadlineExceeded
	}
}

func (c *fakeClient) SetReadDeadline(t time.Time) error {
	if !c.check("SetReadDeadline") {
		return net.ErrClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readDeadlines = append(c.readDeadlines, t)
	return nil
}

func (c *fakeClient) deadlines() []time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Time(nil), c.readDeadlines...)
}

func (c *fakeClient) WriteMessage(messageType int, data []byte) error {
	if !c.check("WriteMessage") {
		return net.ErrClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.written = append(c.written, append([]byte(nil), data...))
	return nil
}

func (c *fakeClient) SetWriteDeadline(t time.Time) error {
	if !c.check("SetWriteDeadline") {
		return net.ErrClosed
	}
	return nil
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeCount++
	if !c.closed {
		c.closed = true
		close(c.closedCh)
	}
	return nil
}

// disconnect simulates the client going away after the queued frames.
func (c *fakeClient) disconnect() { close(c.in) }

func (c *fakeClient) writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.written))
	for i, w := range c.written {
		out[i] = string(w)
	}
	return out
}

func (c *fakeClient) stats() (closeCount int, violations []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeCount, append([]string(nil), c.violations...)
}

type fakeUpstream struct {
	turns    chan models.Turn
	closedCh chan struct{}
	sendErr  error
	onRecv   func()

	mu         sync.Mutex
	audio      [][]byte
	mimes      []string
	texts      []string
	closeCount int
	closed     bool
	violations []string
	received   chan struct{}

	receivesAfterClose int
}

func newFakeUpstream(turns ...models.Turn) *fakeUpstream {
	u := &fakeUpstream{
		turns:    make(chan models.Turn, 128),
		closedCh: make(chan struct{}),
		received: make(chan struct{}, 128),
	}
	for _, t := range turns {
		u.turns <- t
	}
	return u
}

func (u *fakeUpstream) check(op string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		u.violations = append(u.violations, op)
		return false
	}
	return true
}

func (u *fakeUpstream) SendAudio(chunk []byte, mimeType string) error {
	if !u.check("SendAudio") {
		return net.ErrClosed
	}
	if u.sendErr != nil {
		return u.sendErr
	}
	u.mu.Lock()
	u.audio = append(u.audio, chunk)
	u.mimes = append(u.mimes, mimeType)
	u.mu.Unlock()
	u.received <- struct{}{}
	return nil
}

func (u *fakeUpstream) SendText(text string) error {
	if !u.check("SendText") {
		return net.ErrClosed
	}
	u.mu.Lock()
	u.texts = append(u.texts, text)
	u.mu.Unlock()
	u.received <- struct{}{}
	return nil
}

// enterReceive applies the same one-in-flight allowance as fakeClient reads.
func (u *fakeUpstream) enterReceive() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		u.receivesAfterClose++
		if u.receivesAfterClose > 1 {
			u.violations = append(u.violations, "Receive")
		}
		return false
	}
	return true
}

func (u *fakeUpstream) Receive() (models.Turn, error) {
	if !u.enterReceive() {
		return models.Turn{}, net.ErrClosed
	}
	if u.onRecv != nil {
		u.onRecv()
	}
	select {
	case t, ok := <-u.turns:
		if !ok {
			return models.Turn{}, io.EOF
		}
		return t, nil
	case <-u.closedCh:
		return models.Turn{}, net.ErrClosed
	}
}

func (u *fakeUpstream) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.closeCount++
	if !u.closed {
		u.closed = true
		close(u.closedCh)
	}
	return nil
}

func (u *fakeUpstream) stats() (closeCount int, violations []string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.closeCount, append([]string(nil), u.violations...)
}

func (u *fakeUpstream) sent() (audio [][]byte, mimes []string, texts []string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([][]byte(nil), u.audio...), append([]string(nil), u.mimes...), append([]string(nil), u.texts...)
}

type mapProfiles map[string]models.ChatProfile

func (m mapProfiles) Get(id string) (models.ChatProfile, bool) {
	p, ok := m[id]
	return p, ok
}

func defaultProfiles() mapProfiles {
	return mapProfiles{
		models.DefaultProfileID: models.NewChatProfile(models.DefaultProfileID, "", "Zephyr", ""),
		"pirate":                models.NewChatProfile("pirate", "a pirate captain", "Puck", ""),
	}
}

// recordingDialer hands out one upstream and remembers the config it got.
type recordingDialer struct {
	upstream *fakeUpstream
	err      error

	mu    sync.Mutex
	calls int
	cfg   models.SessionConfig
}

func (d *recordingDialer) dial(ctx context.Context, cfg models.SessionConfig) (Upstream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	d.cfg = cfg
	if d.err != nil {
		return nil, d.err
	}
	if d.upstream == nil {
		return nil, errors.New("no upstream")
	}
	return d.upstream, nil
}

func (d *recordingDialer) snapshot() (int, models.SessionConfig) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls, d.cfg
}

func initFrame(chatID string) frame {
	return textFrame(fmt.Sprintf(`{"type":"initialize","chat_id":%q}`, chatID))
}
