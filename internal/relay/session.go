// Package relay bridges one client websocket to one upstream live AI stream.
//
// A Session moves through AwaitingHandshake -> Active -> Closing -> Closed.
// While Active, two goroutines relay frames in opposite directions; the first
// one to stop cancels the group, which closes both handles exactly once and
// thereby unblocks the other.
package relay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"VoiceChatRelay/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AudioMIMEType tags every client audio chunk forwarded upstream.
const AudioMIMEType = "audio/pcm"

// DefaultHandshakeTimeout bounds the wait for the initialize message.
const DefaultHandshakeTimeout = 10 * time.Second

type State int32

const (
	StateAwaitingHandshake State = iota
	StateActive
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateAwaitingHandshake:
		return "awaiting_handshake"
	case StateActive:
		return "active"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

type ProfileLookup interface {
	Get(id string) (models.ChatProfile, bool)
}

// Dialer opens the upstream stream for a session config.
type Dialer func(ctx context.Context, cfg models.SessionConfig) (Upstream, error)

type Summary struct {
	SessionID string
	ChatID    string
	StartedAt time.Time
	EndedAt   time.Time
	AudioIn   int64
	AudioOut  int64
	TextIn    int64
	Err       error
}

type Session struct {
	id       string
	client   *guardedClient
	profiles ProfileLookup
	dial     Dialer
	logger   *zap.SugaredLogger

	handshakeTimeout time.Duration

	mu        sync.Mutex
	state     State
	upstream  *guardedUpstream
	chatID    string
	startedAt time.Time
	endedAt   time.Time
	endErr    error

	audioIn  atomic.Int64
	audioOut atomic.Int64
	textIn   atomic.Int64
}

type SessionOption func(*Session)

func WithHandshakeTimeout(d time.Duration) SessionOption {
	return func(s *Session) { s.handshakeTimeout = d }
}

func NewSession(conn ClientConn, profiles ProfileLookup, dial Dialer, logger *zap.SugaredLogger, opts ...SessionOption) *Session {
	id := uuid.New().String()
	s := &Session{
		id:               id,
		handshakeTimeout: DefaultHandshakeTimeout,
		client:           &guardedClient{conn: conn},
		profiles:         profiles,
		dial:             dial,
		logger:           logger.With("session", id),
		state:            StateAwaitingHandshake,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Run drives the session to Closed and returns why it ended. Canceling ctx
// tears the session down.
func (s *Session) Run(ctx context.Context) (err error) {
	s.mu.Lock()
	s.startedAt = time.Now()
	s.mu.Unlock()

	stopParent := context.AfterFunc(ctx, s.shutdown)
	defer stopParent()
	defer func() { s.finish(err) }()

	profile, err := s.handshake()
	if err != nil {
		return err
	}

	// profile.Config is a copy; later registry changes do not reach this session
	stream, err := s.dial(ctx, profile.Config)
	if err != nil {
		s.logger.Errorf("Session.Run(): failed to open upstream for chat %s: %v", profile.ID, err)
		return &UpstreamStreamError{Op: "connect", Err: err}
	}
	up, ok := s.activate(stream)
	if !ok {
		cause := ctx.Err()
		if cause == nil {
			cause = errHandleClosed
		}
		return &ClientTransportError{Op: "connect", Err: cause}
	}
	s.logger.Infof("Session.Run(): active for chat %s (voice=%s)", profile.ID, profile.Config.VoiceName)

	g, gctx := errgroup.WithContext(ctx)
	stopGroup := context.AfterFunc(gctx, s.shutdown)
	defer stopGroup()

	g.Go(s.recoverTask("upstreamToClient", func() error { return s.upstreamToClient(up) }))
	g.Go(s.recoverTask("clientToUpstream", func() error { return s.clientToUpstream(up) }))
	return g.Wait()
}

func (s *Session) handshake() (models.ChatProfile, error) {
	if err := s.client.setReadDeadline(time.Now().Add(s.handshakeTimeout)); err != nil {
		return models.ChatProfile{}, &ClientTransportError{Op: "handshake read", Err: err}
	}
	messageType, data, err := s.client.read()
	if err != nil {
		return models.ChatProfile{}, &ClientTransportError{Op: "handshake read", Err: err}
	}
	// an active session may stay silent while the user listens
	if err := s.client.setReadDeadline(time.Time{}); err != nil {
		return models.ChatProfile{}, &ClientTransportError{Op: "handshake read", Err: err}
	}

	var msg inboundMessage
	if messageType != websocket.TextMessage || json.Unmarshal(data, &msg) != nil || msg.Type != typeInitialize {
		return models.ChatProfile{}, s.reject(msgFirstMustInitialize)
	}

	chatID := models.DefaultProfileID
	if msg.ChatID != nil {
		chatID = *msg.ChatID
	}
	profile, ok := s.profiles.Get(chatID)
	if !ok {
		s.logger.Infof("Session.handshake(): unknown chat %q", chatID)
		return models.ChatProfile{}, s.reject(msgChatNotFound)
	}

	s.mu.Lock()
	s.chatID = chatID
	s.mu.Unlock()
	return profile, nil
}

func (s *Session) reject(message string) error {
	if err := s.client.writeJSON(errorMessage{Error: message}); err != nil {
		s.logger.Warnf("Session.reject(): failed to notify client: %v", err)
	}
	return &HandshakeError{Message: message}
}

// activate attaches the upstream unless teardown already started, in which
// case the stream is closed right away.
func (s *Session) activate(stream Upstream) (*guardedUpstream, bool) {
	up := &guardedUpstream{stream: stream}

	s.mu.Lock()
	if s.state != StateAwaitingHandshake {
		s.mu.Unlock()
		_ = up.close()
		return nil, false
	}
	s.upstream = up
	s.state = StateActive
	s.mu.Unlock()
	return up, true
}

func (s *Session) upstreamToClient(up *guardedUpstream) error {
	for {
		turn, err := up.receive()
		if err != nil {
			return &UpstreamStreamError{Op: "receive", Err: err}
		}
		if len(turn.Audio) > 0 {
			msg := audioMessage{Type: typeAudio, Data: base64.StdEncoding.EncodeToString(turn.Audio)}
			if err := s.client.writeJSON(msg); err != nil {
				return &ClientTransportError{Op: "write", Err: err}
			}
			s.audioOut.Add(1)
		}
		// text is diagnostic only; audio is what the client plays
		if turn.Text != "" {
			s.logger.Infof("Session.upstreamToClient(): upstream text: %s", turn.Text)
		}
	}
}

func (s *Session) clientToUpstream(up *guardedUpstream) error {
	for {
		messageType, data, err := s.client.read()
		if err != nil {
			return &ClientTransportError{Op: "read", Err: err}
		}
		if messageType != websocket.TextMessage {
			return &ClientTransportError{Op: "decode", Err: errUnsupportedFrame}
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return &ClientTransportError{Op: "decode", Err: err}
		}

		switch msg.Type {
		case typeAudio:
			chunk, err := base64.StdEncoding.DecodeString(msg.Data)
			if err != nil {
				return &ClientTransportError{Op: "decode", Err: err}
			}
			if len(chunk) == 0 {
				continue
			}
			if err := up.sendAudio(chunk, AudioMIMEType); err != nil {
				return &UpstreamStreamError{Op: "send audio", Err: err}
			}
			s.audioIn.Add(1)
		case typeText:
			if err := up.sendText(msg.Data); err != nil {
				return &UpstreamStreamError{Op: "send text", Err: err}
			}
			s.textIn.Add(1)
		default:
			s.logger.Debugf("Session.clientToUpstream(): ignoring message type %q", msg.Type)
		}
	}
}

func (s *Session) recoverTask(name string, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Errorf("Session.%s(): panic: %v", name, r)
				err = fmt.Errorf("relay: %s panicked: %v", name, r)
			}
		}()
		return fn()
	}
}

// shutdown moves to Closing and closes both handles. Safe to call repeatedly
// and from any goroutine.
func (s *Session) shutdown() {
	s.mu.Lock()
	if s.state < StateClosing {
		s.state = StateClosing
	}
	up := s.upstream
	s.mu.Unlock()

	if up != nil {
		if err := up.close(); err != nil {
			s.logger.Debugf("Session.shutdown(): upstream close: %v", err)
		}
	}
	if err := s.client.close(); err != nil {
		s.logger.Debugf("Session.shutdown(): client close: %v", err)
	}
}

func (s *Session) finish(err error) {
	s.shutdown()

	s.mu.Lock()
	s.state = StateClosed
	s.endedAt = time.Now()
	s.endErr = err
	s.mu.Unlock()

	if IsClientGone(err) {
		s.logger.Infof("Session.finish(): client disconnected")
	} else {
		s.logger.Infof("Session.finish(): closed: %v", err)
	}
}

func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{
		SessionID: s.id,
		ChatID:    s.chatID,
		StartedAt: s.startedAt,
		EndedAt:   s.endedAt,
		AudioIn:   s.audioIn.Load(),
		AudioOut:  s.audioOut.Load(),
		TextIn:    s.textIn.Load(),
		Err:       s.endErr,
	}
}

// IsClientGone reports an orderly client disconnect.
func IsClientGone(err error) bool {
	var cerr *ClientTransportError
	if !errors.As(err, &cerr) || cerr.Op != "read" {
		return false
	}
	return websocket.IsCloseError(cerr.Err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived)
}
