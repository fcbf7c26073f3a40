/**
* Name: 			handler.go
* Description: 		Gin HTTP 핸들러 공통 구조
* Workflow: 		의존성 주입, 요청/응답 타입 정의
 */
package handler

import (
	"context"
	"sync"

	"VoiceChatRelay/internal/models"
	"VoiceChatRelay/internal/relay"

	"go.uber.org/zap"
)

// Profiles is the registry the handlers read and mutate.
type Profiles interface {
	relay.ProfileLookup
	List() []models.ProfileSummary
	Create(ctx context.Context, prompt string) (models.ChatProfile, error)
	Delete(id string) (bool, error)
}

type SessionLog interface {
	CreateSessionRecord(r models.SessionRecord) error
	ListSessions(chatID string, limit int) ([]models.SessionRecord, error)
}

type Translator interface {
	Translate(ctx context.Context, text, fromLang string) (string, error)
}

type VoicePreviewer interface {
	PreviewVoice(ctx context.Context, voiceName, text string) ([]byte, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, pcm []byte, language string) (string, error)
}

// Handler owns every HTTP and websocket endpoint. Optional collaborators left
// unset make their endpoints answer 503.
type Handler struct {
	profiles    Profiles
	dial        relay.Dialer
	sessions    SessionLog
	translator  Translator
	previewer   VoicePreviewer
	transcriber Transcriber
	logger      *zap.SugaredLogger

	// live counts relay sessions still running or recording their history
	live sync.WaitGroup
}

type Option func(*Handler)

func WithSessionLog(l SessionLog) Option { return func(h *Handler) { h.sessions = l } }
func WithTranslator(t Translator) Option { return func(h *Handler) { h.translator = t } }
func WithVoicePreviewer(p VoicePreviewer) Option { return func(h *Handler) { h.previewer = p } }
func WithTranscriber(t Transcriber) Option { return func(h *Handler) { h.transcriber = t } }

func New(profiles Profiles, dial relay.Dialer, logger *zap.SugaredLogger, opts ...Option) *Handler {
	h := &Handler{profiles: profiles, dial: dial, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Wait blocks until every relay session has finished and been recorded, or
// until ctx ends. Call it after the server stops accepting connections.
func (h *Handler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.live.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// /create_chat 요청 바디
type CreateChatRequest struct {
	Prompt string `json:"prompt" example:"a pirate captain with a deep male voice"`
}

type CreateChatResponse struct {
	ChatID   string `json:"chat_id" example:"3f0c9a52-7f55-4a5e-9a55-0d9c3f2b1e11"`
	Voice    string `json:"voice" example:"Puck"`
	ImageURL string `json:"image_url" example:"https://tempfile.aiquickdraw.com/avatar.png"`
}

// /delete_chat 요청 바디
type DeleteChatRequest struct {
	ChatID string `json:"chat_id" example:"3f0c9a52-7f55-4a5e-9a55-0d9c3f2b1e11"`
}

type DeleteChatResponse struct {
	Success bool `json:"success" example:"true"`
}

type TranslateRequest struct {
	Text     string `json:"text" binding:"required" example:"Привет, как дела?"`
	FromLang string `json:"from_lang" example:"ru"`
}

type TranslateResponse struct {
	Translated string `json:"translated" example:"Hi, how are you?"`
}

type TranscribeRequest struct {
	Data     string `json:"data" binding:"required" example:"AAAAAP//AAA="`
	Language string `json:"language" example:"en-US"`
}

type TranscribeResponse struct {
	Transcript string `json:"transcript" example:"hello there"`
}

type SessionsResponse struct {
	Sessions []models.SessionRecord `json:"sessions"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"에러 원인 및 설명"`
}
