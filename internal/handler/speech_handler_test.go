package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"testing"

	"VoiceChatRelay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTranslator struct {
	text, fromLang string
	out            string
	err            error
}

func (s *stubTranslator) Translate(ctx context.Context, text, fromLang string) (string, error) {
	s.text, s.fromLang = text, fromLang
	return s.out, s.err
}

type stubPreviewer struct {
	voice, text string
	err         error
}

func (s *stubPreviewer) PreviewVoice(ctx context.Context, voiceName, text string) ([]byte, error) {
	s.voice, s.text = voiceName, text
	if s.err != nil {
		return nil, s.err
	}
	return []byte("RIFF....WAVE"), nil
}

type stubTranscriber struct {
	pcm      []byte
	language string
	err      error
}

func (s *stubTranscriber) Transcribe(ctx context.Context, pcm []byte, language string) (string, error) {
	s.pcm, s.language = pcm, language
	return "hello there", s.err
}

type failingSessionLog struct{}

func (failingSessionLog) CreateSessionRecord(models.SessionRecord) error { return errors.New("disk full") }
func (failingSessionLog) ListSessions(string, int) ([]models.SessionRecord, error) {
	return nil, errors.New("disk full")
}

func TestListVoices(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/voices", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[struct {
		Voices []struct {
			Name string `json:"name"`
		} `json:"voices"`
		Default string `json:"default"`
	}](t, w)
	assert.Len(t, body.Voices, 12)
	assert.Equal(t, "Zephyr", body.Default)
}

func TestPreviewVoice(t *testing.T) {
	previewer := &stubPreviewer{}
	env := newTestEnv(t, WithVoicePreviewer(previewer))

	w := env.do(t, http.MethodGet, "/voices/Puck/preview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/wav", w.Header().Get("Content-Type"))
	assert.Equal(t, "RIFF....WAVE", w.Body.String())
	assert.Equal(t, "Puck", previewer.voice)
	assert.Equal(t, defaultPreviewText, previewer.text)

	w = env.do(t, http.MethodGet, "/voices/Kore/preview?text=Ahoy", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ahoy", previewer.text)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/voices/Nobody/preview", nil).Code)

	previewer.err = errors.New("quota")
	assert.Equal(t, http.StatusBadGateway, env.do(t, http.MethodGet, "/voices/Puck/preview", nil).Code)
}

func TestOptionalEndpointsUnconfigured(t *testing.T) {
	env := newTestEnv(t)
	env.handler.sessions = nil

	pcm := base64.StdEncoding.EncodeToString([]byte{1, 2, 3, 4})
	assert.Equal(t, http.StatusServiceUnavailable, env.do(t, http.MethodGet, "/voices/Puck/preview", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, env.do(t, http.MethodPost, "/translate", TranslateRequest{Text: "hi"}).Code)
	assert.Equal(t, http.StatusServiceUnavailable, env.do(t, http.MethodPost, "/transcribe", TranscribeRequest{Data: pcm}).Code)
	assert.Equal(t, http.StatusServiceUnavailable, env.do(t, http.MethodGet, "/sessions", nil).Code)
}

func TestTranslate(t *testing.T) {
	translator := &stubTranslator{out: "Hi, how are you?"}
	env := newTestEnv(t, WithTranslator(translator))

	w := env.do(t, http.MethodPost, "/translate", TranslateRequest{Text: "Привет, как дела?", FromLang: "ru"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hi, how are you?", decodeBody[TranslateResponse](t, w).Translated)
	assert.Equal(t, "ru", translator.fromLang)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/translate", TranslateRequest{Text: "   "}).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/translate", `{"from_lang":"en"}`).Code)

	translator.err = errors.New("model overloaded")
	assert.Equal(t, http.StatusBadGateway, env.do(t, http.MethodPost, "/translate", TranslateRequest{Text: "hello"}).Code)
}

func TestTranscribe(t *testing.T) {
	transcriber := &stubTranscriber{}
	env := newTestEnv(t, WithTranscriber(transcriber))
	pcm := []byte{0x00, 0x01, 0xfe, 0xff}

	w := env.do(t, http.MethodPost, "/transcribe", TranscribeRequest{Data: base64.StdEncoding.EncodeToString(pcm)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello there", decodeBody[TranscribeResponse](t, w).Transcript)
	assert.Equal(t, pcm, transcriber.pcm)
	assert.Equal(t, defaultTranscribeLanguage, transcriber.language)

	w = env.do(t, http.MethodPost, "/transcribe", TranscribeRequest{Data: base64.StdEncoding.EncodeToString(pcm), Language: "ru-RU"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ru-RU", transcriber.language)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/transcribe", TranscribeRequest{Data: "%%%"}).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/transcribe", `{}`).Code)

	transcriber.err = errors.New("deadline exceeded")
	w = env.do(t, http.MethodPost, "/transcribe", TranscribeRequest{Data: base64.StdEncoding.EncodeToString(pcm)})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestListSessions(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.sessions.CreateSessionRecord(models.SessionRecord{
		ID: "s1", ChatID: "default", EndReason: endClientClosed,
	}))
	require.NoError(t, env.sessions.CreateSessionRecord(models.SessionRecord{
		ID: "s2", ChatID: "other", EndReason: endUpstreamError,
	}))

	w := env.do(t, http.MethodGet, "/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[SessionsResponse](t, w).Sessions, 2)

	w = env.do(t, http.MethodGet, "/sessions?chat_id=other&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sessions := decodeBody[SessionsResponse](t, w).Sessions
	require.Len(t, sessions, 1)
	assert.Equal(t, "s2", sessions[0].ID)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/sessions?limit=zero", nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/sessions?limit=-1", nil).Code)

	env.handler.sessions = failingSessionLog{}
	assert.Equal(t, http.StatusInternalServerError, env.do(t, http.MethodGet, "/sessions", nil).Code)
}
