package imagegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"VoiceChatRelay/internal/logger"

	"github.com/stretchr/testify/assert"
)

// fakeKie serves createTask and answers recordInfo with states[attempt-1]
// (the last state repeats once the slice runs out).
type fakeKie struct {
	taskID     string
	states     []string
	resultJSON string
	polls      atomic.Int32
	submits    atomic.Int32
	authHeader atomic.Value
}

func (f *fakeKie) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(createTaskPath, func(w http.ResponseWriter, r *http.Request) {
		f.submits.Add(1)
		f.authHeader.Store(r.Header.Get("Authorization"))
		var req createTaskRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Input.Prompt, "pirate")
		writeJSON(w, map[string]any{"code": 200, "msg": "success", "data": map[string]any{"taskId": f.taskID}})
	})
	mux.HandleFunc(recordInfoPath, func(w http.ResponseWriter, r *http.Request) {
		n := int(f.polls.Add(1))
		assert.Equal(t, f.taskID, r.URL.Query().Get("taskId"))
		state := f.states[len(f.states)-1]
		if n <= len(f.states) {
			state = f.states[n-1]
		}
		data := map[string]any{"taskId": f.taskID, "state": state}
		if state == stateSuccess {
			data["resultJson"] = f.resultJSON
		}
		writeJSON(w, map[string]any{"code": 200, "data": data})
	})
	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(url, key string) *Client {
	return NewClient(url, key, "google/nano-banana", logger.Nop(), WithPollInterval(time.Millisecond))
}

func TestRun_NoAPIKeySkips(t *testing.T) {
	f := &fakeKie{taskID: "t1", states: []string{stateSuccess}}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()

	out := newTestClient(srv.URL, "").Run(context.Background(), "a pirate")
	assert.Equal(t, PhaseSkipped, out.Phase)
	assert.Empty(t, out.URL)
	assert.Zero(t, f.submits.Load())
}

func TestRun_Success(t *testing.T) {
	f := &fakeKie{
		taskID:     "t1",
		states:     []string{"waiting", "generating", stateSuccess},
		resultJSON: `{"resultUrls":["https://cdn.example/a.png","https://cdn.example/b.png"]}`,
	}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()

	out := newTestClient(srv.URL, "secret").Run(context.Background(), "a pirate")
	assert.Equal(t, PhaseSucceeded, out.Phase)
	assert.Equal(t, "https://cdn.example/a.png", out.URL)
	assert.Equal(t, 3, out.Attempts)
	assert.Equal(t, "Bearer secret", f.authHeader.Load())
}

func TestRun_SuccessWithMalformedResult(t *testing.T) {
	f := &fakeKie{taskID: "t1", states: []string{stateSuccess}, resultJSON: `{"resultUrls":`}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()

	url := newTestClient(srv.URL, "secret").GenerateImage(context.Background(), "a pirate")
	assert.Empty(t, url)
}

func TestRun_Failed(t *testing.T) {
	f := &fakeKie{taskID: "t1", states: []string{"waiting", stateFail}}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()

	out := newTestClient(srv.URL, "secret").Run(context.Background(), "a pirate")
	assert.Equal(t, PhaseFailed, out.Phase)
	assert.Empty(t, out.URL)
	assert.Equal(t, 2, out.Attempts)
}

func TestRun_AbandonsUnknownStateAfterGrace(t *testing.T) {
	f := &fakeKie{taskID: "t1", states: []string{""}}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()

	out := newTestClient(srv.URL, "secret").Run(context.Background(), "a pirate")
	assert.Equal(t, PhaseAbandoned, out.Phase)
	assert.Empty(t, out.URL)
	assert.Equal(t, UnknownStateGraceAttempts+1, out.Attempts)
	assert.EqualValues(t, UnknownStateGraceAttempts+1, f.polls.Load())
}

func TestRun_ExceptionStateIsAlsoAbandoned(t *testing.T) {
	f := &fakeKie{taskID: "t1", states: []string{stateException}}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()

	out := newTestClient(srv.URL, "secret").Run(context.Background(), "a pirate")
	assert.Equal(t, PhaseAbandoned, out.Phase)
}

func TestRun_TimesOutAtCeiling(t *testing.T) {
	f := &fakeKie{taskID: "t1", states: []string{"generating"}}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()

	out := newTestClient(srv.URL, "secret").Run(context.Background(), "a pirate")
	assert.Equal(t, PhaseTimedOut, out.Phase)
	assert.Equal(t, MaxPollAttempts, out.Attempts)
	assert.EqualValues(t, MaxPollAttempts, f.polls.Load())
}

func TestRun_MissingTaskID(t *testing.T) {
	f := &fakeKie{taskID: "", states: []string{stateSuccess}}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()

	out := newTestClient(srv.URL, "secret").Run(context.Background(), "a pirate")
	assert.Equal(t, PhaseRejected, out.Phase)
	assert.Zero(t, f.polls.Load())
}

func TestRun_TransportErrorNeverPropagates(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	out := newTestClient(url, "secret").Run(context.Background(), "a pirate")
	assert.Equal(t, PhaseRejected, out.Phase)
	assert.Empty(t, out.URL)
}

func TestRun_ContextCanceled(t *testing.T) {
	f := &fakeKie{taskID: "t1", states: []string{"generating"}}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", "m", logger.Nop(), WithPollInterval(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	out := c.Run(ctx, "a pirate")
	assert.Equal(t, PhaseFailed, out.Phase)
	assert.Zero(t, out.Attempts)
}

func TestFirstResultURL(t *testing.T) {
	assert.Equal(t, "u", firstResultURL(`{"resultUrls":["u"]}`))
	assert.Empty(t, firstResultURL(`{"resultUrls":[]}`))
	assert.Empty(t, firstResultURL(``))
	assert.Empty(t, firstResultURL(`not json`))
}
