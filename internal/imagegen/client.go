// Package imagegen submits avatar image jobs to the Kie.ai jobs API and polls
// them to completion. It is best effort: every failure mode ends in an empty
// URL, never in an error returned to the caller.
package imagegen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	PollInterval              = 3 * time.Second
	MaxPollAttempts           = 20
	UnknownStateGraceAttempts = 10

	createTaskPath = "/api/v1/jobs/createTask"
	recordInfoPath = "/api/v1/jobs/recordInfo"
	requestTimeout = 30 * time.Second
)

// Phase is where a job ended up (or currently is).
type Phase string

const (
	PhaseSkipped   Phase = "skipped"
	PhaseRejected  Phase = "rejected"
	PhaseSubmitted Phase = "submitted"
	PhasePolling   Phase = "polling"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
	PhaseTimedOut  Phase = "timed_out"
	PhaseAbandoned Phase = "abandoned"
)

// Remote task states reported by recordInfo.
const (
	stateSuccess   = "success"
	stateFail      = "fail"
	stateFailed    = "failed"
	stateException = "exception"
)

type Outcome struct {
	Phase    Phase
	TaskID   string
	URL      string
	Attempts int
}

type Client struct {
	http     *resty.Client
	apiKey   string
	model    string
	interval time.Duration
	logger   *zap.SugaredLogger
}

type Option func(*Client)

// WithPollInterval overrides PollInterval.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.interval = d }
}

func NewClient(baseURL, apiKey, model string, logger *zap.SugaredLogger, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(requestTimeout).
			SetHeader("Content-Type", "application/json"),
		apiKey:   apiKey,
		model:    model,
		interval: PollInterval,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createTaskRequest struct {
	Model string          `json:"model"`
	Input createTaskInput `json:"input"`
}

type createTaskInput struct {
	Prompt       string `json:"prompt"`
	OutputFormat string `json:"output_format"`
	ImageSize    string `json:"image_size"`
}

type createTaskResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		TaskID string `json:"taskId"`
	} `json:"data"`
}

type recordInfoResponse struct {
	Code int `json:"code"`
	Data struct {
		TaskID     string `json:"taskId"`
		State      string `json:"state"`
		ResultJSON string `json:"resultJson"`
		FailMsg    string `json:"failMsg"`
	} `json:"data"`
}

// resultJson arrives as a JSON document encoded inside a JSON string.
type resultPayload struct {
	ResultURLs []string `json:"resultUrls"`
}

// GenerateImage returns the generated image URL, or "" on any failure.
func (c *Client) GenerateImage(ctx context.Context, prompt string) string {
	return c.Run(ctx, prompt).URL
}

// Run drives one job through Submitted -> Polling -> terminal phase.
func (c *Client) Run(ctx context.Context, prompt string) Outcome {
	if c.apiKey == "" {
		c.logger.Infof("imagegen.Run(): no API key configured, skipping image generation")
		return Outcome{Phase: PhaseSkipped}
	}

	taskID, err := c.submit(ctx, prompt)
	if err != nil {
		c.logger.Warnf("imagegen.Run(): submit failed: %v", err)
		return Outcome{Phase: PhaseRejected}
	}
	c.logger.Infof("imagegen.Run(): task %s submitted", taskID)

	out := Outcome{Phase: PhasePolling, TaskID: taskID}
	for out.Attempts < MaxPollAttempts {
		select {
		case <-ctx.Done():
			c.logger.Warnf("imagegen.Run(): task %s canceled: %v", taskID, ctx.Err())
			out.Phase = PhaseFailed
			return out
		case <-time.After(c.interval):
		}
		out.Attempts++

		info, err := c.recordInfo(ctx, taskID)
		if err != nil {
			c.logger.Warnf("imagegen.Run(): task %s status query failed: %v", taskID, err)
			out.Phase = PhaseFailed
			return out
		}

		state := info.Data.State
		switch state {
		case stateSuccess:
			out.URL = firstResultURL(info.Data.ResultJSON)
			if out.URL == "" {
				c.logger.Warnf("imagegen.Run(): task %s succeeded without a usable result", taskID)
			}
			out.Phase = PhaseSucceeded
			return out
		case stateFail, stateFailed:
			c.logger.Warnf("imagegen.Run(): task %s failed: %s", taskID, info.Data.FailMsg)
			out.Phase = PhaseFailed
			return out
		case "", stateException:
			if out.Attempts > UnknownStateGraceAttempts {
				c.logger.Warnf("imagegen.Run(): task %s stuck in state %q after %d attempts, abandoning", taskID, state, out.Attempts)
				out.Phase = PhaseAbandoned
				return out
			}
		}
		c.logger.Debugf("imagegen.Run(): task %s state=%q attempt=%d", taskID, state, out.Attempts)
	}

	c.logger.Warnf("imagegen.Run(): task %s timed out after %d attempts", taskID, out.Attempts)
	out.Phase = PhaseTimedOut
	return out
}

func (c *Client) submit(ctx context.Context, prompt string) (string, error) {
	var resp createTaskResponse
	r, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(createTaskRequest{
			Model: c.model,
			Input: createTaskInput{
				Prompt:       avatarPrompt(prompt),
				OutputFormat: "png",
				ImageSize:    "1:1",
			},
		}).
		SetResult(&resp).
		Post(createTaskPath)
	if err != nil {
		return "", err
	}
	if r.IsError() {
		return "", fmt.Errorf("createTask: status %s", r.Status())
	}
	if resp.Data.TaskID == "" {
		return "", fmt.Errorf("createTask: no task id in response (code=%d, msg=%s)", resp.Code, resp.Msg)
	}
	return resp.Data.TaskID, nil
}

func (c *Client) recordInfo(ctx context.Context, taskID string) (*recordInfoResponse, error) {
	var resp recordInfoResponse
	r, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetQueryParam("taskId", taskID).
		SetResult(&resp).
		Get(recordInfoPath)
	if err != nil {
		return nil, err
	}
	if r.IsError() {
		return nil, fmt.Errorf("recordInfo: status %s", r.Status())
	}
	return &resp, nil
}

func firstResultURL(resultJSON string) string {
	if resultJSON == "" {
		return ""
	}
	var payload resultPayload
	if err := json.Unmarshal([]byte(resultJSON), &payload); err != nil {
		return ""
	}
	if len(payload.ResultURLs) == 0 {
		return ""
	}
	return payload.ResultURLs[0]
}

func avatarPrompt(prompt string) string {
	return fmt.Sprintf("Portrait avatar of a character for a voice chat app. Character description: %s", prompt)
}
