/**
* Name: 			live.go
* Description: 		Gemini Live API 양방향 스트림 어댑터
* Workflow: 		세션 연결, 오디오/텍스트 전송, 응답 턴 수신, 종료
 */

package llm

import (
	"context"
	"fmt"

	"VoiceChatRelay/internal/models"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type LiveDialer struct {
	client *genai.Client
	model  string
	logger *zap.SugaredLogger
}

func NewLiveDialer(client *genai.Client, model string, logger *zap.SugaredLogger) *LiveDialer {
	return &LiveDialer{client: client, model: model, logger: logger}
}

// Dial opens one live session configured from a profile's session config.
func (d *LiveDialer) Dial(ctx context.Context, cfg models.SessionConfig) (*LiveStream, error) {
	session, err := d.client.Live.Connect(ctx, d.model, liveConnectConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("LiveDialer.Dial(): connect %s: %w", d.model, err)
	}
	d.logger.Infof("LiveDialer.Dial(): connected to %s (voice=%s)", d.model, cfg.VoiceName)
	return &LiveStream{session: session}, nil
}

func liveConnectConfig(cfg models.SessionConfig) *genai.LiveConnectConfig {
	return &genai.LiveConnectConfig{
		ResponseModalities: []genai.Modality{genai.Modality(cfg.ResponseModality)},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: cfg.VoiceName},
			},
		},
		SystemInstruction: genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser),
	}
}

// LiveStream is not safe for concurrent Receive calls; sends and receives may
// run on different goroutines.
type LiveStream struct {
	session *genai.Session
	pending []models.Turn
}

func (s *LiveStream) SendAudio(chunk []byte, mimeType string) error {
	return s.session.SendRealtimeInput(genai.LiveRealtimeInput{
		Audio: &genai.Blob{Data: chunk, MIMEType: mimeType},
	})
}

// SendText sends a complete user turn.
func (s *LiveStream) SendText(text string) error {
	return s.session.SendClientContent(genai.LiveClientContentInput{
		Turns:        []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		TurnComplete: genai.Ptr(true),
	})
}

// Receive returns the next turn, one per content part, in server order.
func (s *LiveStream) Receive() (models.Turn, error) {
	for len(s.pending) == 0 {
		msg, err := s.session.Receive()
		if err != nil {
			return models.Turn{}, err
		}
		s.pending = turnsFromMessage(msg)
	}
	turn := s.pending[0]
	s.pending = s.pending[1:]
	return turn, nil
}

func (s *LiveStream) Close() error {
	return s.session.Close()
}

// turnsFromMessage flattens a server message. Messages without model content
// (setup acks, usage metadata) yield nothing.
func turnsFromMessage(msg *genai.LiveServerMessage) []models.Turn {
	if msg == nil || msg.ServerContent == nil {
		return nil
	}
	content := msg.ServerContent

	var turns []models.Turn
	if content.ModelTurn != nil {
		for _, part := range content.ModelTurn.Parts {
			if part == nil {
				continue
			}
			var t models.Turn
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				t.Audio = part.InlineData.Data
			}
			t.Text = part.Text
			if t.Audio != nil || t.Text != "" {
				turns = append(turns, t)
			}
		}
	}
	if content.TurnComplete {
		if len(turns) > 0 {
			turns[len(turns)-1].TurnComplete = true
		} else {
			turns = append(turns, models.Turn{TurnComplete: true})
		}
	}
	return turns
}
