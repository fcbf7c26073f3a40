package llm

import (
	"testing"

	"VoiceChatRelay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestTurnsFromMessage(t *testing.T) {
	msg := &genai.LiveServerMessage{
		ServerContent: &genai.LiveServerContent{
			ModelTurn: &genai.Content{
				Parts: []*genai.Part{
					{InlineData: &genai.Blob{Data: []byte{1, 2}, MIMEType: "audio/pcm;rate=24000"}},
					nil,
					{Text: "thinking out loud"},
					{InlineData: &genai.Blob{Data: []byte{3}}},
				},
			},
			TurnComplete: true,
		},
	}

	turns := turnsFromMessage(msg)
	require.Len(t, turns, 3)
	assert.Equal(t, []byte{1, 2}, turns[0].Audio)
	assert.Equal(t, "thinking out loud", turns[1].Text)
	assert.Nil(t, turns[1].Audio)
	assert.Equal(t, []byte{3}, turns[2].Audio)
	assert.False(t, turns[1].TurnComplete)
	assert.True(t, turns[2].TurnComplete)
}

func TestTurnsFromMessage_NoContent(t *testing.T) {
	assert.Empty(t, turnsFromMessage(nil))
	assert.Empty(t, turnsFromMessage(&genai.LiveServerMessage{}))
	assert.Equal(t,
		[]models.Turn{{TurnComplete: true}},
		turnsFromMessage(&genai.LiveServerMessage{ServerContent: &genai.LiveServerContent{TurnComplete: true}}),
	)
}

func TestLiveConnectConfig(t *testing.T) {
	cfg := liveConnectConfig(models.BuildSessionConfig("a pirate captain", "Puck"))

	assert.Equal(t, []genai.Modality{genai.ModalityAudio}, cfg.ResponseModalities)
	assert.Equal(t, "Puck", cfg.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)
	require.NotNil(t, cfg.SystemInstruction)
	require.Len(t, cfg.SystemInstruction.Parts, 1)
	assert.Equal(t, "a pirate captain", cfg.SystemInstruction.Parts[0].Text)
}
