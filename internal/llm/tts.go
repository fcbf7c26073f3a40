/**
* Name: 			tts.go
* Description: 		Cloud TTS 음성 미리듣기
* Workflow: 		TTS 클라이언트 생성, 텍스트 전송, 오디오 수신
 */

package llm

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"go.uber.org/zap"
)

const (
	previewLanguage   = "en-US"
	previewSampleRate = 24000
)

// TTSClient synthesizes voice previews with Chirp3-HD voices, which share their
// names with the live API's prebuilt voices.
type TTSClient struct {
	client *texttospeech.Client
	logger *zap.SugaredLogger
}

func NewTTSClient(ctx context.Context, credentialsFile string, logger *zap.SugaredLogger) (*TTSClient, error) {
	client, err := texttospeech.NewClient(ctx, googleClientOptions(credentialsFile)...)
	if err != nil {
		return nil, fmt.Errorf("NewTTSClient(): failed to create TTS client: %w", err)
	}
	return &TTSClient{client: client, logger: logger}, nil
}

// PreviewVoice returns a WAV (LINEAR16) sample of the voice saying text.
func (t *TTSClient) PreviewVoice(ctx context.Context, voiceName, text string) ([]byte, error) {
	resp, err := t.client.SynthesizeSpeech(ctx, previewRequest(voiceName, text))
	if err != nil {
		t.logger.Errorf("TTSClient.PreviewVoice(): SynthesizeSpeech failed for %s: %v", voiceName, err)
		return nil, err
	}
	t.logger.Debugf("TTSClient.PreviewVoice(): %s -> %d bytes", voiceName, len(resp.AudioContent))
	return resp.AudioContent, nil
}

func previewRequest(voiceName, text string) *texttospeechpb.SynthesizeSpeechRequest {
	return &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: previewLanguage,
			Name:         fmt.Sprintf("%s-Chirp3-HD-%s", previewLanguage, voiceName),
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding:   texttospeechpb.AudioEncoding_LINEAR16,
			SampleRateHertz: previewSampleRate,
		},
	}
}

func (t *TTSClient) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}
