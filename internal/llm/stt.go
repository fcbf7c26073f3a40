/**
* Name: 			stt.go
* Description: 		Cloud STT 단발성 음성 인식
* Workflow: 		STT 클라이언트 생성, PCM 오디오 전송, 텍스트 수신
 */

package llm

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"
)

// client audio format: 16 kHz mono PCM16, same as the relay's upstream input
const (
	transcribeSampleRate = 16000
	defaultLanguage      = "en-US"
)

type Transcriber struct {
	client *speech.Client
	logger *zap.SugaredLogger
}

func NewTranscriber(ctx context.Context, credentialsFile string, logger *zap.SugaredLogger) (*Transcriber, error) {
	client, err := speech.NewClient(ctx, googleClientOptions(credentialsFile)...)
	if err != nil {
		return nil, fmt.Errorf("NewTranscriber(): failed to create speech client: %w", err)
	}
	return &Transcriber{client: client, logger: logger}, nil
}

func (r *Transcriber) Transcribe(ctx context.Context, pcm []byte, language string) (string, error) {
	resp, err := r.client.Recognize(ctx, recognizeRequest(pcm, language))
	if err != nil {
		r.logger.Errorf("Transcriber.Transcribe(): Recognize failed: %v", err)
		return "", err
	}
	return joinTranscripts(resp), nil
}

func recognizeRequest(pcm []byte, language string) *speechpb.RecognizeRequest {
	if language == "" {
		language = defaultLanguage
	}
	return &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            transcribeSampleRate,
			AudioChannelCount:          1,
			LanguageCode:               language,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: pcm},
		},
	}
}

// joinTranscripts keeps the top alternative of every result.
func joinTranscripts(resp *speechpb.RecognizeResponse) string {
	var parts []string
	for _, result := range resp.GetResults() {
		if alts := result.GetAlternatives(); len(alts) > 0 {
			parts = append(parts, strings.TrimSpace(alts[0].GetTranscript()))
		}
	}
	return strings.Join(parts, " ")
}

func (r *Transcriber) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
