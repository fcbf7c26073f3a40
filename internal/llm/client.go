package llm

import (
	"context"
	"errors"

	"google.golang.org/api/option"
	"google.golang.org/genai"
)

const geminiAPIVersion = "v1beta"

// NewGenAIClient creates the Gemini API client shared by the live dialer and the translator.
func NewGenAIClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, errors.New("NewGenAIClient(): GEMINI_API_KEY is not set")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: geminiAPIVersion},
	})
}

// googleClientOptions uses the credentials file when one is configured and
// falls back to application default credentials otherwise.
func googleClientOptions(credentialsFile string) []option.ClientOption {
	if credentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
}
