package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// contentGenerator is satisfied by (*genai.Client).Models.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var ErrEmptyTranslation = errors.New("translation: model returned no text")

type Translator struct {
	models contentGenerator
	model  string
}

func NewTranslator(client *genai.Client, model string) *Translator {
	return &Translator{models: client.Models, model: model}
}

// Translate renders text from fromLang into English, or into Russian when the
// source already is English.
func (t *Translator) Translate(ctx context.Context, text, fromLang string) (string, error) {
	resp, err := t.models.GenerateContent(ctx, t.model, genai.Text(translatePrompt(text, fromLang)), nil)
	if err != nil {
		return "", fmt.Errorf("Translator.Translate(): %w", err)
	}
	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", ErrEmptyTranslation
	}
	return out, nil
}

func translatePrompt(text, fromLang string) string {
	target := "English"
	if strings.EqualFold(fromLang, "en") || strings.EqualFold(fromLang, "english") {
		target = "Russian"
	}
	return fmt.Sprintf(
		"Translate the following text from %s to %s. Reply with the translation only, without quotes or commentary.\n\n%s",
		fromLang, target, text,
	)
}
