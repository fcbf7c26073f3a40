package models

import "strings"

// DefaultProfileID is reserved: always present, never persisted or deleted.
const DefaultProfileID = "default"

const (
	ResponseModalityAudio = "AUDIO"

	baseInstruction = "You are a helpful audio chat assistant. You can speak fluently in both Russian and English. " +
		"Listen to the user and respond in the same language they use (Russian or English). " +
		"Keep your responses concise and natural for a voice conversation."
)

// 대화 프로필
type ChatProfile struct {
	ID       string        `json:"-"`
	Prompt   string        `json:"prompt"`
	Voice    string        `json:"voice"`
	ImageURL string        `json:"image_url"`
	Config   SessionConfig `json:"-"`
}

// Live 세션 설정. 값 타입이라 세션 시작 시 복사된다.
type SessionConfig struct {
	SystemInstruction string
	VoiceName         string
	ResponseModality  string
}

// 목록 표시용 (config 제외)
type ProfileSummary struct {
	ID       string `json:"-"`
	Prompt   string `json:"prompt"`
	Voice    string `json:"voice"`
	ImageURL string `json:"image_url"`
}

// BuildSessionConfig derives the live session configuration from prompt and voice only.
func BuildSessionConfig(prompt, voice string) SessionConfig {
	instruction := strings.TrimSpace(prompt)
	if instruction == "" {
		instruction = baseInstruction
	}
	return SessionConfig{
		SystemInstruction: instruction,
		VoiceName:         voice,
		ResponseModality:  ResponseModalityAudio,
	}
}

func NewChatProfile(id, prompt, voice, imageURL string) ChatProfile {
	return ChatProfile{
		ID:       id,
		Prompt:   prompt,
		Voice:    voice,
		ImageURL: imageURL,
		Config:   BuildSessionConfig(prompt, voice),
	}
}

func (p ChatProfile) Summary() ProfileSummary {
	return ProfileSummary{ID: p.ID, Prompt: p.Prompt, Voice: p.Voice, ImageURL: p.ImageURL}
}
