package models

import "time"

// 종료된 relay 세션 기록
type SessionRecord struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	AudioIn   int64     `json:"audio_in"`
	AudioOut  int64     `json:"audio_out"`
	TextIn    int64     `json:"text_in"`
	EndReason string    `json:"end_reason"`
}
