package storage

import (
	"database/sql"
	"time"

	"VoiceChatRelay/internal/models"
)

// fixed width so text ordering matches time ordering
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) CreateSessionRecord(r models.SessionRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions(id, chat_id, started_at, ended_at, audio_in, audio_out, text_in, end_reason) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ChatID,
		r.StartedAt.UTC().Format(timeLayout), r.EndedAt.UTC().Format(timeLayout),
		r.AudioIn, r.AudioOut, r.TextIn, r.EndReason,
	)
	return err
}

// ListSessions returns the newest sessions first. An empty chatID lists all chats.
func (s *SessionStore) ListSessions(chatID string, limit int) ([]models.SessionRecord, error) {
	query := `
		SELECT id, chat_id, started_at, ended_at, audio_in, audio_out, text_in, end_reason
		FROM sessions
		WHERE (? = '' OR chat_id = ?)
		ORDER BY started_at DESC
		LIMIT ?
	`
	rows, err := s.db.Query(query, chatID, chatID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.SessionRecord{}
	for rows.Next() {
		var r models.SessionRecord
		var started, ended string
		var reason sql.NullString

		if err := rows.Scan(&r.ID, &r.ChatID, &started, &ended, &r.AudioIn, &r.AudioOut, &r.TextIn, &reason); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, err
		}
		if r.EndedAt, err = time.Parse(timeLayout, ended); err != nil {
			return nil, err
		}
		r.EndReason = reason.String
		records = append(records, r)
	}
	return records, rows.Err()
}
