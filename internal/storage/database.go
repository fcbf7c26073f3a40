package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const createSessionsTable = `
	CREATE TABLE IF NOT EXISTS sessions (
			"id" TEXT PRIMARY KEY,
			"chat_id" TEXT NOT NULL,
			"started_at" TEXT NOT NULL,
			"ended_at" TEXT NOT NULL,
			"audio_in" INTEGER NOT NULL DEFAULT 0,
			"audio_out" INTEGER NOT NULL DEFAULT 0,
			"text_in" INTEGER NOT NULL DEFAULT 0,
			"end_reason" TEXT
	);`

const createSessionsIndex = `CREATE INDEX IF NOT EXISTS idx_sessions_chat_id ON sessions(chat_id, started_at);`

// OpenDatabase opens (and migrates) the session history database.
// path ":memory:" is accepted for tests.
func OpenDatabase(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("OpenDatabase(): failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("OpenDatabase(): failed to open database: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenDatabase(): failed to connect to database: %w", err)
	}
	if _, err := db.Exec(createSessionsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenDatabase(): failed to create sessions table: %w", err)
	}
	if _, err := db.Exec(createSessionsIndex); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenDatabase(): failed to create sessions index: %w", err)
	}
	return db, nil
}
