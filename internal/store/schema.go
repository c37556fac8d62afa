package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the event tables. Every event row carries the global
// sequence number so events of different kinds can be ordered.
var schema = []string{
	sequenceTable,
	sequenceSeed,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		ts            INTEGER NOT NULL,
		provider      TEXT NOT NULL DEFAULT '',
		model         TEXT NOT NULL DEFAULT '',
		purpose       TEXT NOT NULL DEFAULT '',
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_request_events_purpose ON llm_request_events (purpose)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence           INTEGER NOT NULL UNIQUE,
		ts                 INTEGER NOT NULL,
		session_id         TEXT NOT NULL,
		candidate_id       TEXT NOT NULL,
		action             TEXT NOT NULL,
		stage              TEXT NOT NULL DEFAULT '',
		domain             TEXT NOT NULL DEFAULT '',
		questions_answered INTEGER NOT NULL DEFAULT 0,
		average_score      REAL NOT NULL DEFAULT 0,
		duration_secs      INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_session_events_session ON session_events (session_id)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence       INTEGER NOT NULL UNIQUE,
		ts             INTEGER NOT NULL,
		session_id     TEXT NOT NULL,
		candidate_id   TEXT NOT NULL,
		round          TEXT NOT NULL,
		question_index INTEGER NOT NULL,
		question       TEXT NOT NULL,
		transcript     TEXT NOT NULL DEFAULT '',
		language       TEXT NOT NULL DEFAULT '',
		score          INTEGER NOT NULL DEFAULT 0,
		outcome        TEXT NOT NULL DEFAULT '',
		record_ms      INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_answer_events_session ON answer_events (session_id)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
