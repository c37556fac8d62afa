package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// All event tables draw from one sequence, so an answer can be ordered
// against the LLM calls that scored it. Autoincrement ids are per table.
const (
	sequenceTable = `CREATE TABLE IF NOT EXISTS global_sequence (
		id       INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`
	sequenceSeed = `INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`
	sequenceNext = `UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`
)

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func nextSequence(ctx context.Context, q queryRower) (int64, error) {
	var seq int64
	if err := q.QueryRowContext(ctx, sequenceNext).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// insertEvent stamps a row with the next sequence number and the current
// time and writes it to table. Both happen in one transaction, so a
// failed insert does not burn a sequence number.
func (r *eventRepo) insertEvent(ctx context.Context, table string, cols []string, vals ...any) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	seq, err := nextSequence(ctx, tx)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("INSERT INTO %s (sequence, ts, %s) VALUES (?, ?%s)",
		table, strings.Join(cols, ", "), strings.Repeat(", ?", len(cols)))
	args := append([]any{seq, time.Now().UnixMilli()}, vals...)
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return tx.Commit()
}
