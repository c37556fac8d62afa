package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insertEvent(ctx, "session_events",
		[]string{"session_id", "candidate_id", "action", "stage", "domain",
			"questions_answered", "average_score", "duration_secs"},
		data.SessionID, data.CandidateID, data.Action, data.Stage, data.Domain,
		data.QuestionsAnswered, data.AverageScore, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	where, args := whereClause(opts)
	limit, args := limitClause(opts, args)

	rows, err := r.db.QueryContext(ctx, `SELECT id, sequence, ts, session_id, candidate_id,
		action, stage, domain, questions_answered, average_score, duration_secs
		FROM session_events`+where+" ORDER BY sequence DESC"+limit, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var events []SessionEvent
	for rows.Next() {
		var e SessionEvent
		var ts int64
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.SessionID, &e.CandidateID,
			&e.Action, &e.Stage, &e.Domain, &e.QuestionsAnswered, &e.AverageScore,
			&e.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts).UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insertEvent(ctx, "answer_events",
		[]string{"session_id", "candidate_id", "round", "question_index", "question",
			"transcript", "language", "score", "outcome", "record_ms"},
		data.SessionID, data.CandidateID, data.Round, data.QuestionIndex, data.Question,
		data.Transcript, data.Language, data.Score, data.Outcome, data.RecordMs,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, sessionID string) ([]AnswerEvent, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, sequence, ts, session_id, candidate_id,
		round, question_index, question, transcript, language, score, outcome, record_ms
		FROM answer_events WHERE session_id = ? ORDER BY sequence`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var events []AnswerEvent
	for rows.Next() {
		var e AnswerEvent
		var ts int64
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.SessionID, &e.CandidateID,
			&e.Round, &e.QuestionIndex, &e.Question, &e.Transcript, &e.Language,
			&e.Score, &e.Outcome, &e.RecordMs); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts).UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}
