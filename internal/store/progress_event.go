package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/pathwise/internal/profile"
)

// progressRepo implements ProgressRepo backed by the global sequence counter.
type progressRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *progressRepo) Append(ctx context.Context, ev ProgressEvent) (ProgressEvent, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return ProgressEvent{}, fmt.Errorf("next sequence: %w", err)
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	ev.Timestamp = ev.Timestamp.UTC()
	ev.Sequence = seqNum

	query, args := builder().Insert(tableProgressEvents).
		Columns("sequence", "timestamp", "skill_id", "level", "confidence", "learner_id").
		Values(ev.Sequence, ev.Timestamp, ev.SkillID, string(ev.Level), ev.Confidence, ev.LearnerID).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return ProgressEvent{}, fmt.Errorf("save progress event: %w", err)
	}
	if ev.ID, err = res.LastInsertId(); err != nil {
		return ProgressEvent{}, fmt.Errorf("progress event id: %w", err)
	}
	return ev, nil
}

func (r *progressRepo) ForLearner(ctx context.Context, learnerID string) ([]ProgressEvent, error) {
	b := builder()
	query, args := b.Select("id", "sequence", "timestamp", "learner_id", "skill_id", "level", "confidence").
		From(b.Table(tableProgressEvents)).
		Where(entsql.EQ("learner_id", learnerID)).
		OrderBy(entsql.Asc("timestamp"), entsql.Asc("sequence")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress events: %w", err)
	}
	defer rows.Close()

	var out []ProgressEvent
	for rows.Next() {
		var (
			ev    ProgressEvent
			level string
		)
		if err := rows.Scan(&ev.ID, &ev.Sequence, &ev.Timestamp, &ev.LearnerID, &ev.SkillID, &level, &ev.Confidence); err != nil {
			return nil, fmt.Errorf("scan progress event: %w", err)
		}
		ev.Level = profile.Level(level)
		out = append(out, ev)
	}
	return out, rows.Err()
}
