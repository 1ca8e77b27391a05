package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/pathwise/internal/learner"
)

// recordRepo implements RecordRepo.
type recordRepo struct {
	db *sql.DB
}

func (r *recordRepo) Save(ctx context.Context, rec learner.Record) error {
	data, err := learner.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal learner record: %w", err)
	}

	now := time.Now().UTC()
	query, args := builder().Insert(tableLearnerRecords).
		Columns("id", "archetype", "data", "created_at", "updated_at").
		Values(rec.ID, rec.Archetype, string(data), now, now).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("archetype")
				u.SetExcluded("data")
				u.SetExcluded("updated_at")
			}),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save learner record %q: %w", rec.ID, err)
	}
	return nil
}

func (r *recordRepo) Get(ctx context.Context, id string) (learner.Record, error) {
	b := builder()
	query, args := b.Select("data").
		From(b.Table(tableLearnerRecords)).
		Where(entsql.EQ("id", id)).
		Query()

	var data string
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return learner.Record{}, fmt.Errorf("learner record %q: %w", id, ErrNotFound)
		}
		return learner.Record{}, fmt.Errorf("query learner record: %w", err)
	}

	rec, err := learner.Parse([]byte(data))
	if err != nil {
		return learner.Record{}, fmt.Errorf("decode stored learner record %q: %w", id, err)
	}
	return rec, nil
}

func (r *recordRepo) List(ctx context.Context) ([]RecordSummary, error) {
	b := builder()
	query, args := b.Select("id", "archetype", "updated_at").
		From(b.Table(tableLearnerRecords)).
		OrderBy(entsql.Desc("updated_at"), entsql.Asc("id")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list learner records: %w", err)
	}
	defer rows.Close()

	var out []RecordSummary
	for rows.Next() {
		var s RecordSummary
		if err := rows.Scan(&s.ID, &s.Archetype, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan learner record: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
