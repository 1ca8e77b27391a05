package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// snapshotRepo implements SnapshotRepo.
type snapshotRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.Sequence == 0 {
		cur, err := r.seq.Current(ctx)
		if err != nil {
			return err
		}
		snap.Sequence = cur
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}
	snap.Timestamp = snap.Timestamp.UTC()
	if snap.Data.Version == 0 {
		snap.Data.Version = SnapshotVersion
	}

	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	query, args := builder().Insert(tableProfileSnapshots).
		Columns("id", "sequence", "timestamp", "catalog_version", "data", "learner_id").
		Values(snap.ID, snap.Sequence, snap.Timestamp, snap.Data.CatalogVersion, string(data), snap.LearnerID).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context, learnerID string) (*Snapshot, error) {
	b := builder()
	query, args := b.Select("id", "learner_id", "sequence", "timestamp", "data").
		From(b.Table(tableProfileSnapshots)).
		Where(entsql.EQ("learner_id", learnerID)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("sequence")).
		Limit(1).
		Query()

	var (
		snap Snapshot
		data string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&snap.ID, &snap.LearnerID, &snap.Sequence, &snap.Timestamp, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, learnerID string, keep int) error {
	keep = max(keep, 0)

	// Find the timestamp of the newest snapshot that falls outside keep.
	b := builder()
	query, args := b.Select("timestamp").
		From(b.Table(tableProfileSnapshots)).
		Where(entsql.EQ("learner_id", learnerID)).
		OrderBy(entsql.Desc("timestamp")).
		Limit(1).
		Offset(keep).
		Query()

	var threshold time.Time
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil // fewer than keep snapshots exist
		}
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	query, args = builder().Delete(tableProfileSnapshots).
		Where(entsql.And(
			entsql.EQ("learner_id", learnerID),
			entsql.LTE("timestamp", threshold),
		)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
