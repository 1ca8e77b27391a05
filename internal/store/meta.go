package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// metaRepo implements MetaRepo.
type metaRepo struct {
	db *sql.DB
}

func (r *metaRepo) Get(ctx context.Context, key string) (string, error) {
	b := builder()
	query, args := b.Select("value").
		From(b.Table(tableMeta)).
		Where(entsql.EQ("key", key)).
		Query()

	var value string
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("meta %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("query meta %q: %w", key, err)
	}
	return value, nil
}

func (r *metaRepo) Set(ctx context.Context, key, value string) error {
	query, args := builder().Insert(tableMeta).
		Columns("key", "value").
		Values(key, value).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set meta %q: %w", key, err)
	}
	return nil
}
