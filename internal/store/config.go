package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// configRepo implements ConfigRepo over the key/value config table.
type configRepo struct {
	q querier
}

func (r *configRepo) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := builder.Select("value").
		From(builder.Table("config")).
		Where(entsql.EQ("key", key)).
		Query()
	var v string
	err := r.q.QueryRowContext(ctx, query, args...).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return v, true, nil
}

func (r *configRepo) Set(ctx context.Context, key, value string) error {
	query, args := builder.Insert("config").
		Columns("key", "value").
		Values(key, value).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func (r *configRepo) Delete(ctx context.Context, key string) error {
	query, args := builder.Delete("config").Where(entsql.EQ("key", key)).Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete config %q: %w", key, err)
	}
	return nil
}
