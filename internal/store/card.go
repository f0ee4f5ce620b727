package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var cardColumns = []string{"id", "note_id", "deck_id", "ord", "position", "queue", "due", "state"}

// cardRepo implements CardRepo.
type cardRepo struct {
	q querier
}

func (r *cardRepo) Create(ctx context.Context, c Card) (int64, error) {
	query, args := builder.Insert("cards").
		Columns("note_id", "deck_id", "ord", "position", "queue", "due", "state").
		Values(c.NoteID, c.DeckID, c.Ord, c.Position, c.Queue, c.Due, c.State).
		Query()
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("create card: %w", err)
	}
	return res.LastInsertId()
}

func (r *cardRepo) Get(ctx context.Context, id int64) (*Card, error) {
	c, err := r.first(ctx, builder.Select(cardColumns...).
		From(builder.Table("cards")).
		Where(entsql.EQ("id", id)))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *cardRepo) NextPosition(ctx context.Context) (int64, error) {
	query, args := builder.Select(entsql.Max("position")).
		From(builder.Table("cards")).
		Query()
	var pos sql.NullInt64
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&pos); err != nil {
		return 0, fmt.Errorf("query max position: %w", err)
	}
	return pos.Int64 + 1, nil
}

func (r *cardRepo) NextDue(ctx context.Context, deckIDs []int64, queue int, asOf time.Time) (*Card, error) {
	return r.first(ctx, builder.Select(cardColumns...).
		From(builder.Table("cards")).
		Where(entsql.And(
			entsql.In("deck_id", int64Args(deckIDs)...),
			entsql.EQ("queue", queue),
			entsql.LTE("due", asOf.UnixMilli()),
		)).
		OrderBy("due", "id").
		Limit(1))
}

func (r *cardRepo) NextNew(ctx context.Context, deckIDs []int64) (*Card, error) {
	return r.first(ctx, builder.Select(cardColumns...).
		From(builder.Table("cards")).
		Where(entsql.And(
			entsql.In("deck_id", int64Args(deckIDs)...),
			entsql.EQ("queue", 0),
		)).
		OrderBy("position", "id").
		Limit(1))
}

func (r *cardRepo) ByNotes(ctx context.Context, noteIDs []int64) ([]Card, error) {
	query, args := builder.Select(cardColumns...).
		From(builder.Table("cards")).
		Where(entsql.In("note_id", int64Args(noteIDs)...)).
		OrderBy("note_id", "ord").
		Query()
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards by note: %w", err)
	}
	defer rows.Close()

	cards := []Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, *c)
	}
	return cards, rows.Err()
}

func (r *cardRepo) Counts(ctx context.Context, asOf time.Time) (map[int64]DeckCounts, error) {
	query, args := builder.Select("deck_id", "queue", entsql.Count("*")).
		From(builder.Table("cards")).
		Where(entsql.Or(
			entsql.EQ("queue", 0),
			entsql.LTE("due", asOf.UnixMilli()),
		)).
		GroupBy("deck_id", "queue").
		Query()
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count cards: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]DeckCounts)
	for rows.Next() {
		var deckID int64
		var queue, n int
		if err := rows.Scan(&deckID, &queue, &n); err != nil {
			return nil, fmt.Errorf("scan card count: %w", err)
		}
		dc := counts[deckID]
		switch queue {
		case 0:
			dc.New += n
		case 1:
			dc.Learn += n
		case 2:
			dc.Review += n
		}
		counts[deckID] = dc
	}
	return counts, rows.Err()
}

func (r *cardRepo) Reschedule(ctx context.Context, id int64, prevState string, c Card) (bool, error) {
	query, args := builder.Update("cards").
		Set("queue", c.Queue).
		Set("due", c.Due).
		Set("state", c.State).
		Where(entsql.And(entsql.EQ("id", id), entsql.EQ("state", prevState))).
		Query()
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("reschedule card %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reschedule card %d: %w", id, err)
	}
	return n == 1, nil
}

// first returns the first card matched by sel, or nil when none match.
func (r *cardRepo) first(ctx context.Context, sel *entsql.Selector) (*Card, error) {
	query, args := sel.Query()
	c, err := scanCard(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query card: %w", err)
	}
	return c, nil
}

func scanCard(s scanner) (*Card, error) {
	var c Card
	err := s.Scan(&c.ID, &c.NoteID, &c.DeckID, &c.Ord, &c.Position, &c.Queue, &c.Due, &c.State)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
