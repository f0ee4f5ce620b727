package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// revlogRepo implements RevlogRepo.
type revlogRepo struct {
	q   querier
	seq *sequenceCounter
}

// Append assigns e an id and sequence number and stores it.
func (r *revlogRepo) Append(ctx context.Context, e *RevlogEntry) error {
	seq, err := r.seq.Next(ctx, r.q)
	if err != nil {
		return err
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.Sequence = seq

	query, args := builder.Insert("revlog").
		Columns("id", "sequence", "card_id", "rating", "previous_state", "new_state", "taken_ms", "answered_at").
		Values(e.ID.String(), e.Sequence, e.CardID, e.Rating, e.PreviousState, e.NewState, e.TakenMs, e.AnsweredAt.UnixMilli()).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append revlog for card %d: %w", e.CardID, err)
	}
	return nil
}

func (r *revlogRepo) ByCard(ctx context.Context, cardID int64) ([]RevlogEntry, error) {
	query, args := builder.Select("id", "sequence", "card_id", "rating", "previous_state", "new_state", "taken_ms", "answered_at").
		From(builder.Table("revlog")).
		Where(entsql.EQ("card_id", cardID)).
		OrderBy("sequence").
		Query()
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query revlog: %w", err)
	}
	defer rows.Close()

	var entries []RevlogEntry
	for rows.Next() {
		var (
			e          RevlogEntry
			id         string
			answeredAt int64
		)
		if err := rows.Scan(&id, &e.Sequence, &e.CardID, &e.Rating, &e.PreviousState, &e.NewState, &e.TakenMs, &answeredAt); err != nil {
			return nil, fmt.Errorf("scan revlog: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("revlog id %q: %w", id, err)
		}
		e.AnsweredAt = time.UnixMilli(answeredAt).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
