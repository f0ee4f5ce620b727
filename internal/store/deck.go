package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var deckColumns = []string{"id", "name", "collapsed", "filtered"}

// deckRepo implements DeckRepo.
type deckRepo struct {
	q querier
}

func (r *deckRepo) Create(ctx context.Context, d Deck) (int64, error) {
	query, args := builder.Insert("decks").
		Columns("name", "collapsed", "filtered").
		Values(d.Name, boolToInt(d.Collapsed), boolToInt(d.Filtered)).
		Query()
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("create deck %q: %w", d.Name, err)
	}
	return res.LastInsertId()
}

func (r *deckRepo) Get(ctx context.Context, id int64) (*Deck, error) {
	return r.one(ctx, entsql.EQ("id", id))
}

func (r *deckRepo) ByName(ctx context.Context, name string) (*Deck, error) {
	return r.one(ctx, entsql.EQ("name", name))
}

func (r *deckRepo) List(ctx context.Context) ([]Deck, error) {
	query, args := builder.Select(deckColumns...).
		From(builder.Table("decks")).
		OrderBy("name").
		Query()
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	defer rows.Close()

	var decks []Deck
	for rows.Next() {
		d, err := scanDeck(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deck: %w", err)
		}
		decks = append(decks, *d)
	}
	return decks, rows.Err()
}

func (r *deckRepo) one(ctx context.Context, p *entsql.Predicate) (*Deck, error) {
	query, args := builder.Select(deckColumns...).
		From(builder.Table("decks")).
		Where(p).
		Limit(1).
		Query()
	d, err := scanDeck(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query deck: %w", err)
	}
	return d, nil
}

func scanDeck(s scanner) (*Deck, error) {
	var d Deck
	if err := s.Scan(&d.ID, &d.Name, &d.Collapsed, &d.Filtered); err != nil {
		return nil, err
	}
	return &d, nil
}
