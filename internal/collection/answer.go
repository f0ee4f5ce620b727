package collection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/recall/internal/review"
	"github.com/abhisek/recall/internal/scheduler"
	"github.com/abhisek/recall/internal/store"
)

// SchedulingCandidates returns the card's current state token and the
// token it would move to under each rating.
func (s *Service) SchedulingCandidates(ctx context.Context, cardID int64) (review.StateSet, error) {
	c, err := s.st.Repos().Cards.Get(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return review.StateSet{}, fmt.Errorf("card %d not found", cardID)
		}
		return review.StateSet{}, err
	}
	return s.candidates(c)
}

func (s *Service) candidates(c *store.Card) (review.StateSet, error) {
	cur, err := scheduler.Decode(c.State)
	if err != nil {
		return review.StateSet{}, fmt.Errorf("card %d: %w", c.ID, err)
	}
	next := s.params.Next(cur)

	set := review.StateSet{CardID: c.ID, Current: review.StateFromToken(c.State)}
	for _, t := range []struct {
		dst *review.State
		st  scheduler.State
	}{
		{&set.Again, next.Again},
		{&set.Hard, next.Hard},
		{&set.Good, next.Good},
		{&set.Easy, next.Easy},
	} {
		tok, err := scheduler.Encode(t.st)
		if err != nil {
			return review.StateSet{}, err
		}
		*t.dst = review.StateFromToken(tok)
	}
	return set, nil
}

// RecordAnswer applies rec to its card and appends it to the review log in
// one transaction. A record built from a state the card has since left is
// rejected with an error wrapping review.ErrStaleState.
func (s *Service) RecordAnswer(ctx context.Context, rec review.Record) error {
	err := s.st.InTx(ctx, func(r store.Repos) error {
		c, err := r.Cards.Get(ctx, rec.CardID())
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("card %d not found", rec.CardID())
			}
			return err
		}
		if c.State != rec.Current().Token() {
			return fmt.Errorf("card %d: %w", c.ID, review.ErrStaleState)
		}

		// The new state must be the one the scheduler offers for the rating.
		set, err := s.candidates(c)
		if err != nil {
			return err
		}
		want, err := review.NextState(set, rec.Rating())
		if err != nil {
			return err
		}
		if !want.Equal(rec.New()) {
			return fmt.Errorf("card %d: new state does not match %s", c.ID, rec.Rating())
		}

		next, err := scheduler.Decode(rec.New().Token())
		if err != nil {
			return err
		}
		answeredAt := time.UnixMilli(rec.AnsweredAtMillis())
		var due int64
		if d := next.DueAt(answeredAt); !d.IsZero() {
			due = d.UnixMilli()
		}

		ok, err := r.Cards.Reschedule(ctx, c.ID, c.State, store.Card{
			Queue: next.Queue(),
			Due:   due,
			State: rec.New().Token(),
		})
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("card %d: %w", c.ID, review.ErrStaleState)
		}

		return r.Revlog.Append(ctx, &store.RevlogEntry{
			CardID:        c.ID,
			Rating:        int(rec.Rating()),
			PreviousState: rec.Current().Token(),
			NewState:      rec.New().Token(),
			TakenMs:       rec.TakenMillis(),
			AnsweredAt:    answeredAt,
		})
	})
	if err != nil {
		return err
	}
	s.logger.Info("card rescheduled", "card", rec.CardID(), "rating", rec.Rating().String())
	return nil
}
