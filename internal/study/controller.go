// Package study orchestrates one study session against a collection: deck
// listing, pulling and rendering the next due card, and recording answers.
package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/deck"
	"github.com/abhisek/recall/internal/review"
	"github.com/abhisek/recall/internal/studyerr"
)

// Collection is the narrow view of the collection service the controller
// depends on. Every method is a blocking call.
type Collection interface {
	DeckTree(ctx context.Context, asOf time.Time) (*deck.Node, error)
	SetActiveDeck(ctx context.Context, deckID int64) error
	NextDueEntry(ctx context.Context, asOf time.Time) (*card.QueueEntry, error)
	RenderCard(ctx context.Context, cardID int64) (card.Rendered, error)
	SchedulingCandidates(ctx context.Context, cardID int64) (review.StateSet, error)
	RecordAnswer(ctx context.Context, rec review.Record) error
}

// Searcher is implemented by collections that can look cards up by text.
type Searcher interface {
	SearchCards(ctx context.Context, text string) ([]int64, error)
}

// Controller runs study operations against a single collection. It is not
// safe for concurrent use; one controller serves one session.
type Controller struct {
	col    Collection
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the logger used for external call tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New creates a Controller over col.
func New(col Collection, opts ...Option) *Controller {
	c := &Controller{
		col:    col,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ListDecks returns the flattened deck catalog, filtered by req.
func (c *Controller) ListDecks(ctx context.Context, req ListDecksRequest) ([]deck.Summary, error) {
	if err := check(req); err != nil {
		return nil, err
	}

	var root *deck.Node
	err := c.call("deck tree", func() (err error) {
		root, err = c.col.DeckTree(ctx, c.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return deck.FlattenAndFilter(root, deck.NewFilter(req.IDs, req.Names)), nil
}

// Study selects the requested deck, pulls the next due card and renders it
// with the requested side. An empty queue yields studyerr.ErrNoCardAvailable.
func (c *Controller) Study(ctx context.Context, req StudyRequest) (*card.View, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	side, err := card.ParseSide(req.Side)
	if err != nil {
		return nil, err
	}

	if req.DeckID != nil {
		id := *req.DeckID
		err := c.call("set active deck", func() error {
			return c.col.SetActiveDeck(ctx, id)
		})
		if err != nil {
			return nil, err
		}
	}

	var view *card.View
	err = c.call("next card", func() (err error) {
		view, err = card.RenderNext(ctx, c.col, c.col, c.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	selected := card.SelectSide(*view, side)
	return &selected, nil
}

// CurrentState returns the scheduling state cardID is in right now. Callers
// that show a card and answer it later pass this back as
// AnswerRequest.ExpectedState.
func (c *Controller) CurrentState(ctx context.Context, cardID int64) (review.State, error) {
	set, err := c.candidates(ctx, cardID)
	if err != nil {
		return review.State{}, err
	}
	return set.Current, nil
}

// Answer records a rating for a card: it fetches the scheduler's candidate
// states, selects the one for the rating and submits the resulting record.
func (c *Controller) Answer(ctx context.Context, req AnswerRequest) (review.Record, error) {
	if err := check(req); err != nil {
		return review.Record{}, err
	}
	rating, err := review.ParseRating(req.Rating)
	if err != nil {
		return review.Record{}, err
	}

	set, err := c.candidates(ctx, req.CardID)
	if err != nil {
		return review.Record{}, err
	}

	current := set.Current
	if req.ExpectedState != "" {
		current = review.StateFromToken(req.ExpectedState)
	}

	rec, err := review.NewRecord(set, current, rating, req.TimeTakenMs, c.now())
	if err != nil {
		return review.Record{}, err
	}

	err = c.call("record answer", func() error {
		return c.col.RecordAnswer(ctx, rec)
	})
	if errors.Is(err, review.ErrStaleState) {
		return review.Record{}, &studyerr.ValidationError{
			Field:  "state",
			Reason: fmt.Sprintf("card %d was answered or rescheduled since it was shown", req.CardID),
			Err:    err,
		}
	}
	if err != nil {
		return review.Record{}, err
	}
	c.logger.Info("answer recorded", "card", rec.CardID(), "rating", rec.Rating().String(), "taken_ms", rec.TakenMillis())
	return rec, nil
}

// Search renders every card matching req.Text, applying the side selection
// to each. It requires a collection that implements Searcher.
func (c *Controller) Search(ctx context.Context, req SearchRequest) ([]card.View, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	side, err := card.ParseSide(req.Side)
	if err != nil {
		return nil, err
	}
	s, ok := c.col.(Searcher)
	if !ok {
		return nil, studyerr.Collection("search", fmt.Errorf("collection does not support search"))
	}

	var ids []int64
	err = c.call("search", func() (err error) {
		ids, err = s.SearchCards(ctx, req.Text)
		return err
	})
	if err != nil {
		return nil, err
	}

	views := make([]card.View, 0, len(ids))
	for _, id := range ids {
		var v *card.View
		err := c.call("render card", func() (err error) {
			v, err = card.Render(ctx, id, c.col)
			return err
		})
		if err != nil {
			return nil, err
		}
		views = append(views, card.SelectSide(*v, side))
	}
	return views, nil
}

func (c *Controller) candidates(ctx context.Context, cardID int64) (review.StateSet, error) {
	var set review.StateSet
	err := c.call("scheduling candidates", func() (err error) {
		set, err = c.col.SchedulingCandidates(ctx, cardID)
		return err
	})
	if err != nil {
		return review.StateSet{}, err
	}
	if set.CardID != cardID {
		return review.StateSet{}, studyerr.Collection("scheduling candidates",
			fmt.Errorf("asked for card %d, got states for card %d", cardID, set.CardID))
	}
	return set, nil
}

// call runs one external collection operation. Failures are reported as
// CollectionError unless they already carry a study error kind, and a panic
// inside the collection is recovered into a CollectionError.
func (c *Controller) call(op string, fn func() error) (err error) {
	start := c.now()
	defer func() {
		if r := recover(); r != nil {
			err = &studyerr.CollectionError{Op: op, Message: fmt.Sprintf("collection panic: %v", r)}
		}
		c.logger.Debug("collection call", "op", op, "elapsed", c.now().Sub(start), "err", err)
	}()

	if err := fn(); err != nil {
		return studyerr.Collection(op, err)
	}
	return nil
}
