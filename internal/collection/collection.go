// Package collection is the SQLite-backed collection service behind the
// study controller: deck tree, due queue, card rendering, scheduling and
// answer recording.
package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/scheduler"
	"github.com/abhisek/recall/internal/store"
	"github.com/abhisek/recall/internal/study"
)

const activeDeckKey = "active_deck"

// deckSeparator splits hierarchical deck names.
const deckSeparator = "::"

var (
	_ study.Collection = (*Service)(nil)
	_ study.Searcher   = (*Service)(nil)
)

// Service implements study.Collection over a store.
type Service struct {
	st     *store.Store
	params *scheduler.Params
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithParams overrides the scheduling constants.
func WithParams(p *scheduler.Params) Option {
	return func(s *Service) { s.params = p }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New returns a Service over st.
func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		st:     st,
		params: scheduler.DefaultParams(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetActiveDeck makes deckID and its descendants the study scope.
func (s *Service) SetActiveDeck(ctx context.Context, deckID int64) error {
	repos := s.st.Repos()
	if _, err := repos.Decks.Get(ctx, deckID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("deck %d not found", deckID)
		}
		return err
	}
	return repos.Config.Set(ctx, activeDeckKey, strconv.FormatInt(deckID, 10))
}

// ActiveDeck returns the active deck id, or 0 when every deck is in scope.
func (s *Service) ActiveDeck(ctx context.Context) (int64, error) {
	v, ok, err := s.st.Repos().Config.Get(ctx, activeDeckKey)
	if err != nil || !ok {
		return 0, err
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("active deck %q: %w", v, err)
	}
	return id, nil
}

// NextDueEntry returns the next card to study in the active deck: due
// learning cards first, then due reviews, then new cards in position order.
func (s *Service) NextDueEntry(ctx context.Context, asOf time.Time) (*card.QueueEntry, error) {
	repos := s.st.Repos()
	ids, err := s.scope(ctx, repos)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	for _, q := range []int{scheduler.QueueLearn, scheduler.QueueReview} {
		c, err := repos.Cards.NextDue(ctx, ids, q, asOf)
		if err != nil {
			return nil, err
		}
		if c != nil {
			return &card.QueueEntry{CardID: c.ID}, nil
		}
	}

	c, err := repos.Cards.NextNew(ctx, ids)
	if err != nil || c == nil {
		return nil, err
	}
	return &card.QueueEntry{CardID: c.ID}, nil
}

// SearchCards returns the ids of cards whose note fields contain text.
func (s *Service) SearchCards(ctx context.Context, text string) ([]int64, error) {
	repos := s.st.Repos()
	noteIDs, err := repos.Notes.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(noteIDs) == 0 {
		return []int64{}, nil
	}
	cards, err := repos.Cards.ByNotes(ctx, noteIDs)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids, nil
}

// scope returns the ids of the active deck and its descendants. A missing
// active deck puts every deck in scope; a stale one is also cleared.
func (s *Service) scope(ctx context.Context, repos store.Repos) ([]int64, error) {
	decks, err := repos.Decks.List(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.ActiveDeck(ctx)
	if err != nil {
		return nil, err
	}

	var prefix string
	if active != 0 {
		for _, d := range decks {
			if d.ID == active {
				prefix = d.Name
				break
			}
		}
		if prefix == "" {
			if err := repos.Config.Delete(ctx, activeDeckKey); err != nil {
				return nil, err
			}
			s.logger.Warn("active deck no longer exists, cleared", "deck", active)
		}
	}

	var ids []int64
	for _, d := range decks {
		if prefix == "" || d.Name == prefix || strings.HasPrefix(d.Name, prefix+deckSeparator) {
			ids = append(ids, d.ID)
		}
	}
	return ids, nil
}
