package collection

import (
	"context"
	"strings"
	"time"

	"github.com/abhisek/recall/internal/deck"
	"github.com/abhisek/recall/internal/store"
)

// DeckTree builds the deck hierarchy from stored deck names. Each node's
// counts include its descendants' cards.
func (s *Service) DeckTree(ctx context.Context, asOf time.Time) (*deck.Node, error) {
	repos := s.st.Repos()
	decks, err := repos.Decks.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := repos.Cards.Counts(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return buildTree(decks, counts), nil
}

// buildTree expects decks ordered by name, so every parent precedes its
// children. Decks whose parent is missing hang off the root.
func buildTree(decks []store.Deck, counts map[int64]store.DeckCounts) *deck.Node {
	root := &deck.Node{ID: deck.RootID}
	byName := make(map[string]*deck.Node, len(decks))
	parents := make([]*deck.Node, len(decks))
	nodes := make([]*deck.Node, len(decks))

	for i, d := range decks {
		parent := root
		name := d.Name
		if j := strings.LastIndex(d.Name, deckSeparator); j >= 0 {
			name = d.Name[j+len(deckSeparator):]
			if p, ok := byName[d.Name[:j]]; ok {
				parent = p
			}
		}
		c := counts[d.ID]
		n := &deck.Node{
			ID:          d.ID,
			Name:        name,
			Depth:       parent.Depth + 1,
			Collapsed:   d.Collapsed,
			Filtered:    d.Filtered,
			NewCount:    c.New,
			LearnCount:  c.Learn,
			ReviewCount: c.Review,
		}
		parent.Children = append(parent.Children, n)
		byName[d.Name] = n
		parents[i] = parent
		nodes[i] = n
	}

	// Children come after their parent, so walking backwards folds every
	// subtree total into its parent before the parent is itself folded.
	for i := len(nodes) - 1; i >= 0; i-- {
		p := parents[i]
		if p == root {
			continue
		}
		p.NewCount += nodes[i].NewCount
		p.LearnCount += nodes[i].LearnCount
		p.ReviewCount += nodes[i].ReviewCount
	}
	return root
}
