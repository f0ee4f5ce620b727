package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/store"
	"github.com/abhisek/recall/internal/template"
)

// RenderCard renders a card's question and answer from its note and the
// note type template the card was generated from.
func (s *Service) RenderCard(ctx context.Context, cardID int64) (card.Rendered, error) {
	repos := s.st.Repos()
	c, err := repos.Cards.Get(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return card.Rendered{}, fmt.Errorf("card %d not found", cardID)
		}
		return card.Rendered{}, err
	}
	note, err := repos.Notes.Get(ctx, c.NoteID)
	if err != nil {
		return card.Rendered{}, fmt.Errorf("note %d: %w", c.NoteID, err)
	}
	nt, err := repos.NoteTypes.Get(ctx, note.NoteTypeID)
	if err != nil {
		return card.Rendered{}, fmt.Errorf("note type %d: %w", note.NoteTypeID, err)
	}
	if c.Ord < 0 || c.Ord >= len(nt.Templates) {
		return card.Rendered{}, fmt.Errorf("card %d uses template %d, note type %q has %d", cardID, c.Ord, nt.Name, len(nt.Templates))
	}
	tmpl := nt.Templates[c.Ord]

	fields := make(map[string]string, len(nt.Fields))
	for _, name := range nt.Fields {
		fields[name] = note.Fields[name]
	}

	out, err := template.Render(tmpl.Front, tmpl.Back, fields)
	if err != nil {
		return card.Rendered{}, fmt.Errorf("template %q: %w", tmpl.Name, err)
	}
	return card.Rendered{
		Question: contentNodes(out.Question),
		Answer:   contentNodes(out.Answer),
	}, nil
}

func contentNodes(nodes []template.Node) []card.ContentNode {
	out := make([]card.ContentNode, len(nodes))
	for i, n := range nodes {
		if n.IsReplacement() {
			out[i] = card.Replacement{FieldName: n.Field, CurrentText: n.Text, Filters: n.Filters}
		} else {
			out[i] = card.Text{Text: n.Text}
		}
	}
	return out
}
