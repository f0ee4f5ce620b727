// Package card turns rendered template output into a side-partitioned card
// view.
package card

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/recall/internal/studyerr"
)

// ContentNode is one piece of rendered card content: either Text or a
// Replacement.
type ContentNode interface {
	contentNode()
}

// Text is literal content displayed verbatim.
type Text struct {
	Text string
}

// Replacement is a field reference resolved by the template renderer.
// Filters are listed in the order they were applied to produce CurrentText.
type Replacement struct {
	FieldName   string
	CurrentText string
	Filters     []string
}

func (Text) contentNode()        {}
func (Replacement) contentNode() {}

func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{"text", t.Text})
}

func (r Replacement) MarshalJSON() ([]byte, error) {
	filters := r.Filters
	if filters == nil {
		filters = []string{}
	}
	return json.Marshal(struct {
		Type        string   `json:"type"`
		FieldName   string   `json:"field_name"`
		CurrentText string   `json:"current_text"`
		Filters     []string `json:"filters"`
	}{"replacement", r.FieldName, r.CurrentText, filters})
}

// View is one rendered card. Front and Back are always present; one of them
// is empty when a single side was selected.
type View struct {
	ID    int64         `json:"id"`
	Front []ContentNode `json:"front"`
	Back  []ContentNode `json:"back"`
}

// Rendered is the renderer's output for one card: question nodes and answer
// nodes, in template order.
type Rendered struct {
	Question []ContentNode
	Answer   []ContentNode
}

// Renderer renders an existing card from its note and template.
type Renderer interface {
	RenderCard(ctx context.Context, cardID int64) (Rendered, error)
}

// QueueEntry identifies the next card due for study.
type QueueEntry struct {
	CardID int64
}

// Queue reports the next due card at an instant, or nil when nothing is due.
type Queue interface {
	NextDueEntry(ctx context.Context, asOf time.Time) (*QueueEntry, error)
}

// Render renders cardID and partitions the output into a View: question
// nodes become the front, answer nodes the back.
func Render(ctx context.Context, cardID int64, r Renderer) (*View, error) {
	out, err := r.RenderCard(ctx, cardID)
	if err != nil {
		return nil, studyerr.Collection(fmt.Sprintf("render card %d", cardID), err)
	}
	return &View{
		ID:    cardID,
		Front: nonNil(out.Question),
		Back:  nonNil(out.Answer),
	}, nil
}

// RenderNext asks q for the next due card and renders it. An empty queue is
// reported as studyerr.ErrNoCardAvailable, never as an empty view.
func RenderNext(ctx context.Context, q Queue, r Renderer, asOf time.Time) (*View, error) {
	entry, err := q.NextDueEntry(ctx, asOf)
	if err != nil {
		return nil, studyerr.Collection("next due entry", err)
	}
	if entry == nil {
		return nil, studyerr.ErrNoCardAvailable
	}
	return Render(ctx, entry.CardID, r)
}

func nonNil(nodes []ContentNode) []ContentNode {
	if nodes == nil {
		return []ContentNode{}
	}
	return nodes
}
