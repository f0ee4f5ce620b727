package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/deck"
	"github.com/abhisek/recall/internal/studyerr"
)

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFormat("yaml")
	assert.Equal(t, studyerr.KindValidation, studyerr.KindOf(err))
}

func TestStatusAndExitCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		exit   int
	}{
		{"ok", nil, StatusOK, 0},
		{"validation", studyerr.Invalid("rating", "foo", "bad"), StatusValidation, 2},
		{"no card", fmt.Errorf("study: %w", studyerr.ErrNoCardAvailable), StatusNoCard, 0},
		{"collection", studyerr.Collection("render", errors.New("boom")), StatusCollection, 1},
		{"unclassified", errors.New("disk full"), StatusCollection, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, StatusOf(tt.err))
			assert.Equal(t, tt.exit, ExitCode(StatusOf(tt.err)))
		})
	}
}

func TestWrite_DecksJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatJSON)
	require.NoError(t, w.Write(&Decks{Decks: []deck.Summary{
		{ID: 10, Name: "Spanish", Depth: 1},
		{ID: 11, Name: "Verbs", Depth: 2},
	}}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, float64(0), got["status"])
	decks := got["decks"].([]any)
	require.Len(t, decks, 2)
	assert.Equal(t, float64(10), decks[0].(map[string]any)["id"])
	assert.Equal(t, float64(2), decks[1].(map[string]any)["depth"])
}

func TestWrite_CardJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatJSON)
	v := &card.View{
		ID:    7,
		Front: []card.ContentNode{card.Replacement{FieldName: "Front", CurrentText: "hablar"}},
		Back:  []card.ContentNode{},
	}
	require.NoError(t, w.Write(&Card{Card: v}))

	assert.JSONEq(t, `{"status":0,"card":{"id":7,
		"front":[{"type":"replacement","field_name":"Front","current_text":"hablar","filters":[]}],
		"back":[]}}`, buf.String())
}

func TestWrite_EmptySearchKeepsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, FormatJSON).Write(&Cards{Cards: []card.View{}}))
	assert.JSONEq(t, `{"status":0,"cards":[]}`, buf.String())
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatPrettyJSON)
	status, err := w.WriteError(studyerr.Collection("next card", errors.New("database is locked")))
	require.NoError(t, err)
	assert.Equal(t, StatusCollection, status)
	assert.JSONEq(t, `{"status":1,"error":{"kind":"collection","message":"database is locked"}}`, buf.String())
	assert.Contains(t, buf.String(), "\n  \"error\"", "pretty output is indented")
}

func TestWriteError_NoCard(t *testing.T) {
	var buf bytes.Buffer
	status, err := NewWriter(&buf, FormatJSON).WriteError(studyerr.ErrNoCardAvailable)
	require.NoError(t, err)
	assert.Equal(t, StatusNoCard, status)

	var got Error
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "no_card_available", got.Error.Kind)
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatText)

	require.NoError(t, w.Write(&Decks{Decks: []deck.Summary{
		{ID: 10, Name: "Spanish", Depth: 1, NewCount: 3},
		{ID: 11, Name: "Verbs", Depth: 2, NewCount: 1},
	}}))
	out := buf.String()
	assert.Contains(t, out, "Spanish")
	assert.Contains(t, out, "  Verbs")

	buf.Reset()
	require.NoError(t, w.Write(&Card{Card: &card.View{
		ID:    7,
		Front: []card.ContentNode{card.Text{Text: "<b>hablar</b>"}},
		Back:  []card.ContentNode{},
	}}))
	out = buf.String()
	assert.Contains(t, out, "hablar")
	assert.NotContains(t, out, "<b>")
	assert.NotContains(t, out, "Back")
}

func TestPlainText(t *testing.T) {
	nodes := []card.ContentNode{
		card.Replacement{FieldName: "Front", CurrentText: "hablar"},
		card.Text{Text: "<hr id=answer>"},
		card.Replacement{FieldName: "Back", CurrentText: "to &amp; speak"},
	}
	assert.Equal(t, "hablar to & speak", PlainText(nodes))
}
