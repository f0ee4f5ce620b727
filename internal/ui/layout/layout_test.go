package layout

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
)

func TestHintsFor(t *testing.T) {
	reveal := key.NewBinding(key.WithKeys("space"), key.WithHelp("Space", "Show answer"))
	hidden := key.NewBinding(key.WithKeys("x"), key.WithHelp("X", "Hidden"), key.WithDisabled())

	hints := HintsFor(reveal, hidden)
	if len(hints) != 1 {
		t.Fatalf("expected 1 hint, got %d", len(hints))
	}
	if hints[0] != (KeyHint{Key: "Space", Description: "Show answer"}) {
		t.Errorf("unexpected hint %+v", hints[0])
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Decks", "User 1", 80)
	for _, want := range []string{"Recall", "Decks", "User 1"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("expected narrow terminal to be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("expected minimum size to fit")
	}
}
