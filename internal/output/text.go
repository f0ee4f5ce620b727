package output

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/deck"
	"github.com/abhisek/recall/internal/template"
	"github.com/abhisek/recall/internal/ui/theme"
)

func renderText(v any) string {
	switch v := v.(type) {
	case *Decks:
		return RenderDecks(v.Decks, -1)
	case *Card:
		s := RenderCard(*v.Card)
		if v.State != "" {
			s += "\n" + theme.Hint.Render("state "+v.State)
		}
		return s
	case *Cards:
		if len(v.Cards) == 0 {
			return theme.Hint.Render("no matching cards")
		}
		parts := make([]string, len(v.Cards))
		for i, c := range v.Cards {
			parts[i] = RenderCard(c)
		}
		return strings.Join(parts, "\n")
	case *Answer:
		return theme.RatingStyle(ratingIndex(v.Rating)).Render(v.Rating) +
			theme.Body.Render(fmt.Sprintf(" recorded for card %d", v.CardID))
	case *Imported:
		r := v.Imported
		return theme.Body.Render(fmt.Sprintf("imported %d decks, %d note types, %d notes, %d cards",
			r.Decks, r.NoteTypes, r.Notes, r.Cards))
	case *Error:
		return theme.ErrorText.Render(v.Error.Kind+": ") + theme.Body.Render(v.Error.Message)
	default:
		return fmt.Sprint(v)
	}
}

// RenderDecks renders the deck list as an indented table with due counts.
// The row at index selected is highlighted; pass -1 for none.
func RenderDecks(decks []deck.Summary, selected int) string {
	if len(decks) == 0 {
		return theme.Hint.Render("no decks")
	}

	nameWidth := len("Deck")
	for _, d := range decks {
		nameWidth = max(nameWidth, lipgloss.Width(deckLabel(d)))
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%-*s %6s %6s %6s", nameWidth, "Deck", "New", "Learn", "Due")))
	for i, d := range decks {
		label := fmt.Sprintf("%-*s", nameWidth, deckLabel(d))
		style := theme.Unselected
		switch {
		case i == selected:
			style = theme.Selected
		case d.Collapsed:
			style = theme.Collapsed
		}
		b.WriteString("\n")
		b.WriteString(style.Render(label))
		b.WriteString(" " + theme.NewCount.Render(fmt.Sprintf("%6d", d.NewCount)))
		b.WriteString(" " + theme.LearnCount.Render(fmt.Sprintf("%6d", d.LearnCount)))
		b.WriteString(" " + theme.ReviewCount.Render(fmt.Sprintf("%6d", d.ReviewCount)))
	}
	return b.String()
}

func deckLabel(d deck.Summary) string {
	return strings.Repeat("  ", max(d.Depth-1, 0)) + d.Name
}

// RenderCard renders the non-empty sides of a card in bordered boxes.
func RenderCard(v card.View) string {
	var sides []string
	if len(v.Front) > 0 {
		sides = append(sides, RenderSide("Front", v.Front))
	}
	if len(v.Back) > 0 {
		sides = append(sides, RenderSide("Back", v.Back))
	}
	header := theme.Title.Render(fmt.Sprintf("Card %d", v.ID))
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{header}, sides...)...)
}

// RenderSide renders one side of a card with its label.
func RenderSide(label string, nodes []card.ContentNode) string {
	return theme.Card.Render(theme.Subtitle.Render(label) + "\n" + theme.Body.Render(PlainText(nodes)))
}

// PlainText flattens content nodes to terminal text, dropping markup.
func PlainText(nodes []card.ContentNode) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n := n.(type) {
		case card.Text:
			b.WriteString(n.Text)
		case card.Replacement:
			b.WriteString(n.CurrentText)
		}
	}
	return strings.TrimSpace(template.StripHTML(b.String()))
}

func ratingIndex(name string) int {
	for i, n := range []string{"again", "hard", "good", "easy"} {
		if n == name {
			return i + 1
		}
	}
	return 0
}
