package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/recall/internal/output"
	"github.com/abhisek/recall/internal/review"
	"github.com/abhisek/recall/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	switch s.phase {
	case phaseError:
		return renderError(width, s.errMsg)
	case phaseQuestion, phaseAnswer:
		return s.renderCard(width)
	default:
		return renderLoading(width)
	}
}

// renderCard shows the front, or the back once revealed. A card whose back
// is empty keeps showing its front.
func (s *SessionScreen) renderCard(width int) string {
	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Card %d", s.view.ID))

	mins := int(s.elapsed.Minutes())
	secs := int(s.elapsed.Seconds()) % 60
	infoRight := theme.Subtitle.Render(fmt.Sprintf("Reviewed %d  T %d:%02d", s.tally.Reviewed(), mins, secs))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	label, nodes := "Front", s.view.Front
	if s.phase == phaseAnswer && len(s.view.Back) > 0 {
		label, nodes = "Back", s.view.Back
	}
	box := theme.Card.Width(min(width-4, 72)).Render(
		theme.Subtitle.Render(label) + "\n\n" + theme.Body.Bold(true).Render(output.PlainText(nodes)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, box))
	b.WriteString("\n\n")

	if s.phase == phaseAnswer {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderRatings()))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("Press space to show the answer")))
	}
	return b.String()
}

func renderRatings() string {
	parts := make([]string, 0, len(review.RatingValues))
	for i, name := range review.RatingValues {
		parts = append(parts, theme.RatingStyle(i+1).Render(fmt.Sprintf("[%d] %s", i+1, name)))
	}
	return strings.Join(parts, "   ")
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Loading next card...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press enter to retry or esc to go back.", errMsg))
}

