package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/recall/internal/review"
	"github.com/abhisek/recall/internal/router"
	"github.com/abhisek/recall/internal/screen"
	"github.com/abhisek/recall/internal/ui/components"
	"github.com/abhisek/recall/internal/ui/layout"
	"github.com/abhisek/recall/internal/ui/theme"
)

// Summary tallies one review session.
type Summary struct {
	Duration time.Duration
	// Ratings counts answers per rating, indexed by Rating-1.
	Ratings [4]int
	// Exhausted is set when the session ended because no card was due.
	Exhausted bool
}

// Reviewed is the number of answers recorded.
func (s Summary) Reviewed() int {
	n := 0
	for _, c := range s.Ratings {
		n += c
	}
	return n
}

// Record counts one answer.
func (s *Summary) Record(r review.Rating) {
	if r.IsValid() {
		s.Ratings[r-1]++
	}
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Decks"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	headline := "Session complete!"
	if sum.Exhausted {
		headline = "Congratulations! No more cards are due."
	}
	b.WriteString(center(theme.Title, headline))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(theme.Subtitle, fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	reviewed := sum.Reviewed()
	b.WriteString(center(theme.Body, fmt.Sprintf("Cards reviewed: %d", reviewed)))
	b.WriteString("\n\n")
	if reviewed == 0 {
		return b.String()
	}

	barWidth := min(width-8, 50)
	for i, name := range review.RatingValues {
		bar := components.CountBar{
			Label: name,
			Count: sum.Ratings[i],
			Total: reviewed,
			Width: barWidth,
			Fill:  theme.RatingStyle(i + 1).GetForeground(),
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	return b.String()
}
