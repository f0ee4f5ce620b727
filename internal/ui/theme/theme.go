package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, muted so long review sessions stay easy on the eyes.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Deck count colors, matching the new/learn/review columns.
var (
	NewCount    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
	LearnCount  = lipgloss.NewStyle().Foreground(Error)
	ReviewCount = lipgloss.NewStyle().Foreground(Success)
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Field = lipgloss.NewStyle().
		Foreground(Accent)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Collapsed = lipgloss.NewStyle().
			Foreground(TextDim)
)

// RatingStyle returns the style for a rating button, indexed 1 (again)
// through 4 (easy).
func RatingStyle(rating int) lipgloss.Style {
	colors := []string{"#F43F5E", "#F59E0B", "#22C55E", "#14B8A6"}
	if rating < 1 || rating > len(colors) {
		return Body
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors[rating-1])).
		Bold(true)
}
