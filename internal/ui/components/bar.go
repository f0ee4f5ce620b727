package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/recall/internal/ui/theme"
)

// CountBar displays a labelled count as a share of a total.
type CountBar struct {
	Label string
	Count int
	Total int
	Width int
	Fill  color.Color
}

// Fraction returns Count/Total clamped to [0, 1]. A zero total is empty.
func (b CountBar) Fraction() float64 {
	if b.Total <= 0 {
		return 0
	}
	return min(max(float64(b.Count)/float64(b.Total), 0), 1)
}

// View renders the bar followed by the raw count.
func (b CountBar) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Width(8).Render(b.Label)
	count := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %d", b.Count))

	barWidth := max(b.Width-lipgloss.Width(label)-lipgloss.Width(count), 4)
	filled := int(float64(barWidth) * b.Fraction())

	fill := b.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	filledStr := lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	emptyStr := lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	return label + filledStr + emptyStr + count
}
