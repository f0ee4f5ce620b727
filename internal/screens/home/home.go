// Package home is the deck browser: the deck catalog with due counts, from
// which a review session is started.
package home

import (
	"context"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/recall/internal/deck"
	"github.com/abhisek/recall/internal/output"
	"github.com/abhisek/recall/internal/router"
	"github.com/abhisek/recall/internal/screen"
	"github.com/abhisek/recall/internal/screens/session"
	"github.com/abhisek/recall/internal/study"
	"github.com/abhisek/recall/internal/ui/layout"
	"github.com/abhisek/recall/internal/ui/theme"
)

// Catalog is the study controller as seen by the deck browser.
type Catalog interface {
	session.Session
	ListDecks(ctx context.Context, req study.ListDecksRequest) ([]deck.Summary, error)
}

// decksLoadedMsg carries a fresh deck listing.
type decksLoadedMsg struct {
	Decks []deck.Summary
	Err   error
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Study key.Binding
}

// HomeScreen lists decks and opens a review session for the selected one.
type HomeScreen struct {
	catalog  Catalog
	keys     keyMap
	decks    []deck.Summary
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(catalog Catalog) *HomeScreen {
	return &HomeScreen{
		catalog: catalog,
		keys: keyMap{
			Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Navigate")),
			Down:  key.NewBinding(key.WithKeys("down", "j")),
			Study: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Study")),
		},
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadDecks()
}

// Resume reloads the counts after a review session.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadDecks()
}

func (h *HomeScreen) Title() string {
	return "Decks"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return append(layout.HintsFor(h.keys.Up, h.keys.Study), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (h *HomeScreen) loadDecks() tea.Cmd {
	return func() tea.Msg {
		decks, err := h.catalog.ListDecks(context.Background(), study.ListDecksRequest{})
		return decksLoadedMsg{Decks: decks, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case decksLoadedMsg:
		h.loaded = true
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.decks = msg.Decks
		h.selected = min(h.selected, max(len(h.decks)-1, 0))
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, h.keys.Up):
			if h.selected > 0 {
				h.selected--
			}
		case key.Matches(msg, h.keys.Down):
			if h.selected < len(h.decks)-1 {
				h.selected++
			}
		case key.Matches(msg, h.keys.Study):
			if len(h.decks) == 0 {
				return h, nil
			}
			id := h.decks[h.selected].ID
			return h, func() tea.Msg {
				return router.PushScreenMsg{Screen: session.New(h.catalog, &id)}
			}
		}
	}
	return h, nil
}

func (h *HomeScreen) View(width, height int) string {
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
	}
	switch {
	case h.errMsg != "":
		return "\n\n" + center(theme.ErrorText.Render("Error: "+h.errMsg))
	case !h.loaded:
		return "\n\n" + center(theme.Hint.Render("Loading decks..."))
	case len(h.decks) == 0:
		return "\n\n" + center(theme.Hint.Render("No decks yet. Add some with recall import FILE."))
	}
	return "\n" + center(output.RenderDecks(h.decks, h.selected))
}
