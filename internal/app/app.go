// Package app hosts the interactive review program.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/recall/internal/router"
	"github.com/abhisek/recall/internal/screen"
	"github.com/abhisek/recall/internal/screens/home"
	"github.com/abhisek/recall/internal/screens/session"
	"github.com/abhisek/recall/internal/ui/layout"
)

// Options holds the dependencies for the interactive program.
type Options struct {
	Catalog home.Catalog
	// DeckID starts a review of this deck directly instead of opening the
	// deck browser.
	DeckID *int64
	// Profile is shown in the header.
	Profile string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	profile string
	width   int
	height  int
}

// newAppModel creates a new AppModel on the deck browser, or on a review
// session when a deck was given.
func newAppModel(opts Options) AppModel {
	var initial screen.Screen = home.New(opts.Catalog)
	if opts.DeckID != nil {
		initial = session.New(opts.Catalog, opts.DeckID)
	}
	return AppModel{
		router:  router.New(initial),
		profile: opts.Profile,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case router.PopScreenMsg:
		// Leaving the bottom screen ends the program.
		if m.router.Depth() == 1 {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.profile, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
