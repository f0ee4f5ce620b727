// Package session implements the interactive review screen: show the front
// of the next due card, reveal the back, and rate it.
package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/review"
	"github.com/abhisek/recall/internal/router"
	"github.com/abhisek/recall/internal/screen"
	"github.com/abhisek/recall/internal/screens/summary"
	"github.com/abhisek/recall/internal/study"
	"github.com/abhisek/recall/internal/studyerr"
	"github.com/abhisek/recall/internal/ui/layout"
)

// Session is the part of the study controller the review screen drives.
type Session interface {
	Study(ctx context.Context, req study.StudyRequest) (*card.View, error)
	CurrentState(ctx context.Context, cardID int64) (review.State, error)
	Answer(ctx context.Context, req study.AnswerRequest) (review.Record, error)
}

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseAnswer
	phaseError
)

type keyMap struct {
	Reveal key.Binding
	Again  key.Binding
	Hard   key.Binding
	Good   key.Binding
	Easy   key.Binding
	Retry  key.Binding
	Finish key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Reveal: key.NewBinding(key.WithKeys("space", " ", "enter"), key.WithHelp("Space", "Show answer")),
		Again:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "Again")),
		Hard:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "Hard")),
		Good:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "Good")),
		Easy:   key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "Easy")),
		Retry:  key.NewBinding(key.WithKeys("enter", "r"), key.WithHelp("Enter", "Retry")),
		Finish: key.NewBinding(key.WithKeys("q"), key.WithHelp("Q", "Finish")),
	}
}

// SessionScreen implements screen.Screen for a review session.
type SessionScreen struct {
	sess   Session
	deckID *int64
	now    func() time.Time
	keys   keyMap

	phase   phase
	view    *card.View
	state   review.State
	shownAt time.Time
	elapsed time.Duration
	errMsg  string

	startedAt time.Time
	tally     summary.Summary
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// Option configures a SessionScreen.
type Option func(*SessionScreen)

// WithClock overrides the wall clock used for answer timing.
func WithClock(now func() time.Time) Option {
	return func(s *SessionScreen) { s.now = now }
}

// New creates a review screen. deckID, when non-nil, becomes the active deck
// before the first card is pulled.
func New(sess Session, deckID *int64, opts ...Option) *SessionScreen {
	s := &SessionScreen{
		sess:   sess,
		deckID: deckID,
		now:    time.Now,
		keys:   defaultKeys(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	s.startedAt = s.now()
	return tea.Batch(s.loadCard(), tickCmd())
}

func (s *SessionScreen) Title() string {
	return "Review"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	var hints []layout.KeyHint
	switch s.phase {
	case phaseQuestion:
		hints = layout.HintsFor(s.keys.Reveal, s.keys.Finish)
	case phaseAnswer:
		hints = layout.HintsFor(s.keys.Again, s.keys.Hard, s.keys.Good, s.keys.Easy)
	case phaseError:
		hints = layout.HintsFor(s.keys.Retry)
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Decks"})
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardLoadedMsg:
		return s.handleCardLoaded(msg)

	case answerRecordedMsg:
		return s.handleAnswerRecorded(msg)

	case timerTickMsg:
		if s.phase == phaseQuestion || s.phase == phaseAnswer {
			s.elapsed = s.now().Sub(s.shownAt)
		}
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// loadCard pulls and renders the next due card along with the state token
// it is shown under.
func (s *SessionScreen) loadCard() tea.Cmd {
	deckID := s.deckID
	return func() tea.Msg {
		ctx := context.Background()
		v, err := s.sess.Study(ctx, study.StudyRequest{DeckID: deckID, Side: card.Both.String()})
		if err != nil {
			return cardLoadedMsg{Err: err}
		}
		st, err := s.sess.CurrentState(ctx, v.ID)
		if err != nil {
			return cardLoadedMsg{Err: err}
		}
		return cardLoadedMsg{View: v, State: st}
	}
}

func (s *SessionScreen) handleCardLoaded(msg cardLoadedMsg) (screen.Screen, tea.Cmd) {
	if errors.Is(msg.Err, studyerr.ErrNoCardAvailable) {
		s.tally.Exhausted = true
		return s, s.finish()
	}
	if msg.Err != nil {
		s.phase = phaseError
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	// The active deck is set once; later pulls keep it.
	s.deckID = nil
	s.view = msg.View
	s.state = msg.State
	s.phase = phaseQuestion
	s.shownAt = s.now()
	s.elapsed = 0
	s.errMsg = ""
	return s, nil
}

func (s *SessionScreen) handleAnswerRecorded(msg answerRecordedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.phase = phaseError
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.tally.Record(msg.Rating)
	s.phase = phaseLoading
	return s, s.loadCard()
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseQuestion:
		switch {
		case key.Matches(msg, s.keys.Reveal):
			s.phase = phaseAnswer
		case key.Matches(msg, s.keys.Finish):
			return s, s.finish()
		}

	case phaseAnswer:
		for i, b := range []key.Binding{s.keys.Again, s.keys.Hard, s.keys.Good, s.keys.Easy} {
			if key.Matches(msg, b) {
				return s.answer(review.Rating(i + 1))
			}
		}
		if key.Matches(msg, s.keys.Finish) {
			return s, s.finish()
		}

	case phaseError:
		if key.Matches(msg, s.keys.Retry) {
			s.phase = phaseLoading
			s.errMsg = ""
			return s, s.loadCard()
		}
	}
	return s, nil
}

// answer submits rating for the shown card. Time taken runs from when the
// front was shown.
func (s *SessionScreen) answer(rating review.Rating) (screen.Screen, tea.Cmd) {
	req := study.AnswerRequest{
		CardID:        s.view.ID,
		Rating:        strconv.Itoa(int(rating)),
		TimeTakenMs:   s.now().Sub(s.shownAt).Milliseconds(),
		ExpectedState: s.state.Token(),
	}
	s.phase = phaseLoading
	return s, func() tea.Msg {
		_, err := s.sess.Answer(context.Background(), req)
		return answerRecordedMsg{Rating: rating, Err: err}
	}
}

// finish swaps this screen for the session summary.
func (s *SessionScreen) finish() tea.Cmd {
	s.tally.Duration = s.now().Sub(s.startedAt)
	sum := s.tally
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
