package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/recall/internal/review"
	"github.com/abhisek/recall/internal/router"
)

func testSummary() Summary {
	var s Summary
	s.Duration = 3*time.Minute + 5*time.Second
	for _, r := range []review.Rating{review.Good, review.Good, review.Again, review.Easy} {
		s.Record(r)
	}
	return s
}

func TestSummary_Record(t *testing.T) {
	s := testSummary()
	s.Record(review.Rating(9))
	if s.Reviewed() != 4 {
		t.Errorf("Reviewed = %d, want 4", s.Reviewed())
	}
	if s.Ratings != [4]int{1, 0, 2, 1} {
		t.Errorf("Ratings = %v", s.Ratings)
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testSummary()).View(80, 24)
	for _, want := range []string{"Session complete!", "3:05", "Cards reviewed: 4", "again", "easy"} {
		if !strings.Contains(view, want) {
			t.Errorf("summary view missing %q", want)
		}
	}
}

func TestSummaryScreen_Exhausted(t *testing.T) {
	view := New(Summary{Exhausted: true}).View(80, 24)
	if !strings.Contains(view, "No more cards are due") {
		t.Error("expected exhausted headline")
	}
	if strings.Contains(view, "again") {
		t.Error("expected no rating bars for an empty session")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, k := range []rune{tea.KeyEnter, tea.KeyEscape} {
		_, cmd := New(testSummary()).Update(tea.KeyPressMsg{Code: k})
		if cmd == nil {
			t.Fatalf("expected a command for key %v", k)
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("expected PopScreenMsg for key %v", k)
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	if n := len(New(testSummary()).KeyHints()); n != 2 {
		t.Errorf("KeyHints length = %d, want 2", n)
	}
}
