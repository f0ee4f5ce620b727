package scheduler

import (
	"testing"
	"time"
)

func TestNext_NewCard(t *testing.T) {
	p := DefaultParams()
	c := p.Next(NewState())

	if c.Again.Kind != KindLearning || c.Again.Step != 0 || c.Again.ScheduledSecs != 60 {
		t.Errorf("again = %+v, want learning step 0 in 60s", c.Again)
	}
	if c.Hard.Kind != KindLearning || c.Hard.ScheduledSecs != 330 {
		t.Errorf("hard = %+v, want learning in 330s (average of first two steps)", c.Hard)
	}
	if c.Good.Kind != KindLearning || c.Good.Step != 1 || c.Good.ScheduledSecs != 600 {
		t.Errorf("good = %+v, want learning step 1 in 600s", c.Good)
	}
	if c.Easy.Kind != KindReview || c.Easy.IntervalDays != 4 {
		t.Errorf("easy = %+v, want review in 4 days", c.Easy)
	}
	for name, s := range map[string]State{"again": c.Again, "hard": c.Hard, "good": c.Good, "easy": c.Easy} {
		if s.Reps != 1 {
			t.Errorf("%s reps = %d, want 1", name, s.Reps)
		}
		if s.Ease != 2500 {
			t.Errorf("%s ease = %d, want 2500", name, s.Ease)
		}
	}
}

func TestNext_LastLearningStepGraduates(t *testing.T) {
	p := DefaultParams()
	s := State{Kind: KindLearning, Step: 1, ScheduledSecs: 600, Ease: 2500, Reps: 2}
	c := p.Next(s)

	if c.Good.Kind != KindReview || c.Good.IntervalDays != 1 {
		t.Errorf("good = %+v, want review in 1 day", c.Good)
	}
	if c.Hard.Kind != KindLearning || c.Hard.Step != 1 || c.Hard.ScheduledSecs != 600 {
		t.Errorf("hard = %+v, want to repeat step 1", c.Hard)
	}
	if c.Again.Step != 0 {
		t.Errorf("again step = %d, want 0", c.Again.Step)
	}
}

func TestNext_Review(t *testing.T) {
	p := DefaultParams()
	s := State{Kind: KindReview, IntervalDays: 10, Ease: 2500, Reps: 5}
	c := p.Next(s)

	tests := []struct {
		name     string
		got      State
		interval int
		ease     int
	}{
		{"hard", c.Hard, 12, 2350},
		{"good", c.Good, 25, 2500},
		{"easy", c.Easy, 33, 2650},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Kind != KindReview {
				t.Errorf("kind = %s, want review", tt.got.Kind)
			}
			if tt.got.IntervalDays != tt.interval {
				t.Errorf("interval = %d, want %d", tt.got.IntervalDays, tt.interval)
			}
			if tt.got.Ease != tt.ease {
				t.Errorf("ease = %d, want %d", tt.got.Ease, tt.ease)
			}
		})
	}

	if c.Again.Kind != KindRelearning || c.Again.Lapses != 1 || c.Again.Ease != 2300 {
		t.Errorf("again = %+v, want relearning with one lapse and ease 2300", c.Again)
	}
	if c.Again.ScheduledSecs != 600 || c.Again.IntervalDays != 1 {
		t.Errorf("again = %+v, want 600s relearn step and 1 day interval", c.Again)
	}
}

func TestNext_EaseFloor(t *testing.T) {
	p := DefaultParams()
	c := p.Next(State{Kind: KindReview, IntervalDays: 3, Ease: 1300})
	if c.Again.Ease != 1300 || c.Hard.Ease != 1300 {
		t.Errorf("ease went below floor: again=%d hard=%d", c.Again.Ease, c.Hard.Ease)
	}
}

func TestNext_IntervalCap(t *testing.T) {
	p := DefaultParams()
	c := p.Next(State{Kind: KindReview, IntervalDays: 30000, Ease: 2500})
	if c.Easy.IntervalDays != p.MaxIntervalDays || c.Good.IntervalDays != p.MaxIntervalDays {
		t.Errorf("good=%d easy=%d, want capped at %d", c.Good.IntervalDays, c.Easy.IntervalDays, p.MaxIntervalDays)
	}
}

func TestNext_Relearning(t *testing.T) {
	p := DefaultParams()
	s := State{Kind: KindRelearning, Step: 0, ScheduledSecs: 600, IntervalDays: 3, Ease: 2300, Lapses: 1}
	c := p.Next(s)

	if c.Good.Kind != KindReview || c.Good.IntervalDays != 3 {
		t.Errorf("good = %+v, want review in 3 days", c.Good)
	}
	if c.Easy.Kind != KindReview || c.Easy.IntervalDays != 4 {
		t.Errorf("easy = %+v, want review in 4 days", c.Easy)
	}
	if c.Again.Kind != KindRelearning || c.Again.Lapses != 1 {
		t.Errorf("again = %+v, want relearning without a new lapse", c.Again)
	}
	if c.Hard.ScheduledSecs != 900 {
		t.Errorf("hard delay = %ds, want 900s", c.Hard.ScheduledSecs)
	}
}

func TestNext_DoesNotModifyInput(t *testing.T) {
	p := DefaultParams()
	s := State{Kind: KindReview, IntervalDays: 10, Ease: 2500, Reps: 5}
	before := s
	p.Next(s)
	if s != before {
		t.Errorf("input changed: %+v -> %+v", before, s)
	}
}

func TestQueue(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindNew, QueueNew},
		{KindLearning, QueueLearn},
		{KindRelearning, QueueLearn},
		{KindReview, QueueReview},
	}
	for _, tt := range tests {
		if got := (State{Kind: tt.kind}).Queue(); got != tt.want {
			t.Errorf("Queue(%s) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestDueAt(t *testing.T) {
	at := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	learning := State{Kind: KindLearning, ScheduledSecs: 600}
	if got := learning.DueAt(at); !got.Equal(at.Add(10 * time.Minute)) {
		t.Errorf("learning due = %v", got)
	}
	rev := State{Kind: KindReview, IntervalDays: 3}
	if got := rev.DueAt(at); !got.Equal(at.Add(3 * Day)) {
		t.Errorf("review due = %v", got)
	}
	if got := NewState().DueAt(at); !got.IsZero() {
		t.Errorf("new due = %v, want zero", got)
	}
}

func TestEncodeDecode(t *testing.T) {
	s := State{Kind: KindReview, IntervalDays: 12, Ease: 2350, Reps: 6, Lapses: 1}
	tok, err := Encode(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	again, _ := Encode(s)
	if tok != again {
		t.Errorf("encoding is not deterministic: %q vs %q", tok, again)
	}

	got, err := Decode(tok)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != s {
		t.Errorf("decoded %+v, want %+v", got, s)
	}
}

func TestDecode_Invalid(t *testing.T) {
	for _, tok := range []string{"!!!", "bm90IGpzb24", "eyJraW5kIjoiYm9ndXMifQ"} {
		if _, err := Decode(tok); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", tok)
		}
	}
}
