// Package scheduler computes a card's candidate next states for each rating
// and serializes states into the opaque tokens handed to the study core.
package scheduler

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Kind is the phase a card is in.
type Kind string

const (
	KindNew        Kind = "new"
	KindLearning   Kind = "learning"
	KindReview     Kind = "review"
	KindRelearning Kind = "relearning"
)

// Queue numbers stored alongside each card for due lookups.
const (
	QueueNew    = 0
	QueueLearn  = 1
	QueueReview = 2
)

// State is a card's scheduling state.
type State struct {
	Kind          Kind  `json:"kind"`
	Step          int   `json:"step"`
	ScheduledSecs int64 `json:"scheduled_secs"`
	IntervalDays  int   `json:"interval_days"`
	Ease          int   `json:"ease"`
	Reps          int   `json:"reps"`
	Lapses        int   `json:"lapses"`
}

// NewState is the state of a card that has never been answered.
func NewState() State {
	return State{Kind: KindNew}
}

// Queue returns the queue a card in state s belongs to.
func (s State) Queue() int {
	switch s.Kind {
	case KindLearning, KindRelearning:
		return QueueLearn
	case KindReview:
		return QueueReview
	default:
		return QueueNew
	}
}

// DueAt returns when a card entering state s at answeredAt becomes due.
// New cards have no due time and return the zero time.
func (s State) DueAt(answeredAt time.Time) time.Time {
	switch s.Kind {
	case KindLearning, KindRelearning:
		return answeredAt.Add(time.Duration(s.ScheduledSecs) * time.Second)
	case KindReview:
		return answeredAt.Add(time.Duration(s.IntervalDays) * Day)
	default:
		return time.Time{}
	}
}

// Encode serializes s into an opaque token. Equal states always produce the
// same token.
func Encode(s State) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Decode parses a token produced by Encode.
func Decode(token string) (State, error) {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return State{}, fmt.Errorf("decode state token: %w", err)
	}
	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		return State{}, fmt.Errorf("decode state token: %w", err)
	}
	switch s.Kind {
	case KindNew, KindLearning, KindReview, KindRelearning:
	default:
		return State{}, fmt.Errorf("decode state token: unknown kind %q", s.Kind)
	}
	return s, nil
}
