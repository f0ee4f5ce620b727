package review

import (
	"errors"
	"fmt"
)

// ErrStaleState reports an answer submitted against a scheduling state that
// is no longer the card's current one.
var ErrStaleState = errors.New("stale scheduling state")

// State is an opaque scheduling state owned by the scheduler. It has no
// visible structure; two states are equal when their tokens are equal.
type State struct {
	token string
}

// StateFromToken wraps a scheduler-issued token. Only the collection service
// should mint states.
func StateFromToken(token string) State {
	return State{token: token}
}

// Token returns the scheduler-issued token.
func (s State) Token() string { return s.token }

// IsZero reports whether s was never issued by a scheduler.
func (s State) IsZero() bool { return s.token == "" }

// Equal reports whether s and o are the same scheduling state.
func (s State) Equal(o State) bool { return s.token == o.token }

// StateSet bundles a card's current scheduling state with one candidate next
// state per rating, as computed by the scheduler.
type StateSet struct {
	CardID  int64
	Current State
	Again   State
	Hard    State
	Good    State
	Easy    State
}

// Validate checks that every state in the set was issued by the scheduler.
func (s StateSet) Validate() error {
	for _, st := range []struct {
		name  string
		state State
	}{
		{"current", s.Current},
		{"again", s.Again},
		{"hard", s.Hard},
		{"good", s.Good},
		{"easy", s.Easy},
	} {
		if st.state.IsZero() {
			return fmt.Errorf("card %d: scheduler returned no %s state", s.CardID, st.name)
		}
	}
	return nil
}

// NextState returns the candidate the scheduler computed for rating. The
// returned value is the scheduler's own state, unmodified.
func NextState(set StateSet, rating Rating) (State, error) {
	switch rating {
	case Again:
		return set.Again, nil
	case Hard:
		return set.Hard, nil
	case Good:
		return set.Good, nil
	case Easy:
		return set.Easy, nil
	}
	return State{}, fmt.Errorf("unknown rating %d", int(rating))
}
