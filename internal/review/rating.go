// Package review selects a card's next scheduling state from a rating and
// builds the immutable record that finalizes an answer.
package review

import (
	"strings"

	"github.com/abhisek/recall/internal/studyerr"
)

// Rating is the user's recall-confidence judgment for an answered card.
// Ratings are ordered Again < Hard < Good < Easy.
type Rating int

const (
	Again Rating = 1
	Hard  Rating = 2
	Good  Rating = 3
	Easy  Rating = 4
)

// RatingValues lists the canonical rating tokens.
var RatingValues = []string{"again", "hard", "good", "easy"}

func (r Rating) String() string {
	switch r {
	case Again:
		return "again"
	case Hard:
		return "hard"
	case Good:
		return "good"
	case Easy:
		return "easy"
	default:
		return "unknown"
	}
}

// IsValid reports whether r is one of the four ratings.
func (r Rating) IsValid() bool {
	return r >= Again && r <= Easy
}

// ParseRating maps "again"/"1", "hard"/"2", "good"/"3" and "easy"/"4" to a
// Rating. Anything else is a validation error naming the accepted values.
func ParseRating(token string) (Rating, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "again", "1":
		return Again, nil
	case "hard", "2":
		return Hard, nil
	case "good", "3":
		return Good, nil
	case "easy", "4":
		return Easy, nil
	}
	return 0, studyerr.Invalid("answer", token,
		`expected one of "again", "hard", "good", "easy" (or "1", "2", "3", "4")`)
}
