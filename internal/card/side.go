package card

import (
	"strings"

	"github.com/abhisek/recall/internal/studyerr"
)

// Side selects which part of a card is shown.
type Side int

const (
	Both Side = iota
	Front
	Back
)

func (s Side) String() string {
	switch s {
	case Front:
		return "front"
	case Back:
		return "back"
	default:
		return "both"
	}
}

// SideValues lists the accepted side tokens.
var SideValues = []string{"front", "answer", "back", "question", "both"}

// ParseSide maps a side token to a Side. "front" and "answer" keep only the
// front, "back" and "question" keep only the back, and "both" or an empty
// token keeps everything. Any other token is a validation error.
func ParseSide(token string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "front", "answer":
		return Front, nil
	case "back", "question":
		return Back, nil
	case "both", "":
		return Both, nil
	default:
		return Both, studyerr.Invalid("side", token,
			`expected one of "front", "answer", "back", "question", "both"`)
	}
}

// SelectSide returns a copy of v with the unwanted side cleared to an empty
// sequence. Selecting Both returns the view unchanged.
func SelectSide(v View, side Side) View {
	switch side {
	case Front:
		v.Back = []ContentNode{}
	case Back:
		v.Front = []ContentNode{}
	}
	return v
}
