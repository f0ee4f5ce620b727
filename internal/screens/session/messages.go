package session

import (
	"time"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/review"
)

// cardLoadedMsg is sent when the next due card has been rendered.
type cardLoadedMsg struct {
	View  *card.View
	State review.State
	Err   error
}

// answerRecordedMsg is sent when an answer has been submitted.
type answerRecordedMsg struct {
	Rating review.Rating
	Err    error
}

// timerTickMsg is sent every second to update the card timer.
type timerTickMsg time.Time
