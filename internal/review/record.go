package review

import (
	"fmt"
	"strconv"
	"time"

	"github.com/abhisek/recall/internal/studyerr"
)

// Record is the immutable event submitted to finalize one answer.
type Record struct {
	cardID     int64
	current    State
	next       State
	rating     Rating
	takenMs    int64
	answeredAt int64
}

// NewRecord builds the record for answering set.CardID with rating.
//
// current must be the state the caller studied the card under; it has to
// match set.Current or the answer is rejected as stale. takenMs is the time
// spent on the card and must not be negative. answeredAt is captured from now
// with millisecond resolution.
func NewRecord(set StateSet, current State, rating Rating, takenMs int64, now time.Time) (Record, error) {
	if !rating.IsValid() {
		return Record{}, studyerr.Invalid("answer", strconv.Itoa(int(rating)), "unknown rating")
	}
	if takenMs < 0 {
		return Record{}, studyerr.Invalid("time taken", strconv.FormatInt(takenMs, 10), "must not be negative")
	}
	if err := set.Validate(); err != nil {
		return Record{}, studyerr.Collection("scheduling candidates", err)
	}
	if !current.Equal(set.Current) {
		return Record{}, &studyerr.ValidationError{
			Field:  "state",
			Reason: fmt.Sprintf("card %d was answered or rescheduled since it was shown", set.CardID),
			Err:    ErrStaleState,
		}
	}

	next, err := NextState(set, rating)
	if err != nil {
		return Record{}, err
	}

	return Record{
		cardID:     set.CardID,
		current:    set.Current,
		next:       next,
		rating:     rating,
		takenMs:    takenMs,
		answeredAt: now.UnixMilli(),
	}, nil
}

func (r Record) CardID() int64      { return r.cardID }
func (r Record) Current() State     { return r.current }
func (r Record) New() State         { return r.next }
func (r Record) Rating() Rating     { return r.rating }
func (r Record) TakenMillis() int64 { return r.takenMs }

// AnsweredAtMillis is the wall-clock submission time in milliseconds since
// the Unix epoch.
func (r Record) AnsweredAtMillis() int64 { return r.answeredAt }
