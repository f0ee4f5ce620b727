package study

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/recall/internal/studyerr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ListDecksRequest filters the deck catalog. Empty lists place no
// constraint; values that match no deck yield an empty result.
type ListDecksRequest struct {
	IDs   []int64
	Names []string
}

// StudyRequest asks for the next due card. DeckID, when set, becomes the
// active deck before the queue is consulted.
type StudyRequest struct {
	DeckID *int64 `validate:"omitnil,gt=0"`
	Side   string
}

// AnswerRequest submits a rating for a card. ExpectedState, when set, is the
// state token the card was shown under; the answer is rejected if the card
// has been rescheduled since.
type AnswerRequest struct {
	CardID        int64  `validate:"required,gt=0"`
	Rating        string
	TimeTakenMs   int64  `validate:"gte=0"`
	ExpectedState string
}

// SearchRequest renders every card whose note matches Text.
type SearchRequest struct {
	Text string `validate:"required"`
	Side string
}

// check validates req and converts the first failure into a
// studyerr.ValidationError.
func check(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return studyerr.Invalid("request", "", err.Error())
	}
	fe := verrs[0]
	return &studyerr.ValidationError{
		Field:  fieldName(fe.StructField()),
		Value:  fmt.Sprint(fe.Value()),
		Reason: reason(fe),
		Err:    err,
	}
}

// fieldName maps a struct field, possibly indexed as in IDs[0], to the
// name shown to users.
func fieldName(f string) string {
	if i := strings.IndexByte(f, '['); i >= 0 {
		f = f[:i]
	}
	switch f {
	case "CardID":
		return "card id"
	case "DeckID":
		return "deck id"
	case "TimeTakenMs":
		return "time taken"
	case "Rating":
		return "answer"
	case "IDs":
		return "deck id"
	case "Names":
		return "deck name"
	}
	return strings.ToLower(f)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}
