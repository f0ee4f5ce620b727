// Package studyerr defines the closed set of error kinds surfaced by the
// study pipeline: validation failures, an empty review queue, and failures
// reported by the collection service.
package studyerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error returned by the study pipeline.
type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindNoCardAvailable
	KindCollection
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNoCardAvailable:
		return "no_card_available"
	case KindCollection:
		return "collection"
	default:
		return "none"
	}
}

// ErrNoCardAvailable is returned when the review queue has nothing due.
// Callers should treat it as "nothing to study now", not as a failure.
var ErrNoCardAvailable = errors.New("no card available")

// ValidationError reports caller input that cannot be accepted as given.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Invalid builds a ValidationError.
func Invalid(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// CollectionError wraps a failure reported by the collection service. The
// original message is preserved verbatim in Message.
type CollectionError struct {
	Op      string
	Message string
	Err     error
}

func (e *CollectionError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *CollectionError) Unwrap() error { return e.Err }

// Collection wraps err as a CollectionError for op. Errors that already carry
// one of the study kinds are returned unchanged.
func Collection(op string, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != KindCollection {
		return err
	}
	var ce *CollectionError
	if errors.As(err, &ce) {
		return err
	}
	return &CollectionError{Op: op, Message: err.Error(), Err: err}
}

// KindOf reports which study error kind err belongs to. Unclassified
// non-nil errors are reported as KindCollection.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	if errors.Is(err, ErrNoCardAvailable) {
		return KindNoCardAvailable
	}
	return KindCollection
}
