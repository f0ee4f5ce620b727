// Package output writes command results as a status envelope in JSON or as
// styled terminal text.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/collection"
	"github.com/abhisek/recall/internal/deck"
	"github.com/abhisek/recall/internal/studyerr"
)

// Format selects how results are written.
type Format string

const (
	FormatPrettyJSON Format = "pretty-json"
	FormatJSON       Format = "json"
	FormatText       Format = "text"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatPrettyJSON, FormatJSON, FormatText}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", studyerr.Invalid("format", s, "expected one of "+strings.Join(names, ", "))
}

// Envelope status codes.
const (
	StatusOK         = 0
	StatusCollection = 1
	StatusValidation = 2
	StatusNoCard     = 3
)

// StatusOf maps an error to its envelope status.
func StatusOf(err error) int {
	switch studyerr.KindOf(err) {
	case studyerr.KindNone:
		return StatusOK
	case studyerr.KindValidation:
		return StatusValidation
	case studyerr.KindNoCardAvailable:
		return StatusNoCard
	default:
		return StatusCollection
	}
}

// ExitCode is the process exit code for an envelope status. An empty queue
// is a normal outcome and exits zero.
func ExitCode(status int) int {
	if status == StatusNoCard {
		return 0
	}
	return status
}

// Decks is the list-decks response.
type Decks struct {
	Status int            `json:"status"`
	Decks  []deck.Summary `json:"decks"`
}

// Card is the study response.
type Card struct {
	Status int        `json:"status"`
	Card   *card.View `json:"card"`
	// State is the card's scheduling state token, present when requested.
	State string `json:"state,omitempty"`
}

// Cards is the search response.
type Cards struct {
	Status int         `json:"status"`
	Cards  []card.View `json:"cards"`
}

// Answer is the answer response.
type Answer struct {
	Status int    `json:"status"`
	CardID int64  `json:"card_id"`
	Rating string `json:"rating"`
	State  string `json:"state"`
}

// Imported is the import response.
type Imported struct {
	Status   int                     `json:"status"`
	Imported collection.ImportResult `json:"imported"`
}

// Error is the failure response.
type Error struct {
	Status int       `json:"status"`
	Error  ErrorBody `json:"error"`
}

// ErrorBody describes a failure.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// NewError builds the envelope for err.
func NewError(err error) *Error {
	return &Error{
		Status: StatusOf(err),
		Error:  ErrorBody{Kind: studyerr.KindOf(err).String(), Message: message(err)},
	}
}

// message is the text shown for err. Wrapped collection errors report the
// collection's own message.
func message(err error) string {
	var ce *studyerr.CollectionError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return err.Error()
}

// Writer writes responses in one format.
type Writer struct {
	w      io.Writer
	format Format
}

// NewWriter returns a Writer for format.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// Write serializes v, one of the response types of this package.
func (w *Writer) Write(v any) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.w)
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case FormatText:
		// Fprintln strips styling when w is not a terminal.
		_, err := lipgloss.Fprintln(w.w, renderText(v))
		return err
	default:
		enc := json.NewEncoder(w.w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

// WriteError writes the envelope for err and returns its status.
func (w *Writer) WriteError(err error) (int, error) {
	e := NewError(err)
	if werr := w.Write(e); werr != nil {
		return e.Status, fmt.Errorf("write error response: %w", werr)
	}
	return e.Status, nil
}
