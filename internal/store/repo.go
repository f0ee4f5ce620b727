package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// Deck is a stored deck. Name holds the full "Parent::Child" path.
type Deck struct {
	ID        int64
	Name      string
	Collapsed bool
	Filtered  bool
}

// CardTemplate is one card layout of a note type.
type CardTemplate struct {
	Name  string `json:"name"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// NoteType defines the fields of a note and the cards generated from it.
type NoteType struct {
	ID        int64
	Name      string
	Fields    []string
	Templates []CardTemplate
}

// Note holds field values for one note type.
type Note struct {
	ID         int64
	NoteTypeID int64
	Fields     map[string]string
	Tags       []string
}

// Card is one reviewable card generated from a note template.
type Card struct {
	ID       int64
	NoteID   int64
	DeckID   int64
	Ord      int
	Position int64
	Queue    int
	Due      int64 // unix milliseconds
	State    string
}

// DeckCounts are the per-deck card counts shown in the deck tree.
type DeckCounts struct {
	New    int
	Learn  int
	Review int
}

// RevlogEntry records one answered card.
type RevlogEntry struct {
	ID            uuid.UUID
	Sequence      int64
	CardID        int64
	Rating        int
	PreviousState string
	NewState      string
	TakenMs       int64
	AnsweredAt    time.Time
}

// DeckRepo manages decks.
type DeckRepo interface {
	Create(ctx context.Context, d Deck) (int64, error)
	Get(ctx context.Context, id int64) (*Deck, error)
	ByName(ctx context.Context, name string) (*Deck, error)
	// List returns every deck ordered by name.
	List(ctx context.Context) ([]Deck, error)
}

// NoteTypeRepo manages note types.
type NoteTypeRepo interface {
	Create(ctx context.Context, nt NoteType) (int64, error)
	Get(ctx context.Context, id int64) (*NoteType, error)
	ByName(ctx context.Context, name string) (*NoteType, error)
}

// NoteRepo manages notes.
type NoteRepo interface {
	Create(ctx context.Context, n Note, fieldOrder []string) (int64, error)
	Get(ctx context.Context, id int64) (*Note, error)
	// Search returns ids of notes whose field values contain text,
	// ignoring case.
	Search(ctx context.Context, text string) ([]int64, error)
}

// CardRepo manages cards and their scheduling columns.
type CardRepo interface {
	Create(ctx context.Context, c Card) (int64, error)
	Get(ctx context.Context, id int64) (*Card, error)
	// NextPosition returns the position for the next new card.
	NextPosition(ctx context.Context) (int64, error)
	// NextDue returns the card in queue with the earliest due time at or
	// before asOf among deckIDs, or nil.
	NextDue(ctx context.Context, deckIDs []int64, queue int, asOf time.Time) (*Card, error)
	// NextNew returns the new card with the lowest position among deckIDs,
	// or nil.
	NextNew(ctx context.Context, deckIDs []int64) (*Card, error)
	// ByNotes returns the cards of the given notes ordered by note and ord.
	ByNotes(ctx context.Context, noteIDs []int64) ([]Card, error)
	// Counts returns the new/learn/review counts of each deck's own cards.
	Counts(ctx context.Context, asOf time.Time) (map[int64]DeckCounts, error)
	// Reschedule moves a card to a new state if its stored state still
	// equals prevState. It reports whether a row was updated.
	Reschedule(ctx context.Context, id int64, prevState string, c Card) (bool, error)
}

// RevlogRepo appends to and reads the review log.
type RevlogRepo interface {
	Append(ctx context.Context, e *RevlogEntry) error
	ByCard(ctx context.Context, cardID int64) ([]RevlogEntry, error)
}

// ConfigRepo stores collection-wide settings.
type ConfigRepo interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
