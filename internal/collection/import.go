package collection

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"

	"github.com/abhisek/recall/internal/scheduler"
	"github.com/abhisek/recall/internal/store"
)

//go:embed bundle.schema.json
var bundleSchemaJSON []byte

const bundleSchemaURL = "schema://bundle.json"

var (
	bundleSchemaOnce sync.Once
	bundleSchema     *jsonschema.Schema
	bundleSchemaErr  error
)

// BundleMajor is the bundle format major version this build reads.
const BundleMajor = "v1"

// Bundle is the import document.
type Bundle struct {
	Version   string           `json:"version"`
	Decks     []BundleDeck     `json:"decks"`
	NoteTypes []BundleNoteType `json:"notetypes"`
	Notes     []BundleNote     `json:"notes"`
}

// BundleDeck declares a deck by its full "Parent::Child" name.
type BundleDeck struct {
	Name      string `json:"name"`
	Collapsed bool   `json:"collapsed"`
}

// BundleNoteType declares a note type.
type BundleNoteType struct {
	Name      string               `json:"name"`
	Fields    []string             `json:"fields"`
	Templates []store.CardTemplate `json:"templates"`
}

// BundleNote is one note, placed in a deck.
type BundleNote struct {
	NoteType string            `json:"notetype"`
	Deck     string            `json:"deck"`
	Fields   map[string]string `json:"fields"`
	Tags     []string          `json:"tags"`
}

// ImportResult counts what an import created.
type ImportResult struct {
	Decks     int `json:"decks"`
	NoteTypes int `json:"notetypes"`
	Notes     int `json:"notes"`
	Cards     int `json:"cards"`
}

// ImportError reports a bundle that cannot be imported.
type ImportError struct {
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid bundle: %s: %v", e.Reason, e.Err)
	}
	return "invalid bundle: " + e.Reason
}

func (e *ImportError) Unwrap() error { return e.Err }

// ParseBundle reads and validates a bundle document.
func ParseBundle(r io.Reader) (*Bundle, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, &ImportError{Reason: "not JSON", Err: err}
	}
	sch, err := compiledBundleSchema()
	if err != nil {
		return nil, fmt.Errorf("compile bundle schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, &ImportError{Reason: "schema validation failed", Err: err}
	}

	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, &ImportError{Reason: "decode", Err: err}
	}
	if !semver.IsValid(b.Version) {
		return nil, &ImportError{Reason: fmt.Sprintf("version %q is not a semantic version", b.Version)}
	}
	if semver.Major(b.Version) != BundleMajor {
		return nil, &ImportError{Reason: fmt.Sprintf("version %s is not supported, want %s.x.y", b.Version, BundleMajor)}
	}
	return &b, nil
}

func compiledBundleSchema() (*jsonschema.Schema, error) {
	bundleSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(bundleSchemaJSON))
		if err != nil {
			bundleSchemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(bundleSchemaURL, doc); err != nil {
			bundleSchemaErr = err
			return
		}
		bundleSchema, bundleSchemaErr = c.Compile(bundleSchemaURL)
	})
	return bundleSchema, bundleSchemaErr
}

// Import parses a bundle from r and adds its contents to the collection in
// one transaction. Existing decks and note types with the same name are
// reused; every note is added as new, with one new card per template.
func (s *Service) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	b, err := ParseBundle(r)
	if err != nil {
		return ImportResult{}, err
	}

	newState, err := scheduler.Encode(scheduler.NewState())
	if err != nil {
		return ImportResult{}, err
	}

	var res ImportResult
	err = s.st.InTx(ctx, func(repos store.Repos) error {
		imp := &importer{repos: repos, res: &res, decks: map[string]int64{}, types: map[string]*store.NoteType{}}

		for _, d := range b.Decks {
			if _, err := imp.deck(ctx, d.Name, d.Collapsed); err != nil {
				return err
			}
		}
		for _, nt := range b.NoteTypes {
			if err := imp.noteType(ctx, nt); err != nil {
				return err
			}
		}
		for i, n := range b.Notes {
			if err := imp.note(ctx, n, newState); err != nil {
				return fmt.Errorf("note %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	s.logger.Info("bundle imported", "decks", res.Decks, "notetypes", res.NoteTypes, "notes", res.Notes, "cards", res.Cards)
	return res, nil
}

type importer struct {
	repos store.Repos
	res   *ImportResult
	decks map[string]int64
	types map[string]*store.NoteType
}

// deck returns the id of the named deck, creating it and any missing
// parents.
func (imp *importer) deck(ctx context.Context, name string, collapsed bool) (int64, error) {
	parts := strings.Split(name, deckSeparator)
	if slices.ContainsFunc(parts, func(p string) bool { return strings.TrimSpace(p) == "" }) {
		return 0, &ImportError{Reason: fmt.Sprintf("deck name %q has an empty component", name)}
	}

	var id int64
	for i := range parts {
		path := strings.Join(parts[:i+1], deckSeparator)
		if known, ok := imp.decks[path]; ok {
			id = known
			continue
		}
		d, err := imp.repos.Decks.ByName(ctx, path)
		switch {
		case err == nil:
			id = d.ID
		case errors.Is(err, store.ErrNotFound):
			leaf := i == len(parts)-1
			id, err = imp.repos.Decks.Create(ctx, store.Deck{Name: path, Collapsed: leaf && collapsed})
			if err != nil {
				return 0, err
			}
			imp.res.Decks++
		default:
			return 0, err
		}
		imp.decks[path] = id
	}
	return id, nil
}

func (imp *importer) noteType(ctx context.Context, nt BundleNoteType) error {
	existing, err := imp.repos.NoteTypes.ByName(ctx, nt.Name)
	if err == nil {
		imp.types[nt.Name] = existing
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	created := store.NoteType{Name: nt.Name, Fields: nt.Fields, Templates: nt.Templates}
	if created.ID, err = imp.repos.NoteTypes.Create(ctx, created); err != nil {
		return err
	}
	imp.types[nt.Name] = &created
	imp.res.NoteTypes++
	return nil
}

func (imp *importer) note(ctx context.Context, n BundleNote, newState string) error {
	nt, ok := imp.types[n.NoteType]
	if !ok {
		found, err := imp.repos.NoteTypes.ByName(ctx, n.NoteType)
		if errors.Is(err, store.ErrNotFound) {
			return &ImportError{Reason: fmt.Sprintf("unknown note type %q", n.NoteType)}
		}
		if err != nil {
			return err
		}
		imp.types[n.NoteType] = found
		nt = found
	}
	for name := range n.Fields {
		if !slices.Contains(nt.Fields, name) {
			return &ImportError{Reason: fmt.Sprintf("note type %q has no field %q", nt.Name, name)}
		}
	}

	deckID, err := imp.deck(ctx, n.Deck, false)
	if err != nil {
		return err
	}
	noteID, err := imp.repos.Notes.Create(ctx, store.Note{NoteTypeID: nt.ID, Fields: n.Fields, Tags: n.Tags}, nt.Fields)
	if err != nil {
		return err
	}
	imp.res.Notes++

	for ord := range nt.Templates {
		pos, err := imp.repos.Cards.NextPosition(ctx)
		if err != nil {
			return err
		}
		_, err = imp.repos.Cards.Create(ctx, store.Card{
			NoteID:   noteID,
			DeckID:   deckID,
			Ord:      ord,
			Position: pos,
			Queue:    scheduler.QueueNew,
			State:    newState,
		})
		if err != nil {
			return err
		}
		imp.res.Cards++
	}
	return nil
}
