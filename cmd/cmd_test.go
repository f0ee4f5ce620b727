package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bundle = `{
  "version": "v1.0.0",
  "decks": [{"name": "Spanish::Verbs"}],
  "notetypes": [{
    "name": "Basic",
    "fields": ["Front", "Back"],
    "templates": [{"name": "Card 1", "front": "{{Front}}", "back": "{{Back}}"}]
  }],
  "notes": [
    {"notetype": "Basic", "deck": "Spanish::Verbs", "fields": {"Front": "hablar", "Back": "to speak"}},
    {"notetype": "Basic", "deck": "French", "fields": {"Front": "parler", "Back": "to speak"}}
  ]
}`

// resetFlags restores every flag in the tree to its default so runs do not
// leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type harness struct {
	t  *testing.T
	db string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, k := range []string{"RECALL_HOME", "RECALL_PROFILE", "RECALL_DB", "RECALL_FORMAT", "RECALL_LOG_LEVEL", "RECALL_CONFIG", "CLICOLOR_FORCE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return &harness{t: t, db: filepath.Join(t.TempDir(), "profile", "collection.db")}
}

// run executes one command line against the harness collection and returns
// stdout and the exit code.
func (h *harness) run(args ...string) (string, int) {
	h.t.Helper()
	resetFlags(rootCmd)
	cfg = nil
	var buf bytes.Buffer
	stdout = &buf
	h.t.Cleanup(func() { stdout = os.Stdout })

	rootCmd.SetArgs(append([]string{"--db", h.db, "--format", "json"}, args...))
	code := Execute()
	return buf.String(), code
}

func (h *harness) runJSON(args ...string) (map[string]any, int) {
	h.t.Helper()
	out, code := h.run(args...)
	var got map[string]any
	require.NoError(h.t, json.Unmarshal([]byte(out), &got), "output: %s", out)
	return got, code
}

func (h *harness) importBundle() {
	h.t.Helper()
	path := filepath.Join(h.t.TempDir(), "bundle.json")
	require.NoError(h.t, os.WriteFile(path, []byte(bundle), 0o644))
	got, code := h.runJSON("import", path)
	require.Equal(h.t, 0, code, "import: %v", got)
}

func errorKind(resp map[string]any) string {
	e, _ := resp["error"].(map[string]any)
	kind, _ := e["kind"].(string)
	return kind
}

func TestImportAndListDecks(t *testing.T) {
	h := newHarness(t)
	h.importBundle()

	got, code := h.runJSON("list-decks")
	require.Equal(t, 0, code)
	decks := got["decks"].([]any)
	require.Len(t, decks, 3)

	names := make([]string, len(decks))
	for i, d := range decks {
		names[i] = d.(map[string]any)["name"].(string)
	}
	assert.Equal(t, []string{"French", "Spanish", "Verbs"}, names)

	got, code = h.runJSON("list-decks", "--deck-name", "Verbs,French")
	require.Equal(t, 0, code)
	assert.Len(t, got["decks"], 2)
}

func TestStudyAnswerRoundTrip(t *testing.T) {
	h := newHarness(t)
	h.importBundle()

	got, code := h.runJSON("study", "--side", "front", "--show-state")
	require.Equal(t, 0, code)
	c := got["card"].(map[string]any)
	assert.Empty(t, c["back"])
	front := c["front"].([]any)[0].(map[string]any)
	assert.Equal(t, "hablar", front["current_text"])

	cardID := int64(c["id"].(float64))
	state := got["state"].(string)
	require.NotEmpty(t, state)

	args := []string{"answer", "--card-id", jsonNumber(cardID), "--answer", "good", "--time-taken", "3500", "--expect-state", state}
	got, code = h.runJSON(args...)
	require.Equal(t, 0, code, "answer: %v", got)
	assert.Equal(t, "good", got["rating"])
	assert.NotEqual(t, state, got["state"])

	// Replaying the same answer is stale.
	got, code = h.runJSON(args...)
	assert.Equal(t, 2, code)
	assert.Equal(t, "validation", errorKind(got))
}

func TestAnswerRejectsUnknownRating(t *testing.T) {
	h := newHarness(t)
	h.importBundle()

	for _, args := range [][]string{
		{"answer", "--card-id", "1", "--answer", "maybe"},
		{"answer", "--card-id", "1"},
	} {
		got, code := h.runJSON(args...)
		assert.Equal(t, 2, code, "%v", args)
		assert.Equal(t, float64(2), got["status"])
		assert.Equal(t, "validation", errorKind(got))
		assert.Contains(t, got["error"].(map[string]any)["message"], `"again", "hard", "good", "easy"`)
	}
}

func TestListDecksUnmatchedFilter(t *testing.T) {
	h := newHarness(t)
	h.importBundle()

	got, code := h.runJSON("list-decks", "--deck-id", "0")
	assert.Equal(t, 0, code)
	assert.Equal(t, []any{}, got["decks"])
}

func TestStudyEmptyCollection(t *testing.T) {
	h := newHarness(t)

	got, code := h.runJSON("study")
	assert.Equal(t, 0, code, "an empty queue is not a failure")
	assert.Equal(t, float64(3), got["status"])
	assert.Equal(t, "no_card_available", errorKind(got))
}

func TestStudyUnknownDeck(t *testing.T) {
	h := newHarness(t)
	h.importBundle()

	got, code := h.runJSON("study", "--deck-id", "999")
	assert.Equal(t, 1, code)
	assert.Equal(t, "collection", errorKind(got))
}

func TestSearch(t *testing.T) {
	h := newHarness(t)
	h.importBundle()

	got, code := h.runJSON("search", "PARL", "--side", "back")
	require.Equal(t, 0, code)
	cards := got["cards"].([]any)
	require.Len(t, cards, 1)
	assert.Empty(t, cards[0].(map[string]any)["front"])

	got, code = h.runJSON("search", "nothing-matches")
	require.Equal(t, 0, code)
	assert.Equal(t, []any{}, got["cards"])

	_, code = h.runJSON("search")
	assert.Equal(t, 2, code)
}

func TestImportRejectsBadBundle(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": "v2.0.0", "notes": []}`), 0o644))

	got, code := h.runJSON("import", path)
	assert.Equal(t, 2, code)
	assert.Equal(t, "validation", errorKind(got))

	got, code = h.runJSON("import", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, 2, code)
	assert.Equal(t, "validation", errorKind(got))
}

func TestInvalidFormat(t *testing.T) {
	h := newHarness(t)
	_, code := h.run("list-decks", "--format", "xml")
	assert.Equal(t, 2, code)
}

func TestUnknownFlag(t *testing.T) {
	h := newHarness(t)
	got, code := h.runJSON("list-decks", "--bogus")
	assert.Equal(t, 2, code)
	assert.Equal(t, "validation", errorKind(got))
}

func TestTextFormat(t *testing.T) {
	h := newHarness(t)
	h.importBundle()

	out, code := h.run("list-decks", "--format", "text")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "  Verbs")
	assert.NotContains(t, out, "\x1b[", "styling is stripped when stdout is not a terminal")
}

func TestVersion(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"version"})
	require.Equal(t, 0, Execute())
	assert.Equal(t, "recall (devel)\n", buf.String())
}

func jsonNumber(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
