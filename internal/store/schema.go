package store

// schema creates the collection tables. Deck ids start at 1; id 0 is the
// implicit root of the deck tree and is never stored.
const schema = `
CREATE TABLE IF NOT EXISTS decks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    collapsed INTEGER NOT NULL DEFAULT 0,
    filtered INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS notetypes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    fields TEXT NOT NULL,    -- JSON array of field names
    templates TEXT NOT NULL  -- JSON array of {name, front, back}
);

CREATE TABLE IF NOT EXISTS notes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    notetype_id INTEGER NOT NULL REFERENCES notetypes(id),
    fields TEXT NOT NULL,       -- JSON object field name -> value
    tags TEXT NOT NULL DEFAULT '',
    search_text TEXT NOT NULL   -- lower-cased field values for search
);

CREATE TABLE IF NOT EXISTS cards (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    note_id INTEGER NOT NULL REFERENCES notes(id),
    deck_id INTEGER NOT NULL REFERENCES decks(id),
    ord INTEGER NOT NULL,
    position INTEGER NOT NULL,
    queue INTEGER NOT NULL DEFAULT 0,  -- 0: new, 1: learning, 2: review
    due INTEGER NOT NULL DEFAULT 0,    -- unix milliseconds, 0 for new cards
    state TEXT NOT NULL                -- opaque scheduler state token
);

CREATE INDEX IF NOT EXISTS cards_deck_queue_due ON cards (deck_id, queue, due);

CREATE TABLE IF NOT EXISTS revlog (
    id TEXT PRIMARY KEY,
    sequence INTEGER NOT NULL UNIQUE,
    card_id INTEGER NOT NULL REFERENCES cards(id),
    rating INTEGER NOT NULL,
    previous_state TEXT NOT NULL,
    new_state TEXT NOT NULL,
    taken_ms INTEGER NOT NULL,
    answered_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS config (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
