package storage

const schema = `
-- The 'decks' table groups cards and remembers when each deck was last
-- reviewed, which drives the day-boundary reset.
CREATE TABLE IF NOT EXISTS decks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    last_session DATETIME
);

-- The 'cards' table stores each flashcard together with its full scheduling
-- state. A card id is a content hash, so the same pair may legitimately
-- appear in more than one deck.
CREATE TABLE IF NOT EXISTS cards (
    id TEXT NOT NULL,
    deck_id INTEGER NOT NULL,
    term TEXT NOT NULL,
    definition TEXT NOT NULL,
    ease_factor REAL NOT NULL DEFAULT 2.5,
    interval INTEGER NOT NULL DEFAULT 1,
    difficulty INTEGER NOT NULL DEFAULT 0,
    next_review DATETIME,
    completed_today INTEGER NOT NULL DEFAULT 0,
    first_rating INTEGER NOT NULL DEFAULT 0,
    session_attempts INTEGER NOT NULL DEFAULT 0,
    consecutive_easy INTEGER NOT NULL DEFAULT 0,
    source_id INTEGER,

    PRIMARY KEY (id, deck_id),
    FOREIGN KEY (deck_id) REFERENCES decks(id),
    FOREIGN KEY (source_id) REFERENCES sources(id)
);

-- The 'sources' table tracks where decks come from, either a local directory
-- or a git repository URL.
CREATE TABLE IF NOT EXISTS sources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    kind TEXT NOT NULL DEFAULT 'local',
    last_scanned DATETIME
);
`
