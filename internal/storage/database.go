package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mherran/repaso/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Deck is a stored deck row. LastSession is null until the deck's first
// review session persists a rating.
type Deck struct {
	ID          int64
	Name        string
	LastSession sql.NullTime
}

// EnsureDeck returns the id of the named deck, creating it if needed.
func (db *DB) EnsureDeck(name string) (int64, error) {
	deck, err := db.FindDeckByName(name)
	if err != nil {
		return 0, err
	}
	if deck != nil {
		return deck.ID, nil
	}
	res, err := db.conn.Exec(`INSERT INTO decks (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert deck %s: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for deck %s: %w", name, err)
	}
	return id, nil
}

// FindDeckByName retrieves a deck by name, or nil if it does not exist.
func (db *DB) FindDeckByName(name string) (*Deck, error) {
	var d Deck
	row := db.conn.QueryRow(`SELECT id, name, last_session FROM decks WHERE name = ?`, name)
	err := row.Scan(&d.ID, &d.Name, &d.LastSession)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find deck %s: %w", name, err)
	}
	return &d, nil
}

// ListDecks retrieves all decks ordered by name.
func (db *DB) ListDecks() ([]Deck, error) {
	rows, err := db.conn.Query(`SELECT id, name, last_session FROM decks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	var decks []Deck
	for rows.Next() {
		var d Deck
		if err := rows.Scan(&d.ID, &d.Name, &d.LastSession); err != nil {
			return nil, fmt.Errorf("failed to scan deck row: %w", err)
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

// InsertCard inserts a new card into a deck with default scheduling state.
func (db *DB) InsertCard(deckID int64, card domain.Card, sourceID int64) error {
	_, err := db.conn.Exec(`
		INSERT INTO cards (id, deck_id, term, definition, ease_factor, interval,
			difficulty, next_review, completed_today, first_rating,
			session_attempts, consecutive_easy, source_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		card.ID,
		deckID,
		card.Term,
		card.Definition,
		card.EaseFactor,
		card.Interval,
		card.Difficulty,
		nullableTime(card.NextReview),
		card.CompletedToday,
		int(card.FirstRating),
		card.SessionAttempts,
		card.ConsecutiveEasy,
		sourceID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert card %s: %w", card.ID, err)
	}
	return nil
}

// GetCards retrieves all cards of a deck in insertion order.
func (db *DB) GetCards(deckID int64) ([]domain.Card, error) {
	rows, err := db.conn.Query(`
		SELECT id, term, definition, ease_factor, interval, difficulty,
			next_review, completed_today, first_rating, session_attempts,
			consecutive_easy
		FROM cards WHERE deck_id = ? ORDER BY rowid
	`, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards for deck ID %d: %w", deckID, err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row for deck ID %d: %w", deckID, err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// HasCard reports whether the deck already contains the card id.
func (db *DB) HasCard(deckID int64, id string) (bool, error) {
	var n int
	row := db.conn.QueryRow(`SELECT COUNT(*) FROM cards WHERE deck_id = ? AND id = ?`, deckID, id)
	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check card %s: %w", id, err)
	}
	return n > 0, nil
}

// SaveCards writes the scheduling state of every card in one transaction and
// stamps the deck's last session date. Called after each applied rating, so a
// crash loses at most the rating that was in flight.
func (db *DB) SaveCards(deckID int64, cards []domain.Card, sessionDate time.Time) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin save transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE cards
		SET ease_factor = ?, interval = ?, difficulty = ?, next_review = ?,
			completed_today = ?, first_rating = ?, session_attempts = ?,
			consecutive_easy = ?
		WHERE deck_id = ? AND id = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare card update: %w", err)
	}
	defer stmt.Close()

	for _, c := range cards {
		if _, err := stmt.Exec(
			c.EaseFactor,
			c.Interval,
			c.Difficulty,
			nullableTime(c.NextReview),
			c.CompletedToday,
			int(c.FirstRating),
			c.SessionAttempts,
			c.ConsecutiveEasy,
			deckID,
			c.ID,
		); err != nil {
			return fmt.Errorf("failed to update card %s: %w", c.ID, err)
		}
	}

	if _, err := tx.Exec(`UPDATE decks SET last_session = ? WHERE id = ?`, sessionDate, deckID); err != nil {
		return fmt.Errorf("failed to stamp last session for deck ID %d: %w", deckID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save transaction: %w", err)
	}
	return nil
}

// DeleteCard removes a card from a deck.
func (db *DB) DeleteCard(deckID int64, id string) error {
	_, err := db.conn.Exec(`DELETE FROM cards WHERE deck_id = ? AND id = ?`, deckID, id)
	if err != nil {
		return fmt.Errorf("failed to delete card %s: %w", id, err)
	}
	return nil
}

// CardRef locates a card within a deck.
type CardRef struct {
	DeckID int64
	CardID string
}

// GetCardRefsBySourceID retrieves the deck/card pairs that came from a source.
func (db *DB) GetCardRefsBySourceID(sourceID int64) ([]CardRef, error) {
	rows, err := db.conn.Query(`SELECT deck_id, id FROM cards WHERE source_id = ?`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards for source ID %d: %w", sourceID, err)
	}
	defer rows.Close()

	var refs []CardRef
	for rows.Next() {
		var r CardRef
		if err := rows.Scan(&r.DeckID, &r.CardID); err != nil {
			return nil, fmt.Errorf("failed to scan card ref for source ID %d: %w", sourceID, err)
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

// Source represents a card source, either a local path or a git URL.
type Source struct {
	ID          int64
	Path        string
	Kind        string // "local" or "git"
	LastScanned sql.NullTime
}

// InsertSource inserts a new source and returns its ID.
func (db *DB) InsertSource(path, kind string) (int64, error) {
	res, err := db.conn.Exec(`INSERT INTO sources (path, kind) VALUES (?, ?)`, path, kind)
	if err != nil {
		return 0, fmt.Errorf("failed to insert source %s: %w", path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for source %s: %w", path, err)
	}
	return id, nil
}

// FindSourceByPath retrieves a source by its path, or nil if unknown.
func (db *DB) FindSourceByPath(path string) (*Source, error) {
	var s Source
	row := db.conn.QueryRow(`SELECT id, path, kind, last_scanned FROM sources WHERE path = ?`, path)
	err := row.Scan(&s.ID, &s.Path, &s.Kind, &s.LastScanned)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find source by path %s: %w", path, err)
	}
	return &s, nil
}

// GetAllSources retrieves all stored sources.
func (db *DB) GetAllSources() ([]Source, error) {
	rows, err := db.conn.Query(`SELECT id, path, kind, last_scanned FROM sources`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var s Source
		if err := rows.Scan(&s.ID, &s.Path, &s.Kind, &s.LastScanned); err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

// UpdateSourceLastScanned updates the last_scanned timestamp for a source.
func (db *DB) UpdateSourceLastScanned(sourceID int64) error {
	_, err := db.conn.Exec(`UPDATE sources SET last_scanned = ? WHERE id = ?`, time.Now(), sourceID)
	if err != nil {
		return fmt.Errorf("failed to update last scanned for source ID %d: %w", sourceID, err)
	}
	return nil
}

func scanCard(rows *sql.Rows) (domain.Card, error) {
	var (
		c           domain.Card
		nextReview  sql.NullTime
		firstRating int
	)
	err := rows.Scan(
		&c.ID,
		&c.Term,
		&c.Definition,
		&c.EaseFactor,
		&c.Interval,
		&c.Difficulty,
		&nextReview,
		&c.CompletedToday,
		&firstRating,
		&c.SessionAttempts,
		&c.ConsecutiveEasy,
	)
	if err != nil {
		return domain.Card{}, err
	}
	if nextReview.Valid {
		t := nextReview.Time
		c.NextReview = &t
	}
	c.FirstRating = domain.Rating(firstRating)
	return c, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
