package domain

import "time"

// Rating is the user's response to a card review.
// 1: Again (show again now)
// 2: Hard
// 3: Good
// 4: Easy (closes the card's session for the day)
type Rating int

const (
	Again Rating = 1
	Hard  Rating = 2
	Good  Rating = 3
	Easy  Rating = 4
)

// IsValid reports whether r is a valid rating (Again through Easy).
func (r Rating) IsValid() bool {
	return r >= Again && r <= Easy
}

// String returns the name of the rating.
func (r Rating) String() string {
	switch r {
	case Again:
		return "Again"
	case Hard:
		return "Hard"
	case Good:
		return "Good"
	case Easy:
		return "Easy"
	}
	return "Unknown"
}

// Bounds for card scheduling state. EaseFactor and Interval are clamped into
// these ranges on every update and again when loading externally produced data.
const (
	MinEaseFactor = 1.3
	MaxEaseFactor = 2.5
	MinInterval   = 1   // days
	MaxInterval   = 365 // days
)

// DefaultEaseFactor is the ease assigned to a card that has never been reviewed.
const DefaultEaseFactor = 2.5

// Card is a single term-definition entry together with its scheduling state.
//
// A card is "in session" when it has been shown at least once today but not
// yet closed with an Easy rating: FirstRating is set and CompletedToday is
// false. FirstRating and SessionAttempts are cleared together, exactly when
// the session closes or a new day starts.
type Card struct {
	ID         string
	Term       string
	Definition string

	EaseFactor float64    // interval growth rate, within [MinEaseFactor, MaxEaseFactor]
	Interval   int        // days until next eligibility, within [MinInterval, MaxInterval]
	Difficulty int        // struggle counter, never negative
	NextReview *time.Time // nil until the card's first session closes

	CompletedToday  bool
	FirstRating     Rating // 0 while the card has no open session
	SessionAttempts int
	ConsecutiveEasy int // back-to-back sessions whose first rating was Easy
}

// NewCard creates a card with default scheduling state.
func NewCard(id, term, definition string) Card {
	return Card{
		ID:         id,
		Term:       term,
		Definition: definition,
		EaseFactor: DefaultEaseFactor,
		Interval:   MinInterval,
	}
}

// InSession reports whether the card is mid-session: shown at least once
// today and not yet closed with an Easy rating.
func (c Card) InSession() bool {
	return !c.CompletedToday && c.FirstRating != 0
}

// ClearSession resets the per-session fields.
func (c *Card) ClearSession() {
	c.FirstRating = 0
	c.SessionAttempts = 0
}

// Normalize clamps a card back into invariant bounds. Persisted files are not
// guaranteed to have been written by this engine, so out-of-range values are
// repaired rather than rejected.
func Normalize(c Card) Card {
	if c.EaseFactor < MinEaseFactor {
		c.EaseFactor = MinEaseFactor
	}
	if c.EaseFactor > MaxEaseFactor {
		c.EaseFactor = MaxEaseFactor
	}
	if c.Interval < MinInterval {
		c.Interval = MinInterval
	}
	if c.Interval > MaxInterval {
		c.Interval = MaxInterval
	}
	if c.Difficulty < 0 {
		c.Difficulty = 0
	}
	if c.ConsecutiveEasy < 0 {
		c.ConsecutiveEasy = 0
	}
	if c.FirstRating != 0 && !c.FirstRating.IsValid() {
		c.FirstRating = 0
	}
	// Session fields travel together: a completed card has no open session,
	// and an open session implies at least one attempt.
	if c.CompletedToday {
		c.ClearSession()
	}
	if c.FirstRating == 0 {
		c.SessionAttempts = 0
	} else if c.SessionAttempts < 1 {
		c.SessionAttempts = 1
	}
	return c
}
