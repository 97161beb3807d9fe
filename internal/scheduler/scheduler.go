// Package scheduler implements the spaced-repetition engine: the per-card
// rating update rule, due/active selection, queue prioritization, and the
// day-boundary reset.
//
// Ratings 1-3 keep a card's session open and only record that the card was
// shown; the card's scheduling metadata changes once, when the session closes
// with a rating of 4. The magnitude of that change is keyed on the first
// rating the card received in the session, so retrying a card within one
// sitting does not compound the penalty.
package scheduler

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mherran/repaso/internal/domain"
)

// ErrInvalidRating is returned when a rating outside 1-4 is applied.
// Use errors.Is to check.
var ErrInvalidRating = errors.New("scheduler: invalid rating")

// Ease factor adjustments keyed on the first rating of the closing session.
const (
	easeIncrease     = 0.10
	easeDropMild     = 0.05
	easeDropModerate = 0.15
	easeDropSevere   = 0.25
)

// Exponential interval backoff across consecutive easy-first sessions.
const (
	backoffBase = 1.5
	backoffCap  = 10 // exponent cap, keeps intervals finite long before the 365-day clamp
)

// Apply processes one rating against a card and returns the updated card.
// The input card is not mutated. An invalid rating is rejected before any
// state change.
//
// Ratings Again, Hard, and Good record the attempt and keep the session open:
// the first such rating is sticky for the rest of the session. Easy closes
// the session, applying the metadata update keyed on the session's first
// rating (or Easy itself when the card was closed on its first showing), then
// schedules the next review and clears the session fields.
func Apply(card domain.Card, rating domain.Rating, today time.Time) (domain.Card, error) {
	if !rating.IsValid() {
		return card, fmt.Errorf("%w: %d", ErrInvalidRating, int(rating))
	}

	c := card

	if rating != domain.Easy {
		if c.FirstRating == 0 {
			c.FirstRating = rating
		}
		c.SessionAttempts++
		c.CompletedToday = false
		return c, nil
	}

	first := c.FirstRating
	if first == 0 {
		first = domain.Easy
	}

	switch first {
	case domain.Again:
		c.EaseFactor = math.Max(domain.MinEaseFactor, c.EaseFactor-easeDropSevere)
		c.Interval = max(domain.MinInterval, c.Interval/2)
		c.Difficulty += 2
		c.ConsecutiveEasy = 0

	case domain.Hard:
		c.EaseFactor = math.Max(domain.MinEaseFactor, c.EaseFactor-easeDropModerate)
		c.Interval = max(domain.MinInterval, int(float64(c.Interval)*0.7))
		c.Difficulty++
		c.ConsecutiveEasy = 0

	case domain.Good:
		c.EaseFactor = math.Max(domain.MinEaseFactor, c.EaseFactor-easeDropMild)
		c.Interval = max(domain.MinInterval, int(float64(c.Interval)*0.9))
		c.ConsecutiveEasy = 0

	case domain.Easy:
		// The growth multiplier uses the raised ease before clamping; only
		// the stored ease factor is capped.
		raised := c.EaseFactor + easeIncrease
		c.EaseFactor = math.Min(domain.MaxEaseFactor, raised)
		c.Difficulty = max(0, c.Difficulty-1)
		c.ConsecutiveEasy++
		backoff := math.Pow(backoffBase, float64(min(c.ConsecutiveEasy, backoffCap)))
		c.Interval = min(domain.MaxInterval, int(float64(c.Interval)*raised*backoff))
	}

	next := DateOf(today).AddDate(0, 0, c.Interval)
	c.NextReview = &next
	c.CompletedToday = true
	c.ClearSession()
	return c, nil
}
