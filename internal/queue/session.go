package queue

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mherran/repaso/internal/domain"
	"github.com/mherran/repaso/internal/scheduler"
)

// UI is the interactive surface a session drives. Present shows the card's
// term, waits for the reveal acknowledgment, and shows the definition.
// NextRating yields the user's rating, or ok=false on the quit signal.
type UI interface {
	Present(card domain.Card, remaining int) error
	NextRating() (rating domain.Rating, ok bool, err error)
	Completed(card domain.Card)
	Requeued(card domain.Card)
}

// SaveFunc persists the full card collection. It is called once after every
// applied rating, so a crash loses at most the in-flight rating.
type SaveFunc func(cards []domain.Card) error

// Stats summarizes a finished or cancelled session.
type Stats struct {
	Reviewed  int // ratings applied
	Completed int // cards closed with Easy
	Cancelled bool
}

// Session owns one review pass over a card collection. Construction runs the
// day-boundary reset, normalizes loaded state, and builds the prioritized
// queue; Run then drives the rating loop until the queue empties or the user
// quits.
type Session struct {
	cards []domain.Card
	index map[string]int // card id -> position in cards
	queue *Queue
	clock scheduler.Clock
	rng   *rand.Rand
	save  SaveFunc
}

// NewSession prepares a session over cards. lastSession is the date the deck
// was last reviewed (nil if never). rng positions reinsertions; pass a seeded
// source for reproducible runs.
func NewSession(cards []domain.Card, lastSession *time.Time, clock scheduler.Clock, rng *rand.Rand, save SaveFunc) *Session {
	for i := range cards {
		cards[i] = domain.Normalize(cards[i])
	}
	today := clock.Today()
	scheduler.ResetIfNewDay(cards, lastSession, today)

	active, due := scheduler.Classify(cards, today)
	ordered := scheduler.Prioritize(active, due)

	index := make(map[string]int, len(cards))
	for i, c := range cards {
		index[c.ID] = i
	}

	return &Session{
		cards: cards,
		index: index,
		queue: New(ordered),
		clock: clock,
		rng:   rng,
		save:  save,
	}
}

// Pending returns the number of cards waiting in the queue.
func (s *Session) Pending() int {
	return s.queue.Len()
}

// Cards returns the session's card collection, reflecting all applied ratings.
func (s *Session) Cards() []domain.Card {
	return s.cards
}

// Run drives rating cycles until the queue is empty or the user cancels.
// Each cycle pops the head card, presents it, applies the rating, persists
// the whole collection, and reinserts the card unless it completed.
// Cancellation abandons the remaining queue without mutating any card; state
// persisted by earlier cycles stands.
func (s *Session) Run(ui UI) (Stats, error) {
	var stats Stats
	for {
		id, ok := s.queue.Pop()
		if !ok {
			return stats, nil
		}
		i := s.index[id]

		if err := ui.Present(s.cards[i], s.queue.Len()+1); err != nil {
			return stats, err
		}

		rating, ok, err := ui.NextRating()
		if err != nil {
			return stats, err
		}
		if !ok {
			stats.Cancelled = true
			return stats, nil
		}

		updated, err := scheduler.Apply(s.cards[i], rating, s.clock.Today())
		if err != nil {
			return stats, err
		}
		s.cards[i] = updated
		stats.Reviewed++

		if err := s.save(s.cards); err != nil {
			return stats, fmt.Errorf("persisting after rating: %w", err)
		}

		if updated.CompletedToday {
			stats.Completed++
			ui.Completed(updated)
			continue
		}
		ui.Requeued(updated)
		s.queue.Reinsert(id, rating, s.rng)
	}
}
