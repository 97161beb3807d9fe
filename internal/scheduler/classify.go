package scheduler

import (
	"time"

	"github.com/mherran/repaso/internal/domain"
)

// Active returns the cards currently mid-session: shown at least once today
// and not yet closed with an Easy rating.
func Active(cards []domain.Card) []domain.Card {
	var active []domain.Card
	for _, c := range cards {
		if c.InSession() {
			active = append(active, c)
		}
	}
	return active
}

// Due returns the cards eligible to start a fresh session today: never
// reviewed, or scheduled on or before today. Cards that are mid-session are
// excluded so the same card never reaches the queue through both lists, and
// cards already completed today with a future review date belong to neither.
func Due(cards []domain.Card, today time.Time) []domain.Card {
	day := DateOf(today)
	var due []domain.Card
	for _, c := range cards {
		if c.InSession() {
			continue
		}
		if c.NextReview == nil || !DateOf(*c.NextReview).After(day) {
			due = append(due, c)
		}
	}
	return due
}

// Classify splits cards into the active and due sets for queue building.
func Classify(cards []domain.Card, today time.Time) (active, due []domain.Card) {
	return Active(cards), Due(cards, today)
}
