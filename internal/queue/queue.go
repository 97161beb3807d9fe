// Package queue drives a review session: an ordered queue of card ids with
// the rating-keyed reinsertion policy, and the controller loop that applies
// ratings, persists after each one, and decides where an open card reappears.
package queue

import (
	"math/rand"
	"slices"

	"github.com/mherran/repaso/internal/domain"
)

// Reinsertion windows, as index ranges into the queue after the head has been
// removed. A fixed depth would let a large deck bury a struggling card for
// the rest of the session; a capped random window keeps re-exposure frequent
// without making the position predictable.
const (
	hardLow  = 10
	hardHigh = 25
	goodLow  = 20
	goodHigh = 40
)

// Queue is the ordered sequence of card ids awaiting review.
type Queue struct {
	ids []string
}

// New builds a queue preserving the order of cards.
func New(cards []domain.Card) *Queue {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return &Queue{ids: ids}
}

// Len returns the number of cards waiting.
func (q *Queue) Len() int {
	return len(q.ids)
}

// Pop removes and returns the head card id. ok is false when the queue is
// empty.
func (q *Queue) Pop() (id string, ok bool) {
	if len(q.ids) == 0 {
		return "", false
	}
	id = q.ids[0]
	q.ids = q.ids[1:]
	return id, true
}

// IDs returns a copy of the current order, front first.
func (q *Queue) IDs() []string {
	return slices.Clone(q.ids)
}

// Reinsert places a just-rated, still-open card back into the queue.
// Again goes to the front (shown again immediately), Hard lands at a random
// index in [min(10,n), min(25,n)], Good in [min(20,n), min(40,n)], where n is
// the queue length after the head was removed. Easy closed the card's session
// and is never reinserted.
func (q *Queue) Reinsert(id string, rating domain.Rating, rng *rand.Rand) {
	switch rating {
	case domain.Again:
		q.ids = slices.Insert(q.ids, 0, id)
	case domain.Hard:
		q.insertWindow(id, hardLow, hardHigh, rng)
	case domain.Good:
		q.insertWindow(id, goodLow, goodHigh, rng)
	}
}

func (q *Queue) insertWindow(id string, low, high int, rng *rand.Rand) {
	n := len(q.ids)
	lo := min(low, n)
	hi := min(high, n)
	if lo > hi {
		q.ids = append(q.ids, id)
		return
	}
	idx := lo
	if hi > lo {
		idx = lo + rng.Intn(hi-lo+1)
	}
	q.ids = slices.Insert(q.ids, idx, id)
}
