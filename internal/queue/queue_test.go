package queue

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/mherran/repaso/internal/domain"
)

func cardsN(n int) []domain.Card {
	cards := make([]domain.Card, n)
	for i := range cards {
		cards[i] = domain.NewCard(fmt.Sprintf("c%02d", i), "t", "d")
	}
	return cards
}

func TestQueuePopsInOrder(t *testing.T) {
	q := New(cardsN(3))
	for _, want := range []string{"c00", "c01", "c02"} {
		id, ok := q.Pop()
		if !ok || id != want {
			t.Fatalf("Pop = %q/%v, want %q", id, ok, want)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("Pop on an empty queue reported ok")
	}
}

func TestReinsertAgainGoesToFront(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	q := New(cardsN(30))
	id, _ := q.Pop()

	q.Reinsert(id, domain.Again, rng)
	if got := q.IDs()[0]; got != id {
		t.Errorf("front = %q, want %q", got, id)
	}
	if q.Len() != 30 {
		t.Errorf("Len = %d, want 30", q.Len())
	}
}

func TestReinsertEasyRemovesCard(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	q := New(cardsN(10))
	id, _ := q.Pop()

	q.Reinsert(id, domain.Easy, rng)
	if slices.Contains(q.IDs(), id) {
		t.Errorf("card %q still present after an Easy rating", id)
	}
	if q.Len() != 9 {
		t.Errorf("Len = %d, want 9", q.Len())
	}
}

func TestReinsertWindows(t *testing.T) {
	testCases := []struct {
		name   string
		rating domain.Rating
		size   int // queue size before the head is popped
		lo, hi int // expected index bounds after removal
	}{
		{"hard in a large queue", domain.Hard, 61, 10, 25},
		{"good in a large queue", domain.Good, 61, 20, 40},
		{"hard clamped by queue size", domain.Hard, 16, 10, 15},
		{"good clamped by queue size", domain.Good, 16, 15, 15},
		{"hard in a tiny queue", domain.Hard, 4, 3, 3},
		{"good in a tiny queue", domain.Good, 4, 3, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			seenLo, seenHi := tc.hi+1, -1
			for trial := 0; trial < 200; trial++ {
				q := New(cardsN(tc.size))
				id, _ := q.Pop()
				q.Reinsert(id, tc.rating, rng)

				idx := slices.Index(q.IDs(), id)
				if idx < tc.lo || idx > tc.hi {
					t.Fatalf("trial %d: index %d outside [%d, %d]", trial, idx, tc.lo, tc.hi)
				}
				seenLo = min(seenLo, idx)
				seenHi = max(seenHi, idx)
			}
			// Over 200 trials the window edges should both be hit.
			if seenLo != tc.lo || seenHi != tc.hi {
				t.Errorf("observed range [%d, %d], want [%d, %d]", seenLo, seenHi, tc.lo, tc.hi)
			}
		})
	}
}

func TestReinsertIntoEmptyQueue(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	q := New(cardsN(1))
	id, _ := q.Pop()

	q.Reinsert(id, domain.Good, rng)
	if got := q.IDs(); len(got) != 1 || got[0] != id {
		t.Errorf("queue = %v, want just %q", got, id)
	}
}
