package scheduler

import (
	"testing"
	"time"

	"github.com/mherran/repaso/internal/domain"
)

func dateAt(days int) *time.Time {
	d := today.AddDate(0, 0, days)
	return &d
}

func TestDue(t *testing.T) {
	testCases := []struct {
		name string
		card domain.Card
		want bool
	}{
		{
			name: "never reviewed",
			card: domain.NewCard("c1", "t", "d"),
			want: true,
		},
		{
			name: "scheduled yesterday",
			card: domain.Card{ID: "c2", NextReview: dateAt(-1)},
			want: true,
		},
		{
			name: "scheduled today",
			card: domain.Card{ID: "c3", NextReview: dateAt(0)},
			want: true,
		},
		{
			name: "scheduled tomorrow",
			card: domain.Card{ID: "c4", NextReview: dateAt(1)},
			want: false,
		},
		{
			name: "mid-session card is not due",
			card: domain.Card{ID: "c5", FirstRating: domain.Again, SessionAttempts: 1},
			want: false,
		},
		{
			name: "completed today with future date",
			card: domain.Card{ID: "c6", CompletedToday: true, NextReview: dateAt(3)},
			want: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			due := Due([]domain.Card{tc.card}, today)
			got := len(due) == 1
			if got != tc.want {
				t.Errorf("Due(%s) = %v, want %v", tc.card.ID, got, tc.want)
			}
		})
	}
}

func TestActive(t *testing.T) {
	cards := []domain.Card{
		{ID: "open", FirstRating: domain.Good, SessionAttempts: 2},
		{ID: "fresh"},
		{ID: "done", CompletedToday: true},
	}
	active := Active(cards)
	if len(active) != 1 || active[0].ID != "open" {
		t.Fatalf("Active = %v, want just the open card", active)
	}
}

func TestClassifyNeverOverlaps(t *testing.T) {
	cards := []domain.Card{
		{ID: "open", FirstRating: domain.Again, SessionAttempts: 1}, // mid-session, overdue date would make it due too
		{ID: "due", NextReview: dateAt(-2)},
		{ID: "fresh"},
		{ID: "done", CompletedToday: true, NextReview: dateAt(5)},
	}
	cards[0].NextReview = dateAt(-1)

	active, due := Classify(cards, today)

	inActive := make(map[string]bool)
	for _, c := range active {
		inActive[c.ID] = true
	}
	for _, c := range due {
		if inActive[c.ID] {
			t.Errorf("card %s classified as both active and due", c.ID)
		}
	}
	if !inActive["open"] {
		t.Error("open card missing from active set")
	}
	if len(due) != 2 {
		t.Errorf("len(due) = %d, want 2 (due and fresh)", len(due))
	}
}
