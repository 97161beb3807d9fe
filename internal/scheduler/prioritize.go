package scheduler

import (
	"sort"

	"github.com/mherran/repaso/internal/domain"
)

// Prioritize produces the review order: every active card precedes every due
// card.
//
// Active cards sort by attempts descending then difficulty descending, so the
// most-retried, most-struggled card surfaces first. Due cards sort by
// difficulty descending then scheduled date ascending, with never-reviewed
// cards ahead of any dated card. Both sorts are stable, so identical inputs
// always produce the same order.
func Prioritize(active, due []domain.Card) []domain.Card {
	act := make([]domain.Card, len(active))
	copy(act, active)
	sort.SliceStable(act, func(i, j int) bool {
		a, b := act[i], act[j]
		if a.SessionAttempts != b.SessionAttempts {
			return a.SessionAttempts > b.SessionAttempts
		}
		return a.Difficulty > b.Difficulty
	})

	d := make([]domain.Card, len(due))
	copy(d, due)
	sort.SliceStable(d, func(i, j int) bool {
		a, b := d[i], d[j]
		if a.Difficulty != b.Difficulty {
			return a.Difficulty > b.Difficulty
		}
		// nil NextReview sorts as the earliest possible date.
		if (a.NextReview == nil) != (b.NextReview == nil) {
			return a.NextReview == nil
		}
		if a.NextReview == nil {
			return false
		}
		return a.NextReview.Before(*b.NextReview)
	})

	return append(act, d...)
}
