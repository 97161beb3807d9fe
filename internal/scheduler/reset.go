package scheduler

import (
	"time"

	"github.com/mherran/repaso/internal/domain"
)

// ResetIfNewDay clears per-day state in place when the calendar day has
// rolled over since the last session. It is a no-op when lastSession falls on
// today. Otherwise every card loses its completed-today mark and its session
// fields, so a card closed yesterday becomes eligible again the moment its
// review date arrives, and no mid-session state leaks across days.
//
// A nil lastSession means no session has ever been recorded and counts as a
// new day. The function reports whether a reset happened.
func ResetIfNewDay(cards []domain.Card, lastSession *time.Time, today time.Time) bool {
	if lastSession != nil && SameDay(*lastSession, today) {
		return false
	}
	for i := range cards {
		cards[i].CompletedToday = false
		cards[i].ClearSession()
	}
	return true
}
