package scheduler

import "time"

// Clock supplies the scheduler's notion of "today". Injectable so tests can
// pin the date.
type Clock interface {
	Today() time.Time
}

type systemClock struct{}

func (systemClock) Today() time.Time {
	return DateOf(time.Now())
}

// System returns a Clock backed by the wall clock.
func System() Clock {
	return systemClock{}
}

// DateOf truncates t to a calendar date in UTC. All scheduling comparisons
// operate on dates, never on instants.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}
