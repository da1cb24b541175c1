package arise

import "time"

// Clock supplies wall-clock time to the systems. Production uses the real
// clock; tests pin it so day boundaries and booster expiry are assertable.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewRealClock returns a Clock backed by time.Now.
func NewRealClock() Clock { return realClock{} }

// DayKey derives the calendar-day identifier ("2006-01-02", local time) that
// scopes daily completion, metrics and resets.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Weekday reports the day of week as 0=Sunday .. 6=Saturday, the encoding
// quests store in their active-day sets.
func Weekday(t time.Time) int {
	return int(t.Weekday())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
