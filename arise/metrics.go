package arise

// MetricsSystem maintains the per-day counters and the multi-day streaks,
// and runs the once-per-day boundary sweep.
type MetricsSystem interface {
	System

	// Recompute rebuilds today's counters from the full quest list. A full
	// scan, so counters never drift.
	Recompute(state *State)

	// OnQuestCompleted bumps the daily-completion streak on the first quest
	// completion of the day; further completions the same day are no-ops.
	OnQuestCompleted(state *State) []Event

	// RunSweep performs the day-boundary transitions exactly once per day
	// (perfect-day streak, daily-streak reset) plus the repeatable-quest
	// reset check on every run. Intended to run hourly and once at load.
	RunSweep(state *State) []Event
}
