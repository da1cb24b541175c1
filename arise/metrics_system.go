package arise

import (
	"time"

	"go.uber.org/zap"
)

// metricsSystem implements the MetricsSystem interface.
type metricsSystem struct {
	arise Arise
}

func newMetricsSystem(a Arise) *metricsSystem {
	return &metricsSystem{arise: a}
}

func (s *metricsSystem) GetType() SystemType {
	return SystemTypeMetrics
}

func (s *metricsSystem) Recompute(state *State) {
	key := DayKey(s.arise.Clock().Now())

	objectives, quests, bosses := 0, 0, 0
	for _, q := range state.Quests {
		for _, o := range q.Objectives {
			if objectiveDoneForDay(o, key) {
				objectives++
			}
		}
		if questDoneForDay(q, key) {
			quests++
			if q.IsBoss {
				bosses++
			}
		}
	}
	state.Metrics.ObjectivesCompletedToday = objectives
	state.Metrics.QuestsCompletedToday = quests
	state.Metrics.BossCompletedCount = bosses
}

func (s *metricsSystem) OnQuestCompleted(state *State) []Event {
	today := DayKey(s.arise.Clock().Now())
	if state.Streaks.LastUpdateKey == today {
		return nil
	}
	state.Streaks.CurrentStreak++
	state.Streaks.LastUpdateKey = today
	return []Event{toastEvent("Daily streak extended")}
}

func (s *metricsSystem) RunSweep(state *State) []Event {
	now := s.arise.Clock().Now()
	today := DayKey(now)

	var events []Event
	if state.Metrics.LastStreakCheckKey != today {
		events = append(events, s.dayBoundary(state, now)...)
		state.Metrics.LastStreakCheckKey = today
		// The day rolled over, so yesterday's counters are stale now.
		s.Recompute(state)
	}

	if reset := s.arise.GetQuestsSystem().ResetRepeatables(state); reset > 0 {
		s.Recompute(state)
	}
	return events
}

// dayBoundary settles yesterday: the perfect-day streak and, when yesterday
// had no completions, the daily-completion streak.
func (s *metricsSystem) dayBoundary(state *State, now time.Time) []Event {
	yesterday := now.AddDate(0, 0, -1)
	yKey := DayKey(yesterday)
	yWeekday := Weekday(yesterday)
	today := DayKey(now)

	var events []Event

	actives, perfect := 0, true
	for _, q := range state.Quests {
		if q.Archived || !questActiveOnWeekday(q, yWeekday) {
			continue
		}
		actives++
		if !questObjectivesAllDone(q, yKey) {
			perfect = false
		}
	}
	switch {
	case actives == 0:
		// No active quests yesterday: streak untouched.
	case perfect:
		state.Metrics.PerfectDayStreak++
		events = append(events, toastEvent("Perfect day!"))
	default:
		state.Metrics.PerfectDayStreak = 0
	}

	if s.completionsForDay(state, yKey) == 0 && state.Streaks.LastUpdateKey != today {
		if state.Streaks.CurrentStreak > 0 {
			s.arise.Logger().Info("daily streak broken",
				zap.Int("streak", state.Streaks.CurrentStreak))
		}
		state.Streaks.CurrentStreak = 0
	}

	return events
}

func (s *metricsSystem) completionsForDay(state *State, key string) int {
	count := 0
	for _, q := range state.Quests {
		if questDoneForDay(q, key) {
			count++
		}
	}
	return count
}
