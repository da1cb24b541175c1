package arise

import (
	"strings"
	"time"
)

// QuestsSystem owns quest and objective entities, note-based completion, EXP
// pending accumulation, completion detection and repeatable-quest resets.
//
// Missing quest or objective ids are treated as already-resolved no-ops, not
// errors.
type QuestsSystem interface {
	System

	// AddQuest creates a quest with all counters zeroed and prepends it to
	// the quest list.
	AddQuest(state *State, title, rank, questType, rarity string, isBoss, isRepeatable bool, activeDays []int) (*Quest, error)
	EditQuest(state *State, questID, title string) error
	SetQuestRank(state *State, questID, rank string) error
	RemoveQuest(state *State, questID string)

	AddObjective(state *State, questID, title string) (*Objective, error)
	EditObjective(state *State, questID, objectiveID, title string) error
	RemoveObjective(state *State, questID, objectiveID string)

	// SetObjectiveNote writes today's note for an objective, accumulates the
	// EXP delta of the edit and runs the completion transition when the
	// quest flips to done. This is the single mutation point that can
	// complete a quest.
	SetObjectiveNote(state *State, questID, objectiveID, note string) ([]Event, error)

	// ArchiveQuest archives a non-repeatable quest; repeatable quests cannot
	// be archived and the call is a no-op.
	ArchiveQuest(state *State, questID string)
	UnarchiveQuest(state *State, questID string)
	UnarchiveAll(state *State)

	// ResetRepeatables re-opens repeatable quests that were completed on a
	// prior day and are active today. Returns how many were reset.
	ResetRepeatables(state *State) int
}

// objectiveDoneForDay reports completion of one objective for a day key.
// Per-day notes are authoritative; the legacy single-note field only counts
// while no per-day entry exists for that key.
func objectiveDoneForDay(o *Objective, key string) bool {
	if note, ok := o.DailyNotes[key]; ok {
		return strings.TrimSpace(note) != ""
	}
	return strings.TrimSpace(o.Note) != ""
}

// questDoneForDay reports whether the quest is done for the day: at least
// one objective, and every objective done. Quests with zero objectives are
// never done.
func questDoneForDay(q *Quest, key string) bool {
	if len(q.Objectives) == 0 {
		return false
	}
	return questObjectivesAllDone(q, key)
}

// questObjectivesAllDone is the vacuous variant used by perfect-day
// evaluation: a quest without objectives does not break a perfect day.
func questObjectivesAllDone(q *Quest, key string) bool {
	for _, o := range q.Objectives {
		if !objectiveDoneForDay(o, key) {
			return false
		}
	}
	return true
}

// questActiveOnWeekday reports whether the quest is active on the weekday
// (0=Sunday). Non-repeatable quests are always active.
func questActiveOnWeekday(q *Quest, weekday int) bool {
	if !q.IsRepeatable || len(q.ActiveDays) == 0 {
		return true
	}
	for _, d := range q.ActiveDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// canCompleteToday reports whether a completion transition is allowed now.
// Repeatable quests complete at most once per day and only on active days.
func canCompleteToday(q *Quest, now time.Time) bool {
	if !q.IsRepeatable {
		return true
	}
	if !questActiveOnWeekday(q, Weekday(now)) {
		return false
	}
	if q.LastCompleted != nil && sameDay(*q.LastCompleted, now) {
		return false
	}
	return true
}

// shouldResetRepeatable reports whether the sweep must re-open the quest.
func shouldResetRepeatable(q *Quest, now time.Time) bool {
	return q.IsRepeatable && q.ExpAwarded && canCompleteToday(q, now)
}

// allActiveQuestsDone evaluates a live perfect day for "now": at least one
// active quest, and all of them fully done on today's key.
func allActiveQuestsDone(state *State, now time.Time) bool {
	key := DayKey(now)
	weekday := Weekday(now)
	actives := 0
	for _, q := range state.Quests {
		if q.Archived || !questActiveOnWeekday(q, weekday) {
			continue
		}
		actives++
		if !questObjectivesAllDone(q, key) {
			return false
		}
	}
	return actives > 0
}

// expBoosterMultiplier returns the active EXP booster factor, or 1.
func expBoosterMultiplier(state *State, now time.Time) float64 {
	if b, ok := state.Boosters["exp"]; ok && b.ActiveAt(now) && b.Multiplier > 0 {
		return b.Multiplier
	}
	return 1.0
}

// essenceBoosterMultiplier returns the active essence booster factor, or 1.
func essenceBoosterMultiplier(state *State, now time.Time) float64 {
	if b, ok := state.Boosters["essence"]; ok && b.ActiveAt(now) && b.Multiplier > 0 {
		return b.Multiplier
	}
	return 1.0
}
