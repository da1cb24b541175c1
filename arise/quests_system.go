package arise

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// questsSystem implements the QuestsSystem interface.
type questsSystem struct {
	arise Arise
}

func newQuestsSystem(a Arise) *questsSystem {
	return &questsSystem{arise: a}
}

func (s *questsSystem) GetType() SystemType {
	return SystemTypeQuests
}

func (s *questsSystem) AddQuest(state *State, title, rank, questType, rarity string, isBoss, isRepeatable bool, activeDays []int) (*Quest, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrQuestTitleRequired
	}
	if rank == "" {
		rank = "C"
	}
	if !ValidRank(rank) {
		return nil, ErrUnknownRank
	}
	if questType == "" {
		questType = "hunt"
	}
	if rarity == "" {
		rarity = "rare"
	}
	if isRepeatable && len(activeDays) == 0 {
		return nil, ErrActiveDaysRequired
	}

	now := s.arise.Clock().Now()
	q := &Quest{
		ID:           "q_" + uuid.NewString(),
		Title:        title,
		Rank:         rank,
		Type:         questType,
		Rarity:       rarity,
		IsBoss:       isBoss,
		IsRepeatable: isRepeatable,
		ActiveDays:   activeDays,
		Objectives:   make([]*Objective, 0),
		Achievements: make([]string, 0),
		StartTime:    now,
	}

	// New quests go to the front of the list.
	state.Quests = append([]*Quest{q}, state.Quests...)
	return q, nil
}

func (s *questsSystem) EditQuest(state *State, questID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrQuestTitleRequired
	}
	if q := state.FindQuest(questID); q != nil {
		q.Title = title
	}
	return nil
}

func (s *questsSystem) SetQuestRank(state *State, questID, rank string) error {
	if !ValidRank(rank) {
		return ErrUnknownRank
	}
	if q := state.FindQuest(questID); q != nil {
		q.Rank = rank
	}
	return nil
}

func (s *questsSystem) RemoveQuest(state *State, questID string) {
	for i, q := range state.Quests {
		if q.ID == questID {
			state.Quests = append(state.Quests[:i], state.Quests[i+1:]...)
			return
		}
	}
}

func (s *questsSystem) AddObjective(state *State, questID, title string) (*Objective, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrObjectiveTitleRequired
	}
	q := state.FindQuest(questID)
	if q == nil {
		return nil, nil
	}
	o := &Objective{
		ID:         "o_" + uuid.NewString(),
		Title:      title,
		DailyNotes: make(map[string]string),
	}
	q.Objectives = append(q.Objectives, o)
	return o, nil
}

func (s *questsSystem) EditObjective(state *State, questID, objectiveID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrObjectiveTitleRequired
	}
	if q := state.FindQuest(questID); q != nil {
		if o := q.FindObjective(objectiveID); o != nil {
			o.Title = title
		}
	}
	return nil
}

func (s *questsSystem) RemoveObjective(state *State, questID, objectiveID string) {
	q := state.FindQuest(questID)
	if q == nil {
		return
	}
	for i, o := range q.Objectives {
		if o.ID == objectiveID {
			q.Objectives = append(q.Objectives[:i], q.Objectives[i+1:]...)
			return
		}
	}
}

func (s *questsSystem) SetObjectiveNote(state *State, questID, objectiveID, note string) ([]Event, error) {
	q := state.FindQuest(questID)
	if q == nil {
		return nil, nil
	}
	o := q.FindObjective(objectiveID)
	if o == nil {
		return nil, nil
	}

	now := s.arise.Clock().Now()
	key := DayKey(now)
	wasDone := questDoneForDay(q, key)

	prev, hadEntry := o.DailyNotes[key]
	if !hadEntry {
		prev = o.Note
	}
	if hadEntry && strings.TrimSpace(prev) != "" {
		q.EditCount++
	}

	if o.DailyNotes == nil {
		o.DailyNotes = make(map[string]string)
	}
	o.DailyNotes[key] = note
	q.ExpPending += s.expGainForEdit(state, q, len(note)-len(prev), now)

	metrics := s.arise.GetMetricsSystem()
	metrics.Recompute(state)

	events := make([]Event, 0, 2)
	if !wasDone && questDoneForDay(q, key) && !q.ExpAwarded && canCompleteToday(q, now) {
		events = append(events, s.completeQuest(state, q)...)
	}
	events = append(events, s.arise.GetAchievementsSystem().EvaluateGlobal(state)...)
	return events, nil
}

// expGainForEdit converts the character delta of one edit into pending EXP:
// floor(delta/4) scaled by rank, rarity and boss multipliers, clamped to
// maxExpPerEdit pre-booster, then scaled by the active EXP booster.
func (s *questsSystem) expGainForEdit(state *State, q *Quest, deltaChars int, now time.Time) int {
	if deltaChars < 0 {
		deltaChars = 0
	}
	base := deltaChars / 4
	mult := RankMultiplier(q.Rank) * RarityMultiplier(q.Rarity)
	if q.IsBoss {
		mult *= bossMultiplier
	}
	gainedBase := int(math.Round(float64(base) * mult))
	if gainedBase < 0 {
		gainedBase = 0
	}
	if gainedBase > maxExpPerEdit {
		gainedBase = maxExpPerEdit
	}
	return int(math.Round(float64(gainedBase) * expBoosterMultiplier(state, now)))
}

// completeQuest runs the not-done to done transition: award pending EXP plus
// the completion bonus, queue the completion reward, bump the daily streak
// and evaluate per-quest achievements.
func (s *questsSystem) completeQuest(state *State, q *Quest) []Event {
	now := s.arise.Clock().Now()

	award := int(math.Round(float64(q.ExpPending+completionBonusExp) * expBoosterMultiplier(state, now)))
	q.ExpPending = 0
	q.ExpAwarded = true
	completedAt := now
	q.LastCompleted = &completedAt

	economy := s.arise.GetEconomySystem()
	entry := economy.Enqueue(state, "quest_complete", "", q.ID, q.Title, "Quest completed",
		Reward{Exp: award, Essence: EssenceByRank[q.Rank]})

	events := []Event{{
		Type:    EventRewardQueued,
		QueueID: entry.ID,
		QuestID: q.ID,
		Message: q.Title,
		Reward:  &entry.Reward,
	}}

	events = append(events, s.arise.GetMetricsSystem().OnQuestCompleted(state)...)

	meta := QuestCompletionMeta{
		CompletedAt: now,
		Elapsed:     now.Sub(q.StartTime),
		EditCount:   q.EditCount,
	}
	events = append(events, s.arise.GetAchievementsSystem().EvaluateQuest(state, q, meta)...)
	return events
}

func (s *questsSystem) ArchiveQuest(state *State, questID string) {
	if q := state.FindQuest(questID); q != nil && !q.IsRepeatable {
		q.Archived = true
	}
}

func (s *questsSystem) UnarchiveQuest(state *State, questID string) {
	if q := state.FindQuest(questID); q != nil {
		q.Archived = false
	}
}

func (s *questsSystem) UnarchiveAll(state *State) {
	for _, q := range state.Quests {
		q.Archived = false
	}
}

func (s *questsSystem) ResetRepeatables(state *State) int {
	now := s.arise.Clock().Now()
	reset := 0
	for _, q := range state.Quests {
		if !shouldResetRepeatable(q, now) {
			continue
		}
		// Historical notes stay; only the completion cycle re-opens.
		q.ExpPending = 0
		q.ExpAwarded = false
		q.LastCompleted = nil
		reset++
	}
	if reset > 0 {
		s.arise.Logger().Debug("repeatable quests reset", zap.Int("count", reset))
	}
	return reset
}
