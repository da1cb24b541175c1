package arise

import "go.uber.org/zap"

// achievementsSystem implements the AchievementsSystem interface.
type achievementsSystem struct {
	arise Arise
}

func newAchievementsSystem(a Arise) *achievementsSystem {
	return &achievementsSystem{arise: a}
}

func (s *achievementsSystem) GetType() SystemType {
	return SystemTypeAchievements
}

func (s *achievementsSystem) EvaluateGlobal(state *State) []Event {
	ctx := &ConditionContext{State: state, Now: s.arise.Clock().Now()}
	economy := s.arise.GetEconomySystem()

	var events []Event
	for _, def := range s.arise.Catalog().GlobalAchievements {
		// Unlocked ids are permanent; a condition that re-evaluates true on
		// a later day must not re-queue.
		if state.HasUnlocked(def.ID) {
			continue
		}
		if !def.Condition(ctx) {
			continue
		}

		state.AchievementsUnlocked = append(state.AchievementsUnlocked, def.ID)
		entry := economy.Enqueue(state, "achievement_global", def.ID, "", def.Title, def.Desc, def.Reward)
		s.arise.Logger().Info("global achievement unlocked", zap.String("id", def.ID))
		events = append(events,
			Event{Type: EventAchievementUnlocked, AchievementID: def.ID, Message: def.Title},
			Event{Type: EventRewardQueued, QueueID: entry.ID, AchievementID: def.ID, Reward: &entry.Reward},
		)
	}
	return events
}

func (s *achievementsSystem) EvaluateQuest(state *State, q *Quest, meta QuestCompletionMeta) []Event {
	economy := s.arise.GetEconomySystem()

	var events []Event
	for _, def := range s.arise.Catalog().QuestAchievements {
		if q.hasAchievement(def.ID) {
			continue
		}
		if !def.Condition(q, meta) {
			continue
		}

		q.Achievements = append(q.Achievements, def.ID)
		entry := economy.Enqueue(state, "achievement_quest", def.ID, q.ID, def.Title, def.Desc, def.Reward)
		s.arise.Logger().Info("quest achievement unlocked",
			zap.String("id", def.ID), zap.String("quest_id", q.ID))
		events = append(events,
			Event{Type: EventAchievementUnlocked, AchievementID: def.ID, QuestID: q.ID, Message: def.Title},
			Event{Type: EventRewardQueued, QueueID: entry.ID, AchievementID: def.ID, QuestID: q.ID, Reward: &entry.Reward},
		)
	}
	return events
}
