package arise

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateGlobal_UnlocksOnceAndQueues(t *testing.T) {
	hub := newTestHub(t, &fakeClock{now: testDay}, nil)
	state := NewState()
	achievements := hub.GetAchievementsSystem()

	state.Metrics.QuestsCompletedToday = 1
	events := achievements.EvaluateGlobal(state)

	assert.True(t, state.HasUnlocked("quest_1_day"))
	unlocked := eventOfType(events, EventAchievementUnlocked)
	require.NotNil(t, unlocked)
	assert.Equal(t, "quest_1_day", unlocked.AchievementID)

	entry := findQueueEntryByType(state, "achievement_global")
	require.NotNil(t, entry)
	assert.Equal(t, "quest_1_day", entry.AchievementID)

	// Re-evaluation of an already-unlocked achievement is silent.
	events = achievements.EvaluateGlobal(state)
	assert.Nil(t, eventOfType(events, EventAchievementUnlocked))
	assert.Len(t, state.RewardsQueue, 1)
}

func TestEvaluateGlobal_DayCleanDoesNotRequeueNextDay(t *testing.T) {
	clock := &fakeClock{now: testDay}
	hub := newTestHub(t, clock, nil)
	state := NewState()
	quests := hub.GetQuestsSystem()

	q, o := addQuestWithObjective(t, hub, state, "Only quest", "C", "rare", false)
	_, err := quests.SetObjectiveNote(state, q.ID, o.ID, "everything done")
	require.NoError(t, err)
	require.True(t, state.HasUnlocked("day_clean"))

	// Next day the condition turns true again once everything is done, but
	// the unlock is permanent and must not re-queue.
	clock.NextDay()
	before := len(state.RewardsQueue)
	_, err = quests.SetObjectiveNote(state, q.ID, o.ID, "done again today")
	require.NoError(t, err)
	q2, o2 := addQuestWithObjective(t, hub, state, "New day quest", "C", "rare", false)
	_, err = quests.SetObjectiveNote(state, q2.ID, o2.ID, "done again")
	require.NoError(t, err)

	for _, entry := range state.RewardsQueue[before:] {
		assert.NotEqual(t, "day_clean", entry.AchievementID)
	}
}

func TestEvaluateGlobal_MonarchFragmentsRequireFullSet(t *testing.T) {
	hub := newTestHub(t, &fakeClock{now: testDay}, nil)
	state := NewState()
	achievements := hub.GetAchievementsSystem()
	economy := hub.GetEconomySystem()

	for _, fragmentID := range FragmentSet[:4] {
		economy.GrantReward(state, Reward{Items: []RewardItem{{ID: fragmentID, Qty: 1}}}, "chest")
	}
	achievements.EvaluateGlobal(state)
	assert.False(t, state.HasUnlocked(MonarchFragmentsAchievementID))

	economy.GrantReward(state, Reward{Items: []RewardItem{{ID: FragmentSet[4], Qty: 1}}}, "chest")
	achievements.EvaluateGlobal(state)
	assert.True(t, state.HasUnlocked(MonarchFragmentsAchievementID))
}

func TestEvaluateQuest_RankAndRarityConditions(t *testing.T) {
	hub := newTestHub(t, &fakeClock{now: testDay}, nil)
	state := NewState()
	quests := hub.GetQuestsSystem()

	q, o := addQuestWithObjective(t, hub, state, "The big one", "S", "legendary", true)
	_, err := quests.SetObjectiveNote(state, q.ID, o.ID, "finished")
	require.NoError(t, err)

	assert.True(t, q.hasAchievement("quest_rank_s_champion"))
	assert.True(t, q.hasAchievement("quest_legendary_master"))
	assert.True(t, q.hasAchievement("quest_epic_boss"))
	assert.True(t, q.hasAchievement("quest_perfectionist"))
	assert.False(t, q.hasAchievement("quest_marathon"))
}

func TestEvaluateQuest_PerfectionistNeedsZeroEdits(t *testing.T) {
	hub := newTestHub(t, &fakeClock{now: testDay}, nil)
	state := NewState()
	quests := hub.GetQuestsSystem()

	q, err := quests.AddQuest(state, "Edited", "C", "hunt", "rare", false, false, nil)
	require.NoError(t, err)
	o1, err := quests.AddObjective(state, q.ID, "a")
	require.NoError(t, err)
	o2, err := quests.AddObjective(state, q.ID, "b")
	require.NoError(t, err)

	_, err = quests.SetObjectiveNote(state, q.ID, o1.ID, "draft")
	require.NoError(t, err)
	_, err = quests.SetObjectiveNote(state, q.ID, o1.ID, "revised")
	require.NoError(t, err)
	_, err = quests.SetObjectiveNote(state, q.ID, o2.ID, "done")
	require.NoError(t, err)

	assert.True(t, q.ExpAwarded)
	assert.False(t, q.hasAchievement("quest_perfectionist"))
}

func TestEvaluateQuest_NightOwl(t *testing.T) {
	night := time.Date(2025, 6, 4, 23, 30, 0, 0, time.UTC)
	hub := newTestHub(t, &fakeClock{now: night}, nil)
	state := NewState()
	quests := hub.GetQuestsSystem()

	q, o := addQuestWithObjective(t, hub, state, "Midnight grind", "C", "rare", false)
	_, err := quests.SetObjectiveNote(state, q.ID, o.ID, "late session")
	require.NoError(t, err)

	assert.True(t, q.hasAchievement("quest_night_owl"))
	assert.False(t, q.hasAchievement("quest_early_bird"))
}

func TestEvaluateQuest_SpeedDemon(t *testing.T) {
	clock := &fakeClock{now: testDay}
	hub := newTestHub(t, clock, nil)
	state := NewState()
	quests := hub.GetQuestsSystem()

	q, o := addQuestWithObjective(t, hub, state, "Sprint", "C", "rare", false)
	clock.Advance(2 * time.Minute)
	_, err := quests.SetObjectiveNote(state, q.ID, o.ID, "fast")
	require.NoError(t, err)
	assert.True(t, q.hasAchievement("quest_speed_demon"))

	slow, so := addQuestWithObjective(t, hub, state, "Stroll", "C", "rare", false)
	clock.Advance(6 * time.Minute)
	_, err = quests.SetObjectiveNote(state, slow.ID, so.ID, "eventually")
	require.NoError(t, err)
	assert.False(t, slow.hasAchievement("quest_speed_demon"))
}
