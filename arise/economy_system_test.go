package arise

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaim_GrantsAndIsIdempotent(t *testing.T) {
	hub := newTestHub(t, &fakeClock{now: testDay}, nil)
	state := NewState()
	economy := hub.GetEconomySystem()

	entry := economy.Enqueue(state, "quest_complete", "", "q1", "Morning run", "Quest completed",
		Reward{Exp: 75, Essence: 21})

	events := economy.Claim(state, entry.ID)
	assert.Equal(t, 75, state.Exp)
	assert.Equal(t, 21, state.Wallet.Essence)
	assert.Empty(t, state.RewardsQueue)
	require.NotNil(t, eventOfType(events, EventToast))

	// A second claim of the same id is a silent no-op.
	events = economy.Claim(state, entry.ID)
	assert.Nil(t, events)
	assert.Equal(t, 75, state.Exp)
	assert.Equal(t, 21, state.Wallet.Essence)
}

func TestClaim_EssenceBoosterAppliesAtClaimTime(t *testing.T) {
	clock := &fakeClock{now: testDay}
	hub := newTestHub(t, clock, nil)
	state := NewState()
	economy := hub.GetEconomySystem()

	entry := economy.Enqueue(state, "quest_complete", "", "q1", "Run", "",
		Reward{Essence: 21})
	state.Boosters["essence"] = Booster{Multiplier: 1.5, ActiveUntil: clock.Now().Add(30 * time.Minute)}

	economy.Claim(state, entry.ID)
	// round(21 * 1.5) = 32
	assert.Equal(t, 32, state.Wallet.Essence)
}

func TestGrantReward_UniqueItemsNeverDuplicate(t *testing.T) {
	hub := newTestHub(t, &fakeClock{now: testDay}, nil)
	state := NewState()
	economy := hub.GetEconomySystem()

	reward := Reward{Items: []RewardItem{{ID: "fragment_shadow", Qty: 1}}}
	economy.GrantReward(state, reward, "reward")
	economy.GrantReward(state, reward, "reward")
	assert.Equal(t, 1, countInventory(state, "fragment_shadow"))

	// Non-unique consumables stack.
	ghost := Reward{Items: []RewardItem{{ID: GhostNoteItemID, Qty: 2}}}
	economy.GrantReward(state, ghost, "chest")
	assert.Equal(t, 2, countInventory(state, GhostNoteItemID))
}

func TestClaim_ChestRewardSuppressesToast(t *testing.T) {
	hub := newTestHub(t, &fakeClock{now: testDay}, nil)
	state := NewState()
	economy := hub.GetEconomySystem()

	entry := economy.Enqueue(state, "achievement_global", "quest_1_day", "", "First Step", "",
		Reward{Items: []RewardItem{{ID: "chest_small", Qty: 1}}})

	events := economy.Claim(state, entry.ID)
	require.NotNil(t, eventOfType(events, EventChestRequested))
	assert.Nil(t, eventOfType(events, EventToast))
	assert.Equal(t, 1, countInventory(state, "chest_small"))
}

func TestClaim_MonarchFragmentsUnlockDominion(t *testing.T) {
	hub := newTestHub(t, &fakeClock{now: testDay}, nil)
	state := NewState()
	economy := hub.GetEconomySystem()

	for _, fragmentID := range FragmentSet {
		economy.GrantReward(state, Reward{Items: []RewardItem{{ID: fragmentID, Qty: 1}}}, "chest")
	}

	entry := economy.Enqueue(state, "achievement_global", MonarchFragmentsAchievementID, "",
		"Lord of the Void", "", Reward{Exp: 100, Essence: 25})

	economy.Claim(state, entry.ID)
	assert.Equal(t, DominionTheme, state.Theme)
	for _, fragmentID := range FragmentSet {
		assert.Equal(t, 0, countInventory(state, fragmentID), fragmentID)
	}
}

func TestClaimAll_AggregatesInOrder(t *testing.T) {
	hub := newTestHub(t, &fakeClock{now: testDay}, nil)
	state := NewState()
	economy := hub.GetEconomySystem()

	economy.Enqueue(state, "quest_complete", "", "q1", "First", "", Reward{Exp: 75, Essence: 21})
	economy.Enqueue(state, "quest_complete", "", "q2", "Second", "", Reward{Exp: 60, Essence: 11})
	economy.Enqueue(state, "achievement_global", "day_clean", "", "Perfect Day", "", Reward{Exp: 50, Essence: 10})

	events := economy.ClaimAll(state)

	assert.Empty(t, state.RewardsQueue)
	assert.Equal(t, 185, state.Exp)
	assert.Equal(t, 42, state.Wallet.Essence)

	// Per-claim toasts collapse into one summary.
	assert.Nil(t, eventOfType(events, EventToast))
	summary := eventOfType(events, EventClaimSummary)
	require.NotNil(t, summary)
	require.NotNil(t, summary.Reward)
	assert.Equal(t, 185, summary.Reward.Exp)
	assert.Equal(t, 42, summary.Reward.Essence)
}

func TestClaimAll_SummaryReportsAppliedAmounts(t *testing.T) {
	clock := &fakeClock{now: testDay}
	hub := newTestHub(t, clock, nil)
	state := NewState()
	economy := hub.GetEconomySystem()

	// Two queued copies of a unique fragment: dedup drops the second.
	fragment := Reward{Items: []RewardItem{{ID: "fragment_shadow", Qty: 1}}}
	economy.Enqueue(state, "achievement_global", "trifecta", "", "First copy", "", fragment)
	economy.Enqueue(state, "achievement_global", "trifecta", "", "Second copy", "", fragment)
	economy.Enqueue(state, "quest_complete", "", "q1", "Run", "", Reward{Essence: 20})
	state.Boosters["essence"] = Booster{Multiplier: 1.5, ActiveUntil: clock.Now().Add(30 * time.Minute)}

	events := economy.ClaimAll(state)
	summary := eventOfType(events, EventClaimSummary)
	require.NotNil(t, summary)
	require.NotNil(t, summary.Reward)

	// round(20 * 1.5) = 30 essence actually landed, and one fragment.
	assert.Equal(t, 30, state.Wallet.Essence)
	assert.Equal(t, 30, summary.Reward.Essence)
	assert.Equal(t, state.Exp, summary.Reward.Exp)
	require.Len(t, summary.Reward.Items, 1)
	assert.Equal(t, "fragment_shadow", summary.Reward.Items[0].ID)
}

func TestClaimAll_EmptyQueue(t *testing.T) {
	hub := newTestHub(t, &fakeClock{now: testDay}, nil)
	state := NewState()

	events := hub.GetEconomySystem().ClaimAll(state)
	assert.Nil(t, events)
}

func TestUseItem_GhostNoteFillsObjective(t *testing.T) {
	hub := newTestHub(t, &fakeClock{now: testDay}, nil)
	state := NewState()
	economy := hub.GetEconomySystem()

	q, o := addQuestWithObjective(t, hub, state, "Haunted", "C", "rare", false)
	economy.GrantReward(state, Reward{Items: []RewardItem{{ID: GhostNoteItemID, Qty: 1}}}, "shop")

	events := economy.UseItem(state, GhostNoteItemID, q.ID, o.ID)
	assert.Equal(t, 0, countInventory(state, GhostNoteItemID))
	assert.Equal(t, "Ghost note", o.DailyNotes[DayKey(testDay)])
	// The filled note completes the single-objective quest.
	assert.True(t, q.ExpAwarded)
	require.NotNil(t, eventOfType(events, EventToast))
}

func TestUseItem_GhostNoteKeptWhenTargetMissing(t *testing.T) {
	hub := newTestHub(t, &fakeClock{now: testDay}, nil)
	state := NewState()
	economy := hub.GetEconomySystem()

	economy.GrantReward(state, Reward{Items: []RewardItem{{ID: GhostNoteItemID, Qty: 1}}}, "shop")

	events := economy.UseItem(state, GhostNoteItemID, "q_missing", "o_missing")
	assert.Nil(t, events)
	assert.Equal(t, 1, countInventory(state, GhostNoteItemID))

	// A real quest but a missing objective also keeps the item.
	q, _ := addQuestWithObjective(t, hub, state, "Real", "C", "rare", false)
	events = economy.UseItem(state, GhostNoteItemID, q.ID, "o_missing")
	assert.Nil(t, events)
	assert.Equal(t, 1, countInventory(state, GhostNoteItemID))
}

func TestUseItem_MissingItemIsNoOp(t *testing.T) {
	hub := newTestHub(t, &fakeClock{now: testDay}, nil)
	state := NewState()

	events := hub.GetEconomySystem().UseItem(state, GhostNoteItemID, "", "")
	assert.Nil(t, events)
}

func TestUseItem_ChestRoutesThroughLoot(t *testing.T) {
	rnd := &scriptedRand{ints: []int{0, 0}, floats: []float64{0.99}}
	hub := newTestHub(t, &fakeClock{now: testDay}, rnd)
	state := NewState()
	economy := hub.GetEconomySystem()

	economy.GrantReward(state, Reward{Items: []RewardItem{{ID: "chest_small", Qty: 1}}}, "reward")

	events := economy.UseItem(state, "chest_small", "", "")
	require.NotNil(t, eventOfType(events, EventChestOpened))
	assert.Equal(t, 0, countInventory(state, "chest_small"))
}
