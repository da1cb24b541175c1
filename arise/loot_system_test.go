package arise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grantChest(t *testing.T, hub Arise, state *State, chestID string) {
	t.Helper()
	hub.GetEconomySystem().GrantReward(state, Reward{
		Items: []RewardItem{{ID: chestID, Qty: 1}},
	}, "reward")
	require.Equal(t, 1, countInventory(state, chestID))
}

func TestOpenChest_UnknownTable(t *testing.T) {
	hub := newTestHub(t, &fakeClock{now: testDay}, &scriptedRand{})
	state := NewState()

	events, err := hub.GetLootSystem().OpenChest(state, "chest_mythic")
	assert.Equal(t, ErrBadInput, err)
	require.NotNil(t, eventOfType(events, EventWarning))
}

func TestOpenChest_NotOwned(t *testing.T) {
	hub := newTestHub(t, &fakeClock{now: testDay}, &scriptedRand{})
	state := NewState()

	events, err := hub.GetLootSystem().OpenChest(state, "chest_small")
	assert.NoError(t, err)
	require.NotNil(t, eventOfType(events, EventWarning))
	assert.Nil(t, eventOfType(events, EventChestOpened))
}

func TestOpenChest_RangesAndDrops(t *testing.T) {
	// Exp roll 150-100=50, essence roll 15-10=5, ghost chance hit with a
	// low float and no bonus roll on the small tier.
	rnd := &scriptedRand{ints: []int{50, 5}, floats: []float64{0.1}}
	hub := newTestHub(t, &fakeClock{now: testDay}, rnd)
	state := NewState()
	grantChest(t, hub, state, "chest_small")

	events, err := hub.GetLootSystem().OpenChest(state, "chest_small")
	require.NoError(t, err)

	opened := eventOfType(events, EventChestOpened)
	require.NotNil(t, opened)
	require.NotNil(t, opened.Loot)
	assert.Equal(t, 150, opened.Loot.Exp)
	assert.Equal(t, 15, opened.Loot.Essence)

	assert.Equal(t, 150, state.Exp)
	assert.Equal(t, 15, state.Wallet.Essence)
	assert.Equal(t, 1, countInventory(state, GhostNoteItemID))
	assert.Equal(t, 0, countInventory(state, "chest_small"))
}

func TestOpenChest_BonusQty(t *testing.T) {
	// Rare tier: ghost hits (0.1 < 0.5) and the bonus roll hits too
	// (0.1 < 0.3); fragment misses (0.99 >= 0.2).
	rnd := &scriptedRand{ints: []int{0, 0}, floats: []float64{0.1, 0.1, 0.99}}
	hub := newTestHub(t, &fakeClock{now: testDay}, rnd)
	state := NewState()
	grantChest(t, hub, state, "chest_rare")

	_, err := hub.GetLootSystem().OpenChest(state, "chest_rare")
	require.NoError(t, err)
	assert.Equal(t, 2, countInventory(state, GhostNoteItemID))
}

func TestOpenChest_RarePityAtFourOpens(t *testing.T) {
	// Every open misses both the ghost note (0.99 >= 0.5) and the fragment
	// (0.99 >= 0.2). The fourth fragment-less open forces the pity drop.
	rnd := &scriptedRand{
		floats: []float64{0.99, 0.99, 0.99, 0.99, 0.99, 0.99, 0.99, 0.99},
	}
	hub := newTestHub(t, &fakeClock{now: testDay}, rnd)
	loot := hub.GetLootSystem()
	state := NewState()

	for open := 1; open <= 3; open++ {
		grantChest(t, hub, state, "chest_rare")
		_, err := loot.OpenChest(state, "chest_rare")
		require.NoError(t, err)
		assert.Equal(t, open, state.Metrics.Pity["chest_rare"])
		assert.Equal(t, 0, countInventory(state, "fragment_essence"))
	}

	grantChest(t, hub, state, "chest_rare")
	_, err := loot.OpenChest(state, "chest_rare")
	require.NoError(t, err)
	assert.Equal(t, 1, countInventory(state, "fragment_essence"))
	assert.Equal(t, 0, state.Metrics.Pity["chest_rare"])
}

func TestOpenChest_NaturalFragmentResetsPity(t *testing.T) {
	// Two misses build the counter, then a natural fragment (0.1 < 0.2)
	// clears it before the threshold.
	rnd := &scriptedRand{
		floats: []float64{0.99, 0.99, 0.99, 0.99, 0.99, 0.1},
	}
	hub := newTestHub(t, &fakeClock{now: testDay}, rnd)
	loot := hub.GetLootSystem()
	state := NewState()

	for i := 0; i < 2; i++ {
		grantChest(t, hub, state, "chest_rare")
		_, err := loot.OpenChest(state, "chest_rare")
		require.NoError(t, err)
	}
	require.Equal(t, 2, state.Metrics.Pity["chest_rare"])

	grantChest(t, hub, state, "chest_rare")
	_, err := loot.OpenChest(state, "chest_rare")
	require.NoError(t, err)
	assert.Equal(t, 0, state.Metrics.Pity["chest_rare"])
	assert.Equal(t, 1, countInventory(state, "fragment_essence"))
}

func TestOpenChest_EpicPityAtTwoOpens(t *testing.T) {
	// Epic ghost note is guaranteed, so each open rolls its bonus chance.
	// Fragment misses twice (0.99 >= 0.4); the second open forces pity.
	rnd := &scriptedRand{
		floats: []float64{0.99, 0.99, 0.99, 0.99},
	}
	hub := newTestHub(t, &fakeClock{now: testDay}, rnd)
	loot := hub.GetLootSystem()
	state := NewState()

	grantChest(t, hub, state, "chest_epic")
	_, err := loot.OpenChest(state, "chest_epic")
	require.NoError(t, err)
	require.Equal(t, 1, state.Metrics.Pity["chest_epic"])

	grantChest(t, hub, state, "chest_epic")
	_, err = loot.OpenChest(state, "chest_epic")
	require.NoError(t, err)
	assert.Equal(t, 1, countInventory(state, "fragment_void"))
	assert.Equal(t, 0, state.Metrics.Pity["chest_epic"])
}

func TestOpenChest_LegendaryGuaranteedFragment(t *testing.T) {
	// Ghost bonus is irrelevant (chance 1, no bonus); Intn picks the
	// fragment index after the two range rolls.
	rnd := &scriptedRand{ints: []int{0, 0, 3}, floats: []float64{}}
	hub := newTestHub(t, &fakeClock{now: testDay}, rnd)
	state := NewState()
	grantChest(t, hub, state, "chest_legendary")

	events, err := hub.GetLootSystem().OpenChest(state, "chest_legendary")
	require.NoError(t, err)

	opened := eventOfType(events, EventChestOpened)
	require.NotNil(t, opened)
	assert.Equal(t, 1, countInventory(state, FragmentSet[3]))
	assert.Equal(t, 2, countInventory(state, GhostNoteItemID))
	// Legendary has no pity bookkeeping.
	assert.Equal(t, 0, state.Metrics.Pity["chest_legendary"])
}
