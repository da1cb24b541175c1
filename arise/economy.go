package arise

// EconomySystem owns the player totals, the reward queue and reward
// application: enqueueing, claiming by id, batch claiming and granting
// payloads with unique-item deduplication.
type EconomySystem interface {
	System

	// Enqueue pushes a reward entry. The queue is never deduplicated by
	// content; only achievement tracking prevents re-granting an unlock.
	Enqueue(state *State, entryType, achievementID, questID, title, desc string, reward Reward) *RewardQueueEntry

	// Claim removes the entry with the given id and applies its payload
	// exactly once. An absent id is treated as already claimed: silent no-op.
	Claim(state *State, queueID string) []Event

	// ClaimAll claims every queued entry sequentially in queue order and
	// emits one aggregated summary event.
	ClaimAll(state *State) []Event

	// GrantReward applies a reward payload: EXP and essence to the totals,
	// items to the inventory. Unique items already owned are dropped.
	// Container items additionally request the chest-open flow.
	GrantReward(state *State, reward Reward, source string) []Event

	// UseItem consumes one inventory item: ghost notes fill today's note on
	// the targeted objective, containers route to the loot resolver, other
	// consumables are simply removed. Missing items are a no-op.
	UseItem(state *State, itemID, questID, objectiveID string) []Event
}
