package arise

// Loot is the resolved contents of one opened container.
type Loot struct {
	Exp     int          `json:"exp"`
	Essence int          `json:"essence"`
	Items   []RewardItem `json:"items,omitempty"`
}

// LootSystem rolls randomized container contents per tier and applies the
// pity-counter escalation for fragment-capable tiers.
type LootSystem interface {
	System

	// OpenChest consumes one matching container from the inventory, rolls
	// its tier table and applies the loot atomically. A missing container
	// is a warning no-op.
	OpenChest(state *State, chestID string) ([]Event, error)
}
