package arise

// ShopSystem validates and applies catalog purchases: currency checks,
// booster kind-exclusivity, booster installation and inventory grants.
type ShopSystem interface {
	System

	// Purchase buys one shop item. Insufficient essence or a blocked
	// booster slot leave state unchanged and report a warning.
	Purchase(state *State, itemID string) ([]Event, error)
}
