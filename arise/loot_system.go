package arise

import (
	"strings"

	"go.uber.org/zap"
)

// lootSystem implements the LootSystem interface.
type lootSystem struct {
	arise Arise
}

func newLootSystem(a Arise) *lootSystem {
	return &lootSystem{arise: a}
}

func (s *lootSystem) GetType() SystemType {
	return SystemTypeLoot
}

func (s *lootSystem) OpenChest(state *State, chestID string) ([]Event, error) {
	table := s.arise.Catalog().ChestTable(chestID)
	if table == nil {
		return []Event{warningEvent("Unknown container: " + chestID)}, ErrBadInput
	}
	if !state.RemoveItemOnce(chestID) {
		// Already opened or never owned.
		return []Event{warningEvent("No " + table.Name + " in inventory")}, nil
	}

	loot := s.roll(state, table)
	s.apply(state, loot)

	s.arise.Logger().Info("container opened",
		zap.String("chest_id", chestID),
		zap.Int("exp", loot.Exp),
		zap.Int("essence", loot.Essence),
		zap.Int("items", len(loot.Items)))

	return []Event{{Type: EventChestOpened, ItemID: chestID, Message: table.Name, Loot: &loot}}, nil
}

// roll resolves a tier table with the injected randomness source and applies
// pity escalation: each fragment-less open of a pity tier bumps its counter,
// and reaching the threshold forces the tier fragment.
func (s *lootSystem) roll(state *State, table *ChestTable) Loot {
	rnd := s.arise.Rand()
	catalog := s.arise.Catalog()

	loot := Loot{
		Exp:     rollRange(rnd, table.ExpMin, table.ExpMax),
		Essence: rollRange(rnd, table.EssenceMin, table.EssenceMax),
	}

	for _, drop := range table.Drops {
		if drop.Chance < 1 && rnd.Float64() >= drop.Chance {
			continue
		}
		qty := drop.Qty
		if drop.BonusQtyChance > 0 && rnd.Float64() < drop.BonusQtyChance {
			qty++
		}
		loot.Items = append(loot.Items, RewardItem{
			ID:   drop.ItemID,
			Name: catalog.ItemName(drop.ItemID),
			Qty:  qty,
			Type: itemType(catalog, drop.ItemID),
		})
	}

	if table.GuaranteedFragment {
		fragmentID := FragmentSet[rnd.Intn(len(FragmentSet))]
		loot.Items = append(loot.Items, RewardItem{
			ID:   fragmentID,
			Name: catalog.ItemName(fragmentID),
			Qty:  1,
			Type: "fragment",
		})
	}

	if table.PityThreshold > 0 {
		if lootHasFragment(loot) {
			// A natural fragment resets the counter early.
			state.Metrics.Pity[table.ID] = 0
		} else {
			state.Metrics.Pity[table.ID]++
			if state.Metrics.Pity[table.ID] >= table.PityThreshold {
				loot.Items = append(loot.Items, RewardItem{
					ID:   table.PityFragmentID,
					Name: catalog.ItemName(table.PityFragmentID),
					Qty:  1,
					Type: "fragment",
				})
				state.Metrics.Pity[table.ID] = 0
			}
		}
	}

	return loot
}

// apply credits the resolved loot atomically, tagging items as chest drops.
func (s *lootSystem) apply(state *State, loot Loot) {
	s.arise.GetEconomySystem().GrantReward(state, Reward{
		Exp:     loot.Exp,
		Essence: loot.Essence,
		Items:   loot.Items,
	}, "chest")
}

// rollRange picks a uniform integer in [min, max].
func rollRange(rnd Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rnd.Intn(max-min+1)
}

func lootHasFragment(loot Loot) bool {
	for _, item := range loot.Items {
		if strings.HasPrefix(item.ID, "fragment_") {
			return true
		}
	}
	return false
}

func itemType(c *Catalog, id string) string {
	if def := c.Item(id); def != nil {
		return def.Type
	}
	return ""
}
