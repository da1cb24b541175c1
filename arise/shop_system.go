package arise

import "go.uber.org/zap"

// shopSystem implements the ShopSystem interface.
type shopSystem struct {
	arise Arise
}

func newShopSystem(a Arise) *shopSystem {
	return &shopSystem{arise: a}
}

func (s *shopSystem) GetType() SystemType {
	return SystemTypeShop
}

func (s *shopSystem) Purchase(state *State, itemID string) ([]Event, error) {
	item := s.arise.Catalog().ShopItem(itemID)
	if item == nil {
		return nil, ErrUnknownShopItem
	}

	now := s.arise.Clock().Now()
	if item.Cost > state.Wallet.Essence {
		return []Event{warningEvent("Not enough essence for " + item.Name)}, ErrInsufficientEssence
	}
	if item.Booster != nil {
		if active, ok := state.Boosters[item.Booster.Kind]; ok && active.ActiveAt(now) {
			return []Event{warningEvent("A " + item.Booster.Kind + " booster is already active")}, ErrBoosterAlreadyActive
		}
	}

	state.Wallet.Essence -= item.Cost

	if item.Booster != nil {
		state.Boosters[item.Booster.Kind] = Booster{
			Multiplier:  item.Booster.Multiplier,
			Bonus:       item.Booster.Bonus,
			ActiveUntil: now.Add(item.Booster.Duration),
		}
		s.arise.Logger().Info("booster activated",
			zap.String("kind", item.Booster.Kind), zap.String("item_id", item.ID))
		return []Event{toastEvent(item.Name + " activated")}, nil
	}

	events := s.arise.GetEconomySystem().GrantReward(state, Reward{
		Items: []RewardItem{{ID: item.ID, Name: item.Name, Qty: 1, Type: item.Type}},
	}, "shop")
	return append(events, toastEvent(item.Name+" purchased")), nil
}
