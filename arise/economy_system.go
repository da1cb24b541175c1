package arise

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// economySystem implements the EconomySystem interface.
type economySystem struct {
	arise Arise
}

func newEconomySystem(a Arise) *economySystem {
	return &economySystem{arise: a}
}

func (s *economySystem) GetType() SystemType {
	return SystemTypeEconomy
}

func (s *economySystem) Enqueue(state *State, entryType, achievementID, questID, title, desc string, reward Reward) *RewardQueueEntry {
	entry := RewardQueueEntry{
		ID:            "rw_" + uuid.NewString(),
		AchievementID: achievementID,
		QuestID:       questID,
		Title:         title,
		Desc:          desc,
		Reward:        reward,
		UnlockedAt:    s.arise.Clock().Now(),
		Type:          entryType,
	}
	state.RewardsQueue = append(state.RewardsQueue, entry)
	return &state.RewardsQueue[len(state.RewardsQueue)-1]
}

func (s *economySystem) Claim(state *State, queueID string) []Event {
	idx := -1
	for i := range state.RewardsQueue {
		if state.RewardsQueue[i].ID == queueID {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Already claimed (or never existed): idempotent no-op.
		return nil
	}

	entry := state.RewardsQueue[idx]
	state.RewardsQueue = append(state.RewardsQueue[:idx], state.RewardsQueue[idx+1:]...)

	events := s.GrantReward(state, entry.Reward, "reward")

	if entry.AchievementID == MonarchFragmentsAchievementID {
		events = append(events, s.consumeMonarchFragments(state)...)
	}

	// Container rewards supply their own summary via the chest-open flow,
	// so the claim toast is suppressed for them.
	if !rewardHasChest(entry.Reward) {
		events = append(events, toastEvent("Reward claimed: "+entry.Title))
	}
	return events
}

func (s *economySystem) ClaimAll(state *State) []Event {
	ids := make([]string, 0, len(state.RewardsQueue))
	for i := range state.RewardsQueue {
		ids = append(ids, state.RewardsQueue[i].ID)
	}
	if len(ids) == 0 {
		return nil
	}

	expBefore := state.Exp
	essenceBefore := state.Wallet.Essence
	invBefore := len(state.Inventory)

	var events []Event
	for _, id := range ids {
		for _, ev := range s.Claim(state, id) {
			// Individual claim toasts collapse into the final summary.
			if ev.Type == EventToast {
				continue
			}
			events = append(events, ev)
		}
	}

	// The summary reports what was actually applied, so booster scaling and
	// unique-item dedup are reflected, not the raw queued payloads.
	total := Reward{
		Exp:     state.Exp - expBefore,
		Essence: state.Wallet.Essence - essenceBefore,
	}
	// Fragment consumption during a claim can shrink the inventory.
	if invBefore > len(state.Inventory) {
		invBefore = len(state.Inventory)
	}
	for _, granted := range state.Inventory[invBefore:] {
		total.Items = append(total.Items, RewardItem{ID: granted.ID, Name: granted.Name, Qty: 1, Type: granted.Type})
	}
	events = append(events, Event{Type: EventClaimSummary, Message: "All rewards claimed", Reward: &total})
	return events
}

func (s *economySystem) GrantReward(state *State, reward Reward, source string) []Event {
	now := s.arise.Clock().Now()
	catalog := s.arise.Catalog()

	state.Exp += reward.Exp
	if reward.Essence > 0 {
		state.Wallet.Essence += int(math.Round(float64(reward.Essence) * essenceBoosterMultiplier(state, now)))
	}

	var events []Event
	for _, item := range reward.Items {
		qty := item.Qty
		if qty <= 0 {
			qty = 1
		}
		for n := 0; n < qty; n++ {
			if def := catalog.Item(item.ID); def != nil && def.Unique && state.HasItem(item.ID) {
				// Second copy of a unique item: dropped silently.
				continue
			}
			name := item.Name
			if name == "" {
				name = catalog.ItemName(item.ID)
			}
			state.Inventory = append(state.Inventory, InventoryItem{
				ID:         item.ID,
				Name:       name,
				Type:       item.Type,
				AcquiredAt: now,
				Source:     source,
			})
			if strings.HasPrefix(item.ID, ChestIDPrefix) {
				events = append(events, Event{Type: EventChestRequested, ItemID: item.ID, Message: name})
			}
		}
	}
	return events
}

// consumeMonarchFragments removes the five fragments and unlocks the
// dominion theme. One-time side effect of claiming that achievement.
func (s *economySystem) consumeMonarchFragments(state *State) []Event {
	for _, fragmentID := range FragmentSet {
		state.RemoveItemOnce(fragmentID)
	}
	state.Theme = DominionTheme
	s.arise.Logger().Info("monarch dominion unlocked", zap.String("theme", DominionTheme))
	return []Event{toastEvent("The Monarch's Dominion awakens")}
}

func (s *economySystem) UseItem(state *State, itemID, questID, objectiveID string) []Event {
	if !state.HasItem(itemID) {
		return nil
	}

	if strings.HasPrefix(itemID, ChestIDPrefix) {
		events, _ := s.arise.GetLootSystem().OpenChest(state, itemID)
		return events
	}

	if itemID == GhostNoteItemID {
		// The note write no-ops on missing ids, so verify the target before
		// burning the consumable.
		q := state.FindQuest(questID)
		if q == nil || q.FindObjective(objectiveID) == nil {
			return nil
		}
		state.RemoveItemOnce(itemID)
		events, _ := s.arise.GetQuestsSystem().SetObjectiveNote(state, questID, objectiveID, "Ghost note")
		return append(events, toastEvent("Ghost note applied"))
	}

	state.RemoveItemOnce(itemID)
	return []Event{toastEvent("Item used: " + s.arise.Catalog().ItemName(itemID))}
}

func rewardHasChest(reward Reward) bool {
	for _, item := range reward.Items {
		if strings.HasPrefix(item.ID, ChestIDPrefix) {
			return true
		}
	}
	return false
}
