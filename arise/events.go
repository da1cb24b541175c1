package arise

// EventType discriminates the output events a state transition can emit.
type EventType string

const (
	// EventToast is a plain informational notification.
	EventToast EventType = "toast"
	// EventWarning signals a rejected operation (insufficient funds, blocked booster slot).
	EventWarning EventType = "warning"
	// EventRewardQueued announces a new entry in the rewards queue.
	EventRewardQueued EventType = "reward_queued"
	// EventAchievementUnlocked announces a newly satisfied achievement.
	EventAchievementUnlocked EventType = "achievement_unlocked"
	// EventChestRequested asks the host to run the chest-open flow for a
	// container that just landed in the inventory.
	EventChestRequested EventType = "chest_requested"
	// EventChestOpened carries the resolved loot of an opened container.
	EventChestOpened EventType = "chest_opened"
	// EventClaimSummary aggregates the totals of a claim-all batch.
	EventClaimSummary EventType = "claim_summary"
)

// Event is an output emitted alongside the new state by a transition. The
// host translates events into UI, audio or scheduling effects; the reducer
// core never signals through ambient channels.
type Event struct {
	Type          EventType `json:"type"`
	Message       string    `json:"message,omitempty"`
	QueueID       string    `json:"queueId,omitempty"`
	AchievementID string    `json:"achievementId,omitempty"`
	QuestID       string    `json:"questId,omitempty"`
	ItemID        string    `json:"itemId,omitempty"`
	Reward        *Reward   `json:"reward,omitempty"`
	Loot          *Loot     `json:"loot,omitempty"`
}

func toastEvent(msg string) Event   { return Event{Type: EventToast, Message: msg} }
func warningEvent(msg string) Event { return Event{Type: EventWarning, Message: msg} }
