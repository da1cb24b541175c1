package arise

import (
	"encoding/json"
	"time"
)

// Objective is a sub-task of a quest, completed for a given day by writing a
// non-blank note under that day's key.
type Objective struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// Note is the legacy single-note field. It only acts as a completion
	// fallback for objectives that predate per-day notes.
	Note       string            `json:"note,omitempty"`
	DailyNotes map[string]string `json:"dailyNotes,omitempty"`
}

// Quest is a user-defined task container with one or more objectives.
type Quest struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Rank         string       `json:"rank"`
	Type         string       `json:"type"`
	Rarity       string       `json:"rarity"`
	IsBoss       bool         `json:"isBoss"`
	IsRepeatable bool         `json:"isRepeatable"`
	ActiveDays   []int        `json:"activeDays,omitempty"`
	Objectives   []*Objective `json:"objectives"`

	ExpPending    int        `json:"expPending"`
	ExpAwarded    bool       `json:"expAwarded"`
	Archived      bool       `json:"archived"`
	LastCompleted *time.Time `json:"lastCompleted,omitempty"`

	// Streak and BestStreak are carried in the document but not consumed by
	// scoring. BestStreak is never written.
	Streak     int `json:"streak"`
	BestStreak int `json:"bestStreak"`

	Achievements []string  `json:"achievements,omitempty"`
	StartTime    time.Time `json:"startTime"`
	EditCount    int       `json:"editCount"`
}

// Wallet holds the spendable currency balance.
type Wallet struct {
	Essence int `json:"essence"`
}

// InventoryItem is one acquired item instance.
type InventoryItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	AcquiredAt time.Time `json:"acquiredAt"`
	Source     string    `json:"source"`
}

// Booster is a timed multiplier or flat bonus. At most one instance per kind
// ("exp", "mana", "essence") may be active.
type Booster struct {
	Multiplier  float64   `json:"multiplier,omitempty"`
	Bonus       int       `json:"bonus,omitempty"`
	ActiveUntil time.Time `json:"activeUntil"`
}

// ActiveAt reports whether the booster is still running at t.
func (b Booster) ActiveAt(t time.Time) bool {
	return t.Before(b.ActiveUntil)
}

// RewardItem is one item line inside a reward payload.
type RewardItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Qty  int    `json:"qty"`
	Type string `json:"type,omitempty"`
}

// Reward is the payload applied when a queue entry is claimed.
type Reward struct {
	Exp     int          `json:"exp,omitempty"`
	Essence int          `json:"essence,omitempty"`
	Items   []RewardItem `json:"items,omitempty"`
}

// IsZero reports whether the reward grants nothing.
func (r Reward) IsZero() bool {
	return r.Exp == 0 && r.Essence == 0 && len(r.Items) == 0
}

// RewardQueueEntry is one unclaimed reward awaiting user confirmation.
// Claimed by id, never by position, so out-of-order claiming is valid.
type RewardQueueEntry struct {
	ID            string    `json:"id"`
	AchievementID string    `json:"achievementId,omitempty"`
	QuestID       string    `json:"questId,omitempty"`
	Title         string    `json:"title"`
	Desc          string    `json:"desc,omitempty"`
	Reward        Reward    `json:"reward"`
	UnlockedAt    time.Time `json:"unlockedAt"`
	Type          string    `json:"type"`
}

// Metrics holds the per-day counters and the perfect-day streak, plus the
// pity counters for fragment-capable chest tiers.
type Metrics struct {
	ObjectivesCompletedToday int    `json:"objectivesCompletedToday"`
	QuestsCompletedToday     int    `json:"questsCompletedToday"`
	BossCompletedCount       int    `json:"bossCompletedCount"`
	PerfectDayStreak         int    `json:"perfectDayStreak"`
	LastStreakCheckKey       string `json:"lastStreakCheckKey,omitempty"`
	Pity                     map[string]int `json:"pity,omitempty"`
}

// Streaks holds the daily-completion streak. LastUpdateKey is the day key of
// the last increment and guards against double updates within one day.
type Streaks struct {
	CurrentStreak int    `json:"currentStreak"`
	LastUpdateKey string `json:"lastStreakUpdate,omitempty"`
}

// Settings is the small per-user preferences block embedded in the document.
type Settings struct {
	Animations bool `json:"animations"`
}

// LibraryItem is one entry of the personal media library.
type LibraryItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Tags      []string  `json:"tags,omitempty"`
	CoverPath string    `json:"coverPath,omitempty"`
	Rating    int       `json:"rating,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	QuestIDs  []string  `json:"questIds,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// LibraryFilter narrows the library view.
type LibraryFilter struct {
	Type   string `json:"type"`
	Status string `json:"status"`
	Query  string `json:"query"`
}

// State is the single in-memory state document. All entities live here and
// are mutated exclusively through system operations; the host persists a
// whole-document snapshot after each applied action.
type State struct {
	Quests               []*Quest           `json:"quests"`
	Filter               string             `json:"filter"`
	Exp                  int                `json:"exp"`
	Wallet               Wallet             `json:"wallet"`
	Inventory            []InventoryItem    `json:"inventory"`
	Boosters             map[string]Booster `json:"boosters,omitempty"`
	Theme                string             `json:"theme"`
	AchievementsUnlocked []string           `json:"achievementsUnlocked"`
	RewardsQueue         []RewardQueueEntry `json:"rewardsQueue"`
	Metrics              Metrics            `json:"metrics"`
	Streaks              Streaks            `json:"streaks"`
	Settings             Settings           `json:"settings"`
	Library              []LibraryItem      `json:"library"`
	LibraryFilter        LibraryFilter      `json:"libraryFilter"`
}

// NewState returns an empty default document.
func NewState() *State {
	return &State{
		Quests:               make([]*Quest, 0),
		Filter:               "all",
		Inventory:            make([]InventoryItem, 0),
		Boosters:             make(map[string]Booster),
		Theme:                "default",
		AchievementsUnlocked: make([]string, 0),
		RewardsQueue:         make([]RewardQueueEntry, 0),
		Metrics:              Metrics{Pity: make(map[string]int)},
		Settings:             Settings{Animations: true},
		Library:              make([]LibraryItem, 0),
		LibraryFilter:        LibraryFilter{Type: "all", Status: "all"},
	}
}

// Normalize repairs nil collections after a JSON load so downstream code can
// index without nil checks.
func (s *State) Normalize() {
	if s.Quests == nil {
		s.Quests = make([]*Quest, 0)
	}
	if s.Filter == "" {
		s.Filter = "all"
	}
	if s.Inventory == nil {
		s.Inventory = make([]InventoryItem, 0)
	}
	if s.Boosters == nil {
		s.Boosters = make(map[string]Booster)
	}
	if s.Theme == "" {
		s.Theme = "default"
	}
	if s.AchievementsUnlocked == nil {
		s.AchievementsUnlocked = make([]string, 0)
	}
	if s.RewardsQueue == nil {
		s.RewardsQueue = make([]RewardQueueEntry, 0)
	}
	if s.Metrics.Pity == nil {
		s.Metrics.Pity = make(map[string]int)
	}
	if s.Library == nil {
		s.Library = make([]LibraryItem, 0)
	}
	if s.LibraryFilter.Type == "" {
		s.LibraryFilter.Type = "all"
	}
	if s.LibraryFilter.Status == "" {
		s.LibraryFilter.Status = "all"
	}
	for _, q := range s.Quests {
		if q.Objectives == nil {
			q.Objectives = make([]*Objective, 0)
		}
		for _, o := range q.Objectives {
			if o.DailyNotes == nil {
				o.DailyNotes = make(map[string]string)
			}
		}
	}
}

// Snapshot returns a deep copy of the document, safe to hand to a
// background writer while the original keeps mutating.
func (s *State) Snapshot() *State {
	data, err := json.Marshal(s)
	if err != nil {
		return nil
	}
	clone := &State{}
	if err := json.Unmarshal(data, clone); err != nil {
		return nil
	}
	clone.Normalize()
	return clone
}

// FindQuest returns the quest with the given id, or nil.
func (s *State) FindQuest(id string) *Quest {
	for _, q := range s.Quests {
		if q.ID == id {
			return q
		}
	}
	return nil
}

// FindObjective returns the objective with the given id, or nil.
func (q *Quest) FindObjective(id string) *Objective {
	for _, o := range q.Objectives {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// HasItem reports whether at least one inventory entry matches id.
func (s *State) HasItem(id string) bool {
	for _, it := range s.Inventory {
		if it.ID == id {
			return true
		}
	}
	return false
}

// RemoveItemOnce removes exactly one inventory entry matching id and reports
// whether one was found.
func (s *State) RemoveItemOnce(id string) bool {
	for i, it := range s.Inventory {
		if it.ID == id {
			s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// HasUnlocked reports whether the global achievement id was already granted.
func (s *State) HasUnlocked(achievementID string) bool {
	for _, id := range s.AchievementsUnlocked {
		if id == achievementID {
			return true
		}
	}
	return false
}

func (q *Quest) hasAchievement(id string) bool {
	for _, a := range q.Achievements {
		if a == id {
			return true
		}
	}
	return false
}
