package arise

import "time"

// Ranks in ascending difficulty. Rank multipliers and essence payouts index
// into these tables.
var Ranks = []string{"E", "D", "C", "B", "A", "S"}

// QuestTypes are the accepted quest categories.
var QuestTypes = []string{"hunt", "escort", "raid", "explore"}

// Rarities in ascending value.
var Rarities = []string{"common", "rare", "epic", "legendary"}

// RankMultiplier scales EXP gains by quest rank.
func RankMultiplier(rank string) float64 {
	switch rank {
	case "S":
		return 1.6
	case "A":
		return 1.4
	case "B":
		return 1.2
	case "C":
		return 1.1
	default: // D, E
		return 1.0
	}
}

// RarityMultiplier scales EXP gains by quest rarity.
func RarityMultiplier(rarity string) float64 {
	switch rarity {
	case "legendary":
		return 1.2
	case "epic":
		return 1.1
	case "rare":
		return 1.05
	default: // common
		return 1.0
	}
}

// bossMultiplier is the extra EXP factor for boss quests.
const bossMultiplier = 1.3

// completionBonusExp is the flat EXP bonus granted when a quest completes.
const completionBonusExp = 50

// maxExpPerEdit caps the pre-booster EXP of a single note edit.
const maxExpPerEdit = 50

// EssenceByRank is the essence payout of a quest-completion reward.
var EssenceByRank = map[string]int{
	"E": 5,
	"D": 8,
	"C": 11,
	"B": 14,
	"A": 17,
	"S": 21,
}

// BoosterSpec describes the timed effect a booster shop item installs.
type BoosterSpec struct {
	Kind       string        `json:"kind"` // exp | mana | essence
	Duration   time.Duration `json:"duration"`
	Multiplier float64       `json:"multiplier,omitempty"`
	Bonus      int           `json:"bonus,omitempty"`
}

// ShopItem is one purchasable catalog entry.
type ShopItem struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Cost    int          `json:"cost"`
	Rarity  string       `json:"rarity"`
	Type    string       `json:"type"` // cosmetic | booster | consumable | qol | fragment
	Booster *BoosterSpec `json:"booster,omitempty"`
}

// ItemDef is the static definition of a grantable item. Items flagged Unique
// may be held at most once; further grants are silently dropped.
type ItemDef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Unique bool   `json:"unique,omitempty"`
}

// ConditionContext is the snapshot a global achievement condition reads.
type ConditionContext struct {
	State *State
	Now   time.Time
}

// GlobalAchievement is a catalog achievement evaluated against aggregate
// state after every note-set.
type GlobalAchievement struct {
	ID        string
	Title     string
	Desc      string
	Condition func(ctx *ConditionContext) bool
	Reward    Reward
}

// QuestCompletionMeta is the transient metadata available to per-quest
// achievement conditions at the moment a quest completes.
type QuestCompletionMeta struct {
	CompletedAt time.Time
	Elapsed     time.Duration
	EditCount   int
}

// QuestAchievement is evaluated once per quest instance at its completion
// transition.
type QuestAchievement struct {
	ID        string
	Title     string
	Desc      string
	Condition func(q *Quest, meta QuestCompletionMeta) bool
	Reward    Reward
}

// ChestDrop is one independent-probability item drop of a chest tier.
type ChestDrop struct {
	ItemID string
	// Chance in [0,1]; 1 means guaranteed.
	Chance float64
	Qty    int
	// BonusQtyChance optionally adds one extra unit.
	BonusQtyChance float64
}

// ChestTable is the loot table of one container tier.
type ChestTable struct {
	ID         string
	Name       string
	ExpMin     int
	ExpMax     int
	EssenceMin int
	EssenceMax int
	Drops      []ChestDrop
	// GuaranteedFragment picks one fragment uniformly from FragmentSet.
	GuaranteedFragment bool
	// PityThreshold forces PityFragmentID after that many consecutive
	// fragment-less opens; zero disables pity for the tier.
	PityThreshold  int
	PityFragmentID string
}

// FragmentSet lists the five monarch fragments in catalog order.
var FragmentSet = []string{
	"fragment_shadow",
	"fragment_void",
	"fragment_portal",
	"fragment_crown",
	"fragment_essence",
}

// MonarchFragmentsAchievementID marks the achievement whose claim consumes
// the five fragments and unlocks the dominion theme.
const MonarchFragmentsAchievementID = "monarch_fragments"

// DominionTheme is the theme id unlocked by the monarch fragments set.
const DominionTheme = "dominio"

// ChestIDPrefix marks inventory items that resolve through the loot system
// instead of granting directly.
const ChestIDPrefix = "chest_"

// GhostNoteItemID is the consumable that fills an objective's note for today.
const GhostNoteItemID = "consumable_ghost_note"

// Catalog bundles every static table. The slices are the authoring format;
// the maps are indexes built once at startup for O(1) lookup.
type Catalog struct {
	ShopItems          []*ShopItem
	Items              []*ItemDef
	GlobalAchievements []*GlobalAchievement
	QuestAchievements  []*QuestAchievement
	ChestTables        []*ChestTable

	shopByID    map[string]*ShopItem
	itemByID    map[string]*ItemDef
	globalByID  map[string]*GlobalAchievement
	questAchByID map[string]*QuestAchievement
	chestByID   map[string]*ChestTable
}

// ShopItem returns the shop definition for id, or nil.
func (c *Catalog) ShopItem(id string) *ShopItem { return c.shopByID[id] }

// Item returns the item definition for id, or nil for ad-hoc items.
func (c *Catalog) Item(id string) *ItemDef { return c.itemByID[id] }

// GlobalAchievement returns the global achievement definition for id, or nil.
func (c *Catalog) GlobalAchievement(id string) *GlobalAchievement { return c.globalByID[id] }

// QuestAchievement returns the per-quest achievement definition for id, or nil.
func (c *Catalog) QuestAchievement(id string) *QuestAchievement { return c.questAchByID[id] }

// ChestTable returns the loot table for a chest id, or nil.
func (c *Catalog) ChestTable(id string) *ChestTable { return c.chestByID[id] }

// ItemName resolves a display name, falling back to the id.
func (c *Catalog) ItemName(id string) string {
	if def := c.itemByID[id]; def != nil {
		return def.Name
	}
	return id
}

// ValidRank reports whether rank is a known rank id.
func ValidRank(rank string) bool {
	for _, r := range Ranks {
		if r == rank {
			return true
		}
	}
	return false
}

// NewCatalog builds the default catalog and its indexes.
func NewCatalog() *Catalog {
	c := &Catalog{
		ShopItems:          defaultShopItems(),
		Items:              defaultItems(),
		GlobalAchievements: defaultGlobalAchievements(),
		QuestAchievements:  defaultQuestAchievements(),
		ChestTables:        defaultChestTables(),
	}
	c.buildIndex()
	return c
}

func (c *Catalog) buildIndex() {
	c.shopByID = make(map[string]*ShopItem, len(c.ShopItems))
	for _, it := range c.ShopItems {
		c.shopByID[it.ID] = it
	}
	c.itemByID = make(map[string]*ItemDef, len(c.Items))
	for _, it := range c.Items {
		c.itemByID[it.ID] = it
	}
	c.globalByID = make(map[string]*GlobalAchievement, len(c.GlobalAchievements))
	for _, a := range c.GlobalAchievements {
		c.globalByID[a.ID] = a
	}
	c.questAchByID = make(map[string]*QuestAchievement, len(c.QuestAchievements))
	for _, a := range c.QuestAchievements {
		c.questAchByID[a.ID] = a
	}
	c.chestByID = make(map[string]*ChestTable, len(c.ChestTables))
	for _, t := range c.ChestTables {
		c.chestByID[t.ID] = t
	}
}

func defaultShopItems() []*ShopItem {
	return []*ShopItem{
		{ID: "cosmetic_badge_shadow", Name: "Shadow Badge", Cost: 8, Rarity: "rare", Type: "cosmetic"},
		{ID: "booster_exp_15", Name: "EXP Booster 15m (1.25x)", Cost: 9, Rarity: "rare", Type: "booster",
			Booster: &BoosterSpec{Kind: "exp", Duration: 15 * time.Minute, Multiplier: 1.25}},
		{ID: "booster_exp_30", Name: "EXP Booster 30m (1.5x)", Cost: 13, Rarity: "epic", Type: "booster",
			Booster: &BoosterSpec{Kind: "exp", Duration: 30 * time.Minute, Multiplier: 1.5}},
		{ID: "booster_exp_60", Name: "EXP Booster 60m (2x)", Cost: 21, Rarity: "legendary", Type: "booster",
			Booster: &BoosterSpec{Kind: "exp", Duration: time.Hour, Multiplier: 2.0}},
		{ID: "booster_mana_30", Name: "Mana Booster 30m (+50)", Cost: 8, Rarity: "rare", Type: "booster",
			Booster: &BoosterSpec{Kind: "mana", Duration: 30 * time.Minute, Bonus: 50}},
		{ID: "booster_essence_30", Name: "Essence Booster 30m (1.5x)", Cost: 12, Rarity: "epic", Type: "booster",
			Booster: &BoosterSpec{Kind: "essence", Duration: 30 * time.Minute, Multiplier: 1.5}},
		{ID: "consumable_ghost_note", Name: "Ghost Note", Cost: 7, Rarity: "epic", Type: "consumable"},
		{ID: "consumable_clean_shard", Name: "Shard Cleaner", Cost: 4, Rarity: "common", Type: "consumable"},
		{ID: "inventory_slot", Name: "Extra Inventory Slot", Cost: 5, Rarity: "common", Type: "qol"},
		{ID: "fragment_shadow", Name: "Shadow Fragment", Cost: 6, Rarity: "rare", Type: "fragment"},
		{ID: "fragment_void", Name: "Void Fragment", Cost: 8, Rarity: "epic", Type: "fragment"},
		{ID: "fragment_portal", Name: "Portal Fragment", Cost: 7, Rarity: "rare", Type: "fragment"},
	}
}

func defaultItems() []*ItemDef {
	return []*ItemDef{
		{ID: "chest_small", Name: "Small Chest", Type: "consumable"},
		{ID: "chest_rare", Name: "Rare Chest", Type: "consumable"},
		{ID: "chest_epic", Name: "Epic Chest", Type: "consumable"},
		{ID: "chest_legendary", Name: "Legendary Chest", Type: "consumable"},

		{ID: "consumable_ghost_note", Name: "Ghost Note", Type: "consumable"},
		{ID: "consumable_clean_shard", Name: "Shard Cleaner", Type: "consumable"},
		{ID: "potion_focus", Name: "Focus Potion", Type: "consumable"},
		{ID: "key_rare", Name: "Rare Key", Type: "consumable"},
		{ID: "scroll_productivity", Name: "Productivity Scroll", Type: "consumable"},
		{ID: "inventory_slot", Name: "Extra Inventory Slot", Type: "qol"},
		{ID: "cosmetic_badge_shadow", Name: "Shadow Badge", Type: "cosmetic"},

		{ID: "fragment_shadow", Name: "Shadow Fragment", Type: "fragment", Unique: true},
		{ID: "fragment_void", Name: "Void Fragment", Type: "fragment", Unique: true},
		{ID: "fragment_portal", Name: "Portal Fragment", Type: "fragment", Unique: true},
		{ID: "fragment_crown", Name: "Crown Fragment", Type: "fragment", Unique: true},
		{ID: "fragment_essence", Name: "Essence Fragment", Type: "fragment", Unique: true},

		{ID: "trophy_king", Name: "King's Trophy", Type: "permanent", Unique: true},
		{ID: "badge_veteran", Name: "Veteran Badge", Type: "cosmetic", Unique: true},
		{ID: "crown_discipline", Name: "Crown of Discipline", Type: "cosmetic", Unique: true},
		{ID: "aura_legend", Name: "Legendary Aura", Type: "cosmetic", Unique: true},
		{ID: "title_immortal", Name: "Title: The Immortal", Type: "title", Unique: true},
		{ID: "gear_war_machine", Name: "War Machine Gear", Type: "cosmetic", Unique: true},
		{ID: "aura_unstoppable", Name: "Unstoppable Aura", Type: "cosmetic", Unique: true},
		{ID: "banner_conqueror", Name: "Conqueror's Banner", Type: "cosmetic", Unique: true},
		{ID: "throne_emperor", Name: "Emperor's Throne", Type: "cosmetic", Unique: true},
		{ID: "crystal_perfection", Name: "Crystal of Perfection", Type: "cosmetic", Unique: true},
		{ID: "halo_immaculate", Name: "Immaculate Halo", Type: "cosmetic", Unique: true},
		{ID: "blade_titan_slayer", Name: "Titan-Slayer Blade", Type: "cosmetic", Unique: true},
		{ID: "armor_nemesis", Name: "Nemesis Armor", Type: "cosmetic", Unique: true},
		{ID: "tome_knowledge", Name: "Tome of Knowledge", Type: "cosmetic", Unique: true},
		{ID: "staff_sage", Name: "Sage's Staff", Type: "cosmetic", Unique: true},
		{ID: "vault_collector", Name: "Collector's Vault", Type: "cosmetic", Unique: true},
		{ID: "palace_magnate", Name: "Magnate's Palace", Type: "cosmetic", Unique: true},
		{ID: "theme_dominio_complete", Name: "Monarch's Dominion Complete", Type: "theme", Unique: true},
	}
}

func defaultGlobalAchievements() []*GlobalAchievement {
	return []*GlobalAchievement{
		{
			ID: "quest_1_day", Title: "First Step",
			Desc: "Complete 1 quest today (all of its objectives)",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Metrics.QuestsCompletedToday >= 1
			},
			Reward: Reward{Items: []RewardItem{{ID: "chest_small", Name: "Small Chest", Qty: 1, Type: "consumable"}}},
		},
		{
			ID: "quest_5_day", Title: "Winning Streak",
			Desc: "Complete 5 quests today (all of their objectives)",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Metrics.QuestsCompletedToday >= 5
			},
			Reward: Reward{Items: []RewardItem{{ID: "potion_focus", Name: "Focus Potion", Qty: 1, Type: "consumable"}}},
		},
		{
			ID: "day_clean", Title: "Perfect Day",
			Desc: "Complete every quest active today",
			// Computed live from today's day-key, never cached, so it
			// naturally re-evaluates false the next day.
			Condition: func(ctx *ConditionContext) bool {
				return allActiveQuestsDone(ctx.State, ctx.Now)
			},
			Reward: Reward{Exp: 50, Essence: 10},
		},
		{
			ID: "day_double", Title: "Double Perfect",
			Desc: "Two perfect days in a row",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Metrics.PerfectDayStreak >= 2
			},
			Reward: Reward{Items: []RewardItem{{ID: "key_rare", Name: "Rare Key", Qty: 1, Type: "consumable"}}},
		},
		{
			ID: "trifecta", Title: "Trifecta",
			Desc: "Three perfect days in a row",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Metrics.PerfectDayStreak >= 3
			},
			Reward: Reward{Items: []RewardItem{{ID: "fragment_crown", Name: "Crown Fragment", Qty: 1, Type: "fragment"}}},
		},
		{
			ID: "obj_10_day", Title: "Relentless Forge",
			Desc: "Complete 10 objectives in a single day",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Metrics.ObjectivesCompletedToday >= 10
			},
			Reward: Reward{Items: []RewardItem{{ID: "scroll_productivity", Name: "Productivity Scroll", Qty: 1, Type: "consumable"}}},
		},
		{
			ID: "boss_hunter_5", Title: "Boss Hunter",
			Desc: "Complete 5 boss quests in a day",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Metrics.BossCompletedCount >= 5
			},
			Reward: Reward{Items: []RewardItem{{ID: "trophy_king", Name: "King's Trophy", Qty: 1, Type: "permanent"}}},
		},
		{
			ID: "streak_master", Title: "Master of Consistency",
			Desc: "Keep a 7-day quest completion streak",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Streaks.CurrentStreak >= 7
			},
			Reward: Reward{Items: []RewardItem{{ID: "fragment_essence", Name: "Essence Fragment", Qty: 1, Type: "fragment"}}},
		},
		{
			ID: "streak_veteran", Title: "Relentless Veteran",
			Desc: "Keep a 10-day quest completion streak",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Streaks.CurrentStreak >= 10
			},
			Reward: Reward{Essence: 50, Exp: 200, Items: []RewardItem{{ID: "badge_veteran", Name: "Veteran Badge", Qty: 1, Type: "cosmetic"}}},
		},
		{
			ID: "streak_champion", Title: "Champion of Discipline",
			Desc: "Keep a 30-day quest completion streak",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Streaks.CurrentStreak >= 30
			},
			Reward: Reward{Essence: 100, Exp: 500, Items: []RewardItem{{ID: "crown_discipline", Name: "Crown of Discipline", Qty: 1, Type: "cosmetic"}}},
		},
		{
			ID: "streak_legend", Title: "Living Legend",
			Desc: "Keep a 100-day quest completion streak",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Streaks.CurrentStreak >= 100
			},
			Reward: Reward{Essence: 300, Exp: 1000, Items: []RewardItem{{ID: "aura_legend", Name: "Legendary Aura", Qty: 1, Type: "cosmetic"}}},
		},
		{
			ID: "streak_immortal", Title: "Immortal of Progress",
			Desc: "Keep a 365-day quest completion streak",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Streaks.CurrentStreak >= 365
			},
			Reward: Reward{Essence: 1000, Exp: 5000, Items: []RewardItem{{ID: "title_immortal", Name: "Title: The Immortal", Qty: 1, Type: "title"}}},
		},
		{
			ID: "obj_25_day", Title: "War Machine",
			Desc: "Complete 25 objectives in a single day",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Metrics.ObjectivesCompletedToday >= 25
			},
			Reward: Reward{Essence: 75, Exp: 300, Items: []RewardItem{{ID: "gear_war_machine", Name: "War Machine Gear", Qty: 1, Type: "cosmetic"}}},
		},
		{
			ID: "obj_50_day", Title: "Unstoppable Force",
			Desc: "Complete 50 objectives in a single day",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Metrics.ObjectivesCompletedToday >= 50
			},
			Reward: Reward{Essence: 150, Exp: 600, Items: []RewardItem{{ID: "aura_unstoppable", Name: "Unstoppable Aura", Qty: 1, Type: "cosmetic"}}},
		},
		{
			ID: "quest_10_day", Title: "Conqueror",
			Desc: "Complete 10 quests in a single day",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Metrics.QuestsCompletedToday >= 10
			},
			Reward: Reward{Essence: 100, Exp: 400, Items: []RewardItem{{ID: "banner_conqueror", Name: "Conqueror's Banner", Qty: 1, Type: "cosmetic"}}},
		},
		{
			ID: "quest_20_day", Title: "Emperor of Tasks",
			Desc: "Complete 20 quests in a single day",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Metrics.QuestsCompletedToday >= 20
			},
			Reward: Reward{Essence: 200, Exp: 800, Items: []RewardItem{{ID: "throne_emperor", Name: "Emperor's Throne", Qty: 1, Type: "cosmetic"}}},
		},
		{
			ID: "perfect_week", Title: "Perfect Week",
			Desc: "Seven perfect days in a row",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Metrics.PerfectDayStreak >= 7
			},
			Reward: Reward{Essence: 75, Exp: 350, Items: []RewardItem{{ID: "crystal_perfection", Name: "Crystal of Perfection", Qty: 1, Type: "cosmetic"}}},
		},
		{
			ID: "perfect_month", Title: "Immaculate Month",
			Desc: "Thirty perfect days in a row",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Metrics.PerfectDayStreak >= 30
			},
			Reward: Reward{Essence: 250, Exp: 1000, Items: []RewardItem{{ID: "halo_immaculate", Name: "Immaculate Halo", Qty: 1, Type: "cosmetic"}}},
		},
		{
			ID: "boss_hunter_10", Title: "Titan Slayer",
			Desc: "Complete 10 boss quests in a day",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Metrics.BossCompletedCount >= 10
			},
			Reward: Reward{Essence: 200, Exp: 750, Items: []RewardItem{{ID: "blade_titan_slayer", Name: "Titan-Slayer Blade", Qty: 1, Type: "cosmetic"}}},
		},
		{
			ID: "boss_hunter_legendary", Title: "Nemesis of Legends",
			Desc: "Complete 25 boss quests in a day",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Metrics.BossCompletedCount >= 25
			},
			Reward: Reward{Essence: 500, Exp: 1500, Items: []RewardItem{{ID: "armor_nemesis", Name: "Nemesis Armor", Qty: 1, Type: "cosmetic"}}},
		},
		{
			ID: "exp_master", Title: "Master of Knowledge",
			Desc: "Reach 5000 experience points",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Exp >= 5000
			},
			Reward: Reward{Essence: 100, Items: []RewardItem{{ID: "tome_knowledge", Name: "Tome of Knowledge", Qty: 1, Type: "cosmetic"}}},
		},
		{
			ID: "exp_sage", Title: "Ancestral Sage",
			Desc: "Reach 25000 experience points",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Exp >= 25000
			},
			Reward: Reward{Essence: 300, Items: []RewardItem{{ID: "staff_sage", Name: "Sage's Staff", Qty: 1, Type: "cosmetic"}}},
		},
		{
			ID: "essence_collector", Title: "Essence Collector",
			Desc: "Accumulate 1000 essence",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Wallet.Essence >= 1000
			},
			Reward: Reward{Exp: 500, Items: []RewardItem{{ID: "vault_collector", Name: "Collector's Vault", Qty: 1, Type: "cosmetic"}}},
		},
		{
			ID: "essence_magnate", Title: "Essence Magnate",
			Desc: "Accumulate 5000 essence",
			Condition: func(ctx *ConditionContext) bool {
				return ctx.State.Wallet.Essence >= 5000
			},
			Reward: Reward{Exp: 2000, Items: []RewardItem{{ID: "palace_magnate", Name: "Magnate's Palace", Qty: 1, Type: "cosmetic"}}},
		},
		{
			ID: MonarchFragmentsAchievementID, Title: "Lord of the Void",
			Desc: "Gather the 5 fragments of the Monarch's Dominion",
			Condition: func(ctx *ConditionContext) bool {
				for _, fragmentID := range FragmentSet {
					if !ctx.State.HasItem(fragmentID) {
						return false
					}
				}
				return true
			},
			Reward: Reward{
				Essence: 25,
				Exp:     100,
				Items:   []RewardItem{{ID: "theme_dominio_complete", Name: "Monarch's Dominion Complete", Qty: 1, Type: "theme"}},
			},
		},
	}
}

func defaultQuestAchievements() []*QuestAchievement {
	return []*QuestAchievement{
		{
			ID: "quest_speed_demon", Title: "Speed Demon",
			Desc: "Complete a quest within 5 minutes of creating it",
			Condition: func(q *Quest, meta QuestCompletionMeta) bool {
				return meta.Elapsed > 0 && meta.Elapsed < 5*time.Minute
			},
			Reward: Reward{Exp: 50, Essence: 10},
		},
		{
			ID: "quest_marathon", Title: "Marathoner",
			Desc: "Complete a quest with 10 or more objectives",
			Condition: func(q *Quest, meta QuestCompletionMeta) bool {
				return len(q.Objectives) >= 10
			},
			Reward: Reward{Exp: 100, Essence: 20},
		},
		{
			ID: "quest_perfectionist", Title: "Perfectionist",
			Desc: "Complete every objective of a quest without editing any note",
			Condition: func(q *Quest, meta QuestCompletionMeta) bool {
				return meta.EditCount == 0 && len(q.Objectives) > 0
			},
			Reward: Reward{Exp: 75, Essence: 15},
		},
		{
			ID: "quest_epic_boss", Title: "Epic Slayer",
			Desc: "Complete a boss quest of epic rarity or higher",
			Condition: func(q *Quest, meta QuestCompletionMeta) bool {
				return q.IsBoss && (q.Rarity == "epic" || q.Rarity == "legendary")
			},
			Reward: Reward{Exp: 150, Essence: 30},
		},
		{
			ID: "quest_legendary_master", Title: "Legendary Master",
			Desc: "Complete a legendary quest",
			Condition: func(q *Quest, meta QuestCompletionMeta) bool {
				return q.Rarity == "legendary"
			},
			Reward: Reward{Exp: 200, Essence: 40},
		},
		{
			ID: "quest_rank_s_champion", Title: "Rank S Champion",
			Desc: "Complete a rank S quest",
			Condition: func(q *Quest, meta QuestCompletionMeta) bool {
				return q.Rank == "S"
			},
			Reward: Reward{Exp: 250, Essence: 50},
		},
		{
			ID: "quest_night_owl", Title: "Night Owl",
			Desc: "Complete a quest between 10 PM and 6 AM",
			Condition: func(q *Quest, meta QuestCompletionMeta) bool {
				hour := meta.CompletedAt.Hour()
				return hour >= 22 || hour < 6
			},
			Reward: Reward{Exp: 75, Essence: 15},
		},
		{
			ID: "quest_early_bird", Title: "Early Bird",
			Desc: "Complete a quest before 7 AM",
			Condition: func(q *Quest, meta QuestCompletionMeta) bool {
				return meta.CompletedAt.Hour() < 7
			},
			Reward: Reward{Exp: 100, Essence: 20},
		},
	}
}

func defaultChestTables() []*ChestTable {
	return []*ChestTable{
		{
			ID: "chest_small", Name: "Small Chest",
			ExpMin: 100, ExpMax: 200, EssenceMin: 10, EssenceMax: 30,
			Drops: []ChestDrop{
				{ItemID: GhostNoteItemID, Chance: 0.25, Qty: 1},
			},
		},
		{
			ID: "chest_rare", Name: "Rare Chest",
			ExpMin: 220, ExpMax: 370, EssenceMin: 25, EssenceMax: 50,
			Drops: []ChestDrop{
				{ItemID: GhostNoteItemID, Chance: 0.5, Qty: 1, BonusQtyChance: 0.3},
				{ItemID: "fragment_essence", Chance: 0.2, Qty: 1},
			},
			PityThreshold:  4,
			PityFragmentID: "fragment_essence",
		},
		{
			ID: "chest_epic", Name: "Epic Chest",
			ExpMin: 380, ExpMax: 630, EssenceMin: 45, EssenceMax: 85,
			Drops: []ChestDrop{
				{ItemID: GhostNoteItemID, Chance: 1, Qty: 1, BonusQtyChance: 0.5},
				{ItemID: "fragment_void", Chance: 0.4, Qty: 1},
			},
			PityThreshold:  2,
			PityFragmentID: "fragment_void",
		},
		{
			ID: "chest_legendary", Name: "Legendary Chest",
			ExpMin: 650, ExpMax: 1050, EssenceMin: 80, EssenceMax: 150,
			Drops: []ChestDrop{
				{ItemID: GhostNoteItemID, Chance: 1, Qty: 2},
			},
			GuaranteedFragment: true,
		},
	}
}
