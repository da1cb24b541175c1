package server

import (
	"soloquest/arise"
)

// Action type identifiers accepted by the dispatch endpoint.
const (
	ActionAddQuest        = "ADD_QUEST"
	ActionEditQuest       = "EDIT_QUEST"
	ActionSetQuestRank    = "SET_QUEST_RANK"
	ActionRemoveQuest     = "REMOVE_QUEST"
	ActionAddObjective    = "ADD_OBJECTIVE"
	ActionEditObjective   = "EDIT_OBJECTIVE"
	ActionRemoveObjective = "REMOVE_OBJECTIVE"
	ActionSetNote         = "SET_OBJECTIVE_NOTE"
	ActionArchiveQuest    = "ARCHIVE_QUEST"
	ActionUnarchiveQuest  = "UNARCHIVE_QUEST"
	ActionUnarchiveAll    = "UNARCHIVE_ALL"
	ActionSetFilter       = "SET_FILTER"
	ActionSetTheme        = "SET_THEME"
	ActionSetAnimations   = "SET_ANIMATIONS"
	ActionPurchaseItem    = "PURCHASE_ITEM"
	ActionUseItem         = "USE_ITEM"
	ActionClaimReward     = "CLAIM_REWARD"
	ActionClaimAll        = "CLAIM_ALL"
	ActionOpenChest       = "OPEN_CHEST"
	ActionRunSweep        = "RUN_SWEEP"
	ActionLibraryAdd      = "LIBRARY_ADD"
	ActionLibraryUpdate   = "LIBRARY_UPDATE"
	ActionLibraryRemove   = "LIBRARY_REMOVE"
	ActionLibrarySetFilter = "LIBRARY_SET_FILTER"
	ActionLibrarySyncQuests = "LIBRARY_SYNC_QUESTS"
)

// Action is the flat envelope of the dispatch endpoint. Only the fields
// relevant to the given type need to be set.
type Action struct {
	Type string `json:"type" binding:"required"`

	Title        string `json:"title,omitempty"`
	Rank         string `json:"rank,omitempty"`
	QuestType    string `json:"questType,omitempty"`
	Rarity       string `json:"rarity,omitempty"`
	IsBoss       bool   `json:"isBoss,omitempty"`
	IsRepeatable bool   `json:"isRepeatable,omitempty"`
	ActiveDays   []int  `json:"activeDays,omitempty"`

	QuestID     string `json:"questId,omitempty"`
	ObjectiveID string `json:"objectiveId,omitempty"`
	Note        string `json:"note,omitempty"`

	ItemID  string `json:"itemId,omitempty"`
	QueueID string `json:"queueId,omitempty"`

	Filter     string `json:"filter,omitempty"`
	Theme      string `json:"theme,omitempty"`
	Animations *bool  `json:"animations,omitempty"`

	LibraryItem   *arise.LibraryItem      `json:"libraryItem,omitempty"`
	LibraryPatch  *arise.LibraryItemPatch `json:"libraryPatch,omitempty"`
	LibraryID     string                  `json:"libraryId,omitempty"`
	LibraryFilter *arise.LibraryFilter    `json:"libraryFilter,omitempty"`
	QuestIDs      []string                `json:"questIds,omitempty"`
}

// applyAction runs one action against the state through the registered
// systems. It returns an optional payload (the created entity, when there is
// one), the emitted events and an error for rejected input.
func applyAction(hub arise.Arise, state *arise.State, a Action) (any, []arise.Event, error) {
	switch a.Type {
	case ActionAddQuest:
		q, err := hub.GetQuestsSystem().AddQuest(state, a.Title, a.Rank, a.QuestType, a.Rarity, a.IsBoss, a.IsRepeatable, a.ActiveDays)
		return q, nil, err
	case ActionEditQuest:
		return nil, nil, hub.GetQuestsSystem().EditQuest(state, a.QuestID, a.Title)
	case ActionSetQuestRank:
		return nil, nil, hub.GetQuestsSystem().SetQuestRank(state, a.QuestID, a.Rank)
	case ActionRemoveQuest:
		hub.GetQuestsSystem().RemoveQuest(state, a.QuestID)
		return nil, nil, nil
	case ActionAddObjective:
		o, err := hub.GetQuestsSystem().AddObjective(state, a.QuestID, a.Title)
		return o, nil, err
	case ActionEditObjective:
		return nil, nil, hub.GetQuestsSystem().EditObjective(state, a.QuestID, a.ObjectiveID, a.Title)
	case ActionRemoveObjective:
		hub.GetQuestsSystem().RemoveObjective(state, a.QuestID, a.ObjectiveID)
		return nil, nil, nil
	case ActionSetNote:
		events, err := hub.GetQuestsSystem().SetObjectiveNote(state, a.QuestID, a.ObjectiveID, a.Note)
		return nil, events, err
	case ActionArchiveQuest:
		hub.GetQuestsSystem().ArchiveQuest(state, a.QuestID)
		return nil, nil, nil
	case ActionUnarchiveQuest:
		hub.GetQuestsSystem().UnarchiveQuest(state, a.QuestID)
		return nil, nil, nil
	case ActionUnarchiveAll:
		hub.GetQuestsSystem().UnarchiveAll(state)
		return nil, nil, nil
	case ActionSetFilter:
		state.Filter = a.Filter
		return nil, nil, nil
	case ActionSetTheme:
		if a.Theme != "" {
			state.Theme = a.Theme
		}
		return nil, nil, nil
	case ActionSetAnimations:
		if a.Animations != nil {
			state.Settings.Animations = *a.Animations
		}
		return nil, nil, nil
	case ActionPurchaseItem:
		events, err := hub.GetShopSystem().Purchase(state, a.ItemID)
		return nil, events, err
	case ActionUseItem:
		return nil, hub.GetEconomySystem().UseItem(state, a.ItemID, a.QuestID, a.ObjectiveID), nil
	case ActionClaimReward:
		return nil, hub.GetEconomySystem().Claim(state, a.QueueID), nil
	case ActionClaimAll:
		return nil, hub.GetEconomySystem().ClaimAll(state), nil
	case ActionOpenChest:
		events, err := hub.GetLootSystem().OpenChest(state, a.ItemID)
		return nil, events, err
	case ActionRunSweep:
		return nil, hub.GetMetricsSystem().RunSweep(state), nil
	case ActionLibraryAdd:
		if a.LibraryItem == nil {
			return nil, nil, arise.ErrBadInput
		}
		item, err := hub.GetLibrarySystem().AddItem(state, *a.LibraryItem)
		return item, nil, err
	case ActionLibraryUpdate:
		if a.LibraryPatch == nil {
			return nil, nil, arise.ErrBadInput
		}
		hub.GetLibrarySystem().UpdateItem(state, a.LibraryID, *a.LibraryPatch)
		return nil, nil, nil
	case ActionLibraryRemove:
		hub.GetLibrarySystem().RemoveItem(state, a.LibraryID)
		return nil, nil, nil
	case ActionLibrarySetFilter:
		if a.LibraryFilter == nil {
			return nil, nil, arise.ErrBadInput
		}
		hub.GetLibrarySystem().SetFilter(state, *a.LibraryFilter)
		return nil, nil, nil
	case ActionLibrarySyncQuests:
		hub.GetLibrarySystem().SyncQuestLinks(state, a.LibraryID, a.QuestIDs)
		return nil, nil, nil
	default:
		return nil, nil, arise.NewError("unknown action type", arise.INVALID_ARGUMENT_ERROR_CODE)
	}
}
