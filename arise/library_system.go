package arise

import (
	"strings"

	"github.com/google/uuid"
)

// librarySystem implements the LibrarySystem interface.
type librarySystem struct {
	arise Arise
}

func newLibrarySystem(a Arise) *librarySystem {
	return &librarySystem{arise: a}
}

func (s *librarySystem) GetType() SystemType {
	return SystemTypeLibrary
}

func (s *librarySystem) AddItem(state *State, item LibraryItem) (*LibraryItem, error) {
	if strings.TrimSpace(item.Title) == "" {
		return nil, ErrLibraryTitleRequired
	}
	if item.Type == "" {
		item.Type = "comic"
	}
	if item.Status == "" {
		item.Status = "backlog"
	}
	item.ID = "lib_" + uuid.NewString()
	item.CreatedAt = s.arise.Clock().Now()
	if item.Tags == nil {
		item.Tags = make([]string, 0)
	}

	state.Library = append(state.Library, item)
	return &state.Library[len(state.Library)-1], nil
}

func (s *librarySystem) UpdateItem(state *State, id string, patch LibraryItemPatch) {
	for i := range state.Library {
		if state.Library[i].ID != id {
			continue
		}
		it := &state.Library[i]
		if patch.Title != nil {
			it.Title = *patch.Title
		}
		if patch.Type != nil {
			it.Type = *patch.Type
		}
		if patch.Status != nil {
			it.Status = *patch.Status
		}
		if patch.Tags != nil {
			it.Tags = *patch.Tags
		}
		if patch.CoverPath != nil {
			it.CoverPath = *patch.CoverPath
		}
		if patch.Rating != nil {
			it.Rating = *patch.Rating
		}
		if patch.Notes != nil {
			it.Notes = *patch.Notes
		}
		it.UpdatedAt = s.arise.Clock().Now()
		return
	}
}

func (s *librarySystem) RemoveItem(state *State, id string) {
	for i := range state.Library {
		if state.Library[i].ID == id {
			state.Library = append(state.Library[:i], state.Library[i+1:]...)
			return
		}
	}
}

func (s *librarySystem) SetFilter(state *State, filter LibraryFilter) {
	if filter.Type == "" {
		filter.Type = state.LibraryFilter.Type
	}
	if filter.Status == "" {
		filter.Status = state.LibraryFilter.Status
	}
	state.LibraryFilter = LibraryFilter{
		Type:   filter.Type,
		Status: filter.Status,
		Query:  filter.Query,
	}
}

func (s *librarySystem) SyncQuestLinks(state *State, libraryID string, questIDs []string) {
	for i := range state.Library {
		if state.Library[i].ID == libraryID {
			state.Library[i].QuestIDs = questIDs
			state.Library[i].UpdatedAt = s.arise.Clock().Now()
			return
		}
	}
}
