package arise

// LibraryItemPatch carries partial updates to a library item. Nil fields are
// left untouched.
type LibraryItemPatch struct {
	Title     *string   `json:"title,omitempty"`
	Type      *string   `json:"type,omitempty"`
	Status    *string   `json:"status,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
	CoverPath *string   `json:"coverPath,omitempty"`
	Rating    *int      `json:"rating,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
}

// LibrarySystem manages the personal media library (comics, movies, series,
// games) and its view filter.
type LibrarySystem interface {
	System

	AddItem(state *State, item LibraryItem) (*LibraryItem, error)
	UpdateItem(state *State, id string, patch LibraryItemPatch)
	RemoveItem(state *State, id string)
	SetFilter(state *State, filter LibraryFilter)

	// SyncQuestLinks replaces the quest links of a library item.
	SyncQuestLinks(state *State, libraryID string, questIDs []string)
}
