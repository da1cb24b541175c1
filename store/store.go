// Package store is the flat-JSON persistence collaborator: it loads and
// saves the whole state document, the settings document and the media
// library, and stores uploaded cover images. Failures here are logged and
// never surfaced to the reducer; the in-memory state stays the source of
// truth.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"soloquest/arise"
)

const (
	stateFile    = "quests.json"
	settingsFile = "settings.json"
	libraryFile  = "library.json"
)

// libraryTypeFiles maps library item types to their physical files.
var libraryTypeFiles = map[string]string{
	"comic":  "comics.json",
	"movie":  "movies.json",
	"series": "series.json",
	"game":   "games.json",
}

// SettingsDoc is the small settings document persisted separately from the
// quest data.
type SettingsDoc struct {
	LibraryFilter arise.LibraryFilter `json:"libraryFilter"`
	Theme         string              `json:"theme"`
}

// Store persists documents under a data directory.
type Store struct {
	mu        sync.Mutex
	dataDir   string
	coversDir string
	logger    *zap.Logger
}

// New creates a Store rooted at dataDir, with cover uploads under
// coversDir. Both directories are created if missing.
func New(dataDir, coversDir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, pkgerrors.Wrap(err, "create data dir")
	}
	if err := os.MkdirAll(coversDir, 0o755); err != nil {
		return nil, pkgerrors.Wrap(err, "create covers dir")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dataDir: dataDir, coversDir: coversDir, logger: logger}, nil
}

// LoadState returns the persisted state document, or an empty default when
// none exists yet.
func (s *Store) LoadState() (*arise.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := arise.NewState()
	data, err := os.ReadFile(filepath.Join(s.dataDir, stateFile))
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return nil, pkgerrors.Wrap(err, "read state file")
	}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, pkgerrors.Wrap(err, "parse state file")
	}
	state.Normalize()
	return state, nil
}

// SaveState persists the full state document. Writes go through a temp file
// and rename so a crashed save never truncates the previous snapshot.
func (s *Store) SaveState(state *arise.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(err, "encode state")
	}
	return s.writeFile(stateFile, data)
}

// LoadSettings returns the settings document or defaults.
func (s *Store) LoadSettings() (SettingsDoc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := SettingsDoc{
		LibraryFilter: arise.LibraryFilter{Type: "all", Status: "all"},
		Theme:         "default",
	}
	data, err := os.ReadFile(filepath.Join(s.dataDir, settingsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, pkgerrors.Wrap(err, "read settings file")
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, pkgerrors.Wrap(err, "parse settings file")
	}
	if doc.LibraryFilter.Type == "" {
		doc.LibraryFilter.Type = "all"
	}
	if doc.LibraryFilter.Status == "" {
		doc.LibraryFilter.Status = "all"
	}
	if doc.Theme == "" {
		doc.Theme = "default"
	}
	return doc, nil
}

// SaveSettings persists the settings document.
func (s *Store) SaveSettings(doc SettingsDoc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(err, "encode settings")
	}
	return s.writeFile(settingsFile, data)
}

type libraryEnvelope struct {
	Items []arise.LibraryItem `json:"items"`
}

type legacyLibraryEnvelope struct {
	Library []arise.LibraryItem `json:"library"`
}

// LoadLibrary aggregates the per-type library files, falling back to the
// legacy single-file layout when none exist yet.
func (s *Store) LoadLibrary() ([]arise.LibraryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]arise.LibraryItem, 0)
	for _, typ := range []string{"comic", "movie", "series", "game"} {
		data, err := os.ReadFile(filepath.Join(s.dataDir, libraryTypeFiles[typ]))
		if err != nil {
			continue
		}
		var env libraryEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.logger.Warn("skipping unreadable library file",
				zap.String("type", typ), zap.Error(err))
			continue
		}
		items = append(items, env.Items...)
	}
	if len(items) > 0 {
		return items, nil
	}

	data, err := os.ReadFile(filepath.Join(s.dataDir, libraryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return items, nil
		}
		return nil, pkgerrors.Wrap(err, "read library file")
	}
	var legacy legacyLibraryEnvelope
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, pkgerrors.Wrap(err, "parse library file")
	}
	if legacy.Library != nil {
		items = legacy.Library
	}
	return items, nil
}

// SaveLibrary splits the library by item type into the per-type files.
func (s *Store) SaveLibrary(items []arise.LibraryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byType := make(map[string][]arise.LibraryItem, len(libraryTypeFiles))
	for typ := range libraryTypeFiles {
		byType[typ] = make([]arise.LibraryItem, 0)
	}
	for _, item := range items {
		typ := item.Type
		if _, ok := libraryTypeFiles[typ]; !ok {
			typ = "comic"
		}
		byType[typ] = append(byType[typ], item)
	}

	for typ, file := range libraryTypeFiles {
		data, err := json.MarshalIndent(libraryEnvelope{Items: byType[typ]}, "", "  ")
		if err != nil {
			return pkgerrors.Wrapf(err, "encode %s library", typ)
		}
		if err := s.writeFile(file, data); err != nil {
			return err
		}
	}
	return nil
}

// SaveCover stores an uploaded cover image and returns its serving path.
// The returned reference is what library items persist; raw bytes never
// enter the state document.
func (s *Store) SaveCover(data []byte, originalName string) (string, error) {
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".png"
	}
	name := "cover_" + time.Now().UTC().Format("20060102150405") + "_" + uuid.NewString()[:8] + ext
	if err := os.WriteFile(filepath.Join(s.coversDir, name), data, 0o644); err != nil {
		return "", pkgerrors.Wrap(err, "write cover")
	}
	return "/covers/" + name, nil
}

func (s *Store) writeFile(name string, data []byte) error {
	target := filepath.Join(s.dataDir, name)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return pkgerrors.Wrapf(err, "write %s", name)
	}
	if err := os.Rename(tmp, target); err != nil {
		return pkgerrors.Wrapf(err, "replace %s", name)
	}
	return nil
}
