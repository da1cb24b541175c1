package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"soloquest/arise"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := New(dir, filepath.Join(dir, "covers"), zap.NewNop())
	require.NoError(t, err)
	return st
}

func TestLoadState_MissingFileReturnsDefaults(t *testing.T) {
	st := newTestStore(t)

	state, err := st.LoadState()
	require.NoError(t, err)
	assert.Empty(t, state.Quests)
	assert.Equal(t, "all", state.Filter)
	assert.Equal(t, "default", state.Theme)
	assert.NotNil(t, state.Metrics.Pity)
}

func TestSaveAndLoadState_RoundTrip(t *testing.T) {
	st := newTestStore(t)

	state := arise.NewState()
	state.Exp = 420
	state.Wallet.Essence = 35
	state.Quests = append(state.Quests, &arise.Quest{
		ID:    "q_1",
		Title: "Persisted",
		Rank:  "B",
		Objectives: []*arise.Objective{
			{ID: "o_1", Title: "obj", DailyNotes: map[string]string{"2025-06-04": "done"}},
		},
	})
	require.NoError(t, st.SaveState(state))

	loaded, err := st.LoadState()
	require.NoError(t, err)
	assert.Equal(t, 420, loaded.Exp)
	assert.Equal(t, 35, loaded.Wallet.Essence)
	require.Len(t, loaded.Quests, 1)
	assert.Equal(t, "done", loaded.Quests[0].Objectives[0].DailyNotes["2025-06-04"])
}

func TestSaveState_NeverLeavesTempFile(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SaveState(arise.NewState()))

	entries, err := os.ReadDir(st.dataDir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), e.Name())
	}
}

func TestSettings_RoundTripAndDefaults(t *testing.T) {
	st := newTestStore(t)

	doc, err := st.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "all", doc.LibraryFilter.Type)
	assert.Equal(t, "default", doc.Theme)

	doc.Theme = "dominio"
	doc.LibraryFilter = arise.LibraryFilter{Type: "game", Status: "playing"}
	require.NoError(t, st.SaveSettings(doc))

	loaded, err := st.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "dominio", loaded.Theme)
	assert.Equal(t, "game", loaded.LibraryFilter.Type)
}

func TestLibrary_SplitsByType(t *testing.T) {
	st := newTestStore(t)

	items := []arise.LibraryItem{
		{ID: "lib_1", Title: "Solo Leveling", Type: "comic"},
		{ID: "lib_2", Title: "Dune", Type: "movie"},
		{ID: "lib_3", Title: "Hollow Knight", Type: "game"},
	}
	require.NoError(t, st.SaveLibrary(items))

	data, err := os.ReadFile(filepath.Join(st.dataDir, "comics.json"))
	require.NoError(t, err)
	var env libraryEnvelope
	require.NoError(t, json.Unmarshal(data, &env))
	require.Len(t, env.Items, 1)
	assert.Equal(t, "Solo Leveling", env.Items[0].Title)

	loaded, err := st.LoadLibrary()
	require.NoError(t, err)
	assert.Len(t, loaded, 3)
}

func TestLibrary_LegacySingleFileFallback(t *testing.T) {
	st := newTestStore(t)

	legacy := `{"library":[{"id":"lib_old","title":"Old Entry","type":"comic"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(st.dataDir, "library.json"), []byte(legacy), 0o644))

	loaded, err := st.LoadLibrary()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "lib_old", loaded[0].ID)
}

func TestSaveCover_ReturnsServingPath(t *testing.T) {
	st := newTestStore(t)

	path, err := st.SaveCover([]byte{0x89, 0x50, 0x4e, 0x47}, "art.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/covers/cover_"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	_, err = os.Stat(filepath.Join(st.coversDir, strings.TrimPrefix(path, "/covers/")))
	assert.NoError(t, err)
}

func TestDebouncedSaver_LastSnapshotWins(t *testing.T) {
	st := newTestStore(t)
	saver := NewDebouncedSaver(st, 20*time.Millisecond, zap.NewNop())

	first := arise.NewState()
	first.Exp = 1
	second := arise.NewState()
	second.Exp = 2

	saver.Schedule(first)
	saver.Schedule(second)
	time.Sleep(60 * time.Millisecond)

	loaded, err := st.LoadState()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Exp)
}

func TestDebouncedSaver_FlushWritesImmediately(t *testing.T) {
	st := newTestStore(t)
	saver := NewDebouncedSaver(st, time.Hour, zap.NewNop())

	state := arise.NewState()
	state.Exp = 7
	saver.Schedule(state)
	saver.Flush()

	loaded, err := st.LoadState()
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Exp)

	// Flushing with nothing pending is harmless.
	saver.Flush()
}
