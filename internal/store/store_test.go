package store

import (
	"os"
	"path/filepath"
	"testing"

	"wordspotr/internal/clients_api/dexscreener"
	"wordspotr/internal/features/filters"
	"wordspotr/internal/features/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSavedWordsNormalizes(t *testing.T) {
	s := New(t.TempDir())

	require.NoError(t, s.SetSavedWords(1, []string{" Moon ", "PEPE", "", "doge"}))
	assert.Equal(t, []string{"moon", "pepe", "doge"}, s.SavedWords(1))
}

func TestSetSavedWordsReplaces(t *testing.T) {
	s := New(t.TempDir())

	require.NoError(t, s.SetSavedWords(1, []string{"moon", "pepe"}))
	require.NoError(t, s.SetSavedWords(1, []string{"doge"}))
	assert.Equal(t, []string{"doge"}, s.SavedWords(1))
}

func TestSetSavedWordsRejectsInvalid(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.SetSavedWords(1, []string{"moon"}))

	err := s.SetSavedWords(1, []string{"a", "b", "c", "d", "e", "f"})
	assert.ErrorIs(t, err, ErrTooManyWords)

	err = s.SetSavedWords(1, []string{"  ", ""})
	assert.ErrorIs(t, err, ErrNoWords)

	// failed submissions leave the previous list untouched
	assert.Equal(t, []string{"moon"}, s.SavedWords(1))
}

func TestWordsSnapshotCopies(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.SetSavedWords(1, []string{"moon"}))
	s.ClearSavedWords(2)

	snap := s.WordsSnapshot()
	require.Len(t, snap, 1)

	snap[1][0] = "mutated"
	assert.Equal(t, []string{"moon"}, s.SavedWords(1))
}

func TestMarkNotifiedAtMostOnce(t *testing.T) {
	s := New(t.TempDir())

	assert.True(t, s.MarkNotified(1, "addr"))
	assert.False(t, s.MarkNotified(1, "addr"))

	// other conversations and tokens are independent
	assert.True(t, s.MarkNotified(2, "addr"))
	assert.True(t, s.MarkNotified(1, "other"))
}

func TestSetResultsTracksStats(t *testing.T) {
	s := New(t.TempDir())

	pairs := []dexscreener.Pair{{}, {}, {}}
	s.SetResults(1, search.NewResultSet("moon rocket", pairs))
	s.SetResults(1, search.NewResultSet("pepe", pairs[:2]))

	snap := s.Snapshot(1)
	assert.Equal(t, "pepe", snap.LastSearch)
	assert.Equal(t, 5, snap.TokensFound)
}

func TestSetPage(t *testing.T) {
	s := New(t.TempDir())
	s.SetResults(1, search.NewResultSet("q", make([]dexscreener.Pair, 12)))

	s.SetPage(1, 3)
	assert.Equal(t, 3, s.Results(1).Page)

	// no session, no panic
	s.SetPage(2, 5)
	assert.Nil(t, s.Results(2))
}

func TestFlushAndLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()

	s := New(dir)
	require.NoError(t, s.SetSavedWords(7, []string{"moon", "doge"}))
	require.True(t, s.SetConstraint(7, filters.KeyFdv, filters.Threshold(filters.OpGreater, 50000)))
	s.SetChain(7, "SOL")
	require.True(t, s.MarkNotified(7, "addr"))
	require.NoError(t, s.Flush())

	for _, name := range []string{filtersFile, wordsFile, notifiedFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	loaded := New(dir)
	require.NoError(t, loaded.Load())

	assert.Equal(t, []string{"moon", "doge"}, loaded.SavedWords(7))
	set := loaded.Filters(7)
	require.NotNil(t, set.Fdv)
	assert.Equal(t, filters.OpGreater, set.Fdv.Op)
	assert.Equal(t, 50000.0, set.Fdv.Value)
	assert.Equal(t, "SOL", set.Chain)
	assert.False(t, loaded.MarkNotified(7, "addr"))
}

func TestFlushSkipsWhenClean(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	require.NoError(t, s.Flush())
	_, err := os.Stat(filepath.Join(dir, wordsFile))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadMissingDirectory(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.NoError(t, s.Load())
}

func TestLoadCorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, wordsFile), []byte("{broken"), 0644))

	s := New(dir)
	assert.NoError(t, s.Load())
	assert.Empty(t, s.SavedWords(1))
}
