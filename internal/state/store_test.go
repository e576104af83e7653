package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glkt/upkeep/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "update-data.json")

	s := Load(path)
	s.SetUpdateDate("btop", "2026-03-20")
	s.SetHash("btop", "abc123")
	s.SetTagName("btop", "v1.4.0")
	s.SetUpdateDate("dotfiles", "2026-03-01")

	require.NoError(t, s.Persist())

	reloaded := Load(path)

	btop := reloaded.Get("btop")
	assert.Equal(t, "2026-03-20", btop.UpdateDate)
	assert.Equal(t, "abc123", btop.Hash)
	assert.Equal(t, "v1.4.0", btop.TagName)
	assert.Equal(t, "2026-03-01", reloaded.Get("dotfiles").UpdateDate)
}

func TestStore_PersistIsByteReproducible(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.json")
	second := filepath.Join(dir, "b.json")

	for _, path := range []string{first, second} {
		s := Load(path)
		s.SetUpdateDate("zz", "2026-01-01")
		s.SetUpdateDate("aa", "2026-01-02")
		s.SetTagName("mm", "v2")
		require.NoError(t, s.Persist())
	}

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestStore_MissingFileYieldsEmpty(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Empty(t, s.Get("anything").UpdateDate)
}

func TestStore_CorruptFileYieldsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "update-data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := Load(path)
	assert.Empty(t, s.Get("anything").UpdateDate)

	// The corrupt content is replaced wholesale on the next persist.
	s.SetUpdateDate("app", "2026-03-20")
	require.NoError(t, s.Persist())
	assert.Equal(t, "2026-03-20", Load(path).Get("app").UpdateDate)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "x.json"))
	s.SetTagName("app", "v1")

	rec := s.Get("app")
	rec.TagName = "mutated"

	assert.Equal(t, "v1", s.Get("app").TagName)
}
