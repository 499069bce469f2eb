package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "settings.json")
}

func TestLoadMissingFile(t *testing.T) {
	s := Load(tempPath(t))
	assert.Equal(t, "", s.DefaultRole("guild"))
}

func TestLoadMalformedFile(t *testing.T) {
	path := tempPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := Load(path)
	assert.Equal(t, "", s.DefaultRole("guild"))
}

func TestSetClearRoundTrip(t *testing.T) {
	path := tempPath(t)
	s := Load(path)

	require.NoError(t, s.SetDefaultRole("g1", "r1"))
	assert.Equal(t, "r1", s.DefaultRole("g1"))
	assert.Equal(t, "", s.DefaultRole("g2"))

	require.NoError(t, s.SetDefaultRole("g1", "r2"))
	assert.Equal(t, "r2", s.DefaultRole("g1"))

	require.NoError(t, s.ClearDefaultRole("g1"))
	assert.Equal(t, "", s.DefaultRole("g1"))
}

func TestMutationsPersistAcrossLoads(t *testing.T) {
	path := tempPath(t)

	s := Load(path)
	require.NoError(t, s.SetDefaultRole("g1", "r1"))

	reloaded := Load(path)
	assert.Equal(t, "r1", reloaded.DefaultRole("g1"))
}

func TestDocumentShape(t *testing.T) {
	path := tempPath(t)
	s := Load(path)
	require.NoError(t, s.SetDefaultRole("g1", "r1"))

	dat, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"guilds": {"g1": {"defaultRoleId": "r1"}}}`, string(dat))

	// Cleared guilds keep an empty record; the role key is dropped.
	require.NoError(t, s.ClearDefaultRole("g1"))
	dat, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"guilds": {"g1": {}}}`, string(dat))
}

func TestGuildRecordIsShared(t *testing.T) {
	d := Load(tempPath(t)).(*db)

	first := d.guild("g1")
	second := d.guild("g1")
	require.Same(t, first, second)

	first.DefaultRoleID = "r1"
	assert.Equal(t, "r1", second.DefaultRoleID)
}

func TestLoadCreatesSettingsDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "settings.json")
	s := Load(path)
	require.NoError(t, s.SetDefaultRole("g1", "r1"))
	assert.Equal(t, "r1", Load(path).DefaultRole("g1"))
}
