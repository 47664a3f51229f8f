package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.NoFileExists(t, store.Path())
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "norka")

	_, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	want, err := DefaultConfigDir()
	if err != nil {
		t.Skip("Cannot determine config directory")
	}

	store, err := NewConfigStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(want, "config.toml"), store.Path())
}

func TestConfigStore_LoadsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[storage]
data_dir = "/srv/notes"
busy_timeout_ms = 1500
journal_mode = "wal"

[log]
verbose = true
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/notes", store.GetString("storage.data_dir"))
	assert.Equal(t, 1500, store.GetInt("storage.busy_timeout_ms"))
	assert.Equal(t, "wal", store.GetString("storage.journal_mode"))
	assert.True(t, store.GetBool("log.verbose"))
}

func TestConfigStore_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[storage\nbroken"), 0600))

	_, err := NewConfigStore(tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestConfigStore_SetPersistsAsTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("storage.data_dir", "/data"))
	require.NoError(t, store.Set("storage.busy_timeout_ms", 250))
	require.NoError(t, store.Set("log.verbose", true))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[storage]")
	assert.Contains(t, string(raw), "[log]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "/data", reloaded.GetString("storage.data_dir"))
	assert.Equal(t, 250, reloaded.GetInt("storage.busy_timeout_ms"))
	assert.True(t, reloaded.GetBool("log.verbose"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("log.format", "json"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("s", "text"))
	require.NoError(t, store.Set("i", 3))
	require.NoError(t, store.Set("b", true))

	assert.Equal(t, "text", store.GetString("s"))
	assert.Equal(t, "", store.GetString("i"))
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 3, store.GetInt("i"))
	assert.Equal(t, 0, store.GetInt("s"))
	assert.True(t, store.GetBool("b"))
	assert.False(t, store.GetBool("s"))
}

func TestConfigStore_SetInvalidKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", ".leading", "trailing."} {
		assert.Error(t, store.Set(key, "x"), key)
	}
}

func TestConfigStore_SetConflictRollsBack(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("storage", "flat"))
	err = store.Set("storage.data_dir", "/data")
	require.Error(t, err)

	_, ok := store.Get("storage.data_dir")
	assert.False(t, ok)
	assert.Equal(t, "flat", store.GetString("storage"))
}

func TestFlattenAndNest(t *testing.T) {
	nested := map[string]any{
		"storage": map[string]any{
			"data_dir": "/d",
			"sqlite": map[string]any{
				"journal": "wal",
			},
		},
		"top": int64(1),
	}

	flat := flattenMap(nested, "")
	assert.Equal(t, map[string]any{
		"storage.data_dir":       "/d",
		"storage.sqlite.journal": "wal",
		"top":                    int64(1),
	}, flat)

	back, err := nestMap(flat)
	require.NoError(t, err)
	assert.Equal(t, nested, back)
}
