package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocationsDefaults(t *testing.T) {
	catalog, err := LoadLocations("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLocations, catalog)
	assert.NotEmpty(t, catalog)
}

func TestLoadLocationsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	payload := `[{"name":"Springfield, MO","lat":37.2090,"lng":-93.2923}]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	catalog, err := LoadLocations(path)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, "Springfield, MO", catalog[0].Name)
	assert.InDelta(t, 37.2090, catalog[0].Latitude, 1e-9)
	assert.InDelta(t, -93.2923, catalog[0].Longitude, 1e-9)
}

func TestLoadLocationsBadFile(t *testing.T) {
	_, err := LoadLocations(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = LoadLocations(path)
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("[]"), 0o644))
	_, err = LoadLocations(empty)
	assert.Error(t, err)
}
