package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverSimFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"building.SIM", "plant.sim", "notes.txt", "summary.Sim"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.sim"), 0755))

	files, err := discoverSimFiles(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.ElementsMatch(t, []string{"building.SIM", "plant.sim", "summary.Sim"}, names)
}

func TestDiscoverSimFiles_MissingDir(t *testing.T) {
	_, err := discoverSimFiles(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestDecodeLatin1(t *testing.T) {
	// 0xB0 is the degree sign in Latin-1
	text, err := decodeLatin1([]byte{'7', '2', 0xB0, 'F'})
	require.NoError(t, err)
	assert.Equal(t, "72°F", text)
}

func TestBuildRegistry_DefaultOnly(t *testing.T) {
	registry, err := buildRegistry("")
	require.NoError(t, err)
	assert.True(t, registry.Known("BEPS"))
}

func TestBuildRegistry_CatalogueOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.yaml")
	catalogue := `reports:
  - code: EM-1
    title: Utility Rate Summary
    strategy: delimited
    header_rows: 2
    label: Month
  - code: BEPS
    strategy: fixed-width
`
	require.NoError(t, os.WriteFile(path, []byte(catalogue), 0644))

	registry, err := buildRegistry(path)
	require.NoError(t, err)

	assert.True(t, registry.Known("EM-1"))
	// Loaded entries override the built-in catalogue.
	assert.Equal(t, "fixed-width", string(registry.Lookup("BEPS").Strategy))
}

func TestBuildRegistry_BadCatalogue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reports: []"), 0644))

	_, err := buildRegistry(path)
	assert.Error(t, err)
}
