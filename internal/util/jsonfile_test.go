package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitor.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"cpu high","type":"metric alert"}`), 0644))

	var doc map[string]any
	require.NoError(t, ReadJSONFile(path, &doc))
	assert.Equal(t, "cpu high", doc["name"])
	assert.Equal(t, "metric alert", doc["type"])
}

func TestReadJSONFileMissing(t *testing.T) {
	var doc map[string]any
	err := ReadJSONFile(filepath.Join(t.TempDir(), "absent.json"), &doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading")
}

func TestReadJSONFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	var doc map[string]any
	err := ReadJSONFile(path, &doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing JSON")
}
