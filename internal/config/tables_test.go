package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/emotion"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/responses"
)

func writeTables(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func TestLoadTablesEmptyPathReturnsDefaults(t *testing.T) {
	tables, replies, err := LoadTables("")
	require.NoError(t, err)
	assert.Equal(t, emotion.DefaultTables(), tables)
	assert.Equal(t, responses.DefaultTable(), replies)
}

func TestLoadTablesOverlay(t *testing.T) {
	path := writeTables(t, `
keywords:
  - label: calm
    words: [mellow]
responses:
  calm:
    - "Sounds like a mellow moment for you."
`)
	tables, replies, err := LoadTables(path)
	require.NoError(t, err)

	require.Len(t, tables.Keywords, 1)
	assert.Equal(t, "calm", tables.Keywords[0].Label)
	assert.Equal(t, emotion.DefaultTables().Catalog, tables.Catalog)
	assert.Equal(t, []string{"Sounds like a mellow moment for you."}, replies["calm"])
	assert.Equal(t, responses.DefaultTable()["happy"], replies["happy"])
}

func TestLoadTablesEmptyFile(t *testing.T) {
	tables, _, err := LoadTables(writeTables(t, ""))
	require.NoError(t, err)
	assert.Equal(t, emotion.DefaultTables(), tables)
}

func TestLoadTablesErrors(t *testing.T) {
	cases := map[string]string{
		"unknown field":  "colours: [red]\n",
		"label outside":  "keywords:\n  - label: jubilant\n    words: [yay]\n",
		"malformed yaml": "keywords: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := LoadTables(writeTables(t, doc))
			assert.Error(t, err)
		})
	}

	_, _, err := LoadTables(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
