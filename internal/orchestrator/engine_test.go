package orchestrator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/config"
)

func engineConfig() config.EngineConfig {
	return config.EngineConfig{
		MemoryLength:        5,
		BucketThreshold:     0.5,
		PunctuationOverride: 1.2,
		ResponseMinLength:   20,
		ResponseMaxLength:   150,
		ResponseSeed:        3,
	}
}

func TestBuildEngineDefaults(t *testing.T) {
	engine, err := BuildEngine(engineConfig(), nil)
	require.NoError(t, err)

	res, err := engine.Analyzer.Analyze("I love this place", nil)
	require.NoError(t, err)
	assert.Equal(t, "ecstatic", res.Label)
	assert.NotEmpty(t, engine.Selector.Select(res.Label))
}

func TestBuildEngineSeedIsDeterministic(t *testing.T) {
	a, err := BuildEngine(engineConfig(), nil)
	require.NoError(t, err)
	b, err := BuildEngine(engineConfig(), nil)
	require.NoError(t, err)
	for range 10 {
		assert.Equal(t, a.Selector.Select("happy"), b.Selector.Select("happy"))
	}
}

func TestBuildEngineLexiconFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.txt")
	require.NoError(t, os.WriteFile(path, []byte("zorgle\t3.5\t0.5\t[3, 4, 4]\n"), 0o600))
	cfg := engineConfig()
	cfg.LexiconPath = path
	engine, err := BuildEngine(cfg, nil)
	require.NoError(t, err)

	res, err := engine.Analyzer.Analyze("zorgle", nil)
	require.NoError(t, err)
	assert.Greater(t, res.Score.Compound, 0.5)
}

func TestBuildEngineErrors(t *testing.T) {
	cfg := engineConfig()
	cfg.LexiconPath = filepath.Join(t.TempDir(), "missing.txt")
	_, err := BuildEngine(cfg, nil)
	assert.Error(t, err)

	cfg = engineConfig()
	cfg.TablesPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = BuildEngine(cfg, nil)
	assert.Error(t, err)
}
