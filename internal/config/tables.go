package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/emotion"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/responses"
)

// TablesFile is the YAML overlay for the built-in emotion and reply
// tables. Sections left out keep their built-in values.
type TablesFile struct {
	emotion.Tables `yaml:",inline"`
	Responses      responses.Table `yaml:"responses"`
}

// LoadTables returns the built-in tables overlaid with the file at path.
// An empty path returns the built-in tables unchanged.
func LoadTables(path string) (emotion.Tables, responses.Table, error) {
	tables, replies := emotion.DefaultTables(), responses.DefaultTable()
	if path == "" {
		return tables, replies, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return emotion.Tables{}, nil, fmt.Errorf("open tables: %w", err)
	}
	defer f.Close()

	var overlay TablesFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&overlay); err != nil && !errors.Is(err, io.EOF) {
		return emotion.Tables{}, nil, fmt.Errorf("decode tables %s: %w", path, err)
	}

	tables = tables.Overlay(overlay.Tables)
	if err := tables.Validate(); err != nil {
		return emotion.Tables{}, nil, fmt.Errorf("tables %s: %w", path, err)
	}
	return tables, replies.Overlay(overlay.Responses), nil
}
