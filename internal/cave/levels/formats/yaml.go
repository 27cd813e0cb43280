// Package formats provides level file format parsers for Caves.
package formats

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"gopkg.in/yaml.v3"
)

// ErrMissingID is returned for level files without an id.
var ErrMissingID = errors.New("formats: level has no id")

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Time         float64 `yaml:"time,omitempty"`
	GemsRequired *int    `yaml:"gems_required,omitempty"`
	StartKeys    int     `yaml:"start_keys,omitempty"`
	Map          string  `yaml:"map"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (cave.Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return cave.Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return cave.Level{}, ErrMissingID
	}

	lv, err := ParseMap(SplitRows(yl.Map))
	if err != nil {
		return cave.Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}

	lv.ID = yl.ID
	lv.Name = yl.Name
	if lv.Name == "" {
		lv.Name = yl.ID
	}
	lv.TimeLimit = yl.Time
	lv.StartKeys = max(yl.StartKeys, 0)
	lv.GemsRequired = yl.GemsRequired

	return lv, nil
}

// SplitRows splits a map block into rows, dropping trailing blank lines.
func SplitRows(m string) []string {
	m = strings.ReplaceAll(m, "\r\n", "\n")
	m = strings.TrimRight(m, "\n")
	if m == "" {
		return nil
	}
	return strings.Split(m, "\n")
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
