package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/vovakirdan/tui-caves/internal/cave"
)

//go:embed data/*.yaml
var campaignFS embed.FS

// ErrNoLevels is returned when a level source yields nothing playable.
var ErrNoLevels = errors.New("levels: no levels found")

// Campaign returns the built-in levels in play order.
func Campaign() ([]cave.Level, error) {
	sub, err := fs.Sub(campaignFS, "data")
	if err != nil {
		return nil, fmt.Errorf("levels: campaign: %w", err)
	}
	levels, err := NewFSLoader(sub, "campaign").LoadAll()
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	return levels, nil
}

// Resolve returns the levels in dir, or the built-in campaign when dir is empty.
func Resolve(dir string) ([]cave.Level, error) {
	if dir == "" {
		return Campaign()
	}
	levels, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoLevels, dir)
	}
	return levels, nil
}

// Index returns the position of the level with the given id, or -1.
func Index(levels []cave.Level, id string) int {
	for i, lv := range levels {
		if lv.ID == id {
			return i
		}
	}
	return -1
}
