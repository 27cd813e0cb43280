// Package levels provides level loading for Caves.
// This package depends on cave but cave does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/cave/levels/formats"
)

// ErrNotFound is returned by LoadByID for unknown ids.
var ErrNotFound = errors.New("levels: level not found")

// Loader handles loading levels from a file tree.
type Loader struct {
	FS   fs.FS
	Root string // Used in error messages
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: root}
}

// NewFSLoader creates a loader over an arbitrary filesystem, such as an embed.FS.
func NewFSLoader(fsys fs.FS, name string) *Loader {
	return &Loader{FS: fsys, Root: name}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]cave.Level, error) {
	var levels []cave.Level

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file, relative to the loader's root.
func (l *Loader) LoadFile(p string) (cave.Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return cave.Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	ext := strings.ToLower(path.Ext(p))
	lv, err := parseByExtension(data, ext)
	if err != nil {
		return cave.Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	return lv, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (cave.Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return cave.Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return cave.Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (cave.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return cave.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
