package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/tui-caves/internal/cave"
)

func TestLoaderLoadAll(t *testing.T) {
	fsys := fstest.MapFS{
		"b.yaml":        {Data: []byte("id: b\nmap: \"P\"\n")},
		"nested/a.yml":  {Data: []byte("id: a\nmap: \"P.\"\n")},
		"broken.yaml":   {Data: []byte("id: [")},
		"noplayer.yaml": {Data: []byte("id: c\nmap: \"...\"\n")},
		"readme.txt":    {Data: []byte("not a level")},
	}
	lvls, err := NewFSLoader(fsys, "test").LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if len(lvls) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(lvls))
	}
	if lvls[0].ID != "a" || lvls[1].ID != "b" {
		t.Errorf("levels not sorted: %s, %s", lvls[0].ID, lvls[1].ID)
	}
}

func TestLoaderFromDisk(t *testing.T) {
	dir := t.TempDir()
	data := []byte("id: disk01\nname: Disk\nmap: |\n  XXX\n  XPX\n  XXX\n")
	if err := os.WriteFile(filepath.Join(dir, "disk01.yaml"), data, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	loader := NewLoader(dir)
	lvl, err := loader.LoadByID("disk01")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Name != "Disk" || lvl.Width != 3 || lvl.Height != 3 {
		t.Errorf("level = %q %dx%d", lvl.Name, lvl.Width, lvl.Height)
	}

	if _, err := loader.LoadByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadByID error = %v, expected %v", err, ErrNotFound)
	}

	ids, err := loader.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "disk01" {
		t.Errorf("ListIDs = %v, expected [disk01]", ids)
	}
}

func TestResolveEmptyDir(t *testing.T) {
	if _, err := Resolve(t.TempDir()); !errors.Is(err, ErrNoLevels) {
		t.Errorf("Resolve error = %v, expected %v", err, ErrNoLevels)
	}
}

func TestCampaign(t *testing.T) {
	lvls, err := Campaign()
	if err != nil {
		t.Fatalf("Campaign failed: %v", err)
	}
	if len(lvls) < 3 {
		t.Fatalf("expected at least 3 campaign levels, got %d", len(lvls))
	}

	for _, lv := range lvls {
		t.Run(lv.ID, func(t *testing.T) {
			w, err := cave.NewWorld(lv, cave.DefaultRules())
			if err != nil {
				t.Fatalf("NewWorld failed: %v", err)
			}
			if w.Grid().Count(cave.TileExitClosed)+w.Grid().Count(cave.TileExitOpen) == 0 {
				t.Error("level has no exit")
			}
			c := w.Counters()
			if c.GemsRequired > w.Grid().Count(cave.TileGem) {
				t.Errorf("GemsRequired %d exceeds gems on the map %d", c.GemsRequired, w.Grid().Count(cave.TileGem))
			}
		})
	}

	if Index(lvls, "01-open-cavern") != 0 {
		t.Errorf("Open Cavern should be the first level")
	}
	if Index(lvls, "nope") != -1 {
		t.Error("Index of an unknown id should be -1")
	}
}

func TestOpenCavernLayout(t *testing.T) {
	lvls, err := Campaign()
	if err != nil {
		t.Fatalf("Campaign failed: %v", err)
	}
	lv := lvls[Index(lvls, "01-open-cavern")]

	if lv.Width != 40 || lv.Height != 22 {
		t.Errorf("size = %dx%d, expected 40x22", lv.Width, lv.Height)
	}
	if lv.Player != cave.C(2, 2) {
		t.Errorf("Player = %v, expected (2,2)", lv.Player)
	}
	if got := lv.Tiles[19*lv.Width+37]; got != cave.TileExitClosed {
		t.Errorf("tile at exit = %v, expected exit-closed", got)
	}

	// Every gem is sealed in rock, so the exit is open from the start.
	w, err := cave.NewWorld(lv, cave.DefaultRules())
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	if !w.ExitsOpen() {
		t.Error("exits should be open at load")
	}
}
