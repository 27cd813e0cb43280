package formats

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-caves/internal/cave"
)

func TestParseMap(t *testing.T) {
	lv, err := ParseMap([]string{
		"XXXXXX",
		"XP.o*X",
		"XFBKDd",
		"X#E",
	})
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}

	if lv.Width != 6 || lv.Height != 4 {
		t.Fatalf("size = %dx%d, expected 6x4", lv.Width, lv.Height)
	}
	if !lv.HasPlayer || lv.Player != cave.C(1, 1) {
		t.Errorf("Player = %v (has %v), expected (1,1)", lv.Player, lv.HasPlayer)
	}
	if len(lv.Enemies) != 2 {
		t.Fatalf("enemies = %d, expected 2", len(lv.Enemies))
	}
	if lv.Enemies[0].Kind != cave.Firefly || lv.Enemies[1].Kind != cave.Butterfly {
		t.Errorf("enemy kinds = %v, %v", lv.Enemies[0].Kind, lv.Enemies[1].Kind)
	}
	if lv.Enemies[0].Facing != cave.DirRight {
		t.Errorf("Facing = %v, expected Right", lv.Enemies[0].Facing)
	}

	tests := []struct {
		x, y int
		want cave.Tile
	}{
		{0, 0, cave.TileSteel},
		{1, 1, cave.TileEmpty},
		{2, 1, cave.TileDirt},
		{3, 1, cave.TileBoulder},
		{4, 1, cave.TileGem},
		{1, 2, cave.TileEmpty},
		{3, 2, cave.TileKey},
		{4, 2, cave.TileDoorClosed},
		{5, 2, cave.TileDoorOpen},
		{1, 3, cave.TileWall},
		{2, 3, cave.TileExitClosed},
		{5, 3, cave.TileEmpty},
	}
	for _, tt := range tests {
		if got := lv.Tiles[tt.y*lv.Width+tt.x]; got != tt.want {
			t.Errorf("tile at (%d,%d) = %v, expected %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestParseMapErrors(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		wantErr error
	}{
		{"no rows", nil, ErrEmptyMap},
		{"blank rows", []string{"", ""}, ErrEmptyMap},
		{"no player", []string{"XXX", "X.X"}, cave.ErrNoPlayer},
		{"two players", []string{"PP"}, ErrMultiplePlayers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMap(tt.rows)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseMap error = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

func TestRuneRoundTrip(t *testing.T) {
	for _, ch := range "KDd#X.o*E " {
		if got := RuneFor(TileFor(ch)); got != ch {
			t.Errorf("RuneFor(TileFor(%q)) = %q", ch, got)
		}
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`id: t01
name: Test Cave
time: 90
gems_required: 2
start_keys: 1
map: |
  XXXXX
  XP**X
  XXXXX
`)
	lv, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if lv.ID != "t01" || lv.Name != "Test Cave" {
		t.Errorf("ID/Name = %q/%q", lv.ID, lv.Name)
	}
	if lv.TimeLimit != 90 || lv.StartKeys != 1 {
		t.Errorf("TimeLimit/StartKeys = %v/%d, expected 90/1", lv.TimeLimit, lv.StartKeys)
	}
	if lv.GemsRequired == nil || *lv.GemsRequired != 2 {
		t.Errorf("GemsRequired = %v, expected 2", lv.GemsRequired)
	}
	if lv.Width != 5 || lv.Height != 3 {
		t.Errorf("size = %dx%d, expected 5x3", lv.Width, lv.Height)
	}
}

func TestParseYAMLDefaults(t *testing.T) {
	lv, err := ParseYAML([]byte("id: bare\nmap: \"P\"\n"))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if lv.Name != "bare" {
		t.Errorf("Name = %q, expected the id", lv.Name)
	}
	if lv.GemsRequired != nil {
		t.Errorf("GemsRequired = %v, expected nil", *lv.GemsRequired)
	}
	if lv.TimeLimit != 0 {
		t.Errorf("TimeLimit = %v, expected 0", lv.TimeLimit)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	if _, err := ParseYAML([]byte("map: P\n")); !errors.Is(err, ErrMissingID) {
		t.Errorf("missing id error = %v, expected %v", err, ErrMissingID)
	}
	if _, err := ParseYAML([]byte("id: x\nmap: \"...\"\n")); !errors.Is(err, cave.ErrNoPlayer) {
		t.Errorf("no player error = %v, expected %v", err, cave.ErrNoPlayer)
	}
	if _, err := ParseYAML([]byte("id: [")); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestSplitRows(t *testing.T) {
	rows := SplitRows("ab\r\ncd\n\n")
	if len(rows) != 2 || rows[0] != "ab" || rows[1] != "cd" {
		t.Errorf("SplitRows = %q, expected [ab cd]", rows)
	}
	if SplitRows("") != nil {
		t.Error("SplitRows of empty string should be nil")
	}
}
