package registry

import (
	"testing"

	"github.com/vovakirdan/tui-caves/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func stubFactory(id string) Factory {
	return func() Game { return &stubGame{id: id} }
}

func TestRegisterAndCreate(t *testing.T) {
	Register(GameInfo{ID: "test-b", Title: "Stub test-b"}, stubFactory("test-b"))
	Register(GameInfo{ID: "test-a"}, stubFactory("test-a"))

	if !Exists("test-a") {
		t.Error("Exists(test-a) = false, expected true")
	}
	if Exists("test-missing") {
		t.Error("Exists(test-missing) = true, expected false")
	}

	g, err := Create("test-b")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "test-b" {
		t.Errorf("ID = %q, expected test-b", g.ID())
	}

	if _, err := Create("test-missing"); err == nil {
		t.Error("Create should fail for an unknown id")
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "test-a" || info.ID == "test-b" {
			ids = append(ids, info.ID)
		}
	}
	if len(ids) != 2 || ids[0] != "test-a" {
		t.Errorf("List order = %v, expected [test-a test-b]", ids)
	}
}

func TestLookupDefaultsTitle(t *testing.T) {
	Register(GameInfo{ID: "test-untitled"}, stubFactory("test-untitled"))

	info, ok := Lookup("test-untitled")
	if !ok {
		t.Fatal("Lookup(test-untitled) found nothing")
	}
	if info.Title != "test-untitled" {
		t.Errorf("Title = %q, expected the id", info.Title)
	}
	if _, ok := Lookup("test-missing"); ok {
		t.Error("Lookup(test-missing) = true, expected false")
	}
}

func TestRegisterRejectsBadIDs(t *testing.T) {
	Register(GameInfo{ID: "test-dup"}, stubFactory("test-dup"))

	tests := []struct {
		name string
		info GameInfo
	}{
		{"duplicate", GameInfo{ID: "test-dup"}},
		{"empty", GameInfo{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Register(%q) did not panic", tt.info.ID)
				}
			}()
			Register(tt.info, stubFactory(tt.info.ID))
		})
	}
}
