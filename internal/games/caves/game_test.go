package caves

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/cave/levels/formats"
	"github.com/vovakirdan/tui-caves/internal/config"
	"github.com/vovakirdan/tui-caves/internal/core"
	"github.com/vovakirdan/tui-caves/internal/registry"
)

const firstLevel = `id: a-first
name: First
map: |
  XXXXXXX
  XP.*.EX
  XXXXXXX
`

const secondLevel = `id: b-second
name: Second
map: |
  XXXX
  XPEX
  XXXX
`

const shortClock = `id: t-clock
name: Short Clock
time: 1
map: |
  XXXXX
  XP.EX
  XXXXX
`

func writeLevels(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	return dir
}

// newTestGame pins the config to the built-in defaults so a user's
// ~/.arcade/configs/caves.yaml cannot change the results.
func newTestGame(t *testing.T, levelsDir string) *Game {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "caves.yaml")
	if err := os.WriteFile(cfgPath, config.GetDefaultYAML(GameID), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	g := NewWithOptions(Options{ConfigPath: cfgPath, Difficulty: "fixed", LevelsDir: levelsDir})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	return g
}

// press sends one action and then enough empty frames for the move cooldown to pass.
// It returns the run outcome if a level ended meanwhile.
func press(g *Game, a core.Action) *core.RunOutcome {
	var out *core.RunOutcome
	if r := g.Step(core.FrameOf(a)); r.Finished != nil {
		out = r.Finished
	}
	for i := 0; i < 14; i++ {
		if r := g.Step(core.NewInputFrame()); r.Finished != nil {
			out = r.Finished
		}
	}
	return out
}

func idle(g *Game, frames int) *core.RunOutcome {
	var out *core.RunOutcome
	for i := 0; i < frames; i++ {
		if r := g.Step(core.NewInputFrame()); r.Finished != nil {
			out = r.Finished
		}
	}
	return out
}

func TestRegistered(t *testing.T) {
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "caves" || g.Title() != "Caves" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
}

func TestCampaignProgression(t *testing.T) {
	dir := writeLevels(t, map[string]string{"a.yaml": firstLevel, "b.yaml": secondLevel})
	g := newTestGame(t, dir)

	if g.Phase() != PhasePlaying || g.World().LevelID() != "a-first" {
		t.Fatalf("start = %v on %q", g.Phase(), g.World().LevelID())
	}

	for i := 0; i < 3; i++ {
		if out := press(g, core.ActionRight); out != nil {
			t.Fatalf("move %d ended the level: %+v", i, out)
		}
	}
	if !g.World().ExitsOpen() {
		t.Fatal("exits should be open after collecting the only gem")
	}
	if g.State().Score != 17 {
		t.Errorf("Score = %d, expected 17", g.State().Score)
	}

	out := press(g, core.ActionRight)
	if out == nil {
		t.Fatal("entering the exit should finish the run")
	}
	if out.LevelID != "a-first" || out.Outcome != "win" || out.Score != 17 || out.Gems != 1 {
		t.Errorf("outcome = %+v", out)
	}
	if g.Phase() != PhaseCleared {
		t.Errorf("Phase = %v, expected %v", g.Phase(), PhaseCleared)
	}
	if g.State().GameOver {
		t.Error("a cleared level is not game over")
	}

	idle(g, 80)
	if g.Phase() != PhasePlaying || g.LevelIndex() != 1 {
		t.Fatalf("after the pause: phase %v index %d, expected playing 1", g.Phase(), g.LevelIndex())
	}
	if g.State().Score != 17 {
		t.Errorf("banked Score = %d, expected 17", g.State().Score)
	}

	if out := press(g, core.ActionRight); out == nil || out.LevelID != "b-second" {
		t.Fatalf("second level outcome = %+v", out)
	}
	idle(g, 80)
	if g.Phase() != PhaseComplete || !g.State().GameOver {
		t.Fatalf("Phase = %v, GameOver = %v, expected complete", g.Phase(), g.State().GameOver)
	}
	if g.State().Score != 17 {
		t.Errorf("final Score = %d, expected 17", g.State().Score)
	}

	g.Step(core.FrameOf(core.ActionRestart))
	if g.Phase() != PhasePlaying || g.LevelIndex() != 0 || g.State().Score != 0 {
		t.Errorf("restart after completion: phase %v index %d score %d", g.Phase(), g.LevelIndex(), g.State().Score)
	}
}

func TestTimeUpAndRetry(t *testing.T) {
	g := newTestGame(t, writeLevels(t, map[string]string{"t.yaml": shortClock}))

	out := idle(g, 90)
	if out == nil || out.Outcome != "timeup" {
		t.Fatalf("outcome = %+v, expected timeup", out)
	}
	if g.Phase() != PhaseLost || !g.State().GameOver {
		t.Errorf("Phase = %v, GameOver = %v", g.Phase(), g.State().GameOver)
	}

	g.Step(core.FrameOf(core.ActionRestart))
	if g.Phase() != PhasePlaying || g.State().GameOver {
		t.Errorf("after retry Phase = %v, GameOver = %v", g.Phase(), g.State().GameOver)
	}
	if g.World().TimeLeft() != 1 {
		t.Errorf("TimeLeft = %v, expected a fresh clock", g.World().TimeLeft())
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, writeLevels(t, map[string]string{"a.yaml": firstLevel}))
	idle(g, 6)
	before := g.World().Ticks()

	g.Step(core.FrameOf(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("Paused = false after ActionPause")
	}
	idle(g, 30)
	if g.World().Ticks() != before {
		t.Errorf("Ticks = %d while paused, expected %d", g.World().Ticks(), before)
	}

	g.Step(core.FrameOf(core.ActionPause))
	idle(g, 30)
	if g.World().Ticks() <= before {
		t.Error("ticks should advance after unpausing")
	}
}

func TestLogicRateIsIndependentOfFrameRate(t *testing.T) {
	dir := writeLevels(t, map[string]string{"a.yaml": firstLevel})
	for _, fps := range []int{30, 60, 120} {
		g := newTestGame(t, dir)
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: fps})
		idle(g, fps) // One second of frames
		if got := g.World().Ticks(); got < 19 || got > 20 {
			t.Errorf("fps %d: Ticks after 1s = %d, expected about 20", fps, got)
		}
	}
}

func TestWaitHalvesCooldown(t *testing.T) {
	g := newTestGame(t, writeLevels(t, map[string]string{"a.yaml": firstLevel}))
	start := g.World().Player()

	g.Step(core.FrameOf(core.ActionWait))
	idle(g, 3)

	if g.World().Ticks() != 1 {
		t.Fatalf("Ticks = %d, expected 1", g.World().Ticks())
	}
	if g.cooldown != g.moveDelay/2 {
		t.Errorf("cooldown = %v, expected %v", g.cooldown, g.moveDelay/2)
	}
	if g.World().Player() != start {
		t.Error("waiting should not move the player")
	}
}

func TestBufferedMoveExpires(t *testing.T) {
	g := newTestGame(t, writeLevels(t, map[string]string{"a.yaml": firstLevel}))
	start := g.World().Player()

	g.cooldown = time.Second
	g.Step(core.FrameOf(core.ActionRight))
	if g.pending != core.ActionRight {
		t.Fatalf("pending = %v, expected Right", g.pending)
	}
	idle(g, 20)

	if g.pending != core.ActionNone {
		t.Errorf("pending = %v after the buffer window, expected None", g.pending)
	}
	if g.World().Player() != start {
		t.Error("an expired tap should not move the player")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, writeLevels(t, map[string]string{"a.yaml": firstLevel}))
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "First (1/1)") {
		t.Errorf("HUD missing level name:\n%s", out)
	}
	if !strings.Contains(out, "@@") {
		t.Errorf("player not drawn at double width:\n%s", out)
	}
	if !strings.Contains(out, "Collect 1 more gems") {
		t.Errorf("footer missing gem hint:\n%s", out)
	}

	g.Step(core.FrameOf(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("pause overlay not drawn")
	}
}

func TestTooSmallAndResize(t *testing.T) {
	g := newTestGame(t, writeLevels(t, map[string]string{"a.yaml": firstLevel}))
	g.Resize(10, 5)

	screen := core.NewScreen(40, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("too-small overlay not drawn:\n%s", screen.String())
	}
	idle(g, 10)
	if g.World().Ticks() != 0 {
		t.Error("the game should not advance while the window is too small")
	}

	g.Resize(80, 24)
	idle(g, 10)
	if g.World().Ticks() == 0 {
		t.Error("the game should resume after resizing")
	}
}

func TestViewportFollowsPlayer(t *testing.T) {
	tests := []struct {
		center, span, size, expected int
	}{
		{5, 20, 10, 0},
		{2, 10, 40, 0},
		{20, 10, 40, 15},
		{39, 10, 40, 30},
	}
	for _, tt := range tests {
		if got := follow(tt.center, tt.span, tt.size); got != tt.expected {
			t.Errorf("follow(%d, %d, %d) = %d, expected %d", tt.center, tt.span, tt.size, got, tt.expected)
		}
	}
}

func TestNoLevels(t *testing.T) {
	g := newTestGame(t, t.TempDir())
	if g.Phase() != PhaseNoLevels || !g.State().GameOver {
		t.Fatalf("Phase = %v, expected %v", g.Phase(), PhaseNoLevels)
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Cannot start Caves") {
		t.Errorf("error overlay not drawn:\n%s", screen.String())
	}
}

func TestStartLevel(t *testing.T) {
	dir := writeLevels(t, map[string]string{"a.yaml": firstLevel, "b.yaml": secondLevel})
	g := NewWithOptions(Options{Difficulty: "fixed", LevelsDir: dir, StartLevel: "b-second"})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	if g.LevelIndex() != 1 {
		t.Errorf("LevelIndex = %d, expected 1", g.LevelIndex())
	}
}

func TestObserver(t *testing.T) {
	g := newTestGame(t, writeLevels(t, map[string]string{"a.yaml": firstLevel}))
	var frames []Frame
	g.SetObserver(func(f Frame) { frames = append(frames, f) })

	press(g, core.ActionRight)
	if len(frames) == 0 {
		t.Fatal("observer received no frames")
	}

	sawDig := false
	for _, f := range frames {
		for _, e := range f.Events {
			if e.Type == string(cave.EventDig) && e.Tile == "dirt" {
				sawDig = true
			}
		}
	}
	if !sawDig {
		t.Error("no dig event in the published frames")
	}

	last := frames[len(frames)-1]
	if last.Level != "a-first" || last.State != "play" {
		t.Errorf("frame = %q/%q", last.Level, last.State)
	}
	if len(last.Rows) != 3 || last.Rows[1] != "X P*.EX" {
		t.Errorf("Rows = %q", last.Rows)
	}
}

func TestDeterminism(t *testing.T) {
	script := []core.Action{
		core.ActionRight, core.ActionRight, core.ActionDown, core.ActionDown,
		core.ActionWait, core.ActionLeft, core.ActionDown, core.ActionRight,
	}
	run := func() Snapshot {
		g := NewWithOptions(Options{Difficulty: "fixed"})
		g.Reset(core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60, Seed: 7})
		for _, a := range script {
			press(g, a)
		}
		idle(g, 120)
		return g.Snapshot()
	}

	s1, s2 := run(), run()
	if s1 != s2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
	if s1.World.Tick == 0 {
		t.Error("world did not advance")
	}
}

func TestRunScript(t *testing.T) {
	lv, err := formats.ParseMap([]string{
		"XXXXXXX",
		"XP.*.EX",
		"XXXXXXX",
	})
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}

	res, err := RunScript(lv, cave.DefaultRules(), "R R\nRRRR", 10)
	if err != nil {
		t.Fatalf("RunScript failed: %v", err)
	}
	if res.Snapshot.State != cave.StateWin {
		t.Errorf("State = %v, expected win", res.Snapshot.State)
	}
	if res.Commands != 4 {
		t.Errorf("Commands = %d, expected 4 (the run stops at the exit)", res.Commands)
	}
	if res.Snapshot.Counters.Score != 17 {
		t.Errorf("Score = %d, expected 17", res.Snapshot.Counters.Score)
	}

	wantEvents := map[cave.EventType]int{
		cave.EventDig:      2,
		cave.EventCollect:  1,
		cave.EventExitOpen: 1,
		cave.EventWin:      1,
	}
	for typ, n := range wantEvents {
		if res.Events[typ] != n {
			t.Errorf("Events[%s] = %d, expected %d", typ, res.Events[typ], n)
		}
	}
	if len(res.Rows) != 3 || res.Rows[1] != "X    eX" {
		t.Errorf("Rows = %q", res.Rows)
	}

	if _, err := RunScript(lv, cave.DefaultRules(), "RZ", 0); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("RunScript with a bad command: err = %v", err)
	}
}
