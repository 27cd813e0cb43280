// Package caves adapts the cave engine to the arcade platform: fixed-rate
// logic ticks decoupled from the frame rate, paced player moves, campaign
// progression, and drawing into a core.Screen.
package caves

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/cave/levels"
	"github.com/vovakirdan/tui-caves/internal/config"
	"github.com/vovakirdan/tui-caves/internal/core"
	"github.com/vovakirdan/tui-caves/internal/registry"
)

// GameID is the registry and score-table id.
const GameID = "caves"

// maxCatchUp bounds the logic ticks run for one slow frame.
const maxCatchUp = 8

// Phase is the adapter-level state shown to the player.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhaseCleared  Phase = "level_cleared"
	PhaseLost     Phase = "lost"
	PhaseComplete Phase = "complete"
	PhaseNoLevels Phase = "no_levels"
)

// Options configures a game instance.
type Options struct {
	ConfigPath string      // Custom caves.yaml; empty uses the search order
	Difficulty string      // easy, normal, hard or fixed
	LevelsDir  string      // Directory of level files; empty uses the built-in campaign
	StartLevel string      // Level id to start from; empty starts at the first level
	Logger     *log.Logger // Nil discards
}

// Package-level defaults picked up by New (set from CLI flags).
var defaults Options

// SetConfigPath sets the config file path.
func SetConfigPath(path string) {
	defaults.ConfigPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	defaults.Difficulty = preset
}

// SetLevelsDir sets the directory levels are loaded from.
func SetLevelsDir(dir string) {
	defaults.LevelsDir = dir
}

// SetStartLevel sets the level id to start from. Empty starts at the beginning.
func SetStartLevel(id string) {
	defaults.StartLevel = id
}

// SetLogger sets the logger used by new games.
func SetLogger(l *log.Logger) {
	defaults.Logger = l
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          GameID,
		Title:       "Caves",
		Description: "Dig for gems, dodge falling rocks, reach the exit",
	}, func() registry.Game {
		return New()
	})
}

// Game implements the Caves game.
type Game struct {
	opts    Options
	log     *log.Logger
	runtime core.RuntimeConfig

	cfg   config.CavesConfig
	diff  *config.DifficultyManager
	rules cave.Rules // Base rules after the preset, before per-level scaling

	levels     []cave.Level
	levelIndex int
	world      *cave.World
	loadErr    error

	// Timing
	frameDur  time.Duration
	logicDur  time.Duration
	moveDelay time.Duration
	acc       time.Duration
	cooldown  time.Duration
	clearTime time.Duration

	// Buffered player intent, consumed on the next logic tick the cooldown allows
	pending    core.Action
	pendingAge time.Duration

	phase       Phase
	bankedScore int // Score from cleared levels
	paused      bool
	tooSmall    bool
	frames      uint64
	faults      int

	// Screen and layout
	screenW int
	screenH int
	cellW   int
	viewX   int
	viewY   int

	flashes   []flash
	banner    string
	bannerTTL time.Duration

	observer func(Frame)
	finished *core.RunOutcome
}

// New creates a game with the package-level defaults.
func New() *Game {
	return NewWithOptions(defaults)
}

// NewWithOptions creates a game with explicit options.
func NewWithOptions(opts Options) *Game {
	l := opts.Logger
	if l == nil {
		l = log.New(io.Discard)
	}
	return &Game{
		opts: opts,
		log:  l.WithPrefix(GameID),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Caves"
}

// SetObserver registers a callback receiving a Frame after every logic tick.
func (g *Game) SetObserver(fn func(Frame)) {
	g.observer = fn
}

// Reset loads configuration and levels and starts the campaign over.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.frameDur = time.Second / time.Duration(tickRate)

	g.loadConfig()
	g.bankedScore = 0
	g.frames = 0
	g.faults = 0
	g.paused = false
	g.world = nil

	if err := g.loadLevels(); err != nil {
		g.loadErr = err
		g.phase = PhaseNoLevels
		g.log.Error("cannot load levels", "dir", g.opts.LevelsDir, "err", err)
		return
	}
	g.loadErr = nil
	g.levelIndex = g.startIndex()
	g.loadLevel()
}

// loadConfig resolves the YAML config and difficulty preset.
func (g *Game) loadConfig() {
	cfg, err := config.LoadCaves(g.opts.ConfigPath)
	if err != nil {
		g.log.Warn("using default config", "err", err)
	}

	preset, ok := config.ParsePreset(g.opts.Difficulty)
	if !ok {
		g.log.Warn("unknown difficulty, using normal", "difficulty", g.opts.Difficulty)
		preset = config.DifficultyNormal
	}
	config.ApplyCavesPreset(&cfg, preset)

	g.cfg = cfg
	g.rules = cfg.CaveRules()
	g.diff = config.NewDifficultyManager(cfg.Difficulty)
	g.logicDur = time.Second / time.Duration(cfg.Timing.LogicTPS)
	g.moveDelay = time.Duration(cfg.Timing.MoveDelayMS) * time.Millisecond
}

func (g *Game) loadLevels() error {
	lvls, err := levels.Resolve(g.opts.LevelsDir)
	if err != nil {
		return err
	}
	g.levels = lvls
	return nil
}

func (g *Game) startIndex() int {
	if g.opts.StartLevel == "" {
		return 0
	}
	if i := levels.Index(g.levels, g.opts.StartLevel); i >= 0 {
		return i
	}
	g.log.Warn("unknown start level, starting from the first", "level", g.opts.StartLevel)
	return 0
}

// loadLevel builds a fresh world for levelIndex with difficulty applied.
func (g *Game) loadLevel() {
	lv := g.levels[g.levelIndex]

	rules := g.rules
	rules.GemPercent = g.diff.GemPercent(rules.GemPercent, g.levelIndex)
	base := lv.TimeLimit
	if base <= 0 {
		base = rules.TimeLimit
	}
	lv.TimeLimit = g.diff.TimeLimit(base, g.levelIndex)

	w, err := cave.NewWorld(lv, rules)
	if err != nil {
		g.loadErr = err
		g.phase = PhaseNoLevels
		g.world = nil
		g.log.Error("cannot start level", "level", lv.ID, "err", err)
		return
	}

	g.world = w
	g.phase = PhasePlaying
	g.acc = 0
	g.cooldown = 0
	g.clearTime = 0
	g.pending = core.ActionNone
	g.pendingAge = 0
	g.flashes = nil
	g.banner = ""
	g.bannerTTL = 0
	g.paused = false
	g.layout()

	c := w.Counters()
	g.log.Info("level started",
		"level", lv.ID,
		"index", g.levelIndex,
		"time", lv.TimeLimit,
		"gems_required", c.GemsRequired,
		"gems_reachable", w.ReachableGemCount(),
	)
}

// Step advances the game by one platform frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.frames++
	g.finished = nil

	if in.Has(core.ActionRestart) {
		g.restart()
		return g.result()
	}

	if in.Has(core.ActionPause) && g.phase == PhasePlaying {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall || g.world == nil {
		return g.result()
	}

	g.age(g.frameDur)

	switch g.phase {
	case PhaseCleared:
		g.clearTime += g.frameDur
		if g.clearTime.Seconds() >= g.cfg.Timing.ClearPause {
			g.advance()
		}
		return g.result()
	case PhasePlaying:
	default:
		return g.result()
	}

	g.buffer(in)
	if g.cooldown > 0 {
		g.cooldown -= g.frameDur
	}
	g.acc += g.frameDur

	for steps := 0; g.acc >= g.logicDur && g.phase == PhasePlaying; steps++ {
		if steps == maxCatchUp {
			g.acc = 0
			break
		}
		g.acc -= g.logicDur
		g.logicStep()
	}

	return g.result()
}

// buffer records the latest movement or wait intent.
func (g *Game) buffer(in core.InputFrame) {
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionWait} {
		if in.Has(a) {
			g.pending = a
			g.pendingAge = 0
			return
		}
	}

	if g.pending != core.ActionNone {
		g.pendingAge += g.frameDur
		if g.pendingAge > g.bufferWindow() {
			g.pending = core.ActionNone
		}
	}
}

// bufferWindow is how long a tap waits for the move cooldown.
func (g *Game) bufferWindow() time.Duration {
	return max(2*g.moveDelay, 2*g.logicDur)
}

// logicStep runs one engine tick: at most one player intent, then World.Tick.
func (g *Game) logicStep() {
	w := g.world

	if g.cooldown <= 0 && g.pending != core.ActionNone {
		if g.pending == core.ActionWait {
			g.cooldown = g.moveDelay / 2
		} else if d, ok := dirFor(g.pending); ok && w.TryMove(d) {
			g.cooldown = g.moveDelay
		}
		g.pending = core.ActionNone
	}

	if err := w.Tick(g.logicDur.Seconds()); err != nil {
		g.faults++
		g.log.Error("engine fault", "level", w.LevelID(), "tick", w.Ticks(), "err", err)
	}

	events := w.Drain()
	g.react(events)
	g.publish(events)

	if w.State() != cave.StatePlay {
		g.finish()
	}
}

// finish records the outcome of the current level.
func (g *Game) finish() {
	w := g.world
	c := w.Counters()
	g.finished = &core.RunOutcome{
		LevelID: w.LevelID(),
		Outcome: w.State().String(),
		Score:   c.Score,
		Gems:    c.Collected,
		Ticks:   w.Ticks(),
	}

	if w.State() == cave.StateWin {
		g.phase = PhaseCleared
		g.clearTime = 0
		g.log.Info("level cleared", "level", w.LevelID(), "score", c.Score, "ticks", w.Ticks())
		return
	}

	g.phase = PhaseLost
	g.log.Info("level lost", "level", w.LevelID(), "reason", w.Reason(), "ticks", w.Ticks())
}

// advance banks the cleared level's score and loads the next level.
func (g *Game) advance() {
	g.bankedScore += g.world.Counters().Score
	g.levelIndex++
	if g.levelIndex >= len(g.levels) {
		g.phase = PhaseComplete
		g.log.Info("campaign complete", "score", g.bankedScore)
		return
	}
	g.loadLevel()
}

// restart retries the current level, or the whole campaign once it is over.
func (g *Game) restart() {
	switch g.phase {
	case PhaseComplete, PhaseNoLevels:
		g.Reset(g.runtime)
	case PhaseCleared:
		g.advance()
	default:
		g.loadLevel()
	}
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.layout()
}

func (g *Game) score() int {
	if g.world == nil || g.phase == PhaseComplete {
		return g.bankedScore
	}
	return g.bankedScore + g.world.Counters().Score
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Finished: g.finished}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score(),
		GameOver: g.phase == PhaseLost || g.phase == PhaseComplete || g.phase == PhaseNoLevels,
		Paused:   g.paused,
	}
}

// Phase returns the adapter phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// World returns the running world, or nil when no level is loaded.
func (g *Game) World() *cave.World {
	return g.world
}

// LevelIndex returns the campaign position of the current level.
func (g *Game) LevelIndex() int {
	return g.levelIndex
}

// Levels returns the loaded levels.
func (g *Game) Levels() []cave.Level {
	return g.levels
}

// Faults returns how many ticks reported engine faults since Reset.
func (g *Game) Faults() int {
	return g.faults
}

func dirFor(a core.Action) (cave.Dir, bool) {
	switch a {
	case core.ActionUp:
		return cave.DirUp, true
	case core.ActionDown:
		return cave.DirDown, true
	case core.ActionLeft:
		return cave.DirLeft, true
	case core.ActionRight:
		return cave.DirRight, true
	}
	return 0, false
}
