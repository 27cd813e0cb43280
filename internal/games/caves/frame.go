package caves

import (
	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/cave/levels/formats"
)

// Frame is the per-tick view published to observers such as the spectator feed.
type Frame struct {
	Tick      uint64       `json:"tick"`
	Level     string       `json:"level"`
	Index     int          `json:"index"`
	State     string       `json:"state"`
	Reason    string       `json:"reason,omitempty"`
	Score     int          `json:"score"`
	Gems      int          `json:"gems"`
	Required  int          `json:"gems_required"`
	Keys      int          `json:"keys"`
	TimeLeft  float64      `json:"time_left"`
	ExitsOpen bool         `json:"exits_open"`
	Events    []FrameEvent `json:"events,omitempty"`
	Rows      []string     `json:"rows"`
}

// FrameEvent is the wire form of a cave.Event.
type FrameEvent struct {
	Type   string `json:"type"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Tile   string `json:"tile,omitempty"`
	Blast  string `json:"blast,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// publish sends a frame to the observer, if any.
func (g *Game) publish(events []cave.Event) {
	if g.observer == nil {
		return
	}
	g.observer(g.frame(events))
}

func (g *Game) frame(events []cave.Event) Frame {
	w := g.world
	c := w.Counters()
	f := Frame{
		Tick:      w.Ticks(),
		Level:     w.LevelID(),
		Index:     g.levelIndex,
		State:     w.State().String(),
		Reason:    string(w.Reason()),
		Score:     g.score(),
		Gems:      c.Collected,
		Required:  c.GemsRequired,
		Keys:      c.KeysHeld,
		TimeLeft:  w.TimeLeft(),
		ExitsOpen: w.ExitsOpen(),
		Rows:      BoardRows(w),
	}
	for _, e := range events {
		fe := FrameEvent{Type: string(e.Type), X: e.At.X, Y: e.At.Y, Reason: string(e.Reason)}
		switch e.Type {
		case cave.EventFall, cave.EventLand, cave.EventPush, cave.EventDig:
			fe.Tile = e.Tile.String()
		case cave.EventExplode:
			fe.Blast = e.Blast.String()
		}
		f.Events = append(f.Events, fe)
	}
	return f
}

// BoardRows renders the world in the level-file alphabet, with the player,
// enemies and pending explosions drawn over the tiles.
func BoardRows(w *cave.World) []string {
	grid := w.Grid()
	cells := make([][]rune, grid.Height())
	for y := range cells {
		cells[y] = make([]rune, grid.Width())
		for x := range cells[y] {
			cells[y][x] = formats.RuneFor(grid.Get(x, y))
		}
	}

	for _, e := range w.Enemies() {
		r := 'F'
		if e.Kind == cave.Butterfly {
			r = 'B'
		}
		cells[e.At.Y][e.At.X] = r
	}
	for _, b := range w.Explosions() {
		cells[b.At.Y][b.At.X] = '!'
	}
	if w.State() != cave.StateWin {
		p := w.Player()
		cells[p.Y][p.X] = 'P'
	}

	rows := make([]string, len(cells))
	for y, r := range cells {
		rows[y] = string(r)
	}
	return rows
}
