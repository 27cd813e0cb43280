package caves

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/core"
)

const (
	hudHeight  = 2 // Status line and separator
	minScreenW = 24
	minScreenH = 8
)

// glyph is how one cell is drawn: a single rune in narrow layouts,
// two runes when the cave fits at double width.
type glyph struct {
	narrow rune
	wide   string
	color  core.Color
}

var tileGlyphs = [...]glyph{
	cave.TileEmpty:      {' ', "  ", core.ColorDefault},
	cave.TileDirt:       {'░', "░░", core.ColorOrange},
	cave.TileWall:       {'▓', "▓▓", core.ColorRed},
	cave.TileSteel:      {'█', "██", core.ColorGray},
	cave.TileBoulder:    {'O', "()", core.ColorYellow},
	cave.TileGem:        {'◆', "<>", core.ColorBrightCyan},
	cave.TileExitClosed: {'E', "[]", core.ColorGray},
	cave.TileExitOpen:   {'E', "[]", core.ColorBrightGreen},
	cave.TileKey:        {'k', "o-", core.ColorBrightYellow},
	cave.TileDoorClosed: {'D', "▐▌", core.ColorMagenta},
	cave.TileDoorOpen:   {'d', "::", core.ColorGreen},
}

var (
	playerGlyph      = glyph{'@', "@@", core.ColorBrightWhite}
	deadGlyph        = glyph{'x', "><", core.ColorBrightRed}
	fireflyGlyph     = glyph{'f', "{}", core.ColorBrightRed}
	butterflyGlyph   = glyph{'b', "}{", core.ColorBrightMagenta}
	fireBlastGlyph   = glyph{'*', "**", core.ColorBrightYellow}
	butterBlastGlyph = glyph{'+', "++", core.ColorBrightCyan}
)

// flash tints one cell for a short time after an event.
type flash struct {
	at    cave.Coord
	color core.Color
	ttl   time.Duration
}

// layout picks the cell width and checks the minimum screen size.
func (g *Game) layout() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
	g.cellW = 1
	if g.world != nil && g.world.Grid().Width()*2 <= g.screenW {
		g.cellW = 2
	}
}

// react turns engine events into flashes and banner messages.
func (g *Game) react(events []cave.Event) {
	for _, e := range events {
		switch e.Type {
		case cave.EventCollect:
			g.flashes = append(g.flashes, flash{at: e.At, color: core.ColorBrightYellow, ttl: 150 * time.Millisecond})
		case cave.EventKey:
			g.setBanner("Picked up a key", time.Second)
		case cave.EventUnlock:
			g.setBanner("Door unlocked", time.Second)
		case cave.EventExitOpen:
			g.setBanner("The exits are open!", 2*time.Second)
		case cave.EventExplode:
			g.flashes = append(g.flashes, flash{at: e.At, color: core.ColorBrightWhite, ttl: 100 * time.Millisecond})
		case cave.EventDie:
			g.setBanner(deathMessage(e.Reason), 3*time.Second)
		case cave.EventWin:
			g.setBanner("Level cleared!", 2*time.Second)
		}
	}
}

func (g *Game) setBanner(text string, ttl time.Duration) {
	g.banner = text
	g.bannerTTL = ttl
}

// age counts down flashes and the banner.
func (g *Game) age(d time.Duration) {
	kept := g.flashes[:0]
	for _, f := range g.flashes {
		f.ttl -= d
		if f.ttl > 0 {
			kept = append(kept, f)
		}
	}
	g.flashes = kept

	if g.bannerTTL > 0 {
		g.bannerTTL -= d
		if g.bannerTTL <= 0 {
			g.banner = ""
		}
	}
}

func (g *Game) flashAt(c cave.Coord) (core.Color, bool) {
	for i := len(g.flashes) - 1; i >= 0; i-- {
		if g.flashes[i].at == c {
			return g.flashes[i].color, true
		}
	}
	return 0, false
}

func deathMessage(r cave.DeathReason) string {
	switch r {
	case cave.ReasonCrush:
		return "Crushed by a falling rock!"
	case cave.ReasonBlast:
		return "Caught in an explosion!"
	case cave.ReasonTime:
		return "Out of time!"
	default:
		return "You died!"
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need at least %dx%d", minScreenW, minScreenH))
		return
	}

	if g.world == nil {
		msg := "No levels found"
		if g.loadErr != nil {
			msg = g.loadErr.Error()
		}
		g.renderOverlay(dst, "Cannot start Caves", msg)
		return
	}

	g.renderHUD(dst)
	g.renderCave(dst)
	g.renderFooter(dst)

	switch {
	case g.phase == PhaseComplete:
		g.renderOverlay(dst, "You Win!", fmt.Sprintf("Final Score: %d - press R to play again", g.bankedScore))
	case g.phase == PhaseCleared:
		g.renderOverlay(dst, fmt.Sprintf("Level %d cleared!", g.levelIndex+1), g.levelName())
	case g.phase == PhaseLost:
		g.renderOverlay(dst, deathMessage(g.world.Reason()), "Press R to retry")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) levelName() string {
	if g.levelIndex < len(g.levels) {
		return g.levels[g.levelIndex].Name
	}
	return ""
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	c := g.world.Counters()

	left := fmt.Sprintf(" %s (%d/%d)  Score %d  Keys %d", g.levelName(), g.levelIndex+1, len(g.levels), g.score(), c.KeysHeld)
	dst.DrawText(0, 0, left)

	gems := fmt.Sprintf("Gems %d/%d", c.Collected, c.GemsRequired)
	gemColor := core.ColorBrightCyan
	if g.world.ExitsOpen() {
		gemColor = core.ColorBrightGreen
	}

	secs := int(math.Ceil(g.world.TimeLeft()))
	clock := fmt.Sprintf("Time %3d ", secs)
	clockColor := core.ColorDefault
	if secs <= 10 {
		clockColor = core.ColorBrightRed
	}

	clockX := dst.Width() - len(clock)
	gemsX := clockX - len(gems) - 2
	if gemsX > len([]rune(left)) {
		dst.DrawTextColored(gemsX, 0, gems, gemColor)
	}
	dst.DrawTextColored(clockX, 0, clock, clockColor)

	for x, w := 0, dst.Width(); x < w; x++ {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}
}

// mapArea is the screen region the cave is drawn in.
func (g *Game) mapArea(dst *core.Screen) core.Rect {
	return core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-1)
}

// follow returns the first visible index so that center stays in view.
func follow(center, span, size int) int {
	if size <= span {
		return 0
	}
	return core.Clamp(center-span/2, 0, size-span)
}

// renderCave draws the visible part of the grid with enemies, blasts and the player.
func (g *Game) renderCave(dst *core.Screen) {
	w := g.world
	grid := w.Grid()
	area := g.mapArea(dst)

	cols := area.W / g.cellW
	rows := area.H
	g.viewX = follow(w.Player().X, cols, grid.Width())
	g.viewY = follow(w.Player().Y, rows, grid.Height())

	originX, originY := area.X, area.Y
	if span := grid.Width() * g.cellW; span < area.W {
		originX += (area.W - span) / 2
	}
	if grid.Height() < area.H {
		originY += (area.H - grid.Height()) / 2
	}

	enemies := make(map[cave.Coord]cave.EnemyKind, len(w.Enemies()))
	for _, e := range w.Enemies() {
		enemies[e.At] = e.Kind
	}
	blasts := make(map[cave.Coord]cave.BlastKind)
	for _, b := range w.Explosions() {
		blasts[b.At] = b.Kind
	}

	for ty := 0; ty < rows && g.viewY+ty < grid.Height(); ty++ {
		for tx := 0; tx < cols && g.viewX+tx < grid.Width(); tx++ {
			c := cave.C(g.viewX+tx, g.viewY+ty)
			gl := tileGlyphs[grid.At(c)]

			if kind, ok := blasts[c]; ok {
				gl = fireBlastGlyph
				if kind == cave.BlastButter {
					gl = butterBlastGlyph
				}
			} else if kind, ok := enemies[c]; ok {
				gl = fireflyGlyph
				if kind == cave.Butterfly {
					gl = butterflyGlyph
				}
			}
			if c == w.Player() && w.State() != cave.StateWin {
				gl = playerGlyph
				if w.State() == cave.StateDead {
					gl = deadGlyph
				}
			}

			color := gl.color
			if f, ok := g.flashAt(c); ok {
				color = f
			}
			g.drawGlyph(dst, originX+tx*g.cellW, originY+ty, gl, color)
		}
	}
}

func (g *Game) drawGlyph(dst *core.Screen, x, y int, gl glyph, color core.Color) {
	if g.cellW == 2 {
		dst.DrawTextColored(x, y, gl.wide, color)
		return
	}
	dst.SetColored(x, y, gl.narrow, color)
}

// renderFooter shows the banner, or what the player needs to do next.
func (g *Game) renderFooter(dst *core.Screen) {
	y := dst.Height() - 1
	if g.banner != "" {
		dst.DrawTextColored(1, y, g.banner, core.ColorBrightYellow)
		return
	}

	c := g.world.Counters()
	switch {
	case g.world.ExitsOpen():
		dst.DrawTextColored(1, y, "Exits open: reach an exit", core.ColorBrightGreen)
	default:
		dst.DrawTextColored(1, y, fmt.Sprintf("Collect %d more gems to open the exits", c.GemsRequired-c.Collected), core.ColorGray)
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := min(maxLen+4, w)
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, core.ColorBrightWhite)
	dst.DrawTextCenteredColored(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2)
}
