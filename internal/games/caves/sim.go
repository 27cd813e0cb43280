package caves

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/vovakirdan/tui-caves/internal/cave"
)

// SimTickSeconds is the fixed step used by headless runs (20 ticks per second).
const SimTickSeconds = 0.05

// ScriptResult is the outcome of a headless run.
type ScriptResult struct {
	Snapshot cave.Snapshot
	Events   map[cave.EventType]int
	Commands int     // Script commands executed before the run ended
	Faults   []error // Engine faults reported by Tick
	Rows     []string
}

// RunScript plays a command script against a level without a screen.
//
// Each command is one tick: R, D, L or U try a move first, '.' only waits.
// Whitespace is ignored. After the script, settle extra ticks run so that
// falling rocks and pending explosions resolve. The run stops early when the
// level ends.
func RunScript(lv cave.Level, rules cave.Rules, script string, settle int) (ScriptResult, error) {
	w, err := cave.NewWorld(lv, rules)
	if err != nil {
		return ScriptResult{}, err
	}

	res := ScriptResult{Events: make(map[cave.EventType]int)}
	tick := func() {
		if err := w.Tick(SimTickSeconds); err != nil {
			res.Faults = append(res.Faults, err)
		}
		for _, e := range w.Drain() {
			res.Events[e.Type]++
		}
	}

	for i, r := range script {
		if w.State() != cave.StatePlay {
			break
		}
		if unicode.IsSpace(r) {
			continue
		}
		if r != '.' {
			d, ok := cave.ParseDir(r)
			if !ok {
				return ScriptResult{}, fmt.Errorf("caves: script position %d: unknown command %q", i, r)
			}
			w.TryMove(d)
		}
		tick()
		res.Commands++
	}

	for i := 0; i < settle && w.State() == cave.StatePlay; i++ {
		tick()
	}

	res.Snapshot = w.Snapshot()
	res.Rows = BoardRows(w)
	return res, errors.Join(res.Faults...)
}
