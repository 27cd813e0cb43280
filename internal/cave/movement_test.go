package cave

import "testing"

func TestTryMoveDestinations(t *testing.T) {
	tests := []struct {
		name      string
		row       string
		ok        bool
		event     EventType
		score     int
		collected int
		keys      int
		required  *int
	}{
		{"empty", "XP  X", true, EventStep, 0, 0, 0, nil},
		{"dirt", "XP. X", true, EventDig, 1, 0, 0, nil},
		{"gem", "XP*.X", true, EventCollect, 15, 1, 0, nil},
		{"key", "XPK X", true, EventKey, 25, 0, 1, nil},
		{"open door", "XPd X", true, EventStep, 0, 0, 0, nil},
		{"wall", "XP# X", false, "", 0, 0, 0, nil},
		{"steel", "XPX X", false, "", 0, 0, 0, nil},
		{"closed exit", "XPE X", false, "", 0, 0, 0, intp(1)},
		{"locked door without key", "XPD X", false, "", 0, 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lv := buildLevel("XXXXX", tt.row, "XXXXX")
			lv.GemsRequired = tt.required
			w := mustWorld(t, lv)
			w.Drain()
			dest := w.Grid().Get(2, 1)

			if got := w.TryMove(DirRight); got != tt.ok {
				t.Fatalf("TryMove = %v, expected %v", got, tt.ok)
			}
			events := w.Drain()
			c := w.Counters()

			if !tt.ok {
				if w.Player() != C(1, 1) || w.Grid().Get(2, 1) != dest || len(events) != 0 {
					t.Errorf("rejected move changed state: player %v, events %v", w.Player(), events)
				}
				return
			}
			if w.Player() != C(2, 1) {
				t.Errorf("Player = %v, expected (2,1)", w.Player())
			}
			if len(events) == 0 || events[0].Type != tt.event {
				t.Errorf("events = %v, expected %s first", events, tt.event)
			}
			if c.Score != tt.score || c.Collected != tt.collected || c.KeysHeld != tt.keys {
				t.Errorf("score/collected/keys = %d/%d/%d, expected %d/%d/%d",
					c.Score, c.Collected, c.KeysHeld, tt.score, tt.collected, tt.keys)
			}
			want := TileEmpty
			if dest == TileDoorOpen {
				want = TileDoorOpen
			}
			if got := w.Grid().Get(2, 1); got != want {
				t.Errorf("destination = %v, expected %v", got, want)
			}
		})
	}
}

func TestPushIsAtomic(t *testing.T) {
	t.Run("push into empty", func(t *testing.T) {
		w := mustWorld(t, buildLevel(
			"XXXXXX",
			"XPo  X",
			"XXXXXX",
		))
		w.Drain()

		if !w.TryMove(DirRight) {
			t.Fatal("push rejected")
		}
		if w.Player() != C(2, 1) || w.Grid().Get(3, 1) != TileBoulder || w.Grid().Get(2, 1) != TileEmpty {
			t.Errorf("after push: player %v, row %v", w.Player(), w.Grid().Tiles()[6:12])
		}
		if w.Grid().Count(TileBoulder) != 1 {
			t.Errorf("boulder count = %d, expected 1", w.Grid().Count(TileBoulder))
		}
		events := w.Drain()
		if len(events) != 2 || events[0].Type != EventPush || events[1].Type != EventStep {
			t.Errorf("events = %v, expected push then step", events)
		}
	})

	blocked := []struct {
		name string
		rows []string
		dir  Dir
	}{
		{"dirt beyond", []string{"XXXXXX", "XPo. X", "XXXXXX"}, DirRight},
		{"boulder beyond", []string{"XXXXXX", "XPoo X", "XXXXXX"}, DirRight},
		{"steel beyond", []string{"XXXX", "XPoX", "XXXX"}, DirRight},
		{"vertical", []string{"XXXX", "X o ", "X P ", "XXXX"}, DirUp},
	}
	for _, tt := range blocked {
		t.Run(tt.name, func(t *testing.T) {
			w := mustWorld(t, buildLevel(tt.rows...))
			before := w.Grid().Tiles()
			pos := w.Player()

			if w.TryMove(tt.dir) {
				t.Fatal("blocked push accepted")
			}
			if w.Player() != pos {
				t.Errorf("player moved to %v", w.Player())
			}
			after := w.Grid().Tiles()
			for i := range before {
				if before[i] != after[i] {
					t.Fatalf("grid changed at index %d: %v -> %v", i, before[i], after[i])
				}
			}
		})
	}

	t.Run("falling boulder cannot be pushed", func(t *testing.T) {
		w := mustWorld(t, buildLevel(
			"XXXXXX",
			"X  o X",
			"X P  X",
			"XXXXXX",
		))
		tickN(t, w, 1)
		if !w.Falling(3, 2) {
			t.Fatal("boulder should be falling into (3,2)")
		}
		if w.TryMove(DirRight) {
			t.Error("pushed a falling boulder")
		}

		tickN(t, w, 1)
		if !w.TryMove(DirRight) {
			t.Error("push rejected after the boulder landed")
		}
	})
}

func TestDoorsAndKeys(t *testing.T) {
	w := mustWorld(t, buildLevel(
		"XXXXXXXX",
		"XPKD*DEX",
		"XXXXXXXX",
	))
	w.Drain()

	check := func(step string) {
		t.Helper()
		c := w.Counters()
		if c.LockedDoors != w.Grid().Count(TileDoorClosed) {
			t.Errorf("%s: LockedDoors = %d, live count %d", step, c.LockedDoors, w.Grid().Count(TileDoorClosed))
		}
		if c.KeysHeld+c.KeysRemaining > c.KeysTotal {
			t.Errorf("%s: held %d + remaining %d > total %d", step, c.KeysHeld, c.KeysRemaining, c.KeysTotal)
		}
	}
	check("load")

	if c := w.Counters(); c.KeysTotal != 1 || c.KeysRemaining != 1 || c.LockedDoors != 2 {
		t.Fatalf("counters at load = %+v", c)
	}

	if !w.TryMove(DirRight) {
		t.Fatal("key pickup rejected")
	}
	check("key")

	if !w.TryMove(DirRight) {
		t.Fatal("unlock rejected")
	}
	check("unlock")
	if w.Player() != C(3, 1) || w.Grid().Get(3, 1) != TileDoorOpen {
		t.Errorf("after unlock: player %v, door %v", w.Player(), w.Grid().Get(3, 1))
	}
	events := w.Drain()
	if countEvents(events, EventUnlock) != 1 || countEvents(events, EventStep) != 1 {
		t.Errorf("events = %v, expected unlock and step", events)
	}
	if w.Counters().KeysHeld != 0 {
		t.Errorf("KeysHeld = %d, expected 0", w.Counters().KeysHeld)
	}

	if !w.TryMove(DirRight) {
		t.Fatal("gem pickup rejected")
	}
	if w.TryMove(DirRight) {
		t.Error("second locked door opened without a key")
	}
	check("no key")
	if w.Counters().LockedDoors != 1 {
		t.Errorf("LockedDoors = %d, expected 1", w.Counters().LockedDoors)
	}
}

func TestStartKeys(t *testing.T) {
	lv := buildLevel(
		"XXXXX",
		"XPD X",
		"XXXXX",
	)
	lv.StartKeys = 1
	w := mustWorld(t, lv)

	if c := w.Counters(); c.KeysHeld != 1 || c.KeysTotal != 1 {
		t.Fatalf("held/total = %d/%d, expected 1/1", c.KeysHeld, c.KeysTotal)
	}
	if !w.TryMove(DirRight) {
		t.Fatal("unlock with a starting key rejected")
	}
	if w.Counters().LockedDoors != 0 {
		t.Errorf("LockedDoors = %d, expected 0", w.Counters().LockedDoors)
	}
}

func TestWinCondition(t *testing.T) {
	w := mustWorld(t, buildLevel(
		"XXXXXXX",
		"XP**E X",
		"XXXXXXX",
	))
	if w.Counters().GemsRequired != 2 {
		t.Fatalf("GemsRequired = %d, expected 2", w.Counters().GemsRequired)
	}
	if events := w.Drain(); countEvents(events, EventExitOpen) != 0 {
		t.Fatalf("exits opened at load: %v", events)
	}

	if !w.TryMove(DirRight) {
		t.Fatal("first gem rejected")
	}
	if w.Grid().Get(4, 1) != TileExitClosed {
		t.Fatal("exit opened after one of two gems")
	}

	if !w.TryMove(DirRight) {
		t.Fatal("second gem rejected")
	}
	if w.Grid().Get(4, 1) != TileExitOpen {
		t.Fatal("exit still closed after the required gems")
	}
	events := w.Drain()
	if countEvents(events, EventExitOpen) != 1 {
		t.Errorf("events = %v, expected one exit-open", events)
	}

	if !w.TryMove(DirRight) {
		t.Fatal("entering the open exit rejected")
	}
	if w.State() != StateWin {
		t.Errorf("State = %v, expected win", w.State())
	}
	if w.Grid().Get(4, 1) != TileExitOpen {
		t.Error("exit tile should remain after entering it")
	}
	events = w.Drain()
	if countEvents(events, EventWin) != 1 || countEvents(events, EventExitOpen) != 0 {
		t.Errorf("events = %v, expected win without a second exit-open", events)
	}

	if w.TryMove(DirLeft) {
		t.Error("move accepted after winning")
	}
	ticks := w.Ticks()
	tickN(t, w, 3)
	if w.Ticks() != ticks {
		t.Error("Tick advanced a finished world")
	}
}

func TestExitsOpenAtLoadWithoutGems(t *testing.T) {
	w := mustWorld(t, buildLevel(
		"XXXXX",
		"XPEEX",
		"XXXXX",
	))
	if w.Grid().Count(TileExitOpen) != 2 || !w.ExitsOpen() {
		t.Error("exits should open at load when no gems are required")
	}
	if events := w.Drain(); countEvents(events, EventExitOpen) != 1 {
		t.Errorf("events = %v, expected one exit-open", events)
	}
}

func TestKeyAndDoorCountsHold(t *testing.T) {
	type step func(*testing.T, *World)
	move := func(d Dir) step {
		return func(_ *testing.T, w *World) { w.TryMove(d) }
	}
	tick := func(t *testing.T, w *World) { tickN(t, w, 1) }
	fire := func(at Coord) step {
		return func(_ *testing.T, w *World) { w.QueueExplosion(at, BlastFire) }
	}

	tests := []struct {
		name          string
		level         Level
		steps         []step
		wantRemaining int
		wantDoors     int
	}{
		{
			name: "boulder lands on key",
			level: buildLevel(
				"XXXXX",
				"XPo X",
				"X KDX",
				"XXXXX",
			),
			steps:         []step{tick, tick},
			wantRemaining: 0,
			wantDoors:     1,
		},
		{
			name: "fire blast over key and door",
			level: buildLevel(
				"XXXXXX",
				"XP KDX",
				"XXXXXX",
			),
			steps:         []step{fire(C(3, 1)), tick, tick, tick, tick},
			wantRemaining: 0,
			wantDoors:     0,
		},
		{
			name: "pickup then unlock",
			level: buildLevel(
				"XXXXXX",
				"XPKD X",
				"XXXXXX",
			),
			steps:         []step{move(DirRight), tick, move(DirRight), tick},
			wantRemaining: 0,
			wantDoors:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := mustWorld(t, tt.level)
			for i, step := range append([]step{func(*testing.T, *World) {}}, tt.steps...) {
				step(t, w)
				c := w.Counters()
				if c.KeysHeld+c.KeysRemaining > c.KeysTotal {
					t.Errorf("step %d: held %d + remaining %d > total %d", i, c.KeysHeld, c.KeysRemaining, c.KeysTotal)
				}
				if live := w.Grid().Count(TileDoorClosed); c.LockedDoors != live {
					t.Errorf("step %d: LockedDoors = %d, live count %d", i, c.LockedDoors, live)
				}
			}
			c := w.Counters()
			if c.KeysRemaining != tt.wantRemaining {
				t.Errorf("KeysRemaining = %d, expected %d", c.KeysRemaining, tt.wantRemaining)
			}
			if c.LockedDoors != tt.wantDoors {
				t.Errorf("LockedDoors = %d, expected %d", c.LockedDoors, tt.wantDoors)
			}
			if c.KeysTotal != 1 {
				t.Errorf("KeysTotal = %d, expected 1", c.KeysTotal)
			}
		})
	}
}
