package cave

// EnemyKind selects an enemy's turning hand and the explosion it leaves behind.
type EnemyKind uint8

const (
	Firefly EnemyKind = iota
	Butterfly
)

// String returns the enemy kind name.
func (k EnemyKind) String() string {
	switch k {
	case Firefly:
		return "firefly"
	case Butterfly:
		return "butterfly"
	default:
		return "unknown"
	}
}

// Blast returns the explosion an enemy of this kind produces.
func (k EnemyKind) Blast() BlastKind {
	if k == Butterfly {
		return BlastButter
	}
	return BlastFire
}

// Enemy is a wall-following creature.
type Enemy struct {
	At     Coord
	Facing Dir
	Kind   EnemyKind

	primed bool // A contact blast is already queued at At
}

// candidates returns the four directions in the order the enemy tries them.
// Fireflies favour their right hand, butterflies their left.
func (e Enemy) candidates() [4]Dir {
	d := e.Facing
	if e.Kind == Butterfly {
		return [4]Dir{d.Left(), d, d.Right(), d.Opposite()}
	}
	return [4]Dir{d.Right(), d, d.Left(), d.Opposite()}
}

// Arena is the view of the world the enemy pass works against.
type Arena interface {
	Get(x, y int) Tile
	IsPassable(x, y int) bool
	Falling(x, y int) bool
	PlayerAt(x, y int) bool
	QueueExplosion(at Coord, kind BlastKind)
}

// EnemyStepper advances every enemy one cell per tick.
type EnemyStepper struct {
	enemies []Enemy
}

// NewEnemyStepper creates a stepper owning a copy of the spawn list.
func NewEnemyStepper(spawns []Enemy) *EnemyStepper {
	enemies := make([]Enemy, len(spawns))
	copy(enemies, spawns)
	return &EnemyStepper{enemies: enemies}
}

// Enemies returns a copy of the live enemies in spawn order.
func (s *EnemyStepper) Enemies() []Enemy {
	out := make([]Enemy, len(s.enemies))
	copy(out, s.enemies)
	return out
}

// Len returns the number of live enemies.
func (s *EnemyStepper) Len() int {
	return len(s.enemies)
}

// At reports whether an enemy occupies c.
func (s *EnemyStepper) At(c Coord) bool {
	for _, e := range s.enemies {
		if e.At == c {
			return true
		}
	}
	return false
}

// RemoveAt removes every enemy standing on c and returns how many were removed.
func (s *EnemyStepper) RemoveAt(c Coord) int {
	kept := s.enemies[:0]
	removed := 0
	for _, e := range s.enemies {
		if e.At == c {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.enemies = kept
	return removed
}

// Step moves each enemy in list order.
//
// An enemy detonates, leaving an explosion of its kind and leaving the list, when a
// falling rock occupies its cell or when none of its four candidate cells is passable.
// Sharing a cell with the player, before or after moving, only queues an explosion
// there: the enemy keeps wall-following and the player is lost when the blast resolves.
// One blast is queued per contact cell.
func (s *EnemyStepper) Step(a Arena) {
	kept := s.enemies[:0]
	for _, e := range s.enemies {
		if a.Get(e.At.X, e.At.Y).IsRock() && a.Falling(e.At.X, e.At.Y) {
			a.QueueExplosion(e.At, e.Kind.Blast())
			continue
		}
		if a.PlayerAt(e.At.X, e.At.Y) && !e.primed {
			a.QueueExplosion(e.At, e.Kind.Blast())
			e.primed = true
		}

		moved := false
		for _, d := range e.candidates() {
			n := e.At.Step(d)
			if a.IsPassable(n.X, n.Y) {
				e.At = n
				e.Facing = d
				e.primed = false
				moved = true
				break
			}
		}
		if !moved {
			if !e.primed {
				a.QueueExplosion(e.At, e.Kind.Blast())
			}
			continue
		}

		if a.PlayerAt(e.At.X, e.At.Y) {
			a.QueueExplosion(e.At, e.Kind.Blast())
			e.primed = true
		}
		kept = append(kept, e)
	}
	s.enemies = kept
}
