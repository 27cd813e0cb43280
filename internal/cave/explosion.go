package cave

// BlastKind selects what an explosion leaves behind.
type BlastKind uint8

const (
	// BlastFire clears the neighbourhood to Empty.
	BlastFire BlastKind = iota
	// BlastButter turns the neighbourhood into gems.
	BlastButter
)

// String returns the blast kind name.
func (k BlastKind) String() string {
	switch k {
	case BlastFire:
		return "fire"
	case BlastButter:
		return "butter"
	default:
		return "unknown"
	}
}

// Explosion is a pending area effect.
type Explosion struct {
	At   Coord
	TTL  int
	Kind BlastKind
	Age  int
}

// BlastTarget is the view of the world explosions mutate.
type BlastTarget interface {
	IsSteel(x, y int) bool
	IsExit(x, y int) bool
	SetGem(x, y int)
	ClearTile(x, y int)
	Emit(e Event)
}

// Explosions is a FIFO queue of pending explosions.
type Explosions struct {
	fuse    int
	pending []Explosion
}

// NewExplosions creates an empty queue whose entries detonate after fuse resolves.
func NewExplosions(fuse int) *Explosions {
	if fuse <= 0 {
		fuse = DefaultRules().BlastFuse
	}
	return &Explosions{fuse: fuse}
}

// Queue appends an explosion centred on at.
func (q *Explosions) Queue(at Coord, kind BlastKind) {
	q.pending = append(q.pending, Explosion{At: at, TTL: q.fuse, Kind: kind})
}

// Pending returns a copy of the queued explosions in FIFO order.
func (q *Explosions) Pending() []Explosion {
	out := make([]Explosion, len(q.pending))
	copy(out, q.pending)
	return out
}

// Len returns the number of queued explosions.
func (q *Explosions) Len() int {
	return len(q.pending)
}

// Resolve ages every entry and detonates the expired ones in queue order.
//
// All fuses are decremented before any cell changes, so nothing queued as a consequence
// of this call can go off in it. Steel and exit cells survive every blast.
func (q *Explosions) Resolve(t BlastTarget) {
	if len(q.pending) == 0 {
		return
	}

	var done []Explosion
	kept := q.pending[:0]
	for _, ex := range q.pending {
		ex.Age++
		ex.TTL--
		if ex.TTL <= 0 {
			done = append(done, ex)
			continue
		}
		kept = append(kept, ex)
	}
	q.pending = kept

	for _, ex := range done {
		t.Emit(Event{Type: EventExplode, At: ex.At, Blast: ex.Kind})
		for y := ex.At.Y - 1; y <= ex.At.Y+1; y++ {
			for x := ex.At.X - 1; x <= ex.At.X+1; x++ {
				if t.IsSteel(x, y) || t.IsExit(x, y) {
					continue
				}
				if ex.Kind == BlastButter {
					t.SetGem(x, y)
				} else {
					t.ClearTile(x, y)
				}
			}
		}
	}
}
