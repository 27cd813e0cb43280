package cave

// Rules holds the tunable constants of a cave.
type Rules struct {
	TimeLimit  float64 // Seconds on the clock when a level does not set its own
	GemPercent int     // Share of reachable gems required to open the exits
	GemScore   int
	DirtScore  int
	KeyScore   int
	BlastFuse  int // Resolve passes between queueing and detonating an explosion
}

// DefaultRules returns the classic values.
func DefaultRules() Rules {
	return Rules{
		TimeLimit:  120,
		GemPercent: 80,
		GemScore:   15,
		DirtScore:  1,
		KeyScore:   25,
		BlastFuse:  4,
	}
}

// withDefaults fills zero fields from DefaultRules. The zero Rules value means DefaultRules.
func (r Rules) withDefaults() Rules {
	d := DefaultRules()
	if r == (Rules{}) {
		return d
	}
	if r.TimeLimit <= 0 {
		r.TimeLimit = d.TimeLimit
	}
	if r.GemPercent <= 0 {
		r.GemPercent = d.GemPercent
	}
	if r.GemPercent > 100 {
		r.GemPercent = 100
	}
	if r.BlastFuse <= 0 {
		r.BlastFuse = d.BlastFuse
	}
	return r
}

// RequiredGems returns ceil(percent/100 * reachable) using integer arithmetic.
func RequiredGems(reachable, percent int) int {
	if reachable <= 0 || percent <= 0 {
		return 0
	}
	return (reachable*percent + 99) / 100
}
