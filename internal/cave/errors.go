package cave

import (
	"errors"
	"fmt"
)

// Construction errors. NewWorld wraps these with level details.
var (
	ErrInvalidSize  = errors.New("cave: grid dimensions must be positive")
	ErrTileCount    = errors.New("cave: tile count does not match grid dimensions")
	ErrNoPlayer     = errors.New("cave: level has no player spawn")
	ErrSpawnOutside = errors.New("cave: spawn outside the grid")
)

// PassFault reports a panic recovered inside one of the tick passes.
// The tick that produced it still ran to completion.
type PassFault struct {
	Pass  string
	Tick  uint64
	Value any
}

func (f *PassFault) Error() string {
	return fmt.Sprintf("cave: %s pass faulted at tick %d: %v", f.Pass, f.Tick, f.Value)
}
