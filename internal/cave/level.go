package cave

// Level is a pre-parsed cave: the tile grid plus spawn data.
// Locked-door and key counts are taken from the tiles themselves.
type Level struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Tiles     []Tile // Row-major, len == Width*Height
	Player    Coord
	HasPlayer bool
	Enemies   []Enemy
	StartKeys int

	// GemsRequired overrides the reachability-derived requirement when non-nil.
	GemsRequired *int

	// TimeLimit in seconds; zero uses Rules.TimeLimit.
	TimeLimit float64
}

// ReachableGems counts the gems the player could walk or dig to from start.
// Boulders, walls, steel, closed doors and closed exits block the search.
func ReachableGems(g *Grid, start Coord) int {
	if !g.InBounds(start.X, start.Y) {
		return 0
	}
	visited := make([]bool, g.Width()*g.Height())
	queue := []Coord{start}
	visited[start.Y*g.Width()+start.X] = true
	gems := 0

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if g.At(c) == TileGem {
			gems++
		}
		for _, d := range [4]Dir{DirRight, DirLeft, DirDown, DirUp} {
			n := c.Step(d)
			if !g.InBounds(n.X, n.Y) {
				continue
			}
			i := n.Y*g.Width() + n.X
			if visited[i] || !g.At(n).IsWalkable() {
				continue
			}
			visited[i] = true
			queue = append(queue, n)
		}
	}
	return gems
}
