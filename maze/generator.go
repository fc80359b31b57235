package maze

import (
	"math/rand"
	"time"
)

// Algorithm selects how the spanning tree is carved.
type Algorithm string

// Supported spanning-tree algorithms.
const (
	// AlgorithmPrim grows the tree from a random cell by opening random frontier edges.
	AlgorithmPrim Algorithm = "prim"
	// AlgorithmWilson joins loop-erased random walks to the tree, giving a uniform spanning tree.
	AlgorithmWilson Algorithm = "wilson"
)

// Source is the randomness a generator draws from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Options configures generation and the flood seed.
type Options struct {
	Seed      int64     // Seed for reproducible mazes (0 = time seeded). Ignored when Rand is set.
	Rand      Source    // Rand overrides Seed with a caller-owned source
	Algorithm Algorithm // Spanning-tree algorithm ("" = AlgorithmPrim)
	Start     Cell      // Start is the flood seed cell
}

// DefaultOptions returns options for a time-seeded Prim maze flooded from (0,0).
func DefaultOptions() *Options {
	return &Options{
		Seed:      0,
		Algorithm: AlgorithmPrim,
		Start:     Cell{Col: 0, Row: 0},
	}
}

func (o *Options) source() Source {
	if o.Rand != nil {
		return o.Rand
	}
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// validate checks every generation parameter before any work is done.
func validate(width, height int, deadEndProb, loopProb float64, opts *Options) error {
	if width <= 0 {
		return configErrorf("width", "must be positive, got %d", width)
	}
	if height <= 0 {
		return configErrorf("height", "must be positive, got %d", height)
	}
	if !(deadEndProb >= 0 && deadEndProb <= 1) {
		return configErrorf("deadEndProb", "must be within [0,1], got %v", deadEndProb)
	}
	if !(loopProb >= 0 && loopProb <= 1) {
		return configErrorf("loopProb", "must be within [0,1], got %v", loopProb)
	}
	switch opts.Algorithm {
	case "", AlgorithmPrim, AlgorithmWilson:
	default:
		return configErrorf("algorithm", "unknown algorithm %q", opts.Algorithm)
	}
	s := opts.Start
	if s.Col < 0 || s.Col >= width || s.Row < 0 || s.Row >= height {
		return configErrorf("start", "%v is outside the %dx%d grid", s, width, height)
	}
	return nil
}

// Generate builds a connected maze.
//
// A random spanning tree is carved first, so every cell is reachable. Then,
// with probability deadEndProb, each dead end gets one extra wall opened, and
// with probability loopProb each remaining closed interior wall is opened.
// Both passes only open walls, so connectivity is kept.
func Generate(width, height int, deadEndProb, loopProb float64, opts *Options) (*WallGrid, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := validate(width, height, deadEndProb, loopProb, opts); err != nil {
		return nil, err
	}

	g := &generator{
		grid: newWallGrid(width, height),
		rng:  opts.source(),
	}

	switch opts.Algorithm {
	case AlgorithmWilson:
		g.carveWilson()
	default:
		g.carvePrim()
	}
	g.removeDeadEnds(deadEndProb)
	g.braid(loopProb)

	return g.grid, nil
}

type generator struct {
	grid *WallGrid
	rng  Source
}

// edge is the wall on side dir of from.
type edge struct {
	from Cell
	dir  Direction
}

// randomCell picks a cell uniformly.
func (g *generator) randomCell() Cell {
	return Cell{Col: g.rng.Intn(g.grid.width), Row: g.rng.Intn(g.grid.height)}
}

// carvePrim grows the tree from a random cell, opening a random candidate
// edge towards an unvisited cell until every cell is in the tree.
func (g *generator) carvePrim() {
	visited := make([]bool, g.grid.Size())
	edges := make([]edge, 0, 4*g.grid.Size())

	visit := func(c Cell) {
		visited[g.grid.Index(c)] = true
		for _, d := range Directions {
			n := c.Step(d)
			if g.grid.InBound(n) && !visited[g.grid.Index(n)] {
				edges = append(edges, edge{from: c, dir: d})
			}
		}
	}

	visit(g.randomCell())
	for len(edges) > 0 {
		i := g.rng.Intn(len(edges))
		e := edges[i]
		edges[i] = edges[len(edges)-1]
		edges = edges[:len(edges)-1]

		to := e.from.Step(e.dir)
		if visited[g.grid.Index(to)] {
			continue
		}
		g.grid.openWall(e.from, e.dir)
		visit(to)
	}
}

// randomUnvisitedCell selects a random cell that is not yet in the tree.
func (g *generator) randomUnvisitedCell(visited []bool) Cell {
	for {
		c := g.randomCell()
		if !visited[g.grid.Index(c)] {
			return c
		}
	}
}

// neighbors lists the in-bound directions around c.
func (g *generator) neighbors(c Cell) []Direction {
	dirs := make([]Direction, 0, 4)
	for _, d := range Directions {
		if g.grid.InBound(c.Step(d)) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// carveWilson runs Wilson's algorithm: random walks from unvisited cells until
// they reach the tree, keeping only the last exit taken from each cell, which
// erases loops. The erased walk is then added to the tree.
func (g *generator) carveWilson() {
	size := g.grid.Size()
	visited := make([]bool, size)
	exit := make([]Direction, size)

	visited[g.grid.Index(g.randomCell())] = true
	inTree := 1

	for inTree < size {
		start := g.randomUnvisitedCell(visited)

		cell := start
		for !visited[g.grid.Index(cell)] {
			dirs := g.neighbors(cell)
			d := dirs[g.rng.Intn(len(dirs))]
			exit[g.grid.Index(cell)] = d
			cell = cell.Step(d)
		}

		cell = start
		for !visited[g.grid.Index(cell)] {
			idx := g.grid.Index(cell)
			visited[idx] = true
			inTree++
			g.grid.openWall(cell, exit[idx])
			cell = cell.Step(exit[idx])
		}
	}
}

// removeDeadEnds gives each dead end, with probability p, one more open wall.
// Dead ends are taken in row-major order; one already fixed by an earlier
// opening is skipped.
func (g *generator) removeDeadEnds(p float64) {
	if p == 0 {
		return
	}

	var deadEnds []Cell
	for idx := 0; idx < g.grid.Size(); idx++ {
		if c := g.grid.CellAt(idx); g.grid.Degree(c) == 1 {
			deadEnds = append(deadEnds, c)
		}
	}

	for _, c := range deadEnds {
		if g.grid.Degree(c) != 1 {
			continue
		}
		if g.rng.Float64() >= p {
			continue
		}

		closed := make([]Direction, 0, 3)
		for _, d := range Directions {
			if g.grid.InBound(c.Step(d)) && g.grid.HasWall(c, d) {
				closed = append(closed, d)
			}
		}
		if len(closed) == 0 {
			continue
		}
		g.grid.openWall(c, closed[g.rng.Intn(len(closed))])
	}
}

// braid opens each closed interior wall with probability p: vertical walls
// first, then horizontal ones, both in row-major order.
func (g *generator) braid(p float64) {
	if p == 0 {
		return
	}

	w, h := g.grid.width, g.grid.height
	for row := 0; row < h; row++ {
		for col := 1; col < w; col++ {
			i := row*(w+1) + col
			if g.grid.vertical[i] && g.rng.Float64() < p {
				g.grid.vertical[i] = false
			}
		}
	}
	for row := 1; row < h; row++ {
		for col := 0; col < w; col++ {
			i := row*w + col
			if g.grid.horizontal[i] && g.rng.Float64() < p {
				g.grid.horizontal[i] = false
			}
		}
	}
}
