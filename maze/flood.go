package maze

// State is the lifecycle stage of a flood.
type State int

// Flood states. Exhausted is terminal.
const (
	Idle State = iota
	Propagating
	Exhausted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Propagating:
		return "propagating"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

const unvisited = -1

// Flood is a breadth-first wave over a WallGrid, advanced one layer per Step.
type Flood struct {
	grid     *WallGrid
	start    Cell
	state    State
	layer    int
	distance []int // distance[idx] is the layer idx was reached at, or unvisited
	parent   []int // parent[idx] is the row-major index of the discovering cell, or -1
	frontier []Cell
	next     []Cell // spare buffer swapped with frontier every step
	farthest Cell  // first cell of the last non-empty frontier
}

// NewFlood seeds a flood at start. Start must be inside the grid.
func NewFlood(grid *WallGrid, start Cell) *Flood {
	size := grid.Size()
	f := &Flood{
		grid:     grid,
		start:    start,
		state:    Idle,
		distance: make([]int, size),
		parent:   make([]int, size),
		frontier: make([]Cell, 0, 4),
		next:     make([]Cell, 0, 4),
	}
	for i := range f.distance {
		f.distance[i] = unvisited
		f.parent[i] = -1
	}

	idx := grid.Index(start)
	f.distance[idx] = 0
	f.frontier = append(f.frontier, start)
	f.farthest = start
	return f
}

// Step advances the wave by one layer and returns the size of the new
// frontier. Zero means the flood is exhausted; further calls are no-ops.
func (f *Flood) Step() int {
	switch f.state {
	case Exhausted:
		return 0
	case Idle:
		f.state = Propagating
	}

	next := f.next[:0]
	for _, c := range f.frontier {
		from := f.grid.Index(c)
		for _, d := range Directions {
			if !f.grid.CanMove(c, d) {
				continue
			}
			n := c.Step(d)
			idx := f.grid.Index(n)
			if f.distance[idx] != unvisited {
				continue
			}
			f.distance[idx] = f.layer + 1
			f.parent[idx] = from
			next = append(next, n)
		}
	}

	f.next = f.frontier
	f.frontier = next
	if len(next) == 0 {
		f.state = Exhausted
		return 0
	}

	f.layer++
	f.farthest = next[0]
	return len(next)
}

// State returns the lifecycle stage.
func (f *Flood) State() State { return f.state }

// Layer returns the distance of the current frontier from start.
func (f *Flood) Layer() int { return f.layer }

// Start returns the seed cell.
func (f *Flood) Start() Cell { return f.start }

// FrontierSize returns the number of cells reached by the last step.
func (f *Flood) FrontierSize() int { return len(f.frontier) }

// Frontier returns a copy of the cells reached by the last step, in discovery order.
func (f *Flood) Frontier() []Cell {
	return append([]Cell(nil), f.frontier...)
}

// Distance returns the layer c was reached at, or false when c was not reached.
func (f *Flood) Distance(c Cell) (int, bool) {
	if !f.grid.InBound(c) {
		return 0, false
	}
	d := f.distance[f.grid.Index(c)]
	return d, d != unvisited
}

// Visited counts the cells reached so far, start included.
func (f *Flood) Visited() int {
	n := 0
	for _, d := range f.distance {
		if d != unvisited {
			n++
		}
	}
	return n
}
