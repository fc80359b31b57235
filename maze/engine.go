package maze

// Engine is a caller-owned maze handle: an immutable WallGrid plus the flood
// running over it. An Engine is driven by one loop at a time; it does no
// locking of its own.
type Engine struct {
	grid  *WallGrid
	flood *Flood
	path  *Path
}

// New generates a maze and seeds a flood at opts.Start.
// Invalid parameters are reported as *ConfigError before any generation work.
func New(width, height int, deadEndProb, loopProb float64, opts *Options) (*Engine, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	grid, err := Generate(width, height, deadEndProb, loopProb, opts)
	if err != nil {
		return nil, err
	}
	return &Engine{grid: grid, flood: NewFlood(grid, opts.Start)}, nil
}

// NewEngine floods an existing grid from start.
func NewEngine(grid *WallGrid, start Cell) (*Engine, error) {
	if grid == nil {
		return nil, configErrorf("grid", "is nil")
	}
	if !grid.InBound(start) {
		return nil, configErrorf("start", "%v is outside the %dx%d grid", start, grid.width, grid.height)
	}
	return &Engine{grid: grid, flood: NewFlood(grid, start)}, nil
}

// Replay returns a fresh, idle engine over the same grid and start.
func (e *Engine) Replay() *Engine {
	return &Engine{grid: e.grid, flood: NewFlood(e.grid, e.flood.start)}
}

// Width returns the number of columns.
func (e *Engine) Width() int { return e.grid.width }

// Height returns the number of rows.
func (e *Engine) Height() int { return e.grid.height }

// Start returns the flood seed.
func (e *Engine) Start() Cell { return e.flood.start }

// Grid returns the immutable wall layout.
func (e *Engine) Grid() *WallGrid { return e.grid }

// State returns the flood lifecycle stage.
func (e *Engine) State() State { return e.flood.state }

// Layer returns the distance of the current frontier.
func (e *Engine) Layer() int { return e.flood.layer }

// VerticalWalls returns a snapshot of the (width+1)*height vertical walls.
func (e *Engine) VerticalWalls() []bool { return e.grid.VerticalWalls() }

// HorizontalWalls returns a snapshot of the width*(height+1) horizontal walls.
func (e *Engine) HorizontalWalls() []bool { return e.grid.HorizontalWalls() }

// Step advances the flood by one layer and returns the new frontier size.
// Zero signals exhaustion.
func (e *Engine) Step() int { return e.flood.Step() }

// FrontierSize returns the size reported by the last Step.
func (e *Engine) FrontierSize() int { return e.flood.FrontierSize() }

// Frontier returns a copy of the cells lit by the last Step.
func (e *Engine) Frontier() []Cell { return e.flood.Frontier() }

// Distance returns the layer c was reached at.
func (e *Engine) Distance(c Cell) (int, bool) { return e.flood.Distance(c) }

// Path reconstructs the path to the farthest cell on first use and returns
// the memoized result afterwards. It fails with ErrNotExhausted while the
// flood is still running.
func (e *Engine) Path() (*Path, error) {
	if e.path != nil {
		return e.path, nil
	}
	p, err := FindPath(e.flood)
	if err != nil {
		return nil, err
	}
	e.path = p
	return p, nil
}

// PathLength returns the number of cells on the path, or 0 before it exists.
func (e *Engine) PathLength() int {
	p, err := e.Path()
	if err != nil {
		return 0
	}
	return p.Len()
}
