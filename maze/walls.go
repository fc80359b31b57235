package maze

// WallGrid is the wall layout of a width x height grid.
//
// Vertical walls sit between column-adjacent cells, (width+1) per row: index
// row*(width+1)+col is the wall on the left of (col,row). Horizontal walls sit
// between row-adjacent cells, width per line over height+1 lines: index
// row*width+col is the wall above (col,row). A true entry is a wall.
//
// A WallGrid is immutable once generation returns it and may be shared by
// any number of engines.
type WallGrid struct {
	width      int
	height     int
	vertical   []bool
	horizontal []bool
}

// newWallGrid returns a grid with every wall present.
func newWallGrid(width, height int) *WallGrid {
	g := &WallGrid{
		width:      width,
		height:     height,
		vertical:   make([]bool, (width+1)*height),
		horizontal: make([]bool, width*(height+1)),
	}
	for i := range g.vertical {
		g.vertical[i] = true
	}
	for i := range g.horizontal {
		g.horizontal[i] = true
	}
	return g
}

// FromWalls rebuilds a grid from wall buffers, e.g. ones decoded off the wire.
// Boundary walls must be present. Connectivity is not checked.
func FromWalls(width, height int, vertical, horizontal []bool) (*WallGrid, error) {
	if width <= 0 {
		return nil, configErrorf("width", "must be positive, got %d", width)
	}
	if height <= 0 {
		return nil, configErrorf("height", "must be positive, got %d", height)
	}
	if len(vertical) != (width+1)*height {
		return nil, configErrorf("vertical", "length must be %d, got %d", (width+1)*height, len(vertical))
	}
	if len(horizontal) != width*(height+1) {
		return nil, configErrorf("horizontal", "length must be %d, got %d", width*(height+1), len(horizontal))
	}

	g := &WallGrid{
		width:      width,
		height:     height,
		vertical:   append([]bool(nil), vertical...),
		horizontal: append([]bool(nil), horizontal...),
	}
	for row := 0; row < height; row++ {
		if !g.vertical[row*(width+1)] || !g.vertical[row*(width+1)+width] {
			return nil, configErrorf("vertical", "boundary wall missing on row %d", row)
		}
	}
	for col := 0; col < width; col++ {
		if !g.horizontal[col] || !g.horizontal[height*width+col] {
			return nil, configErrorf("horizontal", "boundary wall missing on column %d", col)
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *WallGrid) Width() int { return g.width }

// Height returns the number of rows.
func (g *WallGrid) Height() int { return g.height }

// Size returns the number of cells.
func (g *WallGrid) Size() int { return g.width * g.height }

// InBound reports whether c lies inside the grid.
func (g *WallGrid) InBound(c Cell) bool {
	return c.Col >= 0 && c.Col < g.width && c.Row >= 0 && c.Row < g.height
}

// Index maps c to its row-major index.
func (g *WallGrid) Index(c Cell) int {
	return c.Row*g.width + c.Col
}

// CellAt is the inverse of Index.
func (g *WallGrid) CellAt(idx int) Cell {
	return Cell{Col: idx % g.width, Row: idx / g.width}
}

// wallIndex locates the wall on side d of c. The bool selects the vertical buffer.
func (g *WallGrid) wallIndex(c Cell, d Direction) (int, bool) {
	switch d {
	case Up:
		return c.Row*g.width + c.Col, false
	case Down:
		return (c.Row+1)*g.width + c.Col, false
	case Left:
		return c.Row*(g.width+1) + c.Col, true
	default:
		return c.Row*(g.width+1) + c.Col + 1, true
	}
}

// HasWall reports whether side d of the in-bound cell c is walled.
func (g *WallGrid) HasWall(c Cell, d Direction) bool {
	i, vertical := g.wallIndex(c, d)
	if vertical {
		return g.vertical[i]
	}
	return g.horizontal[i]
}

// CanMove reports whether the neighbour of c in direction d exists and is
// reachable through an open wall.
func (g *WallGrid) CanMove(c Cell, d Direction) bool {
	return g.InBound(c) && g.InBound(c.Step(d)) && !g.HasWall(c, d)
}

// Adjacent reports whether a and b are grid neighbours sharing an open wall.
func (g *WallGrid) Adjacent(a, b Cell) bool {
	for _, d := range Directions {
		if a.Step(d) == b {
			return g.CanMove(a, d)
		}
	}
	return false
}

// openWall removes the wall on side d of c. Only generation calls it.
func (g *WallGrid) openWall(c Cell, d Direction) {
	i, vertical := g.wallIndex(c, d)
	if vertical {
		g.vertical[i] = false
		return
	}
	g.horizontal[i] = false
}

// Degree counts the open sides of c.
func (g *WallGrid) Degree(c Cell) int {
	n := 0
	for _, d := range Directions {
		if g.CanMove(c, d) {
			n++
		}
	}
	return n
}

// OpenEdges counts the open interior walls, i.e. the edges of the maze graph.
func (g *WallGrid) OpenEdges() int {
	n := 0
	for row := 0; row < g.height; row++ {
		for col := 1; col < g.width; col++ {
			if !g.vertical[row*(g.width+1)+col] {
				n++
			}
		}
	}
	for row := 1; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			if !g.horizontal[row*g.width+col] {
				n++
			}
		}
	}
	return n
}

// VerticalWalls returns a copy of the vertical wall buffer.
func (g *WallGrid) VerticalWalls() []bool {
	return append([]bool(nil), g.vertical...)
}

// HorizontalWalls returns a copy of the horizontal wall buffer.
func (g *WallGrid) HorizontalWalls() []bool {
	return append([]bool(nil), g.horizontal...)
}
