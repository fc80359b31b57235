/*
Package maze provides a steppable maze engine over rectangular grids.

A maze is generated once as an immutable WallGrid: a random spanning tree
(randomized Prim or Wilson's algorithm) perturbed by a dead-end removal pass
and a loop-opening pass, both of which only open walls so the maze stays
connected. A Flood then spreads breadth-first from a start cell, one layer
per Step, and once it is exhausted FindPath backtracks the shortest path to
the farthest cell.

Engine bundles the three behind a single caller-owned handle. Nothing in
this package renders, sleeps or spawns goroutines; pacing is the caller's.
*/
package maze

import "strings"

// String provides a textual representation of the grid.
func (g *WallGrid) String() string {
	return g.render(nil)
}

// String draws the grid with the current frontier marked "*" and, once
// computed, the path marked "o".
func (e *Engine) String() string {
	marks := make(map[Cell]byte)
	if e.path != nil {
		for _, c := range e.path.Cells {
			marks[c] = 'o'
		}
	}
	for _, c := range e.flood.frontier {
		marks[c] = '*'
	}
	return e.grid.render(marks)
}

func (g *WallGrid) render(marks map[Cell]byte) string {
	var b strings.Builder

	// Top boundary
	b.WriteString("+")
	for col := 0; col < g.width; col++ {
		if g.horizontal[col] {
			b.WriteString("---+")
		} else {
			b.WriteString("   +")
		}
	}
	b.WriteString("\n")

	for row := 0; row < g.height; row++ {
		// Cell row, with the west boundary first
		if g.vertical[row*(g.width+1)] {
			b.WriteString("|")
		} else {
			b.WriteString(" ")
		}
		for col := 0; col < g.width; col++ {
			c := Cell{Col: col, Row: row}
			if m, ok := marks[c]; ok {
				b.WriteString(" " + string(m) + " ")
			} else {
				b.WriteString("   ")
			}
			if g.HasWall(c, Right) {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")

		// Wall row below the cells
		b.WriteString("+")
		for col := 0; col < g.width; col++ {
			if g.HasWall(Cell{Col: col, Row: row}, Down) {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
