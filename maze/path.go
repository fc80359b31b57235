package maze

import "fmt"

// Path is the shortest route from the flood start to its farthest cell.
type Path struct {
	Cells    []Cell // Cells from start to target, inclusive
	Target   Cell   // Target is the farthest cell reached
	Distance int    // Distance is the layer the target was reached at
}

// Len returns the number of cells on the path.
func (p *Path) Len() int {
	return len(p.Cells)
}

// FindPath backtracks parent links from the farthest cell of an exhausted
// flood. Among equally far cells the first one discovered wins.
func FindPath(f *Flood) (*Path, error) {
	if f.state != Exhausted {
		return nil, ErrNotExhausted
	}

	target := f.farthest
	distance, ok := f.Distance(target)
	if !ok {
		return nil, fmt.Errorf("%w: target %v was never visited", ErrInvariantViolation, target)
	}

	startIdx := f.grid.Index(f.start)
	cells := make([]Cell, 0, distance+1)
	idx := f.grid.Index(target)
	for {
		cells = append(cells, f.grid.CellAt(idx))
		if idx == startIdx {
			break
		}
		if len(cells) > distance {
			return nil, fmt.Errorf("%w: parent chain from %v is longer than its distance %d", ErrInvariantViolation, target, distance)
		}
		prev := f.parent[idx]
		if prev < 0 {
			return nil, fmt.Errorf("%w: %v has no parent and is not the start", ErrInvariantViolation, f.grid.CellAt(idx))
		}
		idx = prev
	}

	if len(cells) != distance+1 {
		return nil, fmt.Errorf("%w: path to %v has %d cells, want %d", ErrInvariantViolation, target, len(cells), distance+1)
	}

	// reverse to get start -> target
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}

	return &Path{Cells: cells, Target: target, Distance: distance}, nil
}
