package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain steps the engine to exhaustion and returns every reported frontier.
func drain(t *testing.T, e *Engine) [][]Cell {
	t.Helper()
	var frontiers [][]Cell
	for i := 0; i <= e.Width()*e.Height(); i++ {
		n := e.Step()
		if n == 0 {
			return frontiers
		}
		f := e.Frontier()
		require.Len(t, f, n)
		frontiers = append(frontiers, f)
	}
	t.Fatalf("flood did not terminate within %d steps", e.Width()*e.Height())
	return nil
}

// openGrid returns a w x h grid with every interior wall open.
func openGrid(t *testing.T, w, h int) *WallGrid {
	t.Helper()
	g, err := Generate(w, h, 0, 1, &Options{Seed: 1})
	require.NoError(t, err)
	return g
}

func TestFloodStateTransitions(t *testing.T) {
	f := NewFlood(openGrid(t, 2, 1), Cell{})
	assert.Equal(t, Idle, f.State())
	assert.Equal(t, 1, f.FrontierSize())
	assert.Equal(t, []Cell{{Col: 0, Row: 0}}, f.Frontier())

	assert.Equal(t, 1, f.Step())
	assert.Equal(t, Propagating, f.State())
	assert.Equal(t, 1, f.Layer())

	assert.Equal(t, 0, f.Step())
	assert.Equal(t, Exhausted, f.State())
	assert.Empty(t, f.Frontier())

	assert.Equal(t, 0, f.Step(), "stepping an exhausted flood is a no-op")
	assert.Equal(t, Exhausted, f.State())
	assert.Equal(t, 1, f.Layer())
}

func TestFloodSingleCell(t *testing.T) {
	f := NewFlood(openGrid(t, 1, 1), Cell{})
	assert.Equal(t, 0, f.Step())
	assert.Equal(t, Exhausted, f.State())

	p, err := FindPath(f)
	require.NoError(t, err)
	assert.Equal(t, []Cell{{}}, p.Cells)
	assert.Equal(t, 0, p.Distance)
}

func TestFloodFirstDiscovererWins(t *testing.T) {
	f := NewFlood(openGrid(t, 2, 2), Cell{})

	require.Equal(t, 2, f.Step())
	assert.Equal(t, []Cell{{Col: 1, Row: 0}, {Col: 0, Row: 1}}, f.Frontier(), "right is examined before down")

	require.Equal(t, 1, f.Step())
	assert.Equal(t, []Cell{{Col: 1, Row: 1}}, f.Frontier())
	assert.Equal(t, 1, f.parent[f.grid.Index(Cell{Col: 1, Row: 1})], "(1,0) reaches (1,1) before (0,1)")

	require.Equal(t, 0, f.Step())
}

func TestFloodCoversEveryCellOnce(t *testing.T) {
	for _, alg := range []Algorithm{AlgorithmPrim, AlgorithmWilson} {
		e, err := New(13, 9, 0.4, 0.7, &Options{Seed: 21, Algorithm: alg, Start: Cell{Col: 6, Row: 4}})
		require.NoError(t, err)

		seen := map[Cell]int{e.Start(): 1}
		frontiers := drain(t, e)
		assert.LessOrEqual(t, len(frontiers), e.Width()*e.Height())

		for layer, frontier := range frontiers {
			for _, c := range frontier {
				seen[c]++
				d, ok := e.Distance(c)
				require.True(t, ok)
				assert.Equal(t, layer+1, d)
			}
		}

		assert.Len(t, seen, e.Width()*e.Height())
		for c, n := range seen {
			assert.Equal(t, 1, n, "cell %v reported %d times", c, n)
		}
		assert.Equal(t, e.Width()*e.Height(), e.flood.Visited())
	}
}

func TestFloodParentsFormTree(t *testing.T) {
	e, err := New(10, 10, 0.5, 0.5, &Options{Seed: 8})
	require.NoError(t, err)
	drain(t, e)

	f := e.flood
	for idx := 0; idx < f.grid.Size(); idx++ {
		c := f.grid.CellAt(idx)
		if c == f.start {
			assert.Equal(t, -1, f.parent[idx])
			continue
		}
		p := f.parent[idx]
		require.GreaterOrEqual(t, p, 0, "cell %v has no parent", c)
		assert.Equal(t, f.distance[p]+1, f.distance[idx])
		assert.True(t, f.grid.Adjacent(f.grid.CellAt(p), c))
	}
}

func TestFloodIsDeterministic(t *testing.T) {
	a, err := New(16, 12, 0.4, 0.7, &Options{Seed: 1234})
	require.NoError(t, err)
	b, err := New(16, 12, 0.4, 0.7, &Options{Seed: 1234})
	require.NoError(t, err)

	assert.Equal(t, drain(t, a), drain(t, b))

	pa, err := a.Path()
	require.NoError(t, err)
	pb, err := b.Path()
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}

func TestFloodDistanceOutOfBounds(t *testing.T) {
	f := NewFlood(openGrid(t, 3, 3), Cell{})
	_, ok := f.Distance(Cell{Col: -1, Row: 0})
	assert.False(t, ok)
	_, ok = f.Distance(Cell{Col: 2, Row: 2})
	assert.False(t, ok, "not reached yet")
}
