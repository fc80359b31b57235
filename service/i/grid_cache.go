package i

import (
	"github.com/beka-birhanu/lightning-maze/domain"
	"github.com/beka-birhanu/lightning-maze/maze"
)

// GridCache keeps generated grids so identical requests skip generation.
// Grids are immutable, so cached values may be shared between sessions.
type GridCache interface {
	Get(key domain.GridKey) (*maze.WallGrid, bool)
	Add(key domain.GridKey, grid *maze.WallGrid)
}
