package gridcache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/beka-birhanu/lightning-maze/domain"
	"github.com/beka-birhanu/lightning-maze/maze"
	"github.com/beka-birhanu/lightning-maze/service/i"
)

var _ i.GridCache = &Cache{}

// Cache keeps the most recently generated grids, keyed by everything that
// determines their walls.
type Cache struct {
	c *lru.Cache[domain.GridKey, *maze.WallGrid]
}

// New returns a cache holding at most size grids.
func New(size int) (*Cache, error) {
	c, err := lru.New[domain.GridKey, *maze.WallGrid](size)
	if err != nil {
		return nil, err
	}
	return &Cache{c: c}, nil
}

func (gc *Cache) Get(key domain.GridKey) (*maze.WallGrid, bool) {
	return gc.c.Get(key)
}

func (gc *Cache) Add(key domain.GridKey, grid *maze.WallGrid) {
	gc.c.Add(key, grid)
}

// Len reports the number of cached grids.
func (gc *Cache) Len() int {
	return gc.c.Len()
}
