package i

import "github.com/beka-birhanu/lightning-maze/domain"

// Encoder serialises engine outputs for binary clients.
type Encoder interface {
	MarshalFrame(*domain.Frame) ([]byte, error)
	MarshalWalls(*domain.Walls) ([]byte, error)
	MarshalPath(*domain.PathInfo) ([]byte, error)
}
