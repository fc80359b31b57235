// Package domain holds the value types exchanged between the service, its
// infrastructure and the HTTP layer.
package domain

import (
	"github.com/beka-birhanu/lightning-maze/maze"
	"github.com/google/uuid"
)

// SessionParams describes the maze a new session floods.
type SessionParams struct {
	Width       int
	Height      int
	DeadEndProb *float64 // nil selects the configured default
	LoopProb    *float64 // nil selects the configured default
	Seed        int64    // 0 picks a random seed, reported back in SessionInfo
	Algorithm   maze.Algorithm
	Start       maze.Cell
}

// SessionInfo is returned to the creator of a session.
type SessionInfo struct {
	ID          uuid.UUID
	Width       int
	Height      int
	DeadEndProb float64
	LoopProb    float64
	Seed        int64
	Algorithm   maze.Algorithm
	Start       maze.Cell
	Token       string // Driver token authorising step, replay and close
}

// Walls is a wall snapshot of a session's grid.
type Walls struct {
	Width      int
	Height     int
	Vertical   []bool
	Horizontal []bool
}

// Frame is the outcome of one flood step.
type Frame struct {
	Layer     int
	Cells     []maze.Cell
	Exhausted bool
}

// PathInfo is the lit path of an exhausted session.
type PathInfo struct {
	Cells    []maze.Cell
	Target   maze.Cell
	Distance int
}
