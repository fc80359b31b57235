// Package mazeapi exposes maze sessions over HTTP.
package mazeapi

import (
	"github.com/beka-birhanu/lightning-maze/domain"
	"github.com/beka-birhanu/lightning-maze/maze"
	"github.com/google/uuid"
)

// CreateMazeRequest asks for a new maze session.
type CreateMazeRequest struct {
	Width       int        `json:"width" binding:"required,min=1"`
	Height      int        `json:"height" binding:"required,min=1"`
	DeadEndProb *float64   `json:"dead_end_prob" binding:"omitempty,min=0,max=1"`
	LoopProb    *float64   `json:"loop_prob" binding:"omitempty,min=0,max=1"`
	Seed        int64      `json:"seed"`
	Algorithm   string     `json:"algorithm" binding:"omitempty,oneof=prim wilson"`
	Start       *maze.Cell `json:"start"`
}

func (r *CreateMazeRequest) params() domain.SessionParams {
	p := domain.SessionParams{
		Width:       r.Width,
		Height:      r.Height,
		DeadEndProb: r.DeadEndProb,
		LoopProb:    r.LoopProb,
		Seed:        r.Seed,
		Algorithm:   maze.Algorithm(r.Algorithm),
	}
	if r.Start != nil {
		p.Start = *r.Start
	}
	return p
}

// CreateMazeResponse carries the session id and the driver token.
type CreateMazeResponse struct {
	ID          uuid.UUID      `json:"id"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	DeadEndProb float64        `json:"dead_end_prob"`
	LoopProb    float64        `json:"loop_prob"`
	Seed        int64          `json:"seed"`
	Algorithm   maze.Algorithm `json:"algorithm"`
	Start       maze.Cell      `json:"start"`
	Token       string         `json:"token"`
}

func newCreateMazeResponse(info *domain.SessionInfo) *CreateMazeResponse {
	return &CreateMazeResponse{
		ID:          info.ID,
		Width:       info.Width,
		Height:      info.Height,
		DeadEndProb: info.DeadEndProb,
		LoopProb:    info.LoopProb,
		Seed:        info.Seed,
		Algorithm:   info.Algorithm,
		Start:       info.Start,
		Token:       info.Token,
	}
}

// WallsResponse is a wall snapshot; true means the wall is present.
type WallsResponse struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Vertical   []bool `json:"vertical"`
	Horizontal []bool `json:"horizontal"`
}

// StepResponse reports the layer a step discovered.
type StepResponse struct {
	Layer     int         `json:"layer"`
	Count     int         `json:"count"`
	Cells     []maze.Cell `json:"cells"`
	Exhausted bool        `json:"exhausted"`
}

// PathResponse is the lit path from the start to the farthest cell.
type PathResponse struct {
	Cells    []maze.Cell `json:"cells"`
	Length   int         `json:"length"`
	Target   maze.Cell   `json:"target"`
	Distance int         `json:"distance"`
}
