package domain

import (
	"time"

	"github.com/beka-birhanu/lightning-maze/maze"
	"github.com/google/uuid"
)

// RunSummary is the archived record of a finished flood.
type RunSummary struct {
	ID             uuid.UUID      `bson:"_id" json:"id"`
	Width          int            `bson:"width" json:"width"`
	Height         int            `bson:"height" json:"height"`
	DeadEndProb    float64        `bson:"deadEndProb" json:"dead_end_prob"`
	LoopProb       float64        `bson:"loopProb" json:"loop_prob"`
	Seed           int64          `bson:"seed" json:"seed"`
	Algorithm      maze.Algorithm `bson:"algorithm" json:"algorithm"`
	Start          maze.Cell      `bson:"start" json:"start"`
	Target         maze.Cell      `bson:"target" json:"target"`
	Layers         int            `bson:"layers" json:"layers"`
	PathLength     int            `bson:"pathLength" json:"path_length"`
	MeanFrontier   float64        `bson:"meanFrontier" json:"mean_frontier"`
	MedianFrontier float64        `bson:"medianFrontier" json:"median_frontier"`
	P90Frontier    float64        `bson:"p90Frontier" json:"p90_frontier"`
	MaxFrontier    float64        `bson:"maxFrontier" json:"max_frontier"`
	CreatedAt      time.Time      `bson:"createdAt" json:"created_at"`
}

// GridKey identifies a reproducible grid: same key, same walls.
type GridKey struct {
	Width       int
	Height      int
	DeadEndProb float64
	LoopProb    float64
	Seed        int64
	Algorithm   maze.Algorithm
}
