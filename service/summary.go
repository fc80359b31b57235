package service

import (
	"time"

	"github.com/beka-birhanu/lightning-maze/domain"
	"github.com/beka-birhanu/lightning-maze/maze"
	"github.com/montanaflynn/stats"
)

// Summarize builds the archived record of a finished run. frontierSizes holds
// one entry per layer, the start layer included.
func Summarize(info domain.SessionInfo, path *maze.Path, frontierSizes []float64, now time.Time) (*domain.RunSummary, error) {
	mean, err := stats.Mean(frontierSizes)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(frontierSizes)
	if err != nil {
		return nil, err
	}
	p90, err := stats.Percentile(frontierSizes, 90)
	if err != nil {
		return nil, err
	}
	peak, err := stats.Max(frontierSizes)
	if err != nil {
		return nil, err
	}

	return &domain.RunSummary{
		ID:             info.ID,
		Width:          info.Width,
		Height:         info.Height,
		DeadEndProb:    info.DeadEndProb,
		LoopProb:       info.LoopProb,
		Seed:           info.Seed,
		Algorithm:      info.Algorithm,
		Start:          info.Start,
		Target:         path.Target,
		Layers:         path.Distance,
		PathLength:     path.Len(),
		MeanFrontier:   mean,
		MedianFrontier: median,
		P90Frontier:    p90,
		MaxFrontier:    peak,
		CreatedAt:      now.UTC(),
	}, nil
}
