package i

import (
	"context"

	"github.com/beka-birhanu/lightning-maze/domain"
	"github.com/google/uuid"
)

// RunRepo defines the interface for run summary persistence.
type RunRepo interface {
	// Save inserts or replaces a run summary.
	Save(ctx context.Context, run *domain.RunSummary) error

	// ByID retrieves a run summary by its session ID.
	// Returns ErrRunNotFound if no run was archived under that ID.
	ByID(ctx context.Context, id uuid.UUID) (*domain.RunSummary, error)
}
