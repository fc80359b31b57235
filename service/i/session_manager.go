package i

import (
	"context"

	"github.com/beka-birhanu/lightning-maze/domain"
	"github.com/google/uuid"
)

// SessionManager owns the maze engines behind the HTTP API.
type SessionManager interface {
	// NewSession generates a maze and returns its id and driver token.
	NewSession(ctx context.Context, params domain.SessionParams) (*domain.SessionInfo, error)

	// Walls returns the wall snapshot of a session.
	Walls(id uuid.UUID) (*domain.Walls, error)

	// Step advances the session's flood by one layer.
	Step(ctx context.Context, id uuid.UUID) (*domain.Frame, error)

	// Path returns the lit path once the flood is exhausted.
	Path(id uuid.UUID) (*domain.PathInfo, error)

	// Replay restarts the flood over the same walls.
	Replay(id uuid.UUID) error

	// Close forgets a session.
	Close(id uuid.UUID) error

	// Summary loads the archived summary of a finished run.
	Summary(ctx context.Context, id uuid.UUID) (*domain.RunSummary, error)

	// Authorize checks that the token claims grant driving the session.
	Authorize(id uuid.UUID, claims map[string]interface{}) error
}
