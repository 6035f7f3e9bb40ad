package crops

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a recommendation record does not exist
// or is not visible to the caller.
var ErrNotFound = errors.New("recommendation not found")

// Repo defines persistence operations for recommendation records.
type Repo interface {
	Create(ctx context.Context, record Recommendation) error
	GetByID(ctx context.Context, recommendationID string) (Recommendation, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Recommendation, error)
}
