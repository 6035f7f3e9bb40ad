package crops

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores recommendation records in memory and is safe for
// concurrent use. It backs dev environments without a database.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Recommendation
	byUser map[string][]Recommendation
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Recommendation),
		byUser: make(map[string][]Recommendation),
	}
}

// Create stores the record.
func (r *MemoryRepo) Create(ctx context.Context, record Recommendation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[record.ID] = record
	r.byUser[record.UserID] = append(r.byUser[record.UserID], record)
	return nil
}

// GetByID returns a record by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, recommendationID string) (Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return Recommendation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.byID[recommendationID]
	if !ok {
		return Recommendation{}, ErrNotFound
	}
	return record, nil
}

// ListByUser returns records for a user, newest first, with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Same paging defaults as PGRepo so dev and production page alike.
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	userRecords := r.byUser[userID]
	r.mu.RUnlock()

	if len(userRecords) == 0 || offset >= len(userRecords) {
		return []Recommendation{}, nil
	}

	records := make([]Recommendation, len(userRecords))
	copy(records, userRecords)
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	end := len(records)
	if offset+limit < end {
		end = offset + limit
	}
	return records[offset:end], nil
}
