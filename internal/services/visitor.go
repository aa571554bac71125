package services

import (
	"context"
	"fmt"
)

// VisitorStore is the persistence surface for the singleton counter
type VisitorStore interface {
	Increment(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// VisitorService exposes the global visitor counter
type VisitorService struct {
	visitorRepo VisitorStore
}

// NewVisitorService creates a new visitor service
func NewVisitorService(visitorRepo VisitorStore) *VisitorService {
	return &VisitorService{visitorRepo: visitorRepo}
}

// Increment bumps the counter and returns the new value. The repository
// primitive is a single atomic upsert, so concurrent page loads cannot
// lose increments.
func (s *VisitorService) Increment(ctx context.Context) (int64, error) {
	count, err := s.visitorRepo.Increment(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to increment visitors: %w", err)
	}
	return count, nil
}

// Count returns the current value without creating the counter row.
func (s *VisitorService) Count(ctx context.Context) (int64, error) {
	count, err := s.visitorRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read visitors: %w", err)
	}
	return count, nil
}
