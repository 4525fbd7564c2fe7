package repository

import (
	"context"

	"github.com/reelmate/reelmate-backend/internal/domain"
)

type SwipeRepository interface {
	// Upsert persists the decision keyed by the ordered (from, to) pair,
	// overwriting any earlier decision for the same pair.
	Upsert(ctx context.Context, swipe *domain.Swipe) error
	GetByUsers(ctx context.Context, fromUID, toUID string) (*domain.Swipe, error)
	// ListByActor returns every outbound decision the user has recorded.
	ListByActor(ctx context.Context, fromUID string) ([]*domain.Swipe, error)
}
