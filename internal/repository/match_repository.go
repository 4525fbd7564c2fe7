package repository

import (
	"context"

	"github.com/reelmate/reelmate-backend/internal/domain"
)

type MatchRepository interface {
	// Create inserts the match if no record exists for its pair key yet.
	// Inserting an already-present pair is a no-op, not an error; the
	// concurrent second-like race resolves at the store level.
	Create(ctx context.Context, match *domain.Match) error
	GetByPairKey(ctx context.Context, pairKey string) (*domain.Match, error)
	GetUserMatches(ctx context.Context, uid string, limit, offset int) ([]*domain.Match, error)
	UpdateIcebreakers(ctx context.Context, pairKey string, icebreakers []string) error
}
