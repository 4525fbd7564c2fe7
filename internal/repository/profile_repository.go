package repository

import (
	"context"

	"github.com/reelmate/reelmate-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUID(ctx context.Context, uid string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	// SearchProfiles returns profiles matching the given filters. Supported
	// keys: "genders" ([]domain.Gender, membership), "city" (string,
	// equality), "complete" (bool, has_profile AND has_preferences).
	SearchProfiles(ctx context.Context, filters map[string]interface{}, limit, offset int) ([]*domain.Profile, error)
}
