package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/reelmate/reelmate-backend/internal/domain"
	"github.com/reelmate/reelmate-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			uid, display_name, gender, gender_preferences, relationship_intent,
			city, genre_ratings, favorites, recent_watches,
			has_profile, has_preferences
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.UID, profile.DisplayName, profile.Gender,
		profile.GenderPreferences, profile.RelationshipIntent,
		profile.City, profile.GenreRatings, profile.Favorites, profile.RecentWatches,
		profile.HasProfile, profile.HasPreferences,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByUID(ctx context.Context, uid string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT * FROM profiles WHERE uid = $1`
	err := r.db.GetContext(ctx, &profile, query, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $1, gender = $2, gender_preferences = $3,
		    relationship_intent = $4, city = $5, genre_ratings = $6,
		    favorites = $7, recent_watches = $8,
		    has_profile = $9, has_preferences = $10,
		    updated_at = CURRENT_TIMESTAMP
		WHERE uid = $11
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.DisplayName, profile.Gender, profile.GenderPreferences,
		profile.RelationshipIntent, profile.City, profile.GenreRatings,
		profile.Favorites, profile.RecentWatches,
		profile.HasProfile, profile.HasPreferences,
		profile.UID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) SearchProfiles(ctx context.Context, filters map[string]interface{}, limit, offset int) ([]*domain.Profile, error) {
	var profiles []*domain.Profile

	query := `SELECT * FROM profiles WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if genders, ok := filters["genders"].([]domain.Gender); ok && len(genders) > 0 {
		values := make([]string, 0, len(genders))
		for _, g := range genders {
			values = append(values, string(g))
		}
		query += fmt.Sprintf(" AND gender = ANY($%d)", argCount)
		args = append(args, pq.Array(values))
		argCount++
	}

	if city, ok := filters["city"].(string); ok && city != "" {
		query += fmt.Sprintf(" AND city = $%d", argCount)
		args = append(args, city)
		argCount++
	}

	if complete, ok := filters["complete"].(bool); ok {
		query += fmt.Sprintf(" AND has_profile = $%d AND has_preferences = $%d", argCount, argCount)
		args = append(args, complete)
		argCount++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, offset)

	err := r.db.SelectContext(ctx, &profiles, query, args...)
	return profiles, err
}
