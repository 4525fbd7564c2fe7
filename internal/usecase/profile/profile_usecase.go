package profile

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/reelmate/reelmate-backend/internal/domain"
	"github.com/reelmate/reelmate-backend/internal/infrastructure/catalog"
	"github.com/reelmate/reelmate-backend/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	genres      *catalog.GenreIndex
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	genres *catalog.GenreIndex,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		genres:      genres,
	}
}

// UpdateProfileRequest carries a partial profile update. Nil slices/maps
// leave the stored value untouched.
type UpdateProfileRequest struct {
	DisplayName        *string             `json:"display_name"`
	Gender             *domain.Gender      `json:"gender"`
	GenderPreferences  []domain.Gender     `json:"gender_preferences"`
	RelationshipIntent []domain.Intent     `json:"relationship_intent"`
	City               *string             `json:"city"`
	GenreRatings       map[string]int      `json:"genre_ratings"`
	Favorites          []domain.Movie      `json:"favorites"`
	RecentWatches      []domain.RatedMovie `json:"recent_watches"`
}

func (uc *ProfileUseCase) GetByUID(ctx context.Context, uid string) (*domain.Profile, error) {
	return uc.profileRepo.GetByUID(ctx, uid)
}

// UpdateProfile applies a partial update, normalizing taste data once at this
// boundary so the filter and scorer can consume it without re-validation.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, uid string, req *UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.Gender != nil {
		if !req.Gender.Valid() {
			return nil, domain.ErrInvalidInput
		}
		profile.Gender = *req.Gender
	}
	if req.GenderPreferences != nil {
		prefs, err := normalizeGenderPrefs(req.GenderPreferences)
		if err != nil {
			return nil, err
		}
		profile.GenderPreferences = prefs
	}
	if req.RelationshipIntent != nil {
		intents, err := normalizeIntents(req.RelationshipIntent)
		if err != nil {
			return nil, err
		}
		profile.RelationshipIntent = intents
	}
	if req.City != nil {
		city := strings.TrimSpace(*req.City)
		if city == "" {
			profile.City = nil
		} else {
			profile.City = &city
		}
	}
	if req.GenreRatings != nil {
		profile.GenreRatings = uc.normalizeGenreRatings(ctx, req.GenreRatings)
	}
	if req.Favorites != nil {
		profile.Favorites = normalizeMovies(req.Favorites, domain.MaxFavorites)
	}
	if req.RecentWatches != nil {
		profile.RecentWatches = normalizeWatches(req.RecentWatches, domain.MaxRecentWatches)
	}

	profile.HasProfile = profile.DisplayName != "" && profile.Gender.Valid()
	profile.HasPreferences = len(profile.GenderPreferences) > 0 && len(profile.RelationshipIntent) > 0

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

func normalizeGenderPrefs(prefs []domain.Gender) (domain.GenderList, error) {
	out := make(domain.GenderList, 0, len(prefs))
	seen := make(map[domain.Gender]bool)
	for _, g := range prefs {
		if !g.Valid() {
			return nil, domain.ErrInvalidInput
		}
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out, nil
}

func normalizeIntents(intents []domain.Intent) (domain.IntentList, error) {
	out := make(domain.IntentList, 0, len(intents))
	seen := make(map[domain.Intent]bool)
	for _, i := range intents {
		if i != domain.IntentFriends && i != domain.IntentRomance {
			return nil, domain.ErrInvalidInput
		}
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	return out, nil
}

// normalizeGenreRatings clamps ratings to [0,5] and resolves numeric catalog
// genre ids to canonical names where the index knows them. A genre appears at
// most once; on a name collision the last write wins.
func (uc *ProfileUseCase) normalizeGenreRatings(ctx context.Context, ratings map[string]int) domain.GenreRatings {
	out := make(domain.GenreRatings, len(ratings))
	for genre, rating := range ratings {
		if rating < 0 {
			rating = 0
		}
		if rating > 5 {
			rating = 5
		}
		name := strings.TrimSpace(genre)
		if name == "" {
			continue
		}
		if id, err := strconv.Atoi(name); err == nil && uc.genres != nil {
			if resolved, ok := uc.genres.Name(ctx, id); ok {
				name = resolved
			}
		}
		out[name] = rating
	}
	return out
}

func normalizeMovies(movies []domain.Movie, max int) domain.MovieList {
	out := make(domain.MovieList, 0, len(movies))
	for _, m := range movies {
		m.Title = strings.TrimSpace(m.Title)
		if m.CatalogID == "" && m.Title == "" {
			continue
		}
		out = append(out, m)
		if len(out) == max {
			break
		}
	}
	return out
}

func normalizeWatches(watches []domain.RatedMovie, max int) domain.WatchList {
	out := make(domain.WatchList, 0, len(watches))
	for _, w := range watches {
		w.Title = strings.TrimSpace(w.Title)
		if w.CatalogID == "" && w.Title == "" {
			continue
		}
		if w.Rating < 1 {
			w.Rating = 1
		}
		if w.Rating > 5 {
			w.Rating = 5
		}
		out = append(out, w)
		if len(out) == max {
			break
		}
	}
	return out
}
