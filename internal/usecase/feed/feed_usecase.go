package feed

import (
	"context"
	"fmt"
	"sort"

	"github.com/reelmate/reelmate-backend/internal/domain"
	"github.com/reelmate/reelmate-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

type FeedUseCase struct {
	profileRepo repository.ProfileRepository
	swipeRepo   repository.SwipeRepository
}

func NewFeedUseCase(
	profileRepo repository.ProfileRepository,
	swipeRepo repository.SwipeRepository,
) *FeedUseCase {
	return &FeedUseCase{
		profileRepo: profileRepo,
		swipeRepo:   swipeRepo,
	}
}

const (
	// DefaultMaxResults caps the candidate list when the caller passes no
	// limit.
	DefaultMaxResults = 20

	cityQueryLimit   = 100
	globalQueryLimit = 100

	// When the city-scoped pass yields fewer rows than this, a global pass
	// supplements the pool.
	cityPoolTarget = 30
)

// ScoredCandidate is a candidate profile annotated with its compatibility
// score and the locality flag used for ranking.
type ScoredCandidate struct {
	Profile  *domain.Profile `json:"profile"`
	Score    int             `json:"compatibility_score"`
	SameCity bool            `json:"same_city"`
}

// GetCandidates returns up to maxResults mutually-eligible candidates for the
// acting user, scored and sorted: same-city first, then by score descending.
//
// Degraded reads (candidate queries, swipe history) are logged and treated as
// empty sources; only a failure to load the acting user's own profile is
// reported upward.
func (uc *FeedUseCase) GetCandidates(ctx context.Context, uid string, maxResults int) ([]*ScoredCandidate, error) {
	me, err := uc.profileRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user profile: %w", err)
	}

	effIntents := effectiveIntents(me)
	effPrefs := effectiveGenderPrefs(me)

	pool := uc.assemblePool(ctx, me, effPrefs)
	decided := uc.outboundDecisions(ctx, uid)

	results := make([]*ScoredCandidate, 0, len(pool))
	for _, c := range pool {
		if c.UID == uid {
			continue
		}
		if decided[c.UID] {
			continue
		}
		// The store-side gender predicate ensured the candidate is acceptable
		// to the viewer; this enforces the converse. An empty preference set
		// means open to anyone.
		if len(c.GenderPreferences) > 0 && !c.GenderPreferences.Contains(me.Gender) {
			continue
		}
		if !c.RelationshipIntent.Overlaps(effIntents) {
			continue
		}
		results = append(results, &ScoredCandidate{
			Profile:  c,
			Score:    Score(me, c),
			SameCity: sameCity(me, c),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].SameCity != results[j].SameCity {
			return results[i].SameCity
		}
		return results[i].Score > results[j].Score
	})

	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// assemblePool runs the city-scoped pass first, supplements with a global
// pass when the city yields too few rows, and de-duplicates by uid preferring
// the city copy.
func (uc *FeedUseCase) assemblePool(ctx context.Context, me *domain.Profile, genders []domain.Gender) []*domain.Profile {
	var pool []*domain.Profile
	seen := make(map[string]bool)

	if me.City != nil && *me.City != "" {
		cityProfiles, err := uc.profileRepo.SearchProfiles(ctx, map[string]interface{}{
			"genders":  genders,
			"city":     *me.City,
			"complete": true,
		}, cityQueryLimit, 0)
		if err != nil {
			log.Warn().Err(err).Str("uid", me.UID).Msg("city candidate query failed, continuing without")
		}
		for _, p := range cityProfiles {
			if !seen[p.UID] {
				seen[p.UID] = true
				pool = append(pool, p)
			}
		}
	}

	if len(pool) < cityPoolTarget {
		global, err := uc.profileRepo.SearchProfiles(ctx, map[string]interface{}{
			"genders":  genders,
			"complete": true,
		}, globalQueryLimit, 0)
		if err != nil {
			log.Warn().Err(err).Str("uid", me.UID).Msg("global candidate query failed, continuing without")
		}
		for _, p := range global {
			if !seen[p.UID] {
				seen[p.UID] = true
				pool = append(pool, p)
			}
		}
	}

	return pool
}

// outboundDecisions returns the set of users the actor has already decided
// on. A read failure degrades to an empty set rather than blocking the feed.
func (uc *FeedUseCase) outboundDecisions(ctx context.Context, uid string) map[string]bool {
	decided := make(map[string]bool)
	swipes, err := uc.swipeRepo.ListByActor(ctx, uid)
	if err != nil {
		log.Warn().Err(err).Str("uid", uid).Msg("swipe history query failed, continuing without exclusions")
		return decided
	}
	for _, s := range swipes {
		decided[s.ToUID] = true
	}
	return decided
}

// effectiveIntents substitutes the full enumeration when the acting user has
// no intent set. Fail-open legacy behavior, kept for parity.
func effectiveIntents(p *domain.Profile) []domain.Intent {
	if len(p.RelationshipIntent) > 0 {
		return p.RelationshipIntent
	}
	return domain.AllIntents()
}

// effectiveGenderPrefs substitutes an opposite-binary guess when the acting
// user has no preference set. Legacy fallback, kept for parity.
func effectiveGenderPrefs(p *domain.Profile) []domain.Gender {
	if len(p.GenderPreferences) > 0 {
		return p.GenderPreferences
	}
	if p.Gender == domain.GenderMale {
		return []domain.Gender{domain.GenderFemale}
	}
	return []domain.Gender{domain.GenderMale}
}

func sameCity(a, b *domain.Profile) bool {
	return a.City != nil && b.City != nil && *a.City != "" && *a.City == *b.City
}
