package match

import (
	"context"
	"fmt"
	"time"

	"github.com/reelmate/reelmate-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

type MatchUseCase struct {
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
}

func NewMatchUseCase(
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
) *MatchUseCase {
	return &MatchUseCase{
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
	}
}

// MatchSummary is a match enriched with the other user's profile card.
type MatchSummary struct {
	PairKey     string       `json:"pair_key"`
	ChatID      string       `json:"chat_id"`
	Icebreakers []string     `json:"icebreakers,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	Other       *ProfileCard `json:"other"`
}

// ProfileCard is the subset of a profile shown in a match list.
type ProfileCard struct {
	UID         string  `json:"uid"`
	DisplayName string  `json:"display_name"`
	City        *string `json:"city,omitempty"`
}

// GetUserMatches lists the user's matches, newest first, each enriched with
// the other side's profile card. A match whose counterpart profile cannot be
// loaded is skipped rather than failing the whole listing.
func (uc *MatchUseCase) GetUserMatches(ctx context.Context, uid string, limit, offset int) ([]*MatchSummary, error) {
	matches, err := uc.matchRepo.GetUserMatches(ctx, uid, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	summaries := make([]*MatchSummary, 0, len(matches))
	for _, m := range matches {
		otherUID, ok := m.OtherUser(uid)
		if !ok {
			continue
		}
		profile, err := uc.profileRepo.GetByUID(ctx, otherUID)
		if err != nil {
			log.Warn().Err(err).Str("uid", otherUID).Msg("skipping match, counterpart profile unavailable")
			continue
		}
		summaries = append(summaries, &MatchSummary{
			PairKey:     m.PairKey,
			ChatID:      m.ChatID,
			Icebreakers: m.Icebreakers,
			CreatedAt:   m.CreatedAt,
			Other: &ProfileCard{
				UID:         profile.UID,
				DisplayName: profile.DisplayName,
				City:        profile.City,
			},
		})
	}
	return summaries, nil
}
