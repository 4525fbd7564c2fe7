package swipe

import (
	"context"
	"errors"

	"github.com/reelmate/reelmate-backend/internal/domain"
	"github.com/reelmate/reelmate-backend/internal/infrastructure/wingman"
	"github.com/reelmate/reelmate-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

type SwipeUseCase struct {
	swipeRepo   repository.SwipeRepository
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	wingman     *wingman.Client
}

func NewSwipeUseCase(
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	wingmanClient *wingman.Client,
) *SwipeUseCase {
	return &SwipeUseCase{
		swipeRepo:   swipeRepo,
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		wingman:     wingmanClient,
	}
}

// SwipeRequest represents a swipe action.
type SwipeRequest struct {
	TargetUID string             `json:"target_uid" binding:"required"`
	Action    domain.SwipeAction `json:"action" binding:"required,swipeaction"`
}

// SwipeResponse represents the swipe result. Recorded is false when the
// decision write failed; the swipe gesture itself never errors out.
type SwipeResponse struct {
	Recorded bool          `json:"recorded"`
	IsMatch  bool          `json:"is_match"`
	ChatID   string        `json:"chat_id,omitempty"`
	Match    *domain.Match `json:"match,omitempty"`
}

// RecordSwipe persists a like/pass decision and, for likes, runs match
// detection. Re-invoking with the same pair and action is a no-op in effect.
func (uc *SwipeUseCase) RecordSwipe(ctx context.Context, actorUID string, req *SwipeRequest) (*SwipeResponse, error) {
	if actorUID == req.TargetUID {
		return nil, domain.ErrCannotSwipeSelf
	}
	if !req.Action.Valid() {
		return nil, domain.ErrInvalidInput
	}

	swipe := &domain.Swipe{
		FromUID: actorUID,
		ToUID:   req.TargetUID,
		Action:  req.Action,
	}
	if err := uc.swipeRepo.Upsert(ctx, swipe); err != nil {
		// Recording is fire-and-forget from the UI's perspective: log and
		// report the decision as unconfirmed, never fail the gesture.
		log.Error().Err(err).
			Str("from", actorUID).Str("to", req.TargetUID).
			Msg("failed to record swipe decision")
		return &SwipeResponse{Recorded: false}, nil
	}

	resp := &SwipeResponse{Recorded: true}
	if req.Action == domain.SwipeLike {
		if match, ok := uc.detectMatch(ctx, actorUID, req.TargetUID); ok {
			resp.IsMatch = true
			resp.ChatID = match.ChatID
			resp.Match = match
		}
	}
	return resp, nil
}

// detectMatch checks the reverse-direction decision and creates the match
// record under the canonical sorted-pair key when both likes are present.
// Both sides of a concurrent second-like race report true: the loser of the
// create race finds the record already present, which is still a match.
func (uc *SwipeUseCase) detectMatch(ctx context.Context, actorUID, targetUID string) (*domain.Match, bool) {
	reverse, err := uc.swipeRepo.GetByUsers(ctx, targetUID, actorUID)
	if err != nil {
		if !errors.Is(err, domain.ErrSwipeNotFound) {
			log.Warn().Err(err).
				Str("from", targetUID).Str("to", actorUID).
				Msg("reverse decision lookup failed")
		}
		return nil, false
	}
	if reverse.Action != domain.SwipeLike {
		return nil, false
	}

	pairKey := domain.PairKey(actorUID, targetUID)
	existing, err := uc.matchRepo.GetByPairKey(ctx, pairKey)
	if err == nil {
		return existing, true
	}
	if !errors.Is(err, domain.ErrMatchNotFound) {
		log.Warn().Err(err).Str("pair", pairKey).Msg("match lookup failed")
		return nil, false
	}

	match := domain.NewMatch(actorUID, targetUID)
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		log.Error().Err(err).Str("pair", pairKey).Msg("failed to create match record")
		return nil, false
	}

	if uc.wingman != nil {
		go uc.enrichMatch(match)
	}
	return match, true
}

// enrichMatch asks the wingman for opening lines based on both users' taste
// and stores them on the match. Best effort; failures are logged only.
func (uc *SwipeUseCase) enrichMatch(match *domain.Match) {
	ctx := context.Background()

	p1, err := uc.profileRepo.GetByUID(ctx, match.User1UID)
	if err != nil {
		log.Debug().Err(err).Str("uid", match.User1UID).Msg("skipping icebreakers, profile unavailable")
		return
	}
	p2, err := uc.profileRepo.GetByUID(ctx, match.User2UID)
	if err != nil {
		log.Debug().Err(err).Str("uid", match.User2UID).Msg("skipping icebreakers, profile unavailable")
		return
	}

	openers, err := uc.wingman.GenerateIcebreakers(ctx, favoriteTitles(p1), favoriteTitles(p2))
	if err != nil {
		log.Debug().Err(err).Str("pair", match.PairKey).Msg("icebreaker generation failed")
		return
	}
	if err := uc.matchRepo.UpdateIcebreakers(ctx, match.PairKey, openers); err != nil {
		log.Warn().Err(err).Str("pair", match.PairKey).Msg("failed to store icebreakers")
	}
}

func favoriteTitles(p *domain.Profile) []string {
	titles := make([]string, 0, len(p.Favorites))
	for _, m := range p.Favorites {
		titles = append(titles, m.Title)
	}
	return titles
}
