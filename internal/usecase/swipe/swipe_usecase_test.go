package swipe

import (
	"context"
	"errors"
	"testing"

	"github.com/reelmate/reelmate-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSwipeRepo struct {
	swipes    map[string]*domain.Swipe
	upsertErr error
}

func newFakeSwipeRepo() *fakeSwipeRepo {
	return &fakeSwipeRepo{swipes: make(map[string]*domain.Swipe)}
}

func (f *fakeSwipeRepo) Upsert(ctx context.Context, s *domain.Swipe) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.swipes[s.FromUID+">"+s.ToUID] = s
	return nil
}

func (f *fakeSwipeRepo) GetByUsers(ctx context.Context, fromUID, toUID string) (*domain.Swipe, error) {
	s, ok := f.swipes[fromUID+">"+toUID]
	if !ok {
		return nil, domain.ErrSwipeNotFound
	}
	return s, nil
}

func (f *fakeSwipeRepo) ListByActor(ctx context.Context, fromUID string) ([]*domain.Swipe, error) {
	var out []*domain.Swipe
	for _, s := range f.swipes {
		if s.FromUID == fromUID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeMatchRepo struct {
	matches   map[string]*domain.Match
	createErr error
	creates   int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[string]*domain.Match)}
}

func (f *fakeMatchRepo) Create(ctx context.Context, m *domain.Match) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.creates++
	if _, exists := f.matches[m.PairKey]; exists {
		return nil
	}
	f.matches[m.PairKey] = m
	return nil
}

func (f *fakeMatchRepo) GetByPairKey(ctx context.Context, pairKey string) (*domain.Match, error) {
	m, ok := f.matches[pairKey]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	return m, nil
}

func (f *fakeMatchRepo) GetUserMatches(ctx context.Context, uid string, limit, offset int) ([]*domain.Match, error) {
	var out []*domain.Match
	for _, m := range f.matches {
		if m.HasUser(uid) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) UpdateIcebreakers(ctx context.Context, pairKey string, icebreakers []string) error {
	if m, ok := f.matches[pairKey]; ok {
		m.Icebreakers = icebreakers
	}
	return nil
}

type fakeProfileRepo struct{}

func (fakeProfileRepo) Create(ctx context.Context, p *domain.Profile) error { return nil }
func (fakeProfileRepo) GetByUID(ctx context.Context, uid string) (*domain.Profile, error) {
	return &domain.Profile{UID: uid}, nil
}
func (fakeProfileRepo) Update(ctx context.Context, p *domain.Profile) error { return nil }
func (fakeProfileRepo) SearchProfiles(ctx context.Context, filters map[string]interface{}, limit, offset int) ([]*domain.Profile, error) {
	return nil, nil
}

func newTestUseCase() (*SwipeUseCase, *fakeSwipeRepo, *fakeMatchRepo) {
	swipes := newFakeSwipeRepo()
	matches := newFakeMatchRepo()
	return NewSwipeUseCase(swipes, matches, fakeProfileRepo{}, nil), swipes, matches
}

func TestRecordSwipeLikeNoReverse(t *testing.T) {
	uc, swipes, _ := newTestUseCase()

	resp, err := uc.RecordSwipe(context.Background(), "alice", &SwipeRequest{
		TargetUID: "bob",
		Action:    domain.SwipeLike,
	})
	require.NoError(t, err)

	assert.True(t, resp.Recorded)
	assert.False(t, resp.IsMatch)
	assert.Empty(t, resp.ChatID)

	stored, err := swipes.GetByUsers(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.SwipeLike, stored.Action)
}

func TestRecordSwipeMutualLike(t *testing.T) {
	uc, _, matches := newTestUseCase()
	ctx := context.Background()

	first, err := uc.RecordSwipe(ctx, "bob", &SwipeRequest{TargetUID: "alice", Action: domain.SwipeLike})
	require.NoError(t, err)
	assert.False(t, first.IsMatch)

	second, err := uc.RecordSwipe(ctx, "alice", &SwipeRequest{TargetUID: "bob", Action: domain.SwipeLike})
	require.NoError(t, err)
	assert.True(t, second.IsMatch)
	assert.Equal(t, "chat_alice_bob", second.ChatID)
	require.NotNil(t, second.Match)
	assert.Equal(t, "alice_bob", second.Match.PairKey)

	assert.Len(t, matches.matches, 1)
}

func TestRecordSwipeDuplicateLikeStillReportsMatch(t *testing.T) {
	uc, _, matches := newTestUseCase()
	ctx := context.Background()

	_, err := uc.RecordSwipe(ctx, "bob", &SwipeRequest{TargetUID: "alice", Action: domain.SwipeLike})
	require.NoError(t, err)
	_, err = uc.RecordSwipe(ctx, "alice", &SwipeRequest{TargetUID: "bob", Action: domain.SwipeLike})
	require.NoError(t, err)

	// A repeated tap after the match formed reports the same match again
	// without creating a second record.
	again, err := uc.RecordSwipe(ctx, "alice", &SwipeRequest{TargetUID: "bob", Action: domain.SwipeLike})
	require.NoError(t, err)
	assert.True(t, again.IsMatch)
	assert.Equal(t, "chat_alice_bob", again.ChatID)
	assert.Len(t, matches.matches, 1)
	assert.Equal(t, 1, matches.creates)
}

func TestRecordSwipePassNeverMatches(t *testing.T) {
	uc, _, matches := newTestUseCase()
	ctx := context.Background()

	_, err := uc.RecordSwipe(ctx, "bob", &SwipeRequest{TargetUID: "alice", Action: domain.SwipeLike})
	require.NoError(t, err)

	resp, err := uc.RecordSwipe(ctx, "alice", &SwipeRequest{TargetUID: "bob", Action: domain.SwipePass})
	require.NoError(t, err)
	assert.True(t, resp.Recorded)
	assert.False(t, resp.IsMatch)
	assert.Empty(t, matches.matches)
}

func TestRecordSwipeReverseIsPass(t *testing.T) {
	uc, _, matches := newTestUseCase()
	ctx := context.Background()

	_, err := uc.RecordSwipe(ctx, "bob", &SwipeRequest{TargetUID: "alice", Action: domain.SwipePass})
	require.NoError(t, err)

	resp, err := uc.RecordSwipe(ctx, "alice", &SwipeRequest{TargetUID: "bob", Action: domain.SwipeLike})
	require.NoError(t, err)
	assert.False(t, resp.IsMatch)
	assert.Empty(t, matches.matches)
}

func TestRecordSwipeSelf(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.RecordSwipe(context.Background(), "alice", &SwipeRequest{
		TargetUID: "alice",
		Action:    domain.SwipeLike,
	})
	assert.ErrorIs(t, err, domain.ErrCannotSwipeSelf)
}

func TestRecordSwipeInvalidAction(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.RecordSwipe(context.Background(), "alice", &SwipeRequest{
		TargetUID: "bob",
		Action:    domain.SwipeAction("superlike"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordSwipeWriteFailureDoesNotError(t *testing.T) {
	uc, swipes, _ := newTestUseCase()
	swipes.upsertErr = errors.New("store down")

	resp, err := uc.RecordSwipe(context.Background(), "alice", &SwipeRequest{
		TargetUID: "bob",
		Action:    domain.SwipeLike,
	})

	// The gesture itself never fails; the decision is just reported as
	// unconfirmed.
	require.NoError(t, err)
	assert.False(t, resp.Recorded)
	assert.False(t, resp.IsMatch)
}

func TestRecordSwipeOverwritesPriorDecision(t *testing.T) {
	uc, swipes, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.RecordSwipe(ctx, "alice", &SwipeRequest{TargetUID: "bob", Action: domain.SwipePass})
	require.NoError(t, err)
	_, err = uc.RecordSwipe(ctx, "alice", &SwipeRequest{TargetUID: "bob", Action: domain.SwipeLike})
	require.NoError(t, err)

	stored, err := swipes.GetByUsers(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.SwipeLike, stored.Action)
}
