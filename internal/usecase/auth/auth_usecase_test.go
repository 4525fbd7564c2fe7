package auth

import (
	"context"
	"testing"
	"time"

	"github.com/reelmate/reelmate-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]*domain.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if _, exists := f.users[u.Email]; exists {
		return domain.ErrEmailTaken
	}
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	for _, u := range f.users {
		if u.UID == uid {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

type fakeProfileRepo struct {
	created []*domain.Profile
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	f.created = append(f.created, p)
	return nil
}

func (f *fakeProfileRepo) GetByUID(ctx context.Context, uid string) (*domain.Profile, error) {
	return nil, domain.ErrProfileNotFound
}

func (f *fakeProfileRepo) Update(ctx context.Context, p *domain.Profile) error { return nil }

func (f *fakeProfileRepo) SearchProfiles(ctx context.Context, filters map[string]interface{}, limit, offset int) ([]*domain.Profile, error) {
	return nil, nil
}

const testSecret = "test-secret-test-secret-test-secret"

func newTestUseCase() (*AuthUseCase, *fakeUserRepo, *fakeProfileRepo) {
	users := newFakeUserRepo()
	profiles := &fakeProfileRepo{}
	return NewAuthUseCase(users, profiles, testSecret, time.Hour), users, profiles
}

func registerReq() *RegisterRequest {
	return &RegisterRequest{
		Email:       "nora@example.com",
		Password:    "hunter2hunter2",
		DisplayName: "Nora",
		Gender:      domain.GenderFemale,
	}
}

func TestRegister(t *testing.T) {
	uc, _, profiles := newTestUseCase()

	resp, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.IsNewUser)
	require.NotNil(t, resp.User)
	assert.NotEmpty(t, resp.User.UID)
	assert.NotEqual(t, "hunter2hunter2", resp.User.PasswordHash)

	// A profile shell is created alongside the account.
	require.Len(t, profiles.created, 1)
	shell := profiles.created[0]
	assert.Equal(t, resp.User.UID, shell.UID)
	assert.Equal(t, "Nora", shell.DisplayName)
	assert.False(t, shell.HasProfile)
	assert.False(t, shell.HasPreferences)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, err = uc.Register(ctx, registerReq())
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	registered, err := uc.Register(ctx, registerReq())
	require.NoError(t, err)

	resp, err := uc.Login(ctx, &LoginRequest{Email: "nora@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.UID, resp.User.UID)
	assert.False(t, resp.IsNewUser)

	_, err = uc.Login(ctx, &LoginRequest{Email: "nora@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, &LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestParseToken(t *testing.T) {
	uc, _, _ := newTestUseCase()

	resp, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	uid, err := uc.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.UID, uid)

	_, err = uc.ParseToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Token signed with another secret is rejected.
	other := NewAuthUseCase(newFakeUserRepo(), &fakeProfileRepo{}, "another-secret-another-secret-ok", time.Hour)
	_, err = other.ParseToken(resp.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestParseTokenExpired(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), &fakeProfileRepo{}, testSecret, -time.Minute)

	resp, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = uc.ParseToken(resp.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
