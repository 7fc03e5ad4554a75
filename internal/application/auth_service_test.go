package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citymarket/citymarket/internal/domain/entity"
	repo "github.com/citymarket/citymarket/internal/domain/repository"
	"github.com/citymarket/citymarket/pkg/helpers"
)

type fakeAccountRepo struct {
	byUsername map[string]*entity.Account
	byID       map[string]*entity.Account
	profiles   map[string]*entity.Profile
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byUsername: map[string]*entity.Account{},
		byID:       map[string]*entity.Account{},
		profiles:   map[string]*entity.Profile{},
	}
}

func (f *fakeAccountRepo) CreateWithProfile(_ context.Context, a *entity.Account, isMerchant bool) error {
	if _, ok := f.byUsername[a.Username]; ok {
		return repo.ErrDuplicateKey
	}
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	f.byUsername[a.Username] = a
	f.byID[a.ID] = a
	f.profiles[a.ID] = &entity.Profile{AccountID: a.ID, IsMerchant: isMerchant, CreatedAt: a.CreatedAt}
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return a, nil
}

func (f *fakeAccountRepo) GetByUsername(_ context.Context, username string) (*entity.Account, error) {
	a, ok := f.byUsername[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return a, nil
}

func (f *fakeAccountRepo) GetByAccount(_ context.Context, accountID string) (*entity.Profile, error) {
	p, ok := f.profiles[accountID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return p, nil
}

func newAuthService(accounts *fakeAccountRepo) *AuthService {
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	logger := logrus.New()
	return NewAuthService(accounts, accounts, jwt, nil, logger, nil, false)
}

func TestRegisterCreatesAccountAndProfile(t *testing.T) {
	accounts := newFakeAccountRepo()
	svc := newAuthService(accounts)

	a, p, err := svc.Register(context.Background(), RegisterInput{
		Username:   "ada",
		Email:      "ada@example.com",
		Password:   "password123",
		IsMerchant: true,
	})
	require.NoError(t, err)
	require.NotNil(t, a)
	require.NotNil(t, p)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, a.ID, p.AccountID)
	assert.True(t, p.IsMerchant)
	assert.NotEqual(t, "password123", a.Password, "password must be stored hashed")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	accounts := newFakeAccountRepo()
	svc := newAuthService(accounts)

	_, _, err := svc.Register(context.Background(), RegisterInput{Username: "ada", Email: "a@b.c", Password: "password123"})
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), RegisterInput{Username: "ada", Email: "other@b.c", Password: "differentpw"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterMissingFields(t *testing.T) {
	svc := newAuthService(newFakeAccountRepo())

	_, _, err := svc.Register(context.Background(), RegisterInput{Username: "ada"})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestAuthenticate(t *testing.T) {
	accounts := newFakeAccountRepo()
	svc := newAuthService(accounts)

	_, _, err := svc.Register(context.Background(), RegisterInput{Username: "ada", Email: "a@b.c", Password: "password123"})
	require.NoError(t, err)

	a, err := svc.Authenticate(context.Background(), "ada", "password123")
	require.NoError(t, err)
	assert.Equal(t, "ada", a.Username)

	_, err = svc.Authenticate(context.Background(), "ada", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfileOfMissing(t *testing.T) {
	svc := newAuthService(newFakeAccountRepo())

	_, err := svc.ProfileOf(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrProfileMissing)
}

func TestRefreshRotatesPair(t *testing.T) {
	accounts := newFakeAccountRepo()
	svc := newAuthService(accounts)

	a, _, err := svc.Register(context.Background(), RegisterInput{Username: "ada", Email: "a@b.c", Password: "password123"})
	require.NoError(t, err)

	pair, err := svc.IssueTokens(context.Background(), a)
	require.NoError(t, err)
	require.NotEmpty(t, pair.RefreshToken)

	rotated, accountID, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, a.ID, accountID)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEmpty(t, rotated.RefreshToken)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc := newAuthService(newFakeAccountRepo())

	_, _, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
