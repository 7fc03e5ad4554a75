package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/citymarket/citymarket/internal/domain/entity"
	repo "github.com/citymarket/citymarket/internal/domain/repository"
	"github.com/citymarket/citymarket/pkg/helpers"
	"github.com/citymarket/citymarket/pkg/mailer"
)

const sessionTTL = 24 * time.Hour

// AuthService owns registration, credential checks and session lifecycle.
type AuthService struct {
	Accounts    repo.AccountRepository
	Profiles    repo.ProfileRepository
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	Logger      *logrus.Logger
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
}

func NewAuthService(accounts repo.AccountRepository, profiles repo.ProfileRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailEnabled bool) *AuthService {
	return &AuthService{
		Accounts:    accounts,
		Profiles:    profiles,
		JWT:         jwt,
		Redis:       rdb,
		Logger:      logger,
		Pub:         pub,
		MailEnabled: mailEnabled,
	}
}

type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	IsMerchant bool
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Register creates the account and its profile as one unit. The profile
// role is fixed here; no edit path exists afterwards.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.Account, *entity.Profile, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, nil, ErrMissingFields
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}
	a := &entity.Account{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
	}
	if err := s.Accounts.CreateWithProfile(ctx, a, in.IsMerchant); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			return nil, nil, ErrUsernameTaken
		}
		return nil, nil, err
	}

	// Welcome mail is best effort; registration never fails on queue trouble.
	if s.MailEnabled && s.Pub != nil {
		job := mailer.WelcomeJob(a.Email, a.Username, in.IsMerchant)
		if pErr := s.Pub.PublishJSON(ctx, job); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("username", a.Username).Warn("welcome mail enqueue failed")
		}
	}

	p := &entity.Profile{AccountID: a.ID, IsMerchant: in.IsMerchant, CreatedAt: a.CreatedAt}
	return a, p, nil
}

// Authenticate validates username/password and returns the account without issuing tokens.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*entity.Account, error) {
	a, err := s.Accounts.GetByUsername(ctx, username)
	if err != nil || a == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(a.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

// ProfileOf loads the role record for an authenticated account. A missing
// profile is a recoverable condition, not a fault.
func (s *AuthService) ProfileOf(ctx context.Context, accountID string) (*entity.Profile, error) {
	p, err := s.Profiles.GetByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProfileMissing
		}
		return nil, err
	}
	return p, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *AuthService) IssueTokens(ctx context.Context, a *entity.Account) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(a.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(a.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := helpers.SessionKey(a.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"account_id": a.ID,
			"username":   a.Username,
			"email":      a.Email,
			"sid":        sid,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the token pair and the session id recorded in Redis.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	a, err := s.Accounts.GetByID(ctx, claims.AccountID)
	if err != nil || a == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if s.Redis != nil {
		key := helpers.SessionKey(a.ID)
		data, rErr := s.Redis.HGetAll(ctx, key).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, a)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, a.ID, nil
}

// EndSession drops the server-side session. Safe to call for an actor
// that is already logged out.
func (s *AuthService) EndSession(ctx context.Context, accountID string) {
	if s.Redis == nil || accountID == "" {
		return
	}
	if err := s.Redis.Del(ctx, helpers.SessionKey(accountID)).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("account_id", accountID).Warn("session delete failed")
	}
}
