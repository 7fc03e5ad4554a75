package repository

import (
	"context"

	"github.com/citymarket/citymarket/internal/domain/entity"
)

// AccountRepository defines identity persistence. CreateWithProfile must
// insert the account and its profile as one atomic unit: a profile never
// exists without its account and vice versa.
type AccountRepository interface {
	CreateWithProfile(ctx context.Context, a *entity.Account, isMerchant bool) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByUsername(ctx context.Context, username string) (*entity.Account, error)
}

// ProfileRepository reads the role record bound to an account.
type ProfileRepository interface {
	GetByAccount(ctx context.Context, accountID string) (*entity.Profile, error)
}
