// Package ports defines the contracts between the page handlers and the
// infrastructure behind them.
package ports

import (
	"context"

	"github.com/ratehub/storefront/internal/core/domain"
)

// SignupInput is the registration payload.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

// AddUserInput is the admin user-creation payload.
type AddUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

// AddStoreInput is the admin store-creation payload.
type AddStoreInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	OwnerID int64  `json:"ownerId"`
}

// Gateway is the typed surface of the backend API. One method per
// endpoint; implementations normalise the wire shapes into domain values.
type Gateway interface {
	VerifyToken(ctx context.Context, token string) (int64, error)
	Signup(ctx context.Context, in SignupInput) (token string, id int64, err error)
	Login(ctx context.Context, email, password string) (token string, id int64, err error)
	GetUserByID(ctx context.Context, token string, id int64) (*domain.User, error)

	AdminStats(ctx context.Context, token string) (domain.Stats, error)
	AdminStores(ctx context.Context, token string) ([]domain.Store, error)
	AdminUsers(ctx context.Context, token, name, email string) ([]domain.User, error)
	AdminAddUser(ctx context.Context, token string, in AddUserInput) (*domain.User, error)
	AdminAddStore(ctx context.Context, token string, in AddStoreInput) (*domain.Store, error)

	OwnerStore(ctx context.Context, token string) (*domain.Store, error)
	StoreRatings(ctx context.Context, token string, storeID int64) ([]domain.Rating, error)

	Stores(ctx context.Context, token string) ([]domain.Store, error)
	SubmitRating(ctx context.Context, token string, storeID int64, rating int) error
	UpdatePassword(ctx context.Context, token, oldPassword, newPassword string) error
}
