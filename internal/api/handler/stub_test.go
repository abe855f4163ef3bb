package handler

import (
	"context"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/storefront/internal/core/domain"
	"github.com/ratehub/storefront/internal/core/ports"
	"github.com/ratehub/storefront/internal/gateway"
	"github.com/ratehub/storefront/internal/view"
)

// backendError builds the error shape the real gateway returns for a
// rejected backend call.
func backendError(status int, msg string) *gateway.Error {
	return &gateway.Error{Status: status, Message: msg}
}

// stubGateway implements ports.Gateway through optional func fields. A
// call to an unset method panics, which surfaces as a test failure and
// doubles as a "this flow must not touch the network" assertion.
type stubGateway struct {
	verifyFn      func(ctx context.Context, token string) (int64, error)
	signupFn      func(ctx context.Context, in ports.SignupInput) (string, int64, error)
	loginFn       func(ctx context.Context, email, password string) (string, int64, error)
	userByIDFn    func(ctx context.Context, token string, id int64) (*domain.User, error)
	statsFn       func(ctx context.Context, token string) (domain.Stats, error)
	adminStoresFn func(ctx context.Context, token string) ([]domain.Store, error)
	adminUsersFn  func(ctx context.Context, token, name, email string) ([]domain.User, error)
	addUserFn     func(ctx context.Context, token string, in ports.AddUserInput) (*domain.User, error)
	addStoreFn    func(ctx context.Context, token string, in ports.AddStoreInput) (*domain.Store, error)
	ownerStoreFn  func(ctx context.Context, token string) (*domain.Store, error)
	ratingsFn     func(ctx context.Context, token string, storeID int64) ([]domain.Rating, error)
	storesFn      func(ctx context.Context, token string) ([]domain.Store, error)
	rateFn        func(ctx context.Context, token string, storeID int64, rating int) error
	passwordFn    func(ctx context.Context, token, oldPassword, newPassword string) error
}

var _ ports.Gateway = (*stubGateway)(nil)

func (s *stubGateway) VerifyToken(ctx context.Context, token string) (int64, error) {
	return s.verifyFn(ctx, token)
}

func (s *stubGateway) Signup(ctx context.Context, in ports.SignupInput) (string, int64, error) {
	return s.signupFn(ctx, in)
}

func (s *stubGateway) Login(ctx context.Context, email, password string) (string, int64, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubGateway) GetUserByID(ctx context.Context, token string, id int64) (*domain.User, error) {
	return s.userByIDFn(ctx, token, id)
}

func (s *stubGateway) AdminStats(ctx context.Context, token string) (domain.Stats, error) {
	return s.statsFn(ctx, token)
}

func (s *stubGateway) AdminStores(ctx context.Context, token string) ([]domain.Store, error) {
	return s.adminStoresFn(ctx, token)
}

func (s *stubGateway) AdminUsers(ctx context.Context, token, name, email string) ([]domain.User, error) {
	return s.adminUsersFn(ctx, token, name, email)
}

func (s *stubGateway) AdminAddUser(ctx context.Context, token string, in ports.AddUserInput) (*domain.User, error) {
	return s.addUserFn(ctx, token, in)
}

func (s *stubGateway) AdminAddStore(ctx context.Context, token string, in ports.AddStoreInput) (*domain.Store, error) {
	return s.addStoreFn(ctx, token, in)
}

func (s *stubGateway) OwnerStore(ctx context.Context, token string) (*domain.Store, error) {
	return s.ownerStoreFn(ctx, token)
}

func (s *stubGateway) StoreRatings(ctx context.Context, token string, storeID int64) ([]domain.Rating, error) {
	return s.ratingsFn(ctx, token, storeID)
}

func (s *stubGateway) Stores(ctx context.Context, token string) ([]domain.Store, error) {
	return s.storesFn(ctx, token)
}

func (s *stubGateway) SubmitRating(ctx context.Context, token string, storeID int64, rating int) error {
	return s.rateFn(ctx, token, storeID, rating)
}

func (s *stubGateway) UpdatePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	return s.passwordFn(ctx, token, oldPassword, newPassword)
}

// newRenderingEcho builds an echo instance with the real template
// renderer so handler tests exercise the actual pages.
func newRenderingEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	renderer, err := view.New()
	if err != nil {
		t.Fatalf("build renderer: %v", err)
	}
	e.Renderer = renderer
	return e
}

