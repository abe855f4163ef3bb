package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ratehub/storefront/internal/core/domain"
	"github.com/ratehub/storefront/internal/core/ports"
)

// The backend is inconsistent about response envelopes ({user} wrapper vs
// bare object, "Users" capitalised vs "stores" lowercase). Each typed
// method below owns the schema of exactly one endpoint and hands callers
// normalised domain values.

type tokenResponse struct {
	Token string `json:"token"`
}

// VerifyToken validates a persisted token and returns the user id it
// belongs to.
func (c *Client) VerifyToken(ctx context.Context, token string) (int64, error) {
	raw, err := c.do(ctx, "auth_verify", http.MethodGet, "/auth/verify", token, nil)
	if err != nil {
		return 0, err
	}
	var resp struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return 0, fmt.Errorf("gateway: decode verify response: %w", err)
	}
	return resp.User.ID, nil
}

// Signup registers a new account. The backend returns only a token; the
// user id is recovered from the token's id claim, so no extra profile
// call is needed here.
func (c *Client) Signup(ctx context.Context, in ports.SignupInput) (token string, id int64, err error) {
	raw, err := c.do(ctx, "auth_signup", http.MethodPost, "/auth/signup", "", in)
	if err != nil {
		return "", 0, err
	}
	return tokenAndID(raw)
}

// Login exchanges credentials for a token, id recovered the same way as
// for Signup.
func (c *Client) Login(ctx context.Context, email, password string) (token string, id int64, err error) {
	body := map[string]string{"email": email, "password": password}
	raw, err := c.do(ctx, "auth_login", http.MethodPost, "/auth/login", "", body)
	if err != nil {
		return "", 0, err
	}
	return tokenAndID(raw)
}

func tokenAndID(raw json.RawMessage) (string, int64, error) {
	var resp tokenResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", 0, fmt.Errorf("gateway: decode token response: %w", err)
	}
	id, err := UserIDFromToken(resp.Token)
	if err != nil {
		return "", 0, err
	}
	return resp.Token, id, nil
}

// GetUserByID fetches one user profile. The backend serves this route
// both wrapped ({"user": {...}}) and bare depending on the caller; both
// shapes are accepted.
func (c *Client) GetUserByID(ctx context.Context, token string, id int64) (*domain.User, error) {
	raw, err := c.do(ctx, "user_by_id", http.MethodGet, fmt.Sprintf("/user/getUserByID/%d", id), token, nil)
	if err != nil {
		return nil, err
	}
	var wrapped struct {
		User *domain.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.User != nil {
		return wrapped.User, nil
	}
	var bare domain.User
	if err := json.Unmarshal(raw, &bare); err != nil || bare.ID == 0 {
		return nil, fmt.Errorf("gateway: unrecognised user response shape")
	}
	return &bare, nil
}

// AdminStats returns the dashboard counters.
func (c *Client) AdminStats(ctx context.Context, token string) (domain.Stats, error) {
	raw, err := c.do(ctx, "admin_dashboard", http.MethodGet, "/admin/dashboard", token, nil)
	if err != nil {
		return domain.Stats{}, err
	}
	var stats domain.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return domain.Stats{}, fmt.Errorf("gateway: decode stats: %w", err)
	}
	return stats, nil
}

// AdminStores lists every store for the admin dashboard.
func (c *Client) AdminStores(ctx context.Context, token string) ([]domain.Store, error) {
	raw, err := c.do(ctx, "admin_stores", http.MethodGet, "/admin/getStores", token, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Stores []domain.Store `json:"stores"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("gateway: decode stores: %w", err)
	}
	return resp.Stores, nil
}

// AdminUsers lists users, optionally filtered server-side by name or
// email (used by the owner search). The backend answers with a
// capitalised "Users" key; the lowercase variant is accepted too.
func (c *Client) AdminUsers(ctx context.Context, token, name, email string) ([]domain.User, error) {
	path := "/admin/getUsers"
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	if email != "" {
		q.Set("email", email)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	raw, err := c.do(ctx, "admin_users", http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		UsersCap []domain.User `json:"Users"`
		Users    []domain.User `json:"users"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("gateway: decode users: %w", err)
	}
	if resp.UsersCap != nil {
		return resp.UsersCap, nil
	}
	return resp.Users, nil
}

// AdminAddUser creates a user and returns the created record.
func (c *Client) AdminAddUser(ctx context.Context, token string, in ports.AddUserInput) (*domain.User, error) {
	raw, err := c.do(ctx, "admin_add_user", http.MethodPost, "/admin/addUser", token, in)
	if err != nil {
		return nil, err
	}
	var resp struct {
		User *domain.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || resp.User == nil {
		return nil, fmt.Errorf("gateway: decode created user")
	}
	return resp.User, nil
}

// AdminAddStore creates a store and returns the created record.
func (c *Client) AdminAddStore(ctx context.Context, token string, in ports.AddStoreInput) (*domain.Store, error) {
	raw, err := c.do(ctx, "admin_add_store", http.MethodPost, "/admin/addStore", token, in)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Store *domain.Store `json:"store"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Store == nil {
		return nil, fmt.Errorf("gateway: decode created store")
	}
	return resp.Store, nil
}

// OwnerStore returns the store owned by the calling store-owner identity.
func (c *Client) OwnerStore(ctx context.Context, token string) (*domain.Store, error) {
	raw, err := c.do(ctx, "owner_store", http.MethodGet, "/store/getStoreByOwnerId", token, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Store *domain.Store `json:"store"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Store == nil {
		return nil, fmt.Errorf("gateway: decode owner store")
	}
	return resp.Store, nil
}

// StoreRatings lists the ratings submitted for one store.
func (c *Client) StoreRatings(ctx context.Context, token string, storeID int64) ([]domain.Rating, error) {
	raw, err := c.do(ctx, "store_ratings", http.MethodGet, fmt.Sprintf("/store/getRatingsByStoreId/%d", storeID), token, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Ratings []domain.Rating `json:"ratings"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("gateway: decode ratings: %w", err)
	}
	return resp.Ratings, nil
}

// Stores lists all stores with their aggregate rating and the caller's
// own rating.
func (c *Client) Stores(ctx context.Context, token string) ([]domain.Store, error) {
	raw, err := c.do(ctx, "stores", http.MethodGet, "/store/getStores", token, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Stores []domain.Store `json:"stores"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("gateway: decode stores: %w", err)
	}
	return resp.Stores, nil
}

// SubmitRating upserts the caller's rating for a store.
func (c *Client) SubmitRating(ctx context.Context, token string, storeID int64, rating int) error {
	if rating < 1 || rating > 5 {
		return domain.ErrInvalidRating
	}
	body := map[string]int{"rating": rating}
	_, err := c.do(ctx, "submit_rating", http.MethodPost, fmt.Sprintf("/rating/%d", storeID), token, body)
	return err
}

// UpdatePassword changes the caller's password.
func (c *Client) UpdatePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	_, err := c.do(ctx, "password_update", http.MethodPost, "/password/update", token, body)
	return err
}
