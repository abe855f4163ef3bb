package handler

import (
	"strings"

	"github.com/ratehub/storefront/internal/core/domain"
)

// The list pages filter in-process over the already-fetched collection:
// the backend has no combined filter endpoint, and the admin tables and
// public directory both narrow as the user types into a plain GET form.

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// filterUsers narrows the admin user table by name, email, address or role.
func filterUsers(users []domain.User, q string) []domain.User {
	if q == "" {
		return users
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if containsFold(u.Name, q) || containsFold(u.Email, q) ||
			containsFold(u.Address, q) || containsFold(u.Role, q) {
			out = append(out, u)
		}
	}
	return out
}

// filterStoresAdmin narrows the admin store table by name, email or address.
func filterStoresAdmin(stores []domain.Store, q string) []domain.Store {
	if q == "" {
		return stores
	}
	out := make([]domain.Store, 0, len(stores))
	for _, s := range stores {
		if containsFold(s.Name, q) || containsFold(s.Email, q) || containsFold(s.Address, q) {
			out = append(out, s)
		}
	}
	return out
}

// filterStoresPublic narrows the public directory by name or address only;
// store contact emails are not searchable there.
func filterStoresPublic(stores []domain.Store, q string) []domain.Store {
	if q == "" {
		return stores
	}
	out := make([]domain.Store, 0, len(stores))
	for _, s := range stores {
		if containsFold(s.Name, q) || containsFold(s.Address, q) {
			out = append(out, s)
		}
	}
	return out
}
