package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	apimw "github.com/ratehub/storefront/internal/api/middleware"
	"github.com/ratehub/storefront/internal/core/domain"
	"github.com/ratehub/storefront/internal/core/ports"
	"github.com/ratehub/storefront/internal/core/search"
	"github.com/ratehub/storefront/internal/core/session"
)

func adminState() session.State {
	return session.State{
		Kind:     session.LoggedIn,
		Token:    "tok-admin",
		Identity: &domain.User{ID: 1, Name: "Administrator Maximilian Vandergriff", Role: domain.RoleAdmin},
	}
}

func newAdminFixture(gw *stubGateway) *AdminHandler {
	return NewAdminHandler(gw, search.NewRegistry(gw, time.Millisecond), zerolog.Nop())
}

func TestAdminDashboard_StatsTab(t *testing.T) {
	e := newRenderingEcho(t)
	gw := &stubGateway{
		statsFn: func(_ context.Context, token string) (domain.Stats, error) {
			if token != "tok-admin" {
				t.Fatalf("unexpected token %q", token)
			}
			return domain.Stats{Users: 12, Stores: 4, Ratings: 31}, nil
		},
	}
	h := newAdminFixture(gw)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	apimw.SetState(c, adminState())

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	body := rec.Body.String()
	for _, want := range []string{"Total Users", "12", "Total Stores", "4", "Total Ratings", "31"} {
		if !strings.Contains(body, want) {
			t.Fatalf("dashboard missing %q", want)
		}
	}
}

func TestAdminDashboard_UsersTabFilters(t *testing.T) {
	e := newRenderingEcho(t)
	gw := &stubGateway{
		adminUsersFn: func(_ context.Context, _, name, email string) ([]domain.User, error) {
			if name != "" || email != "" {
				t.Fatalf("users tab must fetch unfiltered, got name=%q email=%q", name, email)
			}
			return []domain.User{
				{ID: 1, Name: "Alina Petrova Konstantinova", Email: "alina@example.com", Role: domain.RoleNormalUser},
				{ID: 2, Name: "Omar Haddad Al-Rashidi", Email: "omar@example.com", Role: domain.RoleStoreOwner},
			}, nil
		},
	}
	h := newAdminFixture(gw)

	req := httptest.NewRequest(http.MethodGet, "/admin?tab=users&q=omar", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	apimw.SetState(c, adminState())

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "omar@example.com") {
		t.Fatalf("matching user missing")
	}
	if strings.Contains(body, "alina@example.com") {
		t.Fatalf("non-matching user rendered")
	}
}

func TestAdminCreateUser_InvalidDraftStaysLocal(t *testing.T) {
	e := newRenderingEcho(t)
	gw := &stubGateway{
		addUserFn: func(_ context.Context, _ string, _ ports.AddUserInput) (*domain.User, error) {
			t.Fatalf("invalid draft must not reach the backend")
			return nil, nil
		},
	}
	h := newAdminFixture(gw)

	req := formRequest("/admin/users", url.Values{
		"name":     {"Shorty"},
		"email":    {"bad"},
		"password": {"weak"},
		"role":     {"wizard"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	apimw.SetState(c, adminState())

	if err := h.CreateUser(c); err != nil {
		t.Fatalf("create user: %v", err)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Name must be between 20-60 characters",
		"Please enter a valid email address",
		"Please select a valid role",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing field error %q", want)
		}
	}
}

func TestAdminCreateUser_Success(t *testing.T) {
	e := newRenderingEcho(t)
	var got ports.AddUserInput
	gw := &stubGateway{
		addUserFn: func(_ context.Context, token string, in ports.AddUserInput) (*domain.User, error) {
			if token != "tok-admin" {
				t.Fatalf("unexpected token %q", token)
			}
			got = in
			return &domain.User{ID: 9}, nil
		},
	}
	h := newAdminFixture(gw)

	req := formRequest("/admin/users", url.Values{
		"name":     {"Jonathan Maximilian Vandergriff"},
		"email":    {"jon@example.com"},
		"password": {"Secret1!"},
		"role":     {"store_owner"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	apimw.SetState(c, adminState())

	if err := h.CreateUser(c); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin?tab=users" {
		t.Fatalf("expected redirect to users tab, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if got.Role != domain.RoleStoreOwner || got.Email != "jon@example.com" {
		t.Fatalf("draft not forwarded: %+v", got)
	}
}

func TestAdminOwnerSearch_RendersCandidates(t *testing.T) {
	e := newRenderingEcho(t)
	gw := &stubGateway{
		adminUsersFn: func(_ context.Context, _, name, email string) ([]domain.User, error) {
			if name != "val" || email != "" {
				t.Fatalf("expected name filter, got name=%q email=%q", name, email)
			}
			return []domain.User{
				{ID: 9, Name: "Valeria Esperanza Quintanilla", Email: "val@example.com", Role: domain.RoleStoreOwner},
				{ID: 3, Name: "Valentin Normal User Person", Email: "v2@example.com", Role: domain.RoleNormalUser},
				{ID: 4, Name: "Valerius Taken Owner Person", Email: "v3@example.com", Role: domain.RoleStoreOwner, Store: &domain.Store{ID: 1}},
			}, nil
		},
	}
	h := newAdminFixture(gw)

	req := httptest.NewRequest(http.MethodGet, "/admin/stores/new/owner-search?term=val", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	apimw.SetState(c, adminState())
	apimw.SetSID(c, "sid-1")

	if err := h.OwnerSearch(c); err != nil {
		t.Fatalf("owner search: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `data-id="9"`) {
		t.Fatalf("eligible candidate not selectable")
	}
	if !strings.Contains(body, "Not a store owner") {
		t.Fatalf("wrong-role reason missing")
	}
	if !strings.Contains(body, "Already owns a store") {
		t.Fatalf("taken-owner reason missing")
	}
	if strings.Contains(body, `data-id="3"`) || strings.Contains(body, `data-id="4"`) {
		t.Fatalf("ineligible candidates must not be selectable")
	}
}

func TestAdminOwnerSearch_EmailTerm(t *testing.T) {
	e := newRenderingEcho(t)
	gw := &stubGateway{
		adminUsersFn: func(_ context.Context, _, name, email string) ([]domain.User, error) {
			if email != "val@example.com" || name != "" {
				t.Fatalf("expected email filter, got name=%q email=%q", name, email)
			}
			return nil, nil
		},
	}
	h := newAdminFixture(gw)

	req := httptest.NewRequest(http.MethodGet, "/admin/stores/new/owner-search?term="+url.QueryEscape("val@example.com"), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	apimw.SetState(c, adminState())
	apimw.SetSID(c, "sid-1")

	if err := h.OwnerSearch(c); err != nil {
		t.Fatalf("owner search: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "No users found") {
		t.Fatalf("empty result fragment missing")
	}
}

func TestAdminCreateStore_ReVerifiesOwner(t *testing.T) {
	e := newRenderingEcho(t)
	gw := &stubGateway{
		userByIDFn: func(_ context.Context, _ string, id int64) (*domain.User, error) {
			// Selection is stale: this user acquired a store since the search.
			return &domain.User{ID: id, Role: domain.RoleStoreOwner, Store: &domain.Store{ID: 2}}, nil
		},
		addStoreFn: func(_ context.Context, _ string, _ ports.AddStoreInput) (*domain.Store, error) {
			t.Fatalf("stale owner must not be submitted")
			return nil, nil
		},
	}
	h := newAdminFixture(gw)

	req := formRequest("/admin/stores", url.Values{
		"name":       {"Corner Bakery"},
		"email":      {"shop@example.com"},
		"address":    {"5 Main St"},
		"ownerId":    {"9"},
		"searchTerm": {"Valeria (val@example.com)"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	apimw.SetState(c, adminState())
	apimw.SetSID(c, "sid-1")

	if err := h.CreateStore(c); err != nil {
		t.Fatalf("create store: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "already has a store assigned") {
		t.Fatalf("stale selection not refused")
	}
}

func TestAdminCreateStore_Success(t *testing.T) {
	e := newRenderingEcho(t)
	var got ports.AddStoreInput
	gw := &stubGateway{
		userByIDFn: func(_ context.Context, _ string, id int64) (*domain.User, error) {
			return &domain.User{ID: id, Name: "Valeria", Email: "val@example.com", Role: domain.RoleStoreOwner}, nil
		},
		addStoreFn: func(_ context.Context, _ string, in ports.AddStoreInput) (*domain.Store, error) {
			got = in
			return &domain.Store{ID: 11}, nil
		},
	}
	h := newAdminFixture(gw)

	req := formRequest("/admin/stores", url.Values{
		"name":       {"Corner Bakery"},
		"email":      {"shop@example.com"},
		"address":    {"5 Main St"},
		"ownerId":    {"9"},
		"searchTerm": {"Valeria (val@example.com)"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	apimw.SetState(c, adminState())
	apimw.SetSID(c, "sid-1")

	if err := h.CreateStore(c); err != nil {
		t.Fatalf("create store: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin?tab=stores" {
		t.Fatalf("expected redirect to stores tab, got %d", rec.Code)
	}
	if got.OwnerID != 9 || got.Name != "Corner Bakery" {
		t.Fatalf("form not forwarded: %+v", got)
	}
}

func TestAdminCreateStore_MissingOwner(t *testing.T) {
	e := newRenderingEcho(t)
	gw := &stubGateway{
		addStoreFn: func(_ context.Context, _ string, _ ports.AddStoreInput) (*domain.Store, error) {
			t.Fatalf("form without owner must not be submitted")
			return nil, nil
		},
	}
	h := newAdminFixture(gw)

	req := formRequest("/admin/stores", url.Values{
		"name":    {"Corner Bakery"},
		"email":   {"shop@example.com"},
		"address": {"5 Main St"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	apimw.SetState(c, adminState())
	apimw.SetSID(c, "sid-1")

	if err := h.CreateStore(c); err != nil {
		t.Fatalf("create store: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Please select a store owner") {
		t.Fatalf("owner requirement not enforced")
	}
}
