package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apimw "github.com/ratehub/storefront/internal/api/middleware"
	"github.com/ratehub/storefront/internal/core/domain"
	"github.com/ratehub/storefront/internal/core/forms"
	"github.com/ratehub/storefront/internal/core/ports"
	"github.com/ratehub/storefront/internal/core/search"
	"github.com/ratehub/storefront/internal/gateway"
)

// AdminHandler serves the admin dashboard, the user and store creation
// forms and the owner-search fragment behind the add-store form.
type AdminHandler struct {
	gw       ports.Gateway
	searches *search.Registry
	log      zerolog.Logger
}

func NewAdminHandler(gw ports.Gateway, searches *search.Registry, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{gw: gw, searches: searches, log: log}
}

// adminPage backs the tabbed dashboard template. Only the slice matching
// the active tab is populated.
type adminPage struct {
	Title string
	User  *domain.User
	Tab   string
	Query string
	Flash string

	Stats  domain.Stats
	Stores []domain.Store
	Users  []domain.User
}

// addUserPage backs the user-creation template.
type addUserPage struct {
	Title  string
	User   *domain.User
	Draft  forms.AddUserDraft
	Errors forms.Errors
}

// addStorePage backs the store-creation template.
type addStorePage struct {
	Title string
	User  *domain.User
	Form  *forms.AddStoreForm
}

// ownerCandidate is one row of the owner-search result fragment.
type ownerCandidate struct {
	ID       int64
	Name     string
	Email    string
	Role     string
	Eligible bool
	Reason   string
}

// Dashboard renders the active tab. The stores and users tables fetch the
// full collection and narrow it in-process with the q filter.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	st := apimw.StateFrom(c)
	ctx := c.Request().Context()

	page := adminPage{
		Title: "Admin Dashboard",
		User:  st.Identity,
		Tab:   c.QueryParam("tab"),
		Query: c.QueryParam("q"),
		Flash: popFlash(c),
	}
	if page.Tab == "" {
		page.Tab = "dashboard"
	}

	switch page.Tab {
	case "stores":
		stores, err := h.gw.AdminStores(ctx, st.Token)
		if err != nil {
			return err
		}
		page.Stores = filterStoresAdmin(stores, page.Query)
	case "users":
		users, err := h.gw.AdminUsers(ctx, st.Token, "", "")
		if err != nil {
			return err
		}
		page.Users = filterUsers(users, page.Query)
	default:
		page.Tab = "dashboard"
		stats, err := h.gw.AdminStats(ctx, st.Token)
		if err != nil {
			return err
		}
		page.Stats = stats
	}

	return c.Render(http.StatusOK, "admin", page)
}

// NewUser renders an empty user-creation form.
func (h *AdminHandler) NewUser(c echo.Context) error {
	st := apimw.StateFrom(c)
	return c.Render(http.StatusOK, "adduser", addUserPage{
		Title:  "Admin Dashboard",
		User:   st.Identity,
		Errors: forms.Errors{},
	})
}

// CreateUser validates the posted draft locally and only then contacts
// the backend. A rejected draft re-renders with per-field messages and
// never leaves the process.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	st := apimw.StateFrom(c)

	var draft forms.AddUserDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	page := addUserPage{Title: "Admin Dashboard", User: st.Identity, Draft: draft}
	if page.Errors = draft.Validate(); !page.Errors.Valid() {
		return c.Render(http.StatusOK, "adduser", page)
	}

	_, err := h.gw.AdminAddUser(c.Request().Context(), st.Token, ports.AddUserInput{
		Name:     draft.Name,
		Email:    draft.Email,
		Password: draft.Password,
		Address:  draft.Address,
		Role:     draft.Role,
	})
	if err != nil {
		var ge *gateway.Error
		if errors.As(err, &ge) {
			page.Errors["submit"] = ge.Message
			return c.Render(http.StatusOK, "adduser", page)
		}
		return err
	}

	setFlash(c, "User created successfully")
	return c.Redirect(http.StatusSeeOther, "/admin?tab=users")
}

// NewStore renders an empty store-creation form and discards any searcher
// left over from a previously abandoned form.
func (h *AdminHandler) NewStore(c echo.Context) error {
	st := apimw.StateFrom(c)
	h.searches.Reset(apimw.SIDFrom(c))
	return c.Render(http.StatusOK, "addstore", addStorePage{
		Title: "Admin Dashboard",
		User:  st.Identity,
		Form:  forms.NewAddStoreForm(),
	})
}

// OwnerSearch answers one keystroke of the owner search box with a result
// fragment. Superseded keystrokes (and transient backend failures) answer
// 204 so the box keeps whatever it was showing.
func (h *AdminHandler) OwnerSearch(c echo.Context) error {
	st := apimw.StateFrom(c)
	term := c.QueryParam("term")
	if term == "" {
		return c.NoContent(http.StatusNoContent)
	}

	searcher := h.searches.For(apimw.SIDFrom(c))
	users, err := searcher.Search(c.Request().Context(), st.Token, term)
	if err != nil {
		if !errors.Is(err, search.ErrSuperseded) {
			h.log.Warn().Err(err).Msg("owner search failed")
		}
		return c.NoContent(http.StatusNoContent)
	}

	candidates := make([]ownerCandidate, 0, len(users))
	for _, u := range users {
		candidates = append(candidates, newOwnerCandidate(u))
	}
	return c.Render(http.StatusOK, "owner_results", map[string]any{"Users": candidates})
}

func newOwnerCandidate(u domain.User) ownerCandidate {
	cand := ownerCandidate{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
	switch {
	case u.Role != domain.RoleStoreOwner:
		cand.Reason = "Not a store owner"
	case u.OwnsStore():
		cand.Reason = "Already owns a store"
	default:
		cand.Eligible = true
	}
	return cand
}

// CreateStore rebuilds the form from the posted fields, re-verifies the
// selected owner against the backend and submits only a fully valid form.
// The eligibility rules are re-checked here because the selection happened
// in the browser, against a possibly stale search result.
func (h *AdminHandler) CreateStore(c echo.Context) error {
	st := apimw.StateFrom(c)
	ctx := c.Request().Context()

	var draft forms.AddStoreDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	form := forms.NewAddStoreForm()
	form.Draft = draft
	form.SearchTerm = c.FormValue("searchTerm")

	ok := form.Validate()
	if draft.OwnerID != 0 {
		candidate, err := h.gw.GetUserByID(ctx, st.Token, draft.OwnerID)
		if err != nil {
			form.Errors["owner"] = "The selected owner could not be verified"
			form.Draft.OwnerID = 0
			ok = false
		} else if !form.SelectOwner(*candidate) {
			form.Draft.OwnerID = 0
			ok = false
		}
	}

	page := addStorePage{Title: "Admin Dashboard", User: st.Identity, Form: form}
	if !ok {
		return c.Render(http.StatusOK, "addstore", page)
	}

	_, err := h.gw.AdminAddStore(ctx, st.Token, ports.AddStoreInput{
		Name:    form.Draft.Name,
		Email:   form.Draft.Email,
		Address: form.Draft.Address,
		OwnerID: form.Draft.OwnerID,
	})
	if err != nil {
		var ge *gateway.Error
		if errors.As(err, &ge) {
			form.Errors["submit"] = ge.Message
			return c.Render(http.StatusOK, "addstore", page)
		}
		return err
	}

	h.searches.Reset(apimw.SIDFrom(c))
	setFlash(c, "Store created successfully")
	return c.Redirect(http.StatusSeeOther, "/admin?tab=stores")
}
