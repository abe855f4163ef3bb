package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/storefront/internal/api/metrics"
	apimw "github.com/ratehub/storefront/internal/api/middleware"
	"github.com/ratehub/storefront/internal/core/domain"
	"github.com/ratehub/storefront/internal/core/ports"
	"github.com/ratehub/storefront/internal/gateway"
)

// StoreHandler serves the public store directory and rating submission.
type StoreHandler struct {
	gw ports.Gateway
}

func NewStoreHandler(gw ports.Gateway) *StoreHandler {
	return &StoreHandler{gw: gw}
}

// storesPage backs the store directory template.
type storesPage struct {
	Title  string
	User   *domain.User
	Query  string
	Flash  string
	Error  string
	Stores []domain.Store
}

// Directory lists every store with its aggregate rating and the caller's
// own rating, narrowed by the q filter over name and address.
func (h *StoreHandler) Directory(c echo.Context) error {
	st := apimw.StateFrom(c)

	page := storesPage{
		Title: "Store Directory",
		User:  st.Identity,
		Query: c.QueryParam("q"),
		Flash: popFlash(c),
		Error: popFlashError(c),
	}

	stores, err := h.gw.Stores(c.Request().Context(), st.Token)
	if err != nil {
		return err
	}
	page.Stores = filterStoresPublic(stores, page.Query)

	return c.Render(http.StatusOK, "stores", page)
}

// Rate submits (or overwrites) the caller's star rating for one store and
// redirects back to the directory. The displayed average is whatever the
// backend recomputed, never a local calculation.
func (h *StoreHandler) Rate(c echo.Context) error {
	st := apimw.StateFrom(c)

	storeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid store id")
	}
	rating, err := strconv.Atoi(c.FormValue("rating"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid rating")
	}

	if err := h.gw.SubmitRating(c.Request().Context(), st.Token, storeID, rating); err != nil {
		if errors.Is(err, domain.ErrInvalidRating) {
			return err
		}
		var ge *gateway.Error
		if errors.As(err, &ge) {
			setFlashError(c, ge.Message)
			return c.Redirect(http.StatusSeeOther, "/stores")
		}
		return err
	}

	metrics.RatingsSubmittedTotal.Inc()
	setFlash(c, "Rating submitted")
	return c.Redirect(http.StatusSeeOther, "/stores")
}
