package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apimw "github.com/ratehub/storefront/internal/api/middleware"
	"github.com/ratehub/storefront/internal/core/domain"
	"github.com/ratehub/storefront/internal/core/ports"
	"github.com/ratehub/storefront/internal/gateway"
)

// OwnerHandler serves the store-owner dashboard.
type OwnerHandler struct {
	gw  ports.Gateway
	log zerolog.Logger
}

func NewOwnerHandler(gw ports.Gateway, log zerolog.Logger) *OwnerHandler {
	return &OwnerHandler{gw: gw, log: log}
}

// ownerPage backs the store-owner dashboard template.
type ownerPage struct {
	Title string
	User  *domain.User
	Flash string
	Error string
	Store *domain.Store
	Rows  []domain.RatingRow
}

// Dashboard fetches the owner's store, then its ratings, then joins each
// rating with the rater's profile. An unresolvable rater keeps placeholder
// values instead of sinking the whole page.
func (h *OwnerHandler) Dashboard(c echo.Context) error {
	st := apimw.StateFrom(c)
	ctx := c.Request().Context()

	page := ownerPage{
		Title: "Store Owner Dashboard",
		User:  st.Identity,
		Flash: popFlash(c),
	}

	store, err := h.gw.OwnerStore(ctx, st.Token)
	if err != nil {
		var ge *gateway.Error
		if !errors.As(err, &ge) {
			return err
		}
		page.Error = ge.Message
		return c.Render(http.StatusOK, "owner", page)
	}
	page.Store = store

	ratings, err := h.gw.StoreRatings(ctx, st.Token, store.ID)
	if err != nil {
		var ge *gateway.Error
		if !errors.As(err, &ge) {
			return err
		}
		page.Error = ge.Message
		return c.Render(http.StatusOK, "owner", page)
	}

	page.Rows = make([]domain.RatingRow, 0, len(ratings))
	for _, r := range ratings {
		row := domain.RatingRow{Rating: r, RaterName: "Unknown User", RaterEmail: "N/A"}
		rater, err := h.gw.GetUserByID(ctx, st.Token, r.UserID)
		if err != nil {
			h.log.Warn().Err(err).Int64("user_id", r.UserID).Msg("could not resolve rater")
		} else {
			row.RaterName = rater.Name
			row.RaterEmail = rater.Email
		}
		page.Rows = append(page.Rows, row)
	}

	return c.Render(http.StatusOK, "owner", page)
}
