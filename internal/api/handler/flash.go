package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"
)

// One-shot flash messages ride on short-lived cookies so a POST handler
// can redirect and still show a confirmation banner on the next page.
// Values are base64-encoded; raw messages contain spaces, which are not
// valid in a cookie value.
const (
	flashCookie      = "flash"
	flashErrorCookie = "flash_error"
)

func setFlash(c echo.Context, msg string) { setFlashCookie(c, flashCookie, msg) }

func setFlashError(c echo.Context, msg string) { setFlashCookie(c, flashErrorCookie, msg) }

func setFlashCookie(c echo.Context, name, msg string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    base64.URLEncoding.EncodeToString([]byte(msg)),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func popFlash(c echo.Context) string { return popFlashCookie(c, flashCookie) }

func popFlashError(c echo.Context) string { return popFlashCookie(c, flashErrorCookie) }

func popFlashCookie(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil || cookie.Value == "" {
		return ""
	}
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}
