package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// echoCookies lets a per-request API client read the browser cookies and
// answer with Set-Cookie headers.
type echoCookies struct {
	c echo.Context
}

func (e echoCookies) Cookies() string {
	return strings.Join(e.c.Request().Header.Values("Cookie"), "; ")
}

func (e echoCookies) SetCookie(cookie *http.Cookie) {
	e.c.SetCookie(cookie)
}
