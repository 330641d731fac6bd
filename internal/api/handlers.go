package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rryowa/bookstore/internal/client"
	"github.com/rryowa/bookstore/internal/models"
	"github.com/rryowa/bookstore/internal/notify"
	"github.com/rryowa/bookstore/internal/storage/memory"
	"github.com/rryowa/bookstore/internal/util"
)

const defaultNextPath = "/dashboard/"

func (a *API) render(c echo.Context, status int, data pageData) error {
	if id, ok := c.Get(UserIDContextKey).(int64); ok {
		data.UserID = id
	}
	return c.Render(status, "page", data)
}

func (a *API) homePage(c echo.Context) error {
	return a.render(c, http.StatusOK, pageData{Title: "Home", Page: "home"})
}

func (a *API) registerPage(c echo.Context) error {
	return a.render(c, http.StatusOK, pageData{Title: "Register", Page: "register"})
}

func (a *API) dashboardPage(c echo.Context) error {
	return a.render(c, http.StatusOK, pageData{Title: "Dashboard", Page: "dashboard"})
}

func (a *API) booksPage(c echo.Context) error {
	return a.render(c, http.StatusOK, pageData{Title: "Book Management", Page: "books"})
}

func (a *API) favoritesPage(c echo.Context) error {
	return a.render(c, http.StatusOK, pageData{Title: "My Favorites", Page: "favorites"})
}

func (a *API) loginPage(c echo.Context) error {
	return a.render(c, http.StatusOK, pageData{Title: "Login", Page: "login", Next: c.QueryParam("next")})
}

// loginSubmit signs in against the backend with a per-request client. The
// client leaves the access_token cookie on the response.
func (a *API) loginSubmit(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	next := c.QueryParam("next")

	page := pageData{Title: "Login", Page: "login", Next: next, Username: username}
	if username == "" || password == "" {
		page.Notifications = []notify.Notification{notify.New("Please fill in all fields.", notify.KindError)}
		return a.render(c, http.StatusOK, page)
	}

	cl := client.NewClient(
		a.clientCfg,
		memory.NewStorage(),
		echoCookies{c: c},
		client.NavigatorFunc(func(string) {}),
		a.log,
		client.WithHTTPClient(a.httpClient),
	)
	if _, err := cl.Login(c.Request().Context(), username, password); err != nil {
		msg := "Login failed. Please try again later."
		if errors.Is(err, client.ErrAuthenticationRequired) || util.StatusCode(err) == http.StatusBadRequest {
			msg = "Invalid username or password."
		} else {
			a.log.Errorw("Web login failed", "username", username, "error", err)
		}
		page.Notifications = []notify.Notification{notify.New(msg, notify.KindError)}
		return a.render(c, http.StatusOK, page)
	}

	return c.Redirect(http.StatusFound, safeNext(next))
}

// logout revokes the cookie token until it expires, drops the cookie and
// goes home.
func (a *API) logout(c echo.Context) error {
	if cookie, err := c.Cookie(models.CookieAccessToken); err == nil && cookie.Value != "" {
		if err := a.tokens.InvalidateAccessToken(c.Request().Context(), cookie.Value); err != nil {
			a.log.Warnw("Failed to revoke access token", "error", err)
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     models.CookieAccessToken,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/")
}

// safeNext only follows local absolute paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return defaultNextPath
	}
	return next
}
