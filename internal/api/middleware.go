package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/rryowa/bookstore/internal/models"
	"github.com/rryowa/bookstore/internal/service"
)

const UserIDContextKey = "user_id"

//nolint:gochecknoglobals // fixed route tables
var (
	publicPaths       = map[string]bool{"/": true, "/login/": true, "/register/": true}
	protectedPrefixes = []string{"/dashboard/", "/books/", "/favorites/"}
)

// JWTCookieAuthMiddleware guards the pages under protectedPrefixes with the
// access_token cookie. Anything missing, invalid, expired or revoked is
// redirected to the login page with the requested path as next. The user id
// is stored in the Echo context under UserIDContextKey.
func JWTCookieAuthMiddleware(ts *service.TokenService, loginPath string, log *zap.SugaredLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if !requiresAuth(path) {
				return next(c)
			}

			cookie, err := c.Cookie(models.CookieAccessToken)
			if err != nil || cookie.Value == "" {
				return redirectToLogin(c, loginPath, path)
			}

			userID, err := ts.ValidateAccessTokenAndGetUserID(c.Request().Context(), cookie.Value)
			if err != nil {
				log.Debugw("Rejected access token cookie", "path", path, "error", err)
				return redirectToLogin(c, loginPath, path)
			}

			c.Set(UserIDContextKey, userID)
			return next(c)
		}
	}
}

func requiresAuth(path string) bool {
	if strings.HasPrefix(path, "/api/") || publicPaths[path] {
		return false
	}
	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func redirectToLogin(c echo.Context, loginPath, next string) error {
	escaped := strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
	return c.Redirect(http.StatusFound, loginPath+"?next="+escaped)
}

func GetLoggerMiddlewareConfig(a *API) echomiddleware.RequestLoggerConfig {
	return echomiddleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,

		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", c.Request().Method,
				"uri", v.URI,
				"status", v.Status,
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
				a.log.Errorw("Request", fields...)
			} else {
				a.log.Infow("Request", fields...)
			}
			return nil
		},
	}
}
