// Package client is the authenticated client of the bookstore REST API.
//
// A Client owns the session credentials. The access token lives in three
// places that always agree: the Client itself, the persistent Storage under
// "accessToken", and the "access_token" cookie read by the web middleware.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/rryowa/bookstore/internal/models"
	"github.com/rryowa/bookstore/internal/storage"
	"github.com/rryowa/bookstore/internal/util"
)

// accessCookieMaxAge matches the access token lifetime on the server.
const accessCookieMaxAge = 3600

type Client struct {
	baseURL    string
	loginPath  string
	httpClient *http.Client
	storage    storage.Storage
	cookies    CookieStore
	navigator  Navigator
	log        *zap.SugaredLogger

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient. No timeout is added by the
// Client itself; bound calls with the context instead.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(
	cfg *util.ClientConfig,
	store storage.Storage,
	cookies CookieStore,
	navigator Navigator,
	log *zap.SugaredLogger,
	opts ...Option,
) *Client {
	c := &Client{
		baseURL:    cfg.BaseURL,
		loginPath:  cfg.LoginPath,
		httpClient: http.DefaultClient,
		storage:    store,
		cookies:    cookies,
		navigator:  navigator,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restore loads the credentials persisted by a previous session and
// re-mirrors the access token cookie.
func (c *Client) Restore(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	access, ok, err := c.storage.Get(ctx, models.StorageKeyAccessToken)
	if err != nil {
		return fmt.Errorf("load access token: %w", err)
	}
	refresh, _, err := c.storage.Get(ctx, models.StorageKeyRefreshToken)
	if err != nil {
		return fmt.Errorf("load refresh token: %w", err)
	}

	if !ok || access == "" {
		c.accessToken = ""
		c.refreshToken = refresh
		c.cookies.SetCookie(expiredAccessCookie())
		return nil
	}

	c.accessToken = access
	c.refreshToken = refresh
	c.cookies.SetCookie(accessCookie(access))
	return nil
}

// SetCredentials stores accessToken in memory, in storage and in the cookie.
// When storage fails nothing changes.
func (c *Client) SetCredentials(ctx context.Context, accessToken string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.setCredentialsLocked(ctx, accessToken)
}

func (c *Client) setCredentialsLocked(ctx context.Context, accessToken string) error {
	if err := c.storage.Set(ctx, models.StorageKeyAccessToken, accessToken); err != nil {
		return fmt.Errorf("persist access token: %w", err)
	}
	c.cookies.SetCookie(accessCookie(accessToken))
	c.accessToken = accessToken
	return nil
}

func (c *Client) setRefreshTokenLocked(ctx context.Context, refreshToken string) error {
	if err := c.storage.Set(ctx, models.StorageKeyRefreshToken, refreshToken); err != nil {
		return fmt.Errorf("persist refresh token: %w", err)
	}
	c.refreshToken = refreshToken
	return nil
}

// ClearCredentials drops both tokens and expires the cookie. It is safe to
// call without a session. Memory and cookie are cleared even when storage
// fails; the storage error is still returned.
func (c *Client) ClearCredentials(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accessToken = ""
	c.refreshToken = ""
	c.cookies.SetCookie(expiredAccessCookie())

	err := errors.Join(
		c.storage.Remove(ctx, models.StorageKeyAccessToken),
		c.storage.Remove(ctx, models.StorageKeyRefreshToken),
	)
	if err != nil {
		return fmt.Errorf("clear stored credentials: %w", err)
	}
	return nil
}

func (c *Client) IsAuthenticated() bool {
	return c.AccessToken() != ""
}

func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *Client) RefreshToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshToken
}

// CSRFToken returns the value of the csrftoken cookie, or "".
func (c *Client) CSRFToken() string {
	return cookieValue(c.cookies.Cookies(), models.CookieCSRFToken)
}

func accessCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     models.CookieAccessToken,
		Value:    token,
		Path:     "/",
		MaxAge:   accessCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	}
}

func expiredAccessCookie() *http.Cookie {
	return &http.Cookie{
		Name:     models.CookieAccessToken,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	}
}
