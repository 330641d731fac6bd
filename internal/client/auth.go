package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rryowa/bookstore/internal/models"
)

const (
	loginPath        = "/auth/login/"
	logoutPath       = "/auth/logout/"
	tokenRefreshPath = "/auth/token/refresh/"
	userPath         = "/auth/user/"
)

// Login authenticates and stores the returned token pair.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	req := models.LoginRequest{Username: username, Password: password}
	if err := c.requestJSON(ctx, http.MethodPost, loginPath, nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, errors.New("login response has no access token")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.setCredentialsLocked(ctx, resp.AccessToken); err != nil {
		return nil, err
	}
	if resp.RefreshToken != "" {
		if err := c.setRefreshTokenLocked(ctx, resp.RefreshToken); err != nil {
			return nil, err
		}
	}

	c.log.Infow("Logged in", "username", username)
	return &resp, nil
}

// Logout tells the server to blacklist the refresh token when there is one.
// That call is best effort; local credentials are always cleared.
func (c *Client) Logout(ctx context.Context) error {
	if refresh := c.RefreshToken(); refresh != "" {
		req := models.LogoutRequest{RefreshToken: refresh}
		if err := c.requestJSON(ctx, http.MethodPost, logoutPath, nil, req, nil); err != nil {
			c.log.Warnw("Logout request failed", "error", err)
		}
	}

	return c.ClearCredentials(context.WithoutCancel(ctx))
}

// Refresh exchanges the refresh token for a new access token. It fails
// without touching the network when no refresh token is held.
func (c *Client) Refresh(ctx context.Context) error {
	refresh := c.RefreshToken()
	if refresh == "" {
		return ErrNoRefreshToken
	}

	var resp models.TokenRefreshResponse
	req := models.TokenRefreshRequest{RefreshToken: refresh}
	if err := c.requestJSON(ctx, http.MethodPost, tokenRefreshPath, nil, req, &resp); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return errors.New("refresh response has no access token")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.setCredentialsLocked(ctx, resp.AccessToken); err != nil {
		return err
	}
	// Rotation enabled on the server: the old refresh token is blacklisted.
	if resp.RefreshToken != "" {
		if err := c.setRefreshTokenLocked(ctx, resp.RefreshToken); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.requestJSON(ctx, http.MethodGet, userPath, nil, nil, &user); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return &user, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var user models.User
	if err := c.requestJSON(ctx, http.MethodPost, userPath, nil, req, &user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req models.UserUpdateRequest) (*models.User, error) {
	var user models.User
	if err := c.requestJSON(ctx, http.MethodPatch, userPath, nil, req, &user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &user, nil
}
