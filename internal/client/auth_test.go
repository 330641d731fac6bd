package client

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rryowa/bookstore/internal/models"
)

func TestLogin_StoresTokensAndAuthenticatesNextCall(t *testing.T) {
	ctx := context.Background()
	var userAuth string
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login/":
			var req models.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "alice", req.Username)
			assert.Equal(t, "secret", req.Password)
			assert.Empty(t, r.Header.Get("Authorization"))
			respondJSON(t, w, http.StatusOK, map[string]any{
				"access":  "A",
				"refresh": "R",
				"user":    map[string]any{"username": "alice", "email": "a@example.com"},
			})
		case "/api/auth/user/":
			userAuth = r.Header.Get("Authorization")
			respondJSON(t, w, http.StatusOK, map[string]any{"id": 1, "username": "alice"})
		default:
			http.NotFound(w, r)
		}
	})

	resp, err := env.client.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "A", resp.AccessToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Username)

	access, _ := storedValue(t, env.storage, models.StorageKeyAccessToken)
	refresh, _ := storedValue(t, env.storage, models.StorageKeyRefreshToken)
	assert.Equal(t, "A", access)
	assert.Equal(t, "R", refresh)
	cookie, ok := env.cookies.Cookie(models.CookieAccessToken)
	require.True(t, ok)
	assert.Equal(t, "A", cookie.Value)

	user, err := env.client.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Bearer A", userAuth)
}

func TestLogin_BadCredentials(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(t, w, http.StatusBadRequest, map[string]any{"non_field_errors": []string{"Invalid credentials"}})
	})

	_, err := env.client.Login(context.Background(), "alice", "wrong")

	require.Error(t, err)
	assert.False(t, env.client.IsAuthenticated())
	_, ok := storedValue(t, env.storage, models.StorageKeyAccessToken)
	assert.False(t, ok)
}

func TestLogout(t *testing.T) {
	type testCase struct {
		name          string
		refreshToken  string
		status        int
		expectedCalls int32
	}
	testCases := []testCase{
		{
			name:          "server_accepts",
			refreshToken:  "R",
			status:        http.StatusResetContent,
			expectedCalls: 1,
		},
		{
			name:          "server_fails",
			refreshToken:  "R",
			status:        http.StatusInternalServerError,
			expectedCalls: 1,
		},
		{
			name:          "no_refresh_token",
			status:        http.StatusResetContent,
			expectedCalls: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			var calls atomic.Int32
			env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				assert.Equal(t, "/api/auth/logout/", r.URL.Path)
				var req models.LogoutRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, tc.refreshToken, req.RefreshToken)
				w.WriteHeader(tc.status)
			})
			require.NoError(t, env.client.SetCredentials(ctx, "A"))
			if tc.refreshToken != "" {
				env.client.mu.Lock()
				require.NoError(t, env.client.setRefreshTokenLocked(ctx, tc.refreshToken))
				env.client.mu.Unlock()
			}

			require.NoError(t, env.client.Logout(ctx))

			assert.Equal(t, tc.expectedCalls, calls.Load())
			assert.False(t, env.client.IsAuthenticated())
			assert.Empty(t, env.client.RefreshToken())
			_, ok := storedValue(t, env.storage, models.StorageKeyAccessToken)
			assert.False(t, ok)
			_, ok = storedValue(t, env.storage, models.StorageKeyRefreshToken)
			assert.False(t, ok)
			_, ok = env.cookies.Cookie(models.CookieAccessToken)
			assert.False(t, ok)
		})
	}
}

func TestRefresh_WithoutTokenMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	})

	err := env.client.Refresh(context.Background())

	assert.ErrorIs(t, err, ErrNoRefreshToken)
	assert.Equal(t, int32(0), calls.Load())
}

func TestRefresh(t *testing.T) {
	type testCase struct {
		name            string
		response        map[string]any
		expectedRefresh string
	}
	testCases := []testCase{
		{
			name:            "access_only",
			response:        map[string]any{"access": "A2"},
			expectedRefresh: "R",
		},
		{
			name:            "rotated_refresh",
			response:        map[string]any{"access": "A2", "refresh": "R2"},
			expectedRefresh: "R2",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/auth/token/refresh/", r.URL.Path)
				var req models.TokenRefreshRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "R", req.RefreshToken)
				respondJSON(t, w, http.StatusOK, tc.response)
			})
			require.NoError(t, env.storage.Set(ctx, models.StorageKeyAccessToken, "A"))
			require.NoError(t, env.storage.Set(ctx, models.StorageKeyRefreshToken, "R"))
			require.NoError(t, env.client.Restore(ctx))

			require.NoError(t, env.client.Refresh(ctx))

			assert.Equal(t, "A2", env.client.AccessToken())
			assert.Equal(t, tc.expectedRefresh, env.client.RefreshToken())
			access, _ := storedValue(t, env.storage, models.StorageKeyAccessToken)
			assert.Equal(t, "A2", access)
			refresh, _ := storedValue(t, env.storage, models.StorageKeyRefreshToken)
			assert.Equal(t, tc.expectedRefresh, refresh)
			cookie, ok := env.cookies.Cookie(models.CookieAccessToken)
			require.True(t, ok)
			assert.Equal(t, "A2", cookie.Value)
		})
	}
}
