package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rryowa/bookstore/internal/models"
	"github.com/rryowa/bookstore/internal/storage/memory"
	"github.com/rryowa/bookstore/internal/util"
)

type navRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (n *navRecorder) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *navRecorder) visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

type failingStorage struct{}

func (failingStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage down")
}
func (failingStorage) Set(context.Context, string, string) error { return errors.New("storage down") }
func (failingStorage) Remove(context.Context, string) error      { return errors.New("storage down") }

type testEnv struct {
	client  *Client
	storage *memory.Storage
	cookies *MemoryCookies
	nav     *navRecorder
}

func newTestEnv(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	env := &testEnv{
		storage: memory.NewStorage(),
		cookies: NewMemoryCookies(),
		nav:     &navRecorder{},
	}
	cfg := &util.ClientConfig{BaseURL: srv.URL + "/api", LoginPath: "/login/"}
	env.client = NewClient(cfg, env.storage, env.cookies, env.nav, zap.NewNop().Sugar(), WithHTTPClient(srv.Client()))
	return env
}

func respondJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func storedValue(t *testing.T, s *memory.Storage, key string) (string, bool) {
	t.Helper()
	v, ok, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	return v, ok
}

func TestSetAndClearCredentials(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, http.NotFound)

	require.NoError(t, env.client.SetCredentials(ctx, "token-1"))

	assert.Equal(t, "token-1", env.client.AccessToken())
	v, ok := storedValue(t, env.storage, models.StorageKeyAccessToken)
	assert.True(t, ok)
	assert.Equal(t, "token-1", v)
	cookie, ok := env.cookies.Cookie(models.CookieAccessToken)
	require.True(t, ok)
	assert.Equal(t, "token-1", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.True(t, env.client.IsAuthenticated())

	require.NoError(t, env.storage.Set(ctx, models.StorageKeyRefreshToken, "refresh-1"))
	require.NoError(t, env.client.ClearCredentials(ctx))

	assert.Empty(t, env.client.AccessToken())
	assert.Empty(t, env.client.RefreshToken())
	_, ok = storedValue(t, env.storage, models.StorageKeyAccessToken)
	assert.False(t, ok)
	_, ok = storedValue(t, env.storage, models.StorageKeyRefreshToken)
	assert.False(t, ok)
	_, ok = env.cookies.Cookie(models.CookieAccessToken)
	assert.False(t, ok)
	assert.False(t, env.client.IsAuthenticated())

	assert.NoError(t, env.client.ClearCredentials(ctx), "clearing without a session")
}

func TestSetCredentials_StorageFailureChangesNothing(t *testing.T) {
	cookies := NewMemoryCookies()
	c := NewClient(&util.ClientConfig{BaseURL: "http://unused"}, failingStorage{}, cookies, &navRecorder{}, zap.NewNop().Sugar())

	err := c.SetCredentials(context.Background(), "token-1")
	require.Error(t, err)

	assert.Empty(t, c.AccessToken())
	_, ok := cookies.Cookie(models.CookieAccessToken)
	assert.False(t, ok)
}

func TestClearCredentials_StorageFailureStillClearsMemoryAndCookie(t *testing.T) {
	cookies := NewMemoryCookies(&http.Cookie{Name: models.CookieAccessToken, Value: "old"})
	c := NewClient(&util.ClientConfig{BaseURL: "http://unused"}, failingStorage{}, cookies, &navRecorder{}, zap.NewNop().Sugar())
	c.accessToken = "old"
	c.refreshToken = "refresh"

	err := c.ClearCredentials(context.Background())
	require.Error(t, err)

	assert.Empty(t, c.AccessToken())
	assert.Empty(t, c.RefreshToken())
	_, ok := cookies.Cookie(models.CookieAccessToken)
	assert.False(t, ok)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, http.NotFound)
	require.NoError(t, env.storage.Set(ctx, models.StorageKeyAccessToken, "A"))
	require.NoError(t, env.storage.Set(ctx, models.StorageKeyRefreshToken, "R"))

	require.NoError(t, env.client.Restore(ctx))

	assert.Equal(t, "A", env.client.AccessToken())
	assert.Equal(t, "R", env.client.RefreshToken())
	cookie, ok := env.cookies.Cookie(models.CookieAccessToken)
	require.True(t, ok)
	assert.Equal(t, "A", cookie.Value)
}

func TestCSRFToken(t *testing.T) {
	type testCase struct {
		name     string
		cookies  []*http.Cookie
		expected string
	}
	testCases := []testCase{
		{
			name:     "no_cookies",
			expected: "",
		},
		{
			name:     "only_csrf",
			cookies:  []*http.Cookie{{Name: "csrftoken", Value: "abc"}},
			expected: "abc",
		},
		{
			name: "among_other_cookies",
			cookies: []*http.Cookie{
				{Name: "sessionid", Value: "s1"},
				{Name: "csrftoken", Value: "abc"},
				{Name: "theme", Value: "dark"},
			},
			expected: "abc",
		},
		{
			name: "similar_names_do_not_match",
			cookies: []*http.Cookie{
				{Name: "xcsrftoken", Value: "nope"},
				{Name: "csrftoken_old", Value: "nope"},
			},
			expected: "",
		},
		{
			name:     "uri_encoded_value",
			cookies:  []*http.Cookie{{Name: "csrftoken", Value: "a%2Fb"}},
			expected: "a/b",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClient(&util.ClientConfig{}, memory.NewStorage(), NewMemoryCookies(tc.cookies...), &navRecorder{}, zap.NewNop().Sugar())
			assert.Equal(t, tc.expected, c.CSRFToken())
		})
	}
}

func TestCookieValue_Whitespace(t *testing.T) {
	raw := "  sessionid=s1 ;csrftoken=tok;   theme=dark  "
	assert.Equal(t, "tok", cookieValue(raw, "csrftoken"))
	assert.Equal(t, "dark", cookieValue(raw, "theme"))
	assert.Equal(t, "", cookieValue(raw, "missing"))
}
