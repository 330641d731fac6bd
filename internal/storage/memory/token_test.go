package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStorage(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewTokenStorage()
	s.now = func() time.Time { return now }

	revoked, err := s.IsTokenInvalidated(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.InvalidateToken(ctx, "tok", time.Minute))
	revoked, err = s.IsTokenInvalidated(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = s.IsTokenInvalidated(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)
}
