package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rryowa/bookstore/internal/storage/memory"
	"github.com/rryowa/bookstore/internal/util"
)

var testSecret = []byte("test-secret")

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func newTestService() *TokenService {
	return NewTokenService(&util.TokenConfig{JwtSecretKey: testSecret}, memory.NewTokenStorage())
}

func TestValidateAccessTokenAndGetUserID(t *testing.T) {
	now := time.Now()
	exp := now.Add(time.Hour).Unix()

	type testCase struct {
		name       string
		token      func(t *testing.T) string
		expectedID int64
		wantErr    error
		anyErr     bool
	}
	testCases := []testCase{
		{
			name: "valid_numeric_user_id",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"token_type": "access", "user_id": 42, "exp": exp})
			},
			expectedID: 42,
		},
		{
			name: "valid_string_user_id_without_type",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"user_id": "7", "exp": exp})
			},
			expectedID: 7,
		},
		{
			name: "refresh_token_rejected",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"token_type": "refresh", "user_id": 42, "exp": exp})
			},
			wantErr: ErrWrongTokenType,
		},
		{
			name: "missing_user_id",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"token_type": "access", "exp": exp})
			},
			wantErr: ErrInvalidUserID,
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"user_id": 1, "exp": now.Add(-time.Hour).Unix()})
			},
			wantErr: jwt.ErrTokenExpired,
		},
		{
			name: "no_expiry",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"user_id": 1})
			},
			anyErr: true,
		},
		{
			name: "wrong_secret",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"user_id": 1, "exp": exp})
			},
			wantErr: jwt.ErrTokenSignatureInvalid,
		},
		{
			name: "wrong_algorithm",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS512, testSecret, jwt.MapClaims{"user_id": 1, "exp": exp})
			},
			anyErr: true,
		},
		{
			name:   "garbage",
			token:  func(*testing.T) string { return "not-a-jwt" },
			anyErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestService()
			id, err := ts.ValidateAccessTokenAndGetUserID(context.Background(), tc.token(t))

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.expectedID, id)
			}
		})
	}
}

func TestInvalidateAccessToken(t *testing.T) {
	ctx := context.Background()
	ts := newTestService()
	token := sign(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
		"token_type": "access", "user_id": 3, "exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := ts.ValidateAccessTokenAndGetUserID(ctx, token)
	require.NoError(t, err)

	require.NoError(t, ts.InvalidateAccessToken(ctx, token))

	_, err = ts.ValidateAccessTokenAndGetUserID(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestInvalidateAccessToken_ExpiredIsNoop(t *testing.T) {
	ctx := context.Background()
	ts := newTestService()
	token := sign(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
		"user_id": 3, "exp": time.Now().Add(-time.Hour).Unix(),
	})

	require.NoError(t, ts.InvalidateAccessToken(ctx, token))
	revoked, err := ts.IsAccessTokenInvalidated(ctx, token)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestParseUnverifiedClaims(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte("unknown"), jwt.MapClaims{
		"user_id": 9, "username": "alice", "exp": time.Now().Add(time.Minute).Unix(),
	})

	claims, err := ParseUnverifiedClaims(token)
	require.NoError(t, err)
	id, err := claims.UserIDInt()
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
	assert.Equal(t, "alice", claims.Username)

	_, err = ParseUnverifiedClaims("x.y")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
