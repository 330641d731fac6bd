package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rryowa/bookstore/internal/storage"
	"github.com/rryowa/bookstore/internal/util"
)

var (
	ErrTokenInvalid         = errors.New("token invalid")
	ErrTokenMalformed       = errors.New("token is malformed")
	ErrTokenRevoked         = errors.New("token revoked")
	ErrInvalidUserID        = errors.New("invalid userID")
	ErrInvalidSigningMethod = errors.New("invalid signing method")
	ErrWrongTokenType       = errors.New("not an access token")
)

const accessTokenType = "access"

// AccessClaims are the claims of an access token issued by the bookstore
// backend. user_id is a number, or a numeric string for custom user models.
type AccessClaims struct {
	TokenType string      `json:"token_type,omitempty"`
	UserID    json.Number `json:"user_id"`
	Username  string      `json:"username,omitempty"`
	jwt.RegisteredClaims
}

func (c *AccessClaims) UserIDInt() (int64, error) {
	if c.UserID == "" {
		return 0, ErrInvalidUserID
	}
	id, err := strconv.ParseInt(c.UserID.String(), 10, 64)
	if err != nil {
		return 0, ErrInvalidUserID
	}
	return id, nil
}

// TokenService verifies access tokens signed with the shared secret and
// tracks the ones revoked by a web logout.
type TokenService struct {
	JwtSecretKey []byte
	tokenStorage storage.TokenStorage
}

func NewTokenService(cfg *util.TokenConfig, tokenStorage storage.TokenStorage) *TokenService {
	return &TokenService{
		JwtSecretKey: cfg.JwtSecretKey,
		tokenStorage: tokenStorage,
	}
}

func (ts *TokenService) ValidateAccessTokenAndGetUserID(ctx context.Context, token string) (int64, error) {
	isInvalidated, err := ts.IsAccessTokenInvalidated(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("failed to check if token is invalidated: %w", err)
	}
	if isInvalidated {
		return 0, ErrTokenRevoked
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(util.JWTLeeWay),
		jwt.WithExpirationRequired(),
	}

	parsedToken, err := jwt.ParseWithClaims(
		token,
		&AccessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, ErrInvalidSigningMethod
			}
			return ts.JwtSecretKey, nil
		},
		opts...,
	)
	if err != nil {
		return 0, fmt.Errorf("parse token claims: %w", err)
	}

	if parsedToken == nil || !parsedToken.Valid {
		return 0, ErrTokenInvalid
	}

	claims, ok := parsedToken.Claims.(*AccessClaims)
	if !ok {
		return 0, ErrTokenInvalid
	}
	if claims.TokenType != "" && claims.TokenType != accessTokenType {
		return 0, ErrWrongTokenType
	}

	return claims.UserIDInt()
}

// InvalidateAccessToken revokes the token until it would have expired
// anyway. Expired tokens need no entry.
func (ts *TokenService) InvalidateAccessToken(ctx context.Context, accessToken string) error {
	claims, err := ParseUnverifiedClaims(accessToken)
	if err != nil {
		return fmt.Errorf("get claims from token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return ErrTokenInvalid
	}

	expiration := time.Until(claims.ExpiresAt.Time)
	if expiration <= 0 {
		return nil
	}

	if err := ts.tokenStorage.InvalidateToken(ctx, accessToken, expiration); err != nil {
		return fmt.Errorf("invalidate token: %w", err)
	}
	return nil
}

func (ts *TokenService) IsAccessTokenInvalidated(ctx context.Context, accessToken string) (bool, error) {
	isInvalidated, err := ts.tokenStorage.IsTokenInvalidated(ctx, accessToken)
	if err != nil {
		return false, fmt.Errorf("is token invalidated: %w", err)
	}
	return isInvalidated, nil
}

// ParseUnverifiedClaims reads the claims without checking the signature.
// Only use the result for display or for bookkeeping on tokens the server
// already accepted.
func ParseUnverifiedClaims(token string) (*AccessClaims, error) {
	parsedToken, _, err := new(jwt.Parser).ParseUnverified(token, &AccessClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}

	claims, ok := parsedToken.Claims.(*AccessClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
