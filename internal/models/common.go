package models

import (
	"bytes"
	"encoding/json"
)

//nolint:gosec //file not handles sensitive data
const (
	StorageKeyAccessToken  = "accessToken"
	StorageKeyRefreshToken = "refreshToken"

	CookieAccessToken = "access_token"
	CookieCSRFToken   = "csrftoken"

	HeaderCSRFToken = "X-CSRFToken"
)

// Page is a list response. The API answers list endpoints either with a
// paginated envelope or with a bare JSON array; both decode into Page.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func (p *Page[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*p = Page[T]{Count: len(items), Results: items}
		return nil
	}

	type envelope Page[T]
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return err
	}
	*p = Page[T](env)
	return nil
}

type BulkDeleteRequest struct {
	BookIDs []int64 `json:"book_ids"`
}

type BulkDeleteResponse struct {
	Message      string `json:"message"`
	DeletedCount int    `json:"deleted_count"`
}

type FavoriteToggleRequest struct {
	BookID int64 `json:"book_id"`
}

type FavoriteToggleResponse struct {
	Message     string `json:"message"`
	IsFavorited bool   `json:"is_favorited"`
}
