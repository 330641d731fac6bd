package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rryowa/bookstore/internal/models"
)

const (
	bookSearchPath         = "/books/search/"
	bookBulkDeletePath     = "/books/bulk_delete/"
	bookBulkDeleteFiltered = "/books/bulk_delete_filtered/"
	favoriteTogglePath     = "/favorites/toggle/"
)

// SearchBooks is a free-text search over title, author, description, isbn,
// series and publisher.
func (c *Client) SearchBooks(ctx context.Context, text string, page int) (*models.Page[models.Book], error) {
	return c.SearchWithFilters(ctx, SearchFilters{Search: text, Page: page})
}

func (c *Client) SearchWithFilters(ctx context.Context, f SearchFilters) (*models.Page[models.Book], error) {
	var page models.Page[models.Book]
	if err := c.requestJSON(ctx, http.MethodGet, bookSearchPath, f.Values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) BulkDelete(ctx context.Context, bookIDs []int64) (*models.BulkDeleteResponse, error) {
	if len(bookIDs) == 0 {
		return nil, errors.New("at least one book id is required")
	}

	var resp models.BulkDeleteResponse
	req := models.BulkDeleteRequest{BookIDs: bookIDs}
	if err := c.requestJSON(ctx, http.MethodPost, bookBulkDeletePath, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("bulk delete: %w", err)
	}
	return &resp, nil
}

// BulkDeleteFiltered deletes every book matching f. The server reads the
// filters from the query string.
func (c *Client) BulkDeleteFiltered(ctx context.Context, f SearchFilters) (*models.BulkDeleteResponse, error) {
	var resp models.BulkDeleteResponse
	if err := c.requestJSON(ctx, http.MethodPost, bookBulkDeleteFiltered, f.Values(), nil, &resp); err != nil {
		return nil, fmt.Errorf("bulk delete filtered: %w", err)
	}
	return &resp, nil
}

// CreateBookWithCover uploads the book and its cover image in one
// multipart request.
func (c *Client) CreateBookWithCover(ctx context.Context, in models.BookInput, cover FilePart) (*models.Book, error) {
	return c.sendBookMultipart(ctx, http.MethodPost, c.Books().path, in, cover)
}

func (c *Client) UpdateBookWithCover(ctx context.Context, id int64, in models.BookInput, cover FilePart) (*models.Book, error) {
	return c.sendBookMultipart(ctx, http.MethodPatch, c.Books().itemPath(id), in, cover)
}

func (c *Client) sendBookMultipart(ctx context.Context, method, path string, in models.BookInput, cover FilePart) (*models.Book, error) {
	fields, err := formFields(in)
	if err != nil {
		return nil, err
	}
	if cover.Field == "" {
		cover.Field = "cover_image"
	}

	body, contentType, err := NewMultipartBody(fields, cover)
	if err != nil {
		return nil, err
	}

	header := make(http.Header)
	header.Set("Content-Type", contentType)
	b, err := c.RequestMultipart(ctx, path, RequestOptions{Method: method, Body: body, Header: header})
	if err != nil {
		return nil, err
	}

	var book models.Book
	if b == nil {
		return &book, nil
	}
	if err := b.Decode(&book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *Client) AddFavorite(ctx context.Context, bookID int64) (*models.Favorite, error) {
	return c.Favorites().Create(ctx, models.FavoriteCreateRequest{BookID: bookID})
}

func (c *Client) RemoveFavorite(ctx context.Context, favoriteID int64) error {
	return c.Favorites().Delete(ctx, favoriteID)
}

func (c *Client) ToggleFavorite(ctx context.Context, bookID int64) (*models.FavoriteToggleResponse, error) {
	var resp models.FavoriteToggleResponse
	req := models.FavoriteToggleRequest{BookID: bookID}
	if err := c.requestJSON(ctx, http.MethodPost, favoriteTogglePath, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
