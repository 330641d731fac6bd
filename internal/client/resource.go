package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rryowa/bookstore/internal/models"
)

// Resource is a REST collection under the API root supporting list, detail,
// create, partial update and delete.
type Resource[T any] struct {
	c    *Client
	path string
}

func newResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: path}
}

func (r *Resource[T]) Path() string { return r.path }

// List accepts both a paginated envelope and a bare list.
func (r *Resource[T]) List(ctx context.Context, params Params) (*models.Page[T], error) {
	var page models.Page[T]
	if err := r.c.requestJSON(ctx, http.MethodGet, r.path, params.Values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// All returns the list portion of List.
func (r *Resource[T]) All(ctx context.Context, params Params) ([]T, error) {
	page, err := r.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := r.c.requestJSON(ctx, http.MethodGet, r.itemPath(id), nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T]) Create(ctx context.Context, in any) (*T, error) {
	var item T
	if err := r.c.requestJSON(ctx, http.MethodPost, r.path, nil, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T]) Update(ctx context.Context, id int64, patch any) (*T, error) {
	var item T
	if err := r.c.requestJSON(ctx, http.MethodPatch, r.itemPath(id), nil, patch, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.c.requestJSON(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
}

// searchAll calls the unpaginated search_all action (first 100 matches).
func (r *Resource[T]) searchAll(ctx context.Context, text string) ([]T, error) {
	var items []T
	q := Params{"search": text}.Values()
	if err := r.c.requestJSON(ctx, http.MethodGet, r.path+"search_all/", q, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Resource[T]) itemPath(id int64) string {
	return r.path + url.PathEscape(strconv.FormatInt(id, 10)) + "/"
}

func (c *Client) Books() *Resource[models.Book]           { return newResource[models.Book](c, "/books/") }
func (c *Client) Categories() *Resource[models.Category]  { return newResource[models.Category](c, "/categories/") }
func (c *Client) Authors() *Resource[models.Author]       { return newResource[models.Author](c, "/authors/") }
func (c *Client) Genres() *Resource[models.Genre]         { return newResource[models.Genre](c, "/genres/") }
func (c *Client) Characters() *Resource[models.Character] { return newResource[models.Character](c, "/characters/") }
func (c *Client) Awards() *Resource[models.Award]         { return newResource[models.Award](c, "/awards/") }
func (c *Client) Publishers() *Resource[models.Publisher] { return newResource[models.Publisher](c, "/publishers/") }
func (c *Client) Languages() *Resource[models.Language]   { return newResource[models.Language](c, "/languages/") }
func (c *Client) Series() *Resource[models.Series]        { return newResource[models.Series](c, "/series/") }
func (c *Client) Favorites() *Resource[models.Favorite]   { return newResource[models.Favorite](c, "/favorites/") }

func (c *Client) SearchAllAuthors(ctx context.Context, text string) ([]models.Author, error) {
	return c.Authors().searchAll(ctx, text)
}

func (c *Client) SearchAllCategories(ctx context.Context, text string) ([]models.Category, error) {
	return c.Categories().searchAll(ctx, text)
}
