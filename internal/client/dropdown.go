package client

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rryowa/bookstore/internal/models"
)

// DropdownData loads the six reference lists concurrently. Any failure fails
// the whole call; no partial result is returned.
func (c *Client) DropdownData(ctx context.Context) (*models.DropdownData, error) {
	var data models.DropdownData

	g, gctx := errgroup.WithContext(ctx)
	g.Go(fetchAll(gctx, c.Categories(), &data.Categories))
	g.Go(fetchAll(gctx, c.Authors(), &data.Authors))
	g.Go(fetchAll(gctx, c.Publishers(), &data.Publishers))
	g.Go(fetchAll(gctx, c.Languages(), &data.Languages))
	g.Go(fetchAll(gctx, c.Series(), &data.Series))
	g.Go(fetchAll(gctx, c.Genres(), &data.Genres))

	if err := g.Wait(); err != nil {
		c.log.Errorw("Failed to load dropdown data", "error", err)
		return nil, err
	}
	return &data, nil
}

func fetchAll[T any](ctx context.Context, r *Resource[T], dst *[]T) func() error {
	return func() error {
		items, err := r.All(ctx, nil)
		if err != nil {
			return err
		}
		*dst = items
		return nil
	}
}
