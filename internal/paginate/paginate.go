// Package paginate drains paged listing endpoints into a single slice.
package paginate

import (
	"context"
	"fmt"

	"github.com/starford/randomnote/internal/models"
)

// FetchFunc requests a single page.
type FetchFunc[T any] func(ctx context.Context, q models.Query) (models.Page[T], error)

// Collect requests pages 1, 2, ... until a page reports no further items and
// returns every item in order. Pages are fetched strictly one after another
// because HasMore is only known once a page has returned. A fetch error
// aborts collection; recovering from it is the caller's decision.
func Collect[T any](ctx context.Context, fields []string, fetch FetchFunc[T]) ([]T, error) {
	out := []T{}
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := fetch(ctx, models.Query{
			Fields: fields,
			Page:   page,
			Limit:  models.PageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("paginate: page %d: %w", page, err)
		}
		out = append(out, res.Items...)
		if !res.HasMore {
			return out, nil
		}
	}
}
