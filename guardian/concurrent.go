package guardian

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds how many searches run at once
const DefaultBatchConcurrency = 5

// BatchSearchTags runs one search per query concurrently and collects the
// results keyed by term. Duplicate terms collapse to a single entry. The
// first failure cancels the remaining searches.
func (c *Client) BatchSearchTags(ctx context.Context, queries []Query) (map[string]*SearchResult, error) {
	results := make(map[string]*SearchResult, len(queries))
	if len(queries) == 0 {
		return results, nil
	}

	// Create error group with limited concurrency
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.batchConcurrency)

	// Use mutex to protect concurrent writes
	var mu sync.Mutex

	for _, query := range queries {
		g.Go(func() error {
			result, err := c.SearchTags(ctx, query)
			if err != nil {
				return fmt.Errorf("search %q: %w", query.Term, err)
			}

			mu.Lock()
			results[query.Term] = result
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
