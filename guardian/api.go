package guardian

import (
	"context"
)

// API defines the interface for tag search operations
type API interface {
	// SearchTags runs a single tag search
	SearchTags(ctx context.Context, query Query) (*SearchResult, error)

	// BatchSearchTags runs several independent searches concurrently
	BatchSearchTags(ctx context.Context, queries []Query) (map[string]*SearchResult, error)
}

// TagSearcher is the narrow seam for callers that only run single searches
type TagSearcher interface {
	// SearchTags runs a single tag search
	SearchTags(ctx context.Context, query Query) (*SearchResult, error)
}
