package guardian

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const batchBodyFormat = `{"response":{"status":"ok","total":1,"startIndex":1,"pageSize":10,"currentPage":1,"pages":1,"results":[{"id":"%[1]s/%[1]s","type":"keyword","webTitle":"%[1]s","webUrl":"https://www.theguardian.com/%[1]s","apiUrl":"https://content.guardianapis.com/%[1]s"}]}}`

func TestBatchSearchTags(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("searches all terms", func(t *testing.T) {
		var requests atomic.Int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			fmt.Fprintf(w, batchBodyFormat, r.URL.Query().Get("q"))
		}))
		defer server.Close()

		client := NewClient("", logger, WithBaseURL(server.URL))
		queries := []Query{{Term: "politics"}, {Term: "film"}, {Term: "science"}}

		results, err := client.BatchSearchTags(ctx, queries)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, int64(3), requests.Load())

		for _, q := range queries {
			result, ok := results[q.Term]
			require.True(t, ok, "missing result for %q", q.Term)
			require.Len(t, result.Results, 1)
			assert.Equal(t, q.Term, result.Results[0].WebTitle)
		}
	})

	t.Run("no queries", func(t *testing.T) {
		client := NewClient("", logger)
		results, err := client.BatchSearchTags(ctx, nil)
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("failure surfaces the term", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("q") == "broken" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			fmt.Fprintf(w, batchBodyFormat, r.URL.Query().Get("q"))
		}))
		defer server.Close()

		client := NewClient("", logger, WithBaseURL(server.URL))
		_, err := client.BatchSearchTags(ctx, []Query{{Term: "politics"}, {Term: "broken"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"broken"`)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	})

	t.Run("empty term fails the batch", func(t *testing.T) {
		client := NewClient("", logger)
		_, err := client.BatchSearchTags(ctx, []Query{{Term: ""}})
		require.ErrorIs(t, err, ErrEmptyTerm)
	})
}
