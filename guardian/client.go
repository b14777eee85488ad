package guardian

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public endpoint of the content API
const DefaultBaseURL = "https://content.guardianapis.com"

// defaultTimeout bounds a single search round trip
const defaultTimeout = 30 * time.Second

// Client represents a content API client
type Client struct {
	baseURL          string
	apiKey           string
	httpClient       *http.Client
	logger           zerolog.Logger
	batchConcurrency int
}

// NewClient creates a new content API client. The API key may be empty;
// requests then go out unauthenticated and the API decides their fate.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) *Client {
	options := clientOptions{
		baseURL:          DefaultBaseURL,
		timeout:          defaultTimeout,
		batchConcurrency: DefaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(&options)
	}

	// Ensure baseURL doesn't have a trailing slash
	baseURL := options.baseURL
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: options.timeout,
		}
	}

	return &Client{
		baseURL:          baseURL,
		apiKey:           apiKey,
		httpClient:       httpClient,
		logger:           logger,
		batchConcurrency: options.batchConcurrency,
	}
}

// searchURL builds the tag search URL for a query. The API key travels as
// a query parameter and is only appended when the client holds one.
func (c *Client) searchURL(query Query) string {
	params := url.Values{}
	params.Set("q", query.Term)
	if c.apiKey != "" {
		params.Set("api-key", c.apiKey)
	}

	return fmt.Sprintf("%s/tags?%s", c.baseURL, params.Encode())
}

// SearchTags runs a single tag search round trip against the API
func (c *Client) SearchTags(ctx context.Context, query Query) (*SearchResult, error) {
	if query.Term == "" {
		return nil, ErrEmptyTerm
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("term", query.Term).
		Msg("Searching tags")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.Header.Get(masheryErrorHeader) == masheryDeveloperInactive {
			return nil, ErrInvalidAPIKey
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	result, err := decodeSearchResult(body)
	if err != nil {
		return nil, &APIError{
			StatusCode: ParseErrorCode,
			Message:    "Parse Error",
			Err:        err,
		}
	}

	c.logger.Debug().
		Str("term", query.Term).
		Int("total", result.Total).
		Int("page", result.CurrentPage).
		Int("pages", result.Pages).
		Msg("Tag search completed")

	return result, nil
}

// Close releases idle connections held by the shared HTTP client
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
