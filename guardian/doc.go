// Package guardian provides a client for the Guardian content API tag search.
//
// The Guardian Open Platform exposes the tags used to organise its
// journalism. This package implements a small, single-call Go client for
// querying those tags by free-text term.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: the API client, sharing one pooled HTTP client across calls
//   - Types: domain models for search results, tags, sections and references
//   - API: interface definitions for testability and modularity
//   - Errors: structured error types for better error handling
//
// # Usage
//
// Create a client with your API key (an empty key sends unauthenticated
// requests) and run a search:
//
//	logger := zerolog.New(os.Stdout)
//	client := guardian.NewClient(
//		"your-api-key",
//		logger,
//		guardian.WithTimeout(15*time.Second),
//	)
//	defer client.Close()
//
//	ctx := context.Background()
//	result, err := client.SearchTags(ctx, guardian.Query{Term: "politics"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, tag := range result.Results {
//		fmt.Println(tag.ID, tag.WebTitle)
//	}
//
// # Features
//
//   - Context-aware API calls with proper cancellation
//   - Strict response decoding: a missing required field fails the decode
//   - Bounded-concurrency batch search across several terms
//   - Structured error types with classification methods
//   - Functional options for client configuration
//
// # Error Handling
//
// The package separates three failure classes:
//
//   - Transport errors (DNS, dial, timeout, cancellation) come back as
//     wrapped plain errors, never as an APIError
//   - ErrInvalidAPIKey: the API rejected the key
//   - APIError: any other API-level failure, carrying the HTTP status code.
//     An undecodable 2xx body carries ParseErrorCode instead of a status.
//
// API errors include helper methods for classification:
//
//	var apiErr *guardian.APIError
//	if errors.As(err, &apiErr) && apiErr.IsRateLimited() {
//		// back off
//	}
package guardian
