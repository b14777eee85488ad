package guardian

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope status values reported by the API
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Tag types known to the content API
const (
	TagTypeKeyword     = "keyword"
	TagTypeContributor = "contributor"
	TagTypeSeries      = "series"
	TagTypeTone        = "tone"
	TagTypeType        = "type"
	TagTypeBlog        = "blog"
	TagTypePublication = "publication"
)

// Query describes a single tag search
type Query struct {
	// Term is the free-text search term. Must be non-empty.
	Term string
}

// SearchResult represents one page of tag search results
type SearchResult struct {
	Status      string `json:"status"`
	Total       int    `json:"total"`
	StartIndex  int    `json:"startIndex"`
	PageSize    int    `json:"pageSize"`
	CurrentPage int    `json:"currentPage"`
	Pages       int    `json:"pages"`
	Results     []Tag  `json:"results"`
}

// HasMorePages reports whether the API holds further pages beyond this one
func (r *SearchResult) HasMorePages() bool {
	return r.CurrentPage < r.Pages
}

// Tag represents a single content tag
type Tag struct {
	ID                  string      `json:"id"`
	Type                string      `json:"type"`
	Section             *Section    `json:"section,omitempty"`
	WebTitle            string      `json:"webTitle"`
	WebURL              string      `json:"webUrl"`
	APIURL              string      `json:"apiUrl"`
	References          []Reference `json:"references,omitempty"`
	Bio                 string      `json:"bio,omitempty"`
	BylineImageURL      string      `json:"bylineImageUrl,omitempty"`
	LargeBylineImageURL string      `json:"bylineLargeImageUrl,omitempty"`
}

// HasSection reports whether the tag carries section information
func (t Tag) HasSection() bool {
	return t.Section != nil
}

// HasReference reports whether the tag carries a reference of the given type
func (t Tag) HasReference(refType string) bool {
	for _, ref := range t.References {
		if ref.Type == refType {
			return true
		}
	}
	return false
}

// IsContributor reports whether the tag describes a contributor
func (t Tag) IsContributor() bool {
	return t.Type == TagTypeContributor
}

// Section identifies the site section a tag belongs to. Tags outside any
// section (contributors, tones) carry no section at all.
type Section struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Reference links a tag to an entity in an external taxonomy
type Reference struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Wire types mirror the API's JSON shape. Pointer fields let the decoder
// tell a missing required field from a zero value.
type searchEnvelope struct {
	Response *searchResponseJSON `json:"response"`
}

type searchResponseJSON struct {
	Status      *string    `json:"status"`
	Total       *int       `json:"total"`
	StartIndex  *int       `json:"startIndex"`
	PageSize    *int       `json:"pageSize"`
	CurrentPage *int       `json:"currentPage"`
	Pages       *int       `json:"pages"`
	Results     *[]tagJSON `json:"results"`
}

type tagJSON struct {
	ID                  *string         `json:"id"`
	Type                *string         `json:"type"`
	SectionID           *string         `json:"sectionId"`
	SectionName         *string         `json:"sectionName"`
	WebTitle            *string         `json:"webTitle"`
	WebURL              *string         `json:"webUrl"`
	APIURL              *string         `json:"apiUrl"`
	References          []referenceJSON `json:"references"`
	Bio                 *string         `json:"bio"`
	BylineImageURL      *string         `json:"bylineImageUrl"`
	BylineLargeImageURL *string         `json:"bylineLargeImageUrl"`
}

type referenceJSON struct {
	Type *string `json:"type"`
	ID   *string `json:"id"`
}

// decodeSearchResult parses a response body into a SearchResult. Any
// missing required field fails the whole decode; no partial results.
func decodeSearchResult(data []byte) (*SearchResult, error) {
	var envelope searchEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}

	resp := envelope.Response
	if resp == nil {
		return nil, errors.New("missing response envelope")
	}

	for _, f := range []struct {
		name    string
		present bool
	}{
		{"status", resp.Status != nil},
		{"total", resp.Total != nil},
		{"startIndex", resp.StartIndex != nil},
		{"pageSize", resp.PageSize != nil},
		{"currentPage", resp.CurrentPage != nil},
		{"pages", resp.Pages != nil},
		{"results", resp.Results != nil},
	} {
		if !f.present {
			return nil, fmt.Errorf("response envelope missing %q", f.name)
		}
	}

	result := &SearchResult{
		Status:      *resp.Status,
		Total:       *resp.Total,
		StartIndex:  *resp.StartIndex,
		PageSize:    *resp.PageSize,
		CurrentPage: *resp.CurrentPage,
		Pages:       *resp.Pages,
		Results:     make([]Tag, 0, len(*resp.Results)),
	}

	for i, raw := range *resp.Results {
		tag, err := raw.toTag()
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		result.Results = append(result.Results, tag)
	}

	return result, nil
}

// toTag converts a wire tag to the domain type, validating required fields
func (t tagJSON) toTag() (Tag, error) {
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"id", t.ID},
		{"type", t.Type},
		{"webTitle", t.WebTitle},
		{"webUrl", t.WebURL},
		{"apiUrl", t.APIURL},
	} {
		if f.value == nil {
			return Tag{}, fmt.Errorf("tag missing %q", f.name)
		}
	}

	tag := Tag{
		ID:       *t.ID,
		Type:     *t.Type,
		WebTitle: *t.WebTitle,
		WebURL:   *t.WebURL,
		APIURL:   *t.APIURL,
	}

	// sectionId and sectionName travel as a pair. A lone half is dropped
	// rather than rejected.
	if t.SectionID != nil && t.SectionName != nil {
		tag.Section = &Section{ID: *t.SectionID, Name: *t.SectionName}
	}

	if t.Bio != nil {
		tag.Bio = *t.Bio
	}
	if t.BylineImageURL != nil {
		tag.BylineImageURL = *t.BylineImageURL
	}
	if t.BylineLargeImageURL != nil {
		tag.LargeBylineImageURL = *t.BylineLargeImageURL
	}

	for i, ref := range t.References {
		if ref.Type == nil || ref.ID == nil {
			return Tag{}, fmt.Errorf("reference %d missing type or id", i)
		}
		tag.References = append(tag.References, Reference{Type: *ref.Type, ID: *ref.ID})
	}

	return tag, nil
}
