package guardian

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// envelopeWith wraps tag JSON in a minimal valid response envelope
func envelopeWith(tags string) string {
	return `{"response":{"status":"ok","total":1,"startIndex":1,"pageSize":10,"currentPage":1,"pages":1,"results":[` + tags + `]}}`
}

func TestDecodeSearchResult(t *testing.T) {
	t.Run("empty results", func(t *testing.T) {
		body := `{"response":{"status":"ok","total":0,"startIndex":1,"pageSize":10,"currentPage":1,"pages":0,"results":[]}}`

		result, err := decodeSearchResult([]byte(body))
		require.NoError(t, err)

		assert.Equal(t, StatusOK, result.Status)
		assert.Equal(t, 0, result.Total)
		assert.Equal(t, 0, result.Pages)
		assert.NotNil(t, result.Results)
		assert.Empty(t, result.Results)
	})

	t.Run("unknown envelope fields are ignored", func(t *testing.T) {
		body := `{"response":{"status":"ok","userTier":"developer","total":0,"startIndex":1,"pageSize":10,"currentPage":1,"pages":0,"results":[]}}`

		result, err := decodeSearchResult([]byte(body))
		require.NoError(t, err)
		assert.Equal(t, 0, result.Total)
	})

	t.Run("section travels as a pair", func(t *testing.T) {
		body := envelopeWith(`{"id":"film/film","type":"keyword","sectionId":"film","sectionName":"Film","webTitle":"Film","webUrl":"https://www.theguardian.com/film/film","apiUrl":"https://content.guardianapis.com/film/film"}`)

		result, err := decodeSearchResult([]byte(body))
		require.NoError(t, err)
		require.Len(t, result.Results, 1)

		tag := result.Results[0]
		require.NotNil(t, tag.Section)
		assert.Equal(t, "film", tag.Section.ID)
		assert.Equal(t, "Film", tag.Section.Name)
	})

	t.Run("lone sectionId is dropped", func(t *testing.T) {
		body := envelopeWith(`{"id":"film/film","type":"keyword","sectionId":"film","webTitle":"Film","webUrl":"https://www.theguardian.com/film/film","apiUrl":"https://content.guardianapis.com/film/film"}`)

		result, err := decodeSearchResult([]byte(body))
		require.NoError(t, err)
		require.Len(t, result.Results, 1)
		assert.Nil(t, result.Results[0].Section)
	})

	t.Run("references", func(t *testing.T) {
		body := envelopeWith(`{"id":"football/arsenal","type":"keyword","sectionId":"football","sectionName":"Football","webTitle":"Arsenal","webUrl":"https://www.theguardian.com/football/arsenal","apiUrl":"https://content.guardianapis.com/football/arsenal","references":[{"type":"pa-football-team","id":"pa-football-team/19"},{"type":"opta-football-team","id":"opta-football-team/3"}]}`)

		result, err := decodeSearchResult([]byte(body))
		require.NoError(t, err)
		require.Len(t, result.Results, 1)

		tag := result.Results[0]
		require.Len(t, tag.References, 2)
		assert.Equal(t, "pa-football-team", tag.References[0].Type)
		assert.Equal(t, "pa-football-team/19", tag.References[0].ID)
		assert.True(t, tag.HasReference("opta-football-team"))
		assert.False(t, tag.HasReference("isbn"))
	})

	t.Run("absent optional fields stay zero", func(t *testing.T) {
		body := envelopeWith(`{"id":"tone/reviews","type":"tone","webTitle":"Reviews","webUrl":"https://www.theguardian.com/tone/reviews","apiUrl":"https://content.guardianapis.com/tone/reviews"}`)

		result, err := decodeSearchResult([]byte(body))
		require.NoError(t, err)
		require.Len(t, result.Results, 1)

		tag := result.Results[0]
		assert.Nil(t, tag.Section)
		assert.Nil(t, tag.References)
		assert.Empty(t, tag.Bio)
		assert.Empty(t, tag.BylineImageURL)
		assert.Empty(t, tag.LargeBylineImageURL)
	})
}

func TestDecodeSearchResultErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "invalid json",
			body:    `{`,
			wantErr: "unexpected end of JSON input",
		},
		{
			name:    "missing response envelope",
			body:    `{}`,
			wantErr: "missing response envelope",
		},
		{
			name:    "envelope of wrong type",
			body:    `{"response": 3}`,
			wantErr: "cannot unmarshal",
		},
		{
			name:    "missing status",
			body:    `{"response":{"total":0,"startIndex":1,"pageSize":10,"currentPage":1,"pages":0,"results":[]}}`,
			wantErr: `missing "status"`,
		},
		{
			name:    "missing pages",
			body:    `{"response":{"status":"ok","total":0,"startIndex":1,"pageSize":10,"currentPage":1,"results":[]}}`,
			wantErr: `missing "pages"`,
		},
		{
			name:    "missing results",
			body:    `{"response":{"status":"ok","total":0,"startIndex":1,"pageSize":10,"currentPage":1,"pages":0}}`,
			wantErr: `missing "results"`,
		},
		{
			name:    "tag missing id",
			body:    envelopeWith(`{"type":"keyword","webTitle":"Politics","webUrl":"https://www.theguardian.com/politics/politics","apiUrl":"https://content.guardianapis.com/politics/politics"}`),
			wantErr: `result 0: tag missing "id"`,
		},
		{
			name:    "tag missing webUrl",
			body:    envelopeWith(`{"id":"politics/politics","type":"keyword","webTitle":"Politics","apiUrl":"https://content.guardianapis.com/politics/politics"}`),
			wantErr: `result 0: tag missing "webUrl"`,
		},
		{
			name:    "second tag broken",
			body:    envelopeWith(`{"id":"politics/politics","type":"keyword","webTitle":"Politics","webUrl":"https://www.theguardian.com/politics/politics","apiUrl":"https://content.guardianapis.com/politics/politics"},{"id":"politics/eu","type":"keyword"}`),
			wantErr: `result 1: tag missing`,
		},
		{
			name:    "reference missing id",
			body:    envelopeWith(`{"id":"football/arsenal","type":"keyword","webTitle":"Arsenal","webUrl":"https://www.theguardian.com/football/arsenal","apiUrl":"https://content.guardianapis.com/football/arsenal","references":[{"type":"pa-football-team"}]}`),
			wantErr: "reference 0 missing type or id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeSearchResult([]byte(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// encodeSearchResult mirrors the wire schema, for round-trip testing only
func encodeSearchResult(t *testing.T, result *SearchResult) []byte {
	t.Helper()

	tags := make([]map[string]any, 0, len(result.Results))
	for _, tag := range result.Results {
		wire := map[string]any{
			"id":       tag.ID,
			"type":     tag.Type,
			"webTitle": tag.WebTitle,
			"webUrl":   tag.WebURL,
			"apiUrl":   tag.APIURL,
		}
		if tag.Section != nil {
			wire["sectionId"] = tag.Section.ID
			wire["sectionName"] = tag.Section.Name
		}
		if len(tag.References) > 0 {
			refs := make([]map[string]string, 0, len(tag.References))
			for _, ref := range tag.References {
				refs = append(refs, map[string]string{"type": ref.Type, "id": ref.ID})
			}
			wire["references"] = refs
		}
		if tag.Bio != "" {
			wire["bio"] = tag.Bio
		}
		if tag.BylineImageURL != "" {
			wire["bylineImageUrl"] = tag.BylineImageURL
		}
		if tag.LargeBylineImageURL != "" {
			wire["bylineLargeImageUrl"] = tag.LargeBylineImageURL
		}
		tags = append(tags, wire)
	}

	body, err := json.Marshal(map[string]any{
		"response": map[string]any{
			"status":      result.Status,
			"total":       result.Total,
			"startIndex":  result.StartIndex,
			"pageSize":    result.PageSize,
			"currentPage": result.CurrentPage,
			"pages":       result.Pages,
			"results":     tags,
		},
	})
	require.NoError(t, err)
	return body
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	body := envelopeWith(`{"id":"football/arsenal","type":"keyword","sectionId":"football","sectionName":"Football","webTitle":"Arsenal","webUrl":"https://www.theguardian.com/football/arsenal","apiUrl":"https://content.guardianapis.com/football/arsenal","references":[{"type":"pa-football-team","id":"pa-football-team/19"}]},{"id":"profile/andrewsparrow","type":"contributor","webTitle":"Andrew Sparrow","webUrl":"https://www.theguardian.com/profile/andrewsparrow","apiUrl":"https://content.guardianapis.com/profile/andrewsparrow","bio":"<p>Political correspondent</p>","bylineImageUrl":"https://uploads.guim.co.uk/small.jpg","bylineLargeImageUrl":"https://uploads.guim.co.uk/large.jpg"}`)

	first, err := decodeSearchResult([]byte(body))
	require.NoError(t, err)
	require.Len(t, first.Results, 2)

	second, err := decodeSearchResult(encodeSearchResult(t, first))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTagHelpers(t *testing.T) {
	t.Run("HasSection", func(t *testing.T) {
		tag := Tag{Section: &Section{ID: "politics", Name: "Politics"}}
		assert.True(t, tag.HasSection())

		tag.Section = nil
		assert.False(t, tag.HasSection())
	})

	t.Run("IsContributor", func(t *testing.T) {
		assert.True(t, Tag{Type: TagTypeContributor}.IsContributor())
		assert.False(t, Tag{Type: TagTypeKeyword}.IsContributor())
	})
}

func TestSearchResultHasMorePages(t *testing.T) {
	result := SearchResult{CurrentPage: 1, Pages: 3}
	assert.True(t, result.HasMorePages())

	result.CurrentPage = 3
	assert.False(t, result.HasMorePages())
}
