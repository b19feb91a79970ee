package arxiv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.07041v2</id>
    <title>Attention Is
 Not All You Need</title>
    <summary>We study the limits
 of attention mechanisms.</summary>
    <published>2023-01-17T12:00:00Z</published>
    <author><name>Alice Author</name></author>
    <author><name>Bob Builder</name></author>
    <category term="cs.LG"/>
    <category term="cs.AI"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2105.00001v1</id>
    <title>A Second Paper</title>
    <summary>Abstract two.</summary>
    <published>not-a-date</published>
    <author><name>Carol Curie</name></author>
    <category term="quant-ph"/>
  </entry>
</feed>`

func TestClientSearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	oldBase := apiBase
	apiBase = srv.URL
	defer func() { apiBase = oldBase }()

	c := NewClient()
	papers, err := c.Search(context.Background(), "all:attention", 10, SortRelevance, OrderDescending)
	require.NoError(t, err)
	require.Len(t, papers, 2)

	assert.Contains(t, gotQuery, "search_query=all%3Aattention")
	assert.Contains(t, gotQuery, "max_results=10")
	assert.Contains(t, gotQuery, "sortBy=relevance")
	assert.Contains(t, gotQuery, "sortOrder=descending")

	first := papers[0]
	assert.Equal(t, "2301.07041", first.ArxivID, "version suffix should be stripped")
	assert.Equal(t, "Attention Is Not All You Need", first.Title, "feed line wraps should collapse")
	assert.Equal(t, "We study the limits of attention mechanisms.", first.Abstract)
	assert.Equal(t, []string{"Alice Author", "Bob Builder"}, first.Authors)
	assert.Equal(t, []string{"cs.LG", "cs.AI"}, first.Categories)
	assert.Equal(t, time.Date(2023, 1, 17, 12, 0, 0, 0, time.UTC), first.Published)

	// A malformed date is tolerated, not an error.
	second := papers[1]
	assert.Equal(t, "2105.00001", second.ArxivID)
	assert.True(t, second.Published.IsZero())
}

func TestClientSearchEmptyQuery(t *testing.T) {
	c := NewClient()
	_, err := c.Search(context.Background(), "  ", 10, "", "")
	assert.Error(t, err)
}

func TestClientSearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	oldBase := apiBase
	apiBase = srv.URL
	defer func() { apiBase = oldBase }()

	c := NewClient()
	_, err := c.Search(context.Background(), "all:x", 5, "", "")
	assert.ErrorContains(t, err, "HTTP 503")
}

func TestClientFetchByCategory(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	oldBase := apiBase
	apiBase = srv.URL
	defer func() { apiBase = oldBase }()

	c := NewClient()
	_, err := c.FetchByCategory(context.Background(), "cs.AI", 25)
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "search_query=cat%3Acs.AI")
	assert.Contains(t, gotQuery, "sortBy=submittedDate")
}

func TestClientFetchRecent(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	oldBase := apiBase
	apiBase = srv.URL
	defer func() { apiBase = oldBase }()

	c := NewClient()
	_, err := c.FetchRecent(context.Background(), []string{"cs.AI", "cs.LG"}, 5)
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "search_query=cat%3Acs.AI+OR+cat%3Acs.LG")
}

func TestPopularCategories(t *testing.T) {
	require.NotEmpty(t, PopularCategories)
	assert.Equal(t, "Artificial Intelligence", PopularCategories["cs.AI"])
	for code, name := range PopularCategories {
		assert.NotEmpty(t, name, "category %s has no display name", code)
	}
}

func TestExtractArxivID(t *testing.T) {
	tests := []struct {
		name  string
		idURL string
		want  string
	}{
		{"with version", "http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"multi digit version", "http://arxiv.org/abs/2301.07041v12", "2301.07041"},
		{"without version", "http://arxiv.org/abs/2301.07041", "2301.07041"},
		{"old style id", "http://arxiv.org/abs/quant-ph/0201082v1", "quant-ph/0201082"},
		{"not an abs url", "http://example.com/xyz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractArxivID(tt.idURL))
		})
	}
}
