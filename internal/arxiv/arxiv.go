// Package arxiv queries the arXiv Atom API for paper metadata.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// apiBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var apiBase = "https://export.arxiv.org/api/query"

// Sort criteria accepted by the arXiv API.
const (
	SortSubmittedDate   = "submittedDate"
	SortLastUpdatedDate = "lastUpdatedDate"
	SortRelevance       = "relevance"

	OrderAscending  = "ascending"
	OrderDescending = "descending"
)

// Paper is a single catalog record. Published is the zero time when the
// feed omits or mangles the date; that is tolerated, not an error.
type Paper struct {
	ArxivID    string
	Title      string
	Abstract   string
	Authors    []string
	Categories []string
	Published  time.Time
}

// PopularCategories maps common arXiv category codes to display names.
var PopularCategories = map[string]string{
	"cs.AI":          "Artificial Intelligence",
	"cs.LG":          "Machine Learning",
	"cs.CL":          "Computation and Language",
	"cs.CV":          "Computer Vision",
	"cs.NE":          "Neural and Evolutionary Computing",
	"stat.ML":        "Machine Learning (Statistics)",
	"cs.RO":          "Robotics",
	"cs.IR":          "Information Retrieval",
	"cs.HC":          "Human-Computer Interaction",
	"physics.gen-ph": "General Physics",
	"math.OC":        "Optimization and Control",
	"quant-ph":       "Quantum Physics",
}

// Client fetches paper metadata from the arXiv API.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new arXiv client.
func NewClient() *Client {
	return &Client{
		httpClient: http.DefaultClient,
		userAgent:  "arxiv-rag/1.0",
	}
}

// Search queries arXiv and returns up to maxResults papers. The query
// supports the arXiv query syntax (e.g. "all:transformers", "cat:cs.AI").
func (c *Client) Search(ctx context.Context, query string, maxResults int, sortBy, sortOrder string) ([]Paper, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}
	if maxResults <= 0 {
		maxResults = 50
	}
	if sortBy == "" {
		sortBy = SortSubmittedDate
	}
	if sortOrder == "" {
		sortOrder = OrderDescending
	}

	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=%s&sortOrder=%s",
		apiBase, url.QueryEscape(query), maxResults, sortBy, sortOrder)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var papers []Paper
	for _, entry := range feed.Entries {
		arxivID := extractArxivID(entry.ID)
		if arxivID == "" {
			continue
		}

		p := Paper{
			ArxivID:  arxivID,
			Title:    collapseWhitespace(entry.Title),
			Abstract: collapseWhitespace(entry.Summary),
		}

		for _, a := range entry.Authors {
			p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
		}
		for _, cat := range entry.Categories {
			if cat.Term != "" {
				p.Categories = append(p.Categories, cat.Term)
			}
		}

		// A missing or malformed date leaves the zero time; the record
		// is still usable.
		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			p.Published = t
		}

		papers = append(papers, p)
	}
	return papers, nil
}

// FetchByCategory fetches papers from a single arXiv category (e.g. "cs.AI").
func (c *Client) FetchByCategory(ctx context.Context, category string, maxResults int) ([]Paper, error) {
	return c.Search(ctx, "cat:"+category, maxResults, SortSubmittedDate, OrderDescending)
}

// FetchRecent fetches recently submitted papers, optionally restricted to
// the given categories.
func (c *Client) FetchRecent(ctx context.Context, categories []string, maxResults int) ([]Paper, error) {
	query := "all"
	if len(categories) > 0 {
		parts := make([]string, len(categories))
		for i, cat := range categories {
			parts[i] = "cat:" + cat
		}
		query = strings.Join(parts, " OR ")
	}
	return c.Search(ctx, query, maxResults, SortSubmittedDate, OrderDescending)
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      string          `xml:"title"`
	Summary    string          `xml:"summary"`
	Published  string          `xml:"published"`
	Authors    []arxivAuthor   `xml:"author"`
	Categories []arxivCategory `xml:"category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" -> "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}

// collapseWhitespace trims the text and folds the feed's hard line wraps
// into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
