package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/amishk599/jobping/internal/model"
)

var _ model.PageFetcher = (*LinkedInAdapter)(nil)

// SearchQuery is the fixed search sent on every pass.
type SearchQuery struct {
	URL       string
	Keywords  string
	Location  string
	Trk       string
	Position  int
	PageNum   int
	UserAgent string
}

// LinkedInAdapter fetches the first page of a public LinkedIn job search.
type LinkedInAdapter struct {
	query  SearchQuery
	client *http.Client
}

// NewLinkedInAdapter creates an adapter for the given search.
func NewLinkedInAdapter(query SearchQuery, client *http.Client) *LinkedInAdapter {
	return &LinkedInAdapter{
		query:  query,
		client: client,
	}
}

// FetchPage performs one GET and returns the response body as markup.
func (a *LinkedInAdapter) FetchPage(ctx context.Context) (string, error) {
	u, err := url.Parse(a.query.URL)
	if err != nil {
		return "", fmt.Errorf("linkedin fetch: parsing search url: %w", err)
	}
	params := url.Values{}
	params.Set("keywords", a.query.Keywords)
	params.Set("location", a.query.Location)
	params.Set("trk", a.query.Trk)
	params.Set("position", strconv.Itoa(a.query.Position))
	params.Set("pageNum", strconv.Itoa(a.query.PageNum))
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("linkedin fetch: %w", err)
	}
	if a.query.UserAgent != "" {
		req.Header.Set("User-Agent", a.query.UserAgent)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("linkedin fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("linkedin fetch for %q: unexpected status %d", a.query.Keywords, resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("linkedin fetch: reading body: %w", err)
	}
	return string(body), nil
}
