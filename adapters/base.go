package adapters

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"dns-parser/internal/types"
)

// ContentSource returns the rendered HTML of a URL. The browser client and
// the plain HTTP client both satisfy it.
type ContentSource interface {
	GetPageContent(ctx context.Context, url string) (string, error)
	Close() error
}

// PageFetcher loads numbered listing pages and parses them into Nodes
type PageFetcher struct {
	source ContentSource
	logger types.Logger
}

// NewPageFetcher creates a fetcher on top of a content source
func NewPageFetcher(source ContentSource, logger types.Logger) *PageFetcher {
	return &PageFetcher{
		source: source,
		logger: logger,
	}
}

// PageURL builds the address of a listing page. Page 1 is the base URL
// verbatim; later pages carry the index in the "p" query parameter.
func PageURL(baseURL string, pageIndex int) (string, error) {
	if pageIndex < 1 {
		return "", fmt.Errorf("page index must be at least 1, got %d", pageIndex)
	}
	if pageIndex == 1 {
		return baseURL, nil
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	q := u.Query()
	q.Set("p", strconv.Itoa(pageIndex))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch loads a listing page and returns its document. Every failure is
// reported as a *types.NavigationError.
func (f *PageFetcher) Fetch(ctx context.Context, baseURL string, pageIndex int) (Node, error) {
	pageURL, err := PageURL(baseURL, pageIndex)
	if err != nil {
		return nil, &types.NavigationError{URL: baseURL, Page: pageIndex, Err: err}
	}

	f.logger.Debugf("Fetching page %d: %s", pageIndex, pageURL)

	html, err := f.source.GetPageContent(ctx, pageURL)
	if err != nil {
		return nil, &types.NavigationError{URL: pageURL, Page: pageIndex, Err: err}
	}

	doc, err := NewDocument(html)
	if err != nil {
		return nil, &types.NavigationError{URL: pageURL, Page: pageIndex, Err: err}
	}
	return doc, nil
}

// Close releases the underlying content source
func (f *PageFetcher) Close() error {
	return f.source.Close()
}
