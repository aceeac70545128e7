package extractor

import (
	"context"
	"errors"
	"slices"
	"time"

	"dns-parser/adapters"
	"dns-parser/internal/types"
)

// Result describes a completed run
type Result struct {
	Products []types.Product
	Pages    int
	Path     string
}

// DNSExtractor walks the numbered listing pages of one catalog until a page
// comes back without products, then writes everything it collected.
type DNSExtractor struct {
	config  *types.Config
	fetcher *adapters.PageFetcher
	adapter *adapters.DNSAdapter
	writer  *ResultWriter
	logger  types.Logger
	onPage  func(page int)
}

// NewDNSExtractor creates an extractor reading pages from source
func NewDNSExtractor(config *types.Config, source adapters.ContentSource, logger types.Logger) *DNSExtractor {
	return &DNSExtractor{
		config:  config,
		fetcher: adapters.NewPageFetcher(source, logger),
		adapter: adapters.NewDNSAdapter(config),
		writer:  NewResultWriter(config, logger),
		logger:  logger,
	}
}

// OnPage registers a callback invoked before each page is fetched
func (d *DNSExtractor) OnPage(fn func(page int)) {
	d.onPage = fn
}

// ExtractAll collects products page by page. It stops successfully on the
// first page without products, when MaxPages is reached, or when a page
// repeats the previous one. Any fetch or extraction error ends the walk
// and is returned as is.
func (d *DNSExtractor) ExtractAll(ctx context.Context) ([]types.Product, int, error) {
	startTime := time.Now()
	d.logger.Infof("Starting extraction of %s", d.config.BaseURL)

	products := []types.Product{}
	var prevPage []types.Product
	pageIndex := 1

	for {
		if d.config.MaxPages > 0 && pageIndex > d.config.MaxPages {
			d.logger.Warnf("Reached page limit of %d, stopping", d.config.MaxPages)
			break
		}
		if err := ctx.Err(); err != nil {
			pageURL, _ := adapters.PageURL(d.config.BaseURL, pageIndex)
			return nil, pageIndex - 1, &types.NavigationError{URL: pageURL, Page: pageIndex, Err: err}
		}
		if d.onPage != nil {
			d.onPage(pageIndex)
		}

		doc, err := d.fetcher.Fetch(ctx, d.config.BaseURL, pageIndex)
		if err != nil {
			return nil, pageIndex - 1, err
		}

		pageProducts, err := d.adapter.ExtractProducts(doc)
		if err != nil {
			var extractionErr *types.ExtractionError
			if errors.As(err, &extractionErr) {
				extractionErr.Page = pageIndex
			}
			return nil, pageIndex - 1, err
		}

		if len(pageProducts) == 0 {
			d.logger.Infof("Page %d has no products, stopping", pageIndex)
			break
		}

		if d.config.StopOnRepeat && samePage(pageProducts, prevPage) {
			d.logger.Warnf("Page %d repeats page %d, stopping", pageIndex, pageIndex-1)
			break
		}
		prevPage = pageProducts

		products = append(products, pageProducts...)
		d.logger.Debugf("Page %d: %d products (%d total)", pageIndex, len(pageProducts), len(products))
		pageIndex++
	}

	d.logger.Infof("Extraction completed in %v: %d products from %d pages", time.Since(startTime), len(products), pageIndex-1)
	return products, pageIndex - 1, nil
}

// Run extracts all pages, releases the page source and writes the results.
// The source is closed on every path before anything is written.
func (d *DNSExtractor) Run(ctx context.Context) (*Result, error) {
	products, pages, err := d.ExtractAll(ctx)

	if closeErr := d.Close(); closeErr != nil {
		d.logger.Warnf("Failed to close page source: %v", closeErr)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{Products: products, Pages: pages}
	path, err := d.writer.Write(products)
	if err != nil {
		return result, err
	}
	result.Path = path

	d.logger.Infof("Results saved to %s", path)
	return result, nil
}

// Close cleans up resources
func (d *DNSExtractor) Close() error {
	return d.fetcher.Close()
}

// samePage reports whether two pages carry the same records in the same
// order. Pages with a link-less product are never considered equal, since
// NO-LINK says nothing about which product it is.
func samePage(a, b []types.Product) bool {
	return slices.EqualFunc(a, b, func(x, y types.Product) bool {
		if x.Link == types.NoLink || y.Link == types.NoLink {
			return false
		}
		return x.Link == y.Link &&
			x.Price == y.Price &&
			x.IsSale == y.IsSale &&
			sameTitle(x.Title, y.Title)
	})
}

func sameTitle(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
