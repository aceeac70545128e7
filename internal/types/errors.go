package types

import "fmt"

// NavigationError is returned when a listing page could not be loaded.
// No result file is written after it.
type NavigationError struct {
	URL  string
	Page int
	Err  error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation failed on page %d (%s): %v", e.Page, e.URL, e.Err)
}

// Unwrap returns the underlying error
func (e *NavigationError) Unwrap() error {
	return e.Err
}

// ExtractionError is returned when a product node on a page could not be
// mapped to a Product. The whole page is discarded.
type ExtractionError struct {
	Page  int
	Index int
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed on page %d, product %d: %v", e.Page, e.Index, e.Err)
}

// Unwrap returns the underlying error
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// WriteError is returned when the scraped records could not be persisted.
// Scraping itself completed.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write results to %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *WriteError) Unwrap() error {
	return e.Err
}
