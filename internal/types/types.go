package types

import "time"

const (
	// NoPrice stands in for the price text when a product has no price node.
	NoPrice = "NO-PRICE"
	// NoLink is stored when a product has no name link or the link has no href.
	NoLink = "NO-LINK"
)

// Product represents a single catalog entry scraped from a listing page.
// Title is nil when the product has no label node, and is then left out of
// the JSON; an empty label is kept as "".
type Product struct {
	Title  *string `json:"title,omitempty"`
	Price  int     `json:"price"`
	Link   string  `json:"link"`
	IsSale bool    `json:"isSale"`
}

// Selectors holds the CSS markers the listing markup is expected to carry
type Selectors struct {
	Product   string
	Price     string
	PrevPrice string
	Name      string
	Title     string
}

// Config holds the configuration for the parser
type Config struct {
	BaseURL      string
	Origin       string
	Headless     bool
	HTTPOnly     bool
	Timeout      time.Duration
	MaxPages     int
	StopOnRepeat bool
	OutputDir    string
	FilePrefix   string
	UserAgent    string
	Selectors    Selectors
}

// DefaultSelectors returns the dns-shop.ru listing markers
func DefaultSelectors() Selectors {
	return Selectors{
		Product:   ".catalog-product",
		Price:     ".product-buy__price",
		PrevPrice: ".product-buy__prev",
		Name:      ".catalog-product__name",
		Title:     "span",
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Origin:       "https://www.dns-shop.ru",
		Headless:     true,
		Timeout:      60 * time.Second,
		MaxPages:     500,
		StopOnRepeat: true,
		OutputDir:    "parse-results",
		FilePrefix:   "dns-parse",
		UserAgent:    "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Selectors:    DefaultSelectors(),
	}
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
