package adapters

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"dns-parser/internal/types"
)

var digitsRegex = regexp.MustCompile(`\d+`)

// DNSAdapter maps dns-shop.ru catalog markup to products
type DNSAdapter struct {
	origin    string
	selectors types.Selectors
}

// NewDNSAdapter creates an adapter using the configured origin and selectors
func NewDNSAdapter(config *types.Config) *DNSAdapter {
	return &DNSAdapter{
		origin:    config.Origin,
		selectors: config.Selectors,
	}
}

// ExtractProducts maps every catalog product node in doc to a Product.
// A page without product nodes yields an empty slice. If any node cannot be
// mapped, the whole page fails with a *types.ExtractionError whose Page is
// left for the caller to fill in.
func (a *DNSAdapter) ExtractProducts(doc Node) ([]types.Product, error) {
	nodes := doc.QueryAll(a.selectors.Product)
	products := make([]types.Product, 0, len(nodes))

	for i, node := range nodes {
		product, err := a.extractProduct(node)
		if err != nil {
			return nil, &types.ExtractionError{Index: i, Err: err}
		}
		products = append(products, product)
	}

	return products, nil
}

func (a *DNSAdapter) extractProduct(node Node) (types.Product, error) {
	priceNode := first(node, a.selectors.Price)
	prevNode := first(priceNode, a.selectors.PrevPrice)
	isSale := prevNode != nil

	priceText := types.NoPrice
	switch {
	case isSale:
		priceText = prevNode.Text()
	case priceNode != nil:
		priceText = priceNode.Text()
	}

	price, err := ParsePrice(priceText)
	if err != nil {
		return types.Product{}, err
	}

	link := types.NoLink
	var title *string
	if nameNode := first(node, a.selectors.Name); nameNode != nil {
		if href, ok := nameNode.Attribute("href"); ok && href != "" {
			link = a.origin + href
		}
		if titleNode := first(nameNode, a.selectors.Title); titleNode != nil {
			text := strings.TrimSpace(titleNode.Text())
			title = &text
		}
	}

	return types.Product{
		Title:  title,
		Price:  price,
		Link:   link,
		IsSale: isSale,
	}, nil
}

// ParsePrice strips all whitespace from text and converts the first run of
// digits to an int, so "12 990 ₽" becomes 12990.
func ParsePrice(text string) (int, error) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	digits := digitsRegex.FindString(compact)
	if digits == "" {
		return 0, fmt.Errorf("no digits in price %q", text)
	}

	price, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", text, err)
	}
	return price, nil
}
