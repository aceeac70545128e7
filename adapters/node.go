package adapters

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Node is the slice of DOM behaviour the extraction rules rely on. It lets
// the rules run against any tree, not only a live browser page.
type Node interface {
	// QueryAll returns the descendants matching a CSS selector, in document order
	QueryAll(selector string) []Node
	// Attribute returns the value of an attribute and whether it is set
	Attribute(name string) (string, bool)
	// Text returns the combined text of the node and its descendants
	Text() string
}

// selectionNode adapts a single-element goquery selection to Node
type selectionNode struct {
	sel *goquery.Selection
}

// NewDocument parses HTML into a Node rooted at the document
func NewDocument(html string) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return selectionNode{sel: doc.Selection}, nil
}

func (n selectionNode) QueryAll(selector string) []Node {
	found := n.sel.Find(selector)
	nodes := make([]Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, selectionNode{sel: s})
	})
	return nodes
}

func (n selectionNode) Attribute(name string) (string, bool) {
	return n.sel.Attr(name)
}

func (n selectionNode) Text() string {
	return n.sel.Text()
}

// first returns the first descendant matching selector, or nil
func first(n Node, selector string) Node {
	if n == nil {
		return nil
	}
	nodes := n.QueryAll(selector)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}
