// Package goquery implements the pricewatch document-tree contract on top
// of github.com/PuerkitoBio/goquery. Traversal follows net/html's document
// order, which makes pattern searches deterministic for a given input.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pricewatch"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var (
	_ pricewatch.Node   = (*Node)(nil)
	_ pricewatch.Parser = (*Parser)(nil)
)

// Parser parses raw HTML into pricewatch document trees.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses raw HTML and returns the document root node.
func (p *Parser) Parse(rawHTML string) (pricewatch.Node, error) {
	return Parse(rawHTML)
}

// Parse parses raw HTML and returns the document root node.
func Parse(rawHTML string) (*Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, pricewatch.Errorf(pricewatch.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Node{sel: doc.Selection}, nil
}

// Node wraps a single element (or the document root) of a parsed HTML tree.
type Node struct {
	sel *goquery.Selection
}

// TagName returns the lowercase element name. The document root reports
// "#document" per net/html.
func (n *Node) TagName() string {
	return goquery.NodeName(n.sel)
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

// Text returns the combined text content of the node and its descendants.
func (n *Node) Text() string {
	return n.sel.Text()
}

// Markup returns the outer HTML rendering of the node, used for substring
// searches over attribute content. Returns an empty string if the node
// cannot be rendered.
func (n *Node) Markup() string {
	markup, err := goquery.OuterHtml(n.sel)
	if err != nil {
		return ""
	}
	return markup
}

// FindFirst returns the first descendant matching the pattern in document
// order.
func (n *Node) FindFirst(p pricewatch.Pattern) (pricewatch.Node, bool) {
	var found *Node
	n.sel.Find("*").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if matches(sel, p) {
			found = &Node{sel: sel}
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}
	return found, true
}

// FindAll returns all descendants matching the pattern in document order.
func (n *Node) FindAll(p pricewatch.Pattern) []pricewatch.Node {
	var nodes []pricewatch.Node
	n.sel.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if matches(sel, p) {
			nodes = append(nodes, &Node{sel: sel})
		}
	})
	return nodes
}

// matches evaluates a pattern against a single-element selection. The
// pattern's predicates cannot be expressed as CSS selectors (regex against
// class attributes), so matching happens per node.
func matches(sel *goquery.Selection, p pricewatch.Pattern) bool {
	node := sel.Get(0)
	if node == nil || node.Type != html.ElementNode {
		return false
	}
	return p.Matches(node.Data, sel.Attr)
}
