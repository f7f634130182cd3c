package pricewatch

// Node is an opaque handle into a parsed document tree. The extraction core
// only reads tag names, attributes, text, and descendants through this
// contract and never assumes a concrete tree representation. Implementations
// live in subpackages (e.g., goquery/).
type Node interface {
	// TagName returns the lowercase element name (e.g., "div").
	TagName() string

	// Attr returns the value of the named attribute.
	// The second return value reports whether the attribute is present.
	Attr(name string) (string, bool)

	// Text returns the visible text content of the node and its descendants.
	Text() string

	// Markup returns the raw rendering of the node, including its tag and
	// attributes. Used for substring searches over attribute content.
	Markup() string

	// FindFirst returns the first descendant matching the pattern in
	// document order. The second return value reports whether a match
	// was found.
	FindFirst(p Pattern) (Node, bool)

	// FindAll returns all descendants matching the pattern in document order.
	FindAll(p Pattern) []Node
}

// Parser turns raw HTML into a navigable document tree rooted at a Node.
type Parser interface {
	// Parse parses raw HTML and returns the document root.
	Parse(html string) (Node, error)
}
