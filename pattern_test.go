package pricewatch_test

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/fwojciec/pricewatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNode is a minimal in-memory implementation of pricewatch.Node for
// exercising the pure extraction core without an HTML parser.
type fakeNode struct {
	tag   string
	attrs map[string]string
	text  string
	kids  []*fakeNode
}

func (n *fakeNode) TagName() string { return n.tag }

func (n *fakeNode) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (n *fakeNode) Text() string {
	parts := []string{n.text}
	for _, kid := range n.kids {
		parts = append(parts, kid.Text())
	}
	return strings.Join(parts, "")
}

func (n *fakeNode) Markup() string {
	var b strings.Builder
	b.WriteString("<" + n.tag)
	keys := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%q", k, n.attrs[k])
	}
	b.WriteString(">" + n.text + "</" + n.tag + ">")
	return b.String()
}

func (n *fakeNode) FindFirst(p pricewatch.Pattern) (pricewatch.Node, bool) {
	for _, kid := range n.kids {
		if p.Matches(kid.tag, kid.Attr) {
			return kid, true
		}
		if found, ok := kid.FindFirst(p); ok {
			return found, true
		}
	}
	return nil, false
}

func (n *fakeNode) FindAll(p pricewatch.Pattern) []pricewatch.Node {
	var nodes []pricewatch.Node
	for _, kid := range n.kids {
		if p.Matches(kid.tag, kid.Attr) {
			nodes = append(nodes, kid)
		}
		nodes = append(nodes, kid.FindAll(p)...)
	}
	return nodes
}

func elem(tag, class, text string, kids ...*fakeNode) *fakeNode {
	attrs := map[string]string{}
	if class != "" {
		attrs["class"] = class
	}
	return &fakeNode{tag: tag, attrs: attrs, text: text, kids: kids}
}

func TestPattern_Matches(t *testing.T) {
	t.Parallel()

	attrs := func(m map[string]string) func(string) (string, bool) {
		return func(name string) (string, bool) {
			v, ok := m[name]
			return v, ok
		}
	}

	t.Run("tag pattern matches tag name only", func(t *testing.T) {
		t.Parallel()

		p := pricewatch.TagPattern("h2")
		assert.True(t, p.Matches("h2", attrs(nil)))
		assert.False(t, p.Matches("h3", attrs(nil)))
	})

	t.Run("class pattern is case-insensitive and unanchored", func(t *testing.T) {
		t.Parallel()

		p := pricewatch.ClassPattern("span", `price|cost`)
		assert.True(t, p.Matches("span", attrs(map[string]string{"class": "Final-Price large"})))
		assert.True(t, p.Matches("span", attrs(map[string]string{"class": "COST"})))
		assert.False(t, p.Matches("span", attrs(map[string]string{"class": "title"})))
		assert.False(t, p.Matches("div", attrs(map[string]string{"class": "price"})))
		assert.False(t, p.Matches("span", attrs(nil)))
	})

	t.Run("wildcard tag matches any element", func(t *testing.T) {
		t.Parallel()

		p := pricewatch.ClassPattern("", `product[-_]?card`)
		assert.True(t, p.Matches("div", attrs(map[string]string{"class": "product-card"})))
		assert.True(t, p.Matches("li", attrs(map[string]string{"class": "productCard"})))
		assert.True(t, p.Matches("article", attrs(map[string]string{"class": "product_card featured"})))
	})

	t.Run("presence pattern ignores attribute value", func(t *testing.T) {
		t.Parallel()

		p := pricewatch.AttrPattern("", "data-price")
		assert.True(t, p.Matches("span", attrs(map[string]string{"data-price": "999"})))
		assert.True(t, p.Matches("div", attrs(map[string]string{"data-price": ""})))
		assert.False(t, p.Matches("span", attrs(nil)))
	})

	t.Run("exact pattern requires exact value", func(t *testing.T) {
		t.Parallel()

		p := pricewatch.ExactAttrPattern("", "data-component-type", "s-search-result")
		assert.True(t, p.Matches("div", attrs(map[string]string{"data-component-type": "s-search-result"})))
		assert.False(t, p.Matches("div", attrs(map[string]string{"data-component-type": "s-search-results"})))
		assert.False(t, p.Matches("div", attrs(nil)))
	})
}

func TestFindByPatterns(t *testing.T) {
	t.Parallel()

	container := elem("div", "product-card", "",
		elem("span", "old-price", "₹1,299"),
		elem("h3", "", "Acme Phone X"),
		elem("span", "final-price", "₹999"),
	)

	t.Run("first pattern that yields a node wins", func(t *testing.T) {
		t.Parallel()

		patterns := []pricewatch.Pattern{
			pricewatch.ClassPattern("span", `final`),
			pricewatch.ClassPattern("span", `old`),
		}

		n, ok := pricewatch.FindByPatterns(container, patterns)
		require.True(t, ok)
		assert.Equal(t, "₹999", n.Text())
	})

	t.Run("falls through to later patterns", func(t *testing.T) {
		t.Parallel()

		patterns := []pricewatch.Pattern{
			pricewatch.ClassPattern("span", `nonexistent`),
			pricewatch.TagPattern("h3"),
		}

		n, ok := pricewatch.FindByPatterns(container, patterns)
		require.True(t, ok)
		assert.Equal(t, "Acme Phone X", n.Text())
	})

	t.Run("returns false when nothing matches", func(t *testing.T) {
		t.Parallel()

		patterns := []pricewatch.Pattern{
			pricewatch.TagPattern("h1"),
			pricewatch.ClassPattern("div", `rating`),
		}

		_, ok := pricewatch.FindByPatterns(container, patterns)
		assert.False(t, ok)
	})

	t.Run("empty pattern list finds nothing", func(t *testing.T) {
		t.Parallel()

		_, ok := pricewatch.FindByPatterns(container, nil)
		assert.False(t, ok)
	})
}

func TestLocateContainers(t *testing.T) {
	t.Parallel()

	t.Run("first matching pattern wins even with fewer nodes", func(t *testing.T) {
		t.Parallel()

		// One product-card (pattern #1) and two product-tiles (pattern #3):
		// only the card may be returned.
		doc := elem("body", "", "",
			elem("div", "product-card", "card"),
			elem("div", "product-tile", "tile one"),
			elem("div", "product-tile", "tile two"),
		)

		containers := pricewatch.LocateContainers(doc)
		require.Len(t, containers, 1)
		assert.Equal(t, "card", containers[0].Text())
	})

	t.Run("falls back to platform-specific patterns", func(t *testing.T) {
		t.Parallel()

		doc := elem("body", "", "",
			&fakeNode{tag: "div", attrs: map[string]string{"data-component-type": "s-search-result"}, text: "amazon row"},
		)

		containers := pricewatch.LocateContainers(doc)
		require.Len(t, containers, 1)
		assert.Equal(t, "amazon row", containers[0].Text())
	})

	t.Run("returns all matches of the winning pattern in document order", func(t *testing.T) {
		t.Parallel()

		doc := elem("body", "", "",
			elem("div", "product-item", "first"),
			elem("div", "grid", "",
				elem("li", "product_item", "second"),
			),
			elem("div", "productItem", "third"),
		)

		containers := pricewatch.LocateContainers(doc)
		require.Len(t, containers, 3)
		assert.Equal(t, "first", containers[0].Text())
		assert.Equal(t, "second", containers[1].Text())
		assert.Equal(t, "third", containers[2].Text())
	})

	t.Run("no containers means empty result", func(t *testing.T) {
		t.Parallel()

		doc := elem("body", "", "", elem("div", "hero-banner", "welcome"))
		assert.Empty(t, pricewatch.LocateContainers(doc))
	})
}
