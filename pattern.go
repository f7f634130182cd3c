package pricewatch

import "regexp"

// AttrMatch identifies how a Pattern tests a node's attributes.
type AttrMatch int

// Attribute predicate kinds, from least to most specific.
const (
	// MatchAny accepts any node with a matching tag name.
	MatchAny AttrMatch = iota

	// MatchPresent requires the attribute to be present, with any value.
	MatchPresent

	// MatchExact requires the attribute to equal Value exactly.
	MatchExact

	// MatchClassRegexp requires the class attribute to match a
	// case-insensitive regular expression.
	MatchClassRegexp
)

// Pattern locates a node by tag name and attribute predicate. Patterns are
// immutable after construction and are evaluated without scoring: a node
// either satisfies the pattern or it doesn't.
type Pattern struct {
	// Tag is the element name to match. Empty matches any tag.
	Tag string

	// Attr is the attribute the predicate tests. Empty for tag-only patterns.
	Attr string

	// Value is the expected attribute value for MatchExact patterns, or the
	// regular expression source for MatchClassRegexp patterns.
	Value string

	// Kind selects the attribute predicate.
	Kind AttrMatch

	re *regexp.Regexp
}

// TagPattern returns a pattern matching any element with the given tag name.
func TagPattern(tag string) Pattern {
	return Pattern{Tag: tag, Kind: MatchAny}
}

// ClassPattern returns a pattern matching elements whose class attribute
// matches the given regular expression, case-insensitively. An empty tag
// matches any element. The expression must be a valid regular expression.
func ClassPattern(tag, expr string) Pattern {
	return Pattern{
		Tag:   tag,
		Attr:  "class",
		Value: expr,
		Kind:  MatchClassRegexp,
		re:    regexp.MustCompile("(?i)" + expr),
	}
}

// AttrPattern returns a pattern matching elements that carry the named
// attribute, regardless of its value. An empty tag matches any element.
func AttrPattern(tag, attr string) Pattern {
	return Pattern{Tag: tag, Attr: attr, Kind: MatchPresent}
}

// ExactAttrPattern returns a pattern matching elements whose named attribute
// equals value exactly. An empty tag matches any element.
func ExactAttrPattern(tag, attr, value string) Pattern {
	return Pattern{Tag: tag, Attr: attr, Value: value, Kind: MatchExact}
}

// Matches reports whether an element with the given tag name satisfies the
// pattern. Attributes are read through the attr lookup so the predicate
// stays independent of the tree representation.
func (p Pattern) Matches(tag string, attr func(name string) (string, bool)) bool {
	if p.Tag != "" && p.Tag != tag {
		return false
	}

	switch p.Kind {
	case MatchPresent:
		_, ok := attr(p.Attr)
		return ok
	case MatchExact:
		v, ok := attr(p.Attr)
		return ok && v == p.Value
	case MatchClassRegexp:
		v, ok := attr(p.Attr)
		return ok && p.re.MatchString(v)
	default:
		return true
	}
}

// FindByPatterns searches container's descendants with each pattern in
// order and returns the first node found by the first pattern that yields
// any result. Later patterns are never tried once a pattern succeeds, even
// if they would match "better" nodes. Returns false if no pattern matches
// anything. The search is deterministic: the same tree always produces the
// same result.
func FindByPatterns(container Node, patterns []Pattern) (Node, bool) {
	for _, p := range patterns {
		if n, ok := container.FindFirst(p); ok {
			return n, true
		}
	}
	return nil, false
}
