package mock

import "github.com/fwojciec/pricewatch"

var _ pricewatch.Parser = (*Parser)(nil)

// Parser is a mock implementation of pricewatch.Parser.
type Parser struct {
	ParseFn func(html string) (pricewatch.Node, error)
}

func (p *Parser) Parse(html string) (pricewatch.Node, error) {
	return p.ParseFn(html)
}
