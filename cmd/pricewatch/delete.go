package main

import (
	"fmt"

	"github.com/fwojciec/pricewatch"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return pricewatch.Errorf(pricewatch.EINVALID, "use --force to confirm deletion")
	}

	existing, err := deps.Products.FindProducts(deps.Ctx, pricewatch.ProductFilter{SourceURL: &c.Source})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricewatch.ErrorMessage(err))
		return err
	}

	if len(existing) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no records for %q. Use 'pricewatch products' to see stored sources.\n", c.Source)
		return pricewatch.Errorf(pricewatch.ENOTFOUND, "no records for %q", c.Source)
	}

	if err := deps.Products.DeleteProductsBySource(deps.Ctx, c.Source); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricewatch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %d records for %q\n", len(existing), c.Source)
	return nil
}
