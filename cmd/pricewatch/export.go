package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/pricewatch"
	"github.com/fwojciec/pricewatch/csv"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	filter := pricewatch.ProductFilter{}
	if c.Source != "" {
		filter.SourceURL = &c.Source
	}

	products, err := deps.Products.FindProducts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricewatch.ErrorMessage(err))
		return err
	}

	f, err := os.Create(c.Out)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot create %s: %v\n", c.Out, err)
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.CreateProducts(deps.Ctx, products); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricewatch.ErrorMessage(err))
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d products to %s\n", len(products), c.Out)
	return nil
}
