package main

import (
	"fmt"

	"github.com/fwojciec/pricewatch"
)

// Run executes the products command.
func (c *ProductsCmd) Run(deps *Dependencies) error {
	filter := pricewatch.ProductFilter{
		Offset: c.Offset,
		Limit:  c.Limit,
	}
	if c.Source != "" {
		filter.SourceURL = &c.Source
	}
	if c.Availability != "" {
		availability := pricewatch.Availability(c.Availability)
		filter.Availability = &availability
	}

	products, err := deps.Products.FindProducts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricewatch.ErrorMessage(err))
		return err
	}

	if len(products) == 0 {
		fmt.Fprintln(deps.Stdout, "No products found. Use 'pricewatch scrape' to collect some.")
		return nil
	}

	for _, p := range products {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  %s\n",
			formatPrice(p.CurrentPrice), formatPrice(p.MRP), p.Availability, p.Name, p.SourceURL)
	}

	return nil
}

func formatPrice(v *float64) string {
	if v == nil {
		return "      -"
	}
	return fmt.Sprintf("%7.2f", *v)
}
