package main

import (
	"fmt"
	"text/tabwriter"

	"fireworks-storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func productsCmd() *cobra.Command {
	var (
		f        domain.ProductFilter
		minPrice string
		maxPrice string
	)
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range []struct {
				raw  string
				dest **decimal.Decimal
			}{{minPrice, &f.MinPrice}, {maxPrice, &f.MaxPrice}} {
				if p.raw == "" {
					continue
				}
				d, err := decimal.NewFromString(p.raw)
				if err != nil {
					return fmt.Errorf("invalid price %q", p.raw)
				}
				*p.dest = &d
			}

			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			list, err := e.app.Products(cmd.Context(), f)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
			for _, p := range list {
				stock := "in stock"
				if !p.InStock {
					stock = "out of stock"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), stock)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&f.Category, "category", "", "Category filter")
	cmd.Flags().StringVar(&f.Search, "search", "", "Search in name and description")
	cmd.Flags().StringVar(&f.SortBy, "sort", "", "name, price-low, price-high or rating")
	cmd.Flags().StringVar(&minPrice, "min-price", "", "Minimum price")
	cmd.Flags().StringVar(&maxPrice, "max-price", "", "Maximum price")
	return cmd
}

func trackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track <order-id|order-number>",
		Short: "Show the delivery progress of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			view, err := e.app.Track(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Order %s  status %s  total %s\n", view.Order.OrderNumber, view.Order.Status, view.Order.Total.StringFixed(2))
			for _, s := range view.Stages {
				mark := "[ ]"
				switch {
				case s.Current:
					mark = "[>]"
				case s.Reached:
					mark = "[x]"
				}
				fmt.Fprintf(out, "%s %s - %s\n", mark, s.Label, s.Description)
			}
			return nil
		},
	}
}
