package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/scentshop/internal/catalog"
)

func newCatalogCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List every perfume in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.catalog()
			if err != nil {
				return err
			}
			ranked := make([]catalog.RankedItem, 0, cat.Len())
			for _, item := range cat.Items() {
				ranked = append(ranked, catalog.RankedItem{Item: item})
			}
			return writeItems(cmd.OutOrStdout(), ranked, false)
		},
	}
}

func newSearchCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <terms>",
		Short: "Rank the catalog by comma separated terms matched against names and notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.catalog()
			if err != nil {
				return err
			}
			return writeItems(cmd.OutOrStdout(), cat.Search(args[0]), true)
		},
	}
}

func writeItems(out io.Writer, items []catalog.RankedItem, withMatches bool) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(out, "No perfumes found matching your search.")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	header := "NAME\tPRICE\tDISCOUNT\tNOTES"
	if withMatches {
		header = "MATCHES\t" + header
	}
	fmt.Fprintln(tw, header)
	for _, item := range items {
		row := fmt.Sprintf("%s\t%s\t%d%%\t%s",
			item.Name,
			item.DiscountedPrice().StringFixed(2),
			item.Discount,
			strings.Join(item.Notes, ", "),
		)
		if withMatches {
			row = fmt.Sprintf("%d\t%s", item.MatchCount, row)
		}
		fmt.Fprintln(tw, row)
	}
	return tw.Flush()
}
