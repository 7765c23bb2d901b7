package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astromap/internal/api"
)

func citiesCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "cities",
		Short: "Query the gazetteer",
	}

	c.AddCommand(citiesSearchCmd(a))
	return c
}

func citiesSearchCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find cities by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if limit < 1 || limit > api.MaxSearchLimit {
				return fmt.Errorf("limit must be between 1 and %d", api.MaxSearchLimit)
			}

			cat, err := a.catalog(c.Context())
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			hits := cat.Search(query, limit)
			out := c.OutOrStdout()
			if len(hits) == 0 {
				fmt.Fprintf(out, "(no cities match %q)\n", query)
				return nil
			}

			for _, city := range hits {
				tz := city.TZ
				if tz == "" {
					tz = "-"
				}
				fmt.Fprintf(out, "%-32s %9.4f %10.4f  %s\n", city.Label(), city.Lat, city.Lon, tz)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of results (1-50)")
	return cmd
}
