package main

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"explorer/internal/query"
)

func newQueryCmd(opts *rootOptions) *cobra.Command {
	var (
		p        query.Params
		limit    int
		asJSON   bool
		queryIDs = make([]string, len(query.IDs))
	)
	for i, id := range query.IDs {
		queryIDs[i] = string(id)
	}

	cmd := &cobra.Command{
		Use:       "query <" + strings.Join(queryIDs, "|") + ">",
		Short:     "Run one query and print the result",
		Args:      cobra.ExactArgs(1),
		ValidArgs: queryIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := query.ParseID(args[0])
			if err != nil {
				return err
			}
			store, err := opts.loadStore(cmd)
			if err != nil {
				return err
			}
			result, err := query.Run(store, id, p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			r := renderer{w: out, pointLimit: limit}
			if err := r.render(result); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&p.Country, "country", "", "filter by country")
	cmd.Flags().StringVar(&p.Province, "province", "", "filter by province")
	cmd.Flags().StringVar(&p.Name, "name", "", "restaurant name to search for (brand-by-region)")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of points to print for scatter (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
