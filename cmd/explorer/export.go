package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"explorer/internal/engine"
	"explorer/internal/export"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var out, country, province string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the cleaned records as an Arrow IPC stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := opts.loadStore(cmd)
			if err != nil {
				return err
			}
			view := engine.Filter(store.All(), engine.FilterSpec{}.
				Where(engine.FieldCountry, country).
				Where(engine.FieldProvince, province))

			if out == "" || out == "-" {
				return export.WriteArrow(cmd.OutOrStdout(), view)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := export.WriteArrow(f, view); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d records to %s\n", view.Len(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&country, "country", "", "only export this country")
	cmd.Flags().StringVar(&province, "province", "", "only export this province")
	return cmd
}
