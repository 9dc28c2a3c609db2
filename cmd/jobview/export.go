package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobview-engine/internal/store"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var (
		crit criteriaFlags
		out  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy the (filtered) listings into a SQLite file",
		Long:  "Writes the listings that match the filters into the jobs table of a SQLite database, replacing its previous contents. The CSV itself is never modified.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := root.setup(cmd)
			if err != nil {
				return err
			}
			snap, err := e.openSnapshot()
			if err != nil {
				return err
			}
			filtered, err := crit.apply(snap.Current())
			if err != nil {
				return err
			}

			n, err := store.ExportFile(cmd.Context(), out, filtered)
			if err != nil {
				return fmt.Errorf("export to %s: %w", out, err)
			}
			e.logger.Info().Str("path", out).Int("rows", n).Msg("export done")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported %d listings to %s\n", n, out)
			return err
		},
	}

	crit.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "jobs.db", "SQLite file to write")
	return cmd
}
