package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"jobview-engine/internal/render"
)

func newListCmd(root *rootOptions) *cobra.Command {
	var (
		crit   criteriaFlags
		format string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the listings that match the filters",
		Long:  "Loads the listings CSV, applies the filters and prints the matching listings as markdown, JSON or CSV in their original order.",
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
			if limit > 0 && limit < filtered.Len() {
				filtered = filtered.Derive(filtered.Records()[:limit])
			}

			out := cmd.OutOrStdout()
			switch format {
			case "markdown", "md":
				_, err = fmt.Fprint(out, render.Markdown(filtered))
				return err
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(filtered.Records())
			case "csv":
				return render.CSV(out, filtered)
			default:
				return fmt.Errorf("unknown format %q (want markdown, json or csv)", format)
			}
		},
	}

	crit.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "Output format: markdown, json or csv")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Print at most n listings (0 prints all)")
	return cmd
}
