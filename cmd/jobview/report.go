package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"jobview-engine/internal/aggregate"
	"jobview-engine/internal/render"
)

func newReportCmd(root *rootOptions) *cobra.Command {
	var (
		crit  criteriaFlags
		scope scopeFlag
		out   string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the charts to a PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := root.setup(cmd)
			if err != nil {
				return err
			}
			sc, err := scope.resolve(e.cfg)
			if err != nil {
				return err
			}
			snap, err := e.openSnapshot()
			if err != nil {
				return err
			}
			all := snap.Current()
			filtered, err := crit.apply(all)
			if err != nil {
				return err
			}

			if dir := filepath.Dir(out); dir != "" && dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}

			err = render.PDFReport(f, render.Report{
				Title:       e.cfg.Listing.PageTitle,
				Scope:       string(sc),
				Matching:    filtered.Len(),
				Aggregates:  aggregate.Aggregate(sc.Pick(all, filtered), aggregateOptions(e.cfg)),
				GeneratedAt: time.Now(),
			})
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("failed to write report %s: %w", out, err)
			}

			e.logger.Info().Str("path", out).Str("scope", string(sc)).Int("matching", filtered.Len()).Msg("report written")
			return nil
		},
	}

	crit.register(cmd)
	scope.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Path of the PDF to write (required)")
	if err := cmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}
	return cmd
}
