package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"jobview-engine/internal/aggregate"
)

type statsOutput struct {
	Scope    aggregate.Scope `json:"scope"`
	Total    int             `json:"total"`
	Matching int             `json:"matching"`
	aggregate.Aggregates
}

func newStatsCmd(root *rootOptions) *cobra.Command {
	var (
		crit     criteriaFlags
		scope    scopeFlag
		withText bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the chart inputs as JSON",
		Long:  "Prints the salary distribution and histogram, the top cities and companies and the most frequent description terms, computed over all listings or the filtered ones.",
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

			agg := aggregate.Aggregate(sc.Pick(all, filtered), aggregateOptions(e.cfg))
			if !withText {
				agg.SkillText = ""
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(statsOutput{
				Scope:      sc,
				Total:      all.Len(),
				Matching:   filtered.Len(),
				Aggregates: agg,
			})
		},
	}

	crit.register(cmd)
	scope.register(cmd)
	cmd.Flags().BoolVar(&withText, "skill-text", false, "Include the joined description text")
	return cmd
}
