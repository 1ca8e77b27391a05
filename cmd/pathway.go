package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/coach"
)

var pathwayCmd = &cobra.Command{
	Use:   "pathway <learner-id> <goal-skill-id>",
	Short: "Lay out the prerequisite-ordered path to a goal skill",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		withBriefing, _ := cmd.Flags().GetBool("explain")

		s, e, err := openLearner(ctx, args[0])
		if err != nil {
			return err
		}
		defer s.Close()

		lp := e.LearningPathway(args[1])
		if lp == nil {
			return fmt.Errorf("skill %q is not in catalog %s", args[1], e.Catalog().Version())
		}
		if wantJSON(cmd) {
			return printJSON(cmd, lp)
		}

		out := printer(cmd)
		out(renderer().Pathway(lp))
		if withBriefing && len(lp.Steps) > 0 {
			p := e.Profile()
			explain(ctx, s, out, func(ctx context.Context, c *coach.Coach) (*coach.Briefing, error) {
				return c.BriefPathway(ctx, p, lp)
			})
		}
		return nil
	},
}

func init() {
	pathwayCmd.Flags().Bool("explain", false, "Ask the configured LLM for a short coaching briefing")
	addJSONFlag(pathwayCmd)
}
