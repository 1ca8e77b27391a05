package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/coach"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <learner-id>",
	Short: "Rank the skills to work on next",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit := cfg.Recommend.Limit
		if cmd.Flags().Changed("limit") {
			limit, _ = cmd.Flags().GetInt("limit")
		}
		withBriefing, _ := cmd.Flags().GetBool("explain")

		s, e, err := openLearner(ctx, args[0])
		if err != nil {
			return err
		}
		defer s.Close()

		recs := e.NextRecommendations(limit)
		if wantJSON(cmd) {
			return printJSON(cmd, recs)
		}

		out := printer(cmd)
		out(renderer().Recommendations(recs))
		if withBriefing && len(recs) > 0 {
			p := e.Profile()
			explain(ctx, s, out, func(ctx context.Context, c *coach.Coach) (*coach.Briefing, error) {
				return c.BriefRecommendations(ctx, p, recs)
			})
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().IntP("limit", "n", 5, "Maximum number of recommendations (default from recommend.limit)")
	recommendCmd.Flags().Bool("explain", false, "Ask the configured LLM for a short coaching briefing")
	addJSONFlag(recommendCmd)
}
