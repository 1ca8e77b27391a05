package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/store"
)

var progressCmd = &cobra.Command{
	Use:   "progress <learner-id> <skill-id> <level> <confidence>",
	Short: "Record explicit progress on a skill",
	Long: "Record a level (unknown, developing, competent, mastered) and a 0-100 " +
		"confidence for a skill. The update is stored and replayed on every later run.",
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		learnerID, skillID := args[0], args[1]

		level, err := profile.ParseLevel(args[2])
		if err != nil {
			return err
		}
		confidence, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("confidence must be an integer: %w", err)
		}
		if confidence < 0 || confidence > 100 {
			slog.Warn("confidence clamped", "given", confidence)
		}

		s, e, err := openLearner(ctx, learnerID)
		if err != nil {
			return err
		}
		defer s.Close()

		if _, err := e.Catalog().GetSkill(skillID); err != nil {
			return err
		}

		ev, err := s.ProgressRepo().Append(ctx, store.ProgressEvent{
			LearnerID:  learnerID,
			SkillID:    skillID,
			Level:      level,
			Confidence: confidence,
		})
		if err != nil {
			return err
		}
		e.ApplyProgress(ev.SkillID, ev.Level, ev.Confidence, ev.Timestamp)

		p := e.Profile()
		st := p.State(skillID)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, confidence %d, practiced %d times\n",
			skillID, st.Level, st.Confidence, st.PracticeCount)
		return nil
	},
}
