package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/store"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save or inspect point-in-time learner profiles",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <learner-id>",
	Short: "Store the learner's current profile as a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, e, err := openLearner(ctx, args[0])
		if err != nil {
			return err
		}
		defer s.Close()

		snap := &store.Snapshot{
			LearnerID: args[0],
			Data: store.SnapshotData{
				CatalogVersion: e.Catalog().Version(),
				Profile:        e.Profile(),
			},
		}
		repo := s.SnapshotRepo()
		if err := repo.Save(ctx, snap); err != nil {
			return err
		}
		if err := repo.Prune(ctx, args[0], cfg.Snapshot.Keep); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved snapshot %s at sequence %d\n", snap.ID, snap.Sequence)
		return nil
	},
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show <learner-id>",
	Short: "Show the learner's most recent snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		snap, err := s.SnapshotRepo().Latest(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if snap == nil {
			return fmt.Errorf("no snapshot stored for learner %q", args[0])
		}
		if wantJSON(cmd) {
			return printJSON(cmd, snap)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Snapshot %s (sequence %d, %s, catalog %s)\n\n",
			snap.ID, snap.Sequence, snap.Timestamp.Local().Format("2006-01-02 15:04"), snap.Data.CatalogVersion)
		cat, err := loadCatalog(cmd.Context(), s)
		if err != nil {
			return err
		}
		printer(cmd)(renderer().Profile(snap.Data.Profile, cat))
		return nil
	},
}

func init() {
	addJSONFlag(snapshotShowCmd)
	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotShowCmd)
}
