package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/learner"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage stored learner records",
}

var recordImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import or replace a learner record from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		newID, _ := cmd.Flags().GetBool("new-id")

		rec, err := learner.LoadFile(args[0])
		if err != nil {
			return err
		}
		if newID {
			rec.ID = uuid.NewString()
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.RecordRepo().Save(cmd.Context(), rec); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported learner %s (%d growth areas, %d completed scenarios)\n",
			rec.ID, len(rec.GrowthAreas), len(rec.CompletedScenarios))
		return nil
	},
}

var recordExportCmd = &cobra.Command{
	Use:   "export <learner-id>",
	Short: "Write a stored learner record as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := s.RecordRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		data, err := learner.Marshal(rec)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		}
		return os.WriteFile(out, data, 0o644)
	},
}

var recordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored learners",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		recs, err := s.RecordRepo().List(cmd.Context())
		if err != nil {
			return err
		}
		if wantJSON(cmd) {
			return printJSON(cmd, recs)
		}
		if len(recs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No learners stored.")
			return nil
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-36s  %-12s  %s\n", "ID", "Archetype", "Updated")
		for _, r := range recs {
			fmt.Fprintf(w, "%-36s  %-12s  %s\n", r.ID, r.Archetype, r.UpdatedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	recordImportCmd.Flags().Bool("new-id", false, "Store under a freshly generated id instead of the record's own")
	recordExportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	addJSONFlag(recordListCmd)

	recordCmd.AddCommand(recordImportCmd)
	recordCmd.AddCommand(recordExportCmd)
	recordCmd.AddCommand(recordListCmd)
}
