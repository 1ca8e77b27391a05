package cmd

import (
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile <learner-id>",
	Short: "Show the learner's derived skill profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, e, err := openLearner(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer s.Close()

		p := e.Profile()
		if wantJSON(cmd) {
			return printJSON(cmd, p)
		}
		printer(cmd)(renderer().Profile(p, e.Catalog()))
		return nil
	},
}

func init() {
	addJSONFlag(profileCmd)
}
