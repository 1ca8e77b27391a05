package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/skillgraph"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse and validate the skill catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills, optionally filtered by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		cat, err := skillgraph.Load(cfg.CatalogPath)
		if err != nil {
			return err
		}
		if category != "" && len(cat.ByCategory(category)) == 0 {
			return fmt.Errorf("no skills in category %q (have %v)", category, cat.Categories())
		}
		if wantJSON(cmd) {
			skills := cat.All()
			if category != "" {
				skills = cat.ByCategory(category)
			}
			return printJSON(cmd, skills)
		}
		printer(cmd)(renderer().Catalog(cat, category))
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <skill-id>",
	Short: "Show one skill with its prerequisites and dependents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := skillgraph.Load(cfg.CatalogPath)
		if err != nil {
			return err
		}
		sk, err := cat.GetSkill(args[0])
		if err != nil {
			return err
		}
		if wantJSON(cmd) {
			return printJSON(cmd, sk)
		}

		var deps []string
		for _, d := range cat.Dependents(sk.ID) {
			deps = append(deps, d.ID)
		}
		printer(cmd)(renderer().KeyValues(sk.Name, map[string]string{
			"id":             sk.ID,
			"category":       skillgraph.CategoryDisplayName(sk.Category),
			"level":          string(sk.Level),
			"estimated time": sk.EstimatedTime,
			"prerequisites":  fmt.Sprint(cat.PrerequisiteIDs(sk.ID)),
			"unlocks":        fmt.Sprint(deps),
			"scenarios":      fmt.Sprint(sk.RelatedScenarios),
		}))
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a catalog file (default: the configured catalog)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.CatalogPath
		if len(args) == 1 {
			path = args[0]
		}
		cat, err := skillgraph.Load(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: catalog %s, %d skills in %d categories\n",
			cat.Version(), cat.Len(), len(cat.Categories()))
		return nil
	},
}

func init() {
	catalogListCmd.Flags().String("category", "", "Only list skills in this category")
	addJSONFlag(catalogListCmd)
	addJSONFlag(catalogShowCmd)

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}
