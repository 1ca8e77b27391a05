package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/config"
	"github.com/abhisek/pathwise/internal/render"
	"github.com/abhisek/pathwise/internal/store"
)

// cfg is resolved once per invocation by the root pre-run hook.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "pathwise",
	Short: "Competency recommendations and learning pathways",
	Long: "pathwise turns a learner record into a skill profile, ranks what to " +
		"practice next and lays out prerequisite-ordered pathways toward a goal skill.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		c, err := config.Load(path, cmd.Flags())
		if err != nil {
			return err
		}
		logger, err := config.NewLogger(cmd.ErrOrStderr(), c.Log)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		if c.File != "" {
			slog.Debug("config loaded", "file", c.File)
		}
		cfg = c
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default $XDG_CONFIG_HOME/pathwise/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides PATHWISE_DB)")
	pf.String("catalog", "", "Skill catalog YAML file (default: built-in catalog)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: text or json")
	pf.Bool("plain", false, "Disable colours and borders")
	pf.Bool("allow-downgrade", false, "Allow a catalog older than the one last used with this database")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(pathwayCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns --db / PATHWISE_DB / config `db`, then the
// default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func renderer() *render.Renderer {
	return render.New(cfg.Plain)
}
