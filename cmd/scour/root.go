package main

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/scour/internal/version"
	"github.com/arthur-debert/scour/pkg/config"
	"github.com/arthur-debert/scour/pkg/logging"
	"github.com/arthur-debert/scour/pkg/settings"
)

var (
	verbosity int
	dryRun    bool
	rulesPath string

	rootCmd = &cobra.Command{
		Use:   "scour",
		Short: "A rule-driven file-cleanup engine",
		Long: `scour scans a folder, scores every file against a configurable rule
set, and concurrently applies delete, move or compress operations to the
files that match, with an auditable activity log.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Preview changes without executing them")
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "Rule configuration file (JSON or TOML)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(dupesCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadRules loads the configured rules file. When none was given the
// persisted settings supply the policy, which itself defaults to the
// built-in rules on a fresh installation.
func loadRules() (config.RuleConfig, error) {
	if rulesPath == "" {
		m := settings.NewManager(nil, filepath.Join(xdg.ConfigHome, "scour", "settings.json"))
		if err := m.Load(); err != nil {
			return config.RuleConfig{}, err
		}
		return m.Rules(), nil
	}
	return config.Load(rulesPath, config.RuleConfig{})
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scour version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}
