// Command synthpop builds synthetic household populations from
// per-area census aggregates.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "synthpop",
		Short: "Synthetic household population generator",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(distributeCmd())
	rootCmd.AddCommand(validateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func distributeCmd() *cobra.Command {
	var opts distributeOptions

	cmd := &cobra.Command{
		Use:   "distribute [census-file]",
		Short: "Assign every person in every area to a household",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDistribute(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().Int64Var(&opts.seed, "seed", 42, "RNG seed for reproducible runs")
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "areas to distribute concurrently")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML config overriding the default tunables")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "SQLite path to store the generated population")
	cmd.Flags().BoolVar(&opts.skipFailed, "skip-failed", false, "skip areas whose distribution fails instead of aborting")
	return cmd
}

func validateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate [census-file]",
		Short: "Check a census file against the recognized compositions",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0], configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML config overriding the default tunables")
	return cmd
}
