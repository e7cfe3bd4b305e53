// Package cli implements the zoomleaver commands.
package cli

import (
	"fmt"

	"github.com/dooshek/zoomleaver/internal/config"
	"github.com/dooshek/zoomleaver/internal/logger"
	"github.com/spf13/cobra"
)

var (
	logLevel    string
	logFilename string
	configPath  string
	headless    bool
)

var rootCmd = &cobra.Command{
	Use:   "zoomleaver",
	Short: "Leave Zoom meetings automatically when they empty out",
	Long: `zoomleaver watches Zoom window titles for the participant count and
leaves the meeting once the count drops to the configured threshold.

Without a subcommand it starts the menu bar app (same as "zoomleaver run").`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.CloseLogFile()
	},
	RunE: runDaemon,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFilename, "log-filename", "", "Log to file instead of stdout")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/zoomleaver/zoomleaver.yaml)")
	for _, cmd := range []*cobra.Command{rootCmd, runCmd} {
		cmd.Flags().BoolVar(&headless, "headless", false, "Monitor in the foreground without the menu bar and exit once the meeting is left")
	}

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(leaveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(stopCmd)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	logger.SetLevel(logLevel)
	if logFilename != "" {
		if err := logger.SetOutputFile(logFilename); err != nil {
			return fmt.Errorf("error setting log file: %w", err)
		}
	}
	return nil
}

// resolveConfigPath returns --config or the default location.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}
