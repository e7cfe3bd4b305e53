package cli

import (
	"github.com/dooshek/zoomleaver/internal/config"
	"github.com/dooshek/zoomleaver/internal/logger"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the configuration interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		_, err = config.RunWizard(cmd.InOrStdin(), cmd.OutOrStdout(), path, config.Load(path))
		if err != nil {
			return err
		}
		logger.Debugf("Configuration written to %s", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		config.PrintSettings(cmd.OutOrStdout(), config.Load(path))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
