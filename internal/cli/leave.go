package cli

import (
	"errors"
	"fmt"

	"github.com/dooshek/zoomleaver/internal/config"
	"github.com/dooshek/zoomleaver/internal/keyboard/robot"
	"github.com/dooshek/zoomleaver/internal/leaver"
	"github.com/dooshek/zoomleaver/pkg/windowdetect"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var errLeaveFailed = errors.New("leave sequence failed")

var leaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Test the leave sequence on the current meeting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		cfg := config.Load(path)

		detector, err := windowdetect.New()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "🚪 Testing leave sequence...")
		fmt.Fprintln(out, "Make sure you're in a Zoom meeting first!")

		l := leaver.New(detector, robot.New(), leaver.OptionsFromConfig(cfg))
		if !l.Leave() {
			color.New(color.FgRed).Fprintln(out, "Test result: ❌ Failed")
			return errLeaveFailed
		}
		color.New(color.FgGreen).Fprintln(out, "Test result: ✅ Success")
		return nil
	},
}
