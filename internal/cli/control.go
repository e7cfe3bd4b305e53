package cli

import (
	"errors"
	"fmt"

	"github.com/dooshek/zoomleaver/internal/dbus"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the running daemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *dbus.Client) error {
			status, err := c.Status()
			if err != nil {
				return err
			}
			stats, err := c.Stats()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Status: %s\n", status)
			fmt.Fprintf(out, "Stats: %s\n", stats)
			return nil
		})
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Ask the running daemon to start monitoring",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *dbus.Client) error {
			started, err := c.Start()
			if err != nil {
				return err
			}
			if started {
				fmt.Fprintln(cmd.OutOrStdout(), "Monitoring started")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Already monitoring")
			}
			return nil
		})
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Ask the running daemon to stop monitoring",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *dbus.Client) error {
			if err := c.Stop(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Monitoring stopped")
			return nil
		})
	},
}

func withClient(fn func(c *dbus.Client) error) error {
	c, err := dbus.Dial()
	if err != nil {
		if errors.Is(err, dbus.ErrNotRunning) {
			return fmt.Errorf("%w (start it with `zoomleaver run`)", err)
		}
		return err
	}
	defer c.Close()
	return fn(c)
}
