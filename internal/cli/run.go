package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dooshek/zoomleaver/internal/config"
	"github.com/dooshek/zoomleaver/internal/dbus"
	"github.com/dooshek/zoomleaver/internal/fileops"
	"github.com/dooshek/zoomleaver/internal/logger"
	"github.com/dooshek/zoomleaver/internal/monitor"
	"github.com/dooshek/zoomleaver/internal/notification"
	"github.com/dooshek/zoomleaver/internal/tray"
	"github.com/dooshek/zoomleaver/pkg/windowdetect"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the menu bar app (or a foreground monitor with --headless)",
	Args:  cobra.NoArgs,
	RunE:  runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	fileOps := fileops.NewFileOps(filepath.Dir(path))
	if err := fileOps.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create necessary directories: %w", err)
	}

	// Check if another instance is running
	if err := fileOps.CheckPID(); err != nil {
		if errors.Is(err, fileops.ErrProcessAlreadyRunning) {
			logger.Error("Another instance of zoomleaver is already running", err)
			return err
		}
		logger.Warnf("Ignoring unreadable PID file: %v", err)
	}
	if err := fileOps.SavePID(); err != nil {
		return fmt.Errorf("failed to save PID file: %w", err)
	}
	defer fileOps.HandleExit()

	if err := windowdetect.CheckPermissions(); err != nil {
		logger.Warnf("Window access check failed: %v", err)
		logger.Warn("Grant Accessibility access to your terminal in System Settings > Privacy & Security")
	}

	cfg := config.Load(path)

	notifier := notification.New()
	if headless {
		notifier = notification.NewSilent()
	}

	a, err := newApp(context.Background(), cfg, notifier)
	if err != nil {
		return err
	}
	a.watchConfig(path)

	server := dbus.NewServer(a, a.stats)
	if err := server.Start(); err != nil {
		logger.Warnf("D-Bus control unavailable: %v", err)
	} else {
		defer server.Stop()
	}

	// Set up signal handling for cleanup
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if headless {
		return runHeadless(a, sigChan)
	}
	runTray(a, sigChan)
	return nil
}

// runHeadless monitors in the foreground until the meeting is left or a
// signal arrives.
func runHeadless(a *app, sigChan <-chan os.Signal) error {
	logger.Infof("Zoom Auto Leaver started (threshold: %d participants, interval: %ds)",
		a.Config().ParticipantThreshold, a.Config().CheckInterval)
	logger.Info("Press Ctrl+C to stop")

	a.Start()

	finished := make(chan struct{})
	go func() {
		a.Wait()
		close(finished)
	}()

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal %v, shutting down...", sig)
		a.Stop()
		a.Wait()
	case <-finished:
	}
	a.RequestShutdown()

	if a.Status().State == monitor.LeftSuccessfully {
		logger.Info("Meeting left, exiting")
	}
	return nil
}

// runTray occupies the main goroutine with the menu bar until Quit.
func runTray(a *app, sigChan <-chan os.Signal) {
	logger.Info("🚪 Zoom Auto Leaver started in menu bar")
	logger.Info("Look for the 🏃 icon in your menu bar")

	go func() {
		select {
		case sig := <-sigChan:
			logger.Infof("Received signal %v, shutting down...", sig)
		case <-a.Done():
		}
		tray.Quit()
	}()

	// A run ends on its own after leaving; the menu stays up.
	if a.Config().AutoStart {
		a.Start()
	}

	tray.Run(a, os.Stdout, func() {
		a.Stop()
		a.Wait()
		a.RequestShutdown()
	})
}
