package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dooshek/zoomleaver/internal/keyboard"
	"github.com/dooshek/zoomleaver/internal/logger"
	"github.com/dooshek/zoomleaver/internal/types"
	"github.com/fatih/color"
)

// ErrWizardAborted is returned when input ends before the user chose to save.
var ErrWizardAborted = errors.New("configuration wizard aborted")

// RunWizard edits config interactively and saves it to path when the user
// picks "Save". It returns the edited record.
func RunWizard(in io.Reader, out io.Writer, path string, config types.Config) (types.Config, error) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	reader := bufio.NewReader(in)

	bold.Fprintln(out, "\n🚪 Zoom Auto Leaver Configuration")
	PrintSettings(out, config)

	for {
		cyan.Fprintln(out, "\nConfiguration options:")
		fmt.Fprintln(out, "1. Set participant threshold")
		fmt.Fprintln(out, "2. Set check interval")
		fmt.Fprintln(out, "3. Toggle auto-start")
		fmt.Fprintln(out, "4. Toggle logging")
		fmt.Fprintln(out, "5. Set leave shortcut")
		fmt.Fprintln(out, "6. Toggle confirm leave")
		fmt.Fprintln(out, "7. Save and exit")

		choice, err := prompt(reader, out, "\nEnter your choice (1-7): ")
		if err != nil {
			return config, err
		}

		switch choice {
		case "1":
			value, err := prompt(reader, out, fmt.Sprintf("Enter participant threshold (current: %d): ", config.ParticipantThreshold))
			if err != nil {
				return config, err
			}
			n, ok := parsePositive(value)
			if !ok {
				red.Fprintln(out, "Threshold must be a number greater than 0")
				continue
			}
			config.ParticipantThreshold = n
			yellow.Fprintf(out, "Threshold set to %d\n", n)

		case "2":
			value, err := prompt(reader, out, fmt.Sprintf("Enter check interval in seconds (current: %d): ", config.CheckInterval))
			if err != nil {
				return config, err
			}
			n, ok := parsePositive(value)
			if !ok || n > types.MaxCheckInterval {
				red.Fprintf(out, "Interval must be a number between 1 and %d\n", types.MaxCheckInterval)
				continue
			}
			config.CheckInterval = n
			yellow.Fprintf(out, "Check interval set to %d seconds\n", n)

		case "3":
			config.AutoStart = !config.AutoStart
			yellow.Fprintf(out, "Auto-start set to %t\n", config.AutoStart)

		case "4":
			config.LogActivity = !config.LogActivity
			yellow.Fprintf(out, "Logging set to %t\n", config.LogActivity)

		case "5":
			fmt.Fprintf(out, "Current shortcut: %s\n", config.LeaveShortcut)
			value, err := prompt(reader, out, "Enter new shortcut (e.g., 'cmd+q', 'alt+q', 'cmd+shift+w'): ")
			if err != nil {
				return config, err
			}
			if value == "" {
				continue
			}
			kb, err := keyboard.ParseShortcut(value)
			if err != nil {
				red.Fprintf(out, "%v\n", err)
				continue
			}
			config.LeaveShortcut = strings.ToLower(value)
			yellow.Fprintf(out, "Leave shortcut set to %s\n", keyboard.FormatKeyCombo(kb))

		case "6":
			config.ConfirmLeave = !config.ConfirmLeave
			yellow.Fprintf(out, "Confirm leave set to %t\n", config.ConfirmLeave)

		case "7":
			if err := Save(path, config); err != nil {
				logger.Error("Failed to save config", err)
				return config, err
			}
			green.Fprintln(out, "\n✅ Configuration saved!")
			return config, nil

		default:
			red.Fprintln(out, "Invalid choice. Please enter 1-7.")
		}
	}
}

// PrintSettings writes the effective configuration in human-readable form.
func PrintSettings(out io.Writer, config types.Config) {
	fmt.Fprintf(out, "Participant threshold: %d\n", config.ParticipantThreshold)
	fmt.Fprintf(out, "Check interval: %d seconds\n", config.CheckInterval)
	fmt.Fprintf(out, "Auto-start: %t\n", config.AutoStart)
	fmt.Fprintf(out, "Log activity: %t\n", config.LogActivity)
	fmt.Fprintf(out, "Leave shortcut: %s\n", config.LeaveShortcut)
	fmt.Fprintf(out, "Confirm leave: %t\n", config.ConfirmLeave)
}

func prompt(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", ErrWizardAborted
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func parsePositive(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
