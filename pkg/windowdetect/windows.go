package windowdetect

import (
	"fmt"
	"strconv"
	"strings"
)

// Prints "<pid>|<process>|<title>" for every process owning a main window.
const windowsListScript = `Get-Process | Where-Object { $_.MainWindowTitle } | ForEach-Object { "{0}|{1}|{2}" -f $_.Id, $_.ProcessName, $_.MainWindowTitle }`

type windowsDetector struct {
	run commandRunner
}

func newWindowsDetector(run commandRunner) platformDetector {
	return &windowsDetector{run: run}
}

func (d *windowsDetector) name() string {
	return "powershell"
}

func (d *windowsDetector) listWindows() ([]WindowInfo, error) {
	output, err := d.run("powershell", "-NoProfile", "-NonInteractive", "-Command", windowsListScript)
	if err != nil {
		return nil, fmt.Errorf("powershell window query failed: %w", err)
	}
	return parseWindowsWindows(string(output)), nil
}

func parseWindowsWindows(output string) []WindowInfo {
	var windows []WindowInfo
	for _, line := range strings.Split(output, "\n") {
		parts := strings.SplitN(strings.TrimRight(line, "\r"), "|", 3)
		if len(parts) != 3 {
			continue
		}
		title := strings.TrimSpace(parts[2])
		if title == "" {
			continue
		}
		pid, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
		windows = append(windows, WindowInfo{
			Title:   title,
			AppName: strings.TrimSpace(parts[1]),
			ID:      strings.TrimSpace(parts[0]),
			PID:     pid,
		})
	}
	return windows
}

func (d *windowsDetector) focusWindow(w WindowInfo) error {
	if w.PID == 0 {
		return fmt.Errorf("window %q has no process id", w.Title)
	}
	script := fmt.Sprintf("(New-Object -ComObject WScript.Shell).AppActivate(%d)", w.PID)
	output, err := d.run("powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	if err != nil {
		return fmt.Errorf("failed to activate process %d: %w", w.PID, err)
	}
	if !strings.EqualFold(strings.TrimSpace(string(output)), "true") {
		return fmt.Errorf("AppActivate refused process %d", w.PID)
	}
	return nil
}

func (d *windowsDetector) quitApplication(WindowInfo) error {
	return ErrUnsupported
}
