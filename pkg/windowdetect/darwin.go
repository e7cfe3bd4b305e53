package windowdetect

import (
	"fmt"
	"strings"
)

const defaultDarwinApp = "zoom.us"

// Lists "<process>\t<title>" per line for every foreground process window.
const darwinListScript = `
	set output to ""
	tell application "System Events"
		repeat with proc in (every process whose background only is false)
			set procName to name of proc
			try
				repeat with win in (every window of proc)
					set output to output & procName & tab & (name of win as string) & linefeed
				end repeat
			end try
		end repeat
	end tell
	return output
`

const darwinFocusScript = `
	tell application "System Events"
		tell process "%s"
			set frontmost to true
			try
				perform action "AXRaise" of (first window whose name is "%s")
			end try
		end tell
	end tell
`

type darwinDetector struct {
	run commandRunner
}

func newDarwinDetector(run commandRunner) platformDetector {
	return &darwinDetector{run: run}
}

func (d *darwinDetector) name() string {
	return "osascript"
}

func (d *darwinDetector) listWindows() ([]WindowInfo, error) {
	output, err := d.run("osascript", "-e", darwinListScript)
	if err != nil {
		return nil, fmt.Errorf("osascript window query failed: %w", err)
	}
	return parseDarwinWindows(string(output)), nil
}

func parseDarwinWindows(output string) []WindowInfo {
	var windows []WindowInfo
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		title := strings.TrimSpace(parts[1])
		if title == "" || title == "missing value" {
			continue
		}
		windows = append(windows, WindowInfo{
			AppName: strings.TrimSpace(parts[0]),
			Title:   title,
		})
	}
	return windows
}

func (d *darwinDetector) focusWindow(w WindowInfo) error {
	app := darwinApp(w)
	script := fmt.Sprintf(darwinFocusScript, appleScriptEscape(app), appleScriptEscape(w.Title))
	if _, err := d.run("osascript", "-e", script); err != nil {
		return fmt.Errorf("failed to focus %q: %w", w.Title, err)
	}
	return nil
}

// quitApplication only ever quits Zoom, whichever window was chosen.
func (d *darwinDetector) quitApplication(w WindowInfo) error {
	app := darwinApp(w)
	script := fmt.Sprintf(`tell application "%s" to quit`, appleScriptEscape(app))
	if _, err := d.run("osascript", "-e", script); err != nil {
		return fmt.Errorf("failed to quit %s: %w", app, err)
	}
	return nil
}

func darwinApp(w WindowInfo) string {
	if w.OwnedByZoom() {
		return w.AppName
	}
	return defaultDarwinApp
}

func checkDarwinPermissions(run commandRunner) error {
	script := `tell application "System Events" to return name of every process`
	if _, err := run("osascript", "-e", script); err != nil {
		return fmt.Errorf("System Events access denied: %w", err)
	}
	return nil
}

func appleScriptEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
