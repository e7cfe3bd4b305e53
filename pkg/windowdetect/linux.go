package windowdetect

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

type linuxDetector struct {
	run         commandRunner
	processName func(pid int) string
}

func newLinuxDetector(run commandRunner) platformDetector {
	if err := checkXdotool(); err != nil {
		// Return nil so higher layers can handle the error
		return nil
	}
	return &linuxDetector{run: run, processName: lookupProcessName}
}

// checkXdotool checks if xdotool is installed
func checkXdotool() error {
	_, err := exec.LookPath("xdotool")
	if err != nil {
		return fmt.Errorf("xdotool is not installed - window detection will not work. Install it using:\n" +
			"Fedora: sudo dnf install xdotool\n" +
			"Ubuntu/Debian: sudo apt-get install xdotool\n" +
			"Arch Linux: sudo pacman -S xdotool")
	}
	return nil
}

func (d *linuxDetector) name() string {
	return "xdotool"
}

func (d *linuxDetector) listWindows() ([]WindowInfo, error) {
	output, err := d.run("xdotool", "search", "--onlyvisible", "--name", ".")
	if err != nil {
		// xdotool exits 1 when the search matched nothing
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("xdotool search failed: %w", err)
	}

	var windows []WindowInfo
	for _, id := range strings.Fields(string(output)) {
		name, err := d.run("xdotool", "getwindowname", id)
		if err != nil {
			// Windows can vanish between search and query
			continue
		}
		title := strings.TrimSpace(string(name))
		if title == "" {
			continue
		}

		info := WindowInfo{Title: title, ID: id}
		if out, err := d.run("xdotool", "getwindowpid", id); err == nil {
			if pid, err := strconv.Atoi(strings.TrimSpace(string(out))); err == nil {
				info.PID = pid
				info.AppName = d.processName(pid)
			}
		}
		windows = append(windows, info)
	}
	return windows, nil
}

func (d *linuxDetector) focusWindow(w WindowInfo) error {
	if w.ID == "" {
		return fmt.Errorf("window %q has no X11 id", w.Title)
	}
	if _, err := d.run("xdotool", "windowactivate", "--sync", w.ID); err != nil {
		return fmt.Errorf("failed to activate window %s: %w", w.ID, err)
	}
	return nil
}

func (d *linuxDetector) quitApplication(WindowInfo) error {
	return ErrUnsupported
}

func lookupProcessName(pid int) string {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return ""
	}
	name, err := p.Name()
	if err != nil {
		return ""
	}
	return name
}
