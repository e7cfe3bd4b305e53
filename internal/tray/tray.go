package tray

import (
	"fmt"
	"io"

	"github.com/dooshek/zoomleaver/internal/config"
	"github.com/dooshek/zoomleaver/internal/detection"
	"github.com/dooshek/zoomleaver/internal/logger"
	"github.com/dooshek/zoomleaver/internal/monitor"
	"github.com/dooshek/zoomleaver/internal/types"
	"github.com/getlantern/systray"
)

const (
	idleTitle       = "🏃"
	monitoringTitle = "🔍"
)

// App is what the menu drives.
type App interface {
	Start() bool
	Stop()
	Status() monitor.Status
	TestDetection() detection.Report
	TestLeave() bool
	Subscribe(fn func(monitor.Event))
	Config() types.Config
	RequestShutdown()
}

var (
	app    App
	out    io.Writer
	onExit func()

	toggleItem   *systray.MenuItem
	statusItem   *systray.MenuItem
	settingsItem *systray.MenuItem
	detectItem   *systray.MenuItem
	leaveItem    *systray.MenuItem
	quitItem     *systray.MenuItem
)

// Run starts the menu bar UI. This blocks the calling goroutine (must be main).
// Menu actions that produce a report write it to w.
func Run(a App, w io.Writer, onExitFn func()) {
	app = a
	out = w
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetTitle(idleTitle)
	systray.SetTooltip("Zoom Auto Leaver")

	header := systray.AddMenuItem("Zoom Auto Leaver", "")
	header.Disable()

	systray.AddSeparator()

	toggleItem = systray.AddMenuItem("", "Start or stop monitoring")
	statusItem = systray.AddMenuItem("", "")
	statusItem.Disable()

	systray.AddSeparator()

	settingsItem = systray.AddMenuItem("Settings", "Print current settings")
	detectItem = systray.AddMenuItem("Test Detection", "Test Zoom window detection")
	leaveItem = systray.AddMenuItem("Test Leave", "Run the leave sequence now")

	systray.AddSeparator()

	quitItem = systray.AddMenuItem("Quit", "Stop monitoring and quit")

	refresh()
	app.Subscribe(func(ev monitor.Event) {
		switch ev.Type {
		case monitor.EventStarted, monitor.EventStopped, monitor.EventLeft, monitor.EventCount:
			refresh()
		}
	})

	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-toggleItem.ClickedCh:
			if app.Status().Running {
				app.Stop()
			} else {
				app.Start()
			}
			refresh()

		case <-settingsItem.ClickedCh:
			printSettings(out, app.Config())

		case <-detectItem.ClickedCh:
			fmt.Fprintln(out, "\n🔍 Testing Zoom window detection...")
			fmt.Fprint(out, app.TestDetection().String())

		case <-leaveItem.ClickedCh:
			fmt.Fprintln(out, "\n🚪 Testing leave sequence...")
			fmt.Fprintln(out, "Make sure you're in a Zoom meeting first!")
			go func() {
				fmt.Fprintln(out, leaveResult(app.TestLeave()))
			}()

		case <-quitItem.ClickedCh:
			logger.Info("Quit requested from menu")
			app.RequestShutdown()
			return
		}
	}
}

func refresh() {
	l := labelsFor(app.Status(), app.Config().ParticipantThreshold)
	systray.SetTitle(l.title)
	toggleItem.SetTitle(l.toggle)
	statusItem.SetTitle(l.status)
}

type labels struct {
	title  string
	toggle string
	status string
}

func labelsFor(status monitor.Status, threshold int) labels {
	if status.Running {
		l := labels{
			title:  monitoringTitle,
			toggle: "⏸️ Stop Monitoring",
			status: fmt.Sprintf("Status: Monitoring (threshold: %d)", threshold),
		}
		if status.HasCount {
			l.status = fmt.Sprintf("Status: Monitoring (%d participants, threshold: %d)", status.LastCount, threshold)
		}
		return l
	}

	l := labels{title: idleTitle, toggle: "▶️ Start Monitoring", status: "Status: Stopped"}
	if status.State == monitor.LeftSuccessfully {
		l.status = "Status: Left meeting"
	}
	return l
}

func leaveResult(ok bool) string {
	if ok {
		return "Test result: ✅ Success"
	}
	return "Test result: ❌ Failed"
}

func printSettings(w io.Writer, cfg types.Config) {
	fmt.Fprintln(w, "\n==================================================")
	fmt.Fprintln(w, "Current Settings:")
	config.PrintSettings(w, cfg)
	fmt.Fprintln(w, "==================================================")
}
