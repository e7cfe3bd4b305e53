package notification

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	calls [][]string
	err   error
}

func (r *recordingRunner) run(name string, args ...string) error {
	r.calls = append(r.calls, append([]string{name}, args...))
	return r.err
}

func TestDarwinNotifier(t *testing.T) {
	runner := &recordingRunner{}
	n := &baseNotifier{platform: newDarwinNotifier(runner.run)}

	require.NoError(t, n.NotifyMeetingLeft(2))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "osascript", runner.calls[0][0])
	assert.Equal(t, `display notification "Left the meeting (2 participant(s) remaining)" with title "Zoom Auto Leaver"`, runner.calls[0][2])
}

func TestDarwinNotifierEscapesQuotes(t *testing.T) {
	runner := &recordingRunner{}
	n := &baseNotifier{platform: newDarwinNotifier(runner.run)}

	require.NoError(t, n.Notify(`Say "bye"`, `back\slash`))
	script := runner.calls[0][2]
	assert.True(t, strings.Contains(script, `"back\\slash"`))
	assert.True(t, strings.Contains(script, `"Say \"bye\""`))
}

func TestDarwinNotifierError(t *testing.T) {
	runner := &recordingRunner{err: errors.New("exit status 1")}
	n := &baseNotifier{platform: newDarwinNotifier(runner.run)}
	assert.Error(t, n.Notify("t", "m"))
}

func TestSilentNotifier(t *testing.T) {
	n := NewSilent()
	assert.NoError(t, n.Notify("t", "m"))
	assert.NoError(t, n.NotifyMeetingLeft(1))
}
