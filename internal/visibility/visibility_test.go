package visibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/ingot/internal/activity"
	"github.com/five82/ingot/internal/env/envtest"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestTracker_InitialStateFromEnvironment(t *testing.T) {
	e := envtest.New(epoch)
	e.SetVisible(false)

	act := activity.New(e, time.Minute)
	defer act.Close()
	tr := New(e, act, nil)
	defer tr.Close()

	assert.False(t, tr.IsVisible())
}

func TestTracker_HiddenThenVisibleResetsIdle(t *testing.T) {
	e := envtest.New(epoch)
	act := activity.New(e, 200*time.Millisecond)
	defer act.Close()

	var changes []bool
	tr := New(e, act, func(v bool) { changes = append(changes, v) })
	defer tr.Close()

	e.SetVisible(false)
	assert.False(t, tr.IsVisible())

	e.Advance(300 * time.Millisecond)
	require.True(t, act.IsIdle())

	e.SetVisible(true)
	assert.True(t, tr.IsVisible())
	assert.False(t, act.IsIdle(), "becoming visible clears idle")
	assert.Equal(t, epoch.Add(300*time.Millisecond), act.LastActivityAt())

	// The idle timer restarted at the visibility change.
	e.Advance(199 * time.Millisecond)
	assert.False(t, act.IsIdle())
	e.Advance(time.Millisecond)
	assert.True(t, act.IsIdle())

	assert.Equal(t, []bool{false, true}, changes)
}

func TestTracker_VisibleResetIgnoresThrottle(t *testing.T) {
	e := envtest.New(epoch)
	act := activity.New(e, 100*time.Millisecond)
	defer act.Close()
	tr := New(e, act, nil)
	defer tr.Close()

	require.True(t, act.RecordActivity())
	e.SetVisible(false)
	e.Advance(150 * time.Millisecond)
	require.True(t, act.IsIdle())

	e.SetVisible(true)
	assert.False(t, act.IsIdle())
}

func TestTracker_CloseStopsListening(t *testing.T) {
	e := envtest.New(epoch)
	act := activity.New(e, time.Minute)
	defer act.Close()
	tr := New(e, act, nil)

	tr.Close()
	tr.Close()
	e.SetVisible(false)

	assert.True(t, tr.IsVisible())
	_, v := e.Listeners()
	assert.Equal(t, 0, v)
}
