package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/ingot/internal/env"
	"github.com/five82/ingot/internal/env/envtest"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestTracker_StartsActive(t *testing.T) {
	e := envtest.New(epoch)
	tr := New(e, 200*time.Millisecond)
	defer tr.Close()

	assert.False(t, tr.IsIdle())
	assert.Equal(t, epoch, tr.LastActivityAt())
	assert.Equal(t, 1, e.Pending())
}

func TestTracker_GoesIdleAfterThreshold(t *testing.T) {
	e := envtest.New(epoch)
	var flips []bool
	tr := New(e, 200*time.Millisecond, WithOnChange(func(idle bool) { flips = append(flips, idle) }))
	defer tr.Close()

	e.Advance(199 * time.Millisecond)
	assert.False(t, tr.IsIdle())

	e.Advance(51 * time.Millisecond)
	assert.True(t, tr.IsIdle())

	e.Advance(5 * time.Second)
	assert.Equal(t, []bool{true}, flips, "idle should flip exactly once per quiet period")
}

func TestTracker_ActivityRestartsIdleTimer(t *testing.T) {
	e := envtest.New(epoch)
	tr := New(e, 200*time.Millisecond, WithThrottle(0))
	defer tr.Close()

	e.Advance(150 * time.Millisecond)
	require.True(t, tr.RecordActivity())

	e.Advance(150 * time.Millisecond)
	assert.False(t, tr.IsIdle(), "timer should restart from the last activity")

	e.Advance(60 * time.Millisecond)
	assert.True(t, tr.IsIdle())
}

func TestTracker_RecordActivityThrottled(t *testing.T) {
	e := envtest.New(epoch)
	tr := New(e, time.Minute)
	defer tr.Close()

	require.True(t, tr.RecordActivity())
	first := tr.LastActivityAt()

	for i := 0; i < 4; i++ {
		e.Advance(200 * time.Millisecond)
		assert.False(t, tr.RecordActivity(), "call %d inside window", i)
	}
	assert.Equal(t, first, tr.LastActivityAt())

	e.Advance(200 * time.Millisecond)
	assert.True(t, tr.RecordActivity())
	assert.Equal(t, epoch.Add(time.Second), tr.LastActivityAt())
}

func TestTracker_ActivityClearsIdle(t *testing.T) {
	e := envtest.New(epoch)
	var flips []bool
	tr := New(e, 200*time.Millisecond, WithOnChange(func(idle bool) { flips = append(flips, idle) }))
	defer tr.Close()

	e.Advance(250 * time.Millisecond)
	require.True(t, tr.IsIdle())

	e.Activity(env.PointerMove)
	assert.False(t, tr.IsIdle())
	assert.Equal(t, epoch.Add(250*time.Millisecond), tr.LastActivityAt())
	assert.Equal(t, []bool{true, false}, flips)
}

func TestTracker_TouchBypassesThrottle(t *testing.T) {
	e := envtest.New(epoch)
	tr := New(e, 200*time.Millisecond)
	defer tr.Close()

	require.True(t, tr.RecordActivity())
	e.Advance(300 * time.Millisecond)
	require.True(t, tr.IsIdle())

	assert.False(t, tr.RecordActivity(), "still inside throttle window")
	assert.True(t, tr.IsIdle())

	tr.Touch()
	assert.False(t, tr.IsIdle())
	assert.Equal(t, epoch.Add(300*time.Millisecond), tr.LastActivityAt())
}

func TestTracker_CloseDetachesAndClearsTimer(t *testing.T) {
	e := envtest.New(epoch)
	tr := New(e, 200*time.Millisecond)

	tr.Close()
	tr.Close()

	assert.Equal(t, 0, e.Pending())
	a, _ := e.Listeners()
	assert.Equal(t, 0, a)

	e.Advance(time.Second)
	assert.False(t, tr.IsIdle(), "no callbacks after teardown")
	assert.False(t, tr.RecordActivity())
}
