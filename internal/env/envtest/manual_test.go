package envtest

import (
	"testing"
	"time"

	"github.com/five82/ingot/internal/env"
)

func TestManual_AdvanceFiresInDeadlineOrder(t *testing.T) {
	start := time.Unix(0, 0)
	m := New(start)

	var order []string
	var at []time.Duration
	record := func(name string) func() {
		return func() {
			order = append(order, name)
			at = append(at, m.Now().Sub(start))
		}
	}
	m.SetTimer(300*time.Millisecond, record("c"))
	m.SetTimer(100*time.Millisecond, record("a"))
	m.SetTimer(200*time.Millisecond, record("b"))
	m.SetTimer(time.Second, record("late"))

	m.Advance(500 * time.Millisecond)

	if got := len(order); got != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("order = %v, want [a b c]", order)
	}
	if at[0] != 100*time.Millisecond || at[2] != 300*time.Millisecond {
		t.Fatalf("fire times = %v", at)
	}
	if got := m.Now().Sub(start); got != 500*time.Millisecond {
		t.Fatalf("Now() = +%v, want +500ms", got)
	}
	if m.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", m.Pending())
	}
}

func TestManual_CallbackScheduledTimerFiresWithinWindow(t *testing.T) {
	m := New(time.Unix(0, 0))
	fires := 0
	var rearm func()
	rearm = func() {
		fires++
		m.SetTimer(100*time.Millisecond, rearm)
	}
	m.SetTimer(100*time.Millisecond, rearm)

	m.Advance(350 * time.Millisecond)
	if fires != 3 {
		t.Fatalf("fires = %d, want 3", fires)
	}
}

func TestManual_ClearTimer(t *testing.T) {
	m := New(time.Unix(0, 0))
	fired := false
	id := m.SetTimer(time.Millisecond, func() { fired = true })
	m.ClearTimer(id)
	m.Advance(time.Second)
	if fired {
		t.Fatal("cleared timer fired")
	}
}

func TestManual_ActivityAndVisibility(t *testing.T) {
	m := New(time.Unix(0, 0))
	var kinds []env.Kind
	var vis []bool
	m.OnActivity(func(k env.Kind) { kinds = append(kinds, k) })
	m.OnVisibilityChange(func(v bool) { vis = append(vis, v) })

	m.Activity(env.TouchStart)
	m.SetVisible(false)

	if len(kinds) != 1 || kinds[0] != env.TouchStart {
		t.Fatalf("kinds = %v", kinds)
	}
	if len(vis) != 1 || vis[0] {
		t.Fatalf("visibility = %v", vis)
	}
	if m.Visible() {
		t.Fatal("Visible() = true after SetVisible(false)")
	}
}
