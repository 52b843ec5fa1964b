package params

import (
	"math/rand"
	"testing"

	"github.com/san-kum/crtsim/internal/events"
)

func TestChangerProgression(t *testing.T) {
	v := float32(0.5)
	var fired []float32
	changed := New(&v, true, false, nil).
		SetProgression(0.1).
		SetMin(0).SetMax(1).
		SetTrigger(func(x float32) { fired = append(fired, x) }).
		Process()

	if !changed || len(fired) != 1 {
		t.Fatalf("expected one trigger, got changed=%v fired=%v", changed, fired)
	}
	if fired[0] != v {
		t.Errorf("trigger should receive the new value %v, got %v", v, fired[0])
	}
}

func TestChangerNoChangeNoTrigger(t *testing.T) {
	v := 3
	calls := 0
	changed := New(&v, true, true, nil).
		SetProgression(1).
		SetTrigger(func(int) { calls++ }).
		Process()
	if changed || calls != 0 || v != 3 {
		t.Errorf("inc and dec cancel out: changed=%v calls=%d v=%d", changed, calls, v)
	}
}

func TestChangerBoundaryNotifications(t *testing.T) {
	rec := events.NewRecorder()
	v := float32(0.95)
	New(&v, true, false, rec.Dispatcher()).SetProgression(0.1).SetMin(-1).SetMax(1).Process()
	if v != 1 {
		t.Errorf("expected clamp to 1, got %v", v)
	}
	if got, ok := rec.Last(events.MaximumValue); !ok || got.(float64) != 1 {
		t.Errorf("expected maximum notification, got %v", got)
	}

	rec.Reset()
	New(&v, true, false, rec.Dispatcher()).SetProgression(0.1).SetMin(-1).SetMax(1).Process()
	if rec.Count(events.MaximumValue) != 1 {
		t.Error("pressing at the bound still reports the bound")
	}
}

func TestChangerOverrideWins(t *testing.T) {
	v := 10
	o := 42
	New(&v, true, false, nil).SetProgression(5).SetOverride(&o).SetMin(0).SetMax(100).Process()
	if v != 42 {
		t.Errorf("override should win over progression, got %d", v)
	}

	o = 500
	rec := events.NewRecorder()
	New(&v, false, false, rec.Dispatcher()).SetOverride(&o).SetMax(100).Process()
	if v != 100 || rec.Count(events.MaximumValue) != 1 {
		t.Errorf("override is still clamped, got %d", v)
	}
}

func TestChangerStaysInRange(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	v := float32(0)
	for i := 0; i < 1000; i++ {
		start := v
		triggers := 0
		New(&v, r.Intn(2) == 0, r.Intn(3) == 0, nil).
			SetProgression(r.Float32() * 3).
			SetMin(-1).SetMax(1).
			SetTrigger(func(float32) { triggers++ }).
			Process()
		if v < -1 || v > 1 {
			t.Fatalf("iteration %d: value %v out of range", i, v)
		}
		want := 0
		if v != start {
			want = 1
		}
		if triggers != want {
			t.Fatalf("iteration %d: expected %d triggers, got %d", i, want, triggers)
		}
	}
}
