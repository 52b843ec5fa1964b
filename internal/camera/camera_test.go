package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/crtsim/internal/events"
)

func near(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-4)
}

func TestAdvance(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 10}, 2, 3)
	c.Advance(Forward, 0.5)
	if !near(c.Position(), mgl32.Vec3{0, 0, 9}) {
		t.Errorf("forward: got %v", c.Position())
	}
	c.Advance(Right, 1)
	if !near(c.Position(), mgl32.Vec3{2, 0, 9}) {
		t.Errorf("right: got %v", c.Position())
	}
	c.Advance(Up, 1)
	c.Advance(Backward, 0.5)
	if !near(c.Position(), mgl32.Vec3{2, 2, 10}) {
		t.Errorf("up/backward: got %v", c.Position())
	}
}

func TestTurnKeepsLengths(t *testing.T) {
	c := New(mgl32.Vec3{}, 1, 3)
	c.Turn(Left, 0.4)
	c.Turn(Up, 0.2)
	c.Rotate(Right, 0.3)
	if math.Abs(float64(c.Direction().Len())-1) > 1e-4 || math.Abs(float64(c.AxisUp().Len())-1) > 1e-4 {
		t.Errorf("rotations should keep unit vectors, got %v %v", c.Direction(), c.AxisUp())
	}
	if near(c.Direction(), mgl32.Vec3{0, 0, -1}) {
		t.Error("direction should have changed")
	}
}

func TestLockedMode(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, 1, 3)
	c.LockedMode = true
	c.Turn(Left, 1)
	c.Rotate(Left, 1)
	c.Drag(100, 50)
	if !near(c.Direction(), mgl32.Vec3{0, 0, -1}) || !near(c.AxisUp(), mgl32.Vec3{0, 1, 0}) {
		t.Error("locked camera must not turn")
	}
	c.SetDirection(mgl32.Vec3{1, 0, 0})
	c.Advance(Forward, 1)
	if !near(c.Position(), mgl32.Vec3{0, 0, 4}) {
		t.Errorf("locked camera moves along world axes, got %v", c.Position())
	}
}

func TestChangeZoomClamps(t *testing.T) {
	tests := []struct {
		start, delta, want float32
		min, max           int
	}{
		{30, 5, 35, 0, 0},
		{30, -40, MinZoom, 1, 0},
		{40, 20, MaxZoom, 0, 1},
		{45, 1, MaxZoom, 0, 1},
	}
	for _, tt := range tests {
		rec := events.NewRecorder()
		c := New(mgl32.Vec3{}, 1, 1)
		c.Zoom = tt.start
		c.ChangeZoom(tt.delta, rec.Dispatcher())
		if c.Zoom != tt.want {
			t.Errorf("start %v delta %v: expected %v, got %v", tt.start, tt.delta, tt.want, c.Zoom)
		}
		if rec.Count(events.MinimumValue) != tt.min || rec.Count(events.MaximumValue) != tt.max {
			t.Errorf("start %v delta %v: unexpected bound notifications %v", tt.start, tt.delta, rec.Events)
		}
	}
}

func TestViewProjectionArePure(t *testing.T) {
	c := New(mgl32.Vec3{1, 2, 3}, 1, 1)
	v1, p1 := c.View(), c.Projection(800, 600)
	v2, p2 := c.View(), c.Projection(800, 600)
	if v1 != v2 || p1 != p2 {
		t.Error("view and projection must not change between calls")
	}
	if c.Position() != (mgl32.Vec3{1, 2, 3}) {
		t.Error("view must not move the camera")
	}
}

func TestUpdateDispatchesOnlyOnChange(t *testing.T) {
	rec := events.NewRecorder()
	c := New(mgl32.Vec3{0, 0, 1}, 1, 1)
	c.Update(rec.Dispatcher())
	c.Update(rec.Dispatcher())
	if rec.Count(events.CameraUpdate) != 1 {
		t.Fatalf("expected one update, got %d", rec.Count(events.CameraUpdate))
	}
	c.Advance(Left, 1)
	c.Update(rec.Dispatcher())
	if rec.Count(events.CameraUpdate) != 2 {
		t.Error("moving the camera should dispatch again")
	}
}

func TestReset(t *testing.T) {
	c := New(mgl32.Vec3{3, 3, 3}, 1, 1)
	c.Turn(Left, 1)
	c.Zoom = 10
	c.Reset(7)
	if c.Position() != (mgl32.Vec3{0, 0, 7}) || c.Direction() != (mgl32.Vec3{0, 0, -1}) ||
		c.AxisUp() != (mgl32.Vec3{0, 1, 0}) || c.Zoom != 45 {
		t.Errorf("unexpected pose after reset: %+v", c.Pose())
	}
}
