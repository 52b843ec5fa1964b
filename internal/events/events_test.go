package events

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/crtsim/internal/crt"
)

func TestBufferFlushPreservesOrder(t *testing.T) {
	var buf Buffer
	d := buf.Dispatcher()
	d.DispatchChangeBlurLevel(2)
	d.DispatchTopMessage("Blur level: 2")
	d.DispatchCameraUpdate(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	d.DispatchColorRepresentation(crt.Overlapping)

	if buf.Len() != 4 {
		t.Fatalf("expected 4 buffered events, got %d", buf.Len())
	}

	rec := NewRecorder()
	buf.Flush(rec.Dispatcher())
	if buf.Len() != 0 {
		t.Error("flush should empty the buffer")
	}

	want := []Kind{BlurLevel, TopMessage, CameraUpdate, ColorRepresentation}
	if len(rec.Events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(rec.Events))
	}
	for i, k := range want {
		if rec.Events[i].Kind != k {
			t.Errorf("event %d: expected %s, got %s", i, k, rec.Events[i].Kind)
		}
	}
	pose := rec.Events[2].Value.(CameraPose)
	if pose.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("unexpected pose %v", pose)
	}
}

func TestBufferDiscard(t *testing.T) {
	var buf Buffer
	buf.Dispatcher().DispatchExitingSession()
	buf.Discard()
	rec := NewRecorder()
	buf.Flush(rec.Dispatcher())
	if len(rec.Events) != 0 {
		t.Errorf("discarded events were delivered: %v", rec.Events)
	}
}

func TestRecorderQueries(t *testing.T) {
	rec := NewRecorder()
	d := rec.Dispatcher()
	d.DispatchTopMessage("a")
	d.DispatchFPS(60)
	d.DispatchTopMessage("b")

	if rec.Count(TopMessage) != 2 {
		t.Errorf("expected 2 messages, got %d", rec.Count(TopMessage))
	}
	if msgs := rec.Messages(); msgs[0] != "a" || msgs[1] != "b" {
		t.Errorf("unexpected messages %v", msgs)
	}
	if v, ok := rec.Last(FPS); !ok || v.(float32) != 60 {
		t.Errorf("unexpected fps %v", v)
	}
	if _, ok := rec.Last(MaximumValue); ok {
		t.Error("no maximum value was dispatched")
	}
}

func TestMultiAndLog(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rec := NewRecorder()

	d := Multi(rec.Dispatcher(), NewLogDispatcher(logger))
	d.DispatchTopMessage("Screen wave ON.")
	d.DispatchScreenshot(Screenshot{Pixels: make([]byte, 16), Width: 2, Height: 2, Multiplier: 1})

	if rec.Count(ScreenshotTaken) != 1 {
		t.Error("recorder missed the screenshot")
	}
	log := out.String()
	if !strings.Contains(log, "Screen wave ON.") {
		t.Errorf("top message not logged: %s", log)
	}
	if !strings.Contains(log, "width=2") {
		t.Errorf("screenshot summary not logged: %s", log)
	}
}
