package events

import (
	"fmt"
	"log/slog"
)

// Nop discards every notification.
var Nop Dispatcher = Func(func(Event) {})

// Buffer holds notifications until Flush. The updater writes into a Buffer
// so a failed tick leaves nothing behind.
type Buffer struct {
	events []Event
}

func (b *Buffer) Dispatcher() Dispatcher {
	return Func(func(e Event) { b.events = append(b.events, e) })
}

func (b *Buffer) Len() int { return len(b.events) }

// Flush delivers the buffered notifications in order and empties the buffer.
func (b *Buffer) Flush(d Dispatcher) {
	events := b.events
	b.events = nil
	for _, e := range events {
		Deliver(d, e)
	}
}

// Discard drops everything buffered so far.
func (b *Buffer) Discard() { b.events = nil }

// Recorder keeps every notification it receives.
type Recorder struct {
	Events []Event
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Dispatcher() Dispatcher {
	return Func(func(e Event) { r.Events = append(r.Events, e) })
}

// Of returns the payloads recorded for kind, oldest first.
func (r *Recorder) Of(kind Kind) []any {
	var out []any
	for _, e := range r.Events {
		if e.Kind == kind {
			out = append(out, e.Value)
		}
	}
	return out
}

func (r *Recorder) Count(kind Kind) int { return len(r.Of(kind)) }

// Last returns the newest payload for kind.
func (r *Recorder) Last(kind Kind) (any, bool) {
	for i := len(r.Events) - 1; i >= 0; i-- {
		if r.Events[i].Kind == kind {
			return r.Events[i].Value, true
		}
	}
	return nil, false
}

// Messages returns the top messages in order.
func (r *Recorder) Messages() []string {
	var out []string
	for _, v := range r.Of(TopMessage) {
		out = append(out, v.(string))
	}
	return out
}

func (r *Recorder) Reset() { r.Events = nil }

// NewLogDispatcher logs top messages at Info and everything else at Debug.
// Screenshot pixels are summarised, never logged.
func NewLogDispatcher(logger *slog.Logger) Dispatcher {
	return Func(func(e Event) {
		switch v := e.Value.(type) {
		case string:
			if e.Kind == TopMessage {
				logger.Info(v)
				return
			}
			logger.Debug("event", "kind", e.Kind, "value", v)
		case Screenshot:
			logger.Info("screenshot", "width", v.Width, "height", v.Height, "multiplier", v.Multiplier)
		case nil:
			logger.Debug("event", "kind", e.Kind)
		default:
			logger.Debug("event", "kind", e.Kind, "value", fmt.Sprint(v))
		}
	})
}

// Multi fans every notification out to each dispatcher in turn.
func Multi(ds ...Dispatcher) Dispatcher {
	return Func(func(e Event) {
		for _, d := range ds {
			Deliver(d, e)
		}
	})
}
