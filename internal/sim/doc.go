// Package sim owns the per-tick state update of the CRT simulation.
//
// A session is a [Resources] value created by [Initialize] and advanced by
// [Update] (or a [Ticker] wrapping it) once per frame:
//
//	res, _ := sim.Initialize(video, crt.DefaultShadows(), now)
//	sim.DispatchAll(res, d)
//	for running {
//		running, err = ticker.Tick(now)
//		drawer.Draw(res, d)
//	}
//
// # Atomic ticks
//
// Update works on a copy of the resources and buffers every notification.
// Only a tick that finishes without error is committed and flushed, so a
// malformed custom event leaves the session exactly as it was.
//
// # Thread Safety
//
// Resources are owned by the frame loop and are NOT safe for concurrent use.
package sim
