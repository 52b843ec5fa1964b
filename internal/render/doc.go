// Package render turns simulation resources into GPU work.
//
// The [Drawer] issues one frame as a fixed sequence of passes against a
// [BufferStack] of off-screen targets. It only talks to a [Backend], so the
// sequence can be checked against [NullBackend] without a GPU:
//
//	nb := render.NewNullBackend()
//	nb.Tracing = true
//	err := render.NewDrawer(nb).Draw(res, events.Nop)
//
// Stack protocol violations and backend errors are fatal for the frame and
// come back as a [*FrameError].
package render
