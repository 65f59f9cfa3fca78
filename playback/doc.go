// Package playback provides a tick-based runtime for driving an overlay
// through its dataset's frames at a fixed rate.
//
// Interactive hosts (viewers, editors) race two things: the frame cursor
// advancing on a clock, and users mutating annotation records. The runtime
// removes that race by batching edit requests between ticks and applying
// them in deterministic sequence order at the tick boundary, before the
// frame's visibility is resolved and handed to the renderer. Within one
// tick the overlay is therefore mutated from exactly one goroutine.
//
// Usage:
//
//	rt := playback.NewRuntime(ov, stack, renderer, playback.Config{
//		TickRate: time.Second / 24,
//		Loop:     true,
//	})
//	rt.Start(ctx)
//	rt.SubmitEdit(func(o *overlay.Overlay) error {
//		return o.Reassign(id, rec, framevisx.Single(7))
//	})
//	...
//	rt.Stop()
package playback
