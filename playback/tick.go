package playback

import (
	"github.com/calyptra/framevisx"
	"github.com/calyptra/framevisx/internal/monitoring"
)

// processTick runs one complete tick: drain and order the edit batch, apply
// it, then resolve and render the frame under the cursor.
func (rt *Runtime) processTick() {
	edits := rt.collectEdits()
	sortEdits(edits)

	for _, e := range edits {
		if err := e.apply(rt.overlay); err != nil {
			// A rejected edit is the submitter's problem, not playback's.
			monitoring.Logf("playback: edit %d: %v", e.sequenceNum, err)
		}
	}

	frame, ok := rt.advanceCursor()
	if !ok {
		return // empty dataset, nothing to render
	}

	if rt.renderer != nil {
		rt.renderer.RenderFrame(rt.TickNumber(), frame, rt.overlay.ActiveAt(frame))
	}
}

// collectEdits atomically retrieves and clears the edit batch.
func (rt *Runtime) collectEdits() []editWithMeta {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()

	edits := rt.editBatch
	rt.editBatch = make([]editWithMeta, 0, cap(rt.editBatch))
	return edits
}

// advanceCursor moves to the next frame, clamping at the last frame or
// wrapping when looping. Returns the frame now under the cursor.
func (rt *Runtime) advanceCursor() (framevisx.FrameIndex, bool) {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()

	valid := rt.frames.ValidFrameIndices()
	if len(valid) == 0 {
		return 0, false
	}

	if rt.tickNum > 0 {
		rt.cursor++
	}
	if rt.cursor >= len(valid) {
		if rt.loop {
			rt.cursor = 0
		} else {
			rt.cursor = len(valid) - 1
		}
	}
	return valid[rt.cursor], true
}

// frameAt resolves a cursor position against the current frame list.
// Caller holds batchMu.
func (rt *Runtime) frameAt(i int) (framevisx.FrameIndex, bool) {
	valid := rt.frames.ValidFrameIndices()
	if len(valid) == 0 {
		return 0, false
	}
	if i >= len(valid) {
		i = len(valid) - 1
	}
	return valid[i], true
}
