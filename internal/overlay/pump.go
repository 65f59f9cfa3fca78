// Feed pump: reconciles primitive state with dataset shape changes.
package overlay

import (
	"github.com/calyptra/framevisx"
	"github.com/calyptra/framevisx/dataset"
)

// StartPump begins consuming the wired dataset feed in a background
// goroutine. Frame removals are compacted into the managed primitives;
// frame additions need no reconciliation because avoiding and ubiquitous
// records already cover new frames. StartPump is a no-op without a feed and
// is safe to call more than once.
func (o *Overlay) StartPump() {
	if o.feed == nil {
		return
	}
	o.pumpOnce.Do(func() {
		go o.pump()
	})
}

// StopPump stops the background pump. It does not close the feed itself;
// that remains the dataset owner's job. Safe to call from multiple
// goroutines.
func (o *Overlay) StopPump() {
	o.stopOnce.Do(func() {
		close(o.done)
	})
}

func (o *Overlay) pump() {
	for {
		select {
		case <-o.done:
			return
		case ev, ok := <-o.feed.Events():
			if !ok {
				return
			}
			if ev.Kind == dataset.FrameRemoved {
				o.Compact(ev.Frame)
			}
		}
	}
}

// Compact reconciles every managed primitive with the removal of frame f:
// records pinned to f alone are discarded, and records avoiding f relax to
// ubiquitous since the excluded frame no longer exists. Exposed for callers
// that drive dataset changes synchronously instead of through a feed.
func (o *Overlay) Compact(f framevisx.FrameIndex) {
	o.mu.Lock()
	for _, e := range o.prims {
		compactPrimitive(e.prim, f)
	}
	o.mu.Unlock()

	o.commit(ChangeEvent{Kind: FrameCompacted, Frame: f})
}

func compactPrimitive(p *framevisx.Primitive, f framevisx.FrameIndex) {
	for _, r := range p.Records() {
		a := r.Association()
		switch {
		case a.Kind() == framevisx.KindSingle && a.Frame() == f:
			// Pinned to a frame that no longer exists.
			_ = p.Remove(r)
		case a.Kind() == framevisx.KindAvoiding && a.Frame() == f:
			_ = p.Reassign(r, framevisx.Ubiquitous())
		}
	}
}
