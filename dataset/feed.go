package dataset

import (
	"sync"

	"github.com/calyptra/framevisx"
)

// FrameEventKind distinguishes dataset shape changes.
type FrameEventKind string

const (
	FrameAdded   FrameEventKind = "frameAdded"
	FrameRemoved FrameEventKind = "frameRemoved"
)

// FrameEvent announces one dataset shape change.
type FrameEvent struct {
	Kind  FrameEventKind
	Frame framevisx.FrameIndex
}

// Feed is a buffered channel of dataset change events. Emission is
// non-blocking: events are dropped when the consumer falls behind, which is
// acceptable because consumers reconcile against ValidFrameIndices rather
// than replaying a log.
type Feed struct {
	ch     chan FrameEvent
	mu     sync.Mutex
	closed bool
}

func newFeed(buf int) *Feed {
	return &Feed{
		ch: make(chan FrameEvent, buf),
	}
}

// Events returns the receive-only event channel. It is closed by Close.
func (f *Feed) Events() <-chan FrameEvent {
	return f.ch
}

func (f *Feed) emit(ev FrameEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	select {
	case f.ch <- ev:
	default:
		// drop if full
	}
}

// Close stops the feed and closes the event channel. Stack mutations after
// Close are still safe, their events are simply discarded. Close is
// idempotent.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	close(f.ch)
}
