// Package dataset provides an in-memory stand-in for the host dataset: the
// component that owns the set of valid frame indices and announces frame
// additions and removals. It implements framevisx.FrameSource and feeds
// change notifications to the overlay runtime; it never dictates record
// content.
package dataset

import (
	"fmt"
	"sort"
	"sync"

	"github.com/calyptra/framevisx"
)

// Stack is a multi-frame dataset (image stack, sweep series) identified by
// monotonically assigned non-negative frame indices. Removing a frame leaves
// a hole; indices are never renumbered, so a record's frame association
// stays meaningful across removals.
//
// Thread-safe.
type Stack struct {
	mu     sync.RWMutex
	frames map[framevisx.FrameIndex]bool
	next   framevisx.FrameIndex
	feed   *Feed
}

// NewStack creates a stack with frames 0..n-1.
func NewStack(n int) *Stack {
	s := &Stack{
		frames: make(map[framevisx.FrameIndex]bool, n),
		next:   framevisx.FrameIndex(n),
	}
	for i := 0; i < n; i++ {
		s.frames[framevisx.FrameIndex(i)] = true
	}
	return s
}

// Len returns the number of valid frames.
func (s *Stack) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.frames)
}

// Contains reports whether frame f currently exists.
func (s *Stack) Contains(f framevisx.FrameIndex) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frames[f]
}

// ValidFrameIndices implements framevisx.FrameSource. The result is sorted
// ascending and safe for the caller to retain.
func (s *Stack) ValidFrameIndices() []framevisx.FrameIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]framevisx.FrameIndex, 0, len(s.frames))
	for f := range s.frames {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AddFrames appends n new frames and returns their indices in order.
// Announces one FrameAdded event per frame on the feed, if watching.
func (s *Stack) AddFrames(n int) []framevisx.FrameIndex {
	s.mu.Lock()
	added := make([]framevisx.FrameIndex, 0, n)
	for i := 0; i < n; i++ {
		f := s.next
		s.next++
		s.frames[f] = true
		added = append(added, f)
	}
	feed := s.feed
	s.mu.Unlock()

	if feed != nil {
		for _, f := range added {
			feed.emit(FrameEvent{Kind: FrameAdded, Frame: f})
		}
	}
	return added
}

// RemoveFrame deletes frame f from the dataset. Announces a FrameRemoved
// event on the feed, if watching.
func (s *Stack) RemoveFrame(f framevisx.FrameIndex) error {
	s.mu.Lock()
	if !s.frames[f] {
		s.mu.Unlock()
		return fmt.Errorf("frame %d not in dataset", f)
	}
	delete(s.frames, f)
	feed := s.feed
	s.mu.Unlock()

	if feed != nil {
		feed.emit(FrameEvent{Kind: FrameRemoved, Frame: f})
	}
	return nil
}

// Watch attaches (and returns) the stack's change feed. Subsequent frame
// additions and removals are announced on it. Calling Watch again returns
// the same feed.
func (s *Stack) Watch() *Feed {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.feed == nil {
		s.feed = newFeed(64)
	}
	return s.feed
}
