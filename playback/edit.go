package playback

import (
	"sort"

	"github.com/calyptra/framevisx/internal/overlay"
)

// Edit is a mutation applied against the overlay at a tick boundary.
type Edit func(o *overlay.Overlay) error

// editWithMeta adds sequencing metadata for deterministic ordering.
type editWithMeta struct {
	apply       Edit
	sequenceNum uint64
	priority    int
}

// sortEdits orders a tick's edit batch: higher priority first, then
// submission order. Stable sort preserves insertion order for equal
// priorities.
func sortEdits(edits []editWithMeta) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].priority != edits[j].priority {
			return edits[i].priority > edits[j].priority
		}
		return edits[i].sequenceNum < edits[j].sequenceNum
	})
}
