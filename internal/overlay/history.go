// Bounded per-primitive undo history over record sequence snapshots.
package overlay

import "github.com/calyptra/framevisx"

const defaultHistoryLimit = 32

// recordSnap captures one record's content. Identity is not captured;
// restoration mints fresh records.
type recordSnap struct {
	payload any
	assoc   framevisx.Association
}

// history keeps, per primitive, a bounded stack of sequence snapshots.
// Not self-locking: every call happens under the overlay's write lock.
type history struct {
	limit  int
	stacks map[string][][]recordSnap
}

func newHistory(limit int) *history {
	return &history{
		limit:  limit,
		stacks: make(map[string][][]recordSnap),
	}
}

// push appends a snapshot for id, evicting the oldest when the stack is at
// its limit.
func (h *history) push(id string, snap []recordSnap) {
	stack := h.stacks[id]
	if len(stack) >= h.limit {
		stack = stack[1:]
	}
	h.stacks[id] = append(stack, snap)
}

// pop removes and returns the most recent snapshot for id.
func (h *history) pop(id string) ([]recordSnap, bool) {
	stack := h.stacks[id]
	if len(stack) == 0 {
		return nil, false
	}
	snap := stack[len(stack)-1]
	h.stacks[id] = stack[:len(stack)-1]
	return snap, true
}

// clear drops all snapshots for id.
func (h *history) clear(id string) {
	delete(h.stacks, id)
}

// snapshotRecords captures the primitive's current sequence.
func snapshotRecords(p *framevisx.Primitive) []recordSnap {
	recs := p.Records()
	snap := make([]recordSnap, len(recs))
	for i, r := range recs {
		snap[i] = recordSnap{payload: r.Payload(), assoc: r.Association()}
	}
	return snap
}

// restoreRecords rebuilds the primitive's sequence from a snapshot. The
// snapshot was captured from a valid sequence, so re-adding its records in
// order reproduces it without triggering conflict resolution.
func restoreRecords(p *framevisx.Primitive, snap []recordSnap) error {
	for _, r := range p.Records() {
		if err := p.Remove(r); err != nil {
			return err
		}
	}
	for _, s := range snap {
		if _, err := p.Add(s.payload, s.assoc); err != nil {
			return err
		}
	}
	return nil
}
