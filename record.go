package framevisx

import (
	"fmt"

	"github.com/google/uuid"
)

// Record pairs an opaque payload (geometry/appearance, not interpreted here)
// with the frame association governing its visibility. Records live inside
// exactly one Primitive and are created and discarded by its mutation
// operations, never constructed into a live sequence directly.
type Record struct {
	id      uuid.UUID
	payload any
	assoc   Association
}

func newRecord(payload any, assoc Association) *Record {
	return &Record{
		id:      uuid.New(),
		payload: payload,
		assoc:   assoc,
	}
}

// ID returns the record's stable identity. It survives reassignment; a
// replaced record's ID disappears with it.
func (r *Record) ID() uuid.UUID {
	return r.id
}

// Payload returns the opaque payload the record carries.
func (r *Record) Payload() any {
	return r.payload
}

// SetPayload replaces the record's payload. Payload content never affects
// visibility, so this needs no sequence-level coordination.
func (r *Record) SetPayload(payload any) {
	r.payload = payload
}

// Association returns the record's current frame association.
func (r *Record) Association() Association {
	return r.assoc
}

// Covers reports whether the record is visible in frame f.
func (r *Record) Covers(f FrameIndex) bool {
	return r.assoc.Covers(f)
}

func (r *Record) String() string {
	return fmt.Sprintf("record[%s %s]", shortID(r.id), r.assoc)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
