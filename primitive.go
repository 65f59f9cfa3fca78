package framevisx

import "fmt"

// FrameSource supplies the set of valid frame indices of the host dataset.
// The engine consults it only when an avoiding record must be expanded into
// explicit single-frame records (see Reassign). The returned slice is treated
// as an ordered set of non-negative indices.
type FrameSource interface {
	ValidFrameIndices() []FrameIndex
}

// FrameSourceFunc adapts a plain function to the FrameSource interface.
type FrameSourceFunc func() []FrameIndex

// ValidFrameIndices implements FrameSource.
func (f FrameSourceFunc) ValidFrameIndices() []FrameIndex {
	return f()
}

// Primitive is one graphical annotation object overlaid on multi-frame data.
// It exclusively owns an ordered sequence of records; order is irrelevant to
// visibility but preserved for deterministic iteration (UI listing). All
// mutation goes through Add, Reassign, ReassignAt, and Remove, which keep the
// sequence consistent:
//
//   - for every frame, at most one record is visible in it
//   - a ubiquitous record is always the only record
//   - at most one avoiding record exists
//   - an avoiding(f) record may coexist only with a single(f) record
//   - single-frame records occupy pairwise-distinct frames
//
// Primitive is not safe for concurrent mutation; callers serialize Reassign
// per primitive (internal/overlay and playback do this for their hosts).
// Queries are read-only and may run concurrently with each other.
type Primitive struct {
	records []*Record
	frames  FrameSource
}

// Option applies configuration to a Primitive via functional options.
type Option func(*Primitive)

// WithFrameSource wires the dataset collaborator used for expansion.
// Without one, expansion degrades to discarding the avoiding record.
func WithFrameSource(src FrameSource) Option {
	return func(p *Primitive) {
		p.frames = src
	}
}

// WithUbiquitousRecord seeds the primitive with a single ubiquitous record
// carrying the given payload. This is the conventional initial state of a
// freshly drawn annotation: visible everywhere.
func WithUbiquitousRecord(payload any) Option {
	return func(p *Primitive) {
		p.records = []*Record{newRecord(payload, Ubiquitous())}
	}
}

// NewPrimitive creates a primitive with an empty record sequence unless
// seeded by WithUbiquitousRecord.
func NewPrimitive(opts ...Option) *Primitive {
	p := &Primitive{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetFrameSource replaces the dataset collaborator.
func (p *Primitive) SetFrameSource(src FrameSource) {
	p.frames = src
}

// Len returns the number of records in the sequence.
func (p *Primitive) Len() int {
	return len(p.records)
}

// Records returns a snapshot copy of the record sequence in iteration order.
// Mutating the returned slice does not affect the primitive.
func (p *Primitive) Records() []*Record {
	out := make([]*Record, len(p.records))
	copy(out, p.records)
	return out
}

// RecordAt returns the record at position i, or false if out of range.
func (p *Primitive) RecordAt(i int) (*Record, bool) {
	if i < 0 || i >= len(p.records) {
		return nil, false
	}
	return p.records[i], true
}

// ActiveRecord returns the record visible in frame f, or false if no record
// applies there. Deterministic and side-effect free; the sequence invariants
// guarantee at most one record can match.
func (p *Primitive) ActiveRecord(f FrameIndex) (*Record, bool) {
	if f < 0 {
		return nil, false
	}
	for _, r := range p.records {
		if r.Covers(f) {
			return r, true
		}
	}
	return nil, false
}

// Add creates a new record with the given payload and introduces it into the
// sequence under assoc. Introduction runs through the same normalization as
// Reassign, with the new record as target, so the invariants hold on the
// result. Returns the created record.
func (p *Primitive) Add(payload any, assoc Association) (*Record, error) {
	if err := assoc.Validate(); err != nil {
		return nil, err
	}
	rec := newRecord(payload, assoc)
	p.apply(rec, assoc)
	return rec, nil
}

// Reassign changes target's frame association to assoc and rewrites the rest
// of the sequence so the invariants hold. target must currently be in the
// sequence; otherwise ErrInvalidTarget. A malformed assoc fails before any
// mutation. The rewrite is all-or-nothing.
//
// Cases:
//
//   - Ubiquitous: target becomes the sole record; all others are discarded.
//   - Avoiding(f): all other records are discarded except a single(f) record,
//     which exactly fills the gap the avoiding rule leaves.
//   - Single(f): an existing single(f) record is superseded (last writer
//     wins). An avoiding(f) record is left untouched; target fills its gap.
//     An avoiding(g) record with g != f can no longer express its coverage
//     once both f and g must fall outside it, so it is expanded: replaced by
//     explicit single-frame records for every valid frame except f and g.
//     Frame g ends up with no record at all.
func (p *Primitive) Reassign(target *Record, assoc Association) error {
	if err := assoc.Validate(); err != nil {
		return err
	}
	if target == nil || p.indexOf(target) < 0 {
		return ErrInvalidTarget
	}
	p.apply(target, assoc)
	return nil
}

// ReassignAt is Reassign addressing the target by sequence position.
func (p *Primitive) ReassignAt(i int, assoc Association) error {
	rec, ok := p.RecordAt(i)
	if !ok {
		return fmt.Errorf("%w: index %d", ErrInvalidTarget, i)
	}
	return p.Reassign(rec, assoc)
}

// Remove discards target from the sequence. Any subset of a consistent
// sequence is itself consistent, so no rewrite is needed.
func (p *Primitive) Remove(target *Record) error {
	i := p.indexOf(target)
	if i < 0 {
		return ErrInvalidTarget
	}
	p.records = append(p.records[:i], p.records[i+1:]...)
	return nil
}

func (p *Primitive) indexOf(target *Record) int {
	if target == nil {
		return -1
	}
	for i, r := range p.records {
		if r == target {
			return i
		}
	}
	return -1
}

// apply rewrites the sequence for target taking on assoc. assoc has been
// validated and target is either a current member or a fresh record being
// introduced. The new sequence is built aside and committed at the end.
func (p *Primitive) apply(target *Record, assoc Association) {
	out := make([]*Record, 0, len(p.records)+1)
	placed := false

	for _, r := range p.records {
		if r == target {
			out = append(out, target)
			placed = true
			continue
		}
		switch assoc.Kind() {
		case KindUbiquitous:
			// A ubiquitous record ends up alone.
		case KindAvoiding:
			// Keep only the single record filling the new gap.
			if r.assoc.Kind() == KindSingle && r.assoc.Frame() == assoc.Frame() {
				out = append(out, r)
			}
		case KindSingle:
			out = append(out, p.resolveSingleConflict(r, assoc.Frame())...)
		}
	}

	if !placed {
		out = append(out, target)
	}

	target.assoc = assoc
	p.records = out
}

// resolveSingleConflict decides the fate of record r when another record
// claims Single(f). Returns the records that replace r in the sequence
// (possibly r itself, unchanged).
func (p *Primitive) resolveSingleConflict(r *Record, f FrameIndex) []*Record {
	switch r.assoc.Kind() {
	case KindSingle:
		if r.assoc.Frame() == f {
			// Slot replacement: last writer wins.
			return nil
		}
		return []*Record{r}
	case KindAvoiding:
		if r.assoc.Frame() == f {
			// The avoiding rule already excludes exactly f; the claimant
			// fills its gap.
			return []*Record{r}
		}
		// Both f and the avoided frame must now fall outside r's coverage,
		// which a single avoiding rule cannot express. Enumerate the
		// remaining coverage explicitly.
		return p.expandAvoiding(r, f)
	case KindUbiquitous:
		// Reachable only when a record is being introduced alongside a sole
		// ubiquitous record. Relax it to avoiding the claimed frame: it keeps
		// covering everything else and the pair remains consistent.
		r.assoc = Avoiding(f)
		return []*Record{r}
	}
	return []*Record{r}
}

// expandAvoiding materializes the avoiding record old into explicit
// single-frame records over the dataset's valid frames, skipping claimed
// (now owned by the new single record) and old's own avoided frame, which is
// simply left without a record. With no frame source, or an empty dataset,
// old is discarded outright; there are no frames to be visible in.
func (p *Primitive) expandAvoiding(old *Record, claimed FrameIndex) []*Record {
	if p.frames == nil {
		return nil
	}
	valid := p.frames.ValidFrameIndices()
	if len(valid) == 0 {
		return nil
	}

	out := make([]*Record, 0, len(valid))
	seen := make(map[FrameIndex]bool, len(valid))
	avoided := old.assoc.Frame()
	for _, f := range valid {
		if f < 0 || f == claimed || f == avoided || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, newRecord(old.payload, Single(f)))
	}
	return out
}

// CheckInvariants verifies the sequence invariants. The engine
// maintains them structurally; this is the runtime assertion used by tests
// and the overlay runtime's debug path.
func (p *Primitive) CheckInvariants() error {
	var avoidingCount int
	var avoiding *Record
	singles := make(map[FrameIndex]*Record)

	for _, r := range p.records {
		if err := r.assoc.Validate(); err != nil {
			return err
		}
		switch r.assoc.Kind() {
		case KindUbiquitous:
			if len(p.records) != 1 {
				return fmt.Errorf("ubiquitous record %s coexists with %d others", r, len(p.records)-1)
			}
		case KindAvoiding:
			avoidingCount++
			avoiding = r
			if avoidingCount > 1 {
				return fmt.Errorf("multiple avoiding records, second is %s", r)
			}
		case KindSingle:
			f := r.assoc.Frame()
			if prev, dup := singles[f]; dup {
				return fmt.Errorf("records %s and %s both occupy frame %d", prev, r, f)
			}
			singles[f] = r
		}
	}

	if avoiding != nil {
		for f := range singles {
			if f != avoiding.assoc.Frame() {
				return fmt.Errorf("record single(%d) coexists with %s", f, avoiding)
			}
		}
	}
	return nil
}
