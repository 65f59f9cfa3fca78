package framevisx

import "fmt"

// PrimitiveBuilder provides a fluent API for seeding a primitive with a
// declared record set, using string labels instead of juggling *Record
// values during construction.
//
// Build validates the declared set against the sequence invariants before
// creating anything, then introduces each record through the engine's own
// mutation path. A declared set that passes validation is never rewritten by
// introduction, so every label resolves to a live record afterwards.
type PrimitiveBuilder struct {
	frames FrameSource
	seeds  []seed
	labels map[string]int // label -> seed index
	built  map[string]*Record
}

type seed struct {
	label   string
	payload any
	assoc   Association
}

// NewPrimitiveBuilder creates a new builder for constructing a primitive.
func NewPrimitiveBuilder() *PrimitiveBuilder {
	return &PrimitiveBuilder{
		labels: make(map[string]int),
	}
}

// FrameSource wires the dataset collaborator into the built primitive.
func (b *PrimitiveBuilder) FrameSource(src FrameSource) *PrimitiveBuilder {
	b.frames = src
	return b
}

// Ubiquitous declares a record visible in every frame.
func (b *PrimitiveBuilder) Ubiquitous(label string, payload any) *PrimitiveBuilder {
	return b.declare(label, payload, Ubiquitous())
}

// Avoiding declares a record visible everywhere except frame f.
func (b *PrimitiveBuilder) Avoiding(label string, payload any, f FrameIndex) *PrimitiveBuilder {
	return b.declare(label, payload, Avoiding(f))
}

// Single declares a record visible only in frame f.
func (b *PrimitiveBuilder) Single(label string, payload any, f FrameIndex) *PrimitiveBuilder {
	return b.declare(label, payload, Single(f))
}

func (b *PrimitiveBuilder) declare(label string, payload any, assoc Association) *PrimitiveBuilder {
	if i, exists := b.labels[label]; exists {
		// Redeclaring a label overrides the earlier declaration.
		b.seeds[i] = seed{label: label, payload: payload, assoc: assoc}
		return b
	}
	b.labels[label] = len(b.seeds)
	b.seeds = append(b.seeds, seed{label: label, payload: payload, assoc: assoc})
	return b
}

// Build validates the declared record set and constructs the primitive.
// Returns an error if any declared association is malformed or the set as a
// whole violates the sequence invariants.
func (b *PrimitiveBuilder) Build() (*Primitive, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	var opts []Option
	if b.frames != nil {
		opts = append(opts, WithFrameSource(b.frames))
	}
	p := NewPrimitive(opts...)

	b.built = make(map[string]*Record, len(b.seeds))
	for _, s := range b.seeds {
		rec, err := p.Add(s.payload, s.assoc)
		if err != nil {
			return nil, fmt.Errorf("seeding record %q: %w", s.label, err)
		}
		b.built[s.label] = rec
	}
	return p, nil
}

// Built returns the record created for label by the last Build call.
func (b *PrimitiveBuilder) Built(label string) (*Record, bool) {
	rec, ok := b.built[label]
	return rec, ok
}

// validate checks the declared set against the sequence invariants without
// constructing it.
func (b *PrimitiveBuilder) validate() error {
	var avoiding *seed
	singles := make(map[FrameIndex]string)

	for i := range b.seeds {
		s := &b.seeds[i]
		if err := s.assoc.Validate(); err != nil {
			return fmt.Errorf("record %q: %w", s.label, err)
		}
		switch s.assoc.Kind() {
		case KindUbiquitous:
			if len(b.seeds) > 1 {
				return fmt.Errorf("ubiquitous record %q cannot coexist with other records", s.label)
			}
		case KindAvoiding:
			if avoiding != nil {
				return fmt.Errorf("records %q and %q are both frame-avoiding", avoiding.label, s.label)
			}
			avoiding = s
		case KindSingle:
			f := s.assoc.Frame()
			if prev, dup := singles[f]; dup {
				return fmt.Errorf("records %q and %q both occupy frame %d", prev, s.label, f)
			}
			singles[f] = s.label
		}
	}

	if avoiding != nil {
		for f, label := range singles {
			if f != avoiding.assoc.Frame() {
				return fmt.Errorf("record %q at frame %d conflicts with avoiding record %q", label, f, avoiding.label)
			}
		}
	}
	return nil
}
