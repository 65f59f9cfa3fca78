// Package overlay provides the runtime tier above the frame-visibility
// engine: it owns a set of annotation primitives over one dataset,
// serializes their mutations, resolves per-frame visibility for the
// rendering surface, and reconciles dataset shape changes.
// Pluggable components (publisher, exporter, hooks) are wired via
// functional options.
package overlay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calyptra/framevisx"
	"github.com/calyptra/framevisx/dataset"
	"github.com/calyptra/framevisx/internal/monitoring"
)

// ChangeKind classifies overlay mutations for publishing.
type ChangeKind string

const (
	PrimitiveCreated ChangeKind = "primitiveCreated"
	PrimitiveRemoved ChangeKind = "primitiveRemoved"
	RecordAdded      ChangeKind = "recordAdded"
	RecordReassigned ChangeKind = "recordReassigned"
	RecordRemoved    ChangeKind = "recordRemoved"
	FrameCompacted   ChangeKind = "frameCompacted"
	Undone           ChangeKind = "undone"
)

// ChangeEvent describes one committed overlay mutation.
type ChangeEvent struct {
	Kind        ChangeKind
	PrimitiveID string
	Association framevisx.Association
	Frame       framevisx.FrameIndex
	Timestamp   time.Time
}

// Publisher receives committed change events.
type Publisher interface {
	Publish(ctx context.Context, ev ChangeEvent) error
	Close() error
}

// Guard may veto a record mutation before it is applied. A non-nil error
// aborts the mutation and is returned to the caller.
type Guard func(primitiveID string, assoc framevisx.Association) error

// Reactor observes committed change events synchronously.
type Reactor func(ev ChangeEvent)

// Overlay manages the annotation primitives of one dataset. All record
// mutation funnels through it under a single lock, giving the per-primitive
// serialization the engine requires. Visibility queries take a read lock
// and may run concurrently.
type Overlay struct {
	mu      sync.RWMutex
	frames  framevisx.FrameSource
	prims   map[string]*entry
	order   []string // creation order, for deterministic listing
	history *history

	publisher Publisher
	exporter  Exporter
	guard     Guard
	reactors  []Reactor
	feed      *dataset.Feed
	done      chan struct{}
	pumpOnce  sync.Once
	stopOnce  sync.Once
}

type entry struct {
	prim *framevisx.Primitive
	kind string
}

// New creates an overlay over the given dataset.
func New(frames framevisx.FrameSource, opts ...OverlayOption) *Overlay {
	o := &Overlay{
		frames:  frames,
		prims:   make(map[string]*entry),
		history: newHistory(defaultHistoryLimit),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CreatePrimitive registers a new primitive of the given kind, seeded with a
// single ubiquitous record carrying payload, and returns its assigned ID.
func (o *Overlay) CreatePrimitive(kind string, payload any) string {
	o.mu.Lock()
	id := uuid.NewString()
	p := framevisx.NewPrimitive(
		framevisx.WithFrameSource(o.frames),
		framevisx.WithUbiquitousRecord(payload),
	)
	o.prims[id] = &entry{prim: p, kind: kind}
	o.order = append(o.order, id)
	o.mu.Unlock()

	o.commit(ChangeEvent{Kind: PrimitiveCreated, PrimitiveID: id})
	return id
}

// AttachPrimitive registers an externally constructed primitive (e.g. one
// materialized from a scene file) under the given ID. The primitive's frame
// source is rewired to the overlay's dataset.
func (o *Overlay) AttachPrimitive(id, kind string, p *framevisx.Primitive) error {
	o.mu.Lock()
	if _, exists := o.prims[id]; exists {
		o.mu.Unlock()
		return fmt.Errorf("primitive %q already attached", id)
	}
	p.SetFrameSource(o.frames)
	o.prims[id] = &entry{prim: p, kind: kind}
	o.order = append(o.order, id)
	o.mu.Unlock()

	o.commit(ChangeEvent{Kind: PrimitiveCreated, PrimitiveID: id})
	return nil
}

// RemovePrimitive discards a primitive and its undo history.
func (o *Overlay) RemovePrimitive(id string) error {
	o.mu.Lock()
	if _, ok := o.prims[id]; !ok {
		o.mu.Unlock()
		return fmt.Errorf("primitive %q not found", id)
	}
	delete(o.prims, id)
	for i, oid := range o.order {
		if oid == id {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
	o.history.clear(id)
	o.mu.Unlock()

	o.commit(ChangeEvent{Kind: PrimitiveRemoved, PrimitiveID: id})
	return nil
}

// Primitive returns the managed primitive for id.
func (o *Overlay) Primitive(id string) (*framevisx.Primitive, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	e, ok := o.prims[id]
	if !ok {
		return nil, false
	}
	return e.prim, true
}

// Kind returns the declared kind of a primitive.
func (o *Overlay) Kind(id string) (string, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	e, ok := o.prims[id]
	if !ok {
		return "", false
	}
	return e.kind, true
}

// IDs returns primitive IDs in creation order.
func (o *Overlay) IDs() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]string, len(o.order))
	copy(out, o.order)
	return out
}

// ActiveAt resolves, for every managed primitive, the record active in the
// given frame. Primitives with no active record are omitted. This is the
// batch query the rendering surface issues per displayed frame.
func (o *Overlay) ActiveAt(f framevisx.FrameIndex) map[string]*framevisx.Record {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make(map[string]*framevisx.Record)
	for id, e := range o.prims {
		if rec, ok := e.prim.ActiveRecord(f); ok {
			out[id] = rec
		}
	}
	return out
}

// Add introduces a new record into primitive id via the engine's creation
// path. The prior sequence is pushed onto the undo history.
func (o *Overlay) Add(id string, payload any, assoc framevisx.Association) (*framevisx.Record, error) {
	o.mu.Lock()
	e, ok := o.prims[id]
	if !ok {
		o.mu.Unlock()
		return nil, fmt.Errorf("primitive %q not found", id)
	}
	if err := o.checkGuard(id, assoc); err != nil {
		o.mu.Unlock()
		return nil, err
	}
	o.history.push(id, snapshotRecords(e.prim))
	rec, err := e.prim.Add(payload, assoc)
	if err != nil {
		o.history.pop(id)
		o.mu.Unlock()
		return nil, err
	}
	o.mu.Unlock()

	o.commit(ChangeEvent{Kind: RecordAdded, PrimitiveID: id, Association: assoc})
	return rec, nil
}

// Reassign changes a record's association within primitive id. The prior
// sequence is pushed onto the undo history.
func (o *Overlay) Reassign(id string, target *framevisx.Record, assoc framevisx.Association) error {
	o.mu.Lock()
	e, ok := o.prims[id]
	if !ok {
		o.mu.Unlock()
		return fmt.Errorf("primitive %q not found", id)
	}
	if err := o.checkGuard(id, assoc); err != nil {
		o.mu.Unlock()
		return err
	}
	o.history.push(id, snapshotRecords(e.prim))
	if err := e.prim.Reassign(target, assoc); err != nil {
		o.history.pop(id)
		o.mu.Unlock()
		return err
	}
	o.mu.Unlock()

	o.commit(ChangeEvent{Kind: RecordReassigned, PrimitiveID: id, Association: assoc})
	return nil
}

// Remove discards a record from primitive id.
func (o *Overlay) Remove(id string, target *framevisx.Record) error {
	o.mu.Lock()
	e, ok := o.prims[id]
	if !ok {
		o.mu.Unlock()
		return fmt.Errorf("primitive %q not found", id)
	}
	o.history.push(id, snapshotRecords(e.prim))
	if err := e.prim.Remove(target); err != nil {
		o.history.pop(id)
		o.mu.Unlock()
		return err
	}
	o.mu.Unlock()

	o.commit(ChangeEvent{Kind: RecordRemoved, PrimitiveID: id})
	return nil
}

// Undo restores primitive id's sequence to its state before the most recent
// mutation. Restored records are equivalent in payload and association but
// carry fresh identities.
func (o *Overlay) Undo(id string) error {
	o.mu.Lock()
	e, ok := o.prims[id]
	if !ok {
		o.mu.Unlock()
		return fmt.Errorf("primitive %q not found", id)
	}
	snap, ok := o.history.pop(id)
	if !ok {
		o.mu.Unlock()
		return fmt.Errorf("primitive %q has no undo history", id)
	}
	if err := restoreRecords(e.prim, snap); err != nil {
		o.mu.Unlock()
		return err
	}
	o.mu.Unlock()

	o.commit(ChangeEvent{Kind: Undone, PrimitiveID: id})
	return nil
}

func (o *Overlay) checkGuard(id string, assoc framevisx.Association) error {
	if o.guard == nil {
		return nil
	}
	return o.guard(id, assoc)
}

// commit publishes a change event and notifies reactors. Publishing is
// best-effort; a failed publish is logged, not surfaced to the mutator.
func (o *Overlay) commit(ev ChangeEvent) {
	ev.Timestamp = time.Now()

	if o.publisher != nil {
		if err := o.publisher.Publish(context.Background(), ev); err != nil {
			monitoring.Logf("overlay: publish %s for %s: %v", ev.Kind, ev.PrimitiveID, err)
		}
	}
	for _, react := range o.reactors {
		react(ev)
	}
}

// CheckInvariants runs the engine's invariant assertion across every managed
// primitive. Debug/test path.
func (o *Overlay) CheckInvariants() error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for id, e := range o.prims {
		if err := e.prim.CheckInvariants(); err != nil {
			return fmt.Errorf("primitive %q: %w", id, err)
		}
	}
	return nil
}
