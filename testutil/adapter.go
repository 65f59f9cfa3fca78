package testutil

import (
	"github.com/calyptra/framevisx"
	"github.com/calyptra/framevisx/internal/overlay"
)

// SurfaceAdapter provides a common interface over a bare primitive and an
// overlay-managed one. This allows running the same visibility test suite
// against both mutation surfaces.
type SurfaceAdapter interface {
	Add(payload any, assoc framevisx.Association) (*framevisx.Record, error)
	Reassign(target *framevisx.Record, assoc framevisx.Association) error
	Remove(target *framevisx.Record) error
	ActiveRecord(f framevisx.FrameIndex) (*framevisx.Record, bool)
	Records() []*framevisx.Record
	CheckInvariants() error
}

// DirectAdapter mutates a primitive through its own methods.
type DirectAdapter struct {
	p *framevisx.Primitive
}

// NewDirectAdapter creates an adapter around a fresh primitive over the
// given frames, seeded with one ubiquitous record.
func NewDirectAdapter(frames framevisx.FrameSource, payload any) *DirectAdapter {
	return &DirectAdapter{
		p: framevisx.NewPrimitive(
			framevisx.WithFrameSource(frames),
			framevisx.WithUbiquitousRecord(payload),
		),
	}
}

func (a *DirectAdapter) Add(payload any, assoc framevisx.Association) (*framevisx.Record, error) {
	return a.p.Add(payload, assoc)
}

func (a *DirectAdapter) Reassign(target *framevisx.Record, assoc framevisx.Association) error {
	return a.p.Reassign(target, assoc)
}

func (a *DirectAdapter) Remove(target *framevisx.Record) error {
	return a.p.Remove(target)
}

func (a *DirectAdapter) ActiveRecord(f framevisx.FrameIndex) (*framevisx.Record, bool) {
	return a.p.ActiveRecord(f)
}

func (a *DirectAdapter) Records() []*framevisx.Record {
	return a.p.Records()
}

func (a *DirectAdapter) CheckInvariants() error {
	return a.p.CheckInvariants()
}

// ManagedAdapter routes the same mutations through an overlay, exercising
// its locking, guard, and history paths.
type ManagedAdapter struct {
	o  *overlay.Overlay
	id string
}

// NewManagedAdapter creates an adapter around an overlay holding one
// primitive seeded with a ubiquitous record.
func NewManagedAdapter(frames framevisx.FrameSource, payload any) *ManagedAdapter {
	o := overlay.New(frames)
	return &ManagedAdapter{o: o, id: o.CreatePrimitive("test", payload)}
}

func (a *ManagedAdapter) Add(payload any, assoc framevisx.Association) (*framevisx.Record, error) {
	return a.o.Add(a.id, payload, assoc)
}

func (a *ManagedAdapter) Reassign(target *framevisx.Record, assoc framevisx.Association) error {
	return a.o.Reassign(a.id, target, assoc)
}

func (a *ManagedAdapter) Remove(target *framevisx.Record) error {
	return a.o.Remove(a.id, target)
}

func (a *ManagedAdapter) ActiveRecord(f framevisx.FrameIndex) (*framevisx.Record, bool) {
	p, ok := a.o.Primitive(a.id)
	if !ok {
		return nil, false
	}
	return p.ActiveRecord(f)
}

func (a *ManagedAdapter) Records() []*framevisx.Record {
	p, ok := a.o.Primitive(a.id)
	if !ok {
		return nil
	}
	return p.Records()
}

func (a *ManagedAdapter) CheckInvariants() error {
	return a.o.CheckInvariants()
}
