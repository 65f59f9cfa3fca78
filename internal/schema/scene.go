// Package schema defines the declarative scene description for framevisx.
// SceneConfig is the top-level document: dataset extent plus the annotation
// primitives overlaid on it.
package schema

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/calyptra/framevisx"
)

// PrimitiveKind enumerates the annotation primitive shapes a scene may
// declare. The engine does not interpret the kind; it is carried for the
// rendering surface.
type PrimitiveKind string

const (
	Cursor PrimitiveKind = "cursor"
	Region PrimitiveKind = "region"
)

// PrimitiveConfig declares one annotation primitive and its record set.
type PrimitiveConfig struct {
	ID      string          `json:"id" yaml:"id"`
	Kind    PrimitiveKind   `json:"kind" yaml:"kind"`
	Records []*RecordConfig `json:"records,omitempty" yaml:"records,omitempty"`
}

// SceneConfig is the complete scene description.
type SceneConfig struct {
	Version    string             `json:"version,omitempty" yaml:"version,omitempty"`
	ID         string             `json:"id" yaml:"id"`
	Frames     int                `json:"frames" yaml:"frames"`
	Primitives []*PrimitiveConfig `json:"primitives,omitempty" yaml:"primitives,omitempty"`
}

// NewPrimitiveConfig creates a PrimitiveConfig with ID and kind.
func NewPrimitiveConfig(id string, kind PrimitiveKind) *PrimitiveConfig {
	return &PrimitiveConfig{ID: id, Kind: kind}
}

// AddRecord appends a record declaration.
func (p *PrimitiveConfig) AddRecord(rec *RecordConfig) *PrimitiveConfig {
	p.Records = append(p.Records, rec)
	return p
}

// Validate checks the primitive declaration:
// - Non-empty ID and a known kind
// - Each record validates individually
// - Record labels are unique
// - The record set as a whole satisfies the sequence invariants
//   (ubiquitous exclusivity, at most one avoiding record, distinct
//   single-frame slots, avoiding/single coexistence only on the avoided
//   frame)
func (p *PrimitiveConfig) Validate() error {
	if p.ID == "" {
		return errors.New("primitive ID is required")
	}
	switch p.Kind {
	case Cursor, Region:
	case "":
		return fmt.Errorf("primitive %q: kind is required", p.ID)
	default:
		return fmt.Errorf("primitive %q: unknown kind %q", p.ID, p.Kind)
	}

	labels := make(map[string]bool, len(p.Records))
	var avoiding *RecordConfig
	singles := make(map[int]string)

	for _, rec := range p.Records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("primitive %q: %w", p.ID, err)
		}
		if labels[rec.Label] {
			return fmt.Errorf("primitive %q: duplicate record label %q", p.ID, rec.Label)
		}
		labels[rec.Label] = true

		switch framevisx.AssociationKind(rec.Association.Kind) {
		case framevisx.KindUbiquitous:
			if len(p.Records) > 1 {
				return fmt.Errorf("primitive %q: ubiquitous record %q cannot coexist with other records", p.ID, rec.Label)
			}
		case framevisx.KindAvoiding:
			if avoiding != nil {
				return fmt.Errorf("primitive %q: records %q and %q are both frame-avoiding", p.ID, avoiding.Label, rec.Label)
			}
			avoiding = rec
		case framevisx.KindSingle:
			if prev, dup := singles[rec.Association.Frame]; dup {
				return fmt.Errorf("primitive %q: records %q and %q both occupy frame %d", p.ID, prev, rec.Label, rec.Association.Frame)
			}
			singles[rec.Association.Frame] = rec.Label
		}
	}

	if avoiding != nil {
		for f, label := range singles {
			if f != avoiding.Association.Frame {
				return fmt.Errorf("primitive %q: record %q at frame %d conflicts with avoiding record %q", p.ID, label, f, avoiding.Label)
			}
		}
	}
	return nil
}

// Validate validates the entire scene:
// - Non-empty ID, non-negative frame count
// - All primitives validate, with unique IDs
// - Single-frame records reference frames inside the dataset extent
//   (an avoiding record may avoid a frame outside it; that merely makes it
//   effectively ubiquitous)
func (s *SceneConfig) Validate() error {
	if s.ID == "" {
		return errors.New("scene ID is required")
	}
	if s.Frames < 0 {
		return fmt.Errorf("frame count must be non-negative, got %d", s.Frames)
	}

	ids := make(map[string]bool, len(s.Primitives))
	for _, prim := range s.Primitives {
		if err := prim.Validate(); err != nil {
			return err
		}
		if ids[prim.ID] {
			return fmt.Errorf("duplicate primitive ID %q", prim.ID)
		}
		ids[prim.ID] = true

		for _, rec := range prim.Records {
			if framevisx.AssociationKind(rec.Association.Kind) == framevisx.KindSingle && rec.Association.Frame >= s.Frames {
				return fmt.Errorf("primitive %q: record %q targets frame %d outside dataset of %d frames",
					prim.ID, rec.Label, rec.Association.Frame, s.Frames)
			}
		}
	}
	return nil
}

// FindPrimitive resolves a primitive declaration by ID.
func (s *SceneConfig) FindPrimitive(id string) (*PrimitiveConfig, error) {
	for _, prim := range s.Primitives {
		if prim.ID == id {
			return prim, nil
		}
	}
	return nil, fmt.Errorf("primitive %q not found", id)
}

// ParseScene decodes and validates a YAML scene document.
func ParseScene(data []byte) (*SceneConfig, error) {
	var scene SceneConfig
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return &scene, nil
}

// LoadScene reads, decodes, and validates a YAML scene file.
func LoadScene(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	return ParseScene(data)
}

// MarshalYAMLBytes serializes the scene back to YAML.
func (s *SceneConfig) MarshalYAMLBytes() ([]byte, error) {
	return yaml.Marshal(s)
}

// Materialize constructs a live primitive from the declaration, wiring the
// given frame source. Payloads become *framevisx.Attrs stores seeded from
// each record's attrs. Returns the primitive plus a label-to-record map.
func (p *PrimitiveConfig) Materialize(src framevisx.FrameSource) (*framevisx.Primitive, map[string]*framevisx.Record, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	b := framevisx.NewPrimitiveBuilder()
	if src != nil {
		b.FrameSource(src)
	}
	for _, rec := range p.Records {
		attrs := framevisx.NewAttrs()
		attrs.Seed(rec.Attrs)
		assoc, err := rec.Association.ToAssociation()
		if err != nil {
			return nil, nil, err
		}
		switch assoc.Kind() {
		case framevisx.KindUbiquitous:
			b.Ubiquitous(rec.Label, attrs)
		case framevisx.KindAvoiding:
			b.Avoiding(rec.Label, attrs, assoc.Frame())
		case framevisx.KindSingle:
			b.Single(rec.Label, attrs, assoc.Frame())
		}
	}

	prim, err := b.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("materializing primitive %q: %w", p.ID, err)
	}

	byLabel := make(map[string]*framevisx.Record, len(p.Records))
	for _, rec := range p.Records {
		if built, ok := b.Built(rec.Label); ok {
			byLabel[rec.Label] = built
		}
	}
	return prim, byLabel, nil
}
