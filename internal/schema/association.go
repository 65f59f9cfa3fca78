// Package schema defines the declarative scene description for framevisx.
// AssociationConfig is the serialized form of a record's frame association.
package schema

import (
	"errors"
	"fmt"

	"github.com/calyptra/framevisx"
)

// AssociationConfig is the tagged serialized form of a frame association.
// Frame is meaningful for the "avoiding" and "single" kinds and must be
// non-negative there; it is ignored for "ubiquitous".
type AssociationConfig struct {
	Kind  string `json:"kind" yaml:"kind"`
	Frame int    `json:"frame,omitempty" yaml:"frame,omitempty"`
}

// Validate checks kind and frame domain.
func (a *AssociationConfig) Validate() error {
	switch framevisx.AssociationKind(a.Kind) {
	case framevisx.KindUbiquitous:
		return nil
	case framevisx.KindAvoiding, framevisx.KindSingle:
		if a.Frame < 0 {
			return fmt.Errorf("%s association frame must be non-negative, got %d", a.Kind, a.Frame)
		}
		return nil
	case "":
		return errors.New("association kind is required")
	}
	return fmt.Errorf("unknown association kind %q", a.Kind)
}

// ToAssociation converts the config to an engine association.
func (a *AssociationConfig) ToAssociation() (framevisx.Association, error) {
	if err := a.Validate(); err != nil {
		return framevisx.Association{}, err
	}
	switch framevisx.AssociationKind(a.Kind) {
	case framevisx.KindAvoiding:
		return framevisx.Avoiding(framevisx.FrameIndex(a.Frame)), nil
	case framevisx.KindSingle:
		return framevisx.Single(framevisx.FrameIndex(a.Frame)), nil
	default:
		return framevisx.Ubiquitous(), nil
	}
}

// FromAssociation converts an engine association to its serialized form.
func FromAssociation(assoc framevisx.Association) AssociationConfig {
	cfg := AssociationConfig{Kind: string(assoc.Kind())}
	if assoc.Kind() != framevisx.KindUbiquitous {
		cfg.Frame = int(assoc.Frame())
	}
	return cfg
}
