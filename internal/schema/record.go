// Package schema defines the declarative scene description for framevisx.
// RecordConfig is the serialized form of one state record.
package schema

import (
	"errors"
	"fmt"
)

// RecordConfig declares one state record: an attribute payload plus the
// frame association governing where it is visible.
type RecordConfig struct {
	Label       string            `json:"label" yaml:"label"`
	Association AssociationConfig `json:"association" yaml:"association"`
	Attrs       map[string]any    `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// NewRecordConfig creates a RecordConfig with a label and association.
func NewRecordConfig(label string, assoc AssociationConfig) *RecordConfig {
	return &RecordConfig{
		Label:       label,
		Association: assoc,
	}
}

// WithAttrs sets the attribute payload.
func (r *RecordConfig) WithAttrs(attrs map[string]any) *RecordConfig {
	r.Attrs = attrs
	return r
}

// SetAttr sets a single payload attribute.
func (r *RecordConfig) SetAttr(key string, value any) *RecordConfig {
	if r.Attrs == nil {
		r.Attrs = make(map[string]any)
	}
	r.Attrs[key] = value
	return r
}

// Validate checks the record declaration in isolation. Cross-record
// invariants are checked by PrimitiveConfig.Validate.
func (r *RecordConfig) Validate() error {
	if r.Label == "" {
		return errors.New("record label is required")
	}
	if err := r.Association.Validate(); err != nil {
		return fmt.Errorf("record %q: %w", r.Label, err)
	}
	return nil
}
