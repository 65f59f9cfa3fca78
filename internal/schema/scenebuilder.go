// Package schema includes builder helpers for SceneConfig.
package schema

// SceneBuilder builds SceneConfig fluently.
type SceneBuilder struct {
	scene   *SceneConfig
	current *PrimitiveConfig
}

// NewSceneBuilder creates a new SceneBuilder for a dataset of n frames.
func NewSceneBuilder(id string, frames int) *SceneBuilder {
	return &SceneBuilder{
		scene: &SceneConfig{ID: id, Frames: frames},
	}
}

// Cursor starts a cursor primitive declaration.
func (b *SceneBuilder) Cursor(id string) *SceneBuilder {
	return b.primitive(id, Cursor)
}

// Region starts a region primitive declaration.
func (b *SceneBuilder) Region(id string) *SceneBuilder {
	return b.primitive(id, Region)
}

func (b *SceneBuilder) primitive(id string, kind PrimitiveKind) *SceneBuilder {
	b.current = NewPrimitiveConfig(id, kind)
	b.scene.Primitives = append(b.scene.Primitives, b.current)
	return b
}

// Ubiquitous adds a ubiquitous record to the current primitive.
func (b *SceneBuilder) Ubiquitous(label string) *SceneBuilder {
	return b.record(label, AssociationConfig{Kind: "ubiquitous"})
}

// Avoiding adds a frame-avoiding record to the current primitive.
func (b *SceneBuilder) Avoiding(label string, frame int) *SceneBuilder {
	return b.record(label, AssociationConfig{Kind: "avoiding", Frame: frame})
}

// Single adds a single-frame record to the current primitive.
func (b *SceneBuilder) Single(label string, frame int) *SceneBuilder {
	return b.record(label, AssociationConfig{Kind: "single", Frame: frame})
}

func (b *SceneBuilder) record(label string, assoc AssociationConfig) *SceneBuilder {
	if b.current == nil {
		// Records before any primitive declaration attach to an implicit cursor.
		b.primitive("primitive-1", Cursor)
	}
	b.current.AddRecord(NewRecordConfig(label, assoc))
	return b
}

// Attr sets a payload attribute on the current primitive's latest record.
func (b *SceneBuilder) Attr(key string, value any) *SceneBuilder {
	if b.current != nil && len(b.current.Records) > 0 {
		b.current.Records[len(b.current.Records)-1].SetAttr(key, value)
	}
	return b
}

// Build finalizes and validates the scene.
func (b *SceneBuilder) Build() (*SceneConfig, error) {
	if err := b.scene.Validate(); err != nil {
		return nil, err
	}
	return b.scene, nil
}
