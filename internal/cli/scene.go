package cli

import (
	"fmt"

	"github.com/calyptra/framevisx/dataset"
	"github.com/calyptra/framevisx/internal/overlay"
	"github.com/calyptra/framevisx/internal/schema"
)

// loadOverlay reads a scene file and materializes it into a dataset stack
// and an overlay holding each declared primitive.
func loadOverlay(path string) (*schema.SceneConfig, *dataset.Stack, *overlay.Overlay, error) {
	scene, err := schema.LoadScene(path)
	if err != nil {
		return nil, nil, nil, err
	}

	stack := dataset.NewStack(scene.Frames)
	o := overlay.New(stack)
	for _, pc := range scene.Primitives {
		p, _, err := pc.Materialize(stack)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("primitive %q: %w", pc.ID, err)
		}
		if err := o.AttachPrimitive(pc.ID, string(pc.Kind), p); err != nil {
			return nil, nil, nil, err
		}
	}
	return scene, stack, o, nil
}
