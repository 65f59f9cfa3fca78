// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"github.com/calyptra/framevisx"
	"github.com/calyptra/framevisx/dataset"
	"github.com/calyptra/framevisx/internal/overlay"
	"github.com/calyptra/framevisx/internal/schema"
)

// GenFramedPrimitive creates a primitive over n frames holding one
// single-frame record per frame, the longest sequence the invariants allow.
func GenFramedPrimitive(src framevisx.FrameSource, n int) *framevisx.Primitive {
	p := framevisx.NewPrimitive(framevisx.WithFrameSource(src))
	for i := 0; i < n; i++ {
		if _, err := p.Add(fmt.Sprintf("s%d", i), framevisx.Single(framevisx.FrameIndex(i))); err != nil {
			panic(err)
		}
	}
	return p
}

// GenOverlay creates an overlay over a fresh stack of `frames` frames
// holding `prims` ubiquitous primitives.
func GenOverlay(prims, frames int) (*overlay.Overlay, *dataset.Stack) {
	stack := dataset.NewStack(frames)
	o := overlay.New(stack)
	for i := 0; i < prims; i++ {
		o.CreatePrimitive("region", fmt.Sprintf("p%d", i))
	}
	return o, stack
}

// GenSceneYAML produces scene YAML with `prims` primitives over `frames`
// frames, each holding an avoiding/single record pair.
func GenSceneYAML(prims, frames int) []byte {
	b := schema.NewSceneBuilder(fmt.Sprintf("bench_%d_%d", prims, frames), frames)
	for i := 0; i < prims; i++ {
		pin := i % frames
		b.Region(fmt.Sprintf("p%d", i)).
			Avoiding("base", pin).
			Single("pin", pin)
	}
	scene, err := b.Build()
	if err != nil {
		panic(err)
	}
	data, err := scene.MarshalYAMLBytes()
	if err != nil {
		panic(err)
	}
	return data
}
