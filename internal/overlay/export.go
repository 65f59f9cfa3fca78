// Snapshot/export surface of the overlay.
package overlay

import (
	"errors"

	"github.com/calyptra/framevisx"
)

// RecordView is the export shape of one record.
type RecordView struct {
	Association string `json:"association"`
	Payload     any    `json:"payload,omitempty"`
}

// PrimitiveView is the export shape of one managed primitive. Visible holds
// one entry per exported frame, in frame order.
type PrimitiveView struct {
	ID      string       `json:"id"`
	Kind    string       `json:"kind"`
	Records []RecordView `json:"records"`
	Visible []bool       `json:"visible"`
}

// OverlayView is a point-in-time export of an overlay's visibility state
// across a set of frames.
type OverlayView struct {
	Frames     []framevisx.FrameIndex `json:"frames"`
	Primitives []PrimitiveView        `json:"primitives"`
}

// Exporter renders overlay views for external consumption. Implementations
// are wired via WithExporter; internal/production provides the default.
type Exporter interface {
	ExportJSON(view OverlayView) ([]byte, error)
	RenderTimeline(view OverlayView) string
}

// ErrNoExporter is returned by Export and Timeline when no Exporter was
// configured.
var ErrNoExporter = errors.New("no exporter configured")

// Snapshot captures the overlay's state across the given frames, resolving
// per-frame visibility for every managed primitive. Primitives appear in
// creation order. The view is a consistent cut: it is taken under one read
// lock.
func (o *Overlay) Snapshot(frames []framevisx.FrameIndex) OverlayView {
	o.mu.RLock()
	defer o.mu.RUnlock()

	view := OverlayView{Frames: frames}
	for _, id := range o.order {
		e := o.prims[id]
		pv := PrimitiveView{ID: id, Kind: e.kind}
		for _, r := range e.prim.Records() {
			pv.Records = append(pv.Records, RecordView{
				Association: r.Association().String(),
				Payload:     r.Payload(),
			})
		}
		for _, f := range frames {
			_, active := e.prim.ActiveRecord(f)
			pv.Visible = append(pv.Visible, active)
		}
		view.Primitives = append(view.Primitives, pv)
	}
	return view
}

// Export serializes a snapshot over the given frames with the configured
// exporter.
func (o *Overlay) Export(frames []framevisx.FrameIndex) ([]byte, error) {
	if o.exporter == nil {
		return nil, ErrNoExporter
	}
	return o.exporter.ExportJSON(o.Snapshot(frames))
}

// Timeline renders a snapshot over the given frames with the configured
// exporter.
func (o *Overlay) Timeline(frames []framevisx.FrameIndex) (string, error) {
	if o.exporter == nil {
		return "", ErrNoExporter
	}
	return o.exporter.RenderTimeline(o.Snapshot(frames)), nil
}
