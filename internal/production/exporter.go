package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/calyptra/framevisx/internal/overlay"
)

// DefaultExporter is the stdlib-only implementation of overlay.Exporter.
type DefaultExporter struct{}

var _ overlay.Exporter = (*DefaultExporter)(nil)

// ExportJSON serializes the view to indented JSON.
func (e *DefaultExporter) ExportJSON(view overlay.OverlayView) ([]byte, error) {
	return json.MarshalIndent(view, "", "  ")
}

// RenderTimeline renders the view as a plain-text grid, one row per
// primitive and one column per frame, marking frames where the primitive
// has an active record.
func (e *DefaultExporter) RenderTimeline(view overlay.OverlayView) string {
	var buf bytes.Buffer

	buf.WriteString("frame    ")
	for _, f := range view.Frames {
		fmt.Fprintf(&buf, " %3d", f)
	}
	buf.WriteByte('\n')

	for _, pv := range view.Primitives {
		fmt.Fprintf(&buf, "%-9s", shortLabel(pv.ID))
		for _, vis := range pv.Visible {
			if vis {
				buf.WriteString("   #")
			} else {
				buf.WriteString("   .")
			}
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

// shortLabel truncates long primitive IDs (UUIDs) for grid display.
func shortLabel(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
