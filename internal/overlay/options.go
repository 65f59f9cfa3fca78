// Options for configuring Overlay instances.
package overlay

import "github.com/calyptra/framevisx/dataset"

// OverlayOption configures an Overlay at construction time.
type OverlayOption func(*Overlay)

// WithPublisher configures the Overlay with a change event Publisher.
func WithPublisher(p Publisher) OverlayOption {
	return func(o *Overlay) {
		o.publisher = p
	}
}

// WithExporter configures the Overlay with a view Exporter, enabling
// Export and Timeline.
func WithExporter(e Exporter) OverlayOption {
	return func(o *Overlay) {
		o.exporter = e
	}
}

// WithGuard configures the Overlay with a mutation Guard.
func WithGuard(g Guard) OverlayOption {
	return func(o *Overlay) {
		o.guard = g
	}
}

// WithReactor registers a synchronous change Reactor. May be given more
// than once; reactors run in registration order.
func WithReactor(r Reactor) OverlayOption {
	return func(o *Overlay) {
		o.reactors = append(o.reactors, r)
	}
}

// WithFeed wires a dataset frame event feed into the Overlay. The feed is
// pumped once StartPump is called.
func WithFeed(f *dataset.Feed) OverlayOption {
	return func(o *Overlay) {
		o.feed = f
	}
}

// WithHistoryLimit bounds the per-primitive undo depth. Values below one
// fall back to the default.
func WithHistoryLimit(n int) OverlayOption {
	return func(o *Overlay) {
		if n < 1 {
			n = defaultHistoryLimit
		}
		o.history = newHistory(n)
	}
}
