package framevisx

import (
	"encoding/json"
	"sync"
)

// Keys the typed accessors below read and write. Hosts may store anything
// under their own keys alongside these.
const (
	attrColor   = "color"
	attrOpacity = "opacity"
	attrBounds  = "bounds"
)

// Bounds is an axis-aligned rectangle in frame pixel coordinates.
type Bounds struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Attrs is a concurrency-safe appearance bag meant to be used as a record
// payload: UI handlers write color, opacity, and geometry while a renderer
// reads them between frames. The engine itself never looks inside payloads.
type Attrs struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewAttrs returns an empty attribute bag.
func NewAttrs() *Attrs {
	return &Attrs{data: make(map[string]any)}
}

// Get returns the value stored under key, or nil when absent.
func (a *Attrs) Get(key string) any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.data[key]
}

// Set stores value under key.
func (a *Attrs) Set(key string, value any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.data[key] = value
}

// Delete drops key from the bag.
func (a *Attrs) Delete(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.data, key)
}

// Seed merges values into the bag, overwriting colliding keys and leaving
// the rest untouched. Used when materializing payloads from scene files.
func (a *Attrs) Seed(values map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for k, v := range values {
		a.data[k] = v
	}
}

// Snapshot returns a copy of the bag detached from further writes.
func (a *Attrs) Snapshot() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[string]any, len(a.data))
	for k, v := range a.data {
		out[k] = v
	}
	return out
}

// SetColor stores the display color, conventionally a hex string.
func (a *Attrs) SetColor(c string) { a.Set(attrColor, c) }

// Color returns the display color, if one is set.
func (a *Attrs) Color() (string, bool) {
	c, ok := a.Get(attrColor).(string)
	return c, ok
}

// SetOpacity stores the display opacity in [0, 1].
func (a *Attrs) SetOpacity(o float64) { a.Set(attrOpacity, o) }

// Opacity returns the display opacity, if one is set.
func (a *Attrs) Opacity() (float64, bool) {
	o, ok := a.Get(attrOpacity).(float64)
	return o, ok
}

// SetBounds stores the geometry rectangle.
func (a *Attrs) SetBounds(b Bounds) { a.Set(attrBounds, b) }

// BoundsRect returns the geometry rectangle, if one is set.
func (a *Attrs) BoundsRect() (Bounds, bool) {
	b, ok := a.Get(attrBounds).(Bounds)
	return b, ok
}

// MarshalJSON serializes the current snapshot, so Attrs payloads come out
// intact in overlay exports.
func (a *Attrs) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Snapshot())
}
