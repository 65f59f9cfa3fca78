package framevisx_test

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	. "github.com/calyptra/framevisx"
)

func TestAttrsBasic(t *testing.T) {
	attrs := NewAttrs()

	attrs.Set("label-offset", 12)
	if got := attrs.Get("label-offset"); got != 12 {
		t.Errorf("expected 12, got %v", got)
	}

	if got := attrs.Get("missing"); got != nil {
		t.Errorf("expected nil for missing key, got %v", got)
	}

	attrs.Delete("label-offset")
	if got := attrs.Get("label-offset"); got != nil {
		t.Errorf("expected nil after delete, got %v", got)
	}
}

func TestAttrsTypedAccessors(t *testing.T) {
	attrs := NewAttrs()

	if _, ok := attrs.Color(); ok {
		t.Error("color should be unset on a fresh bag")
	}

	attrs.SetColor("#ff8800")
	attrs.SetOpacity(0.5)
	attrs.SetBounds(Bounds{X: 10, Y: 20, W: 30, H: 40})

	if c, ok := attrs.Color(); !ok || c != "#ff8800" {
		t.Errorf("Color() = %q, %v", c, ok)
	}
	if o, ok := attrs.Opacity(); !ok || o != 0.5 {
		t.Errorf("Opacity() = %v, %v", o, ok)
	}
	if b, ok := attrs.BoundsRect(); !ok || b.W != 30 {
		t.Errorf("BoundsRect() = %+v, %v", b, ok)
	}

	// Wrong dynamic type reads as unset, not as a panic.
	attrs.Set("opacity", "half")
	if _, ok := attrs.Opacity(); ok {
		t.Error("non-float opacity should read as unset")
	}
}

func TestAttrsConcurrency(t *testing.T) {
	attrs := NewAttrs()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			attrs.Set(fmt.Sprintf("key%d", id), id)
		}(i)
	}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_ = attrs.Get(fmt.Sprintf("key%d", id))
		}(i)
	}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			attrs.Delete(fmt.Sprintf("key%d", id))
		}(i)
	}

	wg.Wait()
	// No race conditions (run with -race flag)
}

func TestAttrsSnapshotDetached(t *testing.T) {
	attrs := NewAttrs()
	attrs.Set("a", 1)
	attrs.Set("b", 2)

	all := attrs.Snapshot()
	if len(all) != 2 {
		t.Errorf("expected 2 items, got %d", len(all))
	}

	all["c"] = 3
	if attrs.Get("c") != nil {
		t.Error("Snapshot should return a detached copy")
	}
}

func TestAttrsSeedMerges(t *testing.T) {
	attrs := NewAttrs()
	attrs.SetColor("red")
	attrs.Set("shape", "ellipse")

	attrs.Seed(map[string]any{"color": "blue", "alpha": 0.5})

	if c, _ := attrs.Color(); c != "blue" {
		t.Errorf("seeded key should overwrite, got %q", c)
	}
	if attrs.Get("shape") != "ellipse" {
		t.Error("Seed should leave untouched keys in place")
	}
	if attrs.Get("alpha") != 0.5 {
		t.Error("Seed should add new keys")
	}
}

func TestAttrsMarshalJSON(t *testing.T) {
	attrs := NewAttrs()
	attrs.SetColor("#00ff88")
	attrs.SetOpacity(0.75)

	data, err := json.Marshal(attrs)
	if err != nil {
		t.Fatal(err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out["color"] != "#00ff88" || out["opacity"] != 0.75 {
		t.Errorf("marshaled attrs = %v", out)
	}
}

func TestAttrsAsRecordPayload(t *testing.T) {
	attrs := NewAttrs()
	attrs.Set("shape", "ellipse")

	p := NewPrimitive(WithUbiquitousRecord(attrs))
	rec, _ := p.RecordAt(0)

	got, ok := rec.Payload().(*Attrs)
	if !ok {
		t.Fatalf("payload type = %T, want *Attrs", rec.Payload())
	}
	if got.Get("shape") != "ellipse" {
		t.Error("payload attributes should round-trip through the record")
	}
}
