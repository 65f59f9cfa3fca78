package playback

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/calyptra/framevisx"
	"github.com/calyptra/framevisx/dataset"
	"github.com/calyptra/framevisx/internal/overlay"
)

// frameRecorder captures rendered frames for assertions.
type frameRecorder struct {
	mu     sync.Mutex
	frames []framevisx.FrameIndex
	active []int // resolved primitive count per rendered frame
}

func (r *frameRecorder) RenderFrame(tick uint64, f framevisx.FrameIndex, active map[string]*framevisx.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
	r.active = append(r.active, len(active))
}

func (r *frameRecorder) rendered() []framevisx.FrameIndex {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]framevisx.FrameIndex, len(r.frames))
	copy(out, r.frames)
	return out
}

func waitForFrames(t *testing.T, r *frameRecorder, n int) []framevisx.FrameIndex {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := r.rendered(); len(got) >= n {
			return got[:n]
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d rendered frames, got %d", n, len(r.rendered()))
	return nil
}

func TestRuntimeCreation(t *testing.T) {
	stack := dataset.NewStack(3)
	o := overlay.New(stack)

	rt := NewRuntime(o, stack, nil, Config{})
	if rt == nil {
		t.Fatal("runtime is nil")
	}
	if rt.tickRate != time.Second/24 {
		t.Errorf("default tick rate = %v", rt.tickRate)
	}
	if cap(rt.editBatch) != 256 {
		t.Errorf("default edit capacity = %d", cap(rt.editBatch))
	}
}

func TestCursorAdvancesInFrameOrder(t *testing.T) {
	stack := dataset.NewStack(3)
	o := overlay.New(stack)
	o.CreatePrimitive("cursor", "c")

	rec := &frameRecorder{}
	rt := NewRuntime(o, stack, rec, Config{TickRate: 5 * time.Millisecond})
	if err := rt.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer rt.Stop()

	got := waitForFrames(t, rec, 3)
	want := []framevisx.FrameIndex{0, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rendered %v, want %v", got, want)
		}
	}
}

func TestCursorClampsAtLastFrame(t *testing.T) {
	stack := dataset.NewStack(2)
	o := overlay.New(stack)

	rec := &frameRecorder{}
	rt := NewRuntime(o, stack, rec, Config{TickRate: 5 * time.Millisecond})
	if err := rt.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer rt.Stop()

	got := waitForFrames(t, rec, 4)
	want := []framevisx.FrameIndex{0, 1, 1, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rendered %v, want %v", got, want)
		}
	}
}

func TestCursorWrapsWhenLooping(t *testing.T) {
	stack := dataset.NewStack(2)
	o := overlay.New(stack)

	rec := &frameRecorder{}
	rt := NewRuntime(o, stack, rec, Config{TickRate: 5 * time.Millisecond, Loop: true})
	if err := rt.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer rt.Stop()

	got := waitForFrames(t, rec, 4)
	want := []framevisx.FrameIndex{0, 1, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rendered %v, want %v", got, want)
		}
	}
}

func TestEditAppliedAtTickBoundary(t *testing.T) {
	stack := dataset.NewStack(5)
	o := overlay.New(stack)
	id := o.CreatePrimitive("region", "r")

	rec := &frameRecorder{}
	rt := NewRuntime(o, stack, rec, Config{TickRate: 5 * time.Millisecond, Loop: true})

	applied := make(chan struct{})
	if err := rt.SubmitEdit(func(ov *overlay.Overlay) error {
		p, _ := ov.Primitive(id)
		err := ov.Reassign(id, p.Records()[0], framevisx.Single(0))
		close(applied)
		return err
	}); err != nil {
		t.Fatal(err)
	}

	if err := rt.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer rt.Stop()

	select {
	case <-applied:
	case <-time.After(2 * time.Second):
		t.Fatal("queued edit never applied")
	}

	p, _ := o.Primitive(id)
	if got := p.Records()[0].Association().String(); got != "single(0)" {
		t.Errorf("association after edit = %s", got)
	}
}

func TestEditOrderingWithinTick(t *testing.T) {
	stack := dataset.NewStack(3)
	o := overlay.New(stack)

	rt := NewRuntime(o, stack, nil, Config{TickRate: time.Hour}) // never ticks

	var order []string
	note := func(label string) Edit {
		return func(*overlay.Overlay) error {
			order = append(order, label)
			return nil
		}
	}
	if err := rt.SubmitEdit(note("first")); err != nil {
		t.Fatal(err)
	}
	if err := rt.SubmitEdit(note("second")); err != nil {
		t.Fatal(err)
	}
	if err := rt.SubmitEditWithPriority(note("urgent"), 10); err != nil {
		t.Fatal(err)
	}

	rt.processTick()

	want := []string{"urgent", "first", "second"}
	if len(order) != len(want) {
		t.Fatalf("applied %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("applied %v, want %v", order, want)
		}
	}
}

func TestEditQueueFull(t *testing.T) {
	stack := dataset.NewStack(1)
	o := overlay.New(stack)

	rt := NewRuntime(o, stack, nil, Config{TickRate: time.Hour, MaxEditsPerTick: 2})
	noop := func(*overlay.Overlay) error { return nil }

	if err := rt.SubmitEdit(noop); err != nil {
		t.Fatal(err)
	}
	if err := rt.SubmitEdit(noop); err != nil {
		t.Fatal(err)
	}
	if err := rt.SubmitEdit(noop); err == nil {
		t.Error("third submit should overflow the queue")
	}
}

func TestStartTwice(t *testing.T) {
	stack := dataset.NewStack(1)
	o := overlay.New(stack)

	rt := NewRuntime(o, stack, nil, Config{TickRate: time.Hour})
	if err := rt.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer rt.Stop()

	if err := rt.Start(context.Background()); err == nil {
		t.Error("second Start should fail")
	}
}
