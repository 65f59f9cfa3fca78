package playback

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/calyptra/framevisx"
	"github.com/calyptra/framevisx/internal/monitoring"
	"github.com/calyptra/framevisx/internal/overlay"
)

// Renderer receives the resolved visibility for each displayed frame.
// RenderFrame is called from the tick goroutine; implementations that block
// stall playback.
type Renderer interface {
	RenderFrame(tick uint64, frame framevisx.FrameIndex, active map[string]*framevisx.Record)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(tick uint64, frame framevisx.FrameIndex, active map[string]*framevisx.Record)

func (f RendererFunc) RenderFrame(tick uint64, frame framevisx.FrameIndex, active map[string]*framevisx.Record) {
	f(tick, frame, active)
}

// Config configures the playback runtime.
type Config struct {
	TickRate        time.Duration // frame period (default: 1/24s)
	MaxEditsPerTick int           // edit queue capacity (default: 256)
	Loop            bool          // wrap to the first frame after the last
}

// Runtime advances a frame cursor over the dataset at a fixed tick rate,
// applying queued edits at each tick boundary before resolving visibility.
type Runtime struct {
	overlay  *overlay.Overlay
	frames   framevisx.FrameSource
	renderer Renderer

	tickRate time.Duration
	ticker   *time.Ticker
	loop     bool

	editBatch   []editWithMeta
	batchMu     sync.Mutex
	sequenceNum uint64
	tickNum     uint64
	cursor      int

	tickCtx    context.Context
	tickCancel context.CancelFunc
	stopped    chan struct{}
	started    bool
}

// NewRuntime creates a playback runtime over the given overlay and dataset.
func NewRuntime(o *overlay.Overlay, frames framevisx.FrameSource, r Renderer, cfg Config) *Runtime {
	if cfg.MaxEditsPerTick == 0 {
		cfg.MaxEditsPerTick = 256
	}
	if cfg.TickRate == 0 {
		cfg.TickRate = time.Second / 24
	}

	return &Runtime{
		overlay:   o,
		frames:    frames,
		renderer:  r,
		tickRate:  cfg.TickRate,
		loop:      cfg.Loop,
		editBatch: make([]editWithMeta, 0, cfg.MaxEditsPerTick),
		stopped:   make(chan struct{}),
	}
}

// Start begins tick-based playback from the first frame.
func (rt *Runtime) Start(ctx context.Context) error {
	if rt.started {
		return errors.New("runtime already started")
	}
	rt.started = true

	rt.tickCtx, rt.tickCancel = context.WithCancel(ctx)
	rt.ticker = time.NewTicker(rt.tickRate)

	go rt.tickLoop()
	return nil
}

// Stop halts playback and waits for the tick loop to exit.
func (rt *Runtime) Stop() {
	if !rt.started {
		return
	}
	rt.tickCancel()
	rt.ticker.Stop()
	<-rt.stopped
}

// SubmitEdit queues an edit for the next tick boundary. Thread-safe; the
// edit is not applied immediately.
func (rt *Runtime) SubmitEdit(e Edit) error {
	return rt.SubmitEditWithPriority(e, 0)
}

// SubmitEditWithPriority queues an edit with a priority. Higher priorities
// are applied first within a tick.
func (rt *Runtime) SubmitEditWithPriority(e Edit, priority int) error {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()

	if len(rt.editBatch) >= cap(rt.editBatch) {
		return errors.New("edit queue full")
	}
	rt.editBatch = append(rt.editBatch, editWithMeta{
		apply:       e,
		sequenceNum: rt.sequenceNum,
		priority:    priority,
	})
	rt.sequenceNum++
	return nil
}

// TickNumber returns the number of completed ticks.
func (rt *Runtime) TickNumber() uint64 {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()
	return rt.tickNum
}

// CurrentFrame returns the frame the cursor rests on, or false when the
// dataset is empty.
func (rt *Runtime) CurrentFrame() (framevisx.FrameIndex, bool) {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()
	return rt.frameAt(rt.cursor)
}

func (rt *Runtime) tickLoop() {
	defer close(rt.stopped)

	for {
		select {
		case <-rt.tickCtx.Done():
			return
		case <-rt.ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						monitoring.Logf("playback: tick panic: %v", r)
					}
				}()
				rt.processTick()
			}()

			rt.batchMu.Lock()
			rt.tickNum++
			rt.batchMu.Unlock()
		}
	}
}
