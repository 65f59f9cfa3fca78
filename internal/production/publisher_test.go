package production

import (
	"context"
	"testing"

	"github.com/calyptra/framevisx/internal/overlay"
)

func TestChannelPublisher_Delivers(t *testing.T) {
	ch := make(chan overlay.ChangeEvent, 1)
	p := NewChannelPublisher(ch)

	ev := overlay.ChangeEvent{Kind: overlay.RecordAdded, PrimitiveID: "p1"}
	if err := p.Publish(context.Background(), ev); err != nil {
		t.Fatal(err)
	}

	got := <-ch
	if got.Kind != overlay.RecordAdded || got.PrimitiveID != "p1" {
		t.Errorf("got %+v, want %+v", got, ev)
	}
}

func TestChannelPublisher_DropsOnBackpressure(t *testing.T) {
	ch := make(chan overlay.ChangeEvent) // unbuffered, no reader
	p := NewChannelPublisher(ch)

	if err := p.Publish(context.Background(), overlay.ChangeEvent{Kind: overlay.RecordAdded}); err != nil {
		t.Errorf("full channel should drop, not error: %v", err)
	}
}

func TestChannelPublisher_CancelledContext(t *testing.T) {
	ch := make(chan overlay.ChangeEvent)
	p := NewChannelPublisher(ch)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Publish(ctx, overlay.ChangeEvent{}); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}

	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if _, open := <-ch; open {
		t.Error("channel should be closed")
	}
}
