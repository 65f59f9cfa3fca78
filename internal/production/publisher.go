// Package production provides production integrations for the overlay:
// change event publishing and state export. Implements overlay interfaces
// using stdlib where possible.
package production

import (
	"context"

	"github.com/calyptra/framevisx/internal/overlay"
)

// ChannelPublisher forwards overlay change events to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	ch chan<- overlay.ChangeEvent
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- overlay.ChangeEvent) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(ctx context.Context, ev overlay.ChangeEvent) error {
	select {
	case p.ch <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil // Non-blocking drop
	}
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
