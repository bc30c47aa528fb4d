package ui

import "github.com/amalg/go-blockhop/internal/game"

// Feed carries engine snapshots to the TUI. Only the newest snapshots
// are kept when the consumer falls behind.
type Feed struct {
	ch chan game.Snapshot
}

// NewFeed subscribes a feed to the engine's ticks.
func NewFeed(e *game.Engine) *Feed {
	f := newFeed()
	e.OnTick(f.push)
	return f
}

func newFeed() *Feed {
	return &Feed{ch: make(chan game.Snapshot, 10)}
}

// States returns a channel that yields snapshots.
func (f *Feed) States() <-chan game.Snapshot {
	return f.ch
}

func (f *Feed) push(snap game.Snapshot) {
	select {
	case f.ch <- snap:
	default:
		// Drop old state if consumer is slow; latest state matters most
		select {
		case <-f.ch:
		default:
		}
		select {
		case f.ch <- snap:
		default:
		}
	}
}
