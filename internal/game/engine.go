package game

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Engine drives a Driver in real time for hosts without their own frame
// loop. All access to the driver goes through the engine's mutex.
type Engine struct {
	driver   Driver
	tickRate int
	done     chan struct{}
	stopped  chan struct{} // Closed when Run returns
	running  bool
	stopOnce sync.Once
	mu       sync.Mutex
	onTick   func(Snapshot) // Callback after each tick with a COPY of state

	now      func() time.Time
	last     time.Time
	reported bool // Game over already logged for the current session
}

// NewEngine creates an engine ticking d tickRate times per second.
func NewEngine(d Driver, tickRate int) (*Engine, error) {
	if tickRate <= 0 {
		return nil, fmt.Errorf("tick rate must be positive, got %d", tickRate)
	}
	return &Engine{
		driver:   d,
		tickRate: tickRate,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		now:      time.Now,
	}, nil
}

// OnTick sets a callback that is invoked after every tick with a snapshot.
// The callback runs without the engine lock held.
func (e *Engine) OnTick(fn func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onTick = fn
}

// Run ticks the driver until Stop is called.
func (e *Engine) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(e.tickRate))
	defer ticker.Stop()
	defer close(e.stopped)

	e.mu.Lock()
	select {
	case <-e.done:
		e.mu.Unlock()
		return
	default:
	}
	e.last = e.now()
	e.running = true
	e.mu.Unlock()
	log.Printf("[ENGINE] Running at %d ticks/s", e.tickRate)

	for {
		select {
		case <-e.done:
			log.Printf("[ENGINE] Stopped")
			return
		case <-ticker.C:
			e.tick()
		}
	}
}

// Stop halts the loop and waits for an in-flight tick to finish, so the
// driver is no longer touched once Stop returns. It is safe to call more
// than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.done) })

	e.mu.Lock()
	running := e.running
	e.mu.Unlock()
	if running {
		<-e.stopped
	}
}

// Apply runs an intent immediately, between ticks.
func (e *Engine) Apply(i Intent) {
	e.mu.Lock()
	e.driver.Apply(i)
	if i.Type == IntentReset {
		e.reported = false
		log.Printf("[ENGINE] Session reset")
	}
	e.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.driver.Snapshot()
}

// FinalStats returns the stats of an ended session.
func (e *Engine) FinalStats() (FinalStats, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.driver.FinalStats()
}

// tick advances the driver by the wall time since the previous tick.
// The snapshot is taken under the lock; the callback runs after it is
// released so it may call back into the engine.
func (e *Engine) tick() {
	e.mu.Lock()

	now := e.now()
	elapsed := now.Sub(e.last)
	e.last = now
	e.driver.Advance(elapsed)

	if final, over := e.driver.FinalStats(); over && !e.reported {
		e.reported = true
		log.Printf("[ENGINE] Game over (%s): score=%d lines=%d level=%d",
			final.Reason, final.Score, final.Lines, final.Level)
	}

	snap := e.driver.Snapshot()
	onTick := e.onTick

	e.mu.Unlock()

	if onTick != nil {
		onTick(snap)
	}
}
