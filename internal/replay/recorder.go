package replay

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/amalg/go-blockhop/internal/game"
)

// Recorder wraps a Session and journals every tick and intent applied to
// it. It satisfies game.Driver, so hosts drive it exactly like a Session.
//
// Write failures do not interrupt play: the first error is kept, the
// journal stops growing, and Close reports it.
type Recorder struct {
	session *game.Session
	w       *bufio.Writer
	closer  io.Closer
	err     error
	closed  bool
}

// NewRecorder starts a session and writes the journal header to w.
func NewRecorder(w io.Writer, cfg game.GameConfig, seed int64) (*Recorder, error) {
	s, err := game.NewSession(cfg, seed)
	if err != nil {
		return nil, err
	}
	r := &Recorder{session: s, w: bufio.NewWriter(w)}
	if err := Encode(r.w, FrameHeader, HeaderFrame{Seed: seed, Config: cfg}); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return r, nil
}

// Create records into a new file at path. Close closes the file.
func Create(path string, cfg game.GameConfig, seed int64) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create journal: %w", err)
	}
	r, err := NewRecorder(f, cfg, seed)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	log.Printf("[REPLAY] Recording to %s (seed %d)", path, seed)
	return r, nil
}

// Session returns the recorded session.
func (r *Recorder) Session() *game.Session {
	return r.session
}

// Advance runs a tick and journals its duration.
func (r *Recorder) Advance(elapsed time.Duration) {
	// A terminal session ignores ticks; journaling them would only pad the file.
	if r.session.IsGameOver() {
		return
	}
	r.write(FrameTick, TickFrame{ElapsedNS: int64(elapsed)})
	r.session.Advance(elapsed)
}

// Apply runs an intent and journals it.
func (r *Recorder) Apply(i game.Intent) {
	r.write(FrameIntent, IntentFrame{Intent: i})
	r.session.Apply(i)
}

// Snapshot returns the session's snapshot.
func (r *Recorder) Snapshot() game.Snapshot {
	return r.session.Snapshot()
}

// FinalStats returns the session's final stats.
func (r *Recorder) FinalStats() (game.FinalStats, bool) {
	return r.session.FinalStats()
}

// Err returns the first write error, if any.
func (r *Recorder) Err() error {
	return r.err
}

// Close writes the end frame, flushes, and closes the file opened by
// Create. It returns the first error encountered while recording.
func (r *Recorder) Close() error {
	if r.closed {
		return r.err
	}
	r.closed = true

	final, over := r.session.FinalStats()
	r.write(FrameEnd, EndFrame{Over: over, Final: final, Stats: r.session.Stats()})
	if r.err == nil {
		if err := r.w.Flush(); err != nil {
			r.err = fmt.Errorf("flush journal: %w", err)
		}
	}
	if r.closer != nil {
		if err := r.closer.Close(); err != nil && r.err == nil {
			r.err = fmt.Errorf("close journal: %w", err)
		}
	}
	if r.err != nil {
		log.Printf("[REPLAY] Journal incomplete: %v", r.err)
	}
	return r.err
}

func (r *Recorder) write(t FrameType, payload any) {
	if r.err != nil || r.closed && t != FrameEnd {
		return
	}
	if err := Encode(r.w, t, payload); err != nil {
		r.err = fmt.Errorf("write %s frame: %w", t, err)
	}
}
