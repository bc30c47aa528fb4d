package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source for engine ticks.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(t *testing.T, s *Session) (*Engine, *fakeClock) {
	t.Helper()
	e, err := NewEngine(s, 60)
	require.NoError(t, err)
	clock := &fakeClock{t: time.Unix(1000, 0)}
	e.now = clock.now
	e.last = clock.t
	return e, clock
}

func TestNewEngineRejectsTickRate(t *testing.T) {
	s := newTestSession(t, DefaultConfig())
	_, err := NewEngine(s, 0)
	assert.Error(t, err)
}

func TestEngineTickUsesElapsedTime(t *testing.T) {
	s := newTestSession(t, DefaultConfig())
	e, clock := newTestEngine(t, s)
	y := s.active.Y

	var got []Snapshot
	e.OnTick(func(snap Snapshot) { got = append(got, snap) })

	clock.advance(301 * time.Millisecond)
	e.tick()

	require.Len(t, got, 1)
	assert.Equal(t, y+1, s.active.Y, "one auto-drop for 301ms of wall time")
	assert.Equal(t, s.Snapshot(), got[0])
}

func TestEngineApply(t *testing.T) {
	s := newTestSession(t, calmConfig())
	e, _ := newTestEngine(t, s)
	x := s.active.X

	e.Apply(Intent{Type: IntentMoveRight})

	assert.Equal(t, x+1, s.active.X)
	assert.Equal(t, s.Snapshot(), e.Snapshot())
}

func TestEngineStopsSimulatingAfterGameOver(t *testing.T) {
	s := newTestSession(t, calmConfig())
	e, clock := newTestEngine(t, s)
	s.end(EndCrushed)
	frozen := e.Snapshot()

	var ticks int
	e.OnTick(func(Snapshot) { ticks++ })
	for i := 0; i < 10; i++ {
		clock.advance(time.Second)
		e.tick()
	}

	assert.Equal(t, 10, ticks, "ticks keep publishing the frozen state")
	assert.Equal(t, frozen, e.Snapshot())
	assert.True(t, e.reported)
	final, ok := e.FinalStats()
	require.True(t, ok)
	assert.Equal(t, EndCrushed, final.Reason)

	e.Apply(Intent{Type: IntentReset})
	assert.False(t, e.reported)
	_, ok = e.FinalStats()
	assert.False(t, ok)
}

func TestEngineRunAndStop(t *testing.T) {
	s := newTestSession(t, calmConfig())
	e, err := NewEngine(s, 200)
	require.NoError(t, err)

	ticked := make(chan struct{}, 1)
	e.OnTick(func(Snapshot) {
		select {
		case ticked <- struct{}{}:
		default:
		}
	})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-ticked:
	case <-time.After(2 * time.Second):
		t.Fatal("engine never ticked")
	}

	e.Stop()
	e.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("engine did not stop")
	}
}

func TestEngineStopBeforeRun(t *testing.T) {
	s := newTestSession(t, calmConfig())
	e, err := NewEngine(s, 200)
	require.NoError(t, err)

	var ticks int
	e.OnTick(func(Snapshot) { ticks++ })
	e.Stop()
	e.Run()

	assert.Zero(t, ticks)
}
