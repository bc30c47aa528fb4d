package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

func restingAvatar(t *testing.T, b *Board, p PhysicsConfig) *Avatar {
	t.Helper()
	a := &Avatar{X: 2.1, Y: 19.2, W: p.Width, H: p.Height}
	a.Step(b, p, DirNone, frame.Seconds())
	require.True(t, a.OnGround, "avatar should land on the floor")
	return a
}

func TestJumpFromRest(t *testing.T) {
	p := DefaultConfig().Physics
	b := NewBoard(10, 20)
	a := restingAvatar(t, b, p)

	a.RequestJump(p)

	assert.Equal(t, -12.0, a.VY)
	assert.False(t, a.OnGround)
	assert.Zero(t, a.Coyote)
	assert.Zero(t, a.JumpBuffer)
}

func TestBufferedJumpFiresOnLanding(t *testing.T) {
	p := DefaultConfig().Physics
	b := NewBoard(10, 20)
	a := &Avatar{X: 2.1, Y: 19.1, W: p.Width, H: p.Height}

	a.RequestJump(p)
	require.InDelta(t, 0.1, a.JumpBuffer, 1e-9, "airborne press arms the buffer")
	require.Zero(t, a.VY)

	var elapsed time.Duration
	for a.VY >= 0 {
		require.LessOrEqual(t, elapsed, 100*time.Millisecond, "buffered jump never fired")
		a.Step(b, p, DirNone, frame.Seconds())
		elapsed += frame
	}

	assert.Equal(t, -12.0, a.VY)
	assert.False(t, a.OnGround)
	assert.Zero(t, a.JumpBuffer)
	assert.LessOrEqual(t, elapsed, 100*time.Millisecond)
}

func TestBufferedJumpExpires(t *testing.T) {
	p := DefaultConfig().Physics
	b := NewBoard(10, 20)
	a := &Avatar{X: 2.1, Y: 17, W: p.Width, H: p.Height}

	a.RequestJump(p)
	for i := 0; i < 120 && !a.OnGround; i++ {
		a.Step(b, p, DirNone, frame.Seconds())
	}

	require.True(t, a.OnGround, "avatar should have landed")
	assert.GreaterOrEqual(t, a.VY, 0.0, "late landing must not jump")
}

func TestCoyoteJump(t *testing.T) {
	p := DefaultConfig().Physics
	a := &Avatar{W: p.Width, H: p.Height, Coyote: 0.05}

	a.RequestJump(p)

	assert.Equal(t, -12.0, a.VY)
	assert.Zero(t, a.Coyote)
}

func TestCeilingStopsRise(t *testing.T) {
	p := DefaultConfig().Physics
	b := NewBoard(10, 20)
	b.Set(2, 9, KindT)
	a := &Avatar{X: 2.1, Y: 10.05, VY: -12, W: p.Width, H: p.Height}

	a.Step(b, p, DirNone, frame.Seconds())

	assert.Zero(t, a.VY)
	assert.False(t, a.OnGround, "hitting a ceiling does not ground the avatar")
	assert.Zero(t, a.Coyote)
	assert.Equal(t, 10.05, a.Y)
}

func TestHorizontalMotion(t *testing.T) {
	p := DefaultConfig().Physics
	b := NewBoard(10, 20)

	t.Run("ground acceleration", func(t *testing.T) {
		a := restingAvatar(t, b, p)
		a.Step(b, p, DirRight, 0.01)
		assert.InDelta(t, 0.6, a.VX, 1e-9)
	})

	t.Run("air control", func(t *testing.T) {
		a := &Avatar{X: 2.1, Y: 5, W: p.Width, H: p.Height}
		a.Step(b, p, DirLeft, 0.01)
		assert.InDelta(t, -0.3, a.VX, 1e-9)
	})

	t.Run("speed clamp", func(t *testing.T) {
		a := &Avatar{X: 2.1, Y: 5, VX: 5.9, W: p.Width, H: p.Height}
		a.Step(b, p, DirRight, 0.1)
		assert.Equal(t, 6.0, a.VX)
	})

	t.Run("deceleration stops at zero", func(t *testing.T) {
		a := &Avatar{X: 2.1, Y: 5, VX: 0.1, W: p.Width, H: p.Height}
		a.Step(b, p, DirNone, 0.1)
		assert.Zero(t, a.VX)

		a.VX = -0.1
		a.Step(b, p, DirNone, 0.1)
		assert.Zero(t, a.VX)
	})

	t.Run("wall stops motion", func(t *testing.T) {
		a := &Avatar{X: 0, Y: 5, VX: -3, W: p.Width, H: p.Height}
		a.Step(b, p, DirLeft, 0.016)
		assert.Zero(t, a.X)
		assert.Zero(t, a.VX)
	})
}

func TestTerminalVelocity(t *testing.T) {
	p := DefaultConfig().Physics
	b := NewBoard(10, 200)
	a := &Avatar{X: 2.1, Y: 0, W: p.Width, H: p.Height}

	for i := 0; i < 100; i++ {
		a.Step(b, p, DirNone, frame.Seconds())
	}
	assert.Equal(t, 15.0, a.VY)
}

func TestIdleTracker(t *testing.T) {
	var tr idleTracker
	tr.reset(Point{X: 1, Y: 2})

	assert.Equal(t, 100*time.Millisecond, tr.observe(Point{X: 1, Y: 2}, 100*time.Millisecond))
	assert.Equal(t, 300*time.Millisecond, tr.observe(Point{X: 1, Y: 2}, 200*time.Millisecond))
	assert.Zero(t, tr.observe(Point{X: 2, Y: 2}, 200*time.Millisecond), "moving resets the timer")
	assert.Equal(t, Point{X: 2, Y: 2}, tr.cell)
}

func TestCrushedByLock(t *testing.T) {
	s := newTestSession(t, calmConfig())
	// Let the avatar settle on the floor under the spawn column.
	for i := 0; i < 60; i++ {
		s.Advance(frame)
	}
	require.True(t, s.avatar.OnGround)
	require.False(t, s.IsGameOver())

	s.HardDrop()

	final, ok := s.FinalStats()
	require.True(t, ok)
	assert.Equal(t, EndCrushed, final.Reason)
	assert.Equal(t, s.stats.Score, final.Score, "hard drop points count before the crush")
	assert.Nil(t, s.active, "no spawn after a crush")
}

func TestCrushedByFallingBlock(t *testing.T) {
	s := newTestSession(t, calmConfig())
	s.avatar = Avatar{X: 4.1, Y: 10.1, W: 0.8, H: 0.8}
	s.idle.reset(s.avatar.Cell())
	s.active = &Block{Shape: ShapeOf(KindO), X: 4, Y: 10}

	s.Advance(frame)

	final, ok := s.FinalStats()
	require.True(t, ok)
	assert.Equal(t, EndCrushed, final.Reason)
}

func TestCrushStillClearsFullRows(t *testing.T) {
	s := newTestSession(t, calmConfig())
	s.avatar = Avatar{X: 7.1, Y: 18.1, W: 0.8, H: 0.8}
	s.idle.reset(s.avatar.Cell())
	fillRow(s.board, 18, 6, 7, 8, 9)
	s.board.Set(0, 17, KindT)

	// The flat I completes row 18 right on top of the avatar.
	placeAndLock(s, ShapeOf(KindI), 6, 17)

	final, ok := s.FinalStats()
	require.True(t, ok)
	assert.Equal(t, EndCrushed, final.Reason)
	assert.Equal(t, Stats{Level: 1}, s.stats, "a crushing lock scores nothing")
	assert.Equal(t, FinalStats{Level: 1, Reason: EndCrushed}, final)
	assert.Equal(t, KindT, s.board.At(0, 18), "rows above the cleared one shifted down")
	assert.Equal(t, KindNone, s.board.At(7, 18))
	assert.Nil(t, s.active, "no spawn after a crush")
}
