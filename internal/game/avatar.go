package game

import (
	"math"
	"time"
)

// Avatar is the platformer body sharing the board with the falling blocks.
// Positions are in fractional grid units, velocities in units per second,
// timers in seconds.
type Avatar struct {
	X, Y       float64
	VX, VY     float64
	W, H       float64
	OnGround   bool
	Coyote     float64
	JumpBuffer float64
}

// newAvatar places the avatar near the bottom centre of the board.
func newAvatar(cfg GameConfig) Avatar {
	return Avatar{
		X: float64(cfg.Cols)/2 - 0.5,
		Y: float64(cfg.Rows - 2),
		W: cfg.Physics.Width,
		H: cfg.Physics.Height,
	}
}

// Rect returns the avatar's bounding box.
func (a *Avatar) Rect() Rect {
	return Rect{X: a.X, Y: a.Y, W: a.W, H: a.H}
}

// Cell returns the grid cell holding the avatar's top-left corner.
func (a *Avatar) Cell() Point {
	return Point{X: int(math.Floor(a.X)), Y: int(math.Floor(a.Y))}
}

// RequestJump jumps immediately when grounded or inside the coyote window,
// and otherwise arms the jump buffer.
func (a *Avatar) RequestJump(p PhysicsConfig) {
	if a.OnGround || a.Coyote > 0 {
		a.jump(p)
		return
	}
	a.JumpBuffer = p.JumpBufferTime
}

func (a *Avatar) jump(p PhysicsConfig) {
	a.VY = p.JumpVelocity
	a.OnGround = false
	a.Coyote = 0
	a.JumpBuffer = 0
}

// Step integrates one tick of dt seconds against the board with
// semi-implicit Euler: velocity first, then position, one axis at a time.
func (a *Avatar) Step(b *Board, p PhysicsConfig, steer Direction, dt float64) {
	control := 1.0
	if !a.OnGround {
		control = p.AirControl
	}
	switch {
	case steer < 0:
		a.VX -= p.Accel * dt * control
	case steer > 0:
		a.VX += p.Accel * dt * control
	case a.VX > 0:
		a.VX = math.Max(0, a.VX-p.Decel*dt)
	case a.VX < 0:
		a.VX = math.Min(0, a.VX+p.Decel*dt)
	}
	a.VX = math.Max(-p.MaxSpeed, math.Min(p.MaxSpeed, a.VX))

	if nx := a.X + a.VX*dt; !b.RectCollides(nx, a.Y, a.W, a.H) {
		a.X = nx
	} else {
		a.VX = 0
	}

	a.VY = math.Min(a.VY+p.Gravity*dt, p.TerminalVelocity)

	if ny := a.Y + a.VY*dt; !b.RectCollides(a.X, ny, a.W, a.H) {
		a.Y = ny
		a.OnGround = false
	} else {
		// Only a floor landing grounds the avatar; ceilings just stop it.
		a.OnGround = a.VY > 0
		if a.OnGround {
			a.Coyote = p.CoyoteTime
		}
		a.VY = 0
	}

	if a.Coyote > 0 {
		a.Coyote -= dt
	}

	if a.JumpBuffer > 0 {
		a.JumpBuffer -= dt
		if a.OnGround || a.Coyote > 0 {
			a.jump(p)
		}
	}
}

// idleTracker measures how long the avatar has stayed in one grid cell.
type idleTracker struct {
	cell    Point
	elapsed time.Duration
}

func (t *idleTracker) reset(cell Point) {
	t.cell = cell
	t.elapsed = 0
}

// observe accumulates elapsed while the avatar stays in cell.
func (t *idleTracker) observe(cell Point, elapsed time.Duration) time.Duration {
	if cell != t.cell {
		t.reset(cell)
		return 0
	}
	t.elapsed += elapsed
	return t.elapsed
}

// checkCrush ends the session when the avatar's rectangle covers a locked
// cell or a cell of the falling block. Every avatar-vs-block collision goes
// through this one predicate.
func (s *Session) checkCrush() bool {
	if s.over {
		return true
	}
	left, top, right, bottom := RectCells(s.avatar.X, s.avatar.Y, s.avatar.W, s.avatar.H)
	for gy := top; gy <= bottom; gy++ {
		for gx := left; gx <= right; gx++ {
			if s.board.IsOccupied(gx, gy) || (s.active != nil && s.active.covers(gx, gy)) {
				s.end(EndCrushed)
				return true
			}
		}
	}
	return false
}

// stepAvatar runs the avatar's share of a tick: integration, crush check
// and idle tracking.
func (s *Session) stepAvatar(elapsed time.Duration) {
	s.avatar.Step(s.board, s.cfg.Physics, s.steer, elapsed.Seconds())
	if s.checkCrush() {
		return
	}
	if s.idle.observe(s.avatar.Cell(), elapsed) > s.cfg.Timing.IdleTimeout {
		s.end(EndIdle)
	}
}
