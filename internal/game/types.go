package game

import (
	"errors"
	"fmt"
	"time"
)

// Kind identifies a shape, and doubles as the content of a board cell.
type Kind uint8

const (
	KindNone Kind = iota // Empty cell
	KindI
	KindJ
	KindL
	KindS
	KindZ
	KindT
	KindO

	kindCount
)

// Kinds lists the seven shape kinds in canonical order.
var Kinds = [...]Kind{KindI, KindJ, KindL, KindS, KindZ, KindT, KindO}

var kindNames = [kindCount]string{
	KindNone: "-",
	KindI:    "I",
	KindJ:    "J",
	KindL:    "L",
	KindS:    "S",
	KindZ:    "Z",
	KindT:    "T",
	KindO:    "O",
}

func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Direction is a horizontal input direction.
type Direction int

const (
	DirLeft  Direction = -1
	DirNone  Direction = 0
	DirRight Direction = 1
)

// EndReason records which terminal condition ended a session.
type EndReason int

const (
	EndNone    EndReason = iota // Still running
	EndLockOut                  // New block collided on spawn
	EndCrushed                  // Avatar embedded in a locked or falling block
	EndIdle                     // Avatar stayed in one cell too long
)

func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "running"
	case EndLockOut:
		return "lock-out"
	case EndCrushed:
		return "crushed"
	case EndIdle:
		return "idle"
	default:
		return fmt.Sprintf("EndReason(%d)", int(r))
	}
}

// Point is an integer grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an axis-aligned rectangle in fractional grid units.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Stats is the running score state shown by a HUD.
type Stats struct {
	Score int `json:"score"`
	Level int `json:"level"`
	Lines int `json:"lines"`
	Combo int `json:"combo"`
}

// FinalStats is frozen at the moment a session ends.
type FinalStats struct {
	Score  int       `json:"score"`
	Lines  int       `json:"lines"`
	Level  int       `json:"level"`
	Reason EndReason `json:"reason"`
}

// PhysicsConfig holds the avatar's kinematic constants, in grid units and seconds.
type PhysicsConfig struct {
	Accel            float64 `json:"accel"`
	AirControl       float64 `json:"air_control"`
	Decel            float64 `json:"decel"`
	MaxSpeed         float64 `json:"max_speed"`
	Gravity          float64 `json:"gravity"`
	TerminalVelocity float64 `json:"terminal_velocity"`
	JumpVelocity     float64 `json:"jump_velocity"` // Negative is up
	CoyoteTime       float64 `json:"coyote_time"`
	JumpBufferTime   float64 `json:"jump_buffer_time"`
	Width            float64 `json:"width"`
	Height           float64 `json:"height"`
}

// TimingConfig holds the millisecond-scale timers of a session.
type TimingConfig struct {
	BaseDropInterval time.Duration `json:"base_drop_interval"`
	DropIntervalStep time.Duration `json:"drop_interval_step"` // Per level
	MinDropInterval  time.Duration `json:"min_drop_interval"`
	IdleTimeout      time.Duration `json:"idle_timeout"`
	IdleWarning      time.Duration `json:"idle_warning"`
}

// GameConfig holds configurable parameters for a game session.
type GameConfig struct {
	Cols     int           `json:"cols"`
	Rows     int           `json:"rows"`
	TickRate int           `json:"tick_rate"` // Ticks per second, used by Engine
	Physics  PhysicsConfig `json:"physics"`
	Timing   TimingConfig  `json:"timing"`
}

// DefaultConfig returns the classic 10x20 configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Cols:     10,
		Rows:     20,
		TickRate: 60,
		Physics: PhysicsConfig{
			Accel:            60,
			AirControl:       0.5,
			Decel:            40,
			MaxSpeed:         6,
			Gravity:          30,
			TerminalVelocity: 15,
			JumpVelocity:     -12,
			CoyoteTime:       0.1,
			JumpBufferTime:   0.1,
			Width:            0.8,
			Height:           0.8,
		},
		Timing: TimingConfig{
			BaseDropInterval: 300 * time.Millisecond,
			DropIntervalStep: 35 * time.Millisecond,
			MinDropInterval:  50 * time.Millisecond,
			IdleTimeout:      10 * time.Second,
			IdleWarning:      7 * time.Second,
		},
	}
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid game config")

// Validate reports configurations the simulation cannot run with.
func (c GameConfig) Validate() error {
	// Widest shape is 4 cells and spawns at Cols/2-1.
	if c.Cols < 6 {
		return fmt.Errorf("%w: cols must be at least 6, got %d", ErrInvalidConfig, c.Cols)
	}
	if c.Rows < 4 {
		return fmt.Errorf("%w: rows must be at least 4, got %d", ErrInvalidConfig, c.Rows)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	}
	if c.Physics.Width <= 0 || c.Physics.Width >= 1 || c.Physics.Height <= 0 || c.Physics.Height >= 1 {
		return fmt.Errorf("%w: avatar size must be within (0,1), got %gx%g",
			ErrInvalidConfig, c.Physics.Width, c.Physics.Height)
	}
	if c.Timing.MinDropInterval <= 0 || c.Timing.BaseDropInterval < c.Timing.MinDropInterval {
		return fmt.Errorf("%w: drop interval %v below floor %v",
			ErrInvalidConfig, c.Timing.BaseDropInterval, c.Timing.MinDropInterval)
	}
	if c.Timing.IdleTimeout <= 0 {
		return fmt.Errorf("%w: idle timeout must be positive", ErrInvalidConfig)
	}
	return nil
}
