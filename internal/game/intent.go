package game

import "time"

// IntentType names a discrete input command.
type IntentType string

const (
	IntentMoveLeft  IntentType = "move_left"
	IntentMoveRight IntentType = "move_right"
	IntentSoftDrop  IntentType = "soft_drop"
	IntentRotate    IntentType = "rotate"
	IntentHardDrop  IntentType = "hard_drop"
	IntentJump      IntentType = "jump"  // Uses Pressed
	IntentSteer     IntentType = "steer" // Uses Dir
	IntentReset     IntentType = "reset"
)

// Intent is an input command as a value, so hosts, the engine and the
// replay journal can pass it around.
type Intent struct {
	Type    IntentType `json:"type"`
	Pressed bool       `json:"pressed,omitempty"`
	Dir     Direction  `json:"dir,omitempty"`
}

// Apply executes the intent. Unknown types are ignored.
func (s *Session) Apply(i Intent) {
	switch i.Type {
	case IntentMoveLeft:
		s.MoveLeft()
	case IntentMoveRight:
		s.MoveRight()
	case IntentSoftDrop:
		s.SoftDrop()
	case IntentRotate:
		s.Rotate()
	case IntentHardDrop:
		s.HardDrop()
	case IntentJump:
		s.Jump(i.Pressed)
	case IntentSteer:
		s.Steer(i.Dir)
	case IntentReset:
		s.Reset()
	}
}

// Driver is what hosts drive: a tick source plus intents. Session
// implements it directly; wrappers such as the replay recorder add
// behaviour around a Session.
type Driver interface {
	Advance(elapsed time.Duration)
	Apply(i Intent)
	Snapshot() Snapshot
	FinalStats() (FinalStats, bool)
}
