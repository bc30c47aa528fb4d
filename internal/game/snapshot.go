package game

import "time"

// Snapshot is a render-ready copy of a session. It shares no memory with
// the session that produced it.
type Snapshot struct {
	Cols   int      `json:"cols"`
	Rows   int      `json:"rows"`
	Board  [][]Kind `json:"board"`
	Active []Point  `json:"active,omitempty"`
	Shadow []Point  `json:"shadow,omitempty"`
	Kind   Kind     `json:"kind"` // Kind of the active block
	Next   []Kind   `json:"next"`

	Avatar   Rect `json:"avatar"`
	OnGround bool `json:"on_ground"`

	Stats       Stats         `json:"stats"`
	Idle        time.Duration `json:"idle"`
	IdleWarning bool          `json:"idle_warning"`

	Over   bool      `json:"over"`
	Reason EndReason `json:"reason"`
}

// Snapshot copies the current state for a renderer.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Cols:        s.cfg.Cols,
		Rows:        s.cfg.Rows,
		Board:       s.board.Cells(),
		Next:        append([]Kind(nil), s.next...),
		Avatar:      s.avatar.Rect(),
		OnGround:    s.avatar.OnGround,
		Stats:       s.stats,
		Idle:        s.idle.elapsed,
		IdleWarning: s.idle.elapsed > s.cfg.Timing.IdleWarning,
		Over:        s.over,
		Reason:      s.final.Reason,
	}
	if s.active != nil {
		snap.Kind = s.active.Shape.Kind
		snap.Active = s.active.Cells()
		snap.Shadow = s.shadow.Cells()
	}
	return snap
}

// ActiveAt reports whether the falling block covers (x, y).
func (snap *Snapshot) ActiveAt(x, y int) bool {
	return containsPoint(snap.Active, x, y)
}

// ShadowAt reports whether the landing projection covers (x, y).
func (snap *Snapshot) ShadowAt(x, y int) bool {
	return containsPoint(snap.Shadow, x, y)
}

// AvatarAt reports whether the avatar's rectangle overlaps cell (x, y).
func (snap *Snapshot) AvatarAt(x, y int) bool {
	left, top, right, bottom := RectCells(snap.Avatar.X, snap.Avatar.Y, snap.Avatar.W, snap.Avatar.H)
	return x >= left && x <= right && y >= top && y <= bottom
}

func containsPoint(pts []Point, x, y int) bool {
	for _, p := range pts {
		if p.X == x && p.Y == y {
			return true
		}
	}
	return false
}
