package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// calmConfig disables the auto-drop so tests control every block move.
func calmConfig() GameConfig {
	cfg := DefaultConfig()
	cfg.Timing.BaseDropInterval = time.Hour
	cfg.Timing.MinDropInterval = time.Hour
	return cfg
}

func newTestSession(t *testing.T, cfg GameConfig) *Session {
	t.Helper()
	s, err := NewSession(cfg, 42)
	require.NoError(t, err)
	return s
}

// parkAvatar moves the avatar above the visible board where nothing can
// crush it.
func parkAvatar(s *Session) {
	s.avatar.X, s.avatar.Y = 0.1, -5
	s.avatar.VX, s.avatar.VY = 0, 0
	s.idle.reset(s.avatar.Cell())
}

// fillRow fills row y, leaving the listed columns empty.
func fillRow(b *Board, y int, gaps ...int) {
	skip := make(map[int]bool, len(gaps))
	for _, x := range gaps {
		skip[x] = true
	}
	for x := 0; x < b.Cols(); x++ {
		if !skip[x] {
			b.Set(x, y, KindJ)
		}
	}
}

// placeAndLock puts a block at (x, y) and locks it where it is.
func placeAndLock(s *Session, shape *Shape, x, y int) {
	s.active = &Block{Shape: shape, X: x, Y: y}
	s.lock()
}
