package game

import "time"

const (
	hardDropPoints = 2  // Per row descended
	comboStep      = 50 // Per combo level beyond the first
	linesPerLevel  = 10
)

// lineClearBase is indexed by the number of rows cleared at once.
var lineClearBase = [...]int{0, 100, 300, 500, 800}

// LineClearScore returns the points for clearing n rows at level with the
// combo counter already including this clear.
func LineClearScore(n, level, combo int) int {
	base := 0
	if n >= 0 && n < len(lineClearBase) {
		base = lineClearBase[n]
	}
	bonus := 0
	if combo > 1 {
		bonus = (combo - 1) * comboStep
	}
	return base*level + bonus
}

// LevelFor returns the level reached after clearing lines rows.
func LevelFor(lines int) int {
	return lines/linesPerLevel + 1
}

// DropInterval returns the auto-drop period at level.
func DropInterval(t TimingConfig, level int) time.Duration {
	return max(t.MinDropInterval, t.BaseDropInterval-time.Duration(level-1)*t.DropIntervalStep)
}

// scoreLock applies the outcome of one lock that cleared n rows. The clear
// is scored at the level it was made on; a clear that levels up pays the
// old level's multiplier.
func (s *Session) scoreLock(n int) {
	if n == 0 {
		if s.stats.Combo != 0 {
			s.stats.Combo = 0
			s.publishStats()
		}
		return
	}
	s.stats.Combo++
	s.stats.Score += LineClearScore(n, s.stats.Level, s.stats.Combo)
	s.stats.Lines += n
	s.stats.Level = LevelFor(s.stats.Lines)
	s.publishStats()
}
