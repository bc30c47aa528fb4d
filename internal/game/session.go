package game

import "time"

// Hooks are the optional collaborators a session reports to. Any of them
// may be nil.
type Hooks struct {
	Render   func(Snapshot)   // After every tick
	Stats    func(Stats)      // When score, level, lines or combo change
	GameOver func(FinalStats) // Once per session, at the terminal transition
}

// Session is the single-player game: one board shared by the falling
// blocks and the avatar. A Session is not safe for concurrent use; Engine
// serializes access for hosts that need it.
type Session struct {
	cfg   GameConfig
	board *Board
	bag   *Bag
	hooks Hooks

	active *Block
	shadow Block
	next   []Kind

	avatar   Avatar
	steer    Direction
	jumpHeld bool
	idle     idleTracker

	dropCounter time.Duration
	stats       Stats
	over        bool
	final       FinalStats
}

// NewSession validates cfg and starts a session whose randomizer is
// seeded with seed.
func NewSession(cfg GameConfig, seed int64) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		cfg:   cfg,
		board: NewBoard(cfg.Cols, cfg.Rows),
		bag:   NewBag(seed),
		next:  make([]Kind, 0, nextQueueLen+1),
	}
	s.Reset()
	return s, nil
}

// SetHooks replaces the session's hooks.
func (s *Session) SetHooks(h Hooks) {
	s.hooks = h
}

// Config returns the configuration the session was built with.
func (s *Session) Config() GameConfig {
	return s.cfg
}

// Seed returns the randomizer seed.
func (s *Session) Seed() int64 {
	return s.bag.Seed()
}

// Board exposes the live board. Callers must not retain it across ticks.
func (s *Session) Board() *Board {
	return s.board
}

// Avatar returns a copy of the avatar state.
func (s *Session) Avatar() Avatar {
	return s.avatar
}

// Stats returns the running score state.
func (s *Session) Stats() Stats {
	return s.stats
}

// Reset starts a new game on the same randomizer stream. Timers are
// cleared before any state is rebuilt.
func (s *Session) Reset() {
	s.dropCounter = 0
	s.steer = DirNone
	s.jumpHeld = false

	s.board.Reset()
	s.active = nil
	s.shadow = Block{}
	s.next = s.next[:0]
	s.avatar = newAvatar(s.cfg)
	s.idle.reset(s.avatar.Cell())
	s.stats = Stats{Level: 1}
	s.over = false
	s.final = FinalStats{}

	s.publishStats()
	s.spawn()
}

// IsGameOver reports whether the session has ended.
func (s *Session) IsGameOver() bool {
	return s.over
}

// FinalStats returns the stats frozen at the end of the session; ok is
// false while the session is still running.
func (s *Session) FinalStats() (FinalStats, bool) {
	return s.final, s.over
}

// DropInterval returns the current auto-drop period.
func (s *Session) DropInterval() time.Duration {
	return DropInterval(s.cfg.Timing, s.stats.Level)
}

// Advance runs one tick of elapsed game time: the auto-drop timer, then the
// avatar, then the render hook. A session that has ended does nothing.
func (s *Session) Advance(elapsed time.Duration) {
	if s.over {
		return
	}
	if elapsed < 0 {
		elapsed = 0
	}

	s.dropCounter += elapsed
	if s.dropCounter > s.DropInterval() {
		s.dropCounter = 0
		if s.active != nil {
			s.softDrop()
		}
	}

	// The crush check inside stepAvatar also covers the falling block, so
	// it doubles as the block-vs-avatar pass.
	if !s.over {
		s.stepAvatar(elapsed)
	}

	if s.hooks.Render != nil {
		s.hooks.Render(s.Snapshot())
	}
}

// end moves the session to its terminal state. Only the first call has
// any effect.
func (s *Session) end(reason EndReason) {
	if s.over {
		return
	}
	s.over = true
	s.steer = DirNone
	s.final = FinalStats{
		Score:  s.stats.Score,
		Lines:  s.stats.Lines,
		Level:  s.stats.Level,
		Reason: reason,
	}
	if s.hooks.GameOver != nil {
		s.hooks.GameOver(s.final)
	}
}

func (s *Session) publishStats() {
	if s.hooks.Stats != nil {
		s.hooks.Stats(s.stats)
	}
}

// canControlBlock reports whether block intents should take effect.
func (s *Session) canControlBlock() bool {
	return !s.over && s.active != nil
}

// MoveLeft shifts the falling block one column left.
func (s *Session) MoveLeft() {
	if s.canControlBlock() {
		s.moveBlock(DirLeft)
	}
}

// MoveRight shifts the falling block one column right.
func (s *Session) MoveRight() {
	if s.canControlBlock() {
		s.moveBlock(DirRight)
	}
}

// SoftDrop moves the falling block down one row, locking it if it is
// resting.
func (s *Session) SoftDrop() {
	if s.canControlBlock() {
		s.softDrop()
	}
}

// HardDrop drops and locks the falling block.
func (s *Session) HardDrop() {
	if s.canControlBlock() {
		s.hardDrop()
	}
}

// Rotate turns the falling block clockwise with wall kicks.
func (s *Session) Rotate() {
	if s.canControlBlock() {
		s.rotateBlock()
	}
}

// Jump reports the jump button state. Only the transition from released to
// pressed requests a jump.
func (s *Session) Jump(pressed bool) {
	if !pressed {
		s.jumpHeld = false
		return
	}
	if s.jumpHeld {
		return
	}
	s.jumpHeld = true
	if s.over {
		return
	}
	s.avatar.RequestJump(s.cfg.Physics)
}

// Steer sets the avatar's held horizontal direction.
func (s *Session) Steer(dir Direction) {
	if s.over {
		return
	}
	switch {
	case dir < 0:
		s.steer = DirLeft
	case dir > 0:
		s.steer = DirRight
	default:
		s.steer = DirNone
	}
}
