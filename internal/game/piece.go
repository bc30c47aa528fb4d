package game

// nextQueueLen is the number of upcoming kinds kept visible.
const nextQueueLen = 4

// Block is a shape placed on the board at an integer origin.
type Block struct {
	Shape *Shape
	X, Y  int
}

// Cells returns the grid coordinates of the block's filled cells.
func (b Block) Cells() []Point {
	return b.Shape.Occupied(b.X, b.Y)
}

// covers reports whether the block fills grid cell (x, y).
func (b Block) covers(x, y int) bool {
	r, c := y-b.Y, x-b.X
	n := b.Shape.Size()
	if r < 0 || c < 0 || r >= n || c >= n {
		return false
	}
	return b.Shape.Cells[r][c]
}

// spawnX is the column of a freshly spawned block's origin.
func (s *Session) spawnX() int {
	return s.cfg.Cols/2 - 1
}

// fillQueue tops the next queue up from the bag.
func (s *Session) fillQueue() {
	for len(s.next) < nextQueueLen {
		s.next = append(s.next, s.bag.Next())
	}
}

// spawn pulls the next kind and places it at the top. A spawn that
// collides ends the session without placing anything.
func (s *Session) spawn() {
	s.fillQueue()
	k := s.next[0]
	s.next = append(s.next[:0], s.next[1:]...)
	s.fillQueue()

	blk := Block{Shape: ShapeOf(k), X: s.spawnX(), Y: 0}
	if s.board.ShapeCollides(blk.Shape, blk.X, blk.Y) {
		s.active = nil
		s.end(EndLockOut)
		return
	}
	s.active = &blk
	s.updateShadow()
}

// landingY returns the lowest legal Y for blk at its current X and shape.
func (s *Session) landingY(blk Block) int {
	y := blk.Y
	for !s.board.ShapeCollides(blk.Shape, blk.X, y+1) {
		y++
	}
	return y
}

func (s *Session) updateShadow() {
	if s.active == nil {
		return
	}
	s.shadow = *s.active
	s.shadow.Y = s.landingY(*s.active)
}

// moveBlock shifts the active block one column; blocked moves are dropped.
func (s *Session) moveBlock(dir Direction) {
	blk := s.active
	if s.board.ShapeCollides(blk.Shape, blk.X+int(dir), blk.Y) {
		return
	}
	blk.X += int(dir)
	s.updateShadow()
}

// softDrop moves the active block down one row, locking it when it cannot
// move.
func (s *Session) softDrop() {
	blk := s.active
	if s.board.ShapeCollides(blk.Shape, blk.X, blk.Y+1) {
		s.lock()
		return
	}
	blk.Y++
	s.updateShadow()
}

// hardDrop drops the active block to its landing row, awarding points per
// row descended, and locks it.
func (s *Session) hardDrop() {
	blk := s.active
	landing := s.landingY(*blk)
	if rows := landing - blk.Y; rows > 0 {
		s.stats.Score += hardDropPoints * rows
		s.publishStats()
	}
	blk.Y = landing
	s.lock()
}

// rotateBlock turns the active block clockwise, trying each wall kick in
// order. A rotation with no legal kick leaves the block untouched.
func (s *Session) rotateBlock() {
	blk := s.active
	if blk.Shape.Kind == KindO {
		return
	}
	rotated := blk.Shape.Rotated()
	for _, k := range KickTable(blk.Shape.Kind) {
		x, y := blk.X+k.X, blk.Y+k.Y
		if s.board.ShapeCollides(rotated, x, y) {
			continue
		}
		blk.Shape, blk.X, blk.Y = rotated, x, y
		s.updateShadow()
		return
	}
}

// lock writes the active block into the board, then resolves crushes,
// line clears and the next spawn.
func (s *Session) lock() {
	blk := *s.active
	s.active = nil
	for _, p := range blk.Cells() {
		// Cells above the visible board are dropped.
		if p.Y >= 0 {
			s.board.Set(p.X, p.Y, blk.Shape.Kind)
		}
	}

	// A crush freezes the stats, but the board still settles.
	if s.checkCrush() {
		s.board.ClearFullRows()
		return
	}

	s.scoreLock(s.board.ClearFullRows())
	s.spawn()
}
