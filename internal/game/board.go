package game

import "math"

// rectEpsilon is subtracted from a rectangle's far edges so that a body
// resting exactly on a cell boundary does not count as overlapping the
// next cell.
const rectEpsilon = 0.001

// Board is the fixed-size grid of locked cells. Row 0 is the top.
type Board struct {
	cols, rows int
	cells      [][]Kind
}

// NewBoard creates an empty cols x rows board.
func NewBoard(cols, rows int) *Board {
	b := &Board{cols: cols, rows: rows, cells: make([][]Kind, rows)}
	for y := range b.cells {
		b.cells[y] = make([]Kind, cols)
	}
	return b
}

// Cols returns the board width.
func (b *Board) Cols() int { return b.cols }

// Rows returns the board height.
func (b *Board) Rows() int { return b.rows }

// At returns the cell at (x, y); out-of-range coordinates read as KindNone.
func (b *Board) At(x, y int) Kind {
	if !b.inside(x, y) {
		return KindNone
	}
	return b.cells[y][x]
}

// Set writes a cell; out-of-range coordinates are ignored.
func (b *Board) Set(x, y int, k Kind) {
	if !b.inside(x, y) {
		return
	}
	b.cells[y][x] = k
}

// Reset empties every cell in place.
func (b *Board) Reset() {
	for y := range b.cells {
		clear(b.cells[y])
	}
}

// Cells returns a deep copy of the grid.
func (b *Board) Cells() [][]Kind {
	out := make([][]Kind, b.rows)
	for y := range out {
		out[y] = make([]Kind, b.cols)
		copy(out[y], b.cells[y])
	}
	return out
}

func (b *Board) inside(x, y int) bool {
	return x >= 0 && x < b.cols && y >= 0 && y < b.rows
}

// IsOccupied treats the side walls and the floor as solid and the space
// above the top row as open.
func (b *Board) IsOccupied(x, y int) bool {
	if x < 0 || x >= b.cols || y >= b.rows {
		return true
	}
	if y < 0 {
		return false
	}
	return b.cells[y][x] != KindNone
}

// ShapeCollides reports whether shape s with origin (ox, oy) overlaps a
// wall, the floor or a locked cell.
func (b *Board) ShapeCollides(s *Shape, ox, oy int) bool {
	for r, row := range s.Cells {
		for c, filled := range row {
			if filled && b.IsOccupied(ox+c, oy+r) {
				return true
			}
		}
	}
	return false
}

// RectCells returns the inclusive range of grid cells overlapped by the
// rectangle (x, y, w, h).
func RectCells(x, y, w, h float64) (left, top, right, bottom int) {
	left = int(math.Floor(x))
	top = int(math.Floor(y))
	right = int(math.Floor(x + w - rectEpsilon))
	bottom = int(math.Floor(y + h - rectEpsilon))
	return left, top, right, bottom
}

// RectCollides reports whether the rectangle overlaps a wall, the floor or
// a locked cell.
func (b *Board) RectCollides(x, y, w, h float64) bool {
	left, top, right, bottom := RectCells(x, y, w, h)
	for gy := top; gy <= bottom; gy++ {
		for gx := left; gx <= right; gx++ {
			if b.IsOccupied(gx, gy) {
				return true
			}
		}
	}
	return false
}

// RowFull reports whether every cell of row y is filled. Rows outside the
// board are never full.
func (b *Board) RowFull(y int) bool {
	if !b.inside(0, y) {
		return false
	}
	for _, k := range b.cells[y] {
		if k == KindNone {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row, shifting the rows above it down and
// inserting empty rows at the top. It returns the number of rows removed.
func (b *Board) ClearFullRows() int {
	cleared := 0
	for y := b.rows - 1; y >= 0; {
		if !b.RowFull(y) {
			y--
			continue
		}
		// Reuse the removed row's storage as the new empty top row.
		removed := b.cells[y]
		copy(b.cells[1:y+1], b.cells[:y])
		clear(removed)
		b.cells[0] = removed
		cleared++
		// y is held: the row shifted into it must be examined too.
	}
	return cleared
}
