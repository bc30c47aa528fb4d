package game

// Shape is one orientation of a block. Shapes are immutable and shared by
// pointer; cw links to the clockwise orientation, and four hops return to
// the starting shape.
type Shape struct {
	Kind  Kind
	Cells [][]bool // Cells[row][col], square
	cw    *Shape
}

// Size returns the side length of the shape's matrix.
func (s *Shape) Size() int {
	return len(s.Cells)
}

// Rotated returns the clockwise orientation of s.
func (s *Shape) Rotated() *Shape {
	return s.cw
}

// Occupied returns the grid coordinates of the shape's filled cells with
// its origin at (ox, oy).
func (s *Shape) Occupied(ox, oy int) []Point {
	pts := make([]Point, 0, 4)
	for r, row := range s.Cells {
		for c, filled := range row {
			if filled {
				pts = append(pts, Point{X: ox + c, Y: oy + r})
			}
		}
	}
	return pts
}

// Kick is a wall-kick offset; positive Y points down.
type Kick struct {
	X, Y int
}

var (
	kicksI = [5]Kick{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}}
	kicks  = [5]Kick{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}
)

// KickTable returns the ordered offsets tried when rotating a block of kind k.
func KickTable(k Kind) [5]Kick {
	if k == KindI {
		return kicksI
	}
	return kicks
}

var shapeMatrices = [kindCount][][]int{
	KindI: {
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	},
	KindJ: {
		{1, 0, 0},
		{1, 1, 1},
		{0, 0, 0},
	},
	KindL: {
		{0, 0, 1},
		{1, 1, 1},
		{0, 0, 0},
	},
	KindS: {
		{0, 1, 1},
		{1, 1, 0},
		{0, 0, 0},
	},
	KindZ: {
		{1, 1, 0},
		{0, 1, 1},
		{0, 0, 0},
	},
	KindT: {
		{0, 1, 0},
		{1, 1, 1},
		{0, 0, 0},
	},
	KindO: {
		{1, 1},
		{1, 1},
	},
}

// spawnShapes holds the initial orientation of every kind.
var spawnShapes [kindCount]*Shape

func init() {
	for _, k := range Kinds {
		spawnShapes[k] = buildOrientations(k, shapeMatrices[k])
	}
}

// ShapeOf returns the spawn orientation for kind k, or nil for KindNone.
func ShapeOf(k Kind) *Shape {
	if k >= kindCount {
		return nil
	}
	return spawnShapes[k]
}

// buildOrientations creates the four orientations of a shape and links
// them into a clockwise cycle.
func buildOrientations(k Kind, matrix [][]int) *Shape {
	cells := make([][]bool, len(matrix))
	for r, row := range matrix {
		cells[r] = make([]bool, len(row))
		for c, v := range row {
			cells[r][c] = v != 0
		}
	}

	first := &Shape{Kind: k, Cells: cells}
	cur := first
	for i := 0; i < 3; i++ {
		next := &Shape{Kind: k, Cells: RotateMatrix(cur.Cells)}
		cur.cw = next
		cur = next
	}
	cur.cw = first
	return first
}

// RotateMatrix rotates a square matrix 90 degrees clockwise:
// out[c][n-1-r] = in[r][c].
func RotateMatrix(m [][]bool) [][]bool {
	n := len(m)
	out := make([][]bool, n)
	for i := range out {
		out[i] = make([]bool, n)
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			out[c][n-1-r] = m[r][c]
		}
	}
	return out
}
