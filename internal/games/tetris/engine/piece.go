// Package engine implements the falling-block rules engine: piece geometry,
// randomized piece generation, the playfield matrix, the active piece
// controller, lock-delay timing, line clears, scoring and the phase state
// machine that drives one piece from spawn to lock.
//
// The engine has no notion of real time or terminals. Callers feed it input
// operations and advance its virtual Clock; everything runs on the caller's
// goroutine.
package engine

import "fmt"

// Kind identifies a piece shape. KindNone marks an empty matrix cell.
type Kind int8

const (
	KindNone Kind = iota
	KindI
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// KindCount is the number of playable piece kinds.
const KindCount = 7

// Kinds lists the playable kinds in table order.
var Kinds = [KindCount]Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}

// Valid reports whether k is one of the seven playable kinds.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindZ
}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "-"
	case KindI:
		return "I"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindT:
		return "T"
	case KindZ:
		return "Z"
	default:
		return "?"
	}
}

// Facing is one of the four rotation states.
type Facing int8

const (
	North Facing = iota
	East
	South
	West
)

// String returns the facing name.
func (f Facing) String() string {
	switch f {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Rotation is a rotation direction: +1 clockwise, -1 counter-clockwise.
type Rotation int8

const (
	Clockwise        Rotation = 1
	CounterClockwise Rotation = -1
)

// Rotate returns the facing reached by turning once in direction r.
func (f Facing) Rotate(r Rotation) Facing {
	return Facing((int(f) + int(r) + 4) % 4)
}

// Point is a matrix coordinate or an offset. X grows right, Y grows up.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p minus q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// shapes holds the four cell offsets from the rotation center for every
// (kind, facing). Index 0 of the outer array is KindI.
var shapes = [KindCount][4][4]Point{
	{ // I
		{{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
		{{0, 1}, {0, 0}, {0, -1}, {0, -2}},
		{{1, 0}, {0, 0}, {-1, 0}, {-2, 0}},
		{{0, -1}, {0, 0}, {0, 1}, {0, 2}},
	},
	{ // J
		{{-1, 1}, {-1, 0}, {0, 0}, {1, 0}},
		{{1, 1}, {0, 1}, {0, 0}, {0, -1}},
		{{1, -1}, {1, 0}, {0, 0}, {-1, 0}},
		{{-1, -1}, {0, -1}, {0, 0}, {0, 1}},
	},
	{ // L
		{{1, 1}, {-1, 0}, {0, 0}, {1, 0}},
		{{1, -1}, {0, 1}, {0, 0}, {0, -1}},
		{{-1, -1}, {1, 0}, {0, 0}, {-1, 0}},
		{{-1, 1}, {0, -1}, {0, 0}, {0, 1}},
	},
	{ // O never rotates, so every facing shares one footprint
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	},
	{ // S
		{{0, 0}, {-1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, -1}},
		{{0, 0}, {1, 0}, {0, -1}, {-1, -1}},
		{{0, 0}, {0, -1}, {-1, 0}, {-1, 1}},
	},
	{ // T
		{{0, 1}, {-1, 0}, {0, 0}, {1, 0}},
		{{1, 0}, {0, 1}, {0, 0}, {0, -1}},
		{{0, -1}, {1, 0}, {0, 0}, {-1, 0}},
		{{-1, 0}, {0, -1}, {0, 0}, {0, 1}},
	},
	{ // Z
		{{-1, 1}, {0, 1}, {0, 0}, {1, 0}},
		{{1, 1}, {1, 0}, {0, 0}, {0, -1}},
		{{1, -1}, {0, -1}, {0, 0}, {-1, 0}},
		{{-1, -1}, {-1, 0}, {0, 0}, {0, 1}},
	},
}

// Offset tables per facing. The kick list for a rotation from A to B is
// offsets[A][i] - offsets[B][i], tried in index order.
var jlstzOffsets = [4][5]Point{
	{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
	{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
	{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
}

var iOffsets = [4][5]Point{
	{{0, 0}, {-1, 0}, {2, 0}, {-1, 0}, {2, 0}},
	{{-1, 0}, {0, 0}, {0, 0}, {0, 1}, {0, -2}},
	{{-1, 1}, {1, 1}, {-2, 1}, {1, 0}, {-2, 0}},
	{{0, 1}, {0, 1}, {0, 1}, {0, -1}, {0, 2}},
}

// KickCount is the length of every non-empty kick list.
const KickCount = 5

// Shape returns the cell offsets of kind k at facing f.
// It panics if k is not a playable kind: that is a table bug, not a runtime state.
func Shape(k Kind, f Facing) [4]Point {
	mustValid(k, f)
	return shapes[k-KindI][f]
}

// KickOffsets returns the ordered center displacements to try when rotating
// kind k from facing `from` to facing `to`. The O piece has no kicks and
// returns nil.
func KickOffsets(k Kind, from, to Facing) []Point {
	mustValid(k, from)
	mustValid(k, to)

	var table *[4][5]Point
	switch k {
	case KindO:
		return nil
	case KindI:
		table = &iOffsets
	default:
		table = &jlstzOffsets
	}

	kicks := make([]Point, KickCount)
	for i := range KickCount {
		kicks[i] = table[from][i].Sub(table[to][i])
	}
	return kicks
}

func mustValid(k Kind, f Facing) {
	if !k.Valid() {
		panic(fmt.Sprintf("engine: piece kind %d is not in the shape table", k))
	}
	if f < North || f > West {
		panic(fmt.Sprintf("engine: facing %d out of range", f))
	}
}

// Piece is the active piece: kind, facing and the absolute rotation center.
type Piece struct {
	Kind   Kind
	Facing Facing
	Center Point
}

// Cells returns the absolute cells occupied by the piece.
func (p Piece) Cells() [4]Point {
	offsets := Shape(p.Kind, p.Facing)
	var cells [4]Point
	for i, o := range offsets {
		cells[i] = p.Center.Add(o)
	}
	return cells
}

// Moved returns a copy of the piece translated by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.Center = p.Center.Add(Point{X: dx, Y: dy})
	return p
}
