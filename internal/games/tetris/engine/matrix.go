package engine

import "sort"

// Matrix dimensions. Rows at or above VisibleHeight form the hidden buffer.
const (
	Width         = 10
	VisibleHeight = 20
	BufferHeight  = 20
	Height        = VisibleHeight + BufferHeight
)

// Grid is a full copy of the matrix cells, indexed [y][x] with row 0 the floor.
type Grid [Height][Width]Kind

// Matrix is the playfield. A cell holds KindNone or the kind that locked there.
// Cells change only in Lock and ClearRows.
type Matrix struct {
	cells Grid
}

// NewMatrix returns an empty matrix.
func NewMatrix() *Matrix {
	return &Matrix{}
}

// inBounds reports whether (x, y) lies inside the matrix.
func inBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Cell returns the content of (x, y), or KindNone when out of bounds.
func (m *Matrix) Cell(x, y int) Kind {
	if !inBounds(x, y) {
		return KindNone
	}
	return m.cells[y][x]
}

// IsOccupied reports whether (x, y) is out of bounds or holds a locked block.
func (m *Matrix) IsOccupied(x, y int) bool {
	if !inBounds(x, y) {
		return true
	}
	return m.cells[y][x] != KindNone
}

// Fits reports whether every cell is in bounds and empty.
func (m *Matrix) Fits(cells [4]Point) bool {
	for _, c := range cells {
		if m.IsOccupied(c.X, c.Y) {
			return false
		}
	}
	return true
}

// Lock writes kind k into each cell. The caller has already checked legality.
func (m *Matrix) Lock(cells [4]Point, k Kind) {
	for _, c := range cells {
		m.cells[c.Y][c.X] = k
	}
}

// RowFull reports whether every cell of row y is occupied.
func (m *Matrix) RowFull(y int) bool {
	if y < 0 || y >= Height {
		return false
	}
	for x := range Width {
		if m.cells[y][x] == KindNone {
			return false
		}
	}
	return true
}

// ScanFullRows returns the full rows among candidates, ascending and without
// duplicates. A nil candidate list scans every row.
func (m *Matrix) ScanFullRows(candidates []int) []int {
	if candidates == nil {
		candidates = make([]int, Height)
		for y := range Height {
			candidates[y] = y
		}
	}

	seen := make(map[int]bool, len(candidates))
	var full []int
	for _, y := range candidates {
		if seen[y] {
			continue
		}
		seen[y] = true
		if m.RowFull(y) {
			full = append(full, y)
		}
	}
	sort.Ints(full)
	return full
}

// ClearRows removes the given rows and compacts everything above them
// downward. Rows are processed from the topmost down so earlier removals
// never shift a row still waiting to be removed. Rows entering from above
// the top are empty.
func (m *Matrix) ClearRows(rows []int) {
	sorted := append([]int(nil), rows...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	last := -1
	for _, r := range sorted {
		if r == last || r < 0 || r >= Height {
			continue
		}
		last = r
		copy(m.cells[r:Height-1], m.cells[r+1:Height])
		m.cells[Height-1] = [Width]Kind{}
	}
}

// Grid returns a copy of all cells.
func (m *Matrix) Grid() Grid {
	return m.cells
}
