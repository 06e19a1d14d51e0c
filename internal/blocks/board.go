package blocks

// Board is the fixed grid of settled cells. A cell holds 0 when empty and
// kind+1 once a piece of that kind locked there.
type Board struct {
	rows, cols int
	cells      []uint8
}

func NewBoard(rows, cols int) *Board {
	return &Board{rows: rows, cols: cols, cells: make([]uint8, rows*cols)}
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// Inside reports whether c lies on the board.
func (b *Board) Inside(c Cell) bool {
	return c.X >= 0 && c.X < b.cols && c.Y >= 0 && c.Y < b.rows
}

// Occupied reports whether c is on the board and filled.
func (b *Board) Occupied(c Cell) bool {
	return b.Inside(c) && b.cells[c.Y*b.cols+c.X] != 0
}

// At returns the kind that locked at c.
func (b *Board) At(c Cell) (Kind, bool) {
	if !b.Occupied(c) {
		return 0, false
	}
	return Kind(b.cells[c.Y*b.cols+c.X] - 1), true
}

func (b *Board) fill(c Cell, k Kind) {
	if b.Inside(c) {
		b.cells[c.Y*b.cols+c.X] = uint8(k) + 1
	}
}

// Count is the number of filled cells.
func (b *Board) Count() int {
	n := 0
	for _, v := range b.cells {
		if v != 0 {
			n++
		}
	}
	return n
}

// FullRows lists completely filled rows from top to bottom.
func (b *Board) FullRows() []int {
	var full []int
	for y := 0; y < b.rows; y++ {
		row := b.cells[y*b.cols : (y+1)*b.cols]
		complete := true
		for _, v := range row {
			if v == 0 {
				complete = false
				break
			}
		}
		if complete {
			full = append(full, y)
		}
	}
	return full
}

// clearRows removes the given rows (ascending) and drops everything above
// them.
func (b *Board) clearRows(rows []int) {
	for _, y := range rows {
		copy(b.cells[b.cols:(y+1)*b.cols], b.cells[:y*b.cols])
		clear(b.cells[:b.cols])
	}
}

func (b *Board) reset() {
	clear(b.cells)
}

// IsValidPlacement reports whether m with its pivot at pos fits: every
// occupied cell on the board and on an empty cell. Walls are checked per
// cell, not against the pattern's bounding width.
func IsValidPlacement(b *Board, m Matrix, pos Cell) bool {
	for _, c := range m.Cells() {
		p := pos.Add(c)
		if !b.Inside(p) || b.Occupied(p) {
			return false
		}
	}
	return true
}
