package blocks

import "fmt"

// Kind names a piece shape.
type Kind int

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L
)

// Kinds lists every shape in bag order.
var Kinds = [...]Kind{I, O, T, S, Z, J, L}

func (k Kind) String() string {
	if k < I || k > L {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return "IOTSZJL"[k : k+1]
}

var patterns = [...]Matrix{
	I: parse(
		"....",
		"####",
		"....",
		"....",
	),
	O: parse(
		"....",
		".##.",
		".##.",
		"....",
	),
	T: parse(
		".#.",
		"###",
		"...",
	),
	S: parse(
		".##",
		"##.",
		"...",
	),
	Z: parse(
		"##.",
		".##",
		"...",
	),
	J: parse(
		"#..",
		"###",
		"...",
	),
	L: parse(
		"..#",
		"###",
		"...",
	),
}

// Matrix returns a fresh copy of the kind's spawn pattern.
func (k Kind) Matrix() Matrix {
	return patterns[k].Clone()
}

// Cell is a grid coordinate: X is the column, Y the row (row 0 on top).
type Cell struct {
	X, Y int
}

func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// Matrix is a square cell pattern indexed [row][column].
type Matrix [][]bool

func parse(rows ...string) Matrix {
	m := make(Matrix, len(rows))
	for i, row := range rows {
		m[i] = make([]bool, len(row))
		for j, ch := range row {
			m[i][j] = ch == '#'
		}
	}
	return m
}

func newMatrix(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]bool, n)
	}
	return m
}

func (m Matrix) Size() int {
	return len(m)
}

func (m Matrix) Clone() Matrix {
	c := make(Matrix, len(m))
	for i := range m {
		c[i] = append([]bool(nil), m[i]...)
	}
	return c
}

// Rotate returns m turned 90° clockwise.
func (m Matrix) Rotate() Matrix {
	n := len(m)
	r := newMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r[j][n-1-i] = m[i][j]
		}
	}
	return r
}

// RotateCounter returns m turned 90° counter-clockwise.
func (m Matrix) RotateCounter() Matrix {
	n := len(m)
	r := newMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r[n-1-j][i] = m[i][j]
		}
	}
	return r
}

func (m Matrix) Equal(o Matrix) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(o[i]) {
			return false
		}
		for j := range m[i] {
			if m[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// Cells returns the occupied offsets relative to the pivot, row by row.
func (m Matrix) Cells() []Cell {
	var cells []Cell
	for i, row := range m {
		for j, filled := range row {
			if filled {
				cells = append(cells, Cell{X: j, Y: i})
			}
		}
	}
	return cells
}

func (m Matrix) String() string {
	buf := make([]byte, 0, len(m)*(len(m)+1))
	for _, row := range m {
		for _, filled := range row {
			if filled {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// Piece is the falling shape: its pattern and pivot on the board.
type Piece struct {
	Kind   Kind
	Matrix Matrix
	Pos    Cell
	// Serial numbers pieces in spawn order within a session.
	Serial int
}

// Cells returns the board coordinates the piece covers.
func (p Piece) Cells() []Cell {
	offsets := p.Matrix.Cells()
	for i := range offsets {
		offsets[i] = p.Pos.Add(offsets[i])
	}
	return offsets
}
