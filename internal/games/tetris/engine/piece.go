package engine

// ActivePiece is the falling piece: a rotatable copy of a catalog shape
// plus the board position of its bounding box's top-left corner.
type ActivePiece struct {
	Type  PieceType
	Shape [][]int
	X, Y  int
}

// NewActivePiece instantiates t at the origin.
func NewActivePiece(t PieceType) (*ActivePiece, error) {
	def, err := Create(t)
	if err != nil {
		return nil, err
	}
	return &ActivePiece{Type: t, Shape: def.Shape}, nil
}

// Width returns the side of the piece's bounding box.
func (p *ActivePiece) Width() int {
	if len(p.Shape) == 0 {
		return 0
	}
	return len(p.Shape[0])
}

// Rotate turns the shape 90 degrees in place: clockwise for dir > 0,
// counter-clockwise otherwise.
func (p *ActivePiece) Rotate(dir int) {
	m := p.Shape
	for y := range m {
		for x := 0; x < y; x++ {
			m[x][y], m[y][x] = m[y][x], m[x][y]
		}
	}
	if dir > 0 {
		for _, row := range m {
			reverse(row)
		}
		return
	}
	for i, j := 0, len(m)-1; i < j; i, j = i+1, j-1 {
		m[i], m[j] = m[j], m[i]
	}
}

func reverse(row []int) {
	for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
		row[i], row[j] = row[j], row[i]
	}
}

// clone returns a deep copy.
func (p *ActivePiece) clone() *ActivePiece {
	return &ActivePiece{Type: p.Type, Shape: copyMatrix(p.Shape), X: p.X, Y: p.Y}
}

// each calls fn with the board coordinates and color of every occupied cell.
func (p *ActivePiece) each(fn func(x, y, color int) bool) {
	for y, row := range p.Shape {
		for x, v := range row {
			if v == 0 {
				continue
			}
			if !fn(p.X+x, p.Y+y, v) {
				return
			}
		}
	}
}
