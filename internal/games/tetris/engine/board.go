// Package engine implements the falling-block simulation: the board of locked
// cells, the piece catalog, rotation with wall kicks, line sweeps and scoring.
// It is single-threaded and has no knowledge of terminals or timing sources;
// hosts drive it through Engine.Tick and Engine.Apply and render Snapshots.
package engine

import "fmt"

// Board is the fixed-size grid of locked cells.
// A cell is 0 when empty, otherwise the color id of the piece that filled it.
type Board struct {
	width  int
	height int
	cells  [][]int
}

// NewBoard creates an empty width x height board.
func NewBoard(width, height int) *Board {
	b := &Board{width: width, height: height}
	b.cells = make([][]int, height)
	for y := range b.cells {
		b.cells[y] = make([]int, width)
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// Cell returns the value at (x, y), or 0 outside the grid.
func (b *Board) Cell(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0
	}
	return b.cells[y][x]
}

// Collide reports whether any occupied cell of p lies outside the columns,
// below the floor, or on a locked cell. Cells above the top row never collide.
func (b *Board) Collide(p *ActivePiece) bool {
	hit := false
	p.each(func(x, y, _ int) bool {
		if x < 0 || x >= b.width || y >= b.height {
			hit = true
		} else if y >= 0 && b.cells[y][x] != 0 {
			hit = true
		}
		return !hit
	})
	return hit
}

// Lock merges p into the board. The caller guarantees p does not collide.
// Cells still above the top row are discarded.
func (b *Board) Lock(p *ActivePiece) {
	p.each(func(x, y, color int) bool {
		if y >= 0 {
			b.cells[y][x] = color
		}
		return true
	})
}

// Sweep removes every full row, shifting the rows above it down and
// inserting empty rows at the top. Returns the number of rows removed.
func (b *Board) Sweep() int {
	cleared := 0
	for y := b.height - 1; y >= 0; {
		if !b.rowFull(y) {
			y--
			continue
		}
		row := b.cells[y]
		copy(b.cells[1:y+1], b.cells[:y])
		clear(row)
		b.cells[0] = row
		cleared++
		// y now holds the row that was above; check it again
	}
	return cleared
}

func (b *Board) rowFull(y int) bool {
	for _, v := range b.cells[y] {
		if v == 0 {
			return false
		}
	}
	return true
}

// Reset empties every cell.
func (b *Board) Reset() {
	for _, row := range b.cells {
		clear(row)
	}
}

// Rows returns a deep copy of the grid, top row first.
func (b *Board) Rows() [][]int {
	return copyMatrix(b.cells)
}

// SetRow overwrites row y. Used to load fixtures and puzzles.
func (b *Board) SetRow(y int, row []int) error {
	if y < 0 || y >= b.height {
		return fmt.Errorf("%w: row %d out of range", ErrInvalidConfig, y)
	}
	if len(row) != b.width {
		return fmt.Errorf("%w: row has %d cells, board is %d wide", ErrInvalidConfig, len(row), b.width)
	}
	for x, v := range row {
		if v < 0 || v > NumColors {
			return fmt.Errorf("%w: cell (%d,%d) value %d outside palette", ErrInvalidConfig, x, y, v)
		}
	}
	copy(b.cells[y], row)
	return nil
}
