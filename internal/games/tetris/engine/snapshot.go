package engine

// PieceView is a read-only copy of a piece's shape and position.
type PieceView struct {
	Type  PieceType
	Shape [][]int
	X, Y  int
}

// Snapshot is an immutable copy of the session state handed to renderers.
type Snapshot struct {
	SessionID string
	Width     int
	Height    int
	Board     [][]int // locked cells, top row first

	Active PieceView
	Next   PieceView // shape in spawn orientation, position unused

	Score          int
	Lines          int
	Level          int
	DropIntervalMs float64
	LastCleared    int // rows removed by the most recent lock

	Phase    Phase
	GameOver bool
}

// Snapshot captures the current state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:      e.id,
		Width:          e.board.Width(),
		Height:         e.board.Height(),
		Board:          e.board.Rows(),
		Score:          e.scoring.Score(),
		Lines:          e.scoring.Lines(),
		Level:          e.scoring.Level(),
		DropIntervalMs: e.scoring.DropInterval(),
		LastCleared:    e.lastCleared,
		Phase:          e.phase,
		GameOver:       e.phase == PhaseGameOver,
	}
	if e.piece != nil {
		p := e.piece.clone()
		snap.Active = PieceView{Type: p.Type, Shape: p.Shape, X: p.X, Y: p.Y}
	}
	if def, err := Create(e.next); err == nil {
		snap.Next = PieceView{Type: e.next, Shape: def.Shape}
	}
	return snap
}

// Frame returns the board with the active piece drawn on top.
// Piece cells outside the grid are omitted.
func (s Snapshot) Frame() [][]int {
	frame := copyMatrix(s.Board)
	for y, row := range s.Active.Shape {
		for x, v := range row {
			if v == 0 {
				continue
			}
			bx, by := s.Active.X+x, s.Active.Y+y
			if by < 0 || by >= len(frame) || bx < 0 || bx >= len(frame[by]) {
				continue
			}
			frame[by][bx] = v
		}
	}
	return frame
}
