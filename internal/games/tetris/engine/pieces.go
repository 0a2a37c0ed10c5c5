package engine

import (
	"fmt"
	"math/rand"
)

// PieceType identifies one of the seven tetrominoes.
// The numeric value doubles as the color id written into the board.
type PieceType int

const (
	PieceNone PieceType = iota
	PieceT
	PieceO
	PieceL
	PieceJ
	PieceI
	PieceS
	PieceZ
)

// NumColors is the size of the cell palette (empty excluded).
const NumColors = 7

// pieceOrder is the draw order used by the randomizers.
var pieceOrder = []PieceType{PieceT, PieceJ, PieceL, PieceO, PieceS, PieceZ, PieceI}

// String returns the single-letter name of the piece.
func (t PieceType) String() string {
	switch t {
	case PieceT:
		return "T"
	case PieceO:
		return "O"
	case PieceL:
		return "L"
	case PieceJ:
		return "J"
	case PieceI:
		return "I"
	case PieceS:
		return "S"
	case PieceZ:
		return "Z"
	default:
		return "?"
	}
}

// Valid reports whether t is one of the seven catalog pieces.
func (t PieceType) Valid() bool {
	return t >= PieceT && t <= PieceZ
}

// AllPieces returns the seven piece types in draw order.
func AllPieces() []PieceType {
	out := make([]PieceType, len(pieceOrder))
	copy(out, pieceOrder)
	return out
}

// PieceDef is the canonical definition of a piece.
// Every shape lives in a square box so rotation is a plain transpose + flip.
type PieceDef struct {
	Type  PieceType
	Shape [][]int
	Color int
}

// shapes holds the spawn orientation of every piece, cells carry the color id.
var shapes = map[PieceType][][]int{
	PieceT: {
		{0, 0, 0},
		{1, 1, 1},
		{0, 1, 0},
	},
	PieceO: {
		{2, 2},
		{2, 2},
	},
	PieceL: {
		{0, 3, 0},
		{0, 3, 0},
		{0, 3, 3},
	},
	PieceJ: {
		{0, 4, 0},
		{0, 4, 0},
		{4, 4, 0},
	},
	PieceI: {
		{0, 5, 0, 0},
		{0, 5, 0, 0},
		{0, 5, 0, 0},
		{0, 5, 0, 0},
	},
	PieceS: {
		{0, 6, 6},
		{6, 6, 0},
		{0, 0, 0},
	},
	PieceZ: {
		{7, 7, 0},
		{0, 7, 7},
		{0, 0, 0},
	},
}

// Create returns a fresh copy of the definition for t.
func Create(t PieceType) (PieceDef, error) {
	if !t.Valid() {
		return PieceDef{}, fmt.Errorf("%w: %d", ErrUnknownPiece, int(t))
	}
	return PieceDef{
		Type:  t,
		Shape: copyMatrix(shapes[t]),
		Color: int(t),
	}, nil
}

func copyMatrix(m [][]int) [][]int {
	out := make([][]int, len(m))
	for y := range m {
		out[y] = make([]int, len(m[y]))
		copy(out[y], m[y])
	}
	return out
}

// RandomizerKind selects the piece selection policy.
type RandomizerKind string

const (
	// RandomUniform draws each piece independently (no repeat avoidance).
	RandomUniform RandomizerKind = "uniform"
	// RandomBag deals all seven pieces in shuffled order before refilling.
	RandomBag RandomizerKind = "bag"
)

// Randomizer yields the sequence of upcoming pieces.
type Randomizer interface {
	Next() PieceType
}

// NewRandomizer builds the randomizer for kind. An empty kind means uniform.
func NewRandomizer(kind RandomizerKind, rng *rand.Rand) (Randomizer, error) {
	switch kind {
	case RandomUniform, "":
		return &uniformRandomizer{rng: rng}, nil
	case RandomBag:
		return &bagRandomizer{rng: rng}, nil
	default:
		return nil, fmt.Errorf("%w: unknown randomizer %q", ErrInvalidConfig, kind)
	}
}

type uniformRandomizer struct {
	rng *rand.Rand
}

func (u *uniformRandomizer) Next() PieceType {
	return pieceOrder[u.rng.Intn(len(pieceOrder))]
}

type bagRandomizer struct {
	rng *rand.Rand
	bag []PieceType
}

func (b *bagRandomizer) Next() PieceType {
	if len(b.bag) == 0 {
		b.refill()
	}
	t := b.bag[0]
	b.bag = b.bag[1:]
	return t
}

// refill deals a new Fisher-Yates shuffled bag.
func (b *bagRandomizer) refill() {
	b.bag = AllPieces()
	for i := len(b.bag) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
	}
}
