package engine

import "fmt"

// CommandKind enumerates player commands.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdMove
	CmdRotate
	CmdDrop
	CmdHardDrop
)

// String returns a human-readable name for the command kind.
func (k CommandKind) String() string {
	switch k {
	case CmdMove:
		return "move"
	case CmdRotate:
		return "rotate"
	case CmdDrop:
		return "drop"
	case CmdHardDrop:
		return "hard_drop"
	default:
		return "unknown"
	}
}

// Command is a single player intent. Dir is -1 or +1 for Move and Rotate
// and is ignored by the drop commands.
type Command struct {
	Kind CommandKind
	Dir  int
}

// MoveLeft shifts the piece one column left.
func MoveLeft() Command { return Command{Kind: CmdMove, Dir: -1} }

// MoveRight shifts the piece one column right.
func MoveRight() Command { return Command{Kind: CmdMove, Dir: 1} }

// RotateCW turns the piece clockwise.
func RotateCW() Command { return Command{Kind: CmdRotate, Dir: 1} }

// RotateCCW turns the piece counterclockwise.
func RotateCCW() Command { return Command{Kind: CmdRotate, Dir: -1} }

// Drop moves the piece down one row (soft drop).
func Drop() Command { return Command{Kind: CmdDrop} }

// HardDrop drops the piece to the floor and locks it.
func HardDrop() Command { return Command{Kind: CmdHardDrop} }

// Validate rejects unknown kinds and out-of-range directions.
func (c Command) Validate() error {
	switch c.Kind {
	case CmdMove, CmdRotate:
		if c.Dir != 1 && c.Dir != -1 {
			return fmt.Errorf("%w: %s direction %d", ErrInvalidCommand, c.Kind, c.Dir)
		}
		return nil
	case CmdDrop, CmdHardDrop:
		return nil
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidCommand, int(c.Kind))
	}
}
