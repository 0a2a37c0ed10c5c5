package engine

import "errors"

// Validation errors returned at the engine boundary.
// Callers should test them with errors.Is since they are usually wrapped.
var (
	ErrUnknownPiece   = errors.New("engine: unknown piece type")
	ErrInvalidCommand = errors.New("engine: invalid command")
	ErrInvalidDelta   = errors.New("engine: invalid tick delta")
	ErrInvalidConfig  = errors.New("engine: invalid config")
)
