package engine

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Phase names a state of the spawn/fall/lock cycle.
type Phase string

const (
	PhaseSpawning Phase = "spawning"
	PhaseFalling  Phase = "falling"
	PhaseLocking  Phase = "locking"
	PhaseSweeping Phase = "sweeping"
	PhaseGameOver Phase = "game_over"
)

// Config holds the parameters of a session.
type Config struct {
	Width  int
	Height int

	InitialDropIntervalMs float64
	MinDropIntervalMs     float64
	LinesPerLevel         int
	SpeedFactor           float64 // applied to the drop interval on each level up
	LineBase              int     // points for the first row of a sweep

	Randomizer RandomizerKind
}

// DefaultConfig returns the 12x20 board with the fast 100ms gravity.
func DefaultConfig() Config {
	return Config{
		Width:                 12,
		Height:                20,
		InitialDropIntervalMs: 100,
		MinDropIntervalMs:     50,
		LinesPerLevel:         10,
		SpeedFactor:           0.9,
		LineBase:              10,
		Randomizer:            RandomUniform,
	}
}

// Validate checks every field. The returned error wraps ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Width < 4 || c.Height < 4:
		return fmt.Errorf("%w: board %dx%d too small", ErrInvalidConfig, c.Width, c.Height)
	case !finitePositive(c.InitialDropIntervalMs):
		return fmt.Errorf("%w: initial drop interval %v", ErrInvalidConfig, c.InitialDropIntervalMs)
	case !finitePositive(c.MinDropIntervalMs) || c.MinDropIntervalMs > c.InitialDropIntervalMs:
		return fmt.Errorf("%w: min drop interval %v", ErrInvalidConfig, c.MinDropIntervalMs)
	case c.LinesPerLevel <= 0:
		return fmt.Errorf("%w: lines per level %d", ErrInvalidConfig, c.LinesPerLevel)
	case !finitePositive(c.SpeedFactor) || c.SpeedFactor > 1:
		return fmt.Errorf("%w: speed factor %v", ErrInvalidConfig, c.SpeedFactor)
	case c.LineBase < 0:
		return fmt.Errorf("%w: line base %d", ErrInvalidConfig, c.LineBase)
	}
	switch c.Randomizer {
	case RandomUniform, RandomBag, "":
	default:
		return fmt.Errorf("%w: unknown randomizer %q", ErrInvalidConfig, c.Randomizer)
	}
	return nil
}

func finitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// Engine owns one game session. It is not safe for concurrent use;
// hosts must serialize calls.
type Engine struct {
	id      string
	cfg     Config
	board   *Board
	scoring *Scoring
	rand    Randomizer

	piece       *ActivePiece
	next        PieceType
	phase       Phase
	dropCounter float64
	lastCleared int
}

// New validates cfg and starts a session. A nil rng is seeded from the clock.
func New(cfg Config, rng *rand.Rand) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	r, err := NewRandomizer(cfg.Randomizer, rng)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		board:   NewBoard(cfg.Width, cfg.Height),
		scoring: NewScoring(cfg),
		rand:    r,
	}
	e.start()
	return e, nil
}

// start clears all session state, draws the first two pieces and spawns.
func (e *Engine) start() {
	e.id = uuid.NewString()
	e.board.Reset()
	e.scoring.Reset()
	e.dropCounter = 0
	e.lastCleared = 0
	e.next = e.rand.Next()
	e.spawn()
}

// spawn promotes the next piece to active at the top center of the board.
func (e *Engine) spawn() {
	e.phase = PhaseSpawning
	p, err := NewActivePiece(e.next)
	if err != nil {
		panic(fmt.Sprintf("engine: randomizer produced %v", err))
	}
	e.next = e.rand.Next()
	p.Y = 0
	p.X = e.board.Width()/2 - p.Width()/2
	e.piece = p

	if e.board.Collide(p) {
		e.phase = PhaseGameOver
		return
	}
	e.phase = PhaseFalling
}

// ID returns the session identifier. It changes on every Reset.
func (e *Engine) ID() string {
	return e.id
}

// GameOver reports whether the session has ended.
func (e *Engine) GameOver() bool {
	return e.phase == PhaseGameOver
}

// Reset starts a new session on the same engine.
func (e *Engine) Reset() Snapshot {
	e.start()
	return e.Snapshot()
}

// Tick advances the gravity clock by deltaMs. Once the accumulated time
// exceeds the drop interval one gravity step runs and the excess is dropped.
// After game over Tick does nothing.
func (e *Engine) Tick(deltaMs float64) (Snapshot, error) {
	if math.IsNaN(deltaMs) || math.IsInf(deltaMs, 0) || deltaMs < 0 {
		return e.Snapshot(), fmt.Errorf("%w: %v", ErrInvalidDelta, deltaMs)
	}
	if e.GameOver() {
		return e.Snapshot(), nil
	}

	e.dropCounter += deltaMs
	if e.dropCounter > e.scoring.DropInterval() {
		e.drop()
	}
	return e.Snapshot(), nil
}

// Apply executes a player command. Malformed commands are rejected without
// touching state; after game over every command is a no-op.
func (e *Engine) Apply(cmd Command) (Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return e.Snapshot(), err
	}
	if e.GameOver() {
		return e.Snapshot(), nil
	}

	switch cmd.Kind {
	case CmdMove:
		e.move(cmd.Dir)
	case CmdRotate:
		e.rotate(cmd.Dir)
	case CmdDrop:
		e.drop()
	case CmdHardDrop:
		e.hardDrop()
	}
	return e.Snapshot(), nil
}

func (e *Engine) move(dir int) {
	e.piece.X += dir
	if e.board.Collide(e.piece) {
		e.piece.X -= dir
	}
}

// rotate turns the piece and, if it collides, tries horizontal kicks.
// Offsets +1, -2, +3, ... are applied cumulatively so the piece visits
// x+1, x-1, x+2, x-2, ... until the offset grows past the shape width.
func (e *Engine) rotate(dir int) {
	origX := e.piece.X
	e.piece.Rotate(dir)

	offset := 1
	for e.board.Collide(e.piece) {
		if abs(offset) > e.piece.Width() {
			e.piece.Rotate(-dir)
			e.piece.X = origX
			return
		}
		e.piece.X += offset
		if offset > 0 {
			offset = -(offset + 1)
		} else {
			offset = -offset + 1
		}
	}
}

// drop moves the piece one row down, settling it when blocked.
// Reports whether the piece locked.
func (e *Engine) drop() bool {
	e.dropCounter = 0
	e.piece.Y++
	if !e.board.Collide(e.piece) {
		return false
	}
	e.piece.Y--
	e.settle()
	return true
}

// hardDrop moves the piece as far down as it goes and settles it once.
func (e *Engine) hardDrop() {
	e.dropCounter = 0
	for {
		e.piece.Y++
		if e.board.Collide(e.piece) {
			e.piece.Y--
			break
		}
	}
	e.settle()
}

// settle runs lock, sweep, scoring and spawn for the current piece.
func (e *Engine) settle() {
	e.phase = PhaseLocking
	e.board.Lock(e.piece)

	e.phase = PhaseSweeping
	e.lastCleared = e.board.Sweep()
	e.scoring.OnLinesCleared(e.lastCleared)

	e.spawn()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
