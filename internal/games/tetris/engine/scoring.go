package engine

// Scoring tracks score, cleared lines, level and the gravity interval.
type Scoring struct {
	lineBase      int
	linesPerLevel int
	speedFactor   float64
	initialMs     float64
	minMs         float64

	score        int
	lines        int
	level        int
	dropInterval float64
}

// NewScoring creates scoring state from a validated config.
func NewScoring(cfg Config) *Scoring {
	s := &Scoring{
		lineBase:      cfg.LineBase,
		linesPerLevel: cfg.LinesPerLevel,
		speedFactor:   cfg.SpeedFactor,
		initialMs:     cfg.InitialDropIntervalMs,
		minMs:         cfg.MinDropIntervalMs,
	}
	s.Reset()
	return s
}

// LineClearBonus returns the award for k rows cleared in one sweep.
// The first row is worth base, and each further row doubles the previous
// row's value: base * (2^k - 1).
func LineClearBonus(k, base int) int {
	bonus := 0
	mult := 1
	for range k {
		bonus += mult * base
		mult *= 2
	}
	return bonus
}

// OnLinesCleared applies a sweep result and returns the points awarded.
func (s *Scoring) OnLinesCleared(n int) int {
	if n <= 0 {
		return 0
	}
	bonus := LineClearBonus(n, s.lineBase)
	s.score += bonus

	before := s.lines / s.linesPerLevel
	s.lines += n
	for range s.lines/s.linesPerLevel - before {
		s.level++
		s.dropInterval = max(s.dropInterval*s.speedFactor, s.minMs)
	}
	return bonus
}

// Reset returns to level 1 with no score.
func (s *Scoring) Reset() {
	s.score = 0
	s.lines = 0
	s.level = 1
	s.dropInterval = s.initialMs
}

// Score returns the accumulated points.
func (s *Scoring) Score() int { return s.score }

// Lines returns the total rows cleared this session.
func (s *Scoring) Lines() int { return s.lines }

// Level returns the current level, starting at 1.
func (s *Scoring) Level() int { return s.level }

// DropInterval returns milliseconds between gravity steps.
func (s *Scoring) DropInterval() float64 { return s.dropInterval }
