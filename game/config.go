package game

import (
	"errors"
	"fmt"
)

// Limits on the positional CLI arguments. Both bounds are exclusive.
const (
	MinSnails   = 0
	MaxSnails   = 1000
	MinDuration = 0
	MaxDuration = 1000
)

// ErrBadParams is returned when run parameters are out of range.
var ErrBadParams = errors.New("invalid run parameters")

// Params are the per-run inputs that do not come from the config file.
type Params struct {
	Snails    int
	Duration  int // Number of ticks
	ReproProb int // Breeding draw denominator
	PredProb  int // Predation draw denominator
	Seed      int64

	// TrackPositions enables the per-snail position log.
	TrackPositions bool
}

// Validate checks the parameters a run cannot start without.
func (p Params) Validate() error {
	if p.Snails < 0 {
		return fmt.Errorf("%w: snail count %d is negative", ErrBadParams, p.Snails)
	}
	if p.Duration < 1 {
		return fmt.Errorf("%w: duration %d must be at least 1", ErrBadParams, p.Duration)
	}
	if p.ReproProb < 1 || p.PredProb < 1 {
		return fmt.Errorf("%w: probabilities repro=%d pred=%d must be at least 1", ErrBadParams, p.ReproProb, p.PredProb)
	}
	return nil
}

// CheckSnails reports whether n is an accepted snail count for the CLI.
func CheckSnails(n int) bool {
	return n > MinSnails && n < MaxSnails
}

// CheckDuration reports whether n is an accepted tick count for the CLI.
func CheckDuration(n int) bool {
	return n > MinDuration && n < MaxDuration
}
