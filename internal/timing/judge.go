package timing

import (
	"math"
	"time"

	"git.lost.host/meutraa/eotb/internal/game"
	"github.com/pkg/errors"
)

// DefaultTolerance is the width of the Perfect window in seconds.
const DefaultTolerance = 0.1

// DefaultGuard is how many beats late an unplayed note is retired.
const DefaultGuard = 1.0

var (
	// Multipliers of the tolerance bounding Perfect, Good and Okay.
	DefaultMultipliers = []float64{1, 2, 3}
	// The wider windows of the earlier battle prototype.
	LegacyMultipliers = []float64{2, 4, 6}

	ErrTolerance   = errors.New("tolerance must be positive")
	ErrMultipliers = errors.New("multipliers must be positive and increasing")
)

// Window is the exclusive upper bound of a tier.
type Window struct {
	Tier game.Tier
	Max  time.Duration
}

// Duration rounds seconds to the nanosecond, so 3*0.1s is exactly 300ms.
func Duration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// Judge classifies timing offsets. It is immutable once built.
type Judge struct {
	tolerance float64
	windows   []Window
}

func NewJudge(tolerance float64, multipliers ...float64) (*Judge, error) {
	if !(tolerance > 0) || math.IsInf(tolerance, 0) {
		return nil, errors.Wrapf(ErrTolerance, "got %v", tolerance)
	}
	if len(multipliers) == 0 {
		multipliers = DefaultMultipliers
	}
	if len(multipliers) != int(game.Miss) {
		return nil, errors.Wrapf(ErrMultipliers, "need %d, got %d", int(game.Miss), len(multipliers))
	}
	windows := make([]Window, len(multipliers))
	prev := 0.0
	for i, m := range multipliers {
		if m <= prev {
			return nil, errors.Wrapf(ErrMultipliers, "%v", multipliers)
		}
		prev = m
		windows[i] = Window{Tier: game.Tier(i), Max: Duration(tolerance * m)}
	}
	return &Judge{tolerance: tolerance, windows: windows}, nil
}

// MustJudge is NewJudge for values known at compile time.
func MustJudge(tolerance float64, multipliers ...float64) *Judge {
	j, err := NewJudge(tolerance, multipliers...)
	if nil != err {
		panic(err)
	}
	return j
}

func (j *Judge) Tolerance() float64 {
	return j.tolerance
}

// Windows returns the hit windows, tightest first. Miss has no window.
func (j *Judge) Windows() []Window {
	w := make([]Window, len(j.windows))
	copy(w, j.windows)
	return w
}

// Classify returns the first tier whose window holds the offset in seconds.
// Bounds are inclusive below and exclusive above.
func (j *Judge) Classify(offset float64) game.Tier {
	d := Duration(math.Abs(offset))
	for _, w := range j.windows {
		if d < w.Max {
			return w.Tier
		}
	}
	return game.Miss
}

// TimedOut reports whether a note this many beats late has to be retired.
// A note exactly on the guard is still live.
func TimedOut(late, guard float64) bool {
	return late > guard
}

// InWindow reports whether an input this many beats away may judge a note.
func InWindow(offset, guard float64) bool {
	return math.Abs(offset) <= guard
}
