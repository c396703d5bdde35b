package game

import (
	"github.com/pkg/errors"
)

var (
	ErrUnknownOwner = errors.New("unknown owner")
	ErrInvalidSong  = errors.New("invalid song")
	ErrOutOfLoop    = errors.New("beat outside of loop")
)

// Song is the immutable tempo configuration for one battle.
type Song struct {
	BPM        float64 `yaml:"bpm"`
	LoopLength float64 `yaml:"loop_length"` // In beats
	Duration   float64 `yaml:"duration"`    // In seconds, 0 when unknown
}

func (s Song) SecondsPerBeat() float64 {
	return 60 / s.BPM
}

func (s Song) Validate() error {
	if s.BPM <= 0 {
		return errors.Wrapf(ErrInvalidSong, "bpm %v", s.BPM)
	}
	if s.LoopLength <= 0 {
		return errors.Wrapf(ErrInvalidSong, "loop length %v", s.LoopLength)
	}
	if s.Duration < 0 {
		return errors.Wrapf(ErrInvalidSong, "duration %v", s.Duration)
	}
	return nil
}

// ChartNote is a note as written in a chart, before it is scheduled.
type ChartNote struct {
	Lane  Lane    `yaml:"lane"`
	Beat  float64 `yaml:"beat"`
	Owner Owner   `yaml:"owner,omitempty"`
	Icon  string  `yaml:"icon,omitempty"`
}

type Chart struct {
	Name  string      `yaml:"name"`
	Song  Song        `yaml:",inline"`
	Notes []ChartNote `yaml:"notes"`
}

func (c *Chart) Validate() error {
	if err := c.Song.Validate(); nil != err {
		return err
	}
	for i, n := range c.Notes {
		if !n.Lane.Valid() {
			return errors.Wrapf(ErrUnknownLane, "note %d", i)
		}
		if n.Beat < 0 || n.Beat >= c.Song.LoopLength {
			return errors.Wrapf(ErrOutOfLoop, "note %d at beat %v", i, n.Beat)
		}
	}
	return nil
}

// NoteCount returns the number of notes per lane.
func (c *Chart) NoteCount() [LaneCount]int {
	var counts [LaneCount]int
	for _, n := range c.Notes {
		if n.Lane.Valid() {
			counts[n.Lane]++
		}
	}
	return counts
}
