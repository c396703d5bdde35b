// Package record keeps what happened in a battle: the inputs, how they were
// judged, and a history of past battles per chart.
package record

import (
	"math"

	"git.lost.host/meutraa/eotb/internal/conductor"
	"git.lost.host/meutraa/eotb/internal/game"
)

// Summary is the scoreboard of one battle.
type Summary struct {
	Counts   [game.TierCount]int
	Timeouts int
	Placed   int
	Rejected int
	Loops    int
	MaxCombo int
	Mean     float64 // seconds, positive when late
	Stdev    float64 // seconds
}

// Hits is the number of notes judged better than Miss.
func (s Summary) Hits() int {
	return s.Counts[game.Perfect] + s.Counts[game.Good] + s.Counts[game.Okay]
}

// Recorder listens to a conductor and keeps every input it is shown.
type Recorder struct {
	inputs  []game.Input
	offsets []float64
	summary Summary
	combo   int
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) OnHit(l game.Lane, tier game.Tier) {
	r.summary.Counts[tier]++
	r.combo++
	if r.combo > r.summary.MaxCombo {
		r.summary.MaxCombo = r.combo
	}
}

func (r *Recorder) OnMiss(l game.Lane, timeout bool) {
	r.summary.Counts[game.Miss]++
	if timeout {
		r.summary.Timeouts++
	}
	r.combo = 0
}

func (r *Recorder) OnNotePlaced(l game.Lane) {
	r.summary.Placed++
}

func (r *Recorder) OnLoopBoundary() {
	r.summary.Loops++
}

// Observe keeps an input and what the conductor made of it.
func (r *Recorder) Observe(in game.Input, out conductor.Outcome) {
	r.inputs = append(r.inputs, in)
	switch out.Kind {
	case conductor.Hit:
		r.offsets = append(r.offsets, out.Offset)
	case conductor.Rejected:
		r.summary.Rejected++
	}
}

func (r *Recorder) Inputs() []game.Input {
	return r.inputs
}

func (r *Recorder) Combo() int {
	return r.combo
}

func (r *Recorder) Summary() Summary {
	s := r.summary
	s.Mean, s.Stdev = meanStdev(r.offsets)
	return s
}

func meanStdev(xs []float64) (mean, stdev float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	if len(xs) < 2 {
		return mean, 0
	}
	for _, x := range xs {
		d := x - mean
		stdev += d * d
	}
	stdev /= float64(len(xs) - 1)
	return mean, math.Sqrt(stdev)
}
