// Package engine runs the battle simulation one step at a time.
package engine

import (
	"context"
	"time"

	"git.lost.host/meutraa/eotb/internal/clock"
	"git.lost.host/meutraa/eotb/internal/conductor"
	"git.lost.host/meutraa/eotb/internal/game"
)

// Frame is what happened in one step.
type Frame struct {
	Sample   clock.Sample
	Inputs   []game.Input
	Outcomes []conductor.Outcome
}

// Engine serializes everything that touches the conductor. Inputs may be
// pushed from any goroutine, the rest belongs to the goroutine calling Step.
type Engine struct {
	Keeper    *clock.TimeKeeper
	Source    clock.Source
	Conductor *conductor.Conductor

	// OnInput sees every input with what it resolved to.
	OnInput func(in game.Input, out conductor.Outcome)

	inputs chan game.Input
}

func New(c *conductor.Conductor, src clock.Source, buffer int) *Engine {
	return &Engine{
		Keeper:    clock.NewTimeKeeper(c.Song()),
		Source:    src,
		Conductor: c,
		inputs:    make(chan game.Input, buffer),
	}
}

// Push queues an input for the next step. It returns false, dropping the
// input, when the queue is full.
func (e *Engine) Push(in game.Input) bool {
	select {
	case e.inputs <- in:
		return true
	default:
		return false
	}
}

// Step samples the clock, sweeps for timed out notes, then judges the inputs
// that arrived since the last step, in arrival order, on the sampled beat.
func (e *Engine) Step() Frame {
	s := e.Keeper.Observe(e.Source.Elapsed())
	for i := 0; i < s.Crossed; i++ {
		e.Conductor.LoopBoundary()
	}
	e.Conductor.Tick(s.Beat)

	f := Frame{Sample: s}
	for {
		select {
		case in := <-e.inputs:
			in.Beat = s.Beat
			var out conductor.Outcome
			if in.Released {
				out = e.Conductor.HandleRelease(in.Lane, s.Beat)
			} else {
				out = e.Conductor.HandleInput(in.Lane, s.Beat)
			}
			if e.OnInput != nil {
				e.OnInput(in, out)
			}
			f.Inputs = append(f.Inputs, in)
			f.Outcomes = append(f.Outcomes, out)
		default:
			return f
		}
	}
}

// Run steps every period until the context is done or frame returns false.
func (e *Engine) Run(ctx context.Context, period time.Duration, frame func(f Frame) bool) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		if !frame(e.Step()) {
			return nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
