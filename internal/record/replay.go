package record

import (
	"math"
	"sort"

	"git.lost.host/meutraa/eotb/internal/battle"
	"git.lost.host/meutraa/eotb/internal/conductor"
	"git.lost.host/meutraa/eotb/internal/game"
)

// ReplayResolution is how many sweeps a replay runs per beat between inputs.
const ReplayResolution = 16

type replayer struct {
	b     *battle.Battle
	rec   *Recorder
	loop  float64
	loops int
}

// advance moves the battle to the beat as a live step would.
func (r *replayer) advance(beat float64) {
	for n := int(math.Floor(beat / r.loop)); r.loops < n; r.loops++ {
		r.b.Conductor.LoopBoundary()
	}
	r.b.Conductor.Tick(beat)
}

func (r *replayer) press(in game.Input) {
	r.advance(in.Beat)
	var out conductor.Outcome
	if in.Released {
		out = r.b.Conductor.HandleRelease(in.Lane, in.Beat)
	} else {
		out = r.b.Conductor.HandleInput(in.Lane, in.Beat)
	}
	r.rec.Observe(in, out)
}

func (r *replayer) running() bool {
	return r.b.Director.Result() == battle.Running
}

// Replay plays recorded inputs through a fresh battle up to the end beat.
// Effects other than the built in damage are not part of a recording.
func Replay(c *game.Chart, rules battle.Rules, inputs []game.Input, end float64) (Summary, battle.Result, error) {
	rec := NewRecorder()
	b, err := battle.Setup(c, rules, nil, rec)
	if nil != err {
		return Summary{}, battle.Running, err
	}

	sorted := make([]game.Input, len(inputs))
	copy(sorted, inputs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Beat < sorted[j].Beat })

	r := &replayer{b: b, rec: rec, loop: c.Song.LoopLength}
	i := 0
	for n := 0; r.running(); n++ {
		beat := float64(n) / ReplayResolution
		for ; i < len(sorted) && sorted[i].Beat <= beat && r.running(); i++ {
			r.press(sorted[i])
		}
		if beat > end || !r.running() {
			break
		}
		r.advance(beat)
	}
	b.Director.End()
	return rec.Summary(), b.Director.Result(), nil
}

// Score replays a stored battle.
func Score(c *game.Chart, h History) (Summary, battle.Result, error) {
	return Replay(c, h.Rules, h.Inputs, h.End)
}
