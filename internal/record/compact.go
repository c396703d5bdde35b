package record

import (
	"git.lost.host/meutraa/eotb/internal/game"
)

// InputsCompact is every press in one lane, in the order they happened.
type InputsCompact struct {
	Lane  game.Lane `json:"lane"`
	Beats []float64 `json:"beats"`
}

// Releases are not stored, they never change a battle.
func compactInputs(inputs []game.Input) []InputsCompact {
	ins := make([]InputsCompact, game.LaneCount)
	for i, l := range game.Lanes {
		ins[i] = InputsCompact{Lane: l, Beats: []float64{}}
	}
	for _, in := range inputs {
		if in.Released || !in.Lane.Valid() {
			continue
		}
		ins[in.Lane].Beats = append(ins[in.Lane].Beats, in.Beat)
	}
	return ins
}

func uncompactInputs(inputs []InputsCompact) []game.Input {
	ins := []game.Input{}
	for _, c := range inputs {
		for _, b := range c.Beats {
			ins = append(ins, game.Input{Lane: c.Lane, Beat: b})
		}
	}
	return ins
}
