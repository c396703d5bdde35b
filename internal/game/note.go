package game

import (
	"math"
)

// Owner tags who authored a note.
type Owner uint8

const (
	OpponentOwned Owner = iota // chart authored
	PlayerOwned
)

func (o Owner) String() string {
	if o == PlayerOwned {
		return "player"
	}
	return "opponent"
}

// Opponent resolves the side on the other end of a note's owner.
func Opponent(o Owner) Owner {
	if o == PlayerOwned {
		return OpponentOwned
	}
	return PlayerOwned
}

func (o Owner) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Owner) UnmarshalText(text []byte) error {
	switch string(text) {
	case "player":
		*o = PlayerOwned
	case "opponent", "enemy", "":
		*o = OpponentOwned
	default:
		return ErrUnknownOwner
	}
	return nil
}

type Note struct {
	Lane  Lane
	Beat  float64 // The absolute beat the note should be hit on
	Owner Owner
	Icon  string // Opaque payload for whoever draws the note

	// This is state
	Active bool // Inactive notes are recycled without being judged
}

// LoopBeat folds the scheduled beat into [0, loop).
func (n *Note) LoopBeat(loop float64) float64 {
	b := math.Mod(n.Beat, loop)
	if b < 0 {
		b += loop
	}
	return b
}
