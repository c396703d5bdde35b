package conductor

import (
	"git.lost.host/meutraa/eotb/internal/game"
)

type Kind uint8

const (
	Ignored Kind = iota
	Hit
	Placed
	Rejected
)

func (k Kind) String() string {
	switch k {
	case Hit:
		return "Hit"
	case Placed:
		return "Placed"
	case Rejected:
		return "Rejected"
	}
	return "Ignored"
}

// Reason explains a rejected placement.
type Reason uint8

const (
	NoReason Reason = iota
	NoBudget
	DuplicateBeat
)

func (r Reason) String() string {
	switch r {
	case NoBudget:
		return "NoBudget"
	case DuplicateBeat:
		return "DuplicateBeat"
	}
	return "None"
}

// Outcome is what a single input resolved to.
type Outcome struct {
	Kind   Kind
	Lane   game.Lane
	Tier   game.Tier  // Hit only
	Offset float64    // Hit only, seconds, positive when late
	Reason Reason     // Rejected only
	Note   *game.Note // the judged or placed note
}

// State is where a lane sits in its hit cycle.
type State uint8

const (
	Idle    State = iota // no notes
	Waiting              // head note not reachable yet
	Armed                // head note can be judged
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "Waiting"
	case Armed:
		return "Armed"
	}
	return "Idle"
}
