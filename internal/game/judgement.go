package game

// Tier is the quality of a judged note, ordered by severity.
type Tier uint8

const (
	Perfect Tier = iota
	Good
	Okay
	Miss
)

// TierCount is the number of tiers including Miss.
const TierCount = 4

func (t Tier) String() string {
	switch t {
	case Perfect:
		return "Perfect"
	case Good:
		return "Good"
	case Okay:
		return "Okay"
	}
	return "Miss"
}

// IsHit reports whether the tier counts towards the combo.
func (t Tier) IsHit() bool {
	return t < Miss
}

// Input is a key event on a lane, stamped with the absolute beat it was
// judged on.
type Input struct {
	Lane     Lane
	Released bool
	Beat     float64
}
