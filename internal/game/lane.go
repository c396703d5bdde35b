package game

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Lane is one of the four input channels a note can travel down.
type Lane uint8

const (
	Up Lane = iota
	Down
	Left
	Right
)

// LaneCount is the number of lanes in a battle.
const LaneCount = 4

// Lanes lists every lane in index order.
var Lanes = [LaneCount]Lane{Up, Down, Left, Right}

var laneNames = map[string]Lane{
	"up":    Up,
	"down":  Down,
	"left":  Left,
	"right": Right,
}

var ErrUnknownLane = errors.New("unknown lane")

func (l Lane) Valid() bool {
	return l < LaneCount
}

func (l Lane) String() string {
	switch l {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return "Lane(" + strconv.Itoa(int(l)) + ")"
}

// ParseLane accepts a lane name in any case.
func ParseLane(s string) (Lane, error) {
	l, ok := laneNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownLane, "%q", s)
	}
	return l, nil
}

func (l Lane) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, errors.Wrapf(ErrUnknownLane, "%d", uint8(l))
	}
	return []byte(strings.ToLower(l.String())), nil
}

func (l *Lane) UnmarshalText(text []byte) error {
	parsed, err := ParseLane(string(text))
	if nil != err {
		return err
	}
	*l = parsed
	return nil
}
