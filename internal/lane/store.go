package lane

import (
	"math"

	"git.lost.host/meutraa/eotb/internal/game"
	"github.com/pkg/errors"
	"gopkg.in/eapache/queue.v1"
)

var ErrEmptyLane = errors.New("rotate on empty lane")

// Epsilon is how close two folded beats must be to count as one. Recycling
// adds the loop length over and over, so equal slots drift apart slightly.
const Epsilon = 1e-6

// Store keeps one queue of notes per lane. The head of each queue is the
// next note due in that lane, and rotation only moves the head to the tail.
type Store struct {
	loop  float64
	lanes [game.LaneCount]*queue.Queue
}

func New(loopLength float64) *Store {
	s := &Store{loop: loopLength}
	for i := range s.lanes {
		s.lanes[i] = queue.New()
	}
	return s
}

func (s *Store) LoopLength() float64 {
	return s.loop
}

func (s *Store) queue(l game.Lane) (*queue.Queue, error) {
	if !l.Valid() {
		return nil, errors.Wrapf(game.ErrUnknownLane, "%d", uint8(l))
	}
	return s.lanes[l], nil
}

// Enqueue appends the note to the tail of its lane. It returns false without
// touching the lane when a note already sits on the same beat of the loop.
func (s *Store) Enqueue(l game.Lane, note *game.Note) bool {
	q, err := s.queue(l)
	if nil != err {
		return false
	}
	beat := note.LoopBeat(s.loop)
	for i := 0; i < q.Length(); i++ {
		if s.sameBeat(q.Get(i).(*game.Note).LoopBeat(s.loop), beat) {
			return false
		}
	}
	note.Lane = l
	q.Add(note)
	return true
}

// sameBeat compares two folded beats, a hair under the loop length being
// the same slot as zero.
func (s *Store) sameBeat(a, b float64) bool {
	d := math.Abs(a - b)
	return d < Epsilon || s.loop-d < Epsilon
}

// PeekHead returns the next note due in the lane, or nil when it is empty.
func (s *Store) PeekHead(l game.Lane) *game.Note {
	q, err := s.queue(l)
	if nil != err || q.Length() == 0 {
		return nil
	}
	return q.Peek().(*game.Note)
}

// RotateToBack moves the head note to the tail, pushing it one loop into the
// future, and returns it.
func (s *Store) RotateToBack(l game.Lane) (*game.Note, error) {
	q, err := s.queue(l)
	if nil != err {
		return nil, err
	}
	if q.Length() == 0 {
		return nil, errors.WithStack(ErrEmptyLane)
	}
	note := q.Remove().(*game.Note)
	note.Beat += s.loop
	q.Add(note)
	return note, nil
}

func (s *Store) Len(l game.Lane) int {
	q, err := s.queue(l)
	if nil != err {
		return 0
	}
	return q.Length()
}

// Notes returns the lane's notes in queue order, head first.
func (s *Store) Notes(l game.Lane) []*game.Note {
	q, err := s.queue(l)
	if nil != err {
		return nil
	}
	notes := make([]*game.Note, q.Length())
	for i := range notes {
		notes[i] = q.Get(i).(*game.Note)
	}
	return notes
}
