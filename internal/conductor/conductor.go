// Package conductor matches player input against the notes due in each lane
// and retires the notes nobody played.
//
// A Conductor is not safe for concurrent use. Drive it from one loop, and
// call Tick before handling the inputs that arrived in the same step so a
// note past its window is missed rather than hit late.
package conductor

import (
	"math"

	"git.lost.host/meutraa/eotb/internal/game"
	"git.lost.host/meutraa/eotb/internal/lane"
	"git.lost.host/meutraa/eotb/internal/log"
	"git.lost.host/meutraa/eotb/internal/timing"
	"github.com/pkg/errors"
)

var ErrDuplicateNote = errors.New("duplicate note in chart")

type Conductor struct {
	song     game.Song
	lanes    *lane.Store
	judge    *timing.Judge
	budget   Budget
	listener Listener

	guard float64 // beats
	snap  float64 // placement subdivisions per beat, 0 to keep the exact beat
	log   *log.Logger
}

type Option func(c *Conductor)

// WithGuard sets how many beats either side of a note an input may judge it,
// and how late an unplayed note is retired.
func WithGuard(beats float64) Option {
	return func(c *Conductor) { c.guard = beats }
}

// WithSnap quantizes placed notes down to 1/subdivisions of a beat.
func WithSnap(subdivisions int) Option {
	return func(c *Conductor) { c.snap = float64(subdivisions) }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Conductor) { c.log = l }
}

func New(song game.Song, judge *timing.Judge, budget Budget, listener Listener, opts ...Option) (*Conductor, error) {
	if err := song.Validate(); nil != err {
		return nil, err
	}
	if nil == judge {
		return nil, errors.New("conductor: nil judge")
	}
	if nil == budget {
		budget = Unlimited{}
	}
	if nil == listener {
		listener = NopListener{}
	}
	c := &Conductor{
		song:     song,
		lanes:    lane.New(song.LoopLength),
		judge:    judge,
		budget:   budget,
		listener: listener,
		guard:    timing.DefaultGuard,
	}
	for _, opt := range opts {
		opt(c)
	}
	if !(c.guard > 0) {
		return nil, errors.Errorf("conductor: guard must be positive, got %v", c.guard)
	}
	return c, nil
}

// Load schedules the chart's notes. Chart notes are playable straight away.
func (c *Conductor) Load(chart *game.Chart) error {
	for i, cn := range chart.Notes {
		if !cn.Lane.Valid() {
			return errors.Wrapf(game.ErrUnknownLane, "note %d", i)
		}
		if cn.Beat < 0 || cn.Beat >= c.song.LoopLength {
			return errors.Wrapf(game.ErrOutOfLoop, "note %d at beat %v", i, cn.Beat)
		}
		note := &game.Note{
			Lane:   cn.Lane,
			Beat:   cn.Beat,
			Owner:  cn.Owner,
			Icon:   cn.Icon,
			Active: true,
		}
		if !c.lanes.Enqueue(cn.Lane, note) {
			return errors.Wrapf(ErrDuplicateNote, "%v at beat %v", cn.Lane, cn.Beat)
		}
	}
	return nil
}

func (c *Conductor) Song() game.Song      { return c.song }
func (c *Conductor) Judge() *timing.Judge { return c.judge }

// Notes returns the lane's queue, next due first.
func (c *Conductor) Notes(l game.Lane) []*game.Note {
	return c.lanes.Notes(l)
}

func (c *Conductor) State(l game.Lane, beat float64) State {
	head := c.lanes.PeekHead(l)
	if nil == head {
		return Idle
	}
	if head.Active && timing.InWindow(beat-head.Beat, c.guard) {
		return Armed
	}
	return Waiting
}

func (c *Conductor) rotate(l game.Lane) *game.Note {
	note, err := c.lanes.RotateToBack(l)
	if nil != err {
		// Callers peek first, an empty lane here is a bug
		panic(err)
	}
	return note
}

// Tick retires the head note of every lane that is more than the guard late.
func (c *Conductor) Tick(beat float64) {
	for _, l := range game.Lanes {
		head := c.lanes.PeekHead(l)
		if nil == head || !timing.TimedOut(beat-head.Beat, c.guard) {
			continue
		}
		active := head.Active
		note := c.rotate(l)
		if !active {
			// Placed notes sit out the pass they were placed in
			if note.Beat > beat {
				note.Active = true
			}
			continue
		}
		c.log.Debugf("%v timed out, next at beat %v", l, note.Beat)
		c.listener.OnMiss(l, true)
	}
}

// HandleInput judges a press on the lane at the given beat. A press with
// nothing reachable in the lane tries to place a note instead.
func (c *Conductor) HandleInput(l game.Lane, beat float64) Outcome {
	if !l.Valid() {
		return Outcome{Kind: Ignored, Lane: l}
	}
	head := c.lanes.PeekHead(l)
	if nil == head || !head.Active || !timing.InWindow(beat-head.Beat, c.guard) {
		return c.TryPlace(l, beat)
	}

	offset := (beat - head.Beat) * c.song.SecondsPerBeat()
	tier := c.judge.Classify(offset)
	note := c.rotate(l)
	c.log.Debugf("%v %v by %.0fms", l, tier, offset*1000)
	if tier.IsHit() {
		hit(c.listener, l, note.Owner, tier)
	} else {
		c.listener.OnMiss(l, false)
	}
	return Outcome{Kind: Hit, Lane: l, Tier: tier, Offset: offset, Note: note}
}

// HandleRelease is reserved for hold notes.
func (c *Conductor) HandleRelease(l game.Lane, beat float64) Outcome {
	return Outcome{Kind: Ignored, Lane: l}
}

// TryPlace puts a player note in the lane at the beat's position within the
// loop. The note joins the tail of the queue and only becomes playable once
// it has been recycled ahead of the playhead.
func (c *Conductor) TryPlace(l game.Lane, beat float64) Outcome {
	if !l.Valid() {
		return Outcome{Kind: Ignored, Lane: l}
	}
	if !c.budget.CanPlace() {
		c.log.Debugf("%v placement denied, no budget", l)
		return Outcome{Kind: Rejected, Lane: l, Reason: NoBudget}
	}
	if c.snap > 0 {
		beat = math.Floor(beat*c.snap) / c.snap
	}
	note := &game.Note{
		Lane:  l,
		Beat:  math.Mod(beat, c.song.LoopLength),
		Owner: game.PlayerOwned,
	}
	if note.Beat < 0 {
		note.Beat += c.song.LoopLength
	}
	if !c.lanes.Enqueue(l, note) {
		c.log.Debugf("%v placement denied, beat %v taken", l, note.Beat)
		return Outcome{Kind: Rejected, Lane: l, Reason: DuplicateBeat}
	}
	c.budget.Consume()
	c.log.Debugf("%v note placed at beat %v", l, note.Beat)
	c.listener.OnNotePlaced(l)
	return Outcome{Kind: Placed, Lane: l, Note: note}
}

func (c *Conductor) LoopBoundary() {
	c.listener.OnLoopBoundary()
}
