// Package effect dispatches reactive battle effects, such as relics and
// enemy passives, to the moment they are keyed on.
package effect

import (
	"git.lost.host/meutraa/eotb/internal/game"
	"github.com/pkg/errors"
)

// Trigger is the moment an effect reacts to. The set is closed, a new
// trigger needs a constant here and nothing else.
type Trigger uint8

const (
	NotePlaced Trigger = iota
	Loop

	triggerCount
)

var ErrUnknownTrigger = errors.New("unknown trigger")

func (t Trigger) String() string {
	switch t {
	case NotePlaced:
		return "NotePlaced"
	case Loop:
		return "Loop"
	}
	return "Unknown"
}

func (t Trigger) Valid() bool {
	return t < triggerCount
}

// Event is what an effect gets told when it fires.
type Event struct {
	Trigger Trigger
	Lane    game.Lane // only set for NotePlaced
	Loop    int       // completed loops when fired
}

type Effect interface {
	Trigger() Trigger
	Apply(ev Event)
}

// Ender is implemented by effects that clean up when the battle ends.
type Ender interface {
	OnBattleEnd()
}

// Func adapts a function to an Effect.
type Func struct {
	On Trigger
	Fn func(ev Event)
}

func (f Func) Trigger() Trigger { return f.On }
func (f Func) Apply(ev Event)   { f.Fn(ev) }

// Registry holds effects keyed by the trigger they react to.
type Registry struct {
	effects [triggerCount][]Effect
}

func (r *Registry) Add(e Effect) error {
	t := e.Trigger()
	if !t.Valid() {
		return errors.Wrapf(ErrUnknownTrigger, "%d", uint8(t))
	}
	r.effects[t] = append(r.effects[t], e)
	return nil
}

// Fire applies every effect registered on the trigger, in registration order.
func (r *Registry) Fire(ev Event) {
	if !ev.Trigger.Valid() {
		return
	}
	for _, e := range r.effects[ev.Trigger] {
		e.Apply(ev)
	}
}

func (r *Registry) Len(t Trigger) int {
	if !t.Valid() {
		return 0
	}
	return len(r.effects[t])
}

// End tells every effect that cares that the battle is over.
func (r *Registry) End() {
	for _, effects := range r.effects {
		for _, e := range effects {
			if ender, ok := e.(Ender); ok {
				ender.OnBattleEnd()
			}
		}
	}
}
