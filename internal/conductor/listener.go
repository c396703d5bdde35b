package conductor

import (
	"git.lost.host/meutraa/eotb/internal/game"
)

// Listener receives battle outcomes. Calls are synchronous and come from
// whichever goroutine drives the Conductor.
type Listener interface {
	OnHit(l game.Lane, tier game.Tier)
	OnMiss(l game.Lane, timeout bool)
	OnNotePlaced(l game.Lane)
	OnLoopBoundary()
}

// OwnerListener also wants to know who authored the judged note. The
// conductor calls OnOwnedHit in place of OnHit on listeners that have it.
type OwnerListener interface {
	OnOwnedHit(l game.Lane, owner game.Owner, tier game.Tier)
}

// NopListener ignores everything, embed it to pick a few callbacks.
type NopListener struct{}

func (NopListener) OnHit(game.Lane, game.Tier) {}
func (NopListener) OnMiss(game.Lane, bool)     {}
func (NopListener) OnNotePlaced(game.Lane)     {}
func (NopListener) OnLoopBoundary()            {}

// Listeners fans every outcome out in order.
type Listeners []Listener

func (ls Listeners) OnHit(l game.Lane, tier game.Tier) {
	for _, li := range ls {
		li.OnHit(l, tier)
	}
}

func (ls Listeners) OnOwnedHit(l game.Lane, owner game.Owner, tier game.Tier) {
	for _, li := range ls {
		hit(li, l, owner, tier)
	}
}

func hit(li Listener, l game.Lane, owner game.Owner, tier game.Tier) {
	if ol, ok := li.(OwnerListener); ok {
		ol.OnOwnedHit(l, owner, tier)
		return
	}
	li.OnHit(l, tier)
}

func (ls Listeners) OnMiss(l game.Lane, timeout bool) {
	for _, li := range ls {
		li.OnMiss(l, timeout)
	}
}

func (ls Listeners) OnNotePlaced(l game.Lane) {
	for _, li := range ls {
		li.OnNotePlaced(l)
	}
}

func (ls Listeners) OnLoopBoundary() {
	for _, li := range ls {
		li.OnLoopBoundary()
	}
}

// Budget gates player note placement.
type Budget interface {
	CanPlace() bool
	Consume()
}

// Unlimited always allows placing.
type Unlimited struct{}

func (Unlimited) CanPlace() bool { return true }
func (Unlimited) Consume()       {}
