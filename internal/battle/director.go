package battle

import (
	"git.lost.host/meutraa/eotb/internal/effect"
	"git.lost.host/meutraa/eotb/internal/game"
	"git.lost.host/meutraa/eotb/internal/log"
)

// Damage is how hard each outcome hits. A hit lands on the opponent of
// whoever authored the note, so the player's own notes strike the enemy
// while hitting an enemy note only softens its blow.
type Damage struct {
	Hit   [game.Miss]int // player notes, dealt to the enemy by tier
	Guard [game.Miss]int // enemy notes, what still reaches the player by tier
	Miss  int            // taken by the player
}

var DefaultDamage = Damage{
	Hit:   [game.Miss]int{10, 5, 1},
	Guard: [game.Miss]int{0, 1, 2},
	Miss:  4,
}

// For returns the damage a hit of the tier deals on a note of the owner.
func (d Damage) For(owner game.Owner, tier game.Tier) int {
	if !tier.IsHit() {
		return d.Miss
	}
	if owner == game.PlayerOwned {
		return d.Hit[tier]
	}
	return d.Guard[tier]
}

type Result uint8

const (
	Running Result = iota
	Won
	Lost
)

func (r Result) String() string {
	switch r {
	case Won:
		return "Won"
	case Lost:
		return "Lost"
	}
	return "Running"
}

// Director applies the consequences of conductor outcomes: damage, the
// placement bar, and battle effects.
type Director struct {
	Player  *Puppet
	Enemy   *Puppet
	Bar     *Bar
	Effects *effect.Registry
	Damage  Damage
	Log     *log.Logger

	loops int
}

func NewDirector(player, enemy *Puppet, bar *Bar) *Director {
	return &Director{
		Player:  player,
		Enemy:   enemy,
		Bar:     bar,
		Effects: &effect.Registry{},
		Damage:  DefaultDamage,
	}
}

// Puppet returns the combatant on the given side.
func (d *Director) Puppet(o game.Owner) *Puppet {
	if o == game.PlayerOwned {
		return d.Player
	}
	return d.Enemy
}

// OnHit handles a hit without knowing the note, taken as a chart note.
func (d *Director) OnHit(l game.Lane, tier game.Tier) {
	d.OnOwnedHit(l, game.OpponentOwned, tier)
}

func (d *Director) OnOwnedHit(l game.Lane, owner game.Owner, tier game.Tier) {
	if !tier.IsHit() {
		d.OnMiss(l, false)
		return
	}
	target := d.Puppet(game.Opponent(owner))
	target.TakeDamage(d.Damage.For(owner, tier))
	d.Bar.HitNote()
	d.Log.Debugf("%v %v, %s at %d", l, tier, target.Name, target.Current)
}

func (d *Director) OnMiss(l game.Lane, timeout bool) {
	d.Player.TakeDamage(d.Damage.Miss)
	d.Bar.MissNote()
	d.Log.Debugf("%v miss (timeout %v), %s at %d", l, timeout, d.Player.Name, d.Player.Current)
}

func (d *Director) OnNotePlaced(l game.Lane) {
	d.Effects.Fire(effect.Event{Trigger: effect.NotePlaced, Lane: l, Loop: d.loops})
}

func (d *Director) OnLoopBoundary() {
	d.loops++
	d.Effects.Fire(effect.Event{Trigger: effect.Loop, Loop: d.loops})
}

// Result reports the battle state. A player defeat wins over an enemy one.
func (d *Director) Result() Result {
	if d.Player.Defeated() {
		return Lost
	}
	if d.Enemy.Defeated() {
		return Won
	}
	return Running
}

// End runs battle end clean up on every effect.
func (d *Director) End() {
	d.Effects.End()
}

func (d *Director) Loops() int {
	return d.loops
}

// Heal builds an effect that heals a puppet whenever the trigger fires.
func Heal(p *Puppet, amount int, on effect.Trigger) effect.Effect {
	return effect.Func{On: on, Fn: func(effect.Event) { p.Heal(amount) }}
}

// Strike builds an effect that damages a puppet whenever the trigger fires.
func Strike(p *Puppet, amount int, on effect.Trigger) effect.Effect {
	return effect.Func{On: on, Fn: func(effect.Event) { p.TakeDamage(amount) }}
}
