package battle

// Puppet is a combatant with health.
type Puppet struct {
	Name    string
	Max     int
	Current int

	OnDamage   func(p *Puppet, amount int)
	OnDefeated func(p *Puppet)
}

// NewPuppet creates a Puppet at full health.
func NewPuppet(name string, max int) *Puppet {
	if max <= 0 {
		max = 1
	}
	return &Puppet{Name: name, Max: max, Current: max}
}

func (p *Puppet) Defeated() bool {
	return p.Current <= 0
}

// TakeDamage lowers health, firing OnDefeated once when it reaches zero.
// Returns true if damage was applied.
func (p *Puppet) TakeDamage(amount int) bool {
	if p.Defeated() || amount <= 0 {
		return false
	}
	p.Current -= amount
	if p.Current < 0 {
		p.Current = 0
	}
	if p.OnDamage != nil {
		p.OnDamage(p, amount)
	}
	if p.Current == 0 && p.OnDefeated != nil {
		p.OnDefeated(p)
	}
	return true
}

// Heal restores health up to Max. The defeated stay defeated.
func (p *Puppet) Heal(amount int) {
	if p.Defeated() || amount <= 0 {
		return
	}
	p.Current += amount
	if p.Current > p.Max {
		p.Current = p.Max
	}
}
