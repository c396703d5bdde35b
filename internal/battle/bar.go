package battle

// Bar is the note placement meter. Hitting notes builds combo and charge,
// placing a note spends a full bar.
type Bar struct {
	Max int

	charge   int
	combo    int
	maxCombo int
}

func NewBar(max int) *Bar {
	if max <= 0 {
		max = 1
	}
	return &Bar{Max: max}
}

func (b *Bar) CanPlace() bool {
	return b.charge >= b.Max
}

func (b *Bar) Consume() {
	b.charge -= b.Max
	if b.charge < 0 {
		b.charge = 0
	}
}

// HitNote grows the combo and charges the bar, more for longer combos.
func (b *Bar) HitNote() {
	b.combo++
	if b.combo > b.maxCombo {
		b.maxCombo = b.combo
	}
	b.charge += 1 + b.combo/10
	if b.charge > b.Max {
		b.charge = b.Max
	}
}

func (b *Bar) MissNote() {
	b.combo = 0
}

func (b *Bar) Charge() int   { return b.charge }
func (b *Bar) Combo() int    { return b.combo }
func (b *Bar) MaxCombo() int { return b.maxCombo }
