package battle

import (
	"git.lost.host/meutraa/eotb/internal/conductor"
	"git.lost.host/meutraa/eotb/internal/effect"
	"git.lost.host/meutraa/eotb/internal/game"
	"git.lost.host/meutraa/eotb/internal/log"
	"git.lost.host/meutraa/eotb/internal/timing"
)

// Rules are the knobs of a battle. They are stored with every recording so
// a replay plays by the same rules.
type Rules struct {
	Tolerance   float64   `json:"tolerance"`
	Multipliers []float64 `json:"multipliers,omitempty"`
	Guard       float64   `json:"guard"`
	Snap        int       `json:"snap"`
	BarMax      int       `json:"bar_max"`
	PlayerHP    int       `json:"player_hp"`
	EnemyHP     int       `json:"enemy_hp"`

	Regen       int `json:"regen,omitempty"`        // player healing per loop
	PlaceStrike int `json:"place_strike,omitempty"` // enemy damage per placed note
}

var DefaultRules = Rules{
	Tolerance: timing.DefaultTolerance,
	Guard:     timing.DefaultGuard,
	Snap:      1,
	BarMax:    10,
	PlayerHP:  100,
	EnemyHP:   100,
}

// Battle is a loaded chart with everyone who reacts to it.
type Battle struct {
	Chart     *game.Chart
	Rules     Rules
	Conductor *conductor.Conductor
	Director  *Director
}

// Setup loads the chart into a new conductor whose outcomes go to a new
// director first and then to the extra listeners.
func Setup(chart *game.Chart, rules Rules, l *log.Logger, extra ...conductor.Listener) (*Battle, error) {
	judge, err := timing.NewJudge(rules.Tolerance, rules.Multipliers...)
	if nil != err {
		return nil, err
	}
	bar := NewBar(rules.BarMax)
	d := NewDirector(NewPuppet("player", rules.PlayerHP), NewPuppet("enemy", rules.EnemyHP), bar)
	d.Log = l
	if rules.Regen > 0 {
		d.Effects.Add(Heal(d.Player, rules.Regen, effect.Loop))
	}
	if rules.PlaceStrike > 0 {
		d.Effects.Add(Strike(d.Enemy, rules.PlaceStrike, effect.NotePlaced))
	}

	listeners := append(conductor.Listeners{d}, extra...)
	c, err := conductor.New(chart.Song, judge, bar, listeners,
		conductor.WithGuard(rules.Guard),
		conductor.WithSnap(rules.Snap),
		conductor.WithLogger(l),
	)
	if nil != err {
		return nil, err
	}
	if err := c.Load(chart); nil != err {
		return nil, err
	}
	return &Battle{Chart: chart, Rules: rules, Conductor: c, Director: d}, nil
}
