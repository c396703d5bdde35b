package config

import (
	"time"

	"git.lost.host/meutraa/eotb/internal/battle"
	"git.lost.host/meutraa/eotb/internal/input"
	"git.lost.host/meutraa/eotb/internal/log"
	"git.lost.host/meutraa/eotb/internal/timing"
	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.3.0"

type Config struct {
	Chart       string
	Audio       string
	Difficulty  string
	Delay       time.Duration
	FramePeriod time.Duration
	Database    string
	LogFile     string
	LogLevel    log.Level
	Keymap      input.Keymap
	Spacing     int
	BarRow      int
	RowsPerBeat int
	Rules       battle.Rules
}

type flags struct {
	chart, audio, difficulty *string
	delay, framePeriod       *time.Duration
	database, logFile        *string
	logLevel, keys           *string
	spacing, barRow, rows    *uint
	tolerance, guard         *float64
	legacy                   *bool
	snap, bar                *int
	playerHP, enemyHP        *int
	regen, placeStrike       *int
}

func newApp() (*kingpin.Application, *flags) {
	app := kingpin.New("eotb", "Rhythm battles in the terminal.")
	app.Version(Version)
	f := &flags{
		chart:       app.Arg("chart", "Chart file (.yaml or .sm)").Required().ExistingFile(),
		audio:       app.Flag("audio", "Looping track to play (.mp3 or .ogg)").Short('a').ExistingFile(),
		difficulty:  app.Flag("difficulty", "Difficulty to import from a .sm chart, the first one when empty").String(),
		delay:       app.Flag("delay", "Start delay").Default("1.5s").Short('d').Duration(),
		framePeriod: app.Flag("frame-period", "Simulation and render frame period").Default("4ms").Short('p').Duration(),
		database:    app.Flag("db", "Battle history database").Default("./battles.db").String(),
		logFile:     app.Flag("log-file", "Where to log, the screen belongs to the HUD").Default("./eotb.log").String(),
		logLevel:    app.Flag("log-level", "debug, info, warn, error or none").Default("info").Enum("debug", "info", "warn", "error", "none"),
		keys:        app.Flag("keys", "Keys for the up, down, left and right lanes").Default("_-mp").Short('k').String(),
		spacing:     app.Flag("spacing", "Columns between lanes").Default("6").Short('S').Uint(),
		barRow:      app.Flag("bar-row", "Rows between the hit bar and the bottom").Default("8").Uint(),
		rows:        app.Flag("rows-per-beat", "Scroll speed in rows per beat").Default("4").Short('s').Uint(),
		tolerance:   app.Flag("tolerance", "Perfect window in seconds").Default("0.1").Short('t').Float64(),
		guard:       app.Flag("guard", "Beats before an unplayed note is missed").Default("1").Float64(),
		legacy:      app.Flag("legacy-windows", "Use the wider 2/4/6 timing windows").Bool(),
		snap:        app.Flag("snap", "Placed notes snap to 1/n beat, 0 to not snap").Default("1").Int(),
		bar:         app.Flag("bar", "Charge needed to place a note").Default("10").Int(),
		playerHP:    app.Flag("player-hp", "Player health").Default("100").Int(),
		enemyHP:     app.Flag("enemy-hp", "Enemy health").Default("100").Int(),
		regen:       app.Flag("regen", "Player health restored every loop").Default("0").Int(),
		placeStrike: app.Flag("place-strike", "Enemy damage for every placed note").Default("0").Int(),
	}
	return app, f
}

// Parse reads the command line, without the program name.
func Parse(args []string) (*Config, error) {
	app, f := newApp()
	if _, err := app.Parse(args); nil != err {
		return nil, err
	}

	keymap, err := input.ParseKeymap(*f.keys)
	if nil != err {
		return nil, err
	}

	rules := battle.Rules{
		Tolerance:   *f.tolerance,
		Guard:       *f.guard,
		Snap:        *f.snap,
		BarMax:      *f.bar,
		PlayerHP:    *f.playerHP,
		EnemyHP:     *f.enemyHP,
		Regen:       *f.regen,
		PlaceStrike: *f.placeStrike,
	}
	if *f.legacy {
		rules.Multipliers = timing.LegacyMultipliers
	}
	// Fail here rather than after the terminal is taken over
	if _, err := timing.NewJudge(rules.Tolerance, rules.Multipliers...); nil != err {
		return nil, err
	}

	return &Config{
		Chart:       *f.chart,
		Audio:       *f.audio,
		Difficulty:  *f.difficulty,
		Delay:       *f.delay,
		FramePeriod: *f.framePeriod,
		Database:    *f.database,
		LogFile:     *f.logFile,
		LogLevel:    log.LevelFromString(*f.logLevel),
		Keymap:      keymap,
		Spacing:     int(*f.spacing),
		BarRow:      int(*f.barRow),
		RowsPerBeat: int(*f.rows),
		Rules:       rules,
	}, nil
}
