package main

import (
	"context"
	"os"
	"path"
	"strings"
	"time"

	"git.lost.host/meutraa/eotb/internal/battle"
	"git.lost.host/meutraa/eotb/internal/clock"
	"git.lost.host/meutraa/eotb/internal/config"
	"git.lost.host/meutraa/eotb/internal/engine"
	"git.lost.host/meutraa/eotb/internal/game"
	"git.lost.host/meutraa/eotb/internal/input"
	"git.lost.host/meutraa/eotb/internal/log"
	"git.lost.host/meutraa/eotb/internal/parser"
	"git.lost.host/meutraa/eotb/internal/record"
	"git.lost.host/meutraa/eotb/internal/render"
	"git.lost.host/meutraa/eotb/internal/theme"
	"github.com/eiannone/keyboard"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/pkg/errors"
)

type Program struct {
	Config *config.Config
	Log    *log.Logger

	Chart    *game.Chart
	Battle   *battle.Battle
	Recorder *record.Recorder
	Store    *record.Store
	Engine   *engine.Engine

	Renderer *render.DefaultRenderer
	HUD      *render.HUD

	logFile  *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	source   clock.Source
}

func (p *Program) Init() error {
	cfg := p.Config

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if nil != err {
		return errors.Wrap(err, "unable to open log file")
	}
	p.logFile = f
	p.Log = log.New(f, cfg.LogLevel)

	psr, err := parser.ForFile(cfg.Chart)
	if nil != err {
		return err
	}
	if sm, ok := psr.(*parser.SMParser); ok {
		sm.Difficulty = cfg.Difficulty
	}
	p.Chart, err = psr.Parse(cfg.Chart)
	if nil != err {
		return err
	}
	if "" == p.Chart.Name {
		p.Chart.Name = strings.TrimSuffix(path.Base(cfg.Chart), path.Ext(cfg.Chart))
	}

	// Without history the battle is still playable
	if p.Store, err = record.Open(cfg.Database); nil != err {
		p.Log.Warnf("battle history disabled: %v", err)
		p.Store = nil
	}

	p.Renderer = render.New(os.Stdout, int(os.Stdout.Fd()))
	p.HUD = render.NewHUD(p.Renderer, &theme.DefaultTheme{})
	p.HUD.Spacing = cfg.Spacing
	p.HUD.BarRow = cfg.BarRow
	p.HUD.RowsPerBeat = cfg.RowsPerBeat

	p.Recorder = record.NewRecorder()
	p.Battle, err = battle.Setup(p.Chart, cfg.Rules, p.Log, p.Recorder, p.HUD)
	if nil != err {
		return err
	}

	if "" != cfg.Audio {
		if err := p.openAudio(cfg.Audio); nil != err {
			return err
		}
	} else {
		p.source = &clock.Wall{Start: time.Now().Add(cfg.Delay)}
	}

	p.Engine = engine.New(p.Battle.Conductor, p.source, 128)
	p.Engine.OnInput = p.Recorder.Observe
	p.Log.Infof("loaded %v: %v bpm, %v beat loop, %d notes", p.Chart.Name, p.Chart.Song.BPM, p.Chart.Song.LoopLength, len(p.Chart.Notes))
	return nil
}

func (p *Program) openAudio(file string) error {
	f, err := os.Open(file)
	if nil != err {
		return errors.Wrap(err, "unable to open audio")
	}
	switch strings.ToLower(path.Ext(file)) {
	case ".ogg":
		p.streamer, p.format, err = vorbis.Decode(f)
	default:
		p.streamer, p.format, err = mp3.Decode(f)
	}
	if nil != err {
		f.Close()
		return errors.Wrapf(err, "unable to decode %v", file)
	}
	if err := speaker.Init(p.format.SampleRate, p.format.SampleRate.N(time.Second/60)); nil != err {
		return errors.Wrap(err, "unable to open speaker")
	}
	p.source = &clock.Beep{Streamer: p.streamer, Format: p.format}
	return nil
}

func (p *Program) Deinit() {
	if nil != p.streamer {
		speaker.Clear()
		p.streamer.Close()
	}
	if nil != p.Store {
		if err := p.Store.Close(); nil != err {
			p.Log.Warnf("unable to close history: %v", err)
		}
	}
	if nil != p.logFile {
		p.logFile.Close()
	}
}

// Run plays the battle until it is decided, the song ends, or the player
// leaves, then saves it.
func (p *Program) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return errors.Wrap(err, "unable to open keyboard")
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			p.Log.Warnf("unable to close keyboard: %v", err)
		}
	}()

	if err := p.Renderer.Init(); nil != err {
		return err
	}
	p.HUD.Resize()

	go func() {
		defer cancel()
		err := input.FromKeyboard(ctx, keys, p.Config.Keymap, func(in game.Input) {
			if !p.Engine.Push(in) {
				p.Log.Warnf("input queue full, dropped %v", in.Lane)
			}
		})
		if nil != err && err != context.Canceled {
			p.Log.Errorf("%v", err)
		}
	}()

	if nil != p.streamer {
		go func() {
			select {
			case <-time.After(p.Config.Delay):
				speaker.Play(&clock.Looper{StreamSeeker: p.streamer})
			case <-ctx.Done():
			}
		}()
	}

	duration := p.Chart.Song.Duration
	var last engine.Frame
	err = p.Engine.Run(ctx, p.Config.FramePeriod, func(f engine.Frame) bool {
		last = f
		status := render.Status{
			Player:  p.Battle.Director.Player,
			Enemy:   p.Battle.Director.Enemy,
			Bar:     p.Battle.Director.Bar,
			Summary: p.Recorder.Summary(),
			Combo:   p.Recorder.Combo(),
		}
		if err := p.HUD.Draw(f, p.Battle.Conductor, status); nil != err {
			p.Log.Errorf("render: %v", err)
			return false
		}
		if duration > 0 && f.Sample.Beat*p.Chart.Song.SecondsPerBeat() > duration {
			return false
		}
		return p.Battle.Director.Result() == battle.Running
	})

	if derr := p.Renderer.Deinit(); nil != derr {
		p.Log.Warnf("unable to restore terminal: %v", derr)
	}
	p.Battle.Director.End()
	if nil != err && err != context.Canceled {
		return err
	}

	result := p.Battle.Director.Result()
	p.Log.Infof("battle %v at beat %.2f", result, last.Sample.Beat)
	if nil != p.Store {
		id, err := p.Store.Save(p.Chart, p.Battle.Rules, p.Recorder.Inputs(), last.Sample.Beat, result)
		if nil != err {
			p.Log.Errorf("unable to save battle: %v", err)
		} else {
			p.Log.Infof("saved battle %v", id)
		}
	}
	return nil
}
