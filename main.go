package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"

	"git.lost.host/meutraa/eotb/internal/config"
	"git.lost.host/meutraa/eotb/internal/game"
	"git.lost.host/meutraa/eotb/internal/record"
)

func main() {
	if err := run(); nil != err {
		stdlog.Fatalln(err)
	}
}

func run() error {
	cfg, err := config.Parse(os.Args[1:])
	if nil != err {
		return err
	}

	p := &Program{Config: cfg}
	if err := p.Init(); nil != err {
		return err
	}
	defer p.Deinit()

	if err := p.Run(context.Background()); nil != err {
		return err
	}
	printSummary(p)
	return nil
}

func printSummary(p *Program) {
	s := p.Recorder.Summary()
	d := p.Battle.Director
	fmt.Printf("%v after %d loops\n", d.Result(), s.Loops)
	fmt.Printf("     Player:  %4d/%-4d\n", d.Player.Current, d.Player.Max)
	fmt.Printf("      Enemy:  %4d/%-4d\n", d.Enemy.Current, d.Enemy.Max)
	for t, n := range s.Counts {
		fmt.Printf("%11v:  %6d\n", game.Tier(t), n)
	}
	fmt.Printf("   Timeouts:  %6d\n", s.Timeouts)
	fmt.Printf("  Max Combo:  %6d\n", s.MaxCombo)
	fmt.Printf("       Mean:  %6.1f ms\n", s.Mean*1000)
	fmt.Printf("      Stdev:  %6.1f ms\n", s.Stdev*1000)

	if nil == p.Store {
		return
	}
	histories, err := p.Store.Load(p.Chart)
	if nil != err {
		p.Log.Warnf("unable to load history: %v", err)
		return
	}
	best := -1
	for _, h := range histories {
		hs, _, err := record.Score(p.Chart, h)
		if nil != err {
			p.Log.Warnf("unable to score battle %v: %v", h.ID, err)
			continue
		}
		if hs.Hits() > best {
			best = hs.Hits()
		}
	}
	fmt.Printf("Battle %d on %v, best %d hits\n", len(histories), p.Chart.Name, best)
}
