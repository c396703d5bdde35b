package engine

import (
	"context"
	"testing"
	"time"

	"git.lost.host/meutraa/eotb/internal/clock"
	"git.lost.host/meutraa/eotb/internal/conductor"
	"git.lost.host/meutraa/eotb/internal/game"
	"git.lost.host/meutraa/eotb/internal/timing"
)

type counter struct {
	hits, misses, timeouts, loops int
}

func (c *counter) OnHit(game.Lane, game.Tier) { c.hits++ }
func (c *counter) OnMiss(_ game.Lane, timeout bool) {
	c.misses++
	if timeout {
		c.timeouts++
	}
}
func (c *counter) OnNotePlaced(game.Lane) {}
func (c *counter) OnLoopBoundary()        { c.loops++ }

var song = game.Song{BPM: 120, LoopLength: 8}

func setup(t *testing.T, notes ...game.ChartNote) (*Engine, *clock.Manual, *counter) {
	t.Helper()
	cnt := &counter{}
	c, err := conductor.New(song, timing.MustJudge(timing.DefaultTolerance), nil, cnt)
	if nil != err {
		t.Fatal(err)
	}
	if err := c.Load(&game.Chart{Song: song, Notes: notes}); nil != err {
		t.Fatal(err)
	}
	src := &clock.Manual{}
	return New(c, src, 16), src, cnt
}

func TestStepJudgesInputsOnTheSampledBeat(t *testing.T) {
	e, src, cnt := setup(t, game.ChartNote{Lane: game.Up, Beat: 4})
	seen := 0
	e.OnInput = func(in game.Input, out conductor.Outcome) {
		seen++
		if in.Beat != clock.BeatFromTime(2.05, song.BPM) {
			t.Fatalf("input stamped with beat %v", in.Beat)
		}
	}

	src.Set(2.05)
	e.Push(game.Input{Lane: game.Up})
	f := e.Step()
	if len(f.Outcomes) != 1 || f.Outcomes[0].Tier != game.Perfect {
		t.Fatalf("expected one Perfect, got %+v", f.Outcomes)
	}
	if seen != 1 || cnt.hits != 1 {
		t.Fatalf("expected one hit, got %d seen %d hits", seen, cnt.hits)
	}
}

func TestStepSweepsBeforeInputs(t *testing.T) {
	e, src, cnt := setup(t, game.ChartNote{Lane: game.Up, Beat: 4})
	src.Set(2.6) // beat 5.2
	e.Push(game.Input{Lane: game.Up})
	f := e.Step()
	if cnt.timeouts != 1 || cnt.hits != 0 {
		t.Fatalf("expected the late note to time out, got %+v", cnt)
	}
	if f.Outcomes[0].Kind == conductor.Hit {
		t.Fatal("late input hit a retired note")
	}
}

func TestStepFiresLoopBoundary(t *testing.T) {
	e, src, cnt := setup(t)
	for _, s := range []float64{0, 1, 3.9, 0.2, 1} {
		src.Set(s)
		e.Step()
	}
	if cnt.loops != 1 {
		t.Fatalf("expected one loop, got %d", cnt.loops)
	}
}

func TestStepAfterStallFiresEveryLoop(t *testing.T) {
	e, src, cnt := setup(t)
	src.Set(1.75)
	e.Step()
	// Nine and a half seconds later, over two loops of four seconds
	src.Set(11.25)
	f := e.Step()
	if cnt.loops != 2 {
		t.Fatalf("expected two loops, got %d", cnt.loops)
	}
	if f.Sample.Beat != 22.5 || f.Sample.Loop != 2 {
		t.Fatalf("expected beat 22.5 in loop 2, got %v in %d", f.Sample.Beat, f.Sample.Loop)
	}
}

func TestReleasesAreIgnored(t *testing.T) {
	e, src, cnt := setup(t, game.ChartNote{Lane: game.Left, Beat: 2})
	src.Set(1)
	e.Push(game.Input{Lane: game.Left, Released: true})
	f := e.Step()
	if f.Outcomes[0].Kind != conductor.Ignored || cnt.hits != 0 {
		t.Fatalf("release did something: %+v", f.Outcomes[0])
	}
}

func TestPushDropsWhenFull(t *testing.T) {
	e, _, _ := setup(t)
	for i := 0; i < 16; i++ {
		if !e.Push(game.Input{Lane: game.Up}) {
			t.Fatalf("push %d dropped", i)
		}
	}
	if e.Push(game.Input{Lane: game.Up}) {
		t.Fatal("push over capacity accepted")
	}
}

func TestRunStopsWhenFrameSaysSo(t *testing.T) {
	e, src, _ := setup(t)
	frames := 0
	err := e.Run(context.Background(), time.Millisecond, func(f Frame) bool {
		frames++
		src.Advance(0.1)
		return frames < 3
	})
	if nil != err || frames != 3 {
		t.Fatalf("expected 3 frames and no error, got %d, %v", frames, err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	e, _, _ := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := e.Run(ctx, time.Hour, func(Frame) bool { return true })
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
