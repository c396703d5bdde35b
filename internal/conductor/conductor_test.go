package conductor

import (
	"math"
	"testing"

	"git.lost.host/meutraa/eotb/internal/clock"
	"git.lost.host/meutraa/eotb/internal/game"
	"git.lost.host/meutraa/eotb/internal/timing"
	"github.com/pkg/errors"
)

type event struct {
	kind    string
	lane    game.Lane
	tier    game.Tier
	timeout bool
}

type recorder struct {
	events []event
}

func (r *recorder) OnHit(l game.Lane, tier game.Tier) {
	r.events = append(r.events, event{kind: "hit", lane: l, tier: tier})
}

func (r *recorder) OnMiss(l game.Lane, timeout bool) {
	r.events = append(r.events, event{kind: "miss", lane: l, timeout: timeout})
}

func (r *recorder) OnNotePlaced(l game.Lane) {
	r.events = append(r.events, event{kind: "placed", lane: l})
}

func (r *recorder) OnLoopBoundary() {
	r.events = append(r.events, event{kind: "loop"})
}

type budget struct {
	left int
}

func (b *budget) CanPlace() bool { return b.left > 0 }
func (b *budget) Consume()       { b.left-- }

var song = game.Song{BPM: 120, LoopLength: 8}

func newConductor(t *testing.T, b Budget, notes ...game.ChartNote) (*Conductor, *recorder) {
	t.Helper()
	r := &recorder{}
	c, err := New(song, timing.MustJudge(timing.DefaultTolerance), b, r)
	if nil != err {
		t.Fatal(err)
	}
	if err := c.Load(&game.Chart{Song: song, Notes: notes}); nil != err {
		t.Fatal(err)
	}
	return c, r
}

func TestHitPerfect(t *testing.T) {
	c, r := newConductor(t, nil, game.ChartNote{Lane: game.Up, Beat: 4})
	beat := clock.BeatFromTime(2.05, song.BPM)

	c.Tick(beat)
	out := c.HandleInput(game.Up, beat)

	if out.Kind != Hit || out.Tier != game.Perfect {
		t.Fatalf("expected a Perfect hit, got %v %v", out.Kind, out.Tier)
	}
	if math.Abs(out.Offset-0.05) > 1e-9 {
		t.Fatalf("expected a 50ms offset, got %v", out.Offset)
	}
	if out.Note.Beat != 12 {
		t.Fatalf("expected the note recycled to beat 12, got %v", out.Note.Beat)
	}
	if c.Notes(game.Up)[0] != out.Note {
		t.Fatal("the hit note is not back in the lane")
	}
	if len(r.events) != 1 || r.events[0] != (event{kind: "hit", lane: game.Up, tier: game.Perfect}) {
		t.Fatalf("unexpected events %v", r.events)
	}
}

func TestHitTiers(t *testing.T) {
	// Offsets in beats at 120bpm, half a second a beat
	tests := map[float64]game.Tier{
		4.1:  game.Perfect,
		3.7:  game.Good,
		4.2:  game.Good,
		4.45: game.Okay,
		3.4:  game.Miss,
		4.9:  game.Miss,
	}
	for beat, expected := range tests {
		c, r := newConductor(t, nil, game.ChartNote{Lane: game.Down, Beat: 4})
		out := c.HandleInput(game.Down, beat)
		if out.Kind != Hit || out.Tier != expected {
			t.Fatalf("beat %v: expected %v, got %v %v", beat, expected, out.Kind, out.Tier)
		}
		if expected == game.Miss {
			if r.events[0] != (event{kind: "miss", lane: game.Down}) {
				t.Fatalf("beat %v: expected a judged miss, got %v", beat, r.events)
			}
		} else if r.events[0].kind != "hit" {
			t.Fatalf("beat %v: expected a hit event, got %v", beat, r.events)
		}
	}
}

func TestTickTimesOutLateNote(t *testing.T) {
	c, r := newConductor(t, nil, game.ChartNote{Lane: game.Up, Beat: 4})

	for beat := 0.0; beat <= 5; beat += 0.25 {
		c.Tick(beat)
	}
	if len(r.events) != 0 {
		t.Fatalf("note timed out early: %v", r.events)
	}

	c.Tick(5.1)
	if len(r.events) != 1 || r.events[0] != (event{kind: "miss", lane: game.Up, timeout: true}) {
		t.Fatalf("expected a timeout miss, got %v", r.events)
	}
	if head := c.Notes(game.Up)[0]; head.Beat != 12 {
		t.Fatalf("expected the note recycled to beat 12, got %v", head.Beat)
	}
}

func TestTickGuardIsExclusive(t *testing.T) {
	c, r := newConductor(t, nil, game.ChartNote{Lane: game.Left, Beat: 2})
	c.Tick(3)
	if len(r.events) != 0 {
		t.Fatalf("note on the guard timed out: %v", r.events)
	}
	c.Tick(3.0001)
	if len(r.events) != 1 || !r.events[0].timeout {
		t.Fatalf("note past the guard did not time out: %v", r.events)
	}
}

func TestTickNeverRetiresFutureNotes(t *testing.T) {
	c, r := newConductor(t, nil, game.ChartNote{Lane: game.Right, Beat: 7})
	c.Tick(0)
	if len(r.events) != 0 || c.Notes(game.Right)[0].Beat != 7 {
		t.Fatalf("future note retired: %v", r.events)
	}
}

func TestTickBeforeInputRetiresLateNote(t *testing.T) {
	c, r := newConductor(t, &budget{}, game.ChartNote{Lane: game.Up, Beat: 4})
	c.Tick(5.2)
	out := c.HandleInput(game.Up, 5.2)
	if out.Kind == Hit {
		t.Fatal("a note past its window was hit")
	}
	if len(r.events) != 1 || !r.events[0].timeout {
		t.Fatalf("expected only the timeout, got %v", r.events)
	}
}

func TestInputOutsideWindowPlaces(t *testing.T) {
	c, r := newConductor(t, &budget{left: 1}, game.ChartNote{Lane: game.Up, Beat: 6})
	out := c.HandleInput(game.Up, 2)
	if out.Kind != Placed {
		t.Fatalf("expected a placement, got %v", out.Kind)
	}
	notes := c.Notes(game.Up)
	if len(notes) != 2 || notes[0].Beat != 6 || notes[1].Beat != 2 {
		t.Fatalf("placed note should join the tail: %v", notes)
	}
	if r.events[0] != (event{kind: "placed", lane: game.Up}) {
		t.Fatalf("unexpected events %v", r.events)
	}
}

func TestPlacementWithoutBudget(t *testing.T) {
	c, r := newConductor(t, &budget{})
	out := c.HandleInput(game.Left, 3)
	if out.Kind != Rejected || out.Reason != NoBudget {
		t.Fatalf("expected Rejected(NoBudget), got %v(%v)", out.Kind, out.Reason)
	}
	if len(c.Notes(game.Left)) != 0 {
		t.Fatal("lane is not empty")
	}
	if len(r.events) != 0 {
		t.Fatalf("rejection emitted events %v", r.events)
	}
}

func TestPlacementOnSameBeat(t *testing.T) {
	b := &budget{left: 5}
	c, r := newConductor(t, b)
	first := c.HandleInput(game.Down, 3.5)
	second := c.HandleInput(game.Down, 3.5)

	if first.Kind != Placed {
		t.Fatalf("expected the first press to place, got %v", first.Kind)
	}
	if second.Kind != Rejected || second.Reason != DuplicateBeat {
		t.Fatalf("expected Rejected(DuplicateBeat), got %v(%v)", second.Kind, second.Reason)
	}
	if b.left != 4 {
		t.Fatalf("expected one placement charged, %d left", b.left)
	}
	if len(r.events) != 1 {
		t.Fatalf("expected one placed event, got %v", r.events)
	}
}

func TestPlacedNoteFoldsIntoLoop(t *testing.T) {
	c, _ := newConductor(t, nil)
	out := c.TryPlace(game.Right, 19.5)
	if out.Kind != Placed || out.Note.Beat != 3.5 {
		t.Fatalf("expected a note on beat 3.5, got %v", out.Note)
	}
	if out.Note.Owner != game.PlayerOwned || out.Note.Active {
		t.Fatalf("placed note should be player owned and inactive: %+v", out.Note)
	}
}

func TestPlacedNoteBecomesPlayableNextPass(t *testing.T) {
	c, r := newConductor(t, nil)
	c.TryPlace(game.Up, 4.3)

	// Sits out the current pass without consequence
	for beat := 4.3; beat < 12; beat += 0.1 {
		c.Tick(beat)
	}
	for _, e := range r.events {
		if e.kind == "miss" {
			t.Fatalf("inactive note missed: %v", r.events)
		}
	}
	head := c.Notes(game.Up)[0]
	if !head.Active || math.Abs(head.Beat-12.3) > 1e-9 {
		t.Fatalf("expected an armed note on beat 12.3, got %+v", head)
	}
	if out := c.HandleInput(game.Up, 12.3); out.Kind != Hit || out.Tier != game.Perfect {
		t.Fatalf("expected a Perfect hit, got %v %v", out.Kind, out.Tier)
	}
}

func TestPlacedNoteInLaterLoopCatchesUp(t *testing.T) {
	c, r := newConductor(t, nil)
	c.TryPlace(game.Up, 28.3)
	for beat := 28.3; beat < 30; beat += 0.05 {
		c.Tick(beat)
	}
	if len(r.events) != 1 {
		t.Fatalf("expected only the placement, got %v", r.events)
	}
	head := c.Notes(game.Up)[0]
	if !head.Active || math.Abs(head.Beat-36.3) > 1e-9 {
		t.Fatalf("expected an armed note on beat 36.3, got %+v", head)
	}
}

func TestSnap(t *testing.T) {
	r := &recorder{}
	c, err := New(song, timing.MustJudge(timing.DefaultTolerance), nil, r, WithSnap(1))
	if nil != err {
		t.Fatal(err)
	}
	first := c.TryPlace(game.Up, 5.2)
	second := c.TryPlace(game.Up, 5.9)
	if first.Note.Beat != 5 {
		t.Fatalf("expected beat 5, got %v", first.Note.Beat)
	}
	if second.Reason != DuplicateBeat {
		t.Fatalf("expected DuplicateBeat, got %v", second.Reason)
	}
}

func TestLoadRejectsDuplicates(t *testing.T) {
	c, err := New(song, timing.MustJudge(timing.DefaultTolerance), nil, nil)
	if nil != err {
		t.Fatal(err)
	}
	err = c.Load(&game.Chart{Song: song, Notes: []game.ChartNote{
		{Lane: game.Up, Beat: 1},
		{Lane: game.Up, Beat: 1},
	}})
	if errors.Cause(err) != ErrDuplicateNote {
		t.Fatalf("expected ErrDuplicateNote, got %v", err)
	}
	err = c.Load(&game.Chart{Song: song, Notes: []game.ChartNote{{Lane: game.Up, Beat: 8}}})
	if errors.Cause(err) != game.ErrOutOfLoop {
		t.Fatalf("expected ErrOutOfLoop, got %v", err)
	}
}

func TestNewValidation(t *testing.T) {
	j := timing.MustJudge(timing.DefaultTolerance)
	if _, err := New(game.Song{BPM: 0, LoopLength: 8}, j, nil, nil); errors.Cause(err) != game.ErrInvalidSong {
		t.Fatalf("expected ErrInvalidSong, got %v", err)
	}
	if _, err := New(song, nil, nil, nil); nil == err {
		t.Fatal("nil judge accepted")
	}
	if _, err := New(song, j, nil, nil, WithGuard(0)); nil == err {
		t.Fatal("zero guard accepted")
	}
}

func TestRotateEmptyLanePanics(t *testing.T) {
	c, _ := newConductor(t, nil)
	defer func() {
		if recover() == nil {
			t.Fatal("rotating an empty lane did not panic")
		}
	}()
	c.rotate(game.Up)
}

func TestStates(t *testing.T) {
	c, _ := newConductor(t, nil, game.ChartNote{Lane: game.Up, Beat: 4})
	if s := c.State(game.Down, 4); s != Idle {
		t.Fatalf("expected Idle, got %v", s)
	}
	if s := c.State(game.Up, 2); s != Waiting {
		t.Fatalf("expected Waiting, got %v", s)
	}
	if s := c.State(game.Up, 3.5); s != Armed {
		t.Fatalf("expected Armed, got %v", s)
	}
}

func TestLoopBoundary(t *testing.T) {
	c, r := newConductor(t, nil)
	c.LoopBoundary()
	if len(r.events) != 1 || r.events[0].kind != "loop" {
		t.Fatalf("expected a loop event, got %v", r.events)
	}
}

func TestReleaseIsIgnored(t *testing.T) {
	c, r := newConductor(t, nil, game.ChartNote{Lane: game.Up, Beat: 4})
	if out := c.HandleRelease(game.Up, 4); out.Kind != Ignored {
		t.Fatalf("expected release to be ignored, got %v", out.Kind)
	}
	if len(r.events) != 0 || c.Notes(game.Up)[0].Beat != 4 {
		t.Fatal("release changed the lane")
	}
}

func TestListenersFanOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	ls := Listeners{a, b}
	ls.OnHit(game.Up, game.Good)
	ls.OnMiss(game.Down, true)
	ls.OnNotePlaced(game.Left)
	ls.OnLoopBoundary()
	if len(a.events) != 4 || len(b.events) != 4 {
		t.Fatalf("expected 4 events each, got %d and %d", len(a.events), len(b.events))
	}
}

type owners struct {
	recorder
	owners []game.Owner
}

func (o *owners) OnOwnedHit(l game.Lane, owner game.Owner, tier game.Tier) {
	o.owners = append(o.owners, owner)
	o.OnHit(l, tier)
}

func TestHitCarriesTheNoteOwner(t *testing.T) {
	o, plain := &owners{}, &recorder{}
	c, err := New(song, timing.MustJudge(timing.DefaultTolerance), nil, Listeners{o, plain})
	if nil != err {
		t.Fatal(err)
	}
	chart := &game.Chart{Song: song, Notes: []game.ChartNote{
		{Lane: game.Up, Beat: 1, Owner: game.PlayerOwned},
		{Lane: game.Down, Beat: 1},
	}}
	if err := c.Load(chart); nil != err {
		t.Fatal(err)
	}

	c.HandleInput(game.Up, 1)
	c.HandleInput(game.Down, 1)
	if len(o.owners) != 2 || o.owners[0] != game.PlayerOwned || o.owners[1] != game.OpponentOwned {
		t.Fatalf("expected player then opponent, got %v", o.owners)
	}
	if len(plain.events) != 2 || plain.events[1].kind != "hit" {
		t.Fatalf("plain listener expected 2 hits, got %v", plain.events)
	}
}

func TestPlacementOffTheGridFindsRecycledNote(t *testing.T) {
	c, err := New(song, timing.MustJudge(timing.DefaultTolerance), nil, nil, WithSnap(0))
	if nil != err {
		t.Fatal(err)
	}
	if err := c.Load(&game.Chart{Song: song, Notes: []game.ChartNote{{Lane: game.Up, Beat: 0.1}}}); nil != err {
		t.Fatal(err)
	}

	c.Tick(1.2)
	if head := c.Notes(game.Up)[0]; math.Abs(head.Beat-8.1) > 1e-9 {
		t.Fatalf("expected the note recycled to 8.1, got %v", head.Beat)
	}
	if out := c.TryPlace(game.Up, 16.1); out.Kind != Rejected || out.Reason != DuplicateBeat {
		t.Fatalf("expected DuplicateBeat, got %v(%v)", out.Kind, out.Reason)
	}
	if len(c.Notes(game.Up)) != 1 {
		t.Fatalf("expected one note in the lane, got %d", len(c.Notes(game.Up)))
	}
}
