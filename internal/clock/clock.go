package clock

import (
	"math"

	"git.lost.host/meutraa/eotb/internal/game"
)

// BeatFromTime converts elapsed playback seconds into beats.
func BeatFromTime(elapsed, bpm float64) float64 {
	return elapsed / (60 / bpm)
}

// WrappedBeat folds a beat position into [0, loop).
func WrappedBeat(beat, loop float64) float64 {
	w := math.Mod(beat, loop)
	if w < 0 {
		w += loop
	}
	return w
}

// Crossed reports a wrap between two consecutive beats of a source.
func Crossed(prev, next float64) bool {
	return next < prev
}

// Sample is one observation of the playback position.
type Sample struct {
	Elapsed float64 // seconds as reported by the source
	Beat    float64 // absolute beat, never wraps
	Wrapped float64
	Loop    int  // completed loops
	Looped  bool // a boundary was crossed since the last sample
	Crossed int  // how many boundaries, more than one after a stall
}

// TimeKeeper turns a playback position into musical time. The source may
// wrap at the end of its track or keep counting, both give the same beats.
type TimeKeeper struct {
	song     game.Song
	last     float64 // last beat as the source reported it
	base     float64 // beats lost to the source wrapping
	loops    int
	observed bool
}

func NewTimeKeeper(song game.Song) *TimeKeeper {
	return &TimeKeeper{song: song}
}

func (k *TimeKeeper) Song() game.Song {
	return k.song
}

func (k *TimeKeeper) Observe(elapsed float64) Sample {
	loop := k.song.LoopLength
	beat := BeatFromTime(elapsed, k.song.BPM)
	if k.observed && Crossed(k.last, beat) {
		// The track is a whole number of loops and ended in the one
		// holding the last beat.
		k.base += (math.Floor(k.last/loop) + 1) * loop
	}
	k.last = beat

	absolute := k.base + beat
	loops := int(math.Floor(absolute / loop))
	if loops < 0 {
		loops = 0
	}
	crossed := 0
	if k.observed && loops > k.loops {
		crossed = loops - k.loops
	}
	k.loops = loops
	k.observed = true

	return Sample{
		Elapsed: elapsed,
		Beat:    absolute,
		Wrapped: WrappedBeat(absolute, loop),
		Loop:    loops,
		Looped:  crossed > 0,
		Crossed: crossed,
	}
}

// Reset forgets the last observed beat, as if playback restarted.
func (k *TimeKeeper) Reset() {
	k.last = 0
	k.base = 0
	k.loops = 0
	k.observed = false
}
