package clock

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Source supplies elapsed playback seconds.
type Source interface {
	Elapsed() float64
}

// Manual is a source advanced by hand, for tests and replays.
type Manual struct {
	Seconds float64
}

func (m *Manual) Elapsed() float64 {
	return m.Seconds
}

func (m *Manual) Set(seconds float64) {
	m.Seconds = seconds
}

func (m *Manual) Advance(seconds float64) {
	m.Seconds += seconds
}

// Beep reads the position of a streamer that is playing on the speaker.
// Wrapping the streamer in beep.Loop makes the position wrap at the loop.
type Beep struct {
	Streamer beep.StreamSeeker
	Format   beep.Format
	Locked   bool // set when the streamer is not owned by the speaker
}

func (b *Beep) Elapsed() float64 {
	if !b.Locked {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return b.Format.SampleRate.D(b.Streamer.Position()).Seconds()
}

// Wall counts seconds since Start, and zero before it.
type Wall struct {
	Start time.Time
}

func (w *Wall) Elapsed() float64 {
	d := time.Since(w.Start)
	if d < 0 {
		return 0
	}
	return d.Seconds()
}

// Looper replays a track forever, its position wrapping to zero at the end.
type Looper struct {
	beep.StreamSeeker
}

func (l *Looper) Stream(samples [][2]float64) (n int, ok bool) {
	for len(samples) > 0 {
		sn, sok := l.StreamSeeker.Stream(samples)
		if !sok {
			if nil != l.StreamSeeker.Err() || 0 == l.StreamSeeker.Len() {
				return n, n > 0
			}
			if err := l.StreamSeeker.Seek(0); nil != err {
				return n, n > 0
			}
			continue
		}
		samples = samples[sn:]
		n += sn
	}
	return n, true
}
