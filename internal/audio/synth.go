package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

func sample(wave WaveType, phase float64) float64 {
	switch wave {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 4*math.Abs(phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// tone is a single enveloped note of fixed length.
type tone struct {
	freq     float64
	wave     WaveType
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
	attack   int
	release  int
}

// newTone creates a note with a short linear attack and release.
func newTone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:    freq,
		wave:    wave,
		rate:    rate,
		total:   rate.N(d),
		attack:  rate.N(5 * time.Millisecond),
		release: rate.N(d / 3),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}
		val := sample(t.wave, t.phase) * envelopeAt(t.position, t.total, t.attack, t.release)
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelopeAt returns the gain of a linear attack/release envelope.
func envelopeAt(pos, total, attack, release int) float64 {
	gain := 1.0
	if attack > 0 && pos < attack {
		gain = float64(pos) / float64(attack)
	}
	if release > 0 && total-pos < release {
		gain = min(gain, float64(total-pos)/float64(release))
	}
	return gain
}

// note is one step of a melody. A zero frequency is a rest.
type note struct {
	freq  float64
	beats float64
}

// melody plays its notes in a loop forever.
type melody struct {
	notes []note
	beat  time.Duration
	wave  WaveType
	rate  beep.SampleRate

	index    int
	position int
	length   int
	phase    float64
}

func newMelody(notes []note, beat time.Duration, wave WaveType, rate beep.SampleRate) *melody {
	m := &melody{notes: notes, beat: beat, wave: wave, rate: rate}
	m.length = m.noteLength()
	return m
}

func (m *melody) noteLength() int {
	return max(1, m.rate.N(time.Duration(float64(m.beat)*m.notes[m.index].beats)))
}

func (m *melody) Stream(samples [][2]float64) (n int, ok bool) {
	attack := m.rate.N(4 * time.Millisecond)
	for i := range samples {
		if m.position >= m.length {
			m.index = (m.index + 1) % len(m.notes)
			m.position = 0
			m.length = m.noteLength()
		}

		cur := m.notes[m.index]
		val := 0.0
		if cur.freq > 0 {
			val = sample(m.wave, m.phase) * envelopeAt(m.position, m.length, attack, m.length/4)
			m.phase += cur.freq / float64(m.rate)
			m.phase -= math.Floor(m.phase)
		}
		samples[i][0] = val
		samples[i][1] = val
		m.position++
	}
	return len(samples), true
}

func (m *melody) Err() error { return nil }

// newVolume wraps s with a linear gain. math.Log2(0) is -Inf, so zero
// gain is expressed as silence.
func newVolume(s beep.Streamer, gain float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setGain(v, gain)
	return v
}

func setGain(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(gain)
	v.Silent = false
}

// Note frequencies used by the built-in tracks.
const (
	noteC4 = 261.63
	noteD4 = 293.66
	noteE4 = 329.63
	noteG4 = 392.00
	noteA4 = 440.00
	noteC5 = 523.25
	noteE3 = 164.81
	noteF3 = 174.61
	noteG3 = 196.00
	noteA3 = 220.00
	noteB3 = 246.94
)

// overworldTheme is a calm looping tune.
func overworldTheme(rate beep.SampleRate) beep.Streamer {
	return newMelody([]note{
		{noteC4, 1}, {noteE4, 1}, {noteG4, 1}, {noteE4, 1},
		{noteD4, 1}, {noteG4, 1}, {noteA4, 2},
		{noteG4, 1}, {noteE4, 1}, {noteC4, 1}, {noteD4, 1},
		{noteE4, 2}, {0, 2},
	}, 300*time.Millisecond, WaveTriangle, rate)
}

// combatTheme is a fast square-wave loop.
func combatTheme(rate beep.SampleRate) beep.Streamer {
	return newMelody([]note{
		{noteA3, 1}, {noteA3, 1}, {noteC4, 1}, {noteA3, 1},
		{noteG3, 1}, {noteG3, 1}, {noteB3, 1}, {noteG3, 1},
		{noteF3, 1}, {noteF3, 1}, {noteA3, 1}, {noteF3, 1},
		{noteE3, 1}, {noteE3, 1}, {noteG3, 1}, {noteB3, 1},
	}, 140*time.Millisecond, WaveSquare, rate)
}

// hitSound is a short descending thump.
func hitSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		newTone(220, 40*time.Millisecond, WaveSquare, rate),
		newTone(110, 80*time.Millisecond, WaveSquare, rate),
	)
}

// successSound is a rising arpeggio with an octave on top.
func successSound(rate beep.SampleRate) beep.Streamer {
	const d = 90 * time.Millisecond
	return beep.Mix(
		beep.Seq(
			newTone(noteC4, d, WaveSine, rate),
			newTone(noteE4, d, WaveSine, rate),
			newTone(noteG4, d, WaveSine, rate),
			newTone(noteC5, 3*d, WaveSine, rate),
		),
		newVolume(beep.Seq(
			beep.Silence(rate.N(3*d)),
			newTone(2*noteC5, 3*d, WaveSine, rate),
		), 0.3),
	)
}
