// Package audio plays the synthesized music and sound effects.
package audio

import (
	"math"
	"math/rand"

	"github.com/gopxl/beep"
	"go.uber.org/zap"
)

const (
	// DefaultVolume is the starting master volume.
	DefaultVolume = 0.5
	// VolumeStep is how much one key press changes the master volume.
	VolumeStep = 0.1
	// MusicGain scales music relative to sound effects.
	MusicGain = 0.25

	minHitRate = 0.5
	maxHitRate = 1.5
)

// Manager owns the output device, the two music channels and the one-shot
// sound effects. It is only used from the game loop.
type Manager struct {
	out    Output
	rng    *rand.Rand
	log    *zap.Logger
	volume float64
	closer func()

	Overworld *LoopChannel
	Combat    *LoopChannel

	hits, successes int
}

// New opens the speaker when enabled. If the device cannot be opened the
// manager runs silently.
func New(enabled bool, volume float64, rng *rand.Rand, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if !enabled {
		log.Info("audio disabled")
		return NewWithOutput(discardOutput{}, volume, rng, log)
	}

	out, err := openSpeaker()
	if err != nil {
		log.Warn("audio unavailable, continuing without sound", zap.Error(err))
		return NewWithOutput(discardOutput{}, volume, rng, log)
	}

	m := NewWithOutput(out, volume, rng, log)
	m.closer = out.close
	log.Info("audio started", zap.Int("sample_rate", int(SampleRate)), zap.Float64("volume", m.volume))
	return m
}

// NewWithOutput creates a manager that writes to out.
func NewWithOutput(out Output, volume float64, rng *rand.Rand, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	volume = clampVolume(volume)
	return &Manager{
		out:       out,
		rng:       rng,
		log:       log,
		volume:    volume,
		Overworld: newLoopChannel("overworld", out, MusicGain, volume, func() beep.Streamer { return overworldTheme(SampleRate) }),
		Combat:    newLoopChannel("combat", out, MusicGain, volume, func() beep.Streamer { return combatTheme(SampleRate) }),
	}
}

// PlayHit plays the hit effect at a random playback rate so repeated hits
// do not sound identical.
func (m *Manager) PlayHit() {
	ratio := minHitRate + m.rng.Float64()*(maxHitRate-minHitRate)
	s := beep.ResampleRatio(4, ratio, hitSound(SampleRate))
	m.out.Add(newVolume(s, m.volume))
	m.hits++
}

// PlaySuccess plays the victory jingle.
func (m *Manager) PlaySuccess() {
	m.out.Add(newVolume(successSound(SampleRate), m.volume))
	m.successes++
}

// Volume returns the master volume in [0, 1].
func (m *Manager) Volume() float64 {
	return m.volume
}

// VolumeUp raises the master volume by one step and returns it.
func (m *Manager) VolumeUp() float64 {
	return m.SetVolume(m.volume + VolumeStep)
}

// VolumeDown lowers the master volume by one step and returns it.
func (m *Manager) VolumeDown() float64 {
	return m.SetVolume(m.volume - VolumeStep)
}

// SetVolume sets the master volume, clamped to [0, 1], and applies it to
// the music that is already playing.
func (m *Manager) SetVolume(v float64) float64 {
	m.volume = clampVolume(v)
	m.Overworld.setMaster(m.volume)
	m.Combat.setMaster(m.volume)
	m.log.Debug("volume changed", zap.Float64("volume", m.volume))
	return m.volume
}

// Stats returns how many hit and success effects were played.
func (m *Manager) Stats() (hits, successes int) {
	return m.hits, m.successes
}

// Close stops all audio and releases the device.
func (m *Manager) Close() {
	m.Overworld.Stop()
	m.Combat.Stop()
	if m.closer != nil {
		m.closer()
		m.closer = nil
	}
}

// clampVolume limits v to [0, 1] and snaps it to the step grid so repeated
// steps do not drift.
func clampVolume(v float64) float64 {
	v = math.Round(v/VolumeStep) * VolumeStep
	return min(max(v, 0), 1)
}
