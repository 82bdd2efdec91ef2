package audio

import (
	"math"
	"math/rand"
	"testing"

	"github.com/samdwyer/goblinrun/internal/combat"
)

var (
	_ combat.Cues = (*Manager)(nil)
	_ Channel     = (*LoopChannel)(nil)
)

func newTestManager(volume float64) (*Manager, *MixerOutput) {
	out := NewMixerOutput()
	return NewWithOutput(out, volume, rand.New(rand.NewSource(1)), nil), out
}

func peak(samples [][2]float64) float64 {
	p := 0.0
	for _, s := range samples {
		p = max(p, math.Abs(s[0]))
	}
	return p
}

func TestLoopChannelLifecycle(t *testing.T) {
	m, out := newTestManager(DefaultVolume)
	ch := m.Overworld

	ch.Pause() // Not loaded; no effect
	if ch.Loaded() {
		t.Fatal("channel should not be loaded before Play")
	}

	ch.Play()
	if !ch.Playing() || out.Mixer.Len() != 1 {
		t.Fatalf("after Play: playing %v, mixer %d", ch.Playing(), out.Mixer.Len())
	}

	ch.Pause()
	if ch.Playing() || !ch.Loaded() {
		t.Error("paused channel should stay loaded but not play")
	}

	ch.Resume()
	if !ch.Playing() {
		t.Error("resumed channel should play")
	}

	ch.Play() // Already loaded; must not add a second copy
	if out.Mixer.Len() != 1 {
		t.Errorf("mixer holds %d streamers, want 1", out.Mixer.Len())
	}

	ch.Stop()
	if ch.Loaded() {
		t.Error("stopped channel should be unloaded")
	}
	buf := make([][2]float64, 64)
	out.Mixer.Stream(buf)
	if out.Mixer.Len() != 0 {
		t.Errorf("mixer should drop a stopped channel, holds %d", out.Mixer.Len())
	}

	ch.Stop() // Idempotent
}

func TestPausedChannelIsSilent(t *testing.T) {
	m, out := newTestManager(1)
	m.Combat.Play()

	buf := make([][2]float64, 4410)
	out.Mixer.Stream(buf)
	if peak(buf) == 0 {
		t.Fatal("playing combat music should produce sound")
	}

	m.Combat.Pause()
	out.Mixer.Stream(buf)
	if peak(buf) != 0 {
		t.Error("paused music should be silent")
	}
}

func TestMusicLoopsForever(t *testing.T) {
	s := overworldTheme(SampleRate)
	buf := make([][2]float64, 4096)

	// Several minutes of audio.
	for i := 0; i < 200; i++ {
		if n, ok := s.Stream(buf); !ok || n != len(buf) {
			t.Fatalf("melody ended after %d reads", i)
		}
	}
}

func TestEffectsAreFinite(t *testing.T) {
	tests := []struct {
		name string
		play func(*Manager)
	}{
		{"hit", (*Manager).PlayHit},
		{"success", (*Manager).PlaySuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, out := newTestManager(1)
			tt.play(m)
			if out.Mixer.Len() != 1 {
				t.Fatalf("mixer holds %d streamers, want 1", out.Mixer.Len())
			}

			buf := make([][2]float64, 1024)
			heard := false
			for i := 0; i < 100 && out.Mixer.Len() > 0; i++ {
				out.Mixer.Stream(buf)
				heard = heard || peak(buf) > 0
			}
			if !heard {
				t.Error("effect produced no sound")
			}
			if out.Mixer.Len() != 0 {
				t.Error("effect should finish and leave the mixer")
			}
		})
	}
}

func TestCueCounts(t *testing.T) {
	m, _ := newTestManager(DefaultVolume)
	m.PlayHit()
	m.PlayHit()
	m.PlaySuccess()

	if hits, successes := m.Stats(); hits != 2 || successes != 1 {
		t.Errorf("Stats() = %d, %d, want 2, 1", hits, successes)
	}
}

func TestVolumeSteps(t *testing.T) {
	m, _ := newTestManager(0.5)

	if got := m.VolumeUp(); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("VolumeUp() = %v, want 0.6", got)
	}
	for range 10 {
		m.VolumeUp()
	}
	if m.Volume() != 1 {
		t.Errorf("Volume() = %v, want clamp at 1", m.Volume())
	}
	for range 20 {
		m.VolumeDown()
	}
	if m.Volume() != 0 {
		t.Errorf("Volume() = %v, want clamp at 0", m.Volume())
	}
}

func TestVolumeAppliesToPlayingMusic(t *testing.T) {
	m, _ := newTestManager(1)
	m.Overworld.Play()

	if want := math.Log2(MusicGain); math.Abs(m.Overworld.vol.Volume-want) > 1e-9 {
		t.Errorf("music volume = %v, want %v", m.Overworld.vol.Volume, want)
	}

	m.SetVolume(0)
	if !m.Overworld.vol.Silent {
		t.Error("zero volume should silence music")
	}

	m.SetVolume(0.4)
	if want := math.Log2(0.4 * MusicGain); math.Abs(m.Overworld.vol.Volume-want) > 1e-9 {
		t.Errorf("music volume = %v, want %v", m.Overworld.vol.Volume, want)
	}
}

func TestDisabledManagerRunsSilently(t *testing.T) {
	m := New(false, 0.7, rand.New(rand.NewSource(1)), nil)
	defer m.Close()

	m.Overworld.Play()
	m.PlayHit()
	m.PlaySuccess()
	if !m.Overworld.Playing() {
		t.Error("channel state should still be tracked when silent")
	}
	if math.Abs(m.Volume()-0.7) > 1e-9 {
		t.Errorf("Volume() = %v, want 0.7", m.Volume())
	}
}
