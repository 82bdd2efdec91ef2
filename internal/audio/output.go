package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the playback rate of every track.
const SampleRate = beep.SampleRate(44100)

// Output is where streamers end up. Lock and Unlock guard changes to
// streamers that are already playing.
type Output interface {
	Add(s ...beep.Streamer)
	Lock()
	Unlock()
}

// speakerOutput mixes everything into the system speaker.
type speakerOutput struct {
	mixer *beep.Mixer
}

// openSpeaker initializes the speaker and starts the master mixer.
func openSpeaker() (*speakerOutput, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	out := &speakerOutput{mixer: &beep.Mixer{}}
	speaker.Play(out.mixer)
	return out, nil
}

func (o *speakerOutput) Add(s ...beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(s...)
	speaker.Unlock()
}

func (o *speakerOutput) Lock()   { speaker.Lock() }
func (o *speakerOutput) Unlock() { speaker.Unlock() }

func (o *speakerOutput) close() {
	speaker.Lock()
	o.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// MixerOutput collects streamers in a mixer without playing them. It backs
// silent mode and lets callers pull samples themselves.
type MixerOutput struct {
	Mixer *beep.Mixer
}

// NewMixerOutput creates an unplayed mixer output.
func NewMixerOutput() *MixerOutput {
	return &MixerOutput{Mixer: &beep.Mixer{}}
}

func (o *MixerOutput) Add(s ...beep.Streamer) { o.Mixer.Add(s...) }
func (o *MixerOutput) Lock()                  {}
func (o *MixerOutput) Unlock()                {}

// discardOutput drops everything. Used when no audio device is available.
type discardOutput struct{}

func (discardOutput) Add(...beep.Streamer) {}
func (discardOutput) Lock()                {}
func (discardOutput) Unlock()              {}
