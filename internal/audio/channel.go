package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Channel is a looping track that follows a game mode: it is paused when
// the mode is covered, resumed when it is uncovered and stopped when the
// mode exits.
type Channel interface {
	Play()
	Pause()
	Resume()
	Stop()
}

// LoopChannel plays one endless track through an Output.
type LoopChannel struct {
	name   string
	out    Output
	source func() beep.Streamer
	gain   float64 // Relative to the master volume
	master float64

	ctrl *beep.Ctrl
	vol  *effects.Volume
}

func newLoopChannel(name string, out Output, gain, master float64, source func() beep.Streamer) *LoopChannel {
	return &LoopChannel{
		name:   name,
		out:    out,
		source: source,
		gain:   gain,
		master: master,
	}
}

// Name returns the channel name.
func (c *LoopChannel) Name() string { return c.name }

// Play starts the track from the beginning, or unpauses it if it is
// already loaded.
func (c *LoopChannel) Play() {
	if c.ctrl != nil {
		c.Resume()
		return
	}
	c.vol = newVolume(c.source(), c.gain*c.master)
	c.ctrl = &beep.Ctrl{Streamer: c.vol}
	c.out.Add(c.ctrl)
}

// Pause holds the track at its current position.
func (c *LoopChannel) Pause() {
	if c.ctrl == nil {
		return
	}
	c.out.Lock()
	c.ctrl.Paused = true
	c.out.Unlock()
}

// Resume continues a paused track.
func (c *LoopChannel) Resume() {
	if c.ctrl == nil {
		return
	}
	c.out.Lock()
	c.ctrl.Paused = false
	c.out.Unlock()
}

// Stop unloads the track. The mixer drops it on its next read.
func (c *LoopChannel) Stop() {
	if c.ctrl == nil {
		return
	}
	c.out.Lock()
	c.ctrl.Streamer = nil
	c.out.Unlock()
	c.ctrl = nil
	c.vol = nil
}

// Playing reports whether the track is loaded and not paused.
func (c *LoopChannel) Playing() bool {
	return c.ctrl != nil && !c.ctrl.Paused
}

// Loaded reports whether the track is loaded, paused or not.
func (c *LoopChannel) Loaded() bool {
	return c.ctrl != nil
}

func (c *LoopChannel) setMaster(master float64) {
	c.master = master
	if c.vol == nil {
		return
	}
	c.out.Lock()
	setGain(c.vol, c.gain*master)
	c.out.Unlock()
}
