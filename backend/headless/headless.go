// Package headless provides a no-op DisplaySink and InputSource, used by
// the CLI's --backend headless mode and by tests that run the machine
// without a real frontend attached.
package headless

import (
	"github.com/dmgcore/dmgcore/memory"
	"github.com/dmgcore/dmgcore/video"
)

// Sink discards every frame it is given.
type Sink struct {
	FramesPresented int
}

// Present implements display.DisplaySink.
func (s *Sink) Present(frame *video.FrameBuffer) {
	s.FramesPresented++
}

// Input never reports any button as pressed.
type Input struct{}

// PollInto implements display.InputSource.
func (Input) PollInto(pad *memory.Joypad) {}
