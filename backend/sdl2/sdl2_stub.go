//go:build !sdl2

// Package sdl2 stub is built whenever the "sdl2" build tag is absent, so
// the rest of the module links without cgo or the SDL2 development
// libraries installed.
package sdl2

import (
	"errors"

	"github.com/dmgcore/dmgcore/memory"
	"github.com/dmgcore/dmgcore/video"
)

// ErrNotBuilt is returned by New when this binary was built without the
// sdl2 tag.
var ErrNotBuilt = errors.New("sdl2: backend not built (rebuild with -tags sdl2)")

// Renderer is an empty placeholder; New always fails on this build, so
// these methods exist only to satisfy display.DisplaySink/InputSource at
// the type level and are never reached.
type Renderer struct{}

// New always returns ErrNotBuilt.
func New(title string) (*Renderer, error) {
	return nil, ErrNotBuilt
}

func (*Renderer) Present(*video.FrameBuffer)  {}
func (*Renderer) PollInto(*memory.Joypad)     {}
func (*Renderer) Close()                      {}
