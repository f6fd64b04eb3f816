//go:build sdl2

// Package sdl2 renders frames to a native window via go-sdl2. It requires
// cgo and the SDL2 development libraries, so it is only built when the
// "sdl2" build tag is set; see sdl2_stub.go for the no-cgo fallback.
package sdl2

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/dmgcore/dmgcore/display"
	"github.com/dmgcore/dmgcore/memory"
	"github.com/dmgcore/dmgcore/video"
)

const windowScale = 4

// Renderer owns an SDL2 window and texture sized for the scaled DMG frame.
type Renderer struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	keys     map[sdl.Keycode]memory.JoypadKey
}

// New opens an SDL2 window titled title.
func New(title string) (*Renderer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl2: init: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		video.FramebufferWidth*windowScale, video.FramebufferHeight*windowScale, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("sdl2: create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return nil, fmt.Errorf("sdl2: create renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_STREAMING,
		video.FramebufferWidth, video.FramebufferHeight)
	if err != nil {
		return nil, fmt.Errorf("sdl2: create texture: %w", err)
	}

	return &Renderer{
		window:   window,
		renderer: renderer,
		texture:  texture,
		keys: map[sdl.Keycode]memory.JoypadKey{
			sdl.K_UP:     memory.JoypadUp,
			sdl.K_DOWN:   memory.JoypadDown,
			sdl.K_LEFT:   memory.JoypadLeft,
			sdl.K_RIGHT:  memory.JoypadRight,
			sdl.K_z:      memory.JoypadA,
			sdl.K_x:      memory.JoypadB,
			sdl.K_RETURN: memory.JoypadStart,
			sdl.K_RSHIFT: memory.JoypadSelect,
		},
	}, nil
}

// Close releases the window, renderer, and texture.
func (r *Renderer) Close() {
	r.texture.Destroy()
	r.renderer.Destroy()
	r.window.Destroy()
	sdl.Quit()
}

// Present implements display.DisplaySink.
func (r *Renderer) Present(frame *video.FrameBuffer) {
	pixels := make([]byte, video.FramebufferWidth*video.FramebufferHeight*4)
	for i, colorIndex := range frame.Pixels {
		shade := grayForIndex(colorIndex)
		pixels[i*4+0] = shade
		pixels[i*4+1] = shade
		pixels[i*4+2] = shade
		pixels[i*4+3] = 0xFF
	}
	r.texture.Update(nil, pixels, video.FramebufferWidth*4)
	r.renderer.Clear()
	r.renderer.Copy(r.texture, nil, nil)
	r.renderer.Present()
}

func grayForIndex(colorIndex uint8) byte {
	switch colorIndex & 0x03 {
	case 0:
		return 0xFF
	case 1:
		return 0xA8
	case 2:
		return 0x54
	default:
		return 0x00
	}
}

// PollInto implements display.InputSource.
func (r *Renderer) PollInto(pad *memory.Joypad) {
	for {
		event := sdl.PollEvent()
		if event == nil {
			return
		}
		switch e := event.(type) {
		case *sdl.KeyboardEvent:
			jk, ok := r.keys[e.Keysym.Sym]
			if !ok {
				continue
			}
			if e.State == sdl.PRESSED {
				pad.Press(jk)
			} else {
				pad.Release(jk)
			}
		}
	}
}

var _ display.DisplaySink = (*Renderer)(nil)
var _ display.InputSource = (*Renderer)(nil)
