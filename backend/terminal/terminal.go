// Package terminal renders frames to a tcell terminal screen and reads
// keyboard input, grounded on the teacher's own tcell-based renderer.
package terminal

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/dmgcore/dmgcore/display"
	"github.com/dmgcore/dmgcore/memory"
	"github.com/dmgcore/dmgcore/video"
)

// shadeChars goes from lightest to darkest, matching display.Shade's
// ordering of DMG color index 0 (lightest) to 3 (darkest).
var shadeChars = []rune{' ', '░', '▒', '█'}

const (
	scaleX = 2
	scaleY = 1
)

// Renderer draws frames as blocks of shaded characters and reads keys into
// a Joypad. It satisfies both display.DisplaySink and display.InputSource.
type Renderer struct {
	screen tcell.Screen
	keys   map[tcell.Key]memory.JoypadKey
	runes  map[rune]memory.JoypadKey
	logger *slog.Logger
}

// New initializes a tcell screen sized for the DMG's 160x144 frame scaled
// by (scaleX, scaleY).
func New() (*Renderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.Clear()

	return &Renderer{
		screen: screen,
		logger: slog.Default(),
		keys: map[tcell.Key]memory.JoypadKey{
			tcell.KeyUp:    memory.JoypadUp,
			tcell.KeyDown:  memory.JoypadDown,
			tcell.KeyLeft:  memory.JoypadLeft,
			tcell.KeyRight: memory.JoypadRight,
			tcell.KeyEnter: memory.JoypadStart,
		},
		runes: map[rune]memory.JoypadKey{
			'z': memory.JoypadA,
			'x': memory.JoypadB,
			' ': memory.JoypadSelect,
		},
	}, nil
}

// Close tears down the terminal screen.
func (r *Renderer) Close() {
	r.screen.Fini()
}

// Present implements display.DisplaySink.
func (r *Renderer) Present(frame *video.FrameBuffer) {
	style := tcell.StyleDefault
	for y := 0; y < video.FramebufferHeight; y += scaleY {
		for x := 0; x < video.FramebufferWidth; x += scaleX {
			colorIndex := frame.GetPixel(x, y)
			ch := shadeChars[colorIndex&0x03]
			r.screen.SetContent(x/scaleX, y/scaleY, ch, nil, style)
		}
	}
	r.screen.Show()
}

// PollInto implements display.InputSource, draining every pending key
// event and updating pad accordingly.
func (r *Renderer) PollInto(pad *memory.Joypad) {
	for r.screen.HasPendingEvent() {
		ev := r.screen.PollEvent()
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}

		if jk, ok := r.keys[key.Key()]; ok {
			pad.Press(jk)
			continue
		}
		if jk, ok := r.runes[key.Rune()]; ok {
			pad.Press(jk)
		}
	}
}

var _ display.DisplaySink = (*Renderer)(nil)
var _ display.InputSource = (*Renderer)(nil)
