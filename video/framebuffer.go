// Package video implements the PPU: the scanline mode state machine, the
// background/window/sprite compositor, and the 2-bit-index framebuffer it
// renders into. Turning those indices into grays or RGBA is the display
// collaborator's job (see the display package), not the PPU's.
package video

const (
	// FramebufferWidth is the DMG's visible screen width in pixels.
	FramebufferWidth = 160
	// FramebufferHeight is the DMG's visible screen height in pixels.
	FramebufferHeight = 144
)

// FrameBuffer holds one rendered frame as 2-bit palette indices (0-3).
type FrameBuffer struct {
	Pixels [FramebufferWidth * FramebufferHeight]uint8
}

// NewFrameBuffer returns an all-zero (palette index 0) framebuffer.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// SetPixel writes a 2-bit color index at (x, y).
func (f *FrameBuffer) SetPixel(x, y int, colorIndex uint8) {
	if x < 0 || x >= FramebufferWidth || y < 0 || y >= FramebufferHeight {
		return
	}
	f.Pixels[y*FramebufferWidth+x] = colorIndex & 0x03
}

// GetPixel reads the 2-bit color index at (x, y).
func (f *FrameBuffer) GetPixel(x, y int) uint8 {
	if x < 0 || x >= FramebufferWidth || y < 0 || y >= FramebufferHeight {
		return 0
	}
	return f.Pixels[y*FramebufferWidth+x]
}

// Clear resets every pixel to palette index 0.
func (f *FrameBuffer) Clear() {
	for i := range f.Pixels {
		f.Pixels[i] = 0
	}
}
