// Package display defines the collaborator interfaces a frontend
// implements to show frames and deliver input: DisplaySink turns a
// rendered frame into pixels on screen, InputSource polls host input into
// the emulated joypad. Neither the core emulation loop nor the video
// package depends on any concrete frontend.
package display

import (
	"github.com/dmgcore/dmgcore/memory"
	"github.com/dmgcore/dmgcore/video"
)

// DisplaySink receives a completed frame once per VBlank.
type DisplaySink interface {
	Present(frame *video.FrameBuffer)
}

// InputSource polls host input (keyboard, gamepad, ...) into pad.
type InputSource interface {
	PollInto(pad *memory.Joypad)
}

// Shade maps a DMG 2-bit color index to a grayscale level, 0 (darkest) to
// 255 (lightest). Index 0 is the lightest shade on real hardware.
func Shade(colorIndex uint8) uint8 {
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
