package video

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmgcore/dmgcore/addr"
	"github.com/dmgcore/dmgcore/memory"
)

func newTestPPU() (*PPU, *memory.Bus) {
	bus := memory.New()
	bus.Write(addr.LCDC, 0x91) // LCD on, BG on, tile data 0x8000, tilemap 0x9800
	p := New(bus)
	return p, bus
}

func TestPPU_modeMachine_oneFullScanline(t *testing.T) {
	p, bus := newTestPPU()
	bus.Write(addr.LY, 0)
	p.setLY(0)
	p.setMode(ModeOAMScan)

	p.Tick(oamScanCycles)
	assert.Equal(t, ModePixelTransfer, p.mode)

	p.Tick(pixelTransferCycles)
	assert.Equal(t, ModeHBlank, p.mode)

	p.Tick(hblankCycles)
	assert.Equal(t, ModeOAMScan, p.mode)
	assert.Equal(t, uint8(1), p.ly())
}

func TestPPU_fullFrame_sweepsLYAndReturnsToZero(t *testing.T) {
	p, _ := newTestPPU()
	p.setLY(0)
	p.setMode(ModeOAMScan)

	for i := 0; i < scanlineCycles*totalLines; i++ {
		p.Tick(1)
	}
	assert.Equal(t, uint8(0), p.ly())
}

func TestPPU_vblankInterruptFiresAtLine144(t *testing.T) {
	p, bus := newTestPPU()
	p.setLY(143)
	p.setMode(ModeHBlank)
	p.modeCycles = hblankCycles

	p.Tick(1)

	assert.Equal(t, uint8(144), p.ly())
	assert.NotZero(t, bus.Read(addr.IF)&uint8(addr.VBlankInterrupt))
}

func TestPPU_modeClockKeepsAdvancingWhileLCDDisabled(t *testing.T) {
	p, bus := newTestPPU()
	bus.Write(addr.LCDC, 0x00) // LCD off
	p.setLY(0)
	p.setMode(ModeOAMScan)

	p.Tick(oamScanCycles)
	assert.Equal(t, ModePixelTransfer, p.mode)

	p.Tick(pixelTransferCycles)
	assert.Equal(t, ModeHBlank, p.mode, "LY/mode advance even with the LCD off")

	p.Tick(hblankCycles)
	assert.Equal(t, uint8(1), p.ly())
}

func TestPPU_backgroundTile_readsPaletteIndex(t *testing.T) {
	p, bus := newTestPPU()
	// tile 0 at 0x8000, row 0: pattern 0b10000000 low, 0b00000000 high -> color 1
	bus.Write(0x8000, 0x80)
	bus.Write(0x8001, 0x00)
	bus.Write(addr.BGP, 0xE4) // identity palette: 3,2,1,0 -> 11 10 01 00

	colorIndex := p.tilePixel(addr.TileMap0, p.lcdc(), 0, 0)
	assert.Equal(t, uint8(1), colorIndex)
}

func TestSpritePriorityBuffer_lowerXWins(t *testing.T) {
	var buf SpritePriorityBuffer
	buf.Clear()
	assert.True(t, buf.TryClaimPixel(10, 5, 20))
	assert.False(t, buf.TryClaimPixel(10, 3, 25)) // higher X loses
	assert.True(t, buf.TryClaimPixel(10, 1, 15))  // lower X wins
	assert.Equal(t, 1, buf.GetOwner(10))
}

func TestSpritePriorityBuffer_tiedXLowerOAMIndexWins(t *testing.T) {
	var buf SpritePriorityBuffer
	buf.Clear()
	assert.True(t, buf.TryClaimPixel(5, 4, 30))
	assert.True(t, buf.TryClaimPixel(5, 2, 30))
	assert.False(t, buf.TryClaimPixel(5, 6, 30))
	assert.Equal(t, 2, buf.GetOwner(5))
}
