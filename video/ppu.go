package video

import (
	"log/slog"

	"github.com/dmgcore/dmgcore/addr"
	"github.com/dmgcore/dmgcore/bit"
	"github.com/dmgcore/dmgcore/memory"
)

// Mode is one of the four PPU scanline phases.
type Mode int

const (
	ModeHBlank Mode = iota
	ModeVBlank
	ModeOAMScan
	ModePixelTransfer
)

const (
	oamScanCycles      = 80
	pixelTransferCycles = 172
	hblankCycles        = 204
	scanlineCycles      = 456
	visibleLines        = 144
	totalLines          = 154
)

// LCDC bit positions.
const (
	lcdcDisplayEnable       = 7
	lcdcWindowTileMapSelect = 6
	lcdcWindowEnable        = 5
	lcdcTileDataSelect      = 4
	lcdcBGTileMapSelect     = 3
	lcdcSpriteSize          = 2
	lcdcSpriteEnable        = 1
	lcdcBGEnable            = 0
)

// STAT bit positions.
const (
	statLYCInterrupt    = 6
	statOAMInterrupt    = 5
	statVBlankInterrupt = 4
	statHBlankInterrupt = 3
	statLYCCoincidence  = 2
)

// PPU implements the scanline renderer: the mode state machine and the
// background/window/sprite compositor.
type PPU struct {
	bus *memory.Bus

	framebuffer *FrameBuffer
	bgIndex     [FramebufferWidth]uint8
	priority    SpritePriorityBuffer

	mode           Mode
	modeCycles     int
	windowLine     int
	scanlineLatched bool

	logger *slog.Logger
}

// New returns a PPU bound to bus, starting in VBlank at LY=144 (the DMG
// boot ROM leaves the display mid-VBlank).
func New(bus *memory.Bus) *PPU {
	p := &PPU{
		bus:         bus,
		framebuffer: NewFrameBuffer(),
		mode:        ModeVBlank,
		logger:      slog.Default(),
	}
	p.priority.Clear()
	p.setLY(visibleLines)
	p.setMode(ModeVBlank)
	return p
}

// FrameBuffer returns the PPU's backing framebuffer (stable across calls;
// its contents change in place as scanlines render).
func (p *PPU) FrameBuffer() *FrameBuffer {
	return p.framebuffer
}

func (p *PPU) lcdc() uint8 { return p.bus.Read(addr.LCDC) }
func (p *PPU) ly() uint8   { return p.bus.Read(addr.LY) }
func (p *PPU) lyc() uint8  { return p.bus.Read(addr.LYC) }

func (p *PPU) lcdEnabled() bool {
	return bit.IsSet(lcdcDisplayEnable, p.lcdc())
}

// Tick advances the PPU by cycles T-states, running the mode state machine
// and, once per scanline, the compositor. The mode clock and LY keep
// advancing even while the LCD is disabled (LCDC bit 7 clear); only the
// pixel compositor itself is gated on that bit, in drawScanline.
func (p *PPU) Tick(cycles int) {
	p.modeCycles += cycles

	switch p.mode {
	case ModeOAMScan:
		if p.modeCycles >= oamScanCycles {
			p.modeCycles -= oamScanCycles
			p.scanlineLatched = false
			p.setMode(ModePixelTransfer)
		}
	case ModePixelTransfer:
		if !p.scanlineLatched {
			p.drawScanline()
			p.scanlineLatched = true
		}
		if p.modeCycles >= pixelTransferCycles {
			p.modeCycles -= pixelTransferCycles
			p.setMode(ModeHBlank)
		}
	case ModeHBlank:
		if p.modeCycles >= hblankCycles {
			p.modeCycles -= hblankCycles
			p.advanceLine()
		}
	case ModeVBlank:
		if p.modeCycles >= scanlineCycles {
			p.modeCycles -= scanlineCycles
			p.advanceVBlankLine()
		}
	}
}

func (p *PPU) advanceLine() {
	line := int(p.ly()) + 1
	if line == visibleLines {
		p.setLY(uint8(line))
		p.setMode(ModeVBlank)
		p.bus.RequestInterrupt(addr.VBlankInterrupt)
		if bit.IsSet(statVBlankInterrupt, p.bus.Read(addr.STAT)) {
			p.bus.RequestInterrupt(addr.LCDSTATInterrupt)
		}
		p.windowLine = 0
		return
	}
	p.setLY(uint8(line))
	p.setMode(ModeOAMScan)
}

func (p *PPU) advanceVBlankLine() {
	line := int(p.ly()) + 1
	if line >= totalLines {
		p.setLY(0)
		p.setMode(ModeOAMScan)
		p.windowLine = 0
		return
	}
	p.setLY(uint8(line))
}

func (p *PPU) setMode(mode Mode) {
	p.mode = mode
	stat := p.bus.Read(addr.STAT)
	stat = stat&^0x03 | uint8(mode)&0x03
	p.bus.Write(addr.STAT, stat)

	if mode == ModeOAMScan && bit.IsSet(statOAMInterrupt, stat) {
		p.bus.RequestInterrupt(addr.LCDSTATInterrupt)
	}
	if mode == ModeHBlank && bit.IsSet(statHBlankInterrupt, stat) {
		p.bus.RequestInterrupt(addr.LCDSTATInterrupt)
	}
}

func (p *PPU) setLY(line uint8) {
	p.bus.Write(addr.LY, line)
	p.compareLYToLYC()
}

func (p *PPU) compareLYToLYC() {
	stat := p.bus.Read(addr.STAT)
	if p.ly() == p.lyc() {
		stat |= 1 << statLYCCoincidence
		if bit.IsSet(statLYCInterrupt, stat) {
			p.bus.RequestInterrupt(addr.LCDSTATInterrupt)
		}
	} else {
		stat &^= 1 << statLYCCoincidence
	}
	p.bus.Write(addr.STAT, stat)
}

func (p *PPU) drawScanline() {
	line := int(p.ly())
	if !p.lcdEnabled() {
		for x := 0; x < FramebufferWidth; x++ {
			p.framebuffer.SetPixel(x, line, 0)
		}
		return
	}

	p.drawBackground(line)
	p.drawWindow(line)
	p.drawSprites(line)
}

func (p *PPU) drawBackground(line int) {
	lcdc := p.lcdc()
	if !bit.IsSet(lcdcBGEnable, lcdc) {
		for x := 0; x < FramebufferWidth; x++ {
			p.bgIndex[x] = 0
			p.framebuffer.SetPixel(x, line, 0)
		}
		return
	}

	scy := p.bus.Read(addr.SCY)
	scx := p.bus.Read(addr.SCX)
	tileMap := addr.TileMap0
	if bit.IsSet(lcdcBGTileMapSelect, lcdc) {
		tileMap = addr.TileMap1
	}

	for x := 0; x < FramebufferWidth; x++ {
		bgX := uint8(x) + scx
		bgY := uint8(line) + scy
		colorIndex := p.tilePixel(tileMap, lcdc, bgX, bgY)
		p.bgIndex[x] = colorIndex
		p.framebuffer.SetPixel(x, line, p.applyPalette(addr.BGP, colorIndex))
	}
}

func (p *PPU) drawWindow(line int) {
	lcdc := p.lcdc()
	if !bit.IsSet(lcdcWindowEnable, lcdc) {
		return
	}

	wy := int(p.bus.Read(addr.WY))
	wx := int(p.bus.Read(addr.WX)) - 7
	if line < wy {
		return
	}

	tileMap := addr.TileMap0
	if bit.IsSet(lcdcWindowTileMapSelect, lcdc) {
		tileMap = addr.TileMap1
	}

	rendered := false
	for x := 0; x < FramebufferWidth; x++ {
		winX := x - wx
		if winX < 0 {
			continue
		}
		rendered = true
		colorIndex := p.tilePixel(tileMap, lcdc, uint8(winX), uint8(p.windowLine))
		p.bgIndex[x] = colorIndex
		p.framebuffer.SetPixel(x, line, p.applyPalette(addr.BGP, colorIndex))
	}
	if rendered {
		p.windowLine++
	}
}

// tilePixel resolves the 2-bit color index for tile-space coordinates
// (tileX, tileY), honoring the LCDC tile-data addressing mode.
func (p *PPU) tilePixel(tileMapBase uint16, lcdc uint8, tileX, tileY uint8) uint8 {
	tileCol := uint16(tileX / 8)
	tileRow := uint16(tileY / 8)
	tileMapAddr := tileMapBase + tileRow*32 + tileCol
	tileNum := p.bus.Read(tileMapAddr)

	var tileAddr uint16
	if bit.IsSet(lcdcTileDataSelect, lcdc) {
		tileAddr = addr.TileData0 + uint16(tileNum)*16
	} else {
		tileAddr = uint16(int32(addr.TileData2) + int32(int8(tileNum))*16)
	}

	rowAddr := tileAddr + uint16(tileY%8)*2
	low := p.bus.Read(rowAddr)
	high := p.bus.Read(rowAddr + 1)

	bitIndex := 7 - (tileX % 8)
	lo := bit.GetBitValue(bitIndex, low)
	hi := bit.GetBitValue(bitIndex, high)
	return hi<<1 | lo
}

func (p *PPU) applyPalette(paletteAddr uint16, colorIndex uint8) uint8 {
	palette := p.bus.Read(paletteAddr)
	return bit.ExtractBits(palette, colorIndex*2+1, colorIndex*2)
}

type oamEntry struct {
	index int
	y, x  int
	tile  uint8
	attrs uint8
}

func (p *PPU) drawSprites(line int) {
	lcdc := p.lcdc()
	if !bit.IsSet(lcdcSpriteEnable, lcdc) {
		return
	}

	height := 8
	if bit.IsSet(lcdcSpriteSize, lcdc) {
		height = 16
	}

	var selected []oamEntry
	for i := 0; i < 40 && len(selected) < 10; i++ {
		base := addr.OAMStart + uint16(i)*4
		y := int(p.bus.Read(base)) - 16
		if line < y || line >= y+height {
			continue
		}
		x := int(p.bus.Read(base+1)) - 8
		selected = append(selected, oamEntry{
			index: i,
			y:     y,
			x:     x,
			tile:  p.bus.Read(base + 2),
			attrs: p.bus.Read(base + 3),
		})
	}

	p.priority.Clear()
	for _, s := range selected {
		for dx := 0; dx < 8; dx++ {
			px := s.x + dx
			if px < 0 || px >= FramebufferWidth {
				continue
			}
			p.priority.TryClaimPixel(px, s.index, s.x)
		}
	}

	for _, s := range selected {
		xFlip := bit.IsSet(5, s.attrs)
		yFlip := bit.IsSet(6, s.attrs)
		belowBG := bit.IsSet(7, s.attrs)
		paletteAddr := addr.OBP0
		if bit.IsSet(4, s.attrs) {
			paletteAddr = addr.OBP1
		}

		row := line - s.y
		if yFlip {
			row = height - 1 - row
		}

		tile := s.tile
		if height == 16 {
			tile &^= 0x01
		}
		tileAddr := addr.TileData0 + uint16(tile)*16 + uint16(row)*2
		low := p.bus.Read(tileAddr)
		high := p.bus.Read(tileAddr + 1)

		for dx := 0; dx < 8; dx++ {
			px := s.x + dx
			if px < 0 || px >= FramebufferWidth {
				continue
			}
			if p.priority.GetOwner(px) != s.index {
				continue
			}

			col := dx
			if xFlip {
				col = 7 - dx
			}
			bitIndex := uint8(7 - col)
			lo := bit.GetBitValue(bitIndex, low)
			hi := bit.GetBitValue(bitIndex, high)
			colorIndex := hi<<1 | lo
			if colorIndex == 0 {
				continue // transparent
			}
			if belowBG && p.bgIndex[px] != 0 {
				continue
			}
			p.framebuffer.SetPixel(px, line, p.applyPalette(paletteAddr, colorIndex))
		}
	}
}
