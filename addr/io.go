// Package addr collects the MMIO and interrupt address constants shared by
// the cpu, memory, and video packages, so none of them need to hardcode
// magic numbers for the registers they read or write.
package addr

// gpu registers
const (
	// LCDC is the LCD Control register.
	LCDC uint16 = 0xFF40
	// STAT is the LCDC Status register.
	STAT uint16 = 0xFF41
	// SCY is the Scroll Y register.
	SCY uint16 = 0xFF42
	// SCX is the Scroll X register.
	SCX uint16 = 0xFF43
	// LY is the LCDC Y-Coordinate (readonly) register.
	LY uint16 = 0xFF44
	// LYC is the LY Compare register.
	LYC uint16 = 0xFF45
	// DMA is the DMA Transfer and Start register.
	DMA uint16 = 0xFF46
	// BGP is the BG Palette register.
	BGP uint16 = 0xFF47
	// OBP0 is Object Palette 0.
	OBP0 uint16 = 0xFF48
	// OBP1 is Object Palette 1.
	OBP1 uint16 = 0xFF49
	// WY is the Window Y Position register.
	WY uint16 = 0xFF4A
	// WX is the Window X Position register.
	WX uint16 = 0xFF4B
)

// OAM (Object Attribute Memory) - sprite data
const (
	// OAMStart is the start of OAM memory (40 sprites * 4 bytes each).
	OAMStart uint16 = 0xFE00
	// OAMEnd is the end of OAM memory.
	OAMEnd uint16 = 0xFE9F
)

// tile data and tile maps
const (
	// TileData0 is the start of unsigned tile data (tiles 0-255).
	TileData0 uint16 = 0x8000
	// TileData2 is the base for signed tile addressing (tiles -128..127).
	TileData2 uint16 = 0x9000

	// TileMap0 is background/window tile map 0.
	TileMap0 uint16 = 0x9800
	// TileMap1 is background/window tile map 1.
	TileMap1 uint16 = 0x9C00
)

// interrupts
const (
	// IF is the address for the Interrupt Flags register.
	IF uint16 = 0xFF0F
	// IE is the address for the Interrupt Enable register.
	IE uint16 = 0xFFFF
)

// joypad
const (
	// P1 is used to read the Joypad state.
	P1 uint16 = 0xFF00
)

// serial I/O
const (
	// SB (Serial transfer data) holds the byte shifted out/in on a transfer.
	SB uint16 = 0xFF01
	// SC (Serial transfer control). Bit 7 starts a transfer, bit 0 selects
	// the internal clock. On completion the Serial interrupt is requested.
	SC uint16 = 0xFF02
)

// timers
const (
	// DIV is the divider register. Any write resets it to 0.
	DIV uint16 = 0xFF04
	// TIMA is the timer counter register. Raises Timer on overflow.
	TIMA uint16 = 0xFF05
	// TMA is the value TIMA is reloaded with on overflow.
	TMA uint16 = 0xFF06
	// TAC is the timer control register (enable + clock select).
	TAC uint16 = 0xFF07
)

// Interrupt identifies one of the five DMG interrupt sources.
type Interrupt uint8

const (
	// VBlankInterrupt fires once per frame when the PPU enters VBlank.
	VBlankInterrupt Interrupt = 1 << 0
	// LCDSTATInterrupt fires on the STAT-selected PPU mode/LYC conditions.
	LCDSTATInterrupt Interrupt = 1 << 1
	// TimerInterrupt fires when TIMA overflows.
	TimerInterrupt Interrupt = 1 << 2
	// SerialInterrupt fires when a serial transfer completes.
	SerialInterrupt Interrupt = 1 << 3
	// JoypadInterrupt is the joypad source (IF/IE bit 4). Nothing in this
	// core requests it; button presses do not raise it.
	JoypadInterrupt Interrupt = 1 << 4
)

// Bit returns the IF/IE bit index (0-4) for the interrupt.
func (i Interrupt) Bit() uint8 {
	switch i {
	case VBlankInterrupt:
		return 0
	case LCDSTATInterrupt:
		return 1
	case TimerInterrupt:
		return 2
	case SerialInterrupt:
		return 3
	case JoypadInterrupt:
		return 4
	default:
		panic("addr: unknown interrupt")
	}
}

// Vector is the fixed dispatch address for the interrupt (0x40 + 8*bit).
func (i Interrupt) Vector() uint16 {
	return 0x40 + 8*uint16(i.Bit())
}
