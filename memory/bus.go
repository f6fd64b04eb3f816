// Package memory implements the DMG address bus: cartridge ROM/RAM via an
// MBC, video/work/high RAM, the joypad, timer, and serial MMIO regions, and
// OAM DMA.
package memory

import (
	"log/slog"

	"github.com/dmgcore/dmgcore/addr"
	"github.com/dmgcore/dmgcore/serial"
)

type region int

const (
	regionROM region = iota
	regionVRAM
	regionExtRAM
	regionWRAM
	regionEcho
	regionOAM
	regionUnused
	regionIO
	regionHRAM
)

// rtcTicker is implemented by MBC3; the Bus calls it every Tick so the
// clock advances with the rest of the machine.
type rtcTicker interface {
	Tick(cycles int)
}

// faulter is implemented by MBCs that can latch a fatal error (MBC3, on an
// out-of-range RTC register select).
type faulter interface {
	Err() error
}

// Bus is the DMG memory bus: it owns work/video/high RAM directly and
// delegates ROM/external-RAM accesses to the cartridge's MBC.
type Bus struct {
	cart *Cartridge
	mbc  MBC

	memory    []byte
	regionMap [256]region

	Joypad  Joypad
	Serial  serial.Port
	Timer   Timer

	joypadSelectButtons bool
	joypadSelectDpad    bool

	logger *slog.Logger
}

// New builds a Bus with no cartridge loaded (all ROM reads return 0xFF).
// It is mainly useful for CPU-only unit tests.
func New() *Bus {
	b := &Bus{
		memory: make([]byte, 0x10000),
		logger: slog.Default(),
	}
	b.Serial = serial.NewLogSink(func() { b.RequestInterrupt(addr.SerialInterrupt) })
	b.Timer.InterruptHandler = func() { b.RequestInterrupt(addr.TimerInterrupt) }
	b.initRegionMap()
	b.seedBootMMIO()
	return b
}

// seedBootMMIO preloads the sound and video registers to the values the DMG
// boot ROM leaves them in when it hands off to cartridge code at 0x0100.
// Everything else is left zeroed, matching the boot ROM's exit state.
func (b *Bus) seedBootMMIO() {
	b.memory[0xFF10] = 0x80
	b.memory[0xFF11] = 0xBF
	b.memory[0xFF12] = 0xF3
	b.memory[0xFF13] = 0xFF
	b.memory[0xFF14] = 0xBF
	b.memory[0xFF16] = 0x3F
	b.memory[0xFF17] = 0x00
	b.memory[0xFF18] = 0xFF
	b.memory[0xFF19] = 0xBF
	b.memory[0xFF1A] = 0x7F
	b.memory[0xFF1B] = 0xFF
	b.memory[0xFF1C] = 0x9F
	b.memory[0xFF1D] = 0xFF
	b.memory[0xFF1E] = 0xBF
	b.memory[0xFF20] = 0xFF
	b.memory[0xFF21] = 0x00
	b.memory[0xFF22] = 0x00
	b.memory[0xFF23] = 0xBF
	b.memory[0xFF24] = 0x77
	b.memory[0xFF25] = 0xF3
	b.memory[0xFF26] = 0xF1

	b.memory[addr.LCDC] = 0x91
	b.memory[addr.BGP] = 0xFC
	b.memory[addr.OBP0] = 0xFF
	b.memory[addr.OBP1] = 0xFF
}

// NewWithCartridge builds a Bus wired to the given cartridge's MBC.
func NewWithCartridge(cart *Cartridge) *Bus {
	b := New()
	b.cart = cart
	b.mbc = newMBC(cart)
	return b
}

func (b *Bus) initRegionMap() {
	for i := 0; i <= 0x7F; i++ {
		b.regionMap[i] = regionROM
	}
	for i := 0x80; i <= 0x9F; i++ {
		b.regionMap[i] = regionVRAM
	}
	for i := 0xA0; i <= 0xBF; i++ {
		b.regionMap[i] = regionExtRAM
	}
	for i := 0xC0; i <= 0xDF; i++ {
		b.regionMap[i] = regionWRAM
	}
	for i := 0xE0; i <= 0xFD; i++ {
		b.regionMap[i] = regionEcho
	}
	b.regionMap[0xFE] = regionOAM // also covers FEA0-FEFF "unused", handled in Read/Write
	b.regionMap[0xFF] = regionIO
}

// Tick advances the timer, serial port, and RTC (if present) by cycles.
func (b *Bus) Tick(cycles int) {
	b.Timer.Tick(cycles)
	b.Serial.Tick(cycles)
	if ticker, ok := b.mbc.(rtcTicker); ok {
		ticker.Tick(cycles)
	}
}

// RequestInterrupt sets the corresponding bit in IF (0xFF0F).
func (b *Bus) RequestInterrupt(interrupt addr.Interrupt) {
	b.memory[addr.IF] |= 1 << interrupt.Bit()
}

func (b *Bus) Read(address uint16) uint8 {
	switch b.regionMap[address>>8] {
	case regionROM:
		if b.mbc == nil {
			return 0xFF
		}
		return b.mbc.Read(address)
	case regionVRAM, regionWRAM:
		return b.memory[address]
	case regionExtRAM:
		if b.mbc == nil {
			return 0xFF
		}
		return b.mbc.Read(address)
	case regionEcho:
		return b.memory[address-0x2000]
	case regionOAM:
		if address <= addr.OAMEnd {
			return b.memory[address]
		}
		return 0xFF // 0xFEA0-0xFEFF is unused
	case regionIO:
		return b.readIO(address)
	default:
		return 0xFF
	}
}

func (b *Bus) Write(address uint16, value uint8) {
	switch b.regionMap[address>>8] {
	case regionROM:
		if b.mbc != nil {
			b.mbc.Write(address, value)
		}
	case regionVRAM, regionWRAM:
		b.memory[address] = value
	case regionExtRAM:
		if b.mbc != nil {
			b.mbc.Write(address, value)
		}
	case regionEcho:
		b.memory[address-0x2000] = value
	case regionOAM:
		if address <= addr.OAMEnd {
			b.memory[address] = value
		}
	case regionIO:
		b.writeIO(address, value)
	}
}

func (b *Bus) readIO(address uint16) uint8 {
	switch {
	case address == addr.P1:
		return b.readJoypad()
	case address == addr.SB || address == addr.SC:
		return b.Serial.Read(address)
	case address == addr.DIV:
		return b.Timer.DIV()
	case address == addr.TIMA:
		return b.Timer.TIMA()
	case address == addr.TMA:
		return b.Timer.TMA()
	case address == addr.TAC:
		return b.Timer.TAC()
	case address == addr.IF:
		return b.memory[addr.IF] | 0xE0
	case address >= 0xFF80 && address <= 0xFFFE:
		return b.memory[address]
	case address == addr.IE:
		return b.memory[addr.IE]
	default:
		return b.memory[address]
	}
}

func (b *Bus) writeIO(address uint16, value uint8) {
	switch {
	case address == addr.P1:
		b.writeJoypad(value)
	case address == addr.SB || address == addr.SC:
		b.Serial.Write(address, value)
	case address == addr.DIV:
		b.Timer.ResetDIV()
	case address == addr.TIMA:
		b.Timer.SetTIMA(value)
	case address == addr.TMA:
		b.Timer.SetTMA(value)
	case address == addr.TAC:
		b.Timer.SetTAC(value)
	case address == addr.DMA:
		b.performDMA(value)
	case address == addr.IF:
		b.memory[addr.IF] = value & 0x1F
	case address >= 0xFF80 && address <= 0xFFFE:
		b.memory[address] = value
	case address == addr.IE:
		b.memory[addr.IE] = value
	default:
		b.memory[address] = value
	}
}

// performDMA copies 160 bytes from value*0x100 into OAM. Real hardware
// takes 160 M-cycles and blocks most CPU memory access during the
// transfer; this core treats it as instantaneous (spec.md §4.2, §9).
func (b *Bus) performDMA(value uint8) {
	source := uint16(value) << 8
	for i := uint16(0); i < 160; i++ {
		b.memory[addr.OAMStart+i] = b.Read(source + i)
	}
}

func (b *Bus) readJoypad() uint8 {
	result := uint8(0xC0) // bits 6-7 always read high
	if !b.joypadSelectButtons {
		result |= 1 << 5
	}
	if !b.joypadSelectDpad {
		result |= 1 << 4
	}

	nibble := uint8(0x0F)
	if b.joypadSelectButtons {
		nibble &= b.Joypad.buttonNibble()
	}
	if b.joypadSelectDpad {
		nibble &= b.Joypad.dpadNibble()
	}
	return result | nibble
}

func (b *Bus) writeJoypad(value uint8) {
	b.joypadSelectButtons = value&(1<<5) == 0
	b.joypadSelectDpad = value&(1<<4) == 0
}

// Cartridge returns the loaded cartridge, or nil if none is loaded.
func (b *Bus) Cartridge() *Cartridge {
	return b.cart
}

// Err returns a fatal error latched by the MBC, if any (for example an
// out-of-range MBC3 RTC register select), or nil.
func (b *Bus) Err() error {
	if f, ok := b.mbc.(faulter); ok {
		return f.Err()
	}
	return nil
}
