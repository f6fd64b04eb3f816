// Package cpu implements the Sharp LR35902 instruction set: the flat 8-bit
// register file, the base and CB-prefixed opcode tables, and interrupt
// dispatch.
package cpu

import (
	"github.com/dmgcore/dmgcore/bit"
	"github.com/dmgcore/dmgcore/memory"
)

// flag bit positions within the F register.
const (
	flagZ uint8 = 0x80
	flagN uint8 = 0x40
	flagH uint8 = 0x20
	flagC uint8 = 0x10
)

// CPU holds the full register file and execution state for one LR35902.
// Register pairs (BC, DE, HL, AF) are accessed through getter/setter
// helpers rather than a packed struct, matching how every opcode body in
// this package reads and writes them.
type CPU struct {
	a, f       uint8
	b, c       uint8
	d, e       uint8
	h, l       uint8
	sp, pc     uint16

	bus *memory.Bus

	interruptsEnabled bool
	eiPending         bool
	halted            bool
	haltBug           bool

	cycles uint64

	currentOpcode uint16
}

// New returns a CPU wired to bus, with registers in the documented DMG
// post-boot-ROM state.
func New(bus *memory.Bus) *CPU {
	c := &CPU{bus: bus}
	c.a = 0x01
	c.setF(0xB0)
	c.setBC(0x0013)
	c.setDE(0x00D8)
	c.setHL(0x014D)
	c.sp = 0xFFFE
	c.pc = 0x0100
	return c
}

// --- 16-bit register pair helpers ---

func (c *CPU) getAF() uint16 { return bit.Combine(c.a, c.f) }
func (c *CPU) getBC() uint16 { return bit.Combine(c.b, c.c) }
func (c *CPU) getDE() uint16 { return bit.Combine(c.d, c.e) }
func (c *CPU) getHL() uint16 { return bit.Combine(c.h, c.l) }

func (c *CPU) setAF(v uint16) { c.a = bit.High(v); c.setF(bit.Low(v)) }
func (c *CPU) setBC(v uint16) { c.b = bit.High(v); c.c = bit.Low(v) }
func (c *CPU) setDE(v uint16) { c.d = bit.High(v); c.e = bit.Low(v) }
func (c *CPU) setHL(v uint16) { c.h = bit.High(v); c.l = bit.Low(v) }

// setF writes F, masking its low nibble to zero: the lower four bits of F
// are unused and always read back as zero on real hardware.
func (c *CPU) setF(v uint8) { c.f = v & 0xF0 }

// --- flag helpers ---

func (c *CPU) setFlag(flag uint8)      { c.f = (c.f | flag) & 0xF0 }
func (c *CPU) clearFlag(flag uint8)    { c.f = (c.f &^ flag) & 0xF0 }
func (c *CPU) hasFlag(flag uint8) bool { return c.f&flag != 0 }

func (c *CPU) updateFlag(flag uint8, set bool) {
	if set {
		c.setFlag(flag)
	} else {
		c.clearFlag(flag)
	}
}

// DebugState formats a one-line register dump used in fatal error logs.
func (c *CPU) DebugState() string {
	return "AF=" + hex16(c.getAF()) + " BC=" + hex16(c.getBC()) +
		" DE=" + hex16(c.getDE()) + " HL=" + hex16(c.getHL()) +
		" SP=" + hex16(c.sp) + " PC=" + hex16(c.pc)
}

func hex16(v uint16) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{
		digits[(v>>12)&0xF], digits[(v>>8)&0xF],
		digits[(v>>4)&0xF], digits[v&0xF],
	})
}

// PC returns the current program counter (used by tests and debug tooling).
func (c *CPU) PC() uint16 { return c.pc }

// SP returns the current stack pointer.
func (c *CPU) SP() uint16 { return c.sp }

// Cycles returns the total number of T-states executed so far.
func (c *CPU) Cycles() uint64 { return c.cycles }

// Halted reports whether the CPU is in the HALT low-power state.
func (c *CPU) Halted() bool { return c.halted }

// InterruptsEnabled reports the current IME state.
func (c *CPU) InterruptsEnabled() bool { return c.interruptsEnabled }
