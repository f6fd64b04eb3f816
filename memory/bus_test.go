package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmgcore/dmgcore/addr"
)

func TestBus_echoRAMMirrorsWorkRAM(t *testing.T) {
	bus := New()
	bus.Write(0xC010, 0x55)
	assert.Equal(t, uint8(0x55), bus.Read(0xE010))

	bus.Write(0xE020, 0x66)
	assert.Equal(t, uint8(0x66), bus.Read(0xC020))
}

func TestBus_ifAlwaysReadsUpperBitsHigh(t *testing.T) {
	bus := New()
	bus.Write(addr.IF, 0x01)
	assert.Equal(t, uint8(0xE1), bus.Read(addr.IF))
}

func TestBus_dmaCopiesToOAM(t *testing.T) {
	bus := New()
	for i := 0; i < 160; i++ {
		bus.Write(0xC000+uint16(i), uint8(i))
	}
	bus.Write(addr.DMA, 0xC0)

	for i := 0; i < 160; i++ {
		assert.Equal(t, uint8(i), bus.Read(addr.OAMStart+uint16(i)))
	}
}

func TestBus_joypadActiveLowProjection(t *testing.T) {
	bus := New()
	bus.Joypad.Press(JoypadA)

	bus.writeJoypad(0x10) // select action buttons (bit 5 low)
	p1 := bus.readJoypad()
	assert.Equal(t, uint8(0), p1&0x01, "A pressed reads as 0")
	assert.Equal(t, uint8(1), (p1>>1)&0x01, "B not pressed reads as 1")
}

func TestBus_bootMMIOIsSeeded(t *testing.T) {
	bus := New()
	assert.Equal(t, uint8(0x91), bus.Read(addr.LCDC))
	assert.Equal(t, uint8(0xFC), bus.Read(addr.BGP))
	assert.Equal(t, uint8(0xFF), bus.Read(addr.OBP0))
	assert.Equal(t, uint8(0x80), bus.Read(0xFF10))
	assert.Equal(t, uint8(0xF1), bus.Read(0xFF26))
}

func TestBus_requestInterruptSetsIFBit(t *testing.T) {
	bus := New()
	bus.RequestInterrupt(addr.TimerInterrupt)
	assert.Equal(t, uint8(0x04), bus.Read(addr.IF)&0x1F)
}
