package dmgcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalROM returns a 32KiB ROM image with a valid-enough header for
// LoadCartridge (no banking, no RAM) and the given code at 0x0100.
func minimalROM(code ...uint8) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], code)
	rom[0x0147] = 0x00 // no MBC
	rom[0x0148] = 0x00 // 32KiB
	rom[0x0149] = 0x00 // no RAM
	return rom
}

func TestMachine_bootState(t *testing.T) {
	m, err := NewFromROM(minimalROM())
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0100), m.CPU.PC())
	assert.Equal(t, uint16(0xFFFE), m.CPU.SP())
}

func TestMachine_xorAClearsAccumulatorAndSetsZero(t *testing.T) {
	m, err := NewFromROM(minimalROM(0xAF)) // XOR A
	require.NoError(t, err)
	_, err = m.Step()
	require.NoError(t, err)
	assert.Contains(t, m.CPU.DebugState(), "AF=0080") // A=0x00, F=Z
}

func TestMachine_stepFrame_advancesFullBudget(t *testing.T) {
	// An infinite loop: JR -2 jumps back to itself forever.
	m, err := NewFromROM(minimalROM(0x18, 0xFE))
	require.NoError(t, err)

	total, err := m.StepFrame()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, CyclesPerFrame)
}

func TestMachine_illegalOpcodeSurfacesAsError(t *testing.T) {
	m, err := NewFromROM(minimalROM(0xD3)) // illegal
	require.NoError(t, err)
	_, err = m.Step()
	assert.Error(t, err)
}

func TestMachine_invalidRTCRegisterSelectSurfacesAsError(t *testing.T) {
	rom := minimalROM(
		0x3E, 0x05, // LD A,0x05
		0xEA, 0x00, 0x40, // LD (0x4000),A -- out-of-range RTC/RAM-bank select
	)
	rom[0x0147] = 0x10 // MBC3+RTC+Battery
	rom[0x0149] = 0x02 // 1 RAM bank

	m, err := NewFromROM(rom)
	require.NoError(t, err)

	_, err = m.Step() // LD A,0x05
	require.NoError(t, err)

	_, err = m.Step() // LD (0x4000),A
	assert.Error(t, err)
}

func TestMachine_unimplementedMBCRejected(t *testing.T) {
	rom := minimalROM()
	rom[0x0147] = 0x05 // MBC2, unimplemented
	_, err := NewFromROM(rom)
	assert.Error(t, err)
}
