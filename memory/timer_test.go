package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimer_divIncrementsWithSystemCounter(t *testing.T) {
	var timer Timer
	timer.Tick(256)
	assert.Equal(t, uint8(1), timer.DIV())
}

func TestTimer_writeResetsDiv(t *testing.T) {
	var timer Timer
	timer.Tick(512)
	timer.ResetDIV()
	assert.Equal(t, uint8(0), timer.DIV())
}

func TestTimer_timaOverflowReloadsFromTMAAfterOneCycleDelay(t *testing.T) {
	var timer Timer
	fired := false
	timer.InterruptHandler = func() { fired = true }
	timer.SetTMA(0x05)
	timer.SetTAC(0x05) // enabled, bit index 3 (every 16 cycles)
	timer.SetTIMA(0xFF)

	// Advance just enough to cross the falling edge that overflows TIMA.
	timer.Tick(16)
	assert.Equal(t, uint8(0x00), timer.TIMA())
	assert.False(t, fired, "interrupt is delayed by one cycle")

	timer.Tick(4)
	assert.Equal(t, uint8(0x05), timer.TIMA(), "TMA reload is visible immediately")
	assert.False(t, fired, "the interrupt itself fires one tick later")

	timer.Tick(1)
	assert.True(t, fired)
}
