package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmgcore/dmgcore/addr"
	"github.com/dmgcore/dmgcore/memory"
)

func TestCPU_handleInterrupts_dispatchesVBlank(t *testing.T) {
	c := newTestCPU()
	c.interruptsEnabled = true
	c.bus.Write(addr.IE, 0x01)
	c.bus.Write(addr.IF, 0x01)

	dispatched, dt := c.handleInterrupts()
	assert.True(t, dispatched)
	assert.Equal(t, 20, dt)
	assert.Equal(t, uint16(0x40), c.pc)
	assert.False(t, c.interruptsEnabled)
	assert.Equal(t, uint8(0x00), c.bus.Read(addr.IF))
}

func TestCPU_handleInterrupts_priorityOrder(t *testing.T) {
	c := newTestCPU()
	c.interruptsEnabled = true
	c.bus.Write(addr.IE, 0x1F)
	c.bus.Write(addr.IF, 0x1F)

	dispatched, _ := c.handleInterrupts()
	assert.True(t, dispatched)
	assert.Equal(t, uint16(0x40), c.pc)
	assert.Equal(t, uint8(0xFE), c.bus.Read(addr.IF))
}

func TestCPU_handleInterrupts_notServicedWhenIMEOff(t *testing.T) {
	c := newTestCPU()
	c.interruptsEnabled = false
	c.bus.Write(addr.IE, 0x01)
	c.bus.Write(addr.IF, 0x01)

	dispatched, _ := c.handleInterrupts()
	assert.False(t, dispatched)
	assert.NotEqual(t, uint16(0x40), c.pc)
}

func TestCPU_EI_hasOneInstructionDelay(t *testing.T) {
	c := newTestCPU()
	c.interruptsEnabled = false
	_, _ = c.execute(0xFB, c.pc) // EI
	assert.True(t, c.eiPending)
	assert.False(t, c.interruptsEnabled)
}

func TestCPU_DI_clearsImmediately(t *testing.T) {
	c := newTestCPU()
	c.interruptsEnabled = true
	_, _ = c.execute(0xF3, c.pc) // DI
	assert.False(t, c.interruptsEnabled)
}

func TestCPU_RETI_popsAndEnablesInterrupts(t *testing.T) {
	c := newTestCPU()
	c.pushStack(0xABCD)
	dt, err := c.execute(0xD9, c.pc)
	assert.NoError(t, err)
	assert.Equal(t, 16, dt)
	assert.Equal(t, uint16(0xABCD), c.pc)
	assert.True(t, c.interruptsEnabled)
}

func TestCPU_haltBug_duplicatesNextFetch(t *testing.T) {
	bus := memory.New()
	c := New(bus)
	c.pc = 0xC000
	c.bus.Write(0xC000, 0x3C) // INC A, fetched twice by the halt bug
	c.halted = true
	c.interruptsEnabled = false
	c.bus.Write(addr.IE, 0x01)
	c.bus.Write(addr.IF, 0x01)

	dt, err := c.Step() // wakes from HALT, triggers the halt bug, no dispatch
	assert.NoError(t, err)
	assert.Equal(t, 4, dt)
	assert.False(t, c.halted)
	assert.Equal(t, uint8(0x02), c.a) // INC A executed once during this Step

	dt2, err2 := c.Step() // the duplicated fetch executes INC A again
	assert.NoError(t, err2)
	assert.Equal(t, 4, dt2)
	assert.Equal(t, uint8(0x03), c.a)
}

func TestCPU_interruptTiming_twentyCycles(t *testing.T) {
	c := newTestCPU()
	c.interruptsEnabled = true
	c.bus.Write(addr.IE, 0x01)
	c.bus.Write(addr.IF, 0x01)

	before := c.cycles
	dt, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, 20, dt)
	assert.Equal(t, before+20, c.cycles)
}
