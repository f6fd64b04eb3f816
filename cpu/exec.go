package cpu

import "github.com/dmgcore/dmgcore/addr"

// fetch8 reads the byte at PC and advances PC by one.
func (c *CPU) fetch8() uint8 {
	v := c.bus.Read(c.pc)
	c.pc++
	return v
}

// fetch16 reads the little-endian word at PC and advances PC by two.
func (c *CPU) fetch16() uint16 {
	low := c.fetch8()
	high := c.fetch8()
	return uint16(high)<<8 | uint16(low)
}

// Step executes exactly one instruction (or services a pending interrupt,
// or idles one instruction-slot while halted) and returns the number of
// T-states it took.
func (c *CPU) Step() (int, error) {
	if dispatched, dt := c.handleInterrupts(); dispatched {
		c.cycles += uint64(dt)
		return dt, nil
	}

	if c.halted {
		c.cycles += 4
		return 4, nil
	}

	if c.eiPending {
		c.eiPending = false
		c.interruptsEnabled = true
	}

	pc := c.pc
	opcode := c.fetch8()
	if c.haltBug {
		// The halt bug re-reads the same byte: undo the PC advance.
		c.pc--
		c.haltBug = false
	}
	c.currentOpcode = uint16(opcode)

	var dt int
	var err error
	if opcode == 0xCB {
		cb := c.fetch8()
		c.currentOpcode = 0xCB00 | uint16(cb)
		dt = c.executeCB(cb)
	} else {
		dt, err = c.execute(opcode, pc)
	}
	c.cycles += uint64(dt)
	return dt, err
}

// handleInterrupts checks IE & IF & 0x1F in priority order (VBlank, LCD
// STAT, Timer, Serial, Joypad) and, if IME is set and one is pending,
// pushes PC, jumps to the interrupt vector, clears IME and the IF bit, and
// returns the 20-cycle dispatch cost. It also wakes the CPU from HALT
// whenever any enabled interrupt is pending, independent of IME.
func (c *CPU) handleInterrupts() (bool, int) {
	ie := c.bus.Read(addr.IE)
	iflag := c.bus.Read(addr.IF)
	pending := ie & iflag & 0x1F
	if pending == 0 {
		return false, 0
	}

	if c.halted {
		c.halted = false
		if !c.interruptsEnabled {
			// Interrupt fires as a wake source but IME stays 0, so the
			// CPU resumes at the next instruction rather than dispatching.
			// Real hardware fails to advance PC past the following opcode
			// byte in this case, so it is fetched twice (the halt bug).
			c.haltBug = true
			return false, 0
		}
	}

	if !c.interruptsEnabled {
		return false, 0
	}

	ordered := []addr.Interrupt{
		addr.VBlankInterrupt,
		addr.LCDSTATInterrupt,
		addr.TimerInterrupt,
		addr.SerialInterrupt,
		addr.JoypadInterrupt,
	}
	for _, in := range ordered {
		bitMask := uint8(1) << in.Bit()
		if pending&bitMask == 0 {
			continue
		}
		c.interruptsEnabled = false
		c.bus.Write(addr.IF, iflag&^bitMask)
		c.pushStack(c.pc)
		c.pc = in.Vector()
		return true, 20
	}
	return false, 0
}
