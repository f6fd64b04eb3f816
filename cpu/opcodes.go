package cpu

import "github.com/dmgcore/dmgcore/bit"

// execute dispatches a non-CB opcode. pc is the address the opcode byte
// was fetched from (used for IllegalOpcodeError).
func (c *CPU) execute(opcode uint8, pc uint16) (int, error) {
	switch opcode {
	case 0x00: // NOP
		return 4, nil
	case 0x01: // LD BC,nn
		c.setBC(c.fetch16())
		return 12, nil
	case 0x02: // LD (BC),A
		c.bus.Write(c.getBC(), c.a)
		return 8, nil
	case 0x03: // INC BC
		c.setBC(c.getBC() + 1)
		return 8, nil
	case 0x04: // INC B
		c.inc(&c.b)
		return 4, nil
	case 0x05: // DEC B
		c.dec(&c.b)
		return 4, nil
	case 0x06: // LD B,n
		c.b = c.fetch8()
		return 8, nil
	case 0x07: // RLCA
		c.rlc(&c.a)
		c.clearFlag(flagZ)
		return 4, nil
	case 0x08: // LD (nn),SP
		addr := c.fetch16()
		c.bus.Write(addr, bit.Low(c.sp))
		c.bus.Write(addr+1, bit.High(c.sp))
		return 20, nil
	case 0x09: // ADD HL,BC
		c.addToHL(c.getBC())
		return 8, nil
	case 0x0A: // LD A,(BC)
		c.a = c.bus.Read(c.getBC())
		return 8, nil
	case 0x0B: // DEC BC
		c.setBC(c.getBC() - 1)
		return 8, nil
	case 0x0C: // INC C
		c.inc(&c.c)
		return 4, nil
	case 0x0D: // DEC C
		c.dec(&c.c)
		return 4, nil
	case 0x0E: // LD C,n
		c.c = c.fetch8()
		return 8, nil
	case 0x0F: // RRCA
		c.rrc(&c.a)
		c.clearFlag(flagZ)
		return 4, nil

	case 0x10: // STOP
		c.fetch8() // the second STOP byte
		c.halted = true
		return 4, nil
	case 0x11: // LD DE,nn
		c.setDE(c.fetch16())
		return 12, nil
	case 0x12: // LD (DE),A
		c.bus.Write(c.getDE(), c.a)
		return 8, nil
	case 0x13: // INC DE
		c.setDE(c.getDE() + 1)
		return 8, nil
	case 0x14: // INC D
		c.inc(&c.d)
		return 4, nil
	case 0x15: // DEC D
		c.dec(&c.d)
		return 4, nil
	case 0x16: // LD D,n
		c.d = c.fetch8()
		return 8, nil
	case 0x17: // RLA
		c.rl(&c.a)
		c.clearFlag(flagZ)
		return 4, nil
	case 0x18: // JR n
		c.jr(int8(c.fetch8()))
		return 12, nil
	case 0x19: // ADD HL,DE
		c.addToHL(c.getDE())
		return 8, nil
	case 0x1A: // LD A,(DE)
		c.a = c.bus.Read(c.getDE())
		return 8, nil
	case 0x1B: // DEC DE
		c.setDE(c.getDE() - 1)
		return 8, nil
	case 0x1C: // INC E
		c.inc(&c.e)
		return 4, nil
	case 0x1D: // DEC E
		c.dec(&c.e)
		return 4, nil
	case 0x1E: // LD E,n
		c.e = c.fetch8()
		return 8, nil
	case 0x1F: // RRA
		c.rr(&c.a)
		c.clearFlag(flagZ)
		return 4, nil

	case 0x20: // JR NZ,n
		offset := int8(c.fetch8())
		if !c.hasFlag(flagZ) {
			c.jr(offset)
			return 12, nil
		}
		return 8, nil
	case 0x21: // LD HL,nn
		c.setHL(c.fetch16())
		return 12, nil
	case 0x22: // LD (HL+),A
		c.bus.Write(c.getHL(), c.a)
		c.setHL(c.getHL() + 1)
		return 8, nil
	case 0x23: // INC HL
		c.setHL(c.getHL() + 1)
		return 8, nil
	case 0x24: // INC H
		c.inc(&c.h)
		return 4, nil
	case 0x25: // DEC H
		c.dec(&c.h)
		return 4, nil
	case 0x26: // LD H,n
		c.h = c.fetch8()
		return 8, nil
	case 0x27: // DAA
		c.daa()
		return 4, nil
	case 0x28: // JR Z,n
		offset := int8(c.fetch8())
		if c.hasFlag(flagZ) {
			c.jr(offset)
			return 12, nil
		}
		return 8, nil
	case 0x29: // ADD HL,HL
		c.addToHL(c.getHL())
		return 8, nil
	case 0x2A: // LD A,(HL+)
		c.a = c.bus.Read(c.getHL())
		c.setHL(c.getHL() + 1)
		return 8, nil
	case 0x2B: // DEC HL
		c.setHL(c.getHL() - 1)
		return 8, nil
	case 0x2C: // INC L
		c.inc(&c.l)
		return 4, nil
	case 0x2D: // DEC L
		c.dec(&c.l)
		return 4, nil
	case 0x2E: // LD L,n
		c.l = c.fetch8()
		return 8, nil
	case 0x2F: // CPL
		c.a = ^c.a
		c.setFlag(flagN)
		c.setFlag(flagH)
		return 4, nil

	case 0x30: // JR NC,n
		offset := int8(c.fetch8())
		if !c.hasFlag(flagC) {
			c.jr(offset)
			return 12, nil
		}
		return 8, nil
	case 0x31: // LD SP,nn
		c.sp = c.fetch16()
		return 12, nil
	case 0x32: // LD (HL-),A
		c.bus.Write(c.getHL(), c.a)
		c.setHL(c.getHL() - 1)
		return 8, nil
	case 0x33: // INC SP
		c.sp++
		return 8, nil
	case 0x34: // INC (HL)
		v := c.bus.Read(c.getHL())
		c.inc(&v)
		c.bus.Write(c.getHL(), v)
		return 12, nil
	case 0x35: // DEC (HL)
		v := c.bus.Read(c.getHL())
		c.dec(&v)
		c.bus.Write(c.getHL(), v)
		return 12, nil
	case 0x36: // LD (HL),n
		c.bus.Write(c.getHL(), c.fetch8())
		return 12, nil
	case 0x37: // SCF
		c.clearFlag(flagN)
		c.clearFlag(flagH)
		c.setFlag(flagC)
		return 4, nil
	case 0x38: // JR C,n
		offset := int8(c.fetch8())
		if c.hasFlag(flagC) {
			c.jr(offset)
			return 12, nil
		}
		return 8, nil
	case 0x39: // ADD HL,SP
		c.addToHL(c.sp)
		return 8, nil
	case 0x3A: // LD A,(HL-)
		c.a = c.bus.Read(c.getHL())
		c.setHL(c.getHL() - 1)
		return 8, nil
	case 0x3B: // DEC SP
		c.sp--
		return 8, nil
	case 0x3C: // INC A
		c.inc(&c.a)
		return 4, nil
	case 0x3D: // DEC A
		c.dec(&c.a)
		return 4, nil
	case 0x3E: // LD A,n
		c.a = c.fetch8()
		return 8, nil
	case 0x3F: // CCF
		c.clearFlag(flagN)
		c.clearFlag(flagH)
		c.updateFlag(flagC, !c.hasFlag(flagC))
		return 4, nil

	// 0x40-0x7F: LD r,r' (and LD r,(HL) / LD (HL),r), with 0x76 = HALT.
	case 0x76: // HALT
		c.halted = true
		return 4, nil

	default:
		if opcode >= 0x40 && opcode <= 0x7F {
			return c.executeLDBlock(opcode), nil
		}
		if opcode >= 0x80 && opcode <= 0xBF {
			return c.executeALUBlock(opcode), nil
		}
		return c.executeMisc(opcode, pc)
	}
}

// registerPointer returns a pointer to the 8-bit register selected by a
// 3-bit operand field (0=B,1=C,2=D,3=E,4=H,5=L,7=A). Index 6 ((HL)) must
// be handled by the caller since it needs bus access.
func (c *CPU) registerPointer(index uint8) *uint8 {
	switch index & 0x07 {
	case 0:
		return &c.b
	case 1:
		return &c.c
	case 2:
		return &c.d
	case 3:
		return &c.e
	case 4:
		return &c.h
	case 5:
		return &c.l
	case 7:
		return &c.a
	default:
		return nil
	}
}

// executeLDBlock implements the 0x40-0x7F LD r,r' block (0x76 is handled
// as HALT before reaching here).
func (c *CPU) executeLDBlock(opcode uint8) int {
	dstIdx := (opcode >> 3) & 0x07
	srcIdx := opcode & 0x07

	var value uint8
	if srcIdx == 6 {
		value = c.bus.Read(c.getHL())
	} else {
		value = *c.registerPointer(srcIdx)
	}

	if dstIdx == 6 {
		c.bus.Write(c.getHL(), value)
		return 8
	}
	*c.registerPointer(dstIdx) = value
	if srcIdx == 6 {
		return 8
	}
	return 4
}

// executeALUBlock implements ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,r (0x80-0xBF).
func (c *CPU) executeALUBlock(opcode uint8) int {
	op := (opcode >> 3) & 0x07
	srcIdx := opcode & 0x07

	var value uint8
	cycles := 4
	if srcIdx == 6 {
		value = c.bus.Read(c.getHL())
		cycles = 8
	} else {
		value = *c.registerPointer(srcIdx)
	}

	switch op {
	case 0: // ADD
		c.addToA(value, false)
	case 1: // ADC
		c.addToA(value, true)
	case 2: // SUB
		c.subAndStore(value, false)
	case 3: // SBC
		c.subAndStore(value, true)
	case 4: // AND
		c.and(value)
	case 5: // XOR
		c.xor(value)
	case 6: // OR
		c.or(value)
	case 7: // CP
		c.cp(value)
	}
	return cycles
}

// executeMisc covers 0xC0-0xFF: stack/control flow, immediate ALU forms,
// and the I/O-port loads.
func (c *CPU) executeMisc(opcode uint8, pc uint16) (int, error) {
	switch opcode {
	case 0xC0: // RET NZ
		if !c.hasFlag(flagZ) {
			c.pc = c.popStack()
			return 20, nil
		}
		return 8, nil
	case 0xC1: // POP BC
		c.setBC(c.popStack())
		return 12, nil
	case 0xC2: // JP NZ,nn
		target := c.fetch16()
		if !c.hasFlag(flagZ) {
			c.pc = target
			return 16, nil
		}
		return 12, nil
	case 0xC3: // JP nn
		c.pc = c.fetch16()
		return 16, nil
	case 0xC4: // CALL NZ,nn
		target := c.fetch16()
		if !c.hasFlag(flagZ) {
			c.pushStack(c.pc)
			c.pc = target
			return 24, nil
		}
		return 12, nil
	case 0xC5: // PUSH BC
		c.pushStack(c.getBC())
		return 16, nil
	case 0xC6: // ADD A,n
		c.addToA(c.fetch8(), false)
		return 8, nil
	case 0xC7: // RST 0x00
		c.rst(0x00)
		return 16, nil
	case 0xC8: // RET Z
		if c.hasFlag(flagZ) {
			c.pc = c.popStack()
			return 20, nil
		}
		return 8, nil
	case 0xC9: // RET
		c.pc = c.popStack()
		return 16, nil
	case 0xCA: // JP Z,nn
		target := c.fetch16()
		if c.hasFlag(flagZ) {
			c.pc = target
			return 16, nil
		}
		return 12, nil
	case 0xCC: // CALL Z,nn
		target := c.fetch16()
		if c.hasFlag(flagZ) {
			c.pushStack(c.pc)
			c.pc = target
			return 24, nil
		}
		return 12, nil
	case 0xCD: // CALL nn
		target := c.fetch16()
		c.pushStack(c.pc)
		c.pc = target
		return 24, nil
	case 0xCE: // ADC A,n
		c.addToA(c.fetch8(), true)
		return 8, nil
	case 0xCF: // RST 0x08
		c.rst(0x08)
		return 16, nil

	case 0xD0: // RET NC
		if !c.hasFlag(flagC) {
			c.pc = c.popStack()
			return 20, nil
		}
		return 8, nil
	case 0xD1: // POP DE
		c.setDE(c.popStack())
		return 12, nil
	case 0xD2: // JP NC,nn
		target := c.fetch16()
		if !c.hasFlag(flagC) {
			c.pc = target
			return 16, nil
		}
		return 12, nil
	case 0xD4: // CALL NC,nn
		target := c.fetch16()
		if !c.hasFlag(flagC) {
			c.pushStack(c.pc)
			c.pc = target
			return 24, nil
		}
		return 12, nil
	case 0xD5: // PUSH DE
		c.pushStack(c.getDE())
		return 16, nil
	case 0xD6: // SUB n
		c.subAndStore(c.fetch8(), false)
		return 8, nil
	case 0xD7: // RST 0x10
		c.rst(0x10)
		return 16, nil
	case 0xD8: // RET C
		if c.hasFlag(flagC) {
			c.pc = c.popStack()
			return 20, nil
		}
		return 8, nil
	case 0xD9: // RETI
		c.pc = c.popStack()
		c.interruptsEnabled = true
		return 16, nil
	case 0xDA: // JP C,nn
		target := c.fetch16()
		if c.hasFlag(flagC) {
			c.pc = target
			return 16, nil
		}
		return 12, nil
	case 0xDC: // CALL C,nn
		target := c.fetch16()
		if c.hasFlag(flagC) {
			c.pushStack(c.pc)
			c.pc = target
			return 24, nil
		}
		return 12, nil
	case 0xDE: // SBC A,n
		c.subAndStore(c.fetch8(), true)
		return 8, nil
	case 0xDF: // RST 0x18
		c.rst(0x18)
		return 16, nil

	case 0xE0: // LDH (n),A
		c.bus.Write(0xFF00+uint16(c.fetch8()), c.a)
		return 12, nil
	case 0xE1: // POP HL
		c.setHL(c.popStack())
		return 12, nil
	case 0xE2: // LD (C),A
		c.bus.Write(0xFF00+uint16(c.c), c.a)
		return 8, nil
	case 0xE5: // PUSH HL
		c.pushStack(c.getHL())
		return 16, nil
	case 0xE6: // AND n
		c.and(c.fetch8())
		return 8, nil
	case 0xE7: // RST 0x20
		c.rst(0x20)
		return 16, nil
	case 0xE8: // ADD SP,s8
		c.sp = c.addSPSigned(int8(c.fetch8()))
		return 16, nil
	case 0xE9: // JP (HL)
		c.pc = c.getHL()
		return 4, nil
	case 0xEA: // LD (nn),A
		c.bus.Write(c.fetch16(), c.a)
		return 16, nil
	case 0xEE: // XOR n
		c.xor(c.fetch8())
		return 8, nil
	case 0xEF: // RST 0x28
		c.rst(0x28)
		return 16, nil

	case 0xF0: // LDH A,(n)
		c.a = c.bus.Read(0xFF00 + uint16(c.fetch8()))
		return 12, nil
	case 0xF1: // POP AF
		c.setAF(c.popStack())
		return 12, nil
	case 0xF2: // LD A,(C)
		c.a = c.bus.Read(0xFF00 + uint16(c.c))
		return 8, nil
	case 0xF3: // DI
		c.interruptsEnabled = false
		c.eiPending = false
		return 4, nil
	case 0xF5: // PUSH AF
		c.pushStack(c.getAF())
		return 16, nil
	case 0xF6: // OR n
		c.or(c.fetch8())
		return 8, nil
	case 0xF7: // RST 0x30
		c.rst(0x30)
		return 16, nil
	case 0xF8: // LD HL,SP+s8
		c.setHL(c.addSPSigned(int8(c.fetch8())))
		return 12, nil
	case 0xF9: // LD SP,HL
		c.sp = c.getHL()
		return 8, nil
	case 0xFA: // LD A,(nn)
		c.a = c.bus.Read(c.fetch16())
		return 16, nil
	case 0xFB: // EI
		c.eiPending = true
		return 4, nil
	case 0xFE: // CP n
		c.cp(c.fetch8())
		return 8, nil
	case 0xFF: // RST 0x38
		c.rst(0x38)
		return 16, nil

	default:
		return 0, &IllegalOpcodeError{Opcode: opcode, PC: pc}
	}
}

func (c *CPU) rst(target uint16) {
	c.pushStack(c.pc)
	c.pc = target
}
