package cpu

import "github.com/dmgcore/dmgcore/bit"

// executeCB dispatches a CB-prefixed opcode. The CB table is regular: bits
// 7-6 select the operation group, bits 5-3 select a bit index (for
// BIT/RES/SET) or a rotate/shift variant, and bits 2-0 select the
// register/(HL) operand. The opcode is decoded into those three fields and
// dispatched on group and variant; register operands go through
// registerPointer and (HL) operands through executeCBMemOperand.
func (c *CPU) executeCB(cb uint8) int {
	group := cb >> 6
	regIdx := cb & 0x07
	sub := (cb >> 3) & 0x07

	if regIdx == 6 {
		return c.executeCBMemOperand(group, sub)
	}

	reg := c.registerPointer(regIdx)
	switch group {
	case 0: // rotate/shift/swap
		switch sub {
		case 0:
			c.rlc(reg)
		case 1:
			c.rrc(reg)
		case 2:
			c.rl(reg)
		case 3:
			c.rr(reg)
		case 4:
			c.sla(reg)
		case 5:
			c.sra(reg)
		case 6:
			c.swap(reg)
		case 7:
			c.srl(reg)
		}
		return 8
	case 1: // BIT
		c.testBit(sub, *reg)
		return 8
	case 2: // RES
		*reg = bit.Reset(sub, *reg)
		return 8
	case 3: // SET
		*reg = bit.Set(sub, *reg)
		return 8
	}
	return 8
}

// executeCBMemOperand handles every CB opcode whose operand is (HL): it
// reads once, mutates (for groups other than BIT), and writes back once,
// with no bus activity in between the read and write.
func (c *CPU) executeCBMemOperand(group, sub uint8) int {
	addr := c.getHL()
	value := c.bus.Read(addr)

	switch group {
	case 0:
		switch sub {
		case 0:
			c.rlc(&value)
		case 1:
			c.rrc(&value)
		case 2:
			c.rl(&value)
		case 3:
			c.rr(&value)
		case 4:
			c.sla(&value)
		case 5:
			c.sra(&value)
		case 6:
			c.swap(&value)
		case 7:
			c.srl(&value)
		}
		c.bus.Write(addr, value)
		return 16
	case 1: // BIT n,(HL)
		c.testBit(sub, value)
		return 12
	case 2: // RES n,(HL)
		c.bus.Write(addr, bit.Reset(sub, value))
		return 16
	case 3: // SET n,(HL)
		c.bus.Write(addr, bit.Set(sub, value))
		return 16
	}
	return 16
}
