package emit

import (
	"fmt"

	"github.com/wazerojit/x86emit/instr"
	"github.com/wazerojit/x86emit/opcode"
	"github.com/wazerojit/x86emit/operand"
	"github.com/wazerojit/x86emit/state"
)

// MemReg emits general-purpose Mem, Reg stores.
func MemReg(c *state.Context, op opcode.Opcode, addr operand.Ptr, src operand.Reg) {
	if !c.Optimizing() {
		c.Buffer().Append(instr.Record{Op: op, A: operand.NewPtr(addr), B: operand.NewReg(src)})
		return
	}
	addr = FoldAddress(c, addr)
	if addr.Base == operand.ESP {
		panic("BUG: store address base must not be ESP")
	}
	src = RedirectRegister(c, src)

	if addr.Size == operand.SizeDWord {
		if k, ok := c.GenReg(src).IsNum(); ok {
			MemNum(c, opcode.Mov, addr, k)
			return
		}
	}

	c.ReadRegister(addr.Base)
	c.ReadRegister(addr.Index)
	c.ReadRegister(src)

	switch op {
	case opcode.Mov:
		c.InvalidateAddressValue(addr)

		// The source register's own value was unknown or itself a
		// pointer, so it now definitively holds the value stored at addr.
		v := c.GenReg(src)
		if v.IsNone() {
			c.SetGenRegValue(src, operand.NewPtr(addr))
		} else if _, ok := v.IsPtr(); ok {
			c.SetGenRegValue(src, operand.NewPtr(addr))
		}

		c.MemWrite(addr, operand.NewReg(src))
	default:
		panic(fmt.Sprintf("BUG: unhandled opcode %s for emit(OP, Mem, Reg)", op))
	}
	c.Buffer().Append(instr.Record{Op: op, A: operand.NewPtr(addr), B: operand.NewReg(src)})
}

// MemXmmReg emits xmm Mem, Reg stores.
func MemXmmReg(c *state.Context, op opcode.Opcode, addr operand.Ptr, src operand.XmmReg) {
	if !c.Optimizing() {
		c.Buffer().Append(instr.Record{Op: op, A: operand.NewPtr(addr), B: operand.NewXmmReg(src)})
		return
	}
	addr = FoldAddress(c, addr)
	if addr.Base == operand.ESP {
		panic("BUG: store address base must not be ESP")
	}

	c.ReadRegister(addr.Base)
	c.ReadRegister(addr.Index)
	c.ReadXmmRegister(src)

	switch op {
	case opcode.Movss, opcode.Movsd:
		c.InvalidateAddressValue(addr)

		v := c.XmmReg(src)
		if v.IsNone() {
			c.SetXmmRegValue(src, operand.NewPtr(addr))
		} else if _, ok := v.IsPtr(); ok {
			c.SetXmmRegValue(src, operand.NewPtr(addr))
		}

		c.MemWrite(addr, operand.NewXmmReg(src))
	default:
		panic(fmt.Sprintf("BUG: unhandled opcode %s for emit(OP, Mem, XmmReg)", op))
	}
	c.Buffer().Append(instr.Record{Op: op, A: operand.NewPtr(addr), B: operand.NewXmmReg(src)})
}
