package emit

import (
	"fmt"

	"github.com/wazerojit/x86emit/instr"
	"github.com/wazerojit/x86emit/opcode"
	"github.com/wazerojit/x86emit/operand"
	"github.com/wazerojit/x86emit/state"
)

// MemNum emits Mem, immediate instructions.
func MemNum(c *state.Context, op opcode.Opcode, addr operand.Ptr, v int32) {
	if !c.Optimizing() {
		c.Buffer().Append(instr.Record{Op: op, A: operand.NewPtr(addr), B: operand.NewNum(v)})
		return
	}
	addr = FoldAddress(c, addr)
	if addr.Base == operand.ESP {
		panic("BUG: store address base must not be ESP")
	}

	c.ReadRegister(addr.Base)
	c.ReadRegister(addr.Index)

	switch op {
	case opcode.Mov:
		c.InvalidateAddressValue(addr)
		c.MemWrite(addr, operand.NewNum(v))
	case opcode.Add:
		c.InvalidateAddressValue(addr)
	default:
		panic(fmt.Sprintf("BUG: unhandled opcode %s for emit(OP, Mem, Num)", op))
	}
	c.Buffer().Append(instr.Record{Op: op, A: operand.NewPtr(addr), B: operand.NewNum(v)})
}
