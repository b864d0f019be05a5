package emit

import (
	"fmt"

	"github.com/wazerojit/x86emit/instr"
	"github.com/wazerojit/x86emit/opcode"
	"github.com/wazerojit/x86emit/operand"
	"github.com/wazerojit/x86emit/state"
)

// Reg emits a single-register instruction.
func Reg(c *state.Context, op opcode.Opcode, r operand.Reg) {
	if !c.Optimizing() {
		c.Buffer().Append(instr.Record{Op: op, A: operand.NewReg(r)})
		return
	}
	switch op {
	case opcode.Call:
		c.ReadRegister(r)
		c.KillUnreadRegisters()
		c.InvalidateState()
	case opcode.SetL, opcode.SetG, opcode.SetLE, opcode.SetGE,
		opcode.SetE, opcode.SetNE, opcode.SetZ, opcode.SetNZ:
		// SetCC only writes the low byte; the high bits of r survive, so
		// this is a read-and-modify of the whole register, not a fresh
		// write.
		c.ReadAndModifyRegister(r)
	case opcode.Neg, opcode.Not, opcode.Idiv:
		// No rewrite applies to these; pass the record through unchanged.
	default:
		panic(fmt.Sprintf("BUG: unhandled opcode %s for emit(OP, Reg)", op))
	}
	c.Buffer().Append(instr.Record{Op: op, A: operand.NewReg(r)})
}
