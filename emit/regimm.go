package emit

import (
	"fmt"

	"github.com/wazerojit/x86emit/instr"
	"github.com/wazerojit/x86emit/opcode"
	"github.com/wazerojit/x86emit/operand"
	"github.com/wazerojit/x86emit/state"
)

// RegNum emits Reg, 32-bit-immediate instructions.
func RegNum(c *state.Context, op opcode.Opcode, r operand.Reg, v int32) {
	if !c.Optimizing() {
		c.Buffer().Append(instr.Record{Op: op, A: operand.NewReg(r), B: operand.NewNum(v)})
		return
	}
	switch op {
	case opcode.Mov:
		if k, ok := c.GenReg(r).IsNum(); ok && k == v {
			c.NoteOptimization()
			return
		}
		c.OverwriteRegisterWithValue(r, operand.NewNum(v))
	case opcode.Add, opcode.Sub, opcode.Imul:
		if r != operand.ESP {
			c.ReadAndModifyRegister(r)
		}
		// ESP is opaque frame manipulation; state is left untouched.
	default:
		panic(fmt.Sprintf("BUG: unhandled opcode %s for emit(OP, Reg, Num)", op))
	}
	c.Buffer().Append(instr.Record{Op: op, A: operand.NewReg(r), B: operand.NewNum(v)})
}

// RegImm64 emits Reg, 64-bit-immediate instructions.
func RegImm64(c *state.Context, op opcode.Opcode, r operand.Reg, v int64) {
	if !c.Optimizing() {
		c.Buffer().Append(instr.Record{Op: op, A: operand.NewReg(r), B: operand.NewImm64(v)})
		return
	}
	switch op {
	case opcode.Mov64:
		if k, ok := c.GenReg(r).IsImm64(); ok && k == v {
			c.NoteOptimization()
			return
		}
		c.OverwriteRegisterWithValue(r, operand.NewImm64(v))
	default:
		panic(fmt.Sprintf("BUG: unhandled opcode %s for emit(OP, Reg, Imm64)", op))
	}
	c.Buffer().Append(instr.Record{Op: op, A: operand.NewReg(r), B: operand.NewImm64(v)})
}
