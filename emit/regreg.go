package emit

import (
	"fmt"

	"github.com/wazerojit/x86emit/instr"
	"github.com/wazerojit/x86emit/opcode"
	"github.com/wazerojit/x86emit/operand"
	"github.com/wazerojit/x86emit/state"
)

// GPRegReg emits general-purpose Reg, Reg instructions.
func GPRegReg(c *state.Context, op opcode.Opcode, dst, src operand.Reg) {
	if !c.Optimizing() {
		c.Buffer().Append(instr.Record{Op: op, A: operand.NewReg(dst), B: operand.NewReg(src)})
		return
	}
	switch op {
	case opcode.Mov:
		src = RedirectRegister(c, src)
		if src == dst {
			c.NoteOptimization()
			return
		}
		if k, ok := c.GenReg(src).IsNum(); ok {
			RegNum(c, opcode.Mov, dst, k)
			return
		}
		c.OverwriteRegisterWithValue(dst, operand.NewReg(src))
	case opcode.Xor:
		if dst == src {
			// Still zeroes dst, but the known value must be dropped: a
			// later dead-store check must see this write, not substitute
			// whatever dst used to hold.
			c.InvalidateDependentReg(dst)
			c.SetGenRegValue(dst, operand.None)
			c.Buffer().Append(instr.Record{Op: op, A: operand.NewReg(dst), B: operand.NewReg(src)})
			return
		}
		src = RedirectRegister(c, src)
		c.ReadRegister(src)
		c.ReadAndModifyRegister(dst)
	case opcode.Cmp, opcode.Test:
		src = RedirectRegister(c, src)
		c.ReadRegister(dst)
		c.ReadRegister(src)
	case opcode.Add, opcode.Sub:
		src = RedirectRegister(c, src)
		if k, ok := c.GenReg(src).IsNum(); ok {
			RegNum(c, op, dst, k)
			return
		}
		c.ReadAndModifyRegister(dst)
		c.ReadRegister(src)
	case opcode.Sal, opcode.Sar:
		// The shift count is architecturally pinned to ECX.
		c.ReadRegister(operand.ECX)
		c.ReadAndModifyRegister(dst)
	case opcode.And, opcode.Or:
		src = RedirectRegister(c, src)
		if p, ok := c.GenReg(src).IsPtr(); ok {
			RegMem(c, op, dst, p)
			return
		}
		c.ReadAndModifyRegister(dst)
		c.ReadRegister(src)
	case opcode.Imul:
		src = RedirectRegister(c, src)
		if dstNum, ok := c.GenReg(dst).IsNum(); ok {
			if srcNum, ok := c.GenReg(src).IsNum(); ok {
				RegNum(c, opcode.Mov, dst, dstNum*srcNum)
				return
			}
		}
		if p, ok := c.GenReg(src).IsPtr(); ok {
			RegMem(c, op, dst, p)
			return
		}
		c.ReadAndModifyRegister(dst)
		c.ReadRegister(src)
	default:
		panic(fmt.Sprintf("BUG: unhandled opcode %s for emit(OP, Reg, Reg)", op))
	}
	c.Buffer().Append(instr.Record{Op: op, A: operand.NewReg(dst), B: operand.NewReg(src)})
}

// XmmRegReg emits xmm Reg, Reg instructions. Movss is accepted alongside
// Movsd: a cache-hit rewrite in XmmRegMem can dispatch either opcode into a
// reg-reg move, and both carry identical copy-propagation semantics here.
func XmmRegReg(c *state.Context, op opcode.Opcode, dst, src operand.XmmReg) {
	if !c.Optimizing() {
		c.Buffer().Append(instr.Record{Op: op, A: operand.NewXmmReg(dst), B: operand.NewXmmReg(src)})
		return
	}
	switch op {
	case opcode.Movsd, opcode.Movss:
		src = RedirectXmmRegister(c, src)
		if src == dst {
			c.NoteOptimization()
			return
		}
		c.OverwriteXmmRegisterWithValue(dst, operand.NewXmmReg(src))
	case opcode.Addsd, opcode.Subsd, opcode.Mulsd, opcode.Divsd,
		opcode.Cmpeqsd, opcode.Cmpltsd, opcode.Cmplesd, opcode.Cmpneqsd:
		src = RedirectXmmRegister(c, src)
		c.ReadXmmRegister(src)
		c.ReadAndModifyXmmRegister(dst)
	default:
		panic(fmt.Sprintf("BUG: unhandled opcode %s for emit(OP, XmmReg, XmmReg)", op))
	}
	c.Buffer().Append(instr.Record{Op: op, A: operand.NewXmmReg(dst), B: operand.NewXmmReg(src)})
}
