package emit

import (
	"fmt"

	"github.com/wazerojit/x86emit/instr"
	"github.com/wazerojit/x86emit/opcode"
	"github.com/wazerojit/x86emit/operand"
	"github.com/wazerojit/x86emit/state"
)

// scratchRegs are the registers a Mov Reg, Mem load consults for an
// existing identical address known-value before falling back to a fresh
// load, grounded on the EAX..EDX register span in
// CodeGenGenericContext's GP load-forwarding sweep.
var scratchRegs = [...]operand.Reg{operand.EAX, operand.ECX, operand.EDX}

// RegMem emits general-purpose Reg, Mem loads.
func RegMem(c *state.Context, op opcode.Opcode, dst operand.Reg, addr operand.Ptr) {
	if !c.Optimizing() {
		c.Buffer().Append(instr.Record{Op: op, A: operand.NewReg(dst), B: operand.NewPtr(addr)})
		return
	}
	addr = FoldAddress(c, addr)
	c.ReadRegister(addr.Base)
	c.ReadRegister(addr.Index)

	switch op {
	case opcode.Mov, opcode.Movsx, opcode.Mov64:
		if op == opcode.Mov {
			target := operand.NewPtr(addr)
			for _, r := range scratchRegs {
				if r == dst {
					continue
				}
				if c.GenReg(r).Equal(target) {
					c.ReadRegister(r)
					c.OverwriteRegisterWithValue(dst, operand.NewReg(r))
					c.Buffer().Append(instr.Record{
						Op: opcode.Mov, A: operand.NewReg(dst), B: operand.NewReg(r),
						Aux: instr.Aux{Comment: fmt.Sprintf("cse: %s already held this address", operand.NewReg(r))},
					})
					return
				}
			}
		}
		if addr.Base != dst && addr.Index != dst {
			// The write doesn't clobber the address it depends on: dst
			// now holds the value at addr, enabling CSE on a later load.
			c.OverwriteRegisterWithValue(dst, operand.NewPtr(addr))
		} else {
			c.OverwriteRegisterWithUnknown(dst)
		}
	case opcode.Lea:
		c.OverwriteRegisterWithUnknown(dst)
	case opcode.Imul, opcode.And, opcode.Or:
		c.ReadAndModifyRegister(dst)
	default:
		panic(fmt.Sprintf("BUG: unhandled opcode %s for emit(OP, Reg, Mem)", op))
	}
	c.Buffer().Append(instr.Record{Op: op, A: operand.NewReg(dst), B: operand.NewPtr(addr)})
}

// XmmRegMem emits xmm Reg, Mem loads, including the scalar-double
// conversions.
func XmmRegMem(c *state.Context, op opcode.Opcode, dst operand.XmmReg, addr operand.Ptr) {
	if !c.Optimizing() {
		c.Buffer().Append(instr.Record{Op: op, A: operand.NewXmmReg(dst), B: operand.NewPtr(addr)})
		return
	}
	addr = FoldAddress(c, addr)

	switch op {
	case opcode.Cvtss2sd, opcode.Cvtsd2ss, opcode.Cvtsi2sd:
		c.ReadRegister(addr.Base)
		c.ReadRegister(addr.Index)
		c.OverwriteXmmRegisterWithUnknown(dst)
	case opcode.Movss, opcode.Movsd:
		if index, ok := c.MemFind(addr); ok {
			if x, ok := c.MemCacheValue(index).IsXmmReg(); ok {
				XmmRegReg(c, op, dst, x)
				c.MemUpdate(index)
				return
			}
		}

		target := operand.NewPtr(addr)
		for i := 0; i < state.NumXmmRegs; i++ {
			r := operand.XmmReg(i)
			if c.XmmReg(r).Equal(target) {
				XmmRegReg(c, op, dst, r)
				return
			}
		}

		c.ReadRegister(addr.Base)
		c.ReadRegister(addr.Index)
		c.OverwriteXmmRegisterWithValue(dst, target)
	default:
		panic(fmt.Sprintf("BUG: unhandled opcode %s for emit(OP, XmmReg, Mem)", op))
	}
	c.Buffer().Append(instr.Record{Op: op, A: operand.NewXmmReg(dst), B: operand.NewPtr(addr)})
}
