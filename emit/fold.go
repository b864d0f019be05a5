package emit

import (
	"github.com/wazerojit/x86emit/operand"
	"github.com/wazerojit/x86emit/state"
)

// FoldAddress canonicalizes p's (index, multiplier, base, displacement)
// against the tracked register state before it is used in any
// memory-operand instruction, grounded on
// CodeGenGenericContext::RedirectAddressComputation:
//
//  1. if genReg[base] = Reg(S), base is redirected to S.
//  2. if genReg[base] = Num(k) (after step 1), k folds into the
//     displacement and base drops out entirely.
//  3. if genReg[index] = Num(k), k*multiplier folds into the displacement
//     and index drops out entirely.
func FoldAddress(c *state.Context, p operand.Ptr) operand.Ptr {
	if p.Base != operand.NoReg {
		if s, ok := c.GenReg(p.Base).IsReg(); ok {
			p.Base = s
		}
	}
	if p.Base != operand.NoReg {
		if k, ok := c.GenReg(p.Base).IsNum(); ok {
			p.Displacement += k
			p.Base = operand.NoReg
		}
	}
	if p.Index != operand.NoReg {
		if k, ok := c.GenReg(p.Index).IsNum(); ok {
			p.Displacement += k * int32(p.Multiplier)
			p.Index = operand.NoReg
			p.Multiplier = 1
		}
	}
	return p
}

// RedirectRegister returns the register a copy-propagation chain for r
// bottoms out at: if genReg[r] = Reg(S), S; otherwise r unchanged.
func RedirectRegister(c *state.Context, r operand.Reg) operand.Reg {
	if s, ok := c.GenReg(r).IsReg(); ok {
		return s
	}
	return r
}

// RedirectXmmRegister is the xmm analogue of RedirectRegister.
func RedirectXmmRegister(c *state.Context, r operand.XmmReg) operand.XmmReg {
	if s, ok := c.XmmReg(r).IsXmmReg(); ok {
		return s
	}
	return r
}
