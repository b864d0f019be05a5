package state

import "github.com/wazerojit/x86emit/operand"

// These are the register-update helpers used throughout the emit package.
//
// Callers must invoke these *before* appending the instruction record they
// describe: genRegUpdate/xmmRegUpdate record the position the about-to-be-
// appended record will occupy.

// OverwriteRegisterWithValue kills r if its previous value was never read
// (dead-store elimination), invalidates anything depending on r, then
// records v as r's new known value at the upcoming buffer position.
func (c *Context) OverwriteRegisterWithValue(r operand.Reg, v operand.Operand) {
	c.killUnreadGenReg(r)
	c.InvalidateDependentReg(r)
	c.genReg[r] = v
	c.genRegUpdate[r] = c.notePosition()
	c.genRegRead[r] = false
}

// OverwriteRegisterWithUnknown is OverwriteRegisterWithValue with an
// unknown (None) value.
func (c *Context) OverwriteRegisterWithUnknown(r operand.Reg) {
	c.killUnreadGenReg(r)
	c.InvalidateDependentReg(r)
	c.genReg[r] = operand.None
	c.genRegUpdate[r] = c.notePosition()
	c.genRegRead[r] = false
}

// OverwriteXmmRegisterWithValue is the xmm analogue of
// OverwriteRegisterWithValue.
func (c *Context) OverwriteXmmRegisterWithValue(r operand.XmmReg, v operand.Operand) {
	c.killUnreadXmmReg(r)
	c.InvalidateDependentXmmReg(r)
	c.xmmReg[r] = v
	c.xmmRegUpdate[r] = c.notePosition()
	c.xmmRegRead[r] = false
}

// OverwriteXmmRegisterWithUnknown is the xmm analogue of
// OverwriteRegisterWithUnknown.
func (c *Context) OverwriteXmmRegisterWithUnknown(r operand.XmmReg) {
	c.killUnreadXmmReg(r)
	c.InvalidateDependentXmmReg(r)
	c.xmmReg[r] = operand.None
	c.xmmRegUpdate[r] = c.notePosition()
	c.xmmRegRead[r] = false
}

// ReadAndModifyRegister marks r as both read and rewritten by the
// instruction about to be appended: it invalidates dependents but performs
// no dead-store kill, because the old value is presumably consumed by this
// very instruction.
func (c *Context) ReadAndModifyRegister(r operand.Reg) {
	c.InvalidateDependentReg(r)
	c.genReg[r] = operand.None
	c.genRegUpdate[r] = c.notePosition()
	c.genRegRead[r] = false
}

// ReadAndModifyXmmRegister is the xmm analogue of ReadAndModifyRegister.
func (c *Context) ReadAndModifyXmmRegister(r operand.XmmReg) {
	c.InvalidateDependentXmmReg(r)
	c.xmmReg[r] = operand.None
	c.xmmRegUpdate[r] = c.notePosition()
	c.xmmRegRead[r] = false
}

// ReadRegister marks r as observed by a consumer since its last write.
// operand.NoReg is accepted as a no-op.
func (c *Context) ReadRegister(r operand.Reg) {
	if r == operand.NoReg {
		return
	}
	c.genRegRead[r] = true
}

// ReadXmmRegister is the xmm analogue of ReadRegister.
func (c *Context) ReadXmmRegister(r operand.XmmReg) {
	c.xmmRegRead[r] = true
}
