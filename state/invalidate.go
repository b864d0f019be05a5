package state

import (
	"github.com/wazerojit/x86emit/operand"
)

// InvalidateState drops every tracked register and memory known-value.
// Called at calls, returns, unconditional control transfers, and
// invalidating labels.
func (c *Context) InvalidateState() {
	for i := range c.genReg {
		c.genReg[i] = operand.None
	}
	for i := range c.xmmReg {
		c.xmmReg[i] = operand.None
	}
	for i := range c.memCache {
		c.memCache[i] = memEntry{}
	}
	c.memCacheEntries = 0
}

// InvalidateDependentReg demotes any tracked known-value that references r
// (as Reg(r) or as a Ptr with base or index == r) to the PtrLabel sentinel,
// and drops any memCache entry whose address or value references r.
// Called before r is overwritten.
func (c *Context) InvalidateDependentReg(r operand.Reg) {
	for i := range c.genReg {
		if c.genReg[i].ReferencesReg(r) {
			c.genReg[i] = operand.NewPtrLabel(operand.Label(r))
		}
	}
	for i := range c.xmmReg {
		if c.xmmReg[i].ReferencesReg(r) {
			c.xmmReg[i] = operand.NewPtrLabel(operand.Label(r))
		}
	}
	for i := range c.memCache {
		e := &c.memCache[i]
		if !e.valid {
			continue
		}
		if operand.NewPtr(e.address).ReferencesReg(r) || e.value.ReferencesReg(r) {
			*e = memEntry{}
		}
	}
}

// InvalidateDependentXmmReg is the xmm analogue of InvalidateDependentReg.
// xmm registers never appear as a Ptr's base or index, so only direct
// XmmReg(r) known-values and memCache values referencing r are affected.
func (c *Context) InvalidateDependentXmmReg(r operand.XmmReg) {
	for i := range c.xmmReg {
		if xr, ok := c.xmmReg[i].IsXmmReg(); ok && xr == r {
			c.xmmReg[i] = operand.NewPtrLabel(operand.Label(r))
		}
	}
	for i := range c.memCache {
		e := &c.memCache[i]
		if !e.valid {
			continue
		}
		if xr, ok := e.value.IsXmmReg(); ok && xr == r {
			*e = memEntry{}
		}
	}
}

// InvalidateAddressValue drops every tracked register known-value of shape
// Ptr unless it is provably disjoint from addr, exempting the constant
// pool. Called before any store to addr.
func (c *Context) InvalidateAddressValue(addr operand.Ptr) {
	for i := range c.genReg {
		p, ok := c.genReg[i].IsPtr()
		if !ok || p.IsConstantPool() {
			continue
		}
		if !operand.MayAlias(p, addr) {
			continue
		}
		c.genReg[i] = operand.None
	}
	for i := range c.xmmReg {
		p, ok := c.xmmReg[i].IsPtr()
		if !ok || p.IsConstantPool() {
			continue
		}
		if !operand.MayAlias(p, addr) {
			continue
		}
		c.xmmReg[i] = operand.None
	}
}

// KillUnreadRegisters nulls the producer instruction of every register
// whose value was never read since it was last written, then drops the
// known value (dead-store elimination).
func (c *Context) KillUnreadRegisters() {
	for i := range c.genReg {
		c.killUnreadGenReg(operand.Reg(i))
	}
	for i := range c.xmmReg {
		c.killUnreadXmmReg(operand.XmmReg(i))
	}
}

func (c *Context) killUnreadGenReg(r operand.Reg) {
	if !c.genRegRead[r] && !c.genReg[r].IsNone() {
		if !c.buf.At(c.genRegUpdate[r]).Deleted() {
			c.buf.Null(c.genRegUpdate[r])
			c.bumpOptimizationCount()
		}
	}
	c.genReg[r] = operand.None
}

func (c *Context) killUnreadXmmReg(r operand.XmmReg) {
	if !c.xmmRegRead[r] && !c.xmmReg[r].IsNone() {
		if !c.buf.At(c.xmmRegUpdate[r]).Deleted() {
			c.buf.Null(c.xmmRegUpdate[r])
			c.bumpOptimizationCount()
		}
	}
	c.xmmReg[r] = operand.None
}
