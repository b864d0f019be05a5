// Package state implements the abstract machine-state model the emission
// core consults and mutates on every emit call: per-register known values,
// liveness, update positions, and a bounded memory cache. One struct owns
// all of the parallel per-register arrays; there are no package-level
// globals.
package state

import (
	"github.com/wazerojit/x86emit/instr"
	"github.com/wazerojit/x86emit/operand"
)

// NumGenRegs and NumXmmRegs size the per-register tracking arrays for
// x86-64's general-purpose and xmm register files.
const (
	NumGenRegs  = 16
	NumXmmRegs  = 16
)

// DefaultMemCacheSize is the default depth of the memory cache.
const DefaultMemCacheSize = 16

// MinMemCacheSize is the minimum allowed memory cache depth.
const MinMemCacheSize = 4

type memEntry struct {
	address operand.Ptr
	value   operand.Operand
	valid   bool
}

// Context is the abstract machine state for one compilation unit. It is
// not safe for concurrent use: compile separate units with separate
// Contexts on separate goroutines instead.
type Context struct {
	buf *instr.Buffer

	// optimize gates whether emit consults or mutates state at all. When
	// false every emit call degrades to a naive append, identical to the
	// optimizer being absent.
	optimize bool

	genReg       [NumGenRegs]operand.Operand
	genRegRead   [NumGenRegs]bool
	genRegUpdate [NumGenRegs]int

	xmmReg       [NumXmmRegs]operand.Operand
	xmmRegRead   [NumXmmRegs]bool
	xmmRegUpdate [NumXmmRegs]int

	memCache        []memEntry
	memCacheEntries int

	lastInvalidate int

	optimizationCount int
}

// Option configures a new Context.
type Option func(*Context)

// WithMemCacheSize overrides the memory-cache depth (default
// DefaultMemCacheSize, floor MinMemCacheSize).
func WithMemCacheSize(n int) Option {
	return func(c *Context) {
		if n < MinMemCacheSize {
			n = MinMemCacheSize
		}
		c.memCache = make([]memEntry, n)
	}
}

// WithOptimizerDisabled turns off peephole optimization entirely: every
// emit call becomes a plain append.
func WithOptimizerDisabled() Option {
	return func(c *Context) { c.optimize = false }
}

// New returns a Context with empty abstract state, wired to buf, with the
// optimizer enabled by default.
func New(buf *instr.Buffer, opts ...Option) *Context {
	c := &Context{
		buf:      buf,
		optimize: true,
		memCache: make([]memEntry, DefaultMemCacheSize),
	}
	for i := range c.genReg {
		c.genReg[i] = operand.None
	}
	for i := range c.xmmReg {
		c.xmmReg[i] = operand.None
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Buffer returns the instruction buffer this context mutates.
func (c *Context) Buffer() *instr.Buffer { return c.buf }

// Optimizing reports whether the optimizer is enabled.
func (c *Context) Optimizing() bool { return c.optimize }

// OptimizationCount returns the cumulative count of elided/rewritten
// instructions.
func (c *Context) OptimizationCount() int { return c.optimizationCount }

// notePosition returns the index the next Buffer.Append call will use,
// i.e. the current buffer position.
func (c *Context) notePosition() int { return c.buf.Len() }

// bumpOptimizationCount records that the optimizer elided or rewrote one
// instruction.
func (c *Context) bumpOptimizationCount() { c.optimizationCount++ }

// GenReg returns the known value currently tracked for general-purpose
// register r, or operand.None if unknown.
func (c *Context) GenReg(r operand.Reg) operand.Operand { return c.genReg[r] }

// XmmReg returns the known value currently tracked for xmm register r.
func (c *Context) XmmReg(r operand.XmmReg) operand.Operand { return c.xmmReg[r] }

// NoteOptimization records that the emitter skipped an instruction entirely
// rather than appending and later nulling it (e.g. a redundant immediate
// move or a self-assignment).
func (c *Context) NoteOptimization() { c.bumpOptimizationCount() }

// SetGenRegValue directly records that register r is now known to hold v,
// without the bookkeeping OverwriteRegisterWithValue performs (no dead-store
// kill, no dependent invalidation, no update-position tracking). Used when a
// store teaches us what a register that was written earlier already holds,
// not when the register itself is being (re)written.
func (c *Context) SetGenRegValue(r operand.Reg, v operand.Operand) { c.genReg[r] = v }

// SetXmmRegValue is the xmm analogue of SetGenRegValue.
func (c *Context) SetXmmRegValue(r operand.XmmReg, v operand.Operand) { c.xmmReg[r] = v }

// MemCacheValue returns the value tracked at memory-cache slot index, as
// returned by MemFind.
func (c *Context) MemCacheValue(index int) operand.Operand { return c.memCache[index].value }

// NoteLastInvalidate records the current buffer position as the most
// recent point at which look-behind was disabled.
func (c *Context) NoteLastInvalidate() { c.lastInvalidate = c.notePosition() }

// LastInvalidate returns the buffer position recorded by the most recent
// NoteLastInvalidate call.
func (c *Context) LastInvalidate() int { return c.lastInvalidate }

// ClearRegUpdate resets r's recorded update position to zero. ESP is
// exempt from the known-value model entirely, so disabling look-behind
// clears its update slot instead of leaving it to point at a stale
// instruction.
func (c *Context) ClearRegUpdate(r operand.Reg) { c.genRegUpdate[r] = 0 }
