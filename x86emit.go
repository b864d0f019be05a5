// Package x86emit ties the instruction buffer, abstract machine state, and
// emission entry points into the single surface an upstream IR translator
// drives. It is a thin facade: all of the actual rewrite logic lives in
// the emit, state, instr and operand packages; this package only wires
// them together behind names a translator calls directly.
package x86emit

import (
	"io"

	"github.com/wazerojit/x86emit/emit"
	"github.com/wazerojit/x86emit/instr"
	"github.com/wazerojit/x86emit/opcode"
	"github.com/wazerojit/x86emit/operand"
	"github.com/wazerojit/x86emit/state"
)

// ContextOption configures a new Unit's abstract state.
type ContextOption = state.Option

// WithMemCacheSize overrides the memory-cache depth (default 16, floor 4).
func WithMemCacheSize(n int) ContextOption { return state.WithMemCacheSize(n) }

// WithOptimizerDisabled turns the peephole optimizer off entirely: every
// emit call degrades to a naive append.
func WithOptimizerDisabled() ContextOption { return state.WithOptimizerDisabled() }

// Unit is one compilation unit's instruction buffer plus the abstract
// state the optimizer consults while filling it. Not safe for concurrent
// use: compile separate units on separate goroutines, each with its own
// Unit.
type Unit struct {
	buf   *instr.Buffer
	state *state.Context
}

// New returns an empty Unit with capacity pre-reserved for the instruction
// buffer.
func New(capacity int, opts ...ContextOption) *Unit {
	buf := instr.NewBuffer(capacity)
	return &Unit{buf: buf, state: state.New(buf, opts...)}
}

// OptimizationCount returns the cumulative count of instructions elided or
// rewritten by the optimizer.
func (u *Unit) OptimizationCount() int { return u.state.OptimizationCount() }

// Len returns the number of records appended so far, including nulled
// ones.
func (u *Unit) Len() int { return u.buf.Len() }

// At returns the record at index i.
func (u *Unit) At(i int) instr.Record { return u.buf.At(i) }

// Range calls fn for every non-deleted record in emission order, the
// downstream contract's view of the buffer.
func (u *Unit) Range(fn func(index int, r instr.Record)) { u.buf.Range(fn) }

// Dump writes an assembly-style listing of every non-deleted record to w.
func (u *Unit) Dump(w io.Writer) error { return u.buf.Dump(w) }

// Ret emits a return; RepMovsd emits a rep-prefixed string move (ECX must
// already hold a known repeat count). Any other zero-operand opcode is an
// addressing-mode prefix or no-op and passes straight through.
func (u *Unit) Zero(op opcode.Opcode) { emit.Zero(u.state, op) }

// Jmp, Ja, Jae, ..., Call emit a control-transfer to label. invalidate
// marks the target as an optimization-opaque join point; longJump also
// kills unread registers first when invalidate is set.
func (u *Unit) Jump(op opcode.Opcode, label operand.Label, invalidate, longJump bool) {
	emit.Jump(u.state, op, label, invalidate, longJump)
}

// EmitLabel appends a label record at the current position.
func (u *Unit) EmitLabel(id operand.Label, invalidate bool) {
	emit.Label(u.state, id, invalidate)
}

// SetLookBehind toggles peephole look-behind at a basic-block boundary.
func (u *Unit) SetLookBehind(enabled bool) { emit.SetLookBehind(u.state, enabled) }

// Reg emits a single general-purpose-register instruction: Call, a SetCC
// byte-set, or a unary arithmetic op (Neg, Not, Idiv).
func (u *Unit) Reg(op opcode.Opcode, r operand.Reg) { emit.Reg(u.state, op, r) }

// RegNum emits Reg, 32-bit-immediate instructions.
func (u *Unit) RegNum(op opcode.Opcode, r operand.Reg, v int32) { emit.RegNum(u.state, op, r, v) }

// RegImm64 emits Reg, 64-bit-immediate instructions.
func (u *Unit) RegImm64(op opcode.Opcode, r operand.Reg, v int64) {
	emit.RegImm64(u.state, op, r, v)
}

// RegReg emits general-purpose Reg, Reg instructions.
func (u *Unit) RegReg(op opcode.Opcode, dst, src operand.Reg) {
	emit.GPRegReg(u.state, op, dst, src)
}

// XmmRegReg emits xmm Reg, Reg instructions.
func (u *Unit) XmmRegReg(op opcode.Opcode, dst, src operand.XmmReg) {
	emit.XmmRegReg(u.state, op, dst, src)
}

// RegMem emits general-purpose Reg, Mem loads.
func (u *Unit) RegMem(op opcode.Opcode, dst operand.Reg, addr operand.Ptr) {
	emit.RegMem(u.state, op, dst, addr)
}

// XmmRegMem emits xmm Reg, Mem loads, including the scalar-double
// conversions.
func (u *Unit) XmmRegMem(op opcode.Opcode, dst operand.XmmReg, addr operand.Ptr) {
	emit.XmmRegMem(u.state, op, dst, addr)
}

// MemReg emits general-purpose Mem, Reg stores.
func (u *Unit) MemReg(op opcode.Opcode, addr operand.Ptr, src operand.Reg) {
	emit.MemReg(u.state, op, addr, src)
}

// MemXmmReg emits xmm Mem, Reg stores.
func (u *Unit) MemXmmReg(op opcode.Opcode, addr operand.Ptr, src operand.XmmReg) {
	emit.MemXmmReg(u.state, op, addr, src)
}

// MemNum emits Mem, immediate instructions.
func (u *Unit) MemNum(op opcode.Opcode, addr operand.Ptr, v int32) {
	emit.MemNum(u.state, op, addr, v)
}
