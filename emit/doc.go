// Package emit implements the peephole-optimizing emission entry points
// that consult and mutate a state.Context while appending records to an
// instr.Buffer. One function per operand-shape signature.
//
// Every emitting function ends by appending exactly one instruction record
// (unless it re-dispatches to another emit function and returns, or elides
// the instruction entirely and bumps the optimization counter instead).
// SetLookBehind and the address-folding helpers append nothing. When the
// Context's optimizer is disabled, no state is consulted or mutated: each
// emitting function makes a bare append, SetLookBehind does nothing, and
// the output is identical to what a naive, non-optimizing emitter would
// produce.
package emit
