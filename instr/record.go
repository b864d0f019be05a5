// Package instr defines the emitted instruction record and the append-only
// buffer that holds them.
package instr

import (
	"fmt"

	"github.com/wazerojit/x86emit/opcode"
	"github.com/wazerojit/x86emit/operand"
)

// Aux carries the metadata an instruction record needs beyond its two
// operands: label identity and jump-shape flags.
type Aux struct {
	LabelID    operand.Label
	Invalidate bool
	LongJump   bool
	Comment    string
}

// Record is one emitted instruction: an opcode, up to two operands, and
// auxiliary metadata. The zero Record (Op == opcode.None) is the deleted-
// instruction filler used by dead-store elimination.
type Record struct {
	Op   opcode.Opcode
	A, B operand.Operand
	Aux  Aux
}

// Deleted reports whether r has been nulled out by the optimizer.
func (r Record) Deleted() bool { return r.Op == opcode.None }

func (r Record) String() string {
	if r.Deleted() {
		return "(deleted)"
	}
	s := fmt.Sprintf("%v", r.Op)
	if !r.A.IsNone() {
		s += " " + r.A.String()
	}
	if !r.B.IsNone() {
		if !r.A.IsNone() {
			s += ","
		}
		s += " " + r.B.String()
	}
	if r.Aux.Comment != "" {
		s += " ; " + r.Aux.Comment
	}
	return s
}
