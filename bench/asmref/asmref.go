// Package asmref demonstrates the handoff from this repository's symbolic
// instruction stream to a real byte encoder. The emission core never
// encodes instructions itself; a downstream backend
// is expected to walk the buffer and hand each record to something that
// can. This package is that something, built on golang-asm, the same
// library the wazero lineage used before it grew its own amd64 encoder.
//
// Coverage is intentionally narrow: the subset of opcodes this repository's
// emit package actually produces via its documented operand shapes. SSE
// predicate compares (Cmpeqsd and friends) have no single golang-asm
// mnemonic and are left unsupported here, same as RepMovsd's string-move
// encoding and the unary Neg, Not and Idiv.
package asmref

import (
	"fmt"

	"github.com/twitchyliquid64/golang-asm/obj"
	"github.com/twitchyliquid64/golang-asm/obj/x86"

	"github.com/wazerojit/x86emit/instr"
	"github.com/wazerojit/x86emit/internal/asm/golang_asm"
	"github.com/wazerojit/x86emit/opcode"
	"github.com/wazerojit/x86emit/operand"
)

// gpReg maps this repository's general-purpose register ids to golang-asm's,
// grounded on the castAsGolangAsmRegister table pattern used for the
// golang-asm debug assembler comparison.
var gpReg = map[operand.Reg]int16{
	operand.EAX:                 x86.REG_AX,
	operand.ECX:                 x86.REG_CX,
	operand.EDX:                 x86.REG_DX,
	operand.EBX:                 x86.REG_BX,
	operand.ESP:                 x86.REG_SP,
	operand.EBP:                 x86.REG_BP,
	operand.ESI:                 x86.REG_SI,
	operand.EDI:                 x86.REG_DI,
	operand.FramePointerReg:      x86.REG_R14,
}

var xmmReg = [16]int16{
	x86.REG_X0, x86.REG_X1, x86.REG_X2, x86.REG_X3,
	x86.REG_X4, x86.REG_X5, x86.REG_X6, x86.REG_X7,
	x86.REG_X8, x86.REG_X9, x86.REG_X10, x86.REG_X11,
	x86.REG_X12, x86.REG_X13, x86.REG_X14, x86.REG_X15,
}

var mnemonic = map[opcode.Opcode]obj.As{
	opcode.Mov:      x86.AMOVL,
	opcode.Mov64:    x86.AMOVQ,
	opcode.Movsx:    x86.AMOVLQSX,
	opcode.Lea:      x86.ALEAQ,
	opcode.Movss:    x86.AMOVSS,
	opcode.Movsd:    x86.AMOVSD,
	opcode.Add:      x86.AADDL,
	opcode.Sub:      x86.ASUBL,
	opcode.Imul:     x86.AIMULL,
	opcode.And:      x86.AANDL,
	opcode.Or:       x86.AORL,
	opcode.Xor:      x86.AXORL,
	opcode.Sal:      x86.ASHLL,
	opcode.Sar:      x86.ASARL,
	opcode.Cmp:      x86.ACMPL,
	opcode.Test:     x86.ATESTL,
	opcode.SetL:     x86.ASETLT,
	opcode.SetG:     x86.ASETGT,
	opcode.SetLE:    x86.ASETLE,
	opcode.SetGE:    x86.ASETGE,
	opcode.SetE:     x86.ASETEQ,
	opcode.SetNE:    x86.ASETNE,
	opcode.SetZ:     x86.ASETEQ,
	opcode.SetNZ:    x86.ASETNE,
	opcode.Jmp:      obj.AJMP,
	opcode.Ja:       x86.AJHI,
	opcode.Jae:      x86.AJCC,
	opcode.Jb:       x86.AJCS,
	opcode.Jbe:      x86.AJLS,
	opcode.Je:       x86.AJEQ,
	opcode.Jg:       x86.AJGT,
	opcode.Jl:       x86.AJLT,
	opcode.Jne:      x86.AJNE,
	opcode.Jp:       x86.AJPS,
	opcode.Jnp:      x86.AJPC,
	opcode.Jge:      x86.AJGE,
	opcode.Jle:      x86.AJLE,
	opcode.Call:     obj.ACALL,
	opcode.Ret:      obj.ARET,
	opcode.Addsd:    x86.AADDSD,
	opcode.Subsd:    x86.ASUBSD,
	opcode.Mulsd:    x86.AMULSD,
	opcode.Divsd:    x86.ADIVSD,
	opcode.Cvtss2sd: x86.ACVTSS2SD,
	opcode.Cvtsd2ss: x86.ACVTSD2SS,
	opcode.Cvtsi2sd: x86.ACVTSL2SD,
}

// Translator walks an instr.Buffer and hands each live record to a
// golang-asm builder, resolving this repository's Label pseudo-records into
// golang-asm branch targets with obj.Addr.SetTarget. Branches to a label not
// yet defined are queued per label and patched when the label is reached.
type Translator struct {
	asm     *golang_asm.GolangAsmBaseAssembler
	pending map[operand.Label][]*obj.Prog
	defined map[operand.Label]*obj.Prog
}

// NewTranslator returns a Translator targeting the given GOARCH, normally
// "amd64".
func NewTranslator(arch string) (*Translator, error) {
	a, err := golang_asm.NewGolangAsmBaseAssembler(arch)
	if err != nil {
		return nil, fmt.Errorf("asmref: %w", err)
	}
	return &Translator{
		asm:     a,
		pending: map[operand.Label][]*obj.Prog{},
		defined: map[operand.Label]*obj.Prog{},
	}, nil
}

// Assemble translates every live record in buf, in order, and returns the
// encoded machine code.
func (t *Translator) Assemble(buf *instr.Buffer) ([]byte, error) {
	var translateErr error
	buf.Range(func(_ int, r instr.Record) {
		if translateErr != nil {
			return
		}
		if err := t.translate(r); err != nil {
			translateErr = err
		}
	})
	if translateErr != nil {
		return nil, translateErr
	}
	for label, progs := range t.pending {
		if len(progs) > 0 {
			return nil, fmt.Errorf("asmref: label %d referenced but never defined", label)
		}
	}
	return t.asm.Assemble()
}

func (t *Translator) translate(r instr.Record) error {
	switch r.Op {
	case opcode.Label, opcode.Use32:
		return t.defineLabel(operand.Label(r.Aux.LabelID))
	}

	as, ok := mnemonic[r.Op]
	if !ok {
		return fmt.Errorf("asmref: %s has no golang-asm mnemonic in this demonstration", r.Op)
	}

	p := t.asm.NewProg()
	p.As = as

	switch {
	case r.A.IsNone() && r.B.IsNone():
		// zero-operand: Ret, Call-via-label handled below.
	case r.Op == opcode.Call || isJump(r.Op):
		if label, ok := r.A.IsLabel(); ok {
			p.To.Type = obj.TYPE_BRANCH
			if target, ok := t.defined[label]; ok {
				p.To.SetTarget(target)
			} else {
				t.pending[label] = append(t.pending[label], p)
			}
		}
	default:
		if err := t.setOperand(&p.From, r.B); err != nil {
			return err
		}
		if err := t.setOperand(&p.To, r.A); err != nil {
			return err
		}
	}

	t.asm.AddInstruction(p)
	return nil
}

func isJump(op opcode.Opcode) bool {
	switch op {
	case opcode.Jmp, opcode.Ja, opcode.Jae, opcode.Jb, opcode.Jbe, opcode.Je,
		opcode.Jg, opcode.Jl, opcode.Jne, opcode.Jp, opcode.Jnp, opcode.Jge, opcode.Jle:
		return true
	default:
		return false
	}
}

func (t *Translator) defineLabel(label operand.Label) error {
	p := t.asm.NewProg()
	p.As = obj.ANOP
	t.asm.AddInstruction(p)
	t.defined[label] = p

	for _, pending := range t.pending[label] {
		pending.To.SetTarget(p)
	}
	delete(t.pending, label)
	return nil
}

func (t *Translator) setOperand(addr *obj.Addr, o operand.Operand) error {
	switch {
	case o.IsNone():
		addr.Type = obj.TYPE_NONE
	case mustReg(o):
		r, _ := o.IsReg()
		reg, ok := gpReg[r]
		if !ok {
			return fmt.Errorf("asmref: register %v has no golang-asm mapping", r)
		}
		addr.Type = obj.TYPE_REG
		addr.Reg = reg
	case mustXmmReg(o):
		x, _ := o.IsXmmReg()
		if int(x) < 0 || int(x) >= len(xmmReg) {
			return fmt.Errorf("asmref: xmm register %v out of range", x)
		}
		addr.Type = obj.TYPE_REG
		addr.Reg = xmmReg[x]
	case mustNum(o):
		v, _ := o.IsNum()
		addr.Type = obj.TYPE_CONST
		addr.Offset = int64(v)
	case mustImm64(o):
		v, _ := o.IsImm64()
		addr.Type = obj.TYPE_CONST
		addr.Offset = v
	default:
		p, ok := o.IsPtr()
		if !ok {
			return fmt.Errorf("asmref: operand %v has no golang-asm mapping", o)
		}
		base, ok := gpReg[p.Base]
		if !ok {
			return fmt.Errorf("asmref: pointer base %v has no golang-asm mapping", p.Base)
		}
		addr.Type = obj.TYPE_MEM
		addr.Reg = base
		addr.Offset = int64(p.Displacement)
		if p.Index != operand.NoReg {
			index, ok := gpReg[p.Index]
			if !ok {
				return fmt.Errorf("asmref: pointer index %v has no golang-asm mapping", p.Index)
			}
			addr.Index = index
			addr.Scale = int16(p.Multiplier)
		}
	}
	return nil
}

func mustReg(o operand.Operand) bool    { _, ok := o.IsReg(); return ok }
func mustXmmReg(o operand.Operand) bool { _, ok := o.IsXmmReg(); return ok }
func mustNum(o operand.Operand) bool    { _, ok := o.IsNum(); return ok }
func mustImm64(o operand.Operand) bool  { _, ok := o.IsImm64(); return ok }
