// Package opcode enumerates the x86/x86-64 instruction mnemonics the
// emission core is allowed to produce. It mirrors only the subset an
// optimizing JIT backend needs, not the full ISA.
package opcode

// Opcode identifies an instruction mnemonic understood by the emission core.
//
// Naming follows the AT&T-ish convention used by Go's own assembler and by
// golang-asm's instruction table (cmd/internal/obj/x86.Anames): a size
// suffix of L (32-bit) or Q (64-bit) distinguishes operand width where the
// instruction set has both.
type Opcode int

const (
	// None marks a deleted instruction record; kept so buffer indices stay
	// stable after dead-store elimination.
	None Opcode = iota

	// Data movement.
	Mov    // general-purpose move, 32-bit
	Mov64  // general-purpose move, 64-bit (also used for Imm64 loads)
	Movsx  // sign/zero-extending move
	Lea    // load effective address
	Movss  // scalar single-precision float move
	Movsd  // scalar double-precision float move

	// Arithmetic (32- and 64-bit families share one opcode; callers select
	// width via the operand shape they call through).
	Add
	Sub
	Imul
	Idiv
	Neg
	Not
	And
	Or
	Xor

	// Shifts. Source is architecturally pinned to ECX.
	Sal
	Sar

	// Compare / test / byte-set.
	Cmp
	Test
	SetL
	SetG
	SetLE
	SetGE
	SetE
	SetNE
	SetZ
	SetNZ

	// Control flow.
	Jmp
	Ja
	Jae
	Jb
	Jbe
	Je
	Jg
	Jl
	Jne
	Jp
	Jnp
	Jge
	Jle
	Call
	Ret

	// SSE2 scalar double arithmetic/compare and conversions.
	Addsd
	Subsd
	Mulsd
	Divsd
	Cmpeqsd
	Cmpltsd
	Cmplesd
	Cmpneqsd
	Cvtss2sd
	Cvtsd2ss
	Cvtsi2sd

	// String operations.
	RepMovsd

	// Structural pseudo-opcodes: not real instructions, but recorded in the
	// buffer like one.
	Label
	Use32
)
