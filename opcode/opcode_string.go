package opcode

// names mirrors the mnemonic spellings golang-asm's x86 instruction table
// (cmd/internal/obj/x86.Anames, vendored as
// github.com/twitchyliquid64/golang-asm/obj/x86) uses for the same
// instructions, so debug output reads like a real assembler's rather than
// an invented spelling.
var names = [...]string{
	None:     "NONE",
	Mov:      "MOVL",
	Mov64:    "MOVQ",
	Movsx:    "MOVSX",
	Lea:      "LEAL",
	Movss:    "MOVSS",
	Movsd:    "MOVSD",
	Add:      "ADDL",
	Sub:      "SUBL",
	Imul:     "IMULL",
	Idiv:     "IDIVL",
	Neg:      "NEGL",
	Not:      "NOTL",
	And:      "ANDL",
	Or:       "ORL",
	Xor:      "XORL",
	Sal:      "SALL",
	Sar:      "SARL",
	Cmp:      "CMPL",
	Test:     "TESTL",
	SetL:     "SETLT",
	SetG:     "SETGT",
	SetLE:    "SETLE",
	SetGE:    "SETGE",
	SetE:     "SETEQ",
	SetNE:    "SETNE",
	SetZ:     "SETEQ",
	SetNZ:    "SETNE",
	Jmp:      "JMP",
	Ja:       "JHI",
	Jae:      "JCC",
	Jb:       "JCS",
	Jbe:      "JLS",
	Je:       "JEQ",
	Jg:       "JGT",
	Jl:       "JLT",
	Jne:      "JNE",
	Jp:       "JPS",
	Jnp:      "JPC",
	Jge:      "JGE",
	Jle:      "JLE",
	Call:     "CALL",
	Ret:      "RET",
	Addsd:    "ADDSD",
	Subsd:    "SUBSD",
	Mulsd:    "MULSD",
	Divsd:    "DIVSD",
	Cmpeqsd:  "CMPEQSD",
	Cmpltsd:  "CMPLTSD",
	Cmplesd:  "CMPLESD",
	Cmpneqsd: "CMPNEQSD",
	Cvtss2sd: "CVTSS2SD",
	Cvtsd2ss: "CVTSD2SS",
	Cvtsi2sd: "CVTSL2SD",
	RepMovsd: "REP; MOVSL",
	Label:    "LABEL",
	Use32:    "USE32",
}

func (op Opcode) String() string {
	if int(op) >= 0 && int(op) < len(names) && names[op] != "" {
		return names[op]
	}
	return "OPCODE(?)"
}
