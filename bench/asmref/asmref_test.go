package asmref_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wazerojit/x86emit/bench/asmref"
	"github.com/wazerojit/x86emit/emit"
	"github.com/wazerojit/x86emit/instr"
	"github.com/wazerojit/x86emit/opcode"
	"github.com/wazerojit/x86emit/operand"
	"github.com/wazerojit/x86emit/state"
)

func TestAssembleSimpleSequence(t *testing.T) {
	buf := instr.NewBuffer(0)
	c := state.New(buf)

	emit.RegNum(c, opcode.Mov, operand.EAX, 5)
	emit.GPRegReg(c, opcode.Add, operand.EAX, operand.ECX)
	emit.Zero(c, opcode.Ret)

	tr, err := asmref.NewTranslator("amd64")
	require.NoError(t, err)

	code, err := tr.Assemble(buf)
	require.NoError(t, err)
	require.NotEmpty(t, code)
}

func TestAssembleUnsupportedOpcodeErrors(t *testing.T) {
	buf := instr.NewBuffer(0)
	c := state.New(buf)

	emit.RegNum(c, opcode.Mov, operand.ECX, 4)
	emit.Zero(c, opcode.RepMovsd)

	tr, err := asmref.NewTranslator("amd64")
	require.NoError(t, err)

	_, err = tr.Assemble(buf)
	require.Error(t, err)
}

func TestAssembleForwardJumpResolves(t *testing.T) {
	buf := instr.NewBuffer(0)
	c := state.New(buf)

	emit.Jump(c, opcode.Jmp, operand.Label(1), false, false)
	emit.Label(c, operand.Label(1), true)
	emit.Zero(c, opcode.Ret)

	tr, err := asmref.NewTranslator("amd64")
	require.NoError(t, err)

	code, err := tr.Assemble(buf)
	require.NoError(t, err)
	require.NotEmpty(t, code)
}
