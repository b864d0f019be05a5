package emit_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wazerojit/x86emit/emit"
	"github.com/wazerojit/x86emit/instr"
	"github.com/wazerojit/x86emit/opcode"
	"github.com/wazerojit/x86emit/operand"
	"github.com/wazerojit/x86emit/state"
)

func liveRecords(buf *instr.Buffer) []instr.Record {
	var out []instr.Record
	buf.Range(func(_ int, r instr.Record) { out = append(out, r) })
	return out
}

// Scenario 1: constant folding + dead store.
func TestScenarioConstantFoldingDeadStore(t *testing.T) {
	buf := instr.NewBuffer(0)
	c := state.New(buf)

	emit.RegNum(c, opcode.Mov, operand.EAX, 5)
	emit.RegNum(c, opcode.Mov, operand.EAX, 5)
	emit.RegNum(c, opcode.Mov, operand.EAX, 7)

	live := liveRecords(buf)
	require.Len(t, live, 1)
	require.Equal(t, opcode.Mov, live[0].Op)
	require.True(t, live[0].A.Equal(operand.NewReg(operand.EAX)))
	require.True(t, live[0].B.Equal(operand.NewNum(7)))
	require.Equal(t, 2, c.OptimizationCount())
}

// Scenario 2: load CSE via an existing register known-value.
func TestScenarioLoadCSEFromRegister(t *testing.T) {
	buf := instr.NewBuffer(0)
	c := state.New(buf)
	addr := operand.Ptr{Size: operand.SizeDWord, Base: operand.EBP, Index: operand.NoReg, Displacement: -4}

	emit.RegMem(c, opcode.Mov, operand.EAX, addr)
	emit.RegMem(c, opcode.Mov, operand.EBX, addr)

	live := liveRecords(buf)
	require.Len(t, live, 2)
	require.True(t, live[0].A.Equal(operand.NewReg(operand.EAX)))
	require.True(t, live[0].B.Equal(operand.NewPtr(addr)))
	require.True(t, live[1].A.Equal(operand.NewReg(operand.EBX)))
	require.True(t, live[1].B.Equal(operand.NewReg(operand.EAX)))
}

// Scenario 3: a store forwards its value directly to a later load of the
// same address.
func TestScenarioStoreForwardsToRegister(t *testing.T) {
	buf := instr.NewBuffer(0)
	c := state.New(buf)
	addr := operand.Ptr{Size: operand.SizeDWord, Base: operand.EBP, Index: operand.NoReg, Displacement: -8}

	emit.MemReg(c, opcode.Mov, addr, operand.ECX)
	emit.RegMem(c, opcode.Mov, operand.EDX, addr)

	live := liveRecords(buf)
	require.Len(t, live, 2)
	require.True(t, live[0].A.Equal(operand.NewPtr(addr)))
	require.True(t, live[0].B.Equal(operand.NewReg(operand.ECX)))
	require.True(t, live[1].A.Equal(operand.NewReg(operand.EDX)))
	require.True(t, live[1].B.Equal(operand.NewReg(operand.ECX)))
}

// Scenario 4: an intervening aliasing store invalidates the cached load,
// so the final load is not rewritten.
func TestScenarioAliasInvalidation(t *testing.T) {
	buf := instr.NewBuffer(0)
	c := state.New(buf)
	addr := operand.Ptr{Size: operand.SizeDWord, Base: operand.EBP, Index: operand.NoReg, Displacement: -4}

	emit.RegMem(c, opcode.Mov, operand.EAX, addr)
	emit.MemReg(c, opcode.Mov, addr, operand.EBX)
	emit.RegMem(c, opcode.Mov, operand.ECX, addr)

	live := liveRecords(buf)
	require.Len(t, live, 3)
	require.True(t, live[2].A.Equal(operand.NewReg(operand.ECX)))
	require.True(t, live[2].B.Equal(operand.NewPtr(addr)), "the intervening store must invalidate the cached load")
}

// Scenario 5: a store to a provably-disjoint address does not invalidate
// an unrelated cached load.
func TestScenarioDisjointRangeNonInvalidation(t *testing.T) {
	buf := instr.NewBuffer(0)
	c := state.New(buf)
	addr4 := operand.Ptr{Size: operand.SizeDWord, Base: operand.EBP, Index: operand.NoReg, Displacement: -4}
	addr8 := operand.Ptr{Size: operand.SizeDWord, Base: operand.EBP, Index: operand.NoReg, Displacement: -8}

	emit.RegMem(c, opcode.Mov, operand.EAX, addr4)
	emit.MemReg(c, opcode.Mov, addr8, operand.EBX)
	emit.RegMem(c, opcode.Mov, operand.ECX, addr4)

	live := liveRecords(buf)
	require.Len(t, live, 3)
	require.True(t, live[2].A.Equal(operand.NewReg(operand.ECX)))
	require.True(t, live[2].B.Equal(operand.NewReg(operand.EAX)), "disjoint ranges must not invalidate the cached load")
}

// Scenario 6: a call fully invalidates state, so a value held before the
// call is never substituted after it.
func TestScenarioFullInvalidationAtCall(t *testing.T) {
	buf := instr.NewBuffer(0)
	c := state.New(buf)

	emit.RegNum(c, opcode.Mov, operand.EAX, 5)
	emit.Jump(c, opcode.Call, operand.Label(0), false, false)
	emit.GPRegReg(c, opcode.Mov, operand.EBX, operand.EAX)

	require.True(t, c.GenReg(operand.EAX).IsNone())

	live := liveRecords(buf)
	last := live[len(live)-1]
	require.True(t, last.A.Equal(operand.NewReg(operand.EBX)))
	require.True(t, last.B.Equal(operand.NewReg(operand.EAX)), "no constant must be substituted for EAX after the call")
}

func TestMovRegRegSelfAssignmentSkipped(t *testing.T) {
	buf := instr.NewBuffer(0)
	c := state.New(buf)

	emit.GPRegReg(c, opcode.Mov, operand.EAX, operand.EAX)

	require.Equal(t, 0, buf.Len())
	require.Equal(t, 1, c.OptimizationCount())
}

func TestAddressFoldingRegisterPlusNumber(t *testing.T) {
	buf := instr.NewBuffer(0)
	c := state.New(buf)

	emit.RegNum(c, opcode.Mov, operand.ECX, 7)
	addr := operand.Ptr{Size: operand.SizeDWord, Base: operand.ECX, Index: operand.NoReg, Displacement: 4}
	folded := emit.FoldAddress(c, addr)

	require.Equal(t, operand.NoReg, folded.Base)
	require.Equal(t, int32(11), folded.Displacement)
}

func TestAddressFoldingRegisterCopy(t *testing.T) {
	buf := instr.NewBuffer(0)
	c := state.New(buf)

	emit.GPRegReg(c, opcode.Mov, operand.ECX, operand.ESI)
	addr := operand.Ptr{Size: operand.SizeDWord, Base: operand.ECX, Index: operand.NoReg}
	folded := emit.FoldAddress(c, addr)

	require.Equal(t, operand.ESI, folded.Base)
}

func TestRepMovsdRequiresKnownCount(t *testing.T) {
	buf := instr.NewBuffer(0)
	c := state.New(buf)

	require.Panics(t, func() { emit.Zero(c, opcode.RepMovsd) })

	emit.RegNum(c, opcode.Mov, operand.ECX, 16)
	require.NotPanics(t, func() { emit.Zero(c, opcode.RepMovsd) })
}

func TestLoadCSERewriteCarriesDebugComment(t *testing.T) {
	buf := instr.NewBuffer(0)
	c := state.New(buf)
	addr := operand.Ptr{Size: operand.SizeDWord, Base: operand.EBP, Index: operand.NoReg, Displacement: -4}

	emit.RegMem(c, opcode.Mov, operand.EAX, addr)
	emit.RegMem(c, opcode.Mov, operand.EBX, addr)

	var out bytes.Buffer
	require.NoError(t, buf.Dump(&out))
	require.Contains(t, out.String(), "cse:")
}

func TestSetLookBehindDisabledClearsState(t *testing.T) {
	buf := instr.NewBuffer(0)
	c := state.New(buf)

	emit.RegNum(c, opcode.Mov, operand.EAX, 5)
	emit.SetLookBehind(c, false)

	require.True(t, c.GenReg(operand.EAX).IsNone())
}

func TestUnaryArithmeticOpcodesPassThrough(t *testing.T) {
	for _, op := range []opcode.Opcode{opcode.Neg, opcode.Not, opcode.Idiv} {
		buf := instr.NewBuffer(0)
		c := state.New(buf)

		require.NotPanics(t, func() { emit.Reg(c, op, operand.EAX) })
		require.Equal(t, 1, buf.Len())
		require.Equal(t, op, buf.At(0).Op)
		require.True(t, buf.At(0).A.Equal(operand.NewReg(operand.EAX)))
	}
}

func TestOptimizerDisabledNeverConsultsOrMutatesState(t *testing.T) {
	buf := instr.NewBuffer(0)
	c := state.New(buf, state.WithOptimizerDisabled())

	emit.RegNum(c, opcode.Mov, operand.EAX, 5)
	emit.RegNum(c, opcode.Mov, operand.EAX, 5) // would be elided if optimizing
	emit.GPRegReg(c, opcode.Mov, operand.EBX, operand.EBX) // would be skipped if optimizing

	require.Equal(t, 3, buf.Len())
	require.Equal(t, 0, c.OptimizationCount())
	require.True(t, c.GenReg(operand.EAX).IsNone(), "a disabled optimizer must never record a known value")

	emit.SetLookBehind(c, false)
	require.Equal(t, 3, buf.Len(), "SetLookBehind must be a no-op with the optimizer disabled")
}
