package instr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wazerojit/x86emit/opcode"
	"github.com/wazerojit/x86emit/operand"
)

func TestBufferAppendStableIndices(t *testing.T) {
	b := NewBuffer(0)
	i0 := b.Append(Record{Op: opcode.Mov, A: operand.NewReg(0), B: operand.NewNum(1)})
	i1 := b.Append(Record{Op: opcode.Ret})
	require.Equal(t, 0, i0)
	require.Equal(t, 1, i1)
	require.Equal(t, 2, b.Len())

	b.Null(i0)
	require.True(t, b.At(i0).Deleted())
	require.Equal(t, 1, i1) // unaffected by nulling an earlier index
	require.False(t, b.At(i1).Deleted())
}

func TestBufferRangeSkipsDeleted(t *testing.T) {
	b := NewBuffer(0)
	b.Append(Record{Op: opcode.Mov})
	b.Append(Record{Op: opcode.Add})
	b.Null(0)

	var seen []int
	b.Range(func(index int, r Record) { seen = append(seen, index) })
	require.Equal(t, []int{1}, seen)
}

func TestBufferDumpSkipsDeleted(t *testing.T) {
	b := NewBuffer(0)
	b.Append(Record{Op: opcode.Mov, A: operand.NewReg(0), B: operand.NewNum(5)})
	b.Append(Record{Op: opcode.Ret})
	b.Null(1)

	var buf bytes.Buffer
	require.NoError(t, b.Dump(&buf))
	require.Contains(t, buf.String(), "MOVL")
	require.NotContains(t, buf.String(), "RET")
}
