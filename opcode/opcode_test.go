package opcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringKnownOpcodes(t *testing.T) {
	require.Equal(t, "NONE", None.String())
	require.Equal(t, "MOVL", Mov.String())
	require.Equal(t, "CALL", Call.String())
	require.Equal(t, "RET", Ret.String())
}

func TestStringUnknownOpcode(t *testing.T) {
	require.Equal(t, "OPCODE(?)", Opcode(-1).String())
	require.Equal(t, "OPCODE(?)", Opcode(10000).String())
}
