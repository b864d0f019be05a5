package emit

import (
	"fmt"

	"github.com/wazerojit/x86emit/instr"
	"github.com/wazerojit/x86emit/opcode"
	"github.com/wazerojit/x86emit/operand"
	"github.com/wazerojit/x86emit/state"
)

// Zero emits a zero-operand instruction.
func Zero(c *state.Context, op opcode.Opcode) {
	if !c.Optimizing() {
		c.Buffer().Append(instr.Record{Op: op})
		return
	}
	switch op {
	case opcode.Ret:
		c.InvalidateState()
		c.ReadRegister(operand.EAX)
		c.ReadRegister(operand.EDX)
	case opcode.RepMovsd:
		if _, ok := c.GenReg(operand.ECX).IsNum(); !ok {
			panic(fmt.Sprintf("BUG: %s requires ECX to hold a known repeat count", op))
		}
		c.InvalidateState()
		c.ReadRegister(operand.ECX)
		c.ReadRegister(operand.ESI)
		c.ReadRegister(operand.EDI)
	}
	c.Buffer().Append(instr.Record{Op: op})
}
