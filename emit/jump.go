package emit

import (
	"github.com/wazerojit/x86emit/instr"
	"github.com/wazerojit/x86emit/opcode"
	"github.com/wazerojit/x86emit/operand"
	"github.com/wazerojit/x86emit/state"
)

// Jump emits a control-transfer instruction targeting label. Call always
// fully invalidates; other transfers only invalidate when the caller says
// the target is optimization-opaque, additionally killing unread registers
// first when the jump is long enough that a look-behind rewrite across it
// would be unsafe.
func Jump(c *state.Context, op opcode.Opcode, label operand.Label, invalidate, longJump bool) {
	if c.Optimizing() {
		switch op {
		case opcode.Call:
			c.KillUnreadRegisters()
			c.InvalidateState()
		default:
			if invalidate {
				if longJump {
					c.KillUnreadRegisters()
				}
				c.InvalidateState()
			}
		}
	}
	c.Buffer().Append(instr.Record{
		Op: op,
		A:  operand.NewLabel(label),
		Aux: instr.Aux{
			LabelID:    label,
			Invalidate: invalidate,
			LongJump:   longJump,
		},
	})
}

// Label appends a label record at the current position. Labels marking
// optimization-opaque join points (e.g. the target of a backward branch
// from an unknown predecessor) must pass invalidate=true; pure
// assembler-only fall-through markers need not.
func Label(c *state.Context, id operand.Label, invalidate bool) {
	if c.Optimizing() && invalidate {
		c.InvalidateState()
	}
	c.Buffer().Append(instr.Record{
		Op:  opcode.Label,
		A:   operand.NewLabel(id),
		Aux: instr.Aux{LabelID: id, Invalidate: invalidate},
	})
}

// SetLookBehind toggles peephole look-behind. Disabling it marks a
// basic-block boundary the translator has chosen: any register whose value
// was never read since its last write is killed, the current buffer
// position is recorded, and the entire abstract state is invalidated.
// Re-enabling it is a pure flag flip. A no-op entirely when the optimizer
// is disabled, since there is no state left to mark a boundary in.
func SetLookBehind(c *state.Context, enabled bool) {
	if !c.Optimizing() || enabled {
		return
	}
	c.KillUnreadRegisters()
	c.NoteLastInvalidate()
	c.InvalidateState()
	c.ClearRegUpdate(operand.ESP)
}
