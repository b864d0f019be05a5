package operand

// IsConstantPool reports whether p addresses the immutable constant pool:
// based on FramePointerReg with no index register. Such addresses are
// exempt from any write-based invalidation.
func (p Ptr) IsConstantPool() bool {
	return p.Index == NoReg && p.Base == FramePointerReg
}

// MayAlias reports whether a and b might refer to overlapping memory.
//
// They are provably disjoint only when both have no index register, share
// the same base register, and their byte ranges [Displacement,
// Displacement+Size) do not overlap. Anything else is conservatively
// treated as potentially aliasing.
func MayAlias(a, b Ptr) bool {
	return !provablyDisjoint(a, b)
}

func provablyDisjoint(a, b Ptr) bool {
	if a.Index != NoReg || b.Index != NoReg {
		return false
	}
	if a.Base != b.Base {
		return false
	}
	aLo, aHi := int64(a.Displacement), int64(a.Displacement)+int64(a.Size.Bytes())
	bLo, bHi := int64(b.Displacement), int64(b.Displacement)+int64(b.Size.Bytes())
	return aHi <= bLo || bHi <= aLo
}
