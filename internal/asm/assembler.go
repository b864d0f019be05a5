// Package asm holds the small set of architecture-independent types the
// golang-asm adapter in golang_asm needs. It used to also declare a full
// AssemblerBase interface and its own byte-level amd64 encoder; both were
// specific to compiling WebAssembly functions onto a value stack and had no
// counterpart in this repository's domain, so they were dropped rather
// than adapted.
package asm

import (
	"fmt"
	"math"
)

// Node represents a node in the linked list of assembled operations.
type Node interface {
	fmt.Stringer
	// AssignJumpTarget assigns the given target node as the destination of
	// jump instruction for this Node.
	AssignJumpTarget(target Node)
	// AssignDestinationConstant assigns the given constant as the destination
	// of the instruction for this node.
	AssignDestinationConstant(value ConstantValue)
	// AssignSourceConstant assigns the given constant as the source
	// of the instruction for this node.
	AssignSourceConstant(value ConstantValue)
	// OffsetInBinary returns the offset of this node in the assembled binary.
	OffsetInBinary() NodeOffsetInBinary
}

// NodeOffsetInBinary represents an offset of this node in the final binary.
type NodeOffsetInBinary = uint64

// ConstantValue represents a constant value used in an instruction.
type ConstantValue = int64

// JumpTableMaximumOffset bounds how far BuildJumpTable's offset table can
// span; kept in case a caller of golang_asm ever assembles a jump table
// from this repository's emitted records.
const JumpTableMaximumOffset = math.MaxUint32
