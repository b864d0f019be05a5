package operand

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOperandEqual(t *testing.T) {
	for _, tc := range []struct {
		name     string
		a, b     Operand
		expEqual bool
	}{
		{name: "none==none", a: None, b: None, expEqual: true},
		{name: "reg==reg same", a: NewReg(1), b: NewReg(1), expEqual: true},
		{name: "reg!=reg diff", a: NewReg(1), b: NewReg(2), expEqual: false},
		{name: "num==num", a: NewNum(5), b: NewNum(5), expEqual: true},
		{name: "num!=imm64 shape mismatch", a: NewNum(5), b: NewImm64(5), expEqual: false},
		{
			name:     "ptr== ignores multiplier without index",
			a:        NewPtr(Ptr{Size: SizeDWord, Base: 3, Index: NoReg, Multiplier: 1, Displacement: -4}),
			b:        NewPtr(Ptr{Size: SizeDWord, Base: 3, Index: NoReg, Multiplier: 8, Displacement: -4}),
			expEqual: true,
		},
		{
			name:     "ptr!= when multiplier differs with index set",
			a:        NewPtr(Ptr{Size: SizeDWord, Base: 3, Index: 4, Multiplier: 1, Displacement: -4}),
			b:        NewPtr(Ptr{Size: SizeDWord, Base: 3, Index: 4, Multiplier: 2, Displacement: -4}),
			expEqual: false,
		},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expEqual, tc.a.Equal(tc.b))
			require.Equal(t, tc.expEqual, tc.b.Equal(tc.a))
		})
	}
}

func TestSizeBytes(t *testing.T) {
	require.Equal(t, 1, SizeByte.Bytes())
	require.Equal(t, 2, SizeWord.Bytes())
	require.Equal(t, 4, SizeDWord.Bytes())
	require.Equal(t, 8, SizeQWord.Bytes())
	require.Panics(t, func() { SizeNone.Bytes() })
}

func TestReferencesReg(t *testing.T) {
	require.True(t, NewReg(5).ReferencesReg(5))
	require.False(t, NewReg(5).ReferencesReg(6))
	require.True(t, NewPtr(Ptr{Base: 5, Index: NoReg}).ReferencesReg(5))
	require.True(t, NewPtr(Ptr{Base: NoReg, Index: 5}).ReferencesReg(5))
	require.False(t, NewNum(5).ReferencesReg(5))
}

func TestIsConstantPool(t *testing.T) {
	require.True(t, Ptr{Base: FramePointerReg, Index: NoReg}.IsConstantPool())
	require.False(t, Ptr{Base: FramePointerReg, Index: 1}.IsConstantPool())
	require.False(t, Ptr{Base: 0, Index: NoReg}.IsConstantPool())
}

func TestMayAlias(t *testing.T) {
	for _, tc := range []struct {
		name     string
		a, b     Ptr
		expAlias bool
	}{
		{
			name:     "disjoint dword ranges same base",
			a:        Ptr{Size: SizeDWord, Base: 1, Index: NoReg, Displacement: -4},
			b:        Ptr{Size: SizeDWord, Base: 1, Index: NoReg, Displacement: -8},
			expAlias: false,
		},
		{
			name:     "overlapping ranges same base",
			a:        Ptr{Size: SizeDWord, Base: 1, Index: NoReg, Displacement: -4},
			b:        Ptr{Size: SizeDWord, Base: 1, Index: NoReg, Displacement: -6},
			expAlias: true,
		},
		{
			name:     "different base is conservatively aliasing",
			a:        Ptr{Size: SizeDWord, Base: 1, Index: NoReg, Displacement: -4},
			b:        Ptr{Size: SizeDWord, Base: 2, Index: NoReg, Displacement: -4},
			expAlias: true,
		},
		{
			name:     "index register forces conservative aliasing",
			a:        Ptr{Size: SizeDWord, Base: 1, Index: 3, Multiplier: 4, Displacement: 0},
			b:        Ptr{Size: SizeDWord, Base: 1, Index: NoReg, Displacement: 100},
			expAlias: true,
		},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expAlias, MayAlias(tc.a, tc.b))
			require.Equal(t, tc.expAlias, MayAlias(tc.b, tc.a))
		})
	}
}
