package asm_test

import (
	"testing"

	"github.com/bradford-hamilton/chippy/internal/asm"
	"github.com/stretchr/testify/require"
)

func TestFindBySignature_ExactMatch(t *testing.T) {
	table := asm.NewTable()

	row, ok := table.FindBySignature("add", asm.OperandV, asm.OperandV, asm.OperandNone)

	require.True(t, ok)
	require.Equal(t, uint16(0x8004), row.Opcode)
}

func TestFindBySignature_NoMatch(t *testing.T) {
	table := asm.NewTable()

	_, ok := table.FindBySignature("add", asm.OperandV, asm.OperandAddr, asm.OperandNone)

	require.False(t, ok)
}

func TestFindByOpcode_StripsOperandBits(t *testing.T) {
	table := asm.NewTable()

	row, ok := table.FindByOpcode(0x63AB) // ld v3, 0xAB
	require.True(t, ok)
	require.Equal(t, "ld", row.Mnemonic)
	require.Equal(t, asm.OperandV, row.A)
	require.Equal(t, asm.OperandK, row.B)
}

func TestFindByOpcode_EightFamilyUsesFourNibbleMask(t *testing.T) {
	table := asm.NewTable()

	row, ok := table.FindByOpcode(0x8125) // sub v1, v2
	require.True(t, ok)
	require.Equal(t, "sub", row.Mnemonic)
}

func TestEncodeThenExtract_RoundTrips(t *testing.T) {
	table := asm.NewTable()
	row, ok := table.FindBySignature("ld", asm.OperandV, asm.OperandK, asm.OperandNone)
	require.True(t, ok)

	word, err := asm.Encode(row, 0x3, 0xAB, 0)
	require.NoError(t, err)

	require.Equal(t, 0x3, asm.Extract(row, word, 0))
	require.Equal(t, 0xAB, asm.Extract(row, word, 1))
}

func TestEncode_OutOfRangeOperandReturnsBadRange(t *testing.T) {
	table := asm.NewTable()
	row, ok := table.FindBySignature("ld", asm.OperandV, asm.OperandK, asm.OperandNone)
	require.True(t, ok)

	_, err := asm.Encode(row, 0x3, 0x1000, 0)

	require.Error(t, err)
}

func TestRender_FormatsOperandsByKind(t *testing.T) {
	table := asm.NewTable()
	row, ok := table.FindBySignature("ld", asm.OperandV, asm.OperandK, asm.OperandNone)
	require.True(t, ok)
	word, err := asm.Encode(row, 0xA, 0x42, 0)
	require.NoError(t, err)

	require.Equal(t, "vA", asm.Render(row, word, 0))
	require.Equal(t, "0x42", asm.Render(row, word, 1))
}

func TestOperandMask_KWidthDerivedFromFreeBits(t *testing.T) {
	table := asm.NewTable()

	jmp, ok := table.FindBySignature("jmp", asm.OperandAddr, asm.OperandNone, asm.OperandNone)
	require.True(t, ok)
	require.Equal(t, 0xFFF, asm.OperandMask(jmp, asm.OperandAddr))

	ld, ok := table.FindBySignature("ld", asm.OperandV, asm.OperandK, asm.OperandNone)
	require.True(t, ok)
	require.Equal(t, 0xFF, asm.OperandMask(ld, asm.OperandK))
}

func TestIsMnemonic(t *testing.T) {
	table := asm.NewTable()

	require.True(t, table.IsMnemonic("cls"))
	require.False(t, table.IsMnemonic("nope"))
}
