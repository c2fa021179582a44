package asm_test

import (
	"testing"

	"github.com/bradford-hamilton/chippy/internal/asm"
	"github.com/stretchr/testify/require"
)

func TestAssemble_SimpleProgram(t *testing.T) {
	program, err := asm.Assemble("cls\nret\n")

	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0xE0, 0x00, 0xEE}, program)
}

func TestAssemble_ResolvesForwardLabel(t *testing.T) {
	source := `
jmp loop
loop:
  cls
`
	program, err := asm.Assemble(source)

	require.NoError(t, err)
	require.Equal(t, []byte{0x12, 0x02, 0x00, 0xE0}, program)
}

func TestAssemble_UndefinedLabelResolvesToZero(t *testing.T) {
	program, err := asm.Assemble("jmp nowhere\n")

	require.NoError(t, err)
	require.Equal(t, []byte{0x10, 0x00}, program)
}

func TestAssemble_DataPseudoInstruction(t *testing.T) {
	program, err := asm.Assemble("data 1, 2, 3\n")

	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, program)
}

func TestAssemble_InvalidSignatureReturnsHelpfulError(t *testing.T) {
	_, err := asm.Assemble("add v0, v1, v2\n")

	require.Error(t, err)
	se, ok := err.(*asm.SyntaxError)
	require.True(t, ok)
	require.True(t, se.HasHelp())
}

func TestAssemble_EncodesVariableOperands(t *testing.T) {
	program, err := asm.Assemble("ld v3, 0xAB\n")

	require.NoError(t, err)
	require.Equal(t, []byte{0x63, 0xAB}, program)
}

func TestAssemble_ZeroOperandFormTriedFirst(t *testing.T) {
	program, err := asm.Assemble("lores\n")

	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0xFE}, program)
}

func TestAssemble_OutOfRangeImmediateIsBadRange(t *testing.T) {
	_, err := asm.Assemble("ld v0, 0x1000\n")

	require.Error(t, err)
	se, ok := err.(*asm.SyntaxError)
	require.True(t, ok)
	require.Contains(t, se.Message, "bad_range")
}

func TestAssemble_OutOfRangeDataByteIsBadRange(t *testing.T) {
	_, err := asm.Assemble("data 300\n")

	require.Error(t, err)
	se, ok := err.(*asm.SyntaxError)
	require.True(t, ok)
	require.Contains(t, se.Message, "bad_range")
}
