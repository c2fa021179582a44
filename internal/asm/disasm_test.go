package asm_test

import (
	"testing"

	"github.com/bradford-hamilton/chippy/internal/asm"
	"github.com/stretchr/testify/require"
)

func TestDisassemble_RendersMnemonicAndOperands(t *testing.T) {
	table := asm.NewTable()

	text, ok := asm.Disassemble(table, 0x63AB)

	require.True(t, ok)
	require.Equal(t, "ld v3, 0xAB", text)
}

func TestDisassemble_ZeroOperandForm(t *testing.T) {
	table := asm.NewTable()

	text, ok := asm.Disassemble(table, 0x00E0)

	require.True(t, ok)
	require.Equal(t, "cls", text)
}

func TestDisassemble_UnknownOpcodeReturnsFalse(t *testing.T) {
	table := asm.NewTable()

	_, ok := asm.Disassemble(table, 0x00FD)

	require.False(t, ok)
}

func TestAssembleThenDisassemble_RoundTrips(t *testing.T) {
	table := asm.NewTable()
	program, err := asm.Assemble("ld v3, 0xAB\nadd v3, v4\n")
	require.NoError(t, err)

	mem := make([]byte, 0x200+len(program))
	copy(mem[0x200:], program)

	text1, size1, ok := asm.DisassembleMemory(table, mem, 0x200)
	require.True(t, ok)
	require.Equal(t, 2, size1)
	require.Equal(t, "ld v3, 0xAB", text1)

	text2, size2, ok := asm.DisassembleMemory(table, mem, 0x200+size1)
	require.True(t, ok)
	require.Equal(t, 2, size2)
	require.Equal(t, "add v3, v4", text2)
}
