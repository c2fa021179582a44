package asm

import "strings"

// Disassemble renders a single encoded opcode word as assembler-source
// text, e.g. "ld v3, 0x20". It returns false if no row in the table
// matches the word's instruction family.
func Disassemble(table *Table, word uint16) (string, bool) {
	row, ok := table.FindByOpcode(word)
	if !ok {
		return "", false
	}

	n := row.ParameterCount()
	if n == 0 {
		return row.Mnemonic, true
	}

	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = Render(row, word, i)
	}
	return row.Mnemonic + " " + strings.Join(parts, ", "), true
}

// DisassembleMemory reads a big-endian 16-bit word at addr and disassembles
// it, reporting how many bytes were consumed: 2, or 0 when addr+1 lies
// outside mem.
func DisassembleMemory(table *Table, mem []byte, addr int) (text string, size int, ok bool) {
	if addr < 0 || addr+1 >= len(mem) {
		return "", 0, false
	}
	word := uint16(mem[addr])<<8 | uint16(mem[addr+1])
	text, ok = Disassemble(table, word)
	return text, 2, ok
}
