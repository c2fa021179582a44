package cmd

import (
	"fmt"
	"os"

	"github.com/bradford-hamilton/chippy/internal/asm"
	"github.com/bradford-hamilton/chippy/internal/chip8"
	"github.com/spf13/cobra"
)

// disasmCmd renders a raw .ch8 rom image as text, one instruction per line.
var disasmCmd = &cobra.Command{
	Use:   "disasm path/to/rom.ch8",
	Short: "disassemble a rom image",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisasm,
}

func runDisasm(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}

	mem := make([]byte, chip8.ProgramStart+len(raw))
	copy(mem[chip8.ProgramStart:], raw)

	table := asm.NewTable()
	end := chip8.ProgramStart + len(raw)
	for addr := chip8.ProgramStart; addr < end; {
		text, size, ok := asm.DisassembleMemory(table, mem, addr)
		if !ok || size <= 0 {
			fmt.Printf("0x%04X  .data 0x%02X\n", addr, mem[addr])
			addr++
			continue
		}
		fmt.Printf("0x%04X  %s\n", addr, text)
		addr += size
	}
	return nil
}
