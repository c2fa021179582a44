package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bradford-hamilton/chippy/internal/asm"
	"github.com/spf13/cobra"
)

var assembleOut string

// assembleCmd compiles chippy assembly source into a raw .ch8 rom image.
var assembleCmd = &cobra.Command{
	Use:   "assemble path/to/source.c8s [path/to/out.ch8]",
	Short: "assemble chippy assembly source into a rom image",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runAssemble,
}

func init() {
	assembleCmd.Flags().StringVarP(&assembleOut, "out", "o", "", "output rom path (default: source path with .ch8)")
}

func runAssemble(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	program, err := asm.Assemble(string(src))
	if err != nil {
		return err
	}

	out := assembleOut
	if out == "" && len(args) == 2 {
		out = args[1]
	}
	if out == "" {
		out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".ch8"
	}
	if err := os.WriteFile(out, program, 0o644); err != nil {
		return fmt.Errorf("writing rom: %w", err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", out, len(program))
	return nil
}
