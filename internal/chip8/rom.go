package chip8

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bradford-hamilton/chippy/internal/asm"
)

// LoadROM reads path and copies its program bytes into memory starting at
// ProgramStart. A .ch8 file is loaded as a raw binary image; a .c8s file is
// assembled first via internal/asm. Any other extension is rejected. Load
// does not reset the VM: callers that want a clean register/timer state
// call Reset beforehand.
func (vm *VM) LoadROM(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("chip8: read rom: %w", err)
	}

	var program []byte
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ch8":
		program = raw
	case ".c8s":
		program, err = asm.Assemble(string(raw))
		if err != nil {
			return fmt.Errorf("chip8: assemble rom: %w", err)
		}
	default:
		return fmt.Errorf("chip8: unrecognized rom extension %q", ext)
	}

	if len(program) > ProgramMaxSize {
		return fmt.Errorf("chip8: rom %d bytes exceeds max size %d", len(program), ProgramMaxSize)
	}

	copy(vm.Memory[ProgramStart:], program)
	return nil
}
