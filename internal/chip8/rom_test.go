package chip8_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bradford-hamilton/chippy/internal/chip8"
	"github.com/stretchr/testify/require"
)

func TestLoadROM_RawBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.ch8")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0xE0, 0x12, 0x00}, 0o644))

	vm := chip8.NewVM()
	require.NoError(t, vm.LoadROM(path))

	require.Equal(t, byte(0x00), vm.Memory[chip8.ProgramStart])
	require.Equal(t, byte(0xE0), vm.Memory[chip8.ProgramStart+1])
}

func TestLoadROM_AssemblesSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.c8s")
	require.NoError(t, os.WriteFile(path, []byte("cls\n"), 0o644))

	vm := chip8.NewVM()
	require.NoError(t, vm.LoadROM(path))

	require.Equal(t, byte(0x00), vm.Memory[chip8.ProgramStart])
	require.Equal(t, byte(0xE0), vm.Memory[chip8.ProgramStart+1])
}

func TestLoadROM_UnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.txt")
	require.NoError(t, os.WriteFile(path, []byte{0x00}, 0o644))

	vm := chip8.NewVM()
	err := vm.LoadROM(path)

	require.Error(t, err)
}

func TestLoadROM_TooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.ch8")
	require.NoError(t, os.WriteFile(path, make([]byte, chip8.ProgramMaxSize+1), 0o644))

	vm := chip8.NewVM()
	err := vm.LoadROM(path)

	require.Error(t, err)
}
