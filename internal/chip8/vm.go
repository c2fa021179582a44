// Package chip8 implements the CHIP-8 / SUPER-CHIP virtual machine: memory,
// register file, call stack, timers, framebuffer, input latch, and the
// full instruction set including the SUPER-CHIP resolution switches.
package chip8

import (
	"math/rand"
	"time"

	"github.com/bradford-hamilton/chippy/internal/font"
)

// Memory layout and sizing constants (spec §3).
const (
	MemorySize     = 0x11000
	VariableCount  = 16
	ProgramStart   = 0x200
	ProgramMaxSize = MemorySize - ProgramStart
	FontStart      = 0x000
	BigFontStart   = 0x100
)

// Status reports why step() stopped making forward progress.
type Status int

const (
	StatusOK Status = iota
	StatusInvalidInstruction
	StatusNoReturn
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidInstruction:
		return "invalid_instruction"
	case StatusNoReturn:
		return "no_return"
	default:
		return "unknown"
	}
}

// stepContext buffers pc behavior during a single instruction: handlers
// observe the instruction's own address via currentPC while deciding
// pendingPC, the address step() will commit to pc once the handler
// returns.
type stepContext struct {
	currentPC uint16
	pendingPC uint16
}

func newStepContext(pc uint16) stepContext {
	return stepContext{currentPC: pc, pendingPC: pc + 2}
}

func (c *stepContext) revertPC()        { c.pendingPC = c.currentPC }
func (c *stepContext) skipNextInstr()   { c.pendingPC += 2 }
func (c *stepContext) setPendingPC(w uint16) { c.pendingPC = w }

// VM is the CHIP-8 / SUPER-CHIP virtual machine.
type VM struct {
	Memory      [MemorySize]byte
	V           [VariableCount]byte
	RPL         [VariableCount]byte
	CallStack   []uint16
	Framebuffer *Framebuffer
	Input       *InputState
	Status      Status
	PC          uint16
	I           uint16
	DT, ST      byte

	rng *rand.Rand
	ctx stepContext
}

// NewVM constructs a VM with font glyphs copied in and all other state at
// its documented initial value.
func NewVM() *VM {
	vm := &VM{
		Framebuffer: NewFramebuffer(64, 32),
		Input:       NewInputState(),
		PC:          ProgramStart,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	vm.copyFontGlyphs()
	return vm
}

// Reset reinitializes all state as if the VM had just been constructed,
// without allocating a new one.
func (vm *VM) Reset() {
	for i := range vm.Memory {
		vm.Memory[i] = 0
	}
	vm.copyFontGlyphs()
	vm.V = [VariableCount]byte{}
	vm.RPL = [VariableCount]byte{}
	vm.CallStack = nil
	vm.Framebuffer = NewFramebuffer(64, 32)
	vm.Input.Clear()
	vm.Status = StatusOK
	vm.PC = ProgramStart
	vm.I = 0
	vm.DT = 0
	vm.ST = 0
}

func (vm *VM) copyFontGlyphs() {
	copy(vm.Memory[FontStart:], font.Set[:])
	copy(vm.Memory[BigFontStart:], font.BigSet[:])
}

// fetch reads the big-endian 16-bit word at pc.
func (vm *VM) fetch() uint16 {
	return uint16(vm.Memory[vm.PC])<<8 | uint16(vm.Memory[vm.PC+1])
}

func (vm *VM) setVF(on bool) {
	if on {
		vm.V[0xF] = 1
	} else {
		vm.V[0xF] = 0
	}
}

// Step performs one fetch/decode/execute cycle. It is a synchronous,
// non-reentrant call; once Status leaves StatusOK, further calls are
// no-ops until Reset.
func (vm *VM) Step() {
	if vm.Status != StatusOK {
		return
	}

	word := vm.fetch()
	vm.ctx = newStepContext(vm.PC)

	op := byte(word >> 12)
	a := byte((word >> 8) & 0xF)
	b := byte((word >> 4) & 0xF)
	c := byte(word & 0xF)
	bc := byte(word & 0xFF)
	abc := word & 0x0FFF

	switch op {
	case 0x0:
		vm.sys(abc)
	case 0x1:
		vm.jmp(abc)
	case 0x2:
		vm.call(abc)
	case 0x3:
		vm.skeqVK(a, bc)
	case 0x4:
		vm.skneVK(a, bc)
	case 0x5:
		vm.skeqVV(a, b)
	case 0x6:
		vm.ldVK(a, bc)
	case 0x7:
		vm.addVK(a, bc)
	case 0x8:
		vm.arith(a, b, c)
	case 0x9:
		vm.skneVV(a, b)
	case 0xA:
		vm.ldIAddr(abc)
	case 0xB:
		vm.jmp0(abc)
	case 0xC:
		vm.randOp(a, bc)
	case 0xD:
		vm.disp(a, b, c)
	case 0xE:
		vm.inputCtl(a, bc)
	case 0xF:
		vm.misc(a, bc)
	default:
		vm.badInstr()
	}

	if vm.Status == StatusOK {
		vm.Input.ClearLastKey()
	} else {
		vm.ctx.revertPC()
	}
	vm.PC = vm.ctx.pendingPC
}

// DecTimers decrements DT and ST towards zero. An external driver calls
// this at 60Hz.
func (vm *VM) DecTimers() {
	if vm.DT > 0 {
		vm.DT--
	}
	if vm.ST > 0 {
		vm.ST--
	}
}
