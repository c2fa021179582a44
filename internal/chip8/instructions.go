package chip8

import "github.com/bradford-hamilton/chippy/internal/font"

// sys dispatches the 0x0 family: screen/control opcodes that don't fit
// the address-operand 0NNN form chippy's ancestors ignored.
func (vm *VM) sys(abc uint16) {
	switch abc {
	case 0x0E0:
		vm.cls()
	case 0x0EE:
		vm.ret()
	case 0x0FD:
		vm.badInstr()
	case 0x0FE:
		vm.lores()
	case 0x0FF:
		vm.hires()
	default:
		vm.badInstr()
	}
}

func (vm *VM) badInstr() {
	vm.Status = StatusInvalidInstruction
}

func (vm *VM) cls() {
	vm.Framebuffer.Clear()
}

func (vm *VM) ret() {
	if len(vm.CallStack) == 0 {
		vm.Status = StatusNoReturn
		return
	}
	n := len(vm.CallStack) - 1
	vm.ctx.setPendingPC(vm.CallStack[n])
	vm.CallStack = vm.CallStack[:n]
}

func (vm *VM) lores() {
	vm.Framebuffer = NewFramebuffer(64, 32)
}

func (vm *VM) hires() {
	vm.Framebuffer = NewFramebuffer(128, 64)
}

func (vm *VM) jmp(abc uint16) {
	vm.ctx.setPendingPC(abc)
}

func (vm *VM) call(abc uint16) {
	vm.CallStack = append(vm.CallStack, vm.ctx.pendingPC)
	vm.ctx.setPendingPC(abc)
}

func (vm *VM) skeqVK(a, bc byte) {
	if vm.V[a] == bc {
		vm.ctx.skipNextInstr()
	}
}

func (vm *VM) skneVK(a, bc byte) {
	if vm.V[a] != bc {
		vm.ctx.skipNextInstr()
	}
}

func (vm *VM) skeqVV(a, b byte) {
	if vm.V[a] == vm.V[b] {
		vm.ctx.skipNextInstr()
	}
}

func (vm *VM) ldVK(a, bc byte) {
	vm.V[a] = bc
}

func (vm *VM) addVK(a, bc byte) {
	vm.V[a] += bc
}

// arith dispatches the 0x8 family. Every branch computes its result from
// the pre-operation operands first, sets VF second, and writes the
// destination register last, so that when the destination is VF itself
// the arithmetic result overwrites the carry/borrow/shift-out bit.
func (vm *VM) arith(a, b, c byte) {
	switch c {
	case 0x0:
		vm.V[a] = vm.V[b]
	case 0x1:
		vm.V[a] |= vm.V[b]
	case 0x2:
		vm.V[a] &= vm.V[b]
	case 0x3:
		vm.V[a] ^= vm.V[b]
	case 0x4:
		r := uint16(vm.V[a]) + uint16(vm.V[b])
		vm.setVF(r > 0xFF)
		vm.V[a] = byte(r)
	case 0x5:
		r := vm.V[a] - vm.V[b]
		vm.setVF(vm.V[a] >= vm.V[b])
		vm.V[a] = r
	case 0x6:
		r := vm.V[b] >> 1
		vm.setVF(vm.V[b]&0x1 != 0)
		vm.V[a] = r
	case 0x7:
		r := vm.V[b] - vm.V[a]
		vm.setVF(vm.V[b] >= vm.V[a])
		vm.V[a] = r
	case 0xE:
		r := vm.V[b] << 1
		vm.setVF(vm.V[b]&0x80 != 0)
		vm.V[a] = r
	default:
		vm.badInstr()
	}
}

func (vm *VM) skneVV(a, b byte) {
	if vm.V[a] != vm.V[b] {
		vm.ctx.skipNextInstr()
	}
}

func (vm *VM) ldIAddr(abc uint16) {
	vm.I = abc
}

func (vm *VM) jmp0(abc uint16) {
	vm.ctx.setPendingPC(uint16(vm.V[0]) + abc)
}

func (vm *VM) randOp(a, bc byte) {
	vm.V[a] = byte(vm.rng.Intn(256)) & bc
}

func (vm *VM) disp(a, b, height byte) {
	vm.drawSprite(int(vm.V[a]), int(vm.V[b]), int(height))
}

// drawSprite XORs a sprite read from memory at I into the framebuffer.
// height == 0 selects the SUPER-CHIP 16x16 large-sprite form; any other
// height draws an 8-wide small sprite of that many rows.
func (vm *VM) drawSprite(x, y, height int) {
	vm.V[0xF] = 0
	base := int(vm.I)

	if height > 0 {
		for row := 0; row < height; row++ {
			rowBits := vm.Memory[base+row]
			for col := 0; col < 8; col++ {
				if rowBits&(0x80>>uint(col)) == 0 {
					continue
				}
				if !vm.Framebuffer.Toggle(x+col, y+row) {
					vm.V[0xF] = 1
				}
			}
		}
		return
	}

	for row := 0; row < 16; row++ {
		rowBits := uint16(vm.Memory[base+2*row])<<8 | uint16(vm.Memory[base+2*row+1])
		for col := 0; col < 16; col++ {
			if rowBits&(0x8000>>uint(col)) == 0 {
				continue
			}
			if !vm.Framebuffer.Toggle(x+col, y+row) {
				vm.V[0xF] = 1
			}
		}
	}
}

func (vm *VM) inputCtl(a, bc byte) {
	switch bc {
	case 0x9E:
		vm.skp(a)
	case 0xA1:
		vm.sknp(a)
	default:
		vm.badInstr()
	}
}

func (vm *VM) skp(a byte) {
	if vm.Input.IsPressed(int(vm.V[a] & 0xF)) {
		vm.ctx.skipNextInstr()
	}
}

func (vm *VM) sknp(a byte) {
	if !vm.Input.IsPressed(int(vm.V[a] & 0xF)) {
		vm.ctx.skipNextInstr()
	}
}

// misc dispatches the 0xF family: timers, input, memory pointer math,
// font lookup, BCD, and the bulk register transfer opcodes.
func (vm *VM) misc(a, bc byte) {
	switch bc {
	case 0x02:
		// F002: load-audio-pattern-buffer, an XO-CHIP extension chippy
		// does not implement sound for. Accepted as a no-op.
	case 0x07:
		vm.V[a] = vm.DT
	case 0x0A:
		vm.awaitKey(a)
	case 0x15:
		vm.DT = vm.V[a]
	case 0x18:
		vm.ST = vm.V[a]
	case 0x1E:
		vm.I += uint16(vm.V[a])
	case 0x29:
		vm.I = FontStart + font.GlyphSize*uint16(vm.V[a]&0xF)
	case 0x30:
		vm.I = BigFontStart + font.BigGlyphSize*uint16(vm.V[a]&0xF)
	case 0x33:
		vm.bcd(a)
	case 0x55:
		vm.store(a)
	case 0x65:
		vm.load(a)
	case 0x75:
		vm.storeFlags(a)
	case 0x85:
		vm.loadFlags(a)
	default:
		vm.badInstr()
	}
}

// awaitKey implements the blocking Fx0A read: if a key has been pressed
// since the latch was last cleared, capture it and advance normally;
// otherwise rewind pc so the same instruction is re-fetched next step.
func (vm *VM) awaitKey(a byte) {
	if vm.Input.HasLastKey() {
		vm.V[a] = byte(vm.Input.LastKey())
		return
	}
	vm.ctx.revertPC()
}

func (vm *VM) bcd(a byte) {
	d := vm.V[a]
	base := int(vm.I)
	vm.Memory[base] = d / 100
	vm.Memory[base+1] = (d / 10) % 10
	vm.Memory[base+2] = d % 10
}

func (vm *VM) store(a byte) {
	base := int(vm.I)
	for idx := 0; idx <= int(a); idx++ {
		vm.Memory[base+idx] = vm.V[idx]
	}
	vm.I = vm.I + uint16(a) + 1
}

func (vm *VM) load(a byte) {
	base := int(vm.I)
	for idx := 0; idx <= int(a); idx++ {
		vm.V[idx] = vm.Memory[base+idx]
	}
	vm.I = vm.I + uint16(a) + 1
}

func (vm *VM) storeFlags(a byte) {
	for idx := 0; idx <= int(a); idx++ {
		vm.RPL[idx] = vm.V[idx]
	}
}

func (vm *VM) loadFlags(a byte) {
	for idx := 0; idx <= int(a); idx++ {
		vm.V[idx] = vm.RPL[idx]
	}
}
