// Package asm implements the chippy assembler: a lexer, a two-pass parser/
// encoder, and the opcode metadata table shared by both the assembler and
// the disassembler.
package asm

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/bradford-hamilton/chippy/internal/intcast"
)

// OperandKind tags the role an operand plays in an instruction's encoding.
type OperandKind int

const (
	OperandNone OperandKind = iota
	OperandI
	OperandV
	OperandK
	OperandAddr
	OperandDT
	OperandST
)

func (k OperandKind) String() string {
	switch k {
	case OperandI:
		return "i"
	case OperandV:
		return "v"
	case OperandK:
		return "k"
	case OperandAddr:
		return "addr"
	case OperandDT:
		return "dt"
	case OperandST:
		return "st"
	default:
		return "none"
	}
}

// Row is one entry of the opcode metadata table: a mnemonic, the operand
// kinds it accepts, the opcode template it encodes to, and the bit shift
// each operand is substituted at.
type Row struct {
	Mnemonic string
	A, B, C  OperandKind
	Opcode   uint16
	AShift   uint8
	BShift   uint8
	CShift   uint8
}

// ParameterCount returns how many of A, B, C are non-none.
func (r Row) ParameterCount() int {
	n := 0
	if r.A != OperandNone {
		n++
	}
	if r.B != OperandNone {
		n++
	}
	if r.C != OperandNone {
		n++
	}
	return n
}

// Parameter returns the operand kind at index 0, 1, or 2.
func (r Row) Parameter(index int) OperandKind {
	switch index {
	case 0:
		return r.A
	case 1:
		return r.B
	case 2:
		return r.C
	default:
		return OperandNone
	}
}

func (r Row) less(other Row) bool {
	if r.Mnemonic != other.Mnemonic {
		return r.Mnemonic < other.Mnemonic
	}
	if r.A != other.A {
		return r.A < other.A
	}
	if r.B != other.B {
		return r.B < other.B
	}
	return r.C < other.C
}

// Table is the immutable, sorted opcode metadata table. It is safe for
// concurrent reads once constructed.
type Table struct {
	rows []Row
}

// NewTable builds the opcode metadata table described in spec §6.
func NewTable() *Table {
	rows := []Row{
		{"cls", OperandNone, OperandNone, OperandNone, 0x00E0, 0, 0, 0},
		{"ret", OperandNone, OperandNone, OperandNone, 0x00EE, 0, 0, 0},
		{"lores", OperandNone, OperandNone, OperandNone, 0x00FE, 0, 0, 0},
		{"hires", OperandNone, OperandNone, OperandNone, 0x00FF, 0, 0, 0},
		{"jmp", OperandAddr, OperandNone, OperandNone, 0x1000, 0, 0, 0},
		{"call", OperandAddr, OperandNone, OperandNone, 0x2000, 0, 0, 0},
		{"skeq", OperandV, OperandK, OperandNone, 0x3000, 8, 0, 0},
		{"skne", OperandV, OperandK, OperandNone, 0x4000, 8, 0, 0},
		{"skeq", OperandV, OperandV, OperandNone, 0x5000, 8, 4, 0},
		{"ld", OperandV, OperandK, OperandNone, 0x6000, 8, 0, 0},
		{"add", OperandV, OperandK, OperandNone, 0x7000, 8, 0, 0},
		{"ld", OperandV, OperandV, OperandNone, 0x8000, 8, 4, 0},
		{"or", OperandV, OperandV, OperandNone, 0x8001, 8, 4, 0},
		{"and", OperandV, OperandV, OperandNone, 0x8002, 8, 4, 0},
		{"xor", OperandV, OperandV, OperandNone, 0x8003, 8, 4, 0},
		{"add", OperandV, OperandV, OperandNone, 0x8004, 8, 4, 0},
		{"sub", OperandV, OperandV, OperandNone, 0x8005, 8, 4, 0},
		{"shr", OperandV, OperandV, OperandNone, 0x8006, 8, 4, 0},
		{"subn", OperandV, OperandV, OperandNone, 0x8007, 8, 4, 0},
		{"shl", OperandV, OperandV, OperandNone, 0x800E, 8, 4, 0},
		{"skne", OperandV, OperandV, OperandNone, 0x9000, 8, 4, 0},
		{"ld", OperandI, OperandAddr, OperandNone, 0xA000, 0, 0, 0},
		{"ld", OperandI, OperandK, OperandNone, 0xA000, 0, 0, 0},
		{"jmp0", OperandAddr, OperandNone, OperandNone, 0xB000, 0, 0, 0},
		{"rand", OperandV, OperandK, OperandNone, 0xC000, 8, 0, 0},
		{"disp", OperandV, OperandV, OperandK, 0xD000, 8, 4, 0},
		{"skp", OperandV, OperandNone, OperandNone, 0xE09E, 8, 0, 0},
		{"sknp", OperandV, OperandNone, OperandNone, 0xE0A1, 8, 0, 0},
		{"ld", OperandV, OperandDT, OperandNone, 0xF007, 8, 0, 0},
		{"input", OperandV, OperandNone, OperandNone, 0xF00A, 8, 0, 0},
		{"ld", OperandDT, OperandV, OperandNone, 0xF015, 0, 8, 0},
		{"ld", OperandST, OperandV, OperandNone, 0xF018, 0, 8, 0},
		{"add", OperandI, OperandV, OperandNone, 0xF01E, 0, 8, 0},
		{"glyph", OperandV, OperandNone, OperandNone, 0xF029, 8, 0, 0},
		{"bcd", OperandV, OperandNone, OperandNone, 0xF033, 8, 0, 0},
		{"store", OperandV, OperandNone, OperandNone, 0xF055, 8, 0, 0},
		{"load", OperandV, OperandNone, OperandNone, 0xF065, 8, 0, 0},
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].less(rows[j]) })
	return &Table{rows: rows}
}

// FindBySignature performs an exact-match lookup on (mnemonic, a, b, c).
func (t *Table) FindBySignature(mnemonic string, a, b, c OperandKind) (Row, bool) {
	target := Row{Mnemonic: mnemonic, A: a, B: b, C: c}
	i := sort.Search(len(t.rows), func(i int) bool { return !t.rows[i].less(target) })
	if i < len(t.rows) && t.rows[i].Mnemonic == mnemonic && t.rows[i].A == a && t.rows[i].B == b && t.rows[i].C == c {
		return t.rows[i], true
	}
	return Row{}, false
}

// stripMask returns the mask used to remove operand bits from a raw opcode
// word, selected by the word's own high nibble.
func stripMask(opcode uint16) uint16 {
	switch (opcode & 0xF000) >> 12 {
	case 0x0:
		return 0xFFFF
	case 0x1, 0x2, 0x3, 0x4, 0x6, 0x7, 0xA, 0xB, 0xC, 0xD:
		return 0xF000
	case 0x5, 0x8, 0x9:
		return 0xF00F
	case 0xE, 0xF:
		return 0xF0FF
	default:
		return 0
	}
}

// FindByOpcode strips variable-operand bits from word using the family mask
// for its high nibble, then looks for a row whose template matches exactly.
func (t *Table) FindByOpcode(word uint16) (Row, bool) {
	stripped := word & stripMask(word)
	for _, r := range t.rows {
		if r.Opcode == stripped {
			return r, true
		}
	}
	return Row{}, false
}

// IsMnemonic reports whether any row uses this mnemonic.
func (t *Table) IsMnemonic(text string) bool {
	for _, r := range t.rows {
		if r.Mnemonic == text {
			return true
		}
	}
	return false
}

// RowsForMnemonic returns every row with the given mnemonic, in table order,
// for diagnostic help output.
func (t *Table) RowsForMnemonic(mnemonic string) []Row {
	var out []Row
	for _, r := range t.rows {
		if r.Mnemonic == mnemonic {
			out = append(out, r)
		}
	}
	return out
}

// freeBits returns the number of bits available to a K operand in row's
// opcode template.
func freeBits(r Row) int {
	mask := stripMask(r.Opcode)
	n := bits.OnesCount16(^mask)
	if r.A == OperandV {
		n -= 4
	}
	if r.B == OperandV {
		n -= 4
	}
	if r.C == OperandV {
		n -= 4
	}
	return n
}

// OperandMask returns the bitmask used to extract an operand of the given
// kind from an encoded opcode.
func OperandMask(r Row, kind OperandKind) int {
	switch kind {
	case OperandV:
		return 0xF
	case OperandAddr:
		return 0xFFF
	case OperandK:
		switch freeBits(r) {
		case 12:
			return 0xFFF
		case 8:
			return 0xFF
		case 4:
			return 0xF
		default:
			return 0
		}
	default:
		return 0
	}
}

func (r Row) shift(operandIndex int) uint8 {
	switch operandIndex {
	case 0:
		return r.AShift
	case 1:
		return r.BShift
	default:
		return r.CShift
	}
}

// Extract reads the operand at operandIndex out of an already-encoded
// opcode, using row's mask and shift for that position.
func Extract(r Row, opcode uint16, operandIndex int) int {
	kind := r.Parameter(operandIndex)
	mask := OperandMask(r, kind)
	shift := r.shift(operandIndex)
	return (int(opcode) & (mask << shift)) >> shift
}

// Render formats the operand at operandIndex as assembler-source text, the
// way the disassembler presents it.
func Render(r Row, opcode uint16, operandIndex int) string {
	switch r.Parameter(operandIndex) {
	case OperandI:
		return "i"
	case OperandDT:
		return "dt"
	case OperandST:
		return "st"
	case OperandV:
		return fmt.Sprintf("v%X", Extract(r, opcode, operandIndex))
	case OperandK, OperandAddr:
		return fmt.Sprintf("0x%X", Extract(r, opcode, operandIndex))
	default:
		return "[unknown]"
	}
}

// operandWidth returns the number of bits row's field at this operand
// position has available, so a literal can be range-checked before it's
// OR'd into the opcode.
func operandWidth(r Row, kind OperandKind) int {
	switch kind {
	case OperandV:
		return 4
	case OperandAddr:
		return 12
	case OperandK:
		return bits.OnesCount16(uint16(OperandMask(r, OperandK)))
	default:
		return 0
	}
}

// CheckOperand range-checks value against the field width row's operand at
// operandIndex provides, returning a wrapped *intcast.BadRangeError if it
// won't fit. Callers that hold source position (the parser) can use this
// ahead of Encode to attach a line:column diagnostic to the failure.
func CheckOperand(r Row, operandIndex int, value int) error {
	kind := r.Parameter(operandIndex)
	width := operandWidth(r, kind)
	if width == 0 {
		return nil
	}
	if _, err := intcast.CastBits(value, width); err != nil {
		return fmt.Errorf("operand %d (%s): %w", operandIndex, kind, err)
	}
	return nil
}

// Encode computes the final 16-bit opcode for a row given concrete operand
// values. Each operand is range-checked against its field width first, so
// a literal too wide for its slot (e.g. a 0x1000 address, which doesn't
// fit 12 bits) raises a bad_range error instead of silently truncating.
func Encode(r Row, a, b, c int) (uint16, error) {
	for idx, v := range [3]int{a, b, c} {
		if err := CheckOperand(r, idx, v); err != nil {
			return 0, err
		}
	}
	return r.Opcode | uint16(a)<<r.AShift | uint16(b)<<r.BShift | uint16(c)<<r.CShift, nil
}
