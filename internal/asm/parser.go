package asm

import (
	"strings"

	"github.com/bradford-hamilton/chippy/internal/intcast"
)

// Instruction is the intermediate representation of one assembled unit:
// either a coded instruction (Meta set, encodes to 2 bytes) or a `data`
// pseudo-instruction (Data set, encodes verbatim).
type Instruction struct {
	Meta     Row
	A, B, C  int
	LabelRef string
	Data     []byte
	Address  uint16
}

// Size returns how many bytes this instruction occupies.
func (i Instruction) Size() int {
	if i.IsData() {
		return len(i.Data)
	}
	return 2
}

// IsData reports whether this is a `data` pseudo-instruction.
func (i Instruction) IsData() bool { return len(i.Data) > 0 }

// Bytes renders the instruction as its final on-wire encoding.
func (i Instruction) Bytes() ([]byte, error) {
	if i.IsData() {
		out := make([]byte, len(i.Data))
		copy(out, i.Data)
		return out, nil
	}
	op, err := Encode(i.Meta, i.A, i.B, i.C)
	if err != nil {
		return nil, err
	}
	return []byte{byte(op >> 8), byte(op)}, nil
}

// Label records where a name was declared, as an index into the parser's
// instruction list (resolved to an address once that instruction has one).
type Label struct {
	Name             string
	InstructionIndex int
}

// Parser consumes a Lexer's token stream and produces a resolved
// instruction list, ready for encoding.
type Parser struct {
	lex          *Lexer
	instructions []Instruction
	labels       []Label
	address      int
	table        *Table
}

// NewParser constructs a Parser over lex and primes its first token.
func NewParser(lex *Lexer) *Parser {
	lex.Next()
	return &Parser{lex: lex, address: 0x200, table: NewTable()}
}

// ParseInstructions runs the full parse + label-resolution pass, returning
// a *SyntaxError (wrapped as error) on malformed source.
func (p *Parser) ParseInstructions() (instrs []Instruction, err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*SyntaxError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()

	for p.current().Kind != TokenEOS {
		p.parseTopLevel()
	}
	p.resolveLabels()

	return p.instructions, nil
}

func (p *Parser) current() Token { return p.lex.Current() }
func (p *Parser) peek() Token    { return p.lex.Lookahead() }

func (p *Parser) addInstruction(i Instruction) {
	i.Address = uint16(p.address)
	p.instructions = append(p.instructions, i)
	p.address += i.Size()
}

func (p *Parser) parseTopLevel() {
	switch {
	case p.current().Kind == TokenText && p.peek().Kind == TokenColon:
		p.parseLabel()
	case p.current().Kind == TokenText && p.current().Text == "data":
		p.parseData()
	case p.current().Kind == TokenText:
		p.errorTok("expected ':' after label", p.current())
	case p.current().Kind == TokenMnemonic:
		p.parseInstruction()
	default:
		p.errorTok("expected label, data, or mnemonic", p.current())
	}
}

func (p *Parser) parseLabel() {
	p.labels = append(p.labels, Label{Name: p.current().Text, InstructionIndex: len(p.instructions)})
	p.lex.Next()
	p.lex.Next()
}

func (p *Parser) parseData() {
	p.lex.Next()

	var instr Instruction
	for p.peek().Kind == TokenComma {
		if p.current().Kind != TokenNumber {
			p.errorTok("expected number", p.current())
		}
		instr.Data = append(instr.Data, p.dataByte(p.current()))
		p.lex.Next()
		p.lex.Next()
	}
	if p.current().Kind != TokenNumber {
		p.errorTok("expected number", p.current())
	}
	instr.Data = append(instr.Data, p.dataByte(p.current()))
	p.lex.Next()

	p.addInstruction(instr)
}

// dataByte range-checks a `data` literal against byte before truncating it,
// so e.g. `data 300` raises a bad_range error instead of silently encoding
// 44.
func (p *Parser) dataByte(t Token) byte {
	b, err := intcast.Cast[byte](t.Value)
	if err != nil {
		p.errorTok(err.Error(), t)
	}
	return b
}

func tokenToOperandKind(k TokenKind) OperandKind {
	switch k {
	case TokenVariable:
		return OperandV
	case TokenNumber:
		return OperandK
	case TokenText:
		return OperandAddr
	case TokenI:
		return OperandI
	case TokenDT:
		return OperandDT
	case TokenST:
		return OperandST
	default:
		return OperandNone
	}
}

func (p *Parser) parseInstruction() {
	mnemonicTok := p.current()
	name := mnemonicTok.Text

	if row, ok := p.table.FindBySignature(name, OperandNone, OperandNone, OperandNone); ok {
		p.addInstruction(Instruction{Meta: row})
		p.lex.Next()
		return
	}

	p.lex.Next()
	var params []Token
	for p.peek().Kind == TokenComma {
		if p.current().Kind == TokenEOS {
			p.errorTok("unexpected end of file", p.current())
		}
		params = append(params, p.current())
		p.lex.Next()
		p.lex.Next()
	}
	if p.current().Kind == TokenEOS {
		p.errorTok("unexpected end of file", p.current())
	}
	params = append(params, p.current())
	p.lex.Next()

	if len(params) > 3 {
		p.errorTok("too many operands", mnemonicTok)
	}

	var kinds [3]OperandKind
	for idx, tok := range params {
		kinds[idx] = tokenToOperandKind(tok.Kind)
	}

	row, ok := p.table.FindBySignature(name, kinds[0], kinds[1], kinds[2])
	if !ok {
		p.errorHelp("incorrect instruction usage", mnemonicTok, p.usageHelp(name))
		return
	}

	var a, b, c int
	if len(params) > 0 {
		a = params[0].Value
	}
	if len(params) > 1 {
		b = params[1].Value
	}
	if len(params) > 2 {
		c = params[2].Value
	}

	// Label operands aren't resolved yet (they're still 0), so only
	// range-check literals here; a resolved address that overflows its
	// field is still caught by Encode at assembly time.
	for idx, tok := range params {
		if kinds[idx] == OperandAddr {
			continue
		}
		if err := CheckOperand(row, idx, tok.Value); err != nil {
			p.errorTok(err.Error(), tok)
		}
	}

	instr := Instruction{Meta: row, A: a, B: b, C: c}
	if kinds[0] == OperandAddr {
		instr.LabelRef = params[0].Text
	}
	if kinds[1] == OperandAddr {
		instr.LabelRef = params[1].Text
	}
	p.addInstruction(instr)
}

func (p *Parser) usageHelp(mnemonic string) string {
	var b strings.Builder
	b.WriteString("instruction forms:\n\n")
	for _, m := range p.table.RowsForMnemonic(mnemonic) {
		b.WriteString("  ")
		b.WriteString(m.Mnemonic)
		b.WriteString(" ")
		var parts []string
		for i := 0; i < m.ParameterCount(); i++ {
			parts = append(parts, m.Parameter(i).String())
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n")
	}
	return b.String()
}

func (p *Parser) resolveLabels() {
	for idx := range p.instructions {
		instr := &p.instructions[idx]
		if instr.LabelRef == "" {
			continue
		}
		for _, lbl := range p.labels {
			if lbl.Name != instr.LabelRef {
				continue
			}
			target := int(p.instructions[lbl.InstructionIndex].Address)
			if instr.Meta.A == OperandAddr {
				instr.A = target
			}
			if instr.Meta.B == OperandAddr {
				instr.B = target
			}
			if instr.Meta.C == OperandAddr {
				instr.C = target
			}
			break
		}
	}
}

func (p *Parser) errorTok(msg string, t Token) {
	panic(&SyntaxError{Message: msg, Line: t.Line, Column: t.Column, Context: t.Text})
}

func (p *Parser) errorHelp(msg string, t Token, help string) {
	panic(&SyntaxError{Message: msg, Line: t.Line, Column: t.Column, Context: t.Text, Help: help})
}

// Assemble compiles chippy assembler source into a flat byte stream,
// addresses starting at 0x200.
func Assemble(source string) ([]byte, error) {
	p := NewParser(NewLexer(source))
	instrs, err := p.ParseInstructions()
	if err != nil {
		return nil, err
	}
	var out []byte
	for _, instr := range instrs {
		b, err := instr.Bytes()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}
