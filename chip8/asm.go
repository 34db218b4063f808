package chip8

import (
	"bufio"
	"bytes"
	"fmt"
)

/// Assembly is a completely assembled source file.
///
type Assembly struct {
	/// ROM is the final, assembled bytes to load.
	///
	ROM []byte

	/// Breakpoints is a list of addresses marked in the source.
	///
	Breakpoints []Breakpoint

	/// Label mapping.
	///
	Labels map[string]token

	/// Addresses with unresolved labels.
	///
	Unresolved map[int]string

	/// Base address the ROM begins at.
	///
	Base int

	/// Super is true if using additional SUPER-CHIP instructions.
	///
	Super bool

	/// XO is true if using additional XO-CHIP instructions.
	///
	XO bool
}

/// Breakpoint is an address marked with BREAK or ASSERT in the
/// source.
///
type Breakpoint struct {
	Address     int
	Conditional bool
	Reason      string
}

/// Dummy is the built-in boot program: it draws the glyph for "8" in
/// the center of the screen and spins. It is loaded when no ROM is
/// given and when assembly fails.
///
var Dummy = []byte{
	0x6A, 0x08, // LD  VA, #08
	0xFA, 0x29, // LD  F, VA
	0x6B, 0x1E, // LD  VB, #1E
	0x6C, 0x0D, // LD  VC, #0D
	0xDB, 0xC5, // DRW VB, VC, 5
	0x12, 0x0A, // JP  #20A
}

/// Assemble an input CHIP-8 source code file.
///
func Assemble(program []byte) (out *Assembly, err error) {
	var line int

	// base address for programs
	base := 0x200

	// create an empty, return assembly
	out = &Assembly{
		ROM:         make([]byte, base, 0x1000),
		Breakpoints: make([]Breakpoint, 0, 10),
		Labels:      make(map[string]token),
		Unresolved:  make(map[int]string),
		Base:        base,
	}

	// no error
	err = nil

	// handle panics during assembly
	defer func() {
		if r := recover(); r != nil {
			if line > 0 {
				err = fmt.Errorf("line %d - %v", line, r)
			} else {
				err = fmt.Errorf("%v", r)
			}

			// return a dummy ROM
			out = &Assembly{ROM: Dummy}
		}
	}()

	// create simple line scanner over the file
	reader := bytes.NewReader(bytes.ToUpper(program))
	scanner := bufio.NewScanner(reader)

	// parse and assemble
	for line = 1; scanner.Scan(); line++ {
		out.assemble(&tokenScanner{bytes: scanner.Bytes()})
	}

	// resolve all label addresses
	for address, label := range out.Unresolved {
		if t, ok := out.Labels[label]; ok {
			if t.typ != TOKEN_LIT {
				panic("label does not resolve to address!")
			}

			msb := byte(t.val.(int) >> 8)
			lsb := byte(t.val.(int) & 0xFF)

			// labels are guaranteed to be addressed within 12-bits;
			// the unresolved word defaulted to 0x200, so overwriting
			// the low nibble and byte works for every instruction
			// taking an immediate address as well as for WORD data
			out.ROM[address] = msb | (out.ROM[address] & 0xF0)
			out.ROM[address+1] = lsb

			// delete the unresolved address
			delete(out.Unresolved, address)
		}
	}

	// clear the line number as we're done assembling
	line = 0

	// if there are any unresolved addresses, panic
	for _, label := range out.Unresolved {
		panic(fmt.Errorf("unresolved label: %s", label))
	}

	// drop the first 512 bytes from the rom
	out.ROM = out.ROM[base:]

	// done
	return
}

/// Compile a single line into the assembly.
///
func (a *Assembly) assemble(s *tokenScanner) {
	t := s.scanToken()

	// assign labels
	if t.typ == TOKEN_LABEL {
		t = a.assembleLabel(t.val.(string), s)
	}

	// continue assembling
	switch {
	case t.typ == TOKEN_INSTRUCTION:
		a.assembleInstruction(t.val.(string), s)
	case t.typ == TOKEN_SUPER:
		a.assembleSuper(s)
	case t.typ == TOKEN_XOCHIP:
		a.assembleXO(s)
	case t.typ == TOKEN_BREAK:
		a.assembleBreakpoint(s, false)
	case t.typ == TOKEN_ASSERT:
		a.assembleBreakpoint(s, true)
	case t.typ != TOKEN_END:
		panic("unexpected token")
	}
}

/// Scan for a label and add it to the assembly.
///
func (a *Assembly) assembleLabel(label string, s *tokenScanner) token {
	if _, exists := a.Labels[label]; exists {
		panic("duplicate label")
	}

	// by default, the label is assigned the current address
	a.Labels[label] = token{typ: TOKEN_LIT, val: len(a.ROM)}

	// scan the next token
	t := s.scanToken()

	// if EQU, reassign the label to a constant or register
	if t.typ == TOKEN_EQU {
		v := s.scanToken()

		if v.typ == TOKEN_LIT || v.typ == TOKEN_V {
			a.Labels[label] = v

			// should be the final token
			if t = s.scanToken(); t.typ == TOKEN_END {
				return t
			}
		}

		panic("illegal label assignment")
	}

	return t
}

/// Create a new breakpoint at the current address.
///
func (a *Assembly) assembleBreakpoint(s *tokenScanner, conditional bool) {
	reason := s.scanToEnd().val.(string)

	// create the breakpoint
	a.Breakpoints = append(a.Breakpoints, Breakpoint{
		Address:     len(a.ROM),
		Conditional: conditional,
		Reason:      reason,
	})
}

/// Allow the assembler to assemble SUPER-CHIP instructions.
///
func (a *Assembly) assembleSuper(s *tokenScanner) {
	if s.scanToken().typ != TOKEN_END {
		panic("unexpected token")
	}

	if len(a.ROM) > a.Base {
		panic("super must come before instructions")
	}

	// enter super instructions mode
	a.Super = true
}

/// Allow the assembler to assemble XO-CHIP instructions, which are a
/// superset of the SUPER-CHIP ones.
///
func (a *Assembly) assembleXO(s *tokenScanner) {
	if s.scanToken().typ != TOKEN_END {
		panic("unexpected token")
	}

	if len(a.ROM) > a.Base {
		panic("xochip must come before instructions")
	}

	// enter xo-chip instructions mode
	a.Super = true
	a.XO = true
}

/// Compile a single instruction into the assembly.
///
func (a *Assembly) assembleInstruction(i string, s *tokenScanner) {
	tokens := s.scanOperands()

	switch i {
	case "CLS":
		a.ROM = append(a.ROM, a.assembleNullary(tokens, 0x00, 0xE0, true)...)
	case "RET":
		a.ROM = append(a.ROM, a.assembleNullary(tokens, 0x00, 0xEE, true)...)
	case "EXIT":
		a.ROM = append(a.ROM, a.assembleNullary(tokens, 0x00, 0xFD, a.Super)...)
	case "LOW":
		a.ROM = append(a.ROM, a.assembleNullary(tokens, 0x00, 0xFE, a.Super)...)
	case "HIGH":
		a.ROM = append(a.ROM, a.assembleNullary(tokens, 0x00, 0xFF, a.Super)...)
	case "SCR":
		a.ROM = append(a.ROM, a.assembleNullary(tokens, 0x00, 0xFB, a.Super)...)
	case "SCL":
		a.ROM = append(a.ROM, a.assembleNullary(tokens, 0x00, 0xFC, a.Super)...)
	case "SCD":
		a.ROM = append(a.ROM, a.assembleScroll(tokens, 0xC0, a.Super)...)
	case "SCU":
		a.ROM = append(a.ROM, a.assembleScroll(tokens, 0xD0, a.XO)...)
	case "AUDIO":
		a.ROM = append(a.ROM, a.assembleNullary(tokens, 0xF0, 0x02, a.XO)...)
	case "PLANE":
		a.ROM = append(a.ROM, a.assemblePLANE(tokens)...)
	case "PITCH":
		a.ROM = append(a.ROM, a.assemblePITCH(tokens)...)
	case "SYS":
		a.ROM = append(a.ROM, a.assembleSYS(tokens)...)
	case "JP":
		a.ROM = append(a.ROM, a.assembleJP(tokens)...)
	case "CALL":
		a.ROM = append(a.ROM, a.assembleCALL(tokens)...)
	case "SE":
		a.ROM = append(a.ROM, a.assembleSE(tokens)...)
	case "SNE":
		a.ROM = append(a.ROM, a.assembleSNE(tokens)...)
	case "SKP":
		a.ROM = append(a.ROM, a.assembleSKP(tokens)...)
	case "SKNP":
		a.ROM = append(a.ROM, a.assembleSKNP(tokens)...)
	case "OR":
		a.ROM = append(a.ROM, a.assembleALU(tokens, 0x01)...)
	case "AND":
		a.ROM = append(a.ROM, a.assembleALU(tokens, 0x02)...)
	case "XOR":
		a.ROM = append(a.ROM, a.assembleALU(tokens, 0x03)...)
	case "SUB":
		a.ROM = append(a.ROM, a.assembleALU(tokens, 0x05)...)
	case "SUBN":
		a.ROM = append(a.ROM, a.assembleALU(tokens, 0x07)...)
	case "SHR":
		a.ROM = append(a.ROM, a.assembleShift(tokens, 0x06)...)
	case "SHL":
		a.ROM = append(a.ROM, a.assembleShift(tokens, 0x0E)...)
	case "ADD":
		a.ROM = append(a.ROM, a.assembleADD(tokens)...)
	case "BCD":
		a.ROM = append(a.ROM, a.assembleBCD(tokens)...)
	case "RND":
		a.ROM = append(a.ROM, a.assembleRND(tokens)...)
	case "DRW":
		a.ROM = append(a.ROM, a.assembleDRW(tokens)...)
	case "LD":
		a.ROM = append(a.ROM, a.assembleLD(tokens)...)
	case "SAVE":
		a.ROM = append(a.ROM, a.assembleSAVE(tokens)...)
	case "RESTORE":
		a.ROM = append(a.ROM, a.assembleRESTORE(tokens)...)
	case "BYTE":
		a.ROM = append(a.ROM, a.assembleBYTE(tokens)...)
	case "WORD":
		a.ROM = append(a.ROM, a.assembleWORD(tokens)...)
	case "ALIGN":
		a.ROM = append(a.ROM, a.assembleALIGN(tokens)...)
	case "PAD":
		a.ROM = append(a.ROM, a.assemblePAD(tokens)...)
	}
}

/// Assemble a single operand, expanding label references.
///
func (a *Assembly) assembleOperand(t token) token {
	if t.typ == TOKEN_REF {
		label := t.val.(string)
		if v, exists := a.Labels[label]; exists {
			t = v
		} else {
			t = token{typ: TOKEN_LIT, val: 0x200}

			// add an unresolved address
			a.Unresolved[len(a.ROM)] = label
		}
	}

	return t
}

/// Match the desired tokens with a list of tokens. Expand labels.
///
func (a *Assembly) assembleOperands(tokens []token, m ...tokenType) ([]token, bool) {
	ops := make([]token, 0, 3)

	// the number of desired tokens should match
	if len(tokens) != len(m) {
		return nil, false
	}

	// expand and compare the token types
	for i, typ := range m {
		t := a.assembleOperand(tokens[i])

		// compare token types
		if t.typ != typ {
			return nil, false
		}

		// append the operand
		ops = append(ops, t)
	}

	return ops, true
}

/// Assemble an instruction that takes no operands.
///
func (a *Assembly) assembleNullary(tokens []token, msb, lsb byte, allowed bool) []byte {
	if allowed && len(tokens) == 0 {
		return []byte{msb, lsb}
	}

	panic("illegal instruction")
}

/// Assemble a SCD/SCU scroll instruction.
///
func (a *Assembly) assembleScroll(tokens []token, lsb byte, allowed bool) []byte {
	if allowed {
		if ops, ok := a.assembleOperands(tokens, TOKEN_LIT); ok {
			n := ops[0].val.(int)

			if n < 0x10 {
				return []byte{0x00, lsb | byte(n)}
			}
		}
	}

	panic("illegal instruction")
}

/// Assemble a PLANE instruction.
///
func (a *Assembly) assemblePLANE(tokens []token) []byte {
	if a.XO {
		if ops, ok := a.assembleOperands(tokens, TOKEN_LIT); ok {
			n := ops[0].val.(int)

			if n < 4 {
				return []byte{0xF0 | byte(n), 0x01}
			}
		}
	}

	panic("illegal instruction")
}

/// Assemble a PITCH instruction.
///
func (a *Assembly) assemblePITCH(tokens []token) []byte {
	if a.XO {
		if ops, ok := a.assembleOperands(tokens, TOKEN_V); ok {
			x := ops[0].val.(int)

			return []byte{0xF0 | byte(x), 0x3A}
		}
	}

	panic("illegal instruction")
}

/// Assemble a SYS instruction.
///
func (a *Assembly) assembleSYS(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_LIT); ok {
		n := ops[0].val.(int)

		if n < 0x1000 {
			return []byte{byte(n >> 8 & 0xF), byte(n & 0xFF)}
		}
	}

	panic("illegal instruction")
}

/// Assemble a JP instruction.
///
func (a *Assembly) assembleJP(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_LIT); ok {
		n := ops[0].val.(int)

		if n < 0x1000 {
			return []byte{0x10 | byte(n>>8&0xF), byte(n & 0xFF)}
		}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok {
		v := ops[0].val.(int)
		n := ops[1].val.(int)

		if v == 0 && n < 0x1000 {
			return []byte{0xB0 | byte(n>>8&0xF), byte(n & 0xFF)}
		}
	}

	panic("illegal instruction")
}

/// Assemble a CALL instruction.
///
func (a *Assembly) assembleCALL(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_LIT); ok {
		n := ops[0].val.(int)

		if n < 0x1000 {
			return []byte{0x20 | byte(n>>8&0xF), byte(n & 0xFF)}
		}
	}

	panic("illegal instruction")
}

/// Assemble a SE instruction.
///
func (a *Assembly) assembleSE(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok {
		x := ops[0].val.(int)
		b := ops[1].val.(int)

		if b < 0x100 {
			return []byte{0x30 | byte(x), byte(b)}
		}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		x := ops[0].val.(int)
		y := ops[1].val.(int)

		return []byte{0x50 | byte(x), byte(y << 4)}
	}

	panic("illegal instruction")
}

/// Assemble a SNE instruction.
///
func (a *Assembly) assembleSNE(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok {
		x := ops[0].val.(int)
		b := ops[1].val.(int)

		if b < 0x100 {
			return []byte{0x40 | byte(x), byte(b)}
		}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		x := ops[0].val.(int)
		y := ops[1].val.(int)

		return []byte{0x90 | byte(x), byte(y << 4)}
	}

	panic("illegal instruction")
}

/// Assemble a SKP instruction.
///
func (a *Assembly) assembleSKP(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V); ok {
		x := ops[0].val.(int)

		return []byte{0xE0 | byte(x), 0x9E}
	}

	panic("illegal instruction")
}

/// Assemble a SKNP instruction.
///
func (a *Assembly) assembleSKNP(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V); ok {
		x := ops[0].val.(int)

		return []byte{0xE0 | byte(x), 0xA1}
	}

	panic("illegal instruction")
}

/// Assemble a register ALU instruction (OR, AND, XOR, SUB, SUBN).
///
func (a *Assembly) assembleALU(tokens []token, op byte) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		x := ops[0].val.(int)
		y := ops[1].val.(int)

		return []byte{0x80 | byte(x), byte(y<<4) | op}
	}

	panic("illegal instruction")
}

/// Assemble a SHR/SHL instruction, with an optional source register.
///
func (a *Assembly) assembleShift(tokens []token, op byte) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V); ok {
		x := ops[0].val.(int)

		return []byte{0x80 | byte(x), byte(x<<4) | op}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		x := ops[0].val.(int)
		y := ops[1].val.(int)

		return []byte{0x80 | byte(x), byte(y<<4) | op}
	}

	panic("illegal instruction")
}

/// Assemble a ADD instruction.
///
func (a *Assembly) assembleADD(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok {
		x := ops[0].val.(int)
		b := ops[1].val.(int)

		if b < 0x100 {
			return []byte{0x70 | byte(x), byte(b)}
		}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		x := ops[0].val.(int)
		y := ops[1].val.(int)

		return []byte{0x80 | byte(x), byte(y<<4) | 0x04}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_I, TOKEN_V); ok {
		x := ops[1].val.(int)

		return []byte{0xF0 | byte(x), 0x1E}
	}

	panic("illegal instruction")
}

/// Assemble a BCD instruction.
///
func (a *Assembly) assembleBCD(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V); ok {
		x := ops[0].val.(int)

		return []byte{0xF0 | byte(x), 0x33}
	}

	panic("illegal instruction")
}

/// Assemble a RND instruction.
///
func (a *Assembly) assembleRND(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok {
		x := ops[0].val.(int)
		b := ops[1].val.(int)

		if b < 0x100 {
			return []byte{0xC0 | byte(x), byte(b)}
		}
	}

	panic("illegal instruction")
}

/// Assemble a DRW instruction.
///
func (a *Assembly) assembleDRW(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V, TOKEN_LIT); ok {
		x := ops[0].val.(int)
		y := ops[1].val.(int)
		n := ops[2].val.(int)

		if n < 0x10 {
			return []byte{0xD0 | byte(x), byte(y<<4) | byte(n)}
		}
	}

	panic("illegal instruction")
}

/// Assemble a SAVE instruction: FX55 for a single register bound, or
/// the XO-CHIP register range 5XY2.
///
func (a *Assembly) assembleSAVE(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V); ok {
		x := ops[0].val.(int)

		return []byte{0xF0 | byte(x), 0x55}
	}

	if a.XO {
		if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
			x := ops[0].val.(int)
			y := ops[1].val.(int)

			return []byte{0x50 | byte(x), byte(y<<4) | 0x02}
		}
	}

	panic("illegal instruction")
}

/// Assemble a RESTORE instruction: FX65 for a single register bound,
/// or the XO-CHIP register range 5XY3.
///
func (a *Assembly) assembleRESTORE(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V); ok {
		x := ops[0].val.(int)

		return []byte{0xF0 | byte(x), 0x65}
	}

	if a.XO {
		if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
			x := ops[0].val.(int)
			y := ops[1].val.(int)

			return []byte{0x50 | byte(x), byte(y<<4) | 0x03}
		}
	}

	panic("illegal instruction")
}

/// Assemble a LD instruction.
///
func (a *Assembly) assembleLD(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok {
		x := ops[0].val.(int)
		b := ops[1].val.(int)

		if b < 0x100 {
			return []byte{0x60 | byte(x), byte(b)}
		}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		x := ops[0].val.(int)
		y := ops[1].val.(int)

		return []byte{0x80 | byte(x), byte(y << 4)}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_I, TOKEN_LIT); ok {
		n := ops[1].val.(int)

		if n < 0x1000 {
			return []byte{0xA0 | byte(n>>8&0xF), byte(n & 0xFF)}
		}

		// the wide XO-CHIP form carries the address in a second word
		if a.XO && n <= 0xFFFF {
			return []byte{0xF0, 0x00, byte(n >> 8), byte(n & 0xFF)}
		}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_DT); ok {
		x := ops[0].val.(int)

		return []byte{0xF0 | byte(x), 0x07}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_K); ok {
		x := ops[0].val.(int)

		return []byte{0xF0 | byte(x), 0x0A}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_DT, TOKEN_V); ok {
		x := ops[1].val.(int)

		return []byte{0xF0 | byte(x), 0x15}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_ST, TOKEN_V); ok {
		x := ops[1].val.(int)

		return []byte{0xF0 | byte(x), 0x18}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_F, TOKEN_V); ok {
		x := ops[1].val.(int)

		return []byte{0xF0 | byte(x), 0x29}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_ADDRESS, TOKEN_V); ok {
		if ops[0].val.(token).typ == TOKEN_I {
			x := ops[1].val.(int)

			return []byte{0xF0 | byte(x), 0x55}
		}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_ADDRESS); ok {
		if ops[1].val.(token).typ == TOKEN_I {
			x := ops[0].val.(int)

			return []byte{0xF0 | byte(x), 0x65}
		}
	}

	if a.Super {
		if ops, ok := a.assembleOperands(tokens, TOKEN_HF, TOKEN_V); ok {
			x := ops[1].val.(int)

			return []byte{0xF0 | byte(x), 0x30}
		}

		if ops, ok := a.assembleOperands(tokens, TOKEN_R, TOKEN_V); ok {
			x := ops[1].val.(int)

			if x < 8 || a.XO {
				return []byte{0xF0 | byte(x), 0x75}
			}
		}

		if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_R); ok {
			x := ops[0].val.(int)

			if x < 8 || a.XO {
				return []byte{0xF0 | byte(x), 0x85}
			}
		}
	}

	panic("illegal instruction")
}

/// Assemble a BYTE instruction.
///
func (a *Assembly) assembleBYTE(tokens []token) []byte {
	b := make([]byte, 0)

	for _, t := range tokens {
		op := a.assembleOperand(t)

		switch op.typ {
		case TOKEN_LIT:
			if op.val.(int) > 0xFF || op.val.(int) < -0x80 {
				panic("invalid byte")
			}

			b = append(b, byte(op.val.(int)))
		case TOKEN_TEXT:
			b = append(b, op.val.(string)...)
		default:
			panic("invalid byte")
		}
	}

	return b
}

/// Assemble a WORD instruction.
///
func (a *Assembly) assembleWORD(tokens []token) []byte {
	b := make([]byte, 0)

	for _, t := range tokens {
		op := a.assembleOperand(t)

		if op.typ != TOKEN_LIT || op.val.(int) > 0xFFFF {
			panic("invalid word")
		}

		msb := op.val.(int) >> 8 & 0xFF
		lsb := op.val.(int) & 0xFF

		// store msb first
		b = append(b, byte(msb), byte(lsb))
	}

	return b
}

/// Assemble an ALIGN instruction.
///
func (a *Assembly) assembleALIGN(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_LIT); ok {
		n := ops[0].val.(int)

		if n > 0 && n&(n-1) == 0 {
			offset := len(a.ROM) & (n - 1)

			if offset == 0 {
				return nil
			}

			// reserve pad bytes to meet alignment
			return make([]byte, n-offset)
		}
	}

	panic("illegal alignment")
}

/// Assemble a PAD instruction.
///
func (a *Assembly) assemblePAD(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_LIT); ok {
		n := ops[0].val.(int)

		if n >= 0 && n < 0x1000-len(a.ROM) {
			return make([]byte, n)
		}
	}

	panic("illegal size")
}
