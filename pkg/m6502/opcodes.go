// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package m6502 carries the static instruction set table of the 151
// documented 6502 opcodes and the operand formatting rules shared by the
// disassembler and the emitters.
package m6502

// Well known opcodes the control-flow trace special-cases.
const (
	OpJMPAbsolute = 0x4C
	OpJMPIndirect = 0x6C
	OpJSRAbsolute = 0x20
	OpBRK         = 0x00
	OpNOP         = 0xEA
)

// Info describes one opcode of the instruction set. Size counts the opcode
// byte plus operand bytes and is authoritative for advancing the program
// counter. PageCross marks the extra cycle taken when an indexed access
// crosses a page boundary; it is kept for fidelity and not consulted by
// the analysis.
type Info struct {
	Opcode    uint8
	Mnemonic  string
	Mode      AddressingMode
	Size      uint8
	Cycles    uint8
	PageCross bool
	Category  Category
	Valid     bool
}

// IsBranch reports whether the instruction is a conditional branch.
func (i *Info) IsBranch() bool {
	return i.Category == Branch
}

// IsJump reports whether the instruction transfers control via JMP or JSR.
func (i *Info) IsJump() bool {
	return i.Mnemonic == "JMP" || i.Mnemonic == "JSR"
}

// IsFunctionExit reports whether the instruction returns to the caller.
func (i *Info) IsFunctionExit() bool {
	return i.Mnemonic == "RTS" || i.Mnemonic == "RTI"
}

// Most opcodes from http://www.6502.org/tutorials/6502opcodes.html
var documented = []Info{
	{0x69, "ADC", Immediate, 2, 2, false, Arithmetic, true},
	{0x65, "ADC", ZeroPage, 2, 3, false, Arithmetic, true},
	{0x75, "ADC", ZeroPageX, 2, 4, false, Arithmetic, true},
	{0x6D, "ADC", Absolute, 3, 4, false, Arithmetic, true},
	{0x7D, "ADC", AbsoluteX, 3, 4, true, Arithmetic, true},
	{0x79, "ADC", AbsoluteY, 3, 4, true, Arithmetic, true},
	{0x61, "ADC", IndexedIndirect, 2, 6, false, Arithmetic, true},
	{0x71, "ADC", IndirectIndexed, 2, 5, true, Arithmetic, true},

	{0x29, "AND", Immediate, 2, 2, false, Logic, true},
	{0x25, "AND", ZeroPage, 2, 3, false, Logic, true},
	{0x35, "AND", ZeroPageX, 2, 4, false, Logic, true},
	{0x2D, "AND", Absolute, 3, 4, false, Logic, true},
	{0x3D, "AND", AbsoluteX, 3, 4, true, Logic, true},
	{0x39, "AND", AbsoluteY, 3, 4, true, Logic, true},
	{0x21, "AND", IndexedIndirect, 2, 6, false, Logic, true},
	{0x31, "AND", IndirectIndexed, 2, 5, true, Logic, true},

	{0x0A, "ASL", Accumulator, 1, 2, false, Shift, true},
	{0x06, "ASL", ZeroPage, 2, 5, false, Shift, true},
	{0x16, "ASL", ZeroPageX, 2, 6, false, Shift, true},
	{0x0E, "ASL", Absolute, 3, 6, false, Shift, true},
	{0x1E, "ASL", AbsoluteX, 3, 7, false, Shift, true},

	{0x24, "BIT", ZeroPage, 2, 3, false, Logic, true},
	{0x2C, "BIT", Absolute, 3, 4, false, Logic, true},

	{0x10, "BPL", Relative, 2, 2, true, Branch, true},
	{0x30, "BMI", Relative, 2, 2, true, Branch, true},
	{0x50, "BVC", Relative, 2, 2, true, Branch, true},
	{0x70, "BVS", Relative, 2, 2, true, Branch, true},
	{0x90, "BCC", Relative, 2, 2, true, Branch, true},
	{0xB0, "BCS", Relative, 2, 2, true, Branch, true},
	{0xD0, "BNE", Relative, 2, 2, true, Branch, true},
	{0xF0, "BEQ", Relative, 2, 2, true, Branch, true},

	{OpBRK, "BRK", Implied, 1, 7, false, Interrupt, true},

	{0xC9, "CMP", Immediate, 2, 2, false, Compare, true},
	{0xC5, "CMP", ZeroPage, 2, 3, false, Compare, true},
	{0xD5, "CMP", ZeroPageX, 2, 4, false, Compare, true},
	{0xCD, "CMP", Absolute, 3, 4, false, Compare, true},
	{0xDD, "CMP", AbsoluteX, 3, 4, true, Compare, true},
	{0xD9, "CMP", AbsoluteY, 3, 4, true, Compare, true},
	{0xC1, "CMP", IndexedIndirect, 2, 6, false, Compare, true},
	{0xD1, "CMP", IndirectIndexed, 2, 5, true, Compare, true},

	{0xE0, "CPX", Immediate, 2, 2, false, Compare, true},
	{0xE4, "CPX", ZeroPage, 2, 3, false, Compare, true},
	{0xEC, "CPX", Absolute, 3, 4, false, Compare, true},

	{0xC0, "CPY", Immediate, 2, 2, false, Compare, true},
	{0xC4, "CPY", ZeroPage, 2, 3, false, Compare, true},
	{0xCC, "CPY", Absolute, 3, 4, false, Compare, true},

	{0xC6, "DEC", ZeroPage, 2, 5, false, Decrement, true},
	{0xD6, "DEC", ZeroPageX, 2, 6, false, Decrement, true},
	{0xCE, "DEC", Absolute, 3, 6, false, Decrement, true},
	{0xDE, "DEC", AbsoluteX, 3, 7, false, Decrement, true},

	{0xCA, "DEX", Implied, 1, 2, false, Decrement, true},
	{0x88, "DEY", Implied, 1, 2, false, Decrement, true},

	{0x49, "EOR", Immediate, 2, 2, false, Logic, true},
	{0x45, "EOR", ZeroPage, 2, 3, false, Logic, true},
	{0x55, "EOR", ZeroPageX, 2, 4, false, Logic, true},
	{0x4D, "EOR", Absolute, 3, 4, false, Logic, true},
	{0x5D, "EOR", AbsoluteX, 3, 4, true, Logic, true},
	{0x59, "EOR", AbsoluteY, 3, 4, true, Logic, true},
	{0x41, "EOR", IndexedIndirect, 2, 6, false, Logic, true},
	{0x51, "EOR", IndirectIndexed, 2, 5, true, Logic, true},

	{0x18, "CLC", Implied, 1, 2, false, ClearFlag, true},
	{0x38, "SEC", Implied, 1, 2, false, SetFlag, true},
	{0x58, "CLI", Implied, 1, 2, false, ClearFlag, true},
	{0x78, "SEI", Implied, 1, 2, false, SetFlag, true},
	{0xB8, "CLV", Implied, 1, 2, false, ClearFlag, true},
	{0xD8, "CLD", Implied, 1, 2, false, ClearFlag, true},
	{0xF8, "SED", Implied, 1, 2, false, SetFlag, true},

	{0xE6, "INC", ZeroPage, 2, 5, false, Increment, true},
	{0xF6, "INC", ZeroPageX, 2, 6, false, Increment, true},
	{0xEE, "INC", Absolute, 3, 6, false, Increment, true},
	{0xFE, "INC", AbsoluteX, 3, 7, false, Increment, true},

	{0xE8, "INX", Implied, 1, 2, false, Increment, true},
	{0xC8, "INY", Implied, 1, 2, false, Increment, true},

	{OpJMPAbsolute, "JMP", Absolute, 3, 3, false, Jump, true},
	{OpJMPIndirect, "JMP", Indirect, 3, 5, false, Jump, true},

	{OpJSRAbsolute, "JSR", Absolute, 3, 6, false, Jump, true},

	{0xA9, "LDA", Immediate, 2, 2, false, Load, true},
	{0xA5, "LDA", ZeroPage, 2, 3, false, Load, true},
	{0xB5, "LDA", ZeroPageX, 2, 4, false, Load, true},
	{0xAD, "LDA", Absolute, 3, 4, false, Load, true},
	{0xBD, "LDA", AbsoluteX, 3, 4, true, Load, true},
	{0xB9, "LDA", AbsoluteY, 3, 4, true, Load, true},
	{0xA1, "LDA", IndexedIndirect, 2, 6, false, Load, true},
	{0xB1, "LDA", IndirectIndexed, 2, 5, true, Load, true},

	{0xA2, "LDX", Immediate, 2, 2, false, Load, true},
	{0xA6, "LDX", ZeroPage, 2, 3, false, Load, true},
	{0xB6, "LDX", ZeroPageY, 2, 4, false, Load, true},
	{0xAE, "LDX", Absolute, 3, 4, false, Load, true},
	{0xBE, "LDX", AbsoluteY, 3, 4, true, Load, true},

	{0xA0, "LDY", Immediate, 2, 2, false, Load, true},
	{0xA4, "LDY", ZeroPage, 2, 3, false, Load, true},
	{0xB4, "LDY", ZeroPageX, 2, 4, false, Load, true},
	{0xAC, "LDY", Absolute, 3, 4, false, Load, true},
	{0xBC, "LDY", AbsoluteX, 3, 4, true, Load, true},

	{0x4A, "LSR", Accumulator, 1, 2, false, Shift, true},
	{0x46, "LSR", ZeroPage, 2, 5, false, Shift, true},
	{0x56, "LSR", ZeroPageX, 2, 6, false, Shift, true},
	{0x4E, "LSR", Absolute, 3, 6, false, Shift, true},
	{0x5E, "LSR", AbsoluteX, 3, 7, false, Shift, true},

	{OpNOP, "NOP", Implied, 1, 2, false, Other, true},

	{0x09, "ORA", Immediate, 2, 2, false, Logic, true},
	{0x05, "ORA", ZeroPage, 2, 3, false, Logic, true},
	{0x15, "ORA", ZeroPageX, 2, 4, false, Logic, true},
	{0x0D, "ORA", Absolute, 3, 4, false, Logic, true},
	{0x1D, "ORA", AbsoluteX, 3, 4, true, Logic, true},
	{0x19, "ORA", AbsoluteY, 3, 4, true, Logic, true},
	{0x01, "ORA", IndexedIndirect, 2, 6, false, Logic, true},
	{0x11, "ORA", IndirectIndexed, 2, 5, true, Logic, true},

	{0x48, "PHA", Implied, 1, 3, false, Stack, true},
	{0x08, "PHP", Implied, 1, 3, false, Stack, true},
	{0x68, "PLA", Implied, 1, 4, false, Stack, true},
	{0x28, "PLP", Implied, 1, 4, false, Stack, true},

	{0x2A, "ROL", Accumulator, 1, 2, false, Shift, true},
	{0x26, "ROL", ZeroPage, 2, 5, false, Shift, true},
	{0x36, "ROL", ZeroPageX, 2, 6, false, Shift, true},
	{0x2E, "ROL", Absolute, 3, 6, false, Shift, true},
	{0x3E, "ROL", AbsoluteX, 3, 7, false, Shift, true},

	{0x6A, "ROR", Accumulator, 1, 2, false, Shift, true},
	{0x66, "ROR", ZeroPage, 2, 5, false, Shift, true},
	{0x76, "ROR", ZeroPageX, 2, 6, false, Shift, true},
	{0x6E, "ROR", Absolute, 3, 6, false, Shift, true},
	{0x7E, "ROR", AbsoluteX, 3, 7, false, Shift, true},

	{0x40, "RTI", Implied, 1, 6, false, Return, true},
	{0x60, "RTS", Implied, 1, 6, false, Return, true},

	{0xE9, "SBC", Immediate, 2, 2, false, Arithmetic, true},
	{0xE5, "SBC", ZeroPage, 2, 3, false, Arithmetic, true},
	{0xF5, "SBC", ZeroPageX, 2, 4, false, Arithmetic, true},
	{0xED, "SBC", Absolute, 3, 4, false, Arithmetic, true},
	{0xFD, "SBC", AbsoluteX, 3, 4, true, Arithmetic, true},
	{0xF9, "SBC", AbsoluteY, 3, 4, true, Arithmetic, true},
	{0xE1, "SBC", IndexedIndirect, 2, 6, false, Arithmetic, true},
	{0xF1, "SBC", IndirectIndexed, 2, 5, true, Arithmetic, true},

	{0x85, "STA", ZeroPage, 2, 3, false, Store, true},
	{0x95, "STA", ZeroPageX, 2, 4, false, Store, true},
	{0x8D, "STA", Absolute, 3, 4, false, Store, true},
	{0x9D, "STA", AbsoluteX, 3, 5, false, Store, true},
	{0x99, "STA", AbsoluteY, 3, 5, false, Store, true},
	{0x81, "STA", IndexedIndirect, 2, 6, false, Store, true},
	{0x91, "STA", IndirectIndexed, 2, 6, false, Store, true},

	{0x86, "STX", ZeroPage, 2, 3, false, Store, true},
	{0x96, "STX", ZeroPageY, 2, 4, false, Store, true},
	{0x8E, "STX", Absolute, 3, 4, false, Store, true},

	{0x84, "STY", ZeroPage, 2, 3, false, Store, true},
	{0x94, "STY", ZeroPageX, 2, 4, false, Store, true},
	{0x8C, "STY", Absolute, 3, 4, false, Store, true},

	{0xAA, "TAX", Implied, 1, 2, false, Transfer, true},
	{0xA8, "TAY", Implied, 1, 2, false, Transfer, true},
	{0xBA, "TSX", Implied, 1, 2, false, Transfer, true},
	{0x8A, "TXA", Implied, 1, 2, false, Transfer, true},
	{0x9A, "TXS", Implied, 1, 2, false, Transfer, true},
	{0x98, "TYA", Implied, 1, 2, false, Transfer, true},
}

// table maps every byte value to its Info. Missing opcodes stay invalid
// with Size 1 so callers can skip a single byte and keep decoding.
var table [256]Info

func init() {
	for op := 0; op < 256; op++ {
		table[op] = Info{
			Opcode:   uint8(op),
			Mnemonic: "???",
			Mode:     Implied,
			Size:     1,
			Category: Other,
		}
	}
	for _, info := range documented {
		table[info.Opcode] = info
	}
}

// Lookup returns the Info of an opcode byte. The result is never nil;
// check Valid for undocumented opcodes.
func Lookup(opcode uint8) *Info {
	return &table[opcode]
}
