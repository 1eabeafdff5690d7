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

package m6502

// AddressingMode enumerates the addressing modes of the documented 6502
// instruction set.
//
//  Implied         - no operand                                - CLC
//  Accumulator     - operates on the accumulator               - ASL A
//  Immediate       - one byte constant                         - LDA #$FF
//  ZeroPage        - one byte address in page zero             - LDA $12
//  ZeroPageX       - zero page address + X                     - LDA $12,X
//  ZeroPageY       - zero page address + Y (LDX/STX only)      - LDX $12,Y
//  Relative        - signed displacement, branches only        - BNE $8006
//  Absolute        - full 16-bit address                       - LDA $1234
//  AbsoluteX       - absolute address + X                      - LDA $1234,X
//  AbsoluteY       - absolute address + Y                      - LDA $1234,Y
//  Indirect        - address of a 16-bit pointer (JMP only)    - JMP ($1234)
//  IndexedIndirect - zero page table of pointers indexed by X  - LDA ($80,X)
//  IndirectIndexed - zero page pointer post-indexed by Y       - LDA ($80),Y
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect
	IndirectIndexed
)

// OperandSize returns the number of operand bytes the mode consumes.
func (m AddressingMode) OperandSize() int {
	switch m {
	case Implied, Accumulator:
		return 0
	case Immediate, ZeroPage, ZeroPageX, ZeroPageY, Relative, IndexedIndirect, IndirectIndexed:
		return 1
	default:
		return 2
	}
}

// HasMemoryOperand reports whether the mode references a memory location
// that the data-flow analysis should track.
func (m AddressingMode) HasMemoryOperand() bool {
	switch m {
	case Implied, Accumulator, Immediate, Relative:
		return false
	default:
		return true
	}
}

// Indexed reports whether the operand address is offset by X or Y.
func (m AddressingMode) Indexed() bool {
	switch m {
	case ZeroPageX, ZeroPageY, AbsoluteX, AbsoluteY:
		return true
	default:
		return false
	}
}

func (m AddressingMode) String() string {
	switch m {
	case Implied:
		return "Implied"
	case Accumulator:
		return "Accumulator"
	case Immediate:
		return "Immediate"
	case ZeroPage:
		return "ZeroPage"
	case ZeroPageX:
		return "ZeroPageX"
	case ZeroPageY:
		return "ZeroPageY"
	case Relative:
		return "Relative"
	case Absolute:
		return "Absolute"
	case AbsoluteX:
		return "AbsoluteX"
	case AbsoluteY:
		return "AbsoluteY"
	case Indirect:
		return "Indirect"
	case IndexedIndirect:
		return "IndexedIndirect"
	case IndirectIndexed:
		return "IndirectIndexed"
	default:
		return "N/A"
	}
}
