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

import (
	"fmt"
)

// Word assembles a little-endian 16-bit value from two operand bytes.
func Word(lo, hi byte) uint16 {
	return uint16(lo) | uint16(hi)<<8
}

// ResolveTarget computes the static control-flow target of an instruction.
//
// Branches always resolve: target = address of the next instruction plus
// the sign-extended displacement, wrapping in 16 bits. JMP and JSR with a
// full address operand resolve to that address; for JMP (indirect) the
// result is the indirection base, not the runtime target. Every other
// combination reports no target.
func ResolveTarget(info *Info, cpuAddress uint16, operands []byte) (uint16, bool) {
	switch {
	case info.Mode == Relative:
		next := cpuAddress + uint16(info.Size)
		return next + uint16(int16(int8(operands[0]))), true
	case info.IsJump() && (info.Mode == Absolute || info.Mode == Indirect):
		return Word(operands[0], operands[1]), true
	default:
		return 0, false
	}
}

// FormatOperand renders the operand text of a decoded instruction.
// Relative operands print the resolved target address, so the caller has
// to pass the result of ResolveTarget for branches.
func FormatOperand(info *Info, operands []byte, target uint16) string {
	switch info.Mode {
	case Implied:
		return ""
	case Accumulator:
		return "A"
	case Immediate:
		return fmt.Sprintf("#$%02X", operands[0])
	case ZeroPage:
		return fmt.Sprintf("$%02X", operands[0])
	case ZeroPageX:
		return fmt.Sprintf("$%02X,X", operands[0])
	case ZeroPageY:
		return fmt.Sprintf("$%02X,Y", operands[0])
	case Relative:
		return fmt.Sprintf("$%04X", target)
	case Absolute:
		return fmt.Sprintf("$%04X", Word(operands[0], operands[1]))
	case AbsoluteX:
		return fmt.Sprintf("$%04X,X", Word(operands[0], operands[1]))
	case AbsoluteY:
		return fmt.Sprintf("$%04X,Y", Word(operands[0], operands[1]))
	case Indirect:
		return fmt.Sprintf("($%04X)", Word(operands[0], operands[1]))
	case IndexedIndirect:
		return fmt.Sprintf("($%02X,X)", operands[0])
	case IndirectIndexed:
		return fmt.Sprintf("($%02X),Y", operands[0])
	default:
		return ""
	}
}
