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

package disasm

import (
	"fmt"

	"github.com/master-g/nesrev/pkg/m6502"
)

// Instruction is one decoded CPU instruction.
//
// SubOrder breaks ties between multiple records at the same CPU address:
// decoded instructions use 0, loop repair pseudo jumps positive values,
// virtual variants negative values.
type Instruction struct {
	CPUAddress uint16
	ROMOffset  uint16
	Info       *m6502.Info
	Bytes      []byte
	Target     uint16
	HasTarget  bool
	Label      string
	Comment    string
	SubOrder   int32
}

// IsBranch reports whether the instruction is a conditional branch.
func (i *Instruction) IsBranch() bool {
	return i.Info.IsBranch()
}

// IsJump reports whether the instruction is a JMP or JSR.
func (i *Instruction) IsJump() bool {
	return i.Info.IsJump()
}

// IsFunctionExit reports whether the instruction is an RTS or RTI.
func (i *Instruction) IsFunctionExit() bool {
	return i.Info.IsFunctionExit()
}

// Operand renders the operand text of the instruction.
func (i *Instruction) Operand() string {
	return m6502.FormatOperand(i.Info, i.Bytes[1:], i.Target)
}

func (i *Instruction) String() string {
	operand := i.Operand()
	if operand == "" {
		return fmt.Sprintf("$%04X: %s", i.CPUAddress, i.Info.Mnemonic)
	}
	return fmt.Sprintf("$%04X: %s %s", i.CPUAddress, i.Info.Mnemonic, operand)
}
