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

package analysis

import "fmt"

// VarType is the inferred storage class of a referenced data address.
type VarType int

const (
	TypeByte VarType = iota
	TypeWord
	TypeArray
	TypePointer
	TypeUnknown
)

func (t VarType) String() string {
	switch t {
	case TypeByte:
		return "Byte"
	case TypeWord:
		return "Word"
	case TypeArray:
		return "Array"
	case TypePointer:
		return "Pointer"
	default:
		return "Unknown"
	}
}

// Variable is one referenced data address and what the code does with it.
type Variable struct {
	Address   uint16
	Name      string
	Type      VarType
	Size      int
	IsRead    bool
	IsWritten bool
}

// IsHardware reports whether the variable sits on a memory mapped
// hardware register.
func (v *Variable) IsHardware() bool {
	return IsHardwareRegister(v.Address)
}

// variableName derives the initial name of a data address: hardware
// registers keep their canonical mnemonic, everything else is named after
// the address space it lives in.
func variableName(addr uint16) string {
	if name := HardwareRegisterName(addr); name != "" {
		return name
	}
	switch {
	case addr < 0x0100:
		return fmt.Sprintf("zp_%02X", addr)
	case addr < 0x0800:
		return fmt.Sprintf("ram_%04X", addr)
	case addr >= 0x8000:
		return fmt.Sprintf("rom_%04X", addr)
	default:
		return fmt.Sprintf("var_%04X", addr)
	}
}
