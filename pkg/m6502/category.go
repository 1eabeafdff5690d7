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

// Category groups mnemonics by the effect the emitter has to translate.
type Category int

const (
	Load Category = iota
	Store
	Transfer
	Stack
	Arithmetic
	Increment
	Decrement
	Shift
	Logic
	Compare
	Branch
	Jump
	Return
	SetFlag
	ClearFlag
	Interrupt
	Other
)

func (c Category) String() string {
	switch c {
	case Load:
		return "Load"
	case Store:
		return "Store"
	case Transfer:
		return "Transfer"
	case Stack:
		return "Stack"
	case Arithmetic:
		return "Arithmetic"
	case Increment:
		return "Increment"
	case Decrement:
		return "Decrement"
	case Shift:
		return "Shift"
	case Logic:
		return "Logic"
	case Compare:
		return "Compare"
	case Branch:
		return "Branch"
	case Jump:
		return "Jump"
	case Return:
		return "Return"
	case SetFlag:
		return "SetFlag"
	case ClearFlag:
		return "ClearFlag"
	case Interrupt:
		return "Interrupt"
	default:
		return "Other"
	}
}
