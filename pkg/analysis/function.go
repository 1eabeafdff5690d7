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

import "sort"

// Function is one partitioned routine of the program.
type Function struct {
	EntryAddress         uint16
	Name                 string
	InstructionAddresses map[uint16]bool
	VariablesAccessed    map[uint16]bool
	CalledFunctions      map[uint16]bool
}

// SortedInstructionAddresses returns the instruction addresses of the
// function in ascending order.
func (f *Function) SortedInstructionAddresses() []uint16 {
	return sortedAddressSet(f.InstructionAddresses)
}

// SortedVariables returns the accessed variable addresses in ascending
// order.
func (f *Function) SortedVariables() []uint16 {
	return sortedAddressSet(f.VariablesAccessed)
}

// SortedCalls returns the called entry addresses in ascending order.
func (f *Function) SortedCalls() []uint16 {
	return sortedAddressSet(f.CalledFunctions)
}

func sortedAddressSet(set map[uint16]bool) []uint16 {
	addrs := make([]uint16, 0, len(set))
	for addr := range set {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}
