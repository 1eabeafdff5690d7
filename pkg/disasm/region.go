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
	"github.com/master-g/nesrev/pkg/ines"
)

// Region is a window of program bytes mapped contiguously into CPU space
// starting at BaseAddress. Several regions may coexist once bank switching
// enters the picture.
type Region struct {
	BaseAddress uint16
	Bytes       []byte
}

// Contains reports whether addr falls inside the region.
func (r *Region) Contains(addr uint16) bool {
	return addr >= r.BaseAddress && uint32(addr) < uint32(r.BaseAddress)+uint32(len(r.Bytes))
}

// RegionsFromROM builds the region set of a fixed-bank cartridge: the PRG
// bank mapped at 0x8000, mirrored into the upper half when the cartridge
// carries a single 16 KB bank.
func RegionsFromROM(rom *ines.ROM) []Region {
	prg := rom.PRG()
	regions := []Region{{BaseAddress: ines.PRGBaseAddress, Bytes: prg}}
	if len(prg) == ines.PRGBankSize {
		regions = append(regions, Region{BaseAddress: ines.PRGBaseAddress + ines.PRGBankSize, Bytes: prg})
	}
	return regions
}

func findRegion(regions []Region, addr uint16) *Region {
	for i := range regions {
		if regions[i].Contains(addr) {
			return &regions[i]
		}
	}
	return nil
}
