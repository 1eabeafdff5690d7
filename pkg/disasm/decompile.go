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
	"sort"

	"github.com/pkg/errors"

	"github.com/master-g/nesrev/pkg/m6502"
)

// DecompiledFunction is the ordered instruction listing of one function.
type DecompiledFunction struct {
	EntryAddress uint16
	Instructions []*Instruction
	// JumpTargets maps the address of every labeled real instruction to
	// its label.
	JumpTargets map[uint16]string
}

type visit struct {
	addr uint16
	from uint16
}

// DecompileFunction traces the instructions of a single function starting
// at entry. The trace stays conservative: JSR, BRK, RTI, RTS and indirect
// jumps all end a function, because past any of them the statically known
// control flow stops.
//
// A body that loops back below its entry and falls through into it again
// gets a synthesized JMP back to the entry, so the reordered listing keeps
// the loop. The pseudo record carries SubOrder 1 and sorts behind the real
// instruction at its address.
func DecompileFunction(entry uint16, regions []Region) (*DecompiledFunction, error) {
	fn := &DecompiledFunction{
		EntryAddress: entry,
		JumpTargets:  make(map[uint16]string),
	}

	decoded := make(map[uint16]bool)
	targets := make(map[uint16]bool)
	repaired := false

	queue := []visit{{addr: entry, from: entry}}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		if decoded[v.addr] {
			if v.addr == entry && !repaired {
				if entry == 0x0000 && v.from != entry {
					// the repair jump would have to live at 0xFFFF
					return nil, errors.Wrap(ErrLoopbackToZero, "cannot repair loop")
				}
				if v.from < entry {
					fn.Instructions = append(fn.Instructions, loopRepair(entry))
					targets[entry] = true
					repaired = true
				}
			}
			continue
		}

		region := findRegion(regions, v.addr)
		if region == nil {
			return nil, errors.Wrapf(ErrRegionMissing, "address $%04X", v.addr)
		}
		offset := int(v.addr - region.BaseAddress)
		info := m6502.Lookup(region.Bytes[offset])
		if !info.Valid {
			// unknown byte, this path of the function ends
			continue
		}
		if offset+int(info.Size) > len(region.Bytes) {
			return nil, errors.Wrapf(ErrOutOfBounds, "address $%04X", v.addr)
		}

		inst := &Instruction{
			CPUAddress: v.addr,
			ROMOffset:  uint16(offset),
			Info:       info,
			Bytes:      region.Bytes[offset : offset+int(info.Size)],
		}
		inst.Target, inst.HasTarget = m6502.ResolveTarget(info, v.addr, inst.Bytes[1:])
		decoded[v.addr] = true
		fn.Instructions = append(fn.Instructions, inst)

		if v.addr == entry && inst.Label == "" {
			inst.Label = fmt.Sprintf("sub_%04X", entry)
			targets[entry] = true
		}

		if functionEnd(info) {
			continue
		}

		next := v.addr + uint16(info.Size)
		if inst.HasTarget {
			targets[inst.Target] = true
			queue = append(queue, visit{addr: inst.Target, from: v.addr})
		}
		if info.Mnemonic != "JMP" {
			queue = append(queue, visit{addr: next, from: v.addr})
		}
	}

	OrderForListing(entry, fn.Instructions)

	for _, inst := range fn.Instructions {
		if inst.SubOrder != 0 || !targets[inst.CPUAddress] {
			continue
		}
		if inst.CPUAddress == entry {
			fn.JumpTargets[entry] = fmt.Sprintf("sub_%04X", entry)
		} else {
			fn.JumpTargets[inst.CPUAddress] = fmt.Sprintf("loc_%04X", inst.CPUAddress)
		}
		if inst.Label == "" {
			inst.Label = fn.JumpTargets[inst.CPUAddress]
		}
	}

	return fn, nil
}

// functionEnd reports whether the instruction terminates a single
// function trace. RTS and RTI may not come back to the fall-through when
// the routine plays with the stack, so a call is treated as terminating
// too; the target of an indirect jump is unknown statically.
func functionEnd(info *m6502.Info) bool {
	switch info.Mnemonic {
	case "JSR", "BRK", "RTI", "RTS":
		return true
	}
	return info.Mode == m6502.Indirect
}

// loopRepair synthesizes the JMP that re-enters the function entry after
// the loop body that sits below it.
func loopRepair(entry uint16) *Instruction {
	info := m6502.Lookup(m6502.OpJMPAbsolute)
	return &Instruction{
		CPUAddress: entry - 1,
		Info:       info,
		Bytes:      []byte{m6502.OpJMPAbsolute, uint8(entry & 0xFF), uint8(entry >> 8)},
		Target:     entry,
		HasTarget:  true,
		Comment:    "loop repair",
		SubOrder:   1,
	}
}

// OrderForListing sorts a function body for emission: the entry record
// first, then everything above the entry, then the loop body below it,
// and synthetic entry variants last. Keeping those behind the body means
// a re-executed listing cannot have them stack-saved by a stray IRQ.
func OrderForListing(entry uint16, instructions []*Instruction) {
	rank := func(inst *Instruction) int {
		switch {
		case inst.CPUAddress == entry && inst.SubOrder >= 0:
			return 0
		case inst.CPUAddress > entry:
			return 1
		case inst.CPUAddress < entry:
			return 2
		default:
			return 3
		}
	}
	sort.SliceStable(instructions, func(i, j int) bool {
		a, b := instructions[i], instructions[j]
		ra, rb := rank(a), rank(b)
		if ra != rb {
			return ra < rb
		}
		if a.CPUAddress != b.CPUAddress {
			return a.CPUAddress < b.CPUAddress
		}
		return a.SubOrder < b.SubOrder
	})
}
