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

// Package disasm decodes the PRG bank of a cartridge into an address keyed
// instruction map. A linear sweep seeds the map, a worklist trace from the
// interrupt vectors walks the control flow, and referenced addresses the
// sweep misinterpreted as data trigger targeted re-sweeps until the map
// reaches a fixed point.
package disasm

import (
	"fmt"
	"sort"

	"github.com/retroenv/retrogolib/log"

	"github.com/master-g/nesrev/pkg/ines"
	"github.com/master-g/nesrev/pkg/m6502"
)

// SweepIterationCap bounds the re-sweep loop of pathological images whose
// jump tables keep referencing fresh data offsets.
const SweepIterationCap = 100

// Report is the result of disassembling one PRG bank.
type Report struct {
	// Instructions holds at most one decoded record per CPU address.
	Instructions map[uint16]*Instruction
	// Labels maps decoded addresses to sub_XXXX / loc_XXXX names.
	Labels map[uint16]string
	// EntryPoints are the decoded vector and JSR destinations.
	EntryPoints []uint16
	// Referenced collects every resolved control-flow target.
	Referenced map[uint16]bool

	window int
}

// Normalize folds a CPU address into the decoded window, resolving the
// 16 KB bank mirror when the cartridge has a single PRG bank.
func (r *Report) Normalize(addr uint16) uint16 {
	if r.window == ines.PRGBankSize && addr >= ines.PRGBaseAddress+ines.PRGBankSize {
		return addr - ines.PRGBankSize
	}
	return addr
}

// Instruction returns the decoded record at addr, looking through the
// bank mirror.
func (r *Report) Instruction(addr uint16) *Instruction {
	return r.Instructions[r.Normalize(addr)]
}

// Label returns the label attached to addr, looking through the bank
// mirror.
func (r *Report) Label(addr uint16) (string, bool) {
	label, ok := r.Labels[r.Normalize(addr)]
	return label, ok
}

// IsEntryPoint reports whether addr is a decoded entry point.
func (r *Report) IsEntryPoint(addr uint16) bool {
	addr = r.Normalize(addr)
	for _, e := range r.EntryPoints {
		if e == addr {
			return true
		}
	}
	return false
}

// SortedAddresses returns the decoded addresses in ascending order.
func (r *Report) SortedAddresses() []uint16 {
	addrs := make([]uint16, 0, len(r.Instructions))
	for addr := range r.Instructions {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}

// Disassembler decodes the PRG bank of one cartridge.
type Disassembler struct {
	// Logger is optional; a nil logger keeps the disassembler silent.
	Logger *log.Logger

	rom     *ines.ROM
	prg     []byte
	window  int
	entries map[uint16]bool
	traced  map[uint16]bool
	report  *Report
}

// NewDisassembler prepares a disassembler over the PRG bank of rom. Only
// the fixed 32 KB window mapped at 0x8000 is decoded; switched banks of
// larger cartridges are not visible to a static single-bank analysis.
func NewDisassembler(rom *ines.ROM) *Disassembler {
	prg := rom.PRG()
	window := len(prg)
	if window > 0x8000 {
		window = 0x8000
	}
	return &Disassembler{
		rom:     rom,
		prg:     prg,
		window:  window,
		entries: make(map[uint16]bool),
		traced:  make(map[uint16]bool),
		report: &Report{
			Instructions: make(map[uint16]*Instruction),
			Labels:       make(map[uint16]string),
			Referenced:   make(map[uint16]bool),
			window:       window,
		},
	}
}

// Disassemble decodes the PRG bank of rom.
func Disassemble(rom *ines.ROM) *Report {
	return NewDisassembler(rom).Run()
}

// Run executes the sweep, trace, label and re-sweep phases until the
// instruction map stops growing.
func (d *Disassembler) Run() *Report {
	for _, entry := range d.rom.EntryPoints {
		d.addEntry(entry)
	}
	// interrupt handlers are roots of their own control flow
	d.addEntry(d.rom.NMIVector)
	d.addEntry(d.rom.IRQVector)

	d.sweep(0)
	for iteration := 0; ; iteration++ {
		d.trace()
		d.assignLabels()

		missing := d.missingReferences()
		if len(missing) == 0 {
			break
		}
		if iteration >= SweepIterationCap {
			if d.Logger != nil {
				d.Logger.Warn("re-sweep saturated, keeping partial disassembly",
					log.Int("pending", len(missing)))
			}
			break
		}
		for _, addr := range missing {
			d.sweep(int(addr - ines.PRGBaseAddress))
		}
	}

	if d.Logger != nil {
		d.Logger.Debug("disassembly complete",
			log.Int("instructions", len(d.report.Instructions)),
			log.Int("entry_points", len(d.report.EntryPoints)))
	}
	return d.report
}

func (d *Disassembler) addEntry(addr uint16) {
	if addr < ines.PRGBaseAddress {
		return
	}
	d.entries[d.normalize(addr)] = true
}

func (d *Disassembler) normalize(addr uint16) uint16 {
	return d.report.Normalize(addr)
}

// sweep decodes linearly from a PRG offset until it runs into an address
// that is already decoded or off the end of the window. Bytes that do not
// decode as a documented opcode are skipped silently, they may well be
// data.
func (d *Disassembler) sweep(offset int) {
	for offset >= 0 && offset < d.window {
		addr := ines.PRGBaseAddress + uint16(offset)
		if _, ok := d.report.Instructions[addr]; ok {
			return
		}
		info := m6502.Lookup(d.prg[offset])
		if !info.Valid {
			offset++
			continue
		}
		if offset+int(info.Size) > d.window {
			// trailing bytes too short for the operand, treat as data
			return
		}
		d.report.Instructions[addr] = d.decode(addr, offset, info)
		offset += int(info.Size)
	}
}

func (d *Disassembler) decode(addr uint16, offset int, info *m6502.Info) *Instruction {
	inst := &Instruction{
		CPUAddress: addr,
		ROMOffset:  uint16(offset),
		Info:       info,
		Bytes:      d.prg[offset : offset+int(info.Size)],
	}
	inst.Target, inst.HasTarget = m6502.ResolveTarget(info, addr, inst.Bytes[1:])
	return inst
}

// trace walks the control flow from every known entry point and every
// referenced address, growing the entry set when a JSR destination shows
// up.
func (d *Disassembler) trace() {
	queue := make([]uint16, 0, len(d.entries)+len(d.report.Referenced))
	for addr := range d.entries {
		queue = append(queue, addr)
	}
	for addr := range d.report.Referenced {
		queue = append(queue, addr)
	}
	sort.Slice(queue, func(i, j int) bool { return queue[i] < queue[j] })

	for len(queue) > 0 {
		addr := d.normalize(queue[0])
		queue = queue[1:]

		inst, ok := d.report.Instructions[addr]
		if !ok || d.traced[addr] {
			continue
		}
		d.traced[addr] = true
		next := addr + uint16(inst.Info.Size)

		switch {
		case inst.Info.Mnemonic == "JSR":
			if inst.HasTarget {
				target := d.normalize(inst.Target)
				d.entries[target] = true
				d.report.Referenced[target] = true
				queue = append(queue, target)
			}
			queue = append(queue, next)
		case inst.Info.Mnemonic == "JMP":
			if inst.Info.Mode == m6502.Absolute && inst.HasTarget {
				target := d.normalize(inst.Target)
				d.report.Referenced[target] = true
				queue = append(queue, target)
			}
			// indirect jump target is unknown, the path ends here
		case inst.IsBranch():
			target := d.normalize(inst.Target)
			d.report.Referenced[target] = true
			queue = append(queue, target, next)
		case inst.IsFunctionExit():
			// RTS / RTI end the path
		default:
			queue = append(queue, next)
		}
	}
}

// assignLabels rebuilds the label map: sub_XXXX for entry points,
// loc_XXXX for other referenced addresses, and a "-> label" comment on
// each decoded instruction whose target carries a label.
func (d *Disassembler) assignLabels() {
	report := d.report
	report.Labels = make(map[uint16]string)
	report.EntryPoints = report.EntryPoints[:0]

	for addr := range d.entries {
		inst, ok := report.Instructions[addr]
		if !ok {
			continue
		}
		inst.Label = fmt.Sprintf("sub_%04X", addr)
		report.Labels[addr] = inst.Label
		report.EntryPoints = append(report.EntryPoints, addr)
	}
	sort.Slice(report.EntryPoints, func(i, j int) bool {
		return report.EntryPoints[i] < report.EntryPoints[j]
	})

	for addr := range report.Referenced {
		if d.entries[addr] {
			continue
		}
		inst, ok := report.Instructions[addr]
		if !ok {
			continue
		}
		inst.Label = fmt.Sprintf("loc_%04X", addr)
		report.Labels[addr] = inst.Label
	}

	for _, inst := range report.Instructions {
		if !inst.HasTarget {
			continue
		}
		if label, ok := report.Labels[d.normalize(inst.Target)]; ok {
			inst.Comment = "-> " + label
		}
	}
}

// missingReferences lists referenced PRG addresses that still have no
// decoded instruction, the re-sweep starting points of the next round.
func (d *Disassembler) missingReferences() []uint16 {
	var missing []uint16
	for addr := range d.report.Referenced {
		if addr < ines.PRGBaseAddress {
			continue
		}
		if int(addr-ines.PRGBaseAddress) >= d.window {
			continue
		}
		if _, ok := d.report.Instructions[addr]; !ok {
			missing = append(missing, addr)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}
