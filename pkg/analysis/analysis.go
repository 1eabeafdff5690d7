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

// Package analysis partitions a disassembled program into functions and
// classifies every referenced data address. The result owns all per-ROM
// state; analyzing two images never shares anything.
package analysis

import (
	"fmt"
	"sort"

	"github.com/retroenv/retrogolib/log"

	"github.com/master-g/nesrev/pkg/disasm"
	"github.com/master-g/nesrev/pkg/ines"
	"github.com/master-g/nesrev/pkg/m6502"
)

// Report is the complete result of analyzing one cartridge.
type Report struct {
	ROM       *ines.ROM
	Disasm    *disasm.Report
	Variables map[uint16]*Variable
	Functions map[uint16]*Function
}

// SortedVariables returns the variables in address order.
func (r *Report) SortedVariables() []*Variable {
	vars := make([]*Variable, 0, len(r.Variables))
	for _, v := range r.Variables {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Address < vars[j].Address })
	return vars
}

// SortedFunctions returns the functions in entry address order.
func (r *Report) SortedFunctions() []*Function {
	funcs := make([]*Function, 0, len(r.Functions))
	for _, f := range r.Functions {
		funcs = append(funcs, f)
	}
	sort.Slice(funcs, func(i, j int) bool { return funcs[i].EntryAddress < funcs[j].EntryAddress })
	return funcs
}

// Analyzer runs the variable and function passes over a disassembly.
type Analyzer struct {
	// Logger is optional; a nil logger keeps the analyzer silent.
	Logger *log.Logger
}

// Analyze runs the whole pipeline on a loaded cartridge: disassembly,
// variable classification and function partitioning.
func Analyze(rom *ines.ROM) *Report {
	return (&Analyzer{}).Analyze(rom)
}

// Analyze runs the whole pipeline on a loaded cartridge.
func (a *Analyzer) Analyze(rom *ines.ROM) *Report {
	d := disasm.NewDisassembler(rom)
	d.Logger = a.Logger
	return a.AnalyzeDisassembly(rom, d.Run())
}

// AnalyzeDisassembly runs the analysis passes over an existing
// disassembly report.
func (a *Analyzer) AnalyzeDisassembly(rom *ines.ROM, dr *disasm.Report) *Report {
	report := &Report{
		ROM:       rom,
		Disasm:    dr,
		Variables: make(map[uint16]*Variable),
		Functions: make(map[uint16]*Function),
	}
	a.collectVariables(report)
	a.partitionFunctions(report)

	if a.Logger != nil {
		a.Logger.Debug("analysis complete",
			log.Int("variables", len(report.Variables)),
			log.Int("functions", len(report.Functions)))
	}
	return report
}

// collectVariables walks every decoded instruction and records the data
// address it touches. The index register is not applied statically; an
// indexed access is recorded at its base address and widens the variable
// to an array.
func (a *Analyzer) collectVariables(report *Report) {
	for _, addr := range report.Disasm.SortedAddresses() {
		inst := report.Disasm.Instructions[addr]
		mode := inst.Info.Mode
		if !mode.HasMemoryOperand() {
			continue
		}
		if inst.Info.IsJump() {
			// control flow, not data; indirect jump bases stay opaque
			continue
		}

		base := OperandBase(inst)
		v, ok := report.Variables[base]
		if !ok {
			v = &Variable{
				Address: base,
				Name:    variableName(base),
				Type:    TypeByte,
				Size:    1,
			}
			report.Variables[base] = v
		}

		switch {
		case mode == m6502.IndexedIndirect || mode == m6502.IndirectIndexed:
			v.Type = TypePointer
			v.Size = 2
		case mode.Indexed() && v.Type != TypePointer:
			v.Type = TypeArray
			v.Size = 256
		}

		if inst.Info.Category == m6502.Store {
			v.IsWritten = true
		} else {
			v.IsRead = true
		}
	}
}

// OperandBase extracts the static base address of a memory operand.
// Single byte modes address page zero, two byte modes carry the full
// address, and the indirect modes name the zero page slot holding the
// pointer.
func OperandBase(inst *disasm.Instruction) uint16 {
	switch inst.Info.Mode {
	case m6502.Absolute, m6502.AbsoluteX, m6502.AbsoluteY, m6502.Indirect:
		return m6502.Word(inst.Bytes[1], inst.Bytes[2])
	default:
		return uint16(inst.Bytes[1])
	}
}

// partitionFunctions seeds one function per interrupt vector and JSR
// destination, then walks each function's local reachability. Unlike the
// single function decompiler, the whole program walk continues past a
// JSR: the callee is recorded and the trace resumes at the return site.
func (a *Analyzer) partitionFunctions(report *Report) {
	dr := report.Disasm

	seeds := make(map[uint16]bool)
	for _, addr := range []uint16{report.ROM.ResetVector, report.ROM.NMIVector, report.ROM.IRQVector} {
		if dr.Instruction(addr) != nil {
			seeds[dr.Normalize(addr)] = true
		}
	}
	for _, addr := range dr.SortedAddresses() {
		inst := dr.Instructions[addr]
		if inst.Info.Mnemonic == "JSR" && inst.HasTarget {
			if dr.Instruction(inst.Target) != nil {
				seeds[dr.Normalize(inst.Target)] = true
			}
		}
	}

	for entry := range seeds {
		report.Functions[entry] = a.traceFunction(report, entry)
	}
}

func (a *Analyzer) traceFunction(report *Report, entry uint16) *Function {
	dr := report.Disasm
	fn := &Function{
		EntryAddress:         entry,
		Name:                 fmt.Sprintf("sub_%04X", entry),
		InstructionAddresses: make(map[uint16]bool),
		VariablesAccessed:    make(map[uint16]bool),
		CalledFunctions:      make(map[uint16]bool),
	}

	queue := []uint16{entry}
	for len(queue) > 0 {
		addr := dr.Normalize(queue[0])
		queue = queue[1:]

		inst, ok := dr.Instructions[addr]
		if !ok || fn.InstructionAddresses[addr] {
			continue
		}
		fn.InstructionAddresses[addr] = true

		if inst.Info.Mode.HasMemoryOperand() && !inst.Info.IsJump() {
			fn.VariablesAccessed[OperandBase(inst)] = true
		}

		next := addr + uint16(inst.Info.Size)
		switch {
		case inst.Info.Mnemonic == "JSR":
			if inst.HasTarget {
				fn.CalledFunctions[dr.Normalize(inst.Target)] = true
			}
			queue = append(queue, next)
		case inst.Info.Mnemonic == "JMP":
			if inst.Info.Mode == m6502.Absolute && inst.HasTarget {
				queue = append(queue, inst.Target)
			}
		case inst.IsBranch():
			queue = append(queue, inst.Target, next)
		case inst.IsFunctionExit() || inst.Info.Mnemonic == "BRK":
			// end of this path
		default:
			queue = append(queue, next)
		}
	}
	return fn
}
