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

package emit

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/master-g/nesrev/pkg/analysis"
	"github.com/master-g/nesrev/pkg/disasm"
	"github.com/master-g/nesrev/pkg/ines"
	"github.com/master-g/nesrev/pkg/m6502"
)

var cBanner = template.Must(template.New("c").Parse(
	`/*
 * {{ .Name }}.c
 *
 * Reconstructed from {{ .Name }} (mapper {{ .MapperID }}, {{ .MapperName }}).
 * PRG {{ .PRGSize }} bytes, CHR {{ .CHRSize }} bytes, reset vector ${{ printf "%04X" .Reset }}.
 *
 * The translation keeps the linear instruction semantics of the original
 * machine code: registers and status flags are globals, control flow uses
 * computed gotos (GNU labels as values).
 */
`))

// statusFlags lists the 6502 status bits in emission order.
var statusFlags = []struct {
	name  string
	value uint8
}{
	{"CARRY_FLAG", 0x01},
	{"ZERO_FLAG", 0x02},
	{"INTERRUPT_FLAG", 0x04},
	{"DECIMAL_FLAG", 0x08},
	{"BREAK_FLAG", 0x10},
	{"UNUSED_FLAG", 0x20},
	{"OVERFLOW_FLAG", 0x40},
	{"NEGATIVE_FLAG", 0x80},
}

// C renders the analysis report as a single C translation unit.
func C(report *analysis.Report, sink Sink) {
	name := romName(report)

	var banner strings.Builder
	_ = cBanner.Execute(&banner, bannerData(report))
	for _, line := range strings.Split(strings.TrimRight(banner.String(), "\n"), "\n") {
		sink.Line(line)
	}
	sink.Line("")

	sink.Line("#include <stdint.h>")
	sink.Line("#include <stdbool.h>")
	sink.Line("#include <stdlib.h>")
	sink.Line("#include <string.h>")
	sink.Line("")
	sink.Line(fmt.Sprintf("#include \"%s.h\"", name))
	sink.Line("")

	for _, flag := range statusFlags {
		sink.Line(fmt.Sprintf("#define %s 0x%02X", flag.name, flag.value))
	}
	sink.Line("")

	sink.Line("/* CPU register mirrors */")
	sink.Line("uint8_t a, x, y, status, sp;")
	sink.Line("uint16_t pc;")
	sink.Line("uint8_t memory[0x10000];")
	sink.Line("uint8_t stack[0x100];")
	sink.Line("")

	emitHardwareMacros(report, sink)
	emitVariableDecls(report, sink)
	emitPrototypes(report, sink)

	for _, fn := range report.SortedFunctions() {
		emitFunctionBody(report, fn, sink)
	}

	emitMain(report, sink)
}

func romName(report *analysis.Report) string {
	if report.ROM.Name != "" {
		return report.ROM.Name
	}
	return "rom"
}

func bannerData(report *analysis.Report) interface{} {
	return struct {
		Name       string
		MapperID   uint8
		MapperName string
		PRGSize    int
		CHRSize    int
		Reset      uint16
	}{
		Name:       romName(report),
		MapperID:   report.ROM.MapperID(),
		MapperName: ines.MapperName(report.ROM.MapperID()),
		PRGSize:    report.ROM.Header.PRGROMSize(),
		CHRSize:    report.ROM.Header.CHRROMSize(),
		Reset:      report.ROM.ResetVector,
	}
}

func hardwareVariables(report *analysis.Report) []*analysis.Variable {
	var hw []*analysis.Variable
	for _, v := range report.SortedVariables() {
		if v.IsHardware() {
			hw = append(hw, v)
		}
	}
	return hw
}

func emitHardwareMacros(report *analysis.Report, sink Sink) {
	hw := hardwareVariables(report)
	if len(hw) == 0 {
		return
	}
	sink.Line("/* memory mapped hardware registers */")
	for _, v := range hw {
		sink.Line(fmt.Sprintf("#define %s (*(volatile uint8_t *)0x%04X)", v.Name, v.Address))
	}
	sink.Line("")
}

func variableDecl(v *analysis.Variable) string {
	switch v.Type {
	case analysis.TypeArray:
		return fmt.Sprintf("static uint8_t %s[%d];", v.Name, v.Size)
	case analysis.TypePointer:
		return fmt.Sprintf("static uint8_t %s[2]; /* pointer */", v.Name)
	case analysis.TypeWord:
		return fmt.Sprintf("static uint16_t %s;", v.Name)
	default:
		return fmt.Sprintf("static uint8_t %s;", v.Name)
	}
}

func emitVariableDecls(report *analysis.Report, sink Sink) {
	var decls []string
	for _, v := range report.SortedVariables() {
		if declaredInUnit(v) {
			decls = append(decls, variableDecl(v))
		}
	}
	if len(decls) == 0 {
		return
	}
	sink.Line("/* program variables */")
	for _, d := range decls {
		sink.Line(d)
	}
	sink.Line("")
}

func emitPrototypes(report *analysis.Report, sink Sink) {
	funcs := report.SortedFunctions()
	if len(funcs) == 0 {
		return
	}
	sink.Line("/* function prototypes */")
	for _, fn := range funcs {
		sink.Line(fmt.Sprintf("void %s(void);", fn.Name))
	}
	sink.Line("")
}

// functionLabels collects the intra function goto targets: every address
// inside the function that a branch or JMP of the same function aims at.
func functionLabels(report *analysis.Report, fn *analysis.Function) map[uint16]string {
	labels := make(map[uint16]string)
	for addr := range fn.InstructionAddresses {
		inst := report.Disasm.Instructions[addr]
		if inst == nil || !inst.HasTarget || inst.Info.Mnemonic == "JSR" {
			continue
		}
		if inst.Info.Mode == m6502.Indirect {
			continue
		}
		target := report.Disasm.Normalize(inst.Target)
		if fn.InstructionAddresses[target] {
			labels[target] = fmt.Sprintf("loc_%04X", target)
		}
	}
	return labels
}

// orderedBody returns the function instructions in listing order: entry
// first, then the addresses above it, then the loop body below it.
func orderedBody(report *analysis.Report, fn *analysis.Function) []*disasm.Instruction {
	body := make([]*disasm.Instruction, 0, len(fn.InstructionAddresses))
	for _, addr := range fn.SortedInstructionAddresses() {
		if inst := report.Disasm.Instructions[addr]; inst != nil {
			body = append(body, inst)
		}
	}
	disasm.OrderForListing(fn.EntryAddress, body)
	return body
}

func emitFunctionBody(report *analysis.Report, fn *analysis.Function, sink Sink) {
	scope := &cScope{
		report: report,
		labels: functionLabels(report, fn),
	}

	sink.Line(fmt.Sprintf("void %s(void)", fn.Name))
	sink.Line("{")

	labelAddrs := make([]uint16, 0, len(scope.labels))
	for addr := range scope.labels {
		labelAddrs = append(labelAddrs, addr)
	}
	sort.Slice(labelAddrs, func(i, j int) bool { return labelAddrs[i] < labelAddrs[j] })
	for _, addr := range labelAddrs {
		label := scope.labels[addr]
		sink.Line(fmt.Sprintf("    static void *%s = &&%s_impl;", label, label))
	}
	if len(labelAddrs) > 0 {
		sink.Line("")
	}

	for _, inst := range orderedBody(report, fn) {
		if label, ok := scope.labels[inst.CPUAddress]; ok && inst.SubOrder == 0 {
			sink.Line(label + "_impl:")
		}
		operand := inst.Operand()
		if operand != "" {
			sink.Line(fmt.Sprintf("    /* %04X: %s %s */", inst.CPUAddress, inst.Info.Mnemonic, operand))
		} else {
			sink.Line(fmt.Sprintf("    /* %04X: %s */", inst.CPUAddress, inst.Info.Mnemonic))
		}
		for _, stmt := range scope.translate(inst) {
			sink.Line("    " + stmt)
		}
	}

	sink.Line("}")
	sink.Line("")
}

func emitMain(report *analysis.Report, sink Sink) {
	sink.Line("int main(void)")
	sink.Line("{")
	sink.Line("    a = x = y = 0;")
	sink.Line("    sp = 0xFF;")
	sink.Line("    status = UNUSED_FLAG;")
	sink.Line("    pc = 0x8000;")
	sink.Line("    memset(memory, 0, sizeof(memory));")
	sink.Line("    memset(stack, 0, sizeof(stack));")

	reset := report.Disasm.Normalize(report.ROM.ResetVector)
	if fn, ok := report.Functions[reset]; ok {
		sink.Line("")
		sink.Line("    " + fn.Name + "(); /* reset vector */")
	}

	sink.Line("")
	sink.Line("    for (;;) {")
	sink.Line("        /* event loop */")
	sink.Line("    }")
	sink.Line("}")
}
