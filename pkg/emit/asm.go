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
	"strings"
	"text/template"

	"github.com/master-g/nesrev/pkg/disasm"
	"github.com/master-g/nesrev/pkg/ines"
)

var asmHeader = template.Must(template.New("asm").Parse(
	`; ******************************************************************************
;
; {{ .Name }}
;
; Mapper:  {{ .MapperID }} ({{ .MapperName }})
; PRG:     {{ .PRGBanks }} x 16KB
; CHR:     {{ .CHRBanks }} x 8KB
; Vectors: RESET ${{ printf "%04X" .Reset }}  NMI ${{ printf "%04X" .NMI }}  IRQ ${{ printf "%04X" .IRQ }}
;
; ******************************************************************************
`))

// Asm renders the whole-program disassembly as a labeled listing.
func Asm(dr *disasm.Report, rom *ines.ROM, sink Sink) {
	name := rom.Name
	if name == "" {
		name = "rom"
	}

	var banner strings.Builder
	_ = asmHeader.Execute(&banner, struct {
		Name       string
		MapperID   uint8
		MapperName string
		PRGBanks   uint8
		CHRBanks   uint8
		Reset      uint16
		NMI        uint16
		IRQ        uint16
	}{
		Name:       name,
		MapperID:   rom.MapperID(),
		MapperName: ines.MapperName(rom.MapperID()),
		PRGBanks:   rom.Header.PRG,
		CHRBanks:   rom.Header.CHR,
		Reset:      rom.ResetVector,
		NMI:        rom.NMIVector,
		IRQ:        rom.IRQVector,
	})
	for _, line := range strings.Split(strings.TrimRight(banner.String(), "\n"), "\n") {
		sink.Line(line)
	}
	sink.Line("")

	for _, addr := range dr.SortedAddresses() {
		inst := dr.Instructions[addr]
		if inst.Label != "" {
			sink.Line("")
			sink.Line(inst.Label + ":")
		}
		sink.Line(formatListingLine(inst))
	}
}

func formatListingLine(inst *disasm.Instruction) string {
	raw := make([]string, 0, len(inst.Bytes))
	for _, b := range inst.Bytes {
		raw = append(raw, fmt.Sprintf("%02X", b))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("    $%04X: %-9s %s", inst.CPUAddress, strings.Join(raw, " "), inst.Info.Mnemonic))
	if operand := inst.Operand(); operand != "" {
		sb.WriteByte(' ')
		sb.WriteString(operand)
	}
	if inst.Comment != "" {
		for sb.Len() < 40 {
			sb.WriteByte(' ')
		}
		sb.WriteString("; ")
		sb.WriteString(inst.Comment)
	}
	return sb.String()
}
