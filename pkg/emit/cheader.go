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

	"github.com/master-g/nesrev/pkg/analysis"
)

// CHeader renders the header matching the C translation unit: hardware
// macros, the exported CPU state and one prototype per function.
func CHeader(report *analysis.Report, sink Sink) {
	name := romName(report)
	guard := guardName(name)

	sink.Line(fmt.Sprintf("#ifndef %s", guard))
	sink.Line(fmt.Sprintf("#define %s", guard))
	sink.Line("")
	sink.Line("#include <stdint.h>")
	sink.Line("#include <stdbool.h>")
	sink.Line("")

	if hw := hardwareVariables(report); len(hw) > 0 {
		sink.Line("/* memory mapped hardware registers */")
		for _, v := range hw {
			sink.Line(fmt.Sprintf("#define %s (*(volatile uint8_t *)0x%04X)", v.Name, v.Address))
		}
		sink.Line("")
	}

	sink.Line("/* CPU register mirrors */")
	sink.Line("extern uint8_t a, x, y, status, sp;")
	sink.Line("extern uint16_t pc;")
	sink.Line("extern uint8_t memory[0x10000];")
	sink.Line("extern uint8_t stack[0x100];")
	sink.Line("")

	if funcs := report.SortedFunctions(); len(funcs) > 0 {
		sink.Line("/* function prototypes */")
		for _, fn := range funcs {
			sink.Line(fmt.Sprintf("void %s(void);", fn.Name))
		}
		sink.Line("")
	}

	sink.Line(fmt.Sprintf("#endif /* %s */", guard))
}

// guardName turns a ROM name into an include guard identifier.
func guardName(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	guard := sb.String()
	if guard == "" || (guard[0] >= '0' && guard[0] <= '9') {
		guard = "_" + guard
	}
	return guard + "_H"
}
