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

	"github.com/master-g/nesrev/pkg/analysis"
	"github.com/master-g/nesrev/pkg/disasm"
	"github.com/master-g/nesrev/pkg/m6502"
)

// cScope carries the context one function body is translated in.
type cScope struct {
	report *analysis.Report
	// labels maps intra function goto targets to their label names.
	labels map[uint16]string
}

// declaredInUnit reports whether the variable gets its own static
// declaration in the translation unit. RAM below the PPU registers and
// ROM data do; everything in the hardware and expansion ranges is reached
// through the register macros or the memory array.
func declaredInUnit(v *analysis.Variable) bool {
	if v.IsHardware() {
		return false
	}
	return v.Address < 0x2000 || v.Address >= 0x8000
}

// memExpr renders a direct reference to a memory location.
func (s *cScope) memExpr(addr uint16) string {
	if v, ok := s.report.Variables[addr]; ok {
		if v.IsHardware() {
			return v.Name
		}
		if declaredInUnit(v) {
			if v.Type == analysis.TypeArray || v.Type == analysis.TypePointer {
				return v.Name + "[0]"
			}
			return v.Name
		}
	}
	return fmt.Sprintf("memory[0x%04X]", addr)
}

// indexedExpr renders a reference offset by an index register.
func (s *cScope) indexedExpr(addr uint16, reg string) string {
	if v, ok := s.report.Variables[addr]; ok {
		if declaredInUnit(v) && v.Type == analysis.TypeArray {
			return fmt.Sprintf("%s[%s]", v.Name, reg)
		}
	}
	return fmt.Sprintf("memory[(uint16_t)(0x%04X + %s)]", addr, reg)
}

// operandExpr renders the C expression of the instruction operand. The
// same expression serves as lvalue for stores and read-modify-write
// instructions.
func (s *cScope) operandExpr(inst *disasm.Instruction) string {
	switch inst.Info.Mode {
	case m6502.Accumulator:
		return "a"
	case m6502.Immediate:
		return fmt.Sprintf("0x%02X", inst.Bytes[1])
	case m6502.ZeroPage, m6502.Absolute:
		return s.memExpr(analysis.OperandBase(inst))
	case m6502.ZeroPageX, m6502.AbsoluteX:
		return s.indexedExpr(analysis.OperandBase(inst), "x")
	case m6502.ZeroPageY, m6502.AbsoluteY:
		return s.indexedExpr(analysis.OperandBase(inst), "y")
	case m6502.IndexedIndirect:
		zp := inst.Bytes[1]
		return fmt.Sprintf(
			"memory[(uint16_t)(memory[(uint8_t)(0x%02X + x)] | (memory[(uint8_t)(0x%02X + x + 1)] << 8))]",
			zp, zp)
	case m6502.IndirectIndexed:
		zp := uint16(inst.Bytes[1])
		if v, ok := s.report.Variables[zp]; ok && declaredInUnit(v) && v.Type == analysis.TypePointer {
			return fmt.Sprintf("memory[(uint16_t)((%s[0] | (%s[1] << 8)) + y)]", v.Name, v.Name)
		}
		return fmt.Sprintf(
			"memory[(uint16_t)((memory[0x%02X] | (memory[0x%02X + 1] << 8)) + y)]",
			zp, zp)
	default:
		return ""
	}
}

func zn(expr string) string {
	return fmt.Sprintf(
		"status = (status & ~(ZERO_FLAG | NEGATIVE_FLAG)) | ((%s) == 0 ? ZERO_FLAG : 0) | (((%s) & 0x80) ? NEGATIVE_FLAG : 0);",
		expr, expr)
}

var transferOps = map[string][2]string{
	"TAX": {"x", "a"},
	"TAY": {"y", "a"},
	"TXA": {"a", "x"},
	"TYA": {"a", "y"},
	"TSX": {"x", "sp"},
	"TXS": {"sp", "x"},
}

var branchConds = map[string]string{
	"BPL": "!(status & NEGATIVE_FLAG)",
	"BMI": "(status & NEGATIVE_FLAG)",
	"BVC": "!(status & OVERFLOW_FLAG)",
	"BVS": "(status & OVERFLOW_FLAG)",
	"BCC": "!(status & CARRY_FLAG)",
	"BCS": "(status & CARRY_FLAG)",
	"BNE": "!(status & ZERO_FLAG)",
	"BEQ": "(status & ZERO_FLAG)",
}

var setFlagOps = map[string]string{
	"SEC": "CARRY_FLAG",
	"SEI": "INTERRUPT_FLAG",
	"SED": "DECIMAL_FLAG",
}

var clearFlagOps = map[string]string{
	"CLC": "CARRY_FLAG",
	"CLI": "INTERRUPT_FLAG",
	"CLD": "DECIMAL_FLAG",
	"CLV": "OVERFLOW_FLAG",
}

// registerOf maps a load, store or register step mnemonic to the CPU
// register it works on.
func registerOf(mnemonic string) string {
	switch mnemonic[2] {
	case 'X':
		return "x"
	case 'Y':
		return "y"
	default:
		return "a"
	}
}

// translate renders one instruction as C statements, dispatching over the
// instruction category.
func (s *cScope) translate(inst *disasm.Instruction) []string {
	info := inst.Info
	expr := s.operandExpr(inst)

	switch info.Category {
	case m6502.Load:
		reg := registerOf(info.Mnemonic)
		return []string{
			fmt.Sprintf("%s = %s;", reg, expr),
			zn(reg),
		}

	case m6502.Store:
		return []string{fmt.Sprintf("%s = %s;", expr, registerOf(info.Mnemonic))}

	case m6502.Transfer:
		op := transferOps[info.Mnemonic]
		lines := []string{fmt.Sprintf("%s = %s;", op[0], op[1])}
		if info.Mnemonic != "TXS" {
			lines = append(lines, zn(op[0]))
		}
		return lines

	case m6502.Stack:
		switch info.Mnemonic {
		case "PHA":
			return []string{"stack[sp--] = a;"}
		case "PHP":
			return []string{"stack[sp--] = status;"}
		case "PLA":
			return []string{"a = stack[++sp];", zn("a")}
		default: // PLP
			return []string{"status = stack[++sp];"}
		}

	case m6502.Arithmetic:
		return s.arithmetic(info.Mnemonic, expr)

	case m6502.Increment, m6502.Decrement:
		return s.step(inst, expr)

	case m6502.Shift:
		return s.shift(inst, expr)

	case m6502.Logic:
		return s.logic(info.Mnemonic, expr)

	case m6502.Compare:
		reg := registerOf(info.Mnemonic)
		return []string{fmt.Sprintf(
			"status = (status & ~(CARRY_FLAG | ZERO_FLAG | NEGATIVE_FLAG)) | (%s >= (%s) ? CARRY_FLAG : 0) | (%s == (%s) ? ZERO_FLAG : 0) | (((%s - (%s)) & 0x80) ? NEGATIVE_FLAG : 0);",
			reg, expr, reg, expr, reg, expr)}

	case m6502.Branch:
		return s.branch(inst)

	case m6502.Jump:
		return s.jump(inst)

	case m6502.Return:
		if info.Mnemonic == "RTI" {
			return []string{"status = stack[++sp];", "return;"}
		}
		return []string{"return;"}

	case m6502.SetFlag:
		return []string{fmt.Sprintf("status |= %s;", setFlagOps[info.Mnemonic])}

	case m6502.ClearFlag:
		return []string{fmt.Sprintf("status &= ~%s;", clearFlagOps[info.Mnemonic])}

	case m6502.Interrupt:
		return []string{
			"stack[sp--] = (uint8_t)((pc + 2) >> 8);",
			"stack[sp--] = (uint8_t)(pc + 2);",
			"stack[sp--] = status | BREAK_FLAG;",
			"status |= INTERRUPT_FLAG;",
			"pc = memory[0xFFFE] | (memory[0xFFFF] << 8);",
			"return;",
		}

	default:
		return []string{"/* NOP */"}
	}
}

func (s *cScope) arithmetic(mnemonic, expr string) []string {
	if mnemonic == "ADC" {
		return []string{
			"{",
			fmt.Sprintf("    uint16_t sum = a + (%s) + ((status & CARRY_FLAG) ? 1 : 0);", expr),
			fmt.Sprintf("    status = (status & ~(CARRY_FLAG | OVERFLOW_FLAG)) | (sum > 0xFF ? CARRY_FLAG : 0) | ((~(a ^ (%s)) & (a ^ sum) & 0x80) ? OVERFLOW_FLAG : 0);", expr),
			"    a = (uint8_t)sum;",
			"    " + zn("a"),
			"}",
		}
	}
	return []string{
		"{",
		fmt.Sprintf("    uint16_t diff = a - (%s) - ((status & CARRY_FLAG) ? 0 : 1);", expr),
		fmt.Sprintf("    status = (status & ~(CARRY_FLAG | OVERFLOW_FLAG)) | (diff < 0x100 ? CARRY_FLAG : 0) | (((a ^ (%s)) & (a ^ diff) & 0x80) ? OVERFLOW_FLAG : 0);", expr),
		"    a = (uint8_t)diff;",
		"    " + zn("a"),
		"}",
	}
}

// step handles the increment and decrement group. Register steps work in
// place; memory steps go through a temporary so a hardware register is
// read and written exactly once.
func (s *cScope) step(inst *disasm.Instruction, expr string) []string {
	op := "+"
	if inst.Info.Category == m6502.Decrement {
		op = "-"
	}
	switch inst.Info.Mnemonic {
	case "INC", "DEC":
		return []string{
			"{",
			fmt.Sprintf("    uint8_t tmp = %s;", expr),
			fmt.Sprintf("    tmp = (tmp %s 1) & 0xFF;", op),
			fmt.Sprintf("    %s = tmp;", expr),
			"    " + zn("tmp"),
			"}",
		}
	default:
		reg := registerOf(inst.Info.Mnemonic)
		return []string{
			fmt.Sprintf("%s = (%s %s 1) & 0xFF;", reg, reg, op),
			zn(reg),
		}
	}
}

func (s *cScope) shift(inst *disasm.Instruction, expr string) []string {
	if inst.Info.Mode == m6502.Accumulator {
		body := shiftBody(inst.Info.Mnemonic, "a")
		switch inst.Info.Mnemonic {
		case "ROL", "ROR":
			// the rotate body declares a temporary, keep it scoped
			lines := []string{"{"}
			for _, l := range body {
				lines = append(lines, "    "+l)
			}
			return append(lines, "}")
		default:
			return body
		}
	}
	lines := []string{
		"{",
		fmt.Sprintf("    uint8_t tmp = %s;", expr),
	}
	for _, l := range shiftBody(inst.Info.Mnemonic, "tmp") {
		lines = append(lines, "    "+l)
	}
	lines = append(lines, fmt.Sprintf("    %s = tmp;", expr), "}")
	return lines
}

func shiftBody(mnemonic, t string) []string {
	switch mnemonic {
	case "ASL":
		return []string{
			fmt.Sprintf("status = (status & ~CARRY_FLAG) | ((%s & 0x80) ? CARRY_FLAG : 0);", t),
			fmt.Sprintf("%s = (%s << 1) & 0xFF;", t, t),
			zn(t),
		}
	case "LSR":
		return []string{
			fmt.Sprintf("status = (status & ~CARRY_FLAG) | ((%s & 0x01) ? CARRY_FLAG : 0);", t),
			fmt.Sprintf("%s = %s >> 1;", t, t),
			zn(t),
		}
	case "ROL":
		return []string{
			"uint8_t carry = (status & CARRY_FLAG) ? 1 : 0;",
			fmt.Sprintf("status = (status & ~CARRY_FLAG) | ((%s & 0x80) ? CARRY_FLAG : 0);", t),
			fmt.Sprintf("%s = ((%s << 1) | carry) & 0xFF;", t, t),
			zn(t),
		}
	default: // ROR
		return []string{
			"uint8_t carry = (status & CARRY_FLAG) ? 0x80 : 0;",
			fmt.Sprintf("status = (status & ~CARRY_FLAG) | ((%s & 0x01) ? CARRY_FLAG : 0);", t),
			fmt.Sprintf("%s = (%s >> 1) | carry;", t, t),
			zn(t),
		}
	}
}

func (s *cScope) logic(mnemonic, expr string) []string {
	switch mnemonic {
	case "AND":
		return []string{fmt.Sprintf("a &= %s;", expr), zn("a")}
	case "ORA":
		return []string{fmt.Sprintf("a |= %s;", expr), zn("a")}
	case "EOR":
		return []string{fmt.Sprintf("a ^= %s;", expr), zn("a")}
	default: // BIT
		return []string{fmt.Sprintf(
			"status = (status & ~(ZERO_FLAG | OVERFLOW_FLAG | NEGATIVE_FLAG)) | (((a & (%s)) == 0) ? ZERO_FLAG : 0) | (((%s) & 0x40) ? OVERFLOW_FLAG : 0) | (((%s) & 0x80) ? NEGATIVE_FLAG : 0);",
			expr, expr, expr)}
	}
}

func (s *cScope) branch(inst *disasm.Instruction) []string {
	target := s.report.Disasm.Normalize(inst.Target)
	label, ok := s.labels[target]
	if !ok {
		return []string{fmt.Sprintf("/* %s $%04X - target outside function */", inst.Info.Mnemonic, inst.Target)}
	}
	return []string{fmt.Sprintf("if (%s) goto *%s;", branchConds[inst.Info.Mnemonic], label)}
}

func (s *cScope) jump(inst *disasm.Instruction) []string {
	if inst.Info.Mnemonic == "JSR" {
		target := s.report.Disasm.Normalize(inst.Target)
		if fn, ok := s.report.Functions[target]; ok {
			return []string{fn.Name + "();"}
		}
		return []string{fmt.Sprintf("/* JSR $%04X - callee not decoded */", inst.Target)}
	}
	if inst.Info.Mode == m6502.Indirect {
		return []string{
			fmt.Sprintf("/* JMP ($%04X) - runtime target unknown */", inst.Target),
			"return;",
		}
	}
	target := s.report.Disasm.Normalize(inst.Target)
	if label, ok := s.labels[target]; ok {
		return []string{fmt.Sprintf("goto *%s;", label)}
	}
	if fn, ok := s.report.Functions[target]; ok {
		// tail jump into another routine
		return []string{fn.Name + "();", "return;"}
	}
	return []string{
		fmt.Sprintf("/* JMP $%04X - target outside function */", inst.Target),
		"return;",
	}
}
