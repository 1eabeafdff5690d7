package m6502

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentedOpcodeCount(t *testing.T) {
	count := 0
	for op := 0; op < 256; op++ {
		if Lookup(uint8(op)).Valid {
			count++
		}
	}
	assert.Equal(t, 151, count)
}

func TestSizeMatchesAddressingMode(t *testing.T) {
	for op := 0; op < 256; op++ {
		info := Lookup(uint8(op))
		if !info.Valid {
			assert.Equal(t, uint8(1), info.Size, "invalid opcode %02X must advance one byte", op)
			continue
		}
		assert.Equal(t, 1+info.Mode.OperandSize(), int(info.Size), "opcode %02X", op)
		assert.Equal(t, uint8(op), info.Opcode)
	}
}

func TestLookupKnownOpcodes(t *testing.T) {
	tests := []struct {
		opcode   uint8
		mnemonic string
		mode     AddressingMode
		size     uint8
		category Category
	}{
		{0xA9, "LDA", Immediate, 2, Load},
		{0x8D, "STA", Absolute, 3, Store},
		{0xBD, "LDA", AbsoluteX, 3, Load},
		{0xB1, "LDA", IndirectIndexed, 2, Load},
		{0x4C, "JMP", Absolute, 3, Jump},
		{0x6C, "JMP", Indirect, 3, Jump},
		{0x20, "JSR", Absolute, 3, Jump},
		{0x60, "RTS", Implied, 1, Return},
		{0x40, "RTI", Implied, 1, Return},
		{0x00, "BRK", Implied, 1, Interrupt},
		{0xD0, "BNE", Relative, 2, Branch},
		{0x18, "CLC", Implied, 1, ClearFlag},
		{0x38, "SEC", Implied, 1, SetFlag},
		{0x0A, "ASL", Accumulator, 1, Shift},
		{0xE6, "INC", ZeroPage, 2, Increment},
		{0xCA, "DEX", Implied, 1, Decrement},
		{0xC9, "CMP", Immediate, 2, Compare},
		{0x24, "BIT", ZeroPage, 2, Logic},
		{0x48, "PHA", Implied, 1, Stack},
		{0xAA, "TAX", Implied, 1, Transfer},
		{0xEA, "NOP", Implied, 1, Other},
	}
	for _, tt := range tests {
		info := Lookup(tt.opcode)
		require.True(t, info.Valid, "opcode %02X", tt.opcode)
		assert.Equal(t, tt.mnemonic, info.Mnemonic)
		assert.Equal(t, tt.mode, info.Mode)
		assert.Equal(t, tt.size, info.Size)
		assert.Equal(t, tt.category, info.Category)
	}
}

func TestUndocumentedOpcodesAreInvalid(t *testing.T) {
	for _, op := range []uint8{0x02, 0x3F, 0x80, 0xFF} {
		info := Lookup(op)
		assert.False(t, info.Valid, "opcode %02X", op)
		assert.Equal(t, uint8(1), info.Size)
	}
}

func TestResolveTargetBranches(t *testing.T) {
	bne := Lookup(0xD0)

	// forward: 8002 + 2 + 2 = 8006
	target, ok := ResolveTarget(bne, 0x8002, []byte{0x02})
	require.True(t, ok)
	assert.Equal(t, uint16(0x8006), target)

	// backward: 8014 + 2 - 6 = 8010
	target, ok = ResolveTarget(bne, 0x8014, []byte{0xFA})
	require.True(t, ok)
	assert.Equal(t, uint16(0x8010), target)

	// wrap around the address space
	target, ok = ResolveTarget(bne, 0xFFFE, []byte{0x10})
	require.True(t, ok)
	assert.Equal(t, uint16(0x0010), target)
}

func TestResolveTargetJumps(t *testing.T) {
	target, ok := ResolveTarget(Lookup(0x4C), 0x8000, []byte{0x34, 0x12})
	require.True(t, ok)
	assert.Equal(t, uint16(0x1234), target)

	target, ok = ResolveTarget(Lookup(0x20), 0x8000, []byte{0x10, 0x80})
	require.True(t, ok)
	assert.Equal(t, uint16(0x8010), target)

	// indirect jump resolves to the indirection base
	target, ok = ResolveTarget(Lookup(0x6C), 0x8000, []byte{0x00, 0x03})
	require.True(t, ok)
	assert.Equal(t, uint16(0x0300), target)

	// a plain absolute load has no control flow target
	_, ok = ResolveTarget(Lookup(0xAD), 0x8000, []byte{0x00, 0x03})
	assert.False(t, ok)
}

func TestFormatOperand(t *testing.T) {
	tests := []struct {
		opcode   uint8
		operands []byte
		target   uint16
		want     string
	}{
		{0xEA, nil, 0, ""},                    // NOP implied
		{0x0A, nil, 0, "A"},                   // ASL accumulator
		{0xA9, []byte{0x42}, 0, "#$42"},       // LDA immediate
		{0xA5, []byte{0x10}, 0, "$10"},        // LDA zero page
		{0xB5, []byte{0x10}, 0, "$10,X"},      // LDA zero page,X
		{0xB6, []byte{0x10}, 0, "$10,Y"},      // LDX zero page,Y
		{0xD0, []byte{0x02}, 0x8006, "$8006"}, // BNE resolved
		{0xAD, []byte{0x00, 0x03}, 0, "$0300"},
		{0xBD, []byte{0x00, 0x03}, 0, "$0300,X"},
		{0xB9, []byte{0x00, 0x03}, 0, "$0300,Y"},
		{0x6C, []byte{0x34, 0x12}, 0x1234, "($1234)"},
		{0xA1, []byte{0x80}, 0, "($80,X)"},
		{0xB1, []byte{0x80}, 0, "($80),Y"},
	}
	for _, tt := range tests {
		got := FormatOperand(Lookup(tt.opcode), tt.operands, tt.target)
		assert.Equal(t, tt.want, got, "opcode %02X", tt.opcode)
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, Lookup(0xD0).IsBranch())
	assert.False(t, Lookup(0x4C).IsBranch())
	assert.True(t, Lookup(0x4C).IsJump())
	assert.True(t, Lookup(0x20).IsJump())
	assert.False(t, Lookup(0xA9).IsJump())
	assert.True(t, Lookup(0x60).IsFunctionExit())
	assert.True(t, Lookup(0x40).IsFunctionExit())
	assert.False(t, Lookup(0x00).IsFunctionExit())
}

func TestModeHelpers(t *testing.T) {
	assert.False(t, Implied.HasMemoryOperand())
	assert.False(t, Accumulator.HasMemoryOperand())
	assert.False(t, Immediate.HasMemoryOperand())
	assert.False(t, Relative.HasMemoryOperand())
	assert.True(t, ZeroPage.HasMemoryOperand())
	assert.True(t, IndirectIndexed.HasMemoryOperand())

	assert.True(t, ZeroPageX.Indexed())
	assert.True(t, AbsoluteY.Indexed())
	assert.False(t, IndirectIndexed.Indexed())
	assert.False(t, Absolute.Indexed())
}
