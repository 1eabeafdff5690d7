package disasm

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regionAt(base uint16, code []byte) []Region {
	return []Region{{BaseAddress: base, Bytes: code}}
}

func TestDecompileLinearBody(t *testing.T) {
	// LDA #$01; BNE +2; LDA #$02; BRK
	code := []byte{0xA9, 0x01, 0xD0, 0x02, 0xA9, 0x02, 0x00}
	fn, err := DecompileFunction(0x8000, regionAt(0x8000, code))
	require.NoError(t, err)

	require.Len(t, fn.Instructions, 4)
	assert.Equal(t, uint16(0x8000), fn.Instructions[0].CPUAddress)
	assert.GreaterOrEqual(t, fn.Instructions[0].SubOrder, int32(0))
	assert.Equal(t, "sub_8000", fn.Instructions[0].Label)

	mnemonics := make([]string, 0, len(fn.Instructions))
	for _, inst := range fn.Instructions {
		mnemonics = append(mnemonics, inst.Info.Mnemonic)
	}
	assert.Equal(t, []string{"LDA", "BNE", "LDA", "BRK"}, mnemonics)

	assert.Equal(t, "loc_8006", fn.JumpTargets[0x8006])
	assert.Equal(t, "sub_8000", fn.JumpTargets[0x8000])
}

func TestDecompileEndsAtCall(t *testing.T) {
	// the conservative single function trace stops at JSR
	code := []byte{0x20, 0x10, 0x80, 0xA9, 0x01, 0x60}
	fn, err := DecompileFunction(0x8000, regionAt(0x8000, code))
	require.NoError(t, err)

	require.Len(t, fn.Instructions, 1)
	assert.Equal(t, "JSR", fn.Instructions[0].Info.Mnemonic)
}

func TestDecompileEndsAtIndirectJump(t *testing.T) {
	code := []byte{0xA9, 0x01, 0x6C, 0x00, 0x03, 0xA9, 0x02, 0x60}
	fn, err := DecompileFunction(0x8000, regionAt(0x8000, code))
	require.NoError(t, err)

	require.Len(t, fn.Instructions, 2)
	assert.Equal(t, "JMP", fn.Instructions[1].Info.Mnemonic)
	// the LDA behind the indirect jump is unreachable statically
	for _, inst := range fn.Instructions {
		assert.NotEqual(t, uint16(0x8005), inst.CPUAddress)
	}
}

func TestDecompileStopsPathAtUnknownByte(t *testing.T) {
	// branch leads to an undocumented opcode, only that path dies
	code := []byte{0xA9, 0x01, 0xD0, 0x01, 0x60, 0xFF}
	fn, err := DecompileFunction(0x8000, regionAt(0x8000, code))
	require.NoError(t, err)

	mnemonics := make([]string, 0, len(fn.Instructions))
	for _, inst := range fn.Instructions {
		mnemonics = append(mnemonics, inst.Info.Mnemonic)
	}
	assert.Equal(t, []string{"LDA", "BNE", "RTS"}, mnemonics)
}

func TestDecompileRegionMissing(t *testing.T) {
	_, err := DecompileFunction(0x4000, regionAt(0x8000, []byte{0xEA}))
	require.Error(t, err)
	assert.Equal(t, ErrRegionMissing, errors.Cause(err))
}

func TestDecompileBranchOutsideRegions(t *testing.T) {
	// BNE to an address below the region is a hard error for the function
	code := []byte{0xD0, 0x80, 0x60}
	_, err := DecompileFunction(0x8000, regionAt(0x8000, code))
	require.Error(t, err)
	assert.Equal(t, ErrRegionMissing, errors.Cause(err))
}

func TestDecompileLoopRepair(t *testing.T) {
	// body below the entry, entered by the closing JMP:
	//   8018: LDX #$00
	//   801A: INX
	//   801B..801F: NOP
	//   8020: LDA #$01   <- entry
	//   8022: JMP $8018
	code := make([]byte, 0x40)
	for i := range code {
		code[i] = 0xEA
	}
	copy(code[0x18:], []byte{0xA2, 0x00, 0xE8})
	copy(code[0x20:], []byte{0xA9, 0x01, 0x4C, 0x18, 0x80})
	code[0x25] = 0x60

	fn, err := DecompileFunction(0x8020, regionAt(0x8000, code))
	require.NoError(t, err)
	require.NotEmpty(t, fn.Instructions)

	// entry first
	assert.Equal(t, uint16(0x8020), fn.Instructions[0].CPUAddress)
	assert.Equal(t, int32(0), fn.Instructions[0].SubOrder)

	// then the body above the entry, then the loop body below it
	addrs := make([]uint16, 0, len(fn.Instructions))
	for _, inst := range fn.Instructions {
		addrs = append(addrs, inst.CPUAddress)
	}
	assert.Equal(t, []uint16{
		0x8020, 0x8022,
		0x8018, 0x801A, 0x801B, 0x801C, 0x801D, 0x801E, 0x801F,
		0x801F, // synthesized loop repair
	}, addrs)

	last := fn.Instructions[len(fn.Instructions)-1]
	assert.Equal(t, int32(1), last.SubOrder)
	assert.Equal(t, "JMP", last.Info.Mnemonic)
	assert.Equal(t, uint16(0x8020), last.Target)

	assert.Equal(t, "sub_8020", fn.JumpTargets[0x8020])
	assert.Equal(t, "loc_8018", fn.JumpTargets[0x8018])
}

func TestDecompileLoopbackAtZeroRejected(t *testing.T) {
	// a body that wraps the address space back into entry 0x0000
	code := []byte{0xEA, 0x4C, 0xFE, 0xFF}
	regions := []Region{
		{BaseAddress: 0x0000, Bytes: code},
		{BaseAddress: 0xFFFE, Bytes: []byte{0xEA, 0xEA}},
	}
	_, err := DecompileFunction(0x0000, regions)
	require.Error(t, err)
	assert.Equal(t, ErrLoopbackToZero, errors.Cause(err))
}

func TestRegionContains(t *testing.T) {
	r := Region{BaseAddress: 0x8000, Bytes: make([]byte, 0x4000)}
	assert.True(t, r.Contains(0x8000))
	assert.True(t, r.Contains(0xBFFF))
	assert.False(t, r.Contains(0xC000))
	assert.False(t, r.Contains(0x7FFF))
}
