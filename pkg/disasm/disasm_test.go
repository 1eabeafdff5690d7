package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/master-g/nesrev/pkg/ines"
	"github.com/master-g/nesrev/pkg/m6502"
)

// testROM builds a single bank cartridge whose PRG starts with code and
// is padded with 0xFF, an undocumented opcode the sweep skips as data.
func testROM(t *testing.T, code []byte, reset uint16) *ines.ROM {
	t.Helper()
	return testROMFill(t, code, reset, 0xFF)
}

func testROMFill(t *testing.T, code []byte, reset uint16, fill byte) *ines.ROM {
	t.Helper()
	prg := make([]byte, ines.PRGBankSize)
	for i := range prg {
		prg[i] = fill
	}
	copy(prg, code)
	prg[len(prg)-6] = 0x00 // NMI unused
	prg[len(prg)-5] = 0x00
	prg[len(prg)-4] = byte(reset)
	prg[len(prg)-3] = byte(reset >> 8)
	prg[len(prg)-2] = 0x00 // IRQ unused
	prg[len(prg)-1] = 0x00

	image := make([]byte, ines.HeaderSize)
	copy(image, []byte{0x4E, 0x45, 0x53, 0x1A})
	image[4] = 1
	image = append(image, prg...)

	rom, err := ines.Load(image)
	require.NoError(t, err)
	return rom
}

func TestSweepDecodesNOPBank(t *testing.T) {
	rom := testROMFill(t, nil, 0x8000, 0xEA)
	report := Disassemble(rom)

	// every byte up to the vectors decodes as NOP
	nops := 0
	for _, inst := range report.Instructions {
		if inst.Info.Mnemonic == "NOP" {
			nops++
		}
	}
	assert.Equal(t, ines.PRGBankSize-6, nops)

	inst := report.Instructions[0x8000]
	require.NotNil(t, inst)
	assert.Equal(t, "NOP", inst.Info.Mnemonic)
	assert.Equal(t, "sub_8000", inst.Label)
}

func TestBranchForward(t *testing.T) {
	// LDA #$01; BNE +2; LDA #$02; BRK
	rom := testROM(t, []byte{0xA9, 0x01, 0xD0, 0x02, 0xA9, 0x02, 0x00}, 0x8000)
	report := Disassemble(rom)

	branch := report.Instructions[0x8002]
	require.NotNil(t, branch)
	require.True(t, branch.HasTarget)
	assert.Equal(t, uint16(0x8006), branch.Target)
	assert.Equal(t, "-> loc_8006", branch.Comment)

	label, ok := report.Label(0x8006)
	require.True(t, ok)
	assert.Equal(t, "loc_8006", label)

	// both loads are decoded and reachable
	require.NotNil(t, report.Instructions[0x8000])
	require.NotNil(t, report.Instructions[0x8004])
	assert.Equal(t, "LDA", report.Instructions[0x8000].Info.Mnemonic)
	assert.Equal(t, "LDA", report.Instructions[0x8004].Info.Mnemonic)
	assert.Equal(t, "BRK", report.Instructions[0x8006].Info.Mnemonic)
}

func TestCallCreatesEntryPoint(t *testing.T) {
	code := make([]byte, 0x20)
	for i := range code {
		code[i] = 0xFF
	}
	copy(code, []byte{0x20, 0x10, 0x80, 0x00}) // JSR $8010; BRK
	copy(code[0x10:], []byte{0xA9, 0xAA, 0x60}) // LDA #$AA; RTS
	rom := testROM(t, code, 0x8000)
	report := Disassemble(rom)

	assert.Equal(t, []uint16{0x8000, 0x8010}, report.EntryPoints)

	label, ok := report.Label(0x8010)
	require.True(t, ok)
	assert.Equal(t, "sub_8010", label)

	// fall-through after the call is decoded
	require.NotNil(t, report.Instructions[0x8003])
	assert.Equal(t, "BRK", report.Instructions[0x8003].Info.Mnemonic)

	jsr := report.Instructions[0x8000]
	assert.Equal(t, "-> sub_8010", jsr.Comment)
}

func TestEntryLabelsUseSubPrefix(t *testing.T) {
	rom := testROM(t, []byte{0xEA, 0x60}, 0x8000)
	report := Disassemble(rom)

	for _, entry := range report.EntryPoints {
		label, ok := report.Label(entry)
		require.True(t, ok)
		assert.Regexp(t, `^sub_[0-9A-F]{4}$`, label)
	}
}

func TestResweepFindsMisalignedTarget(t *testing.T) {
	// JMP $8004 jumps into the middle of what the linear sweep first
	// decoded as LDA #$A9, so the target needs a second sweep.
	rom := testROM(t, []byte{0x4C, 0x04, 0x80, 0xA9, 0xA9, 0x01, 0x00, 0x00}, 0x8000)
	report := Disassemble(rom)

	inst := report.Instructions[0x8004]
	require.NotNil(t, inst)
	assert.Equal(t, "LDA", inst.Info.Mnemonic)
	assert.Equal(t, "#$01", inst.Operand())

	label, ok := report.Label(0x8004)
	require.True(t, ok)
	assert.Equal(t, "loc_8004", label)
}

func TestRoundTripBytes(t *testing.T) {
	rom := testROM(t, []byte{0xA9, 0x01, 0x8D, 0x00, 0x20, 0x4C, 0x00, 0x80}, 0x8000)
	report := Disassemble(rom)
	prg := rom.PRG()

	for _, addr := range report.SortedAddresses() {
		inst := report.Instructions[addr]
		require.Equal(t, int(inst.Info.Size), len(inst.Bytes), "address %04X", addr)
		offset := int(inst.ROMOffset)
		assert.Equal(t, prg[offset:offset+len(inst.Bytes)], []byte(inst.Bytes), "address %04X", addr)
	}
}

func TestLabelsCoverResolvedTargets(t *testing.T) {
	rom := testROM(t, []byte{0xA9, 0x01, 0xD0, 0x02, 0xA9, 0x02, 0x4C, 0x00, 0x80}, 0x8000)
	report := Disassemble(rom)

	for _, inst := range report.Instructions {
		if !inst.HasTarget || inst.Info.Mode == m6502.Indirect {
			continue
		}
		if report.Instruction(inst.Target) == nil {
			continue
		}
		_, ok := report.Label(inst.Target)
		assert.True(t, ok, "target %04X of %04X has no label", inst.Target, inst.CPUAddress)
	}
}

func TestMirroredVectorSingleBank(t *testing.T) {
	// single 16KB bank, reset vector in the mirrored upper half
	rom := testROM(t, []byte{0xEA, 0x60}, 0xC000)
	report := Disassemble(rom)

	inst := report.Instruction(0xC000)
	require.NotNil(t, inst)
	assert.Equal(t, uint16(0x8000), inst.CPUAddress)
	assert.Equal(t, "sub_8000", inst.Label)
}
