package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/master-g/nesrev/pkg/analysis"
	"github.com/master-g/nesrev/pkg/ines"
)

func testReport(t *testing.T, code []byte, reset uint16) *analysis.Report {
	t.Helper()
	prg := make([]byte, ines.PRGBankSize)
	for i := range prg {
		prg[i] = 0xFF
	}
	copy(prg, code)
	prg[len(prg)-6] = 0x00
	prg[len(prg)-5] = 0x00
	prg[len(prg)-4] = byte(reset)
	prg[len(prg)-3] = byte(reset >> 8)
	prg[len(prg)-2] = 0x00
	prg[len(prg)-1] = 0x00

	image := make([]byte, ines.HeaderSize)
	copy(image, []byte{0x4E, 0x45, 0x53, 0x1A})
	image[4] = 1
	image = append(image, prg...)

	rom, err := ines.Load(image)
	require.NoError(t, err)
	rom.Name = "testrom"
	return analysis.Analyze(rom)
}

func TestBufferSink(t *testing.T) {
	b := &Buffer{}
	b.Line("one")
	b.Line("two")
	assert.Equal(t, []string{"one", "two"}, b.Lines())
	assert.Equal(t, "one\ntwo\n", b.String())
}

func TestWriterSink(t *testing.T) {
	var sb strings.Builder
	w := &Writer{W: &sb}
	w.Line("hello")
	require.NoError(t, w.Err())
	assert.Equal(t, "hello\n", sb.String())
}

func TestAsmListing(t *testing.T) {
	// LDA #$01; BNE +2; LDA #$02; BRK
	report := testReport(t, []byte{0xA9, 0x01, 0xD0, 0x02, 0xA9, 0x02, 0x00}, 0x8000)

	sink := &Buffer{}
	Asm(report.Disasm, report.ROM, sink)
	out := sink.String()

	assert.Contains(t, out, "; testrom")
	assert.Contains(t, out, "Mapper:  0 (No Mapper)")
	assert.Contains(t, out, "sub_8000:")
	assert.Contains(t, out, "loc_8006:")
	assert.Contains(t, out, "LDA #$01")
	assert.Contains(t, out, "; -> loc_8006")
}

func TestCHardwareMacro(t *testing.T) {
	// STA $2000; RTS
	report := testReport(t, []byte{0x8D, 0x00, 0x20, 0x60}, 0x8000)

	sink := &Buffer{}
	C(report, sink)
	out := sink.String()

	assert.Contains(t, out, "#define PPUCTRL (*(volatile uint8_t *)0x2000)")
	assert.Contains(t, out, "PPUCTRL = a;")
}

func TestCFlagConstants(t *testing.T) {
	report := testReport(t, []byte{0x60}, 0x8000)

	sink := &Buffer{}
	C(report, sink)
	out := sink.String()

	for _, line := range []string{
		"#define CARRY_FLAG 0x01",
		"#define ZERO_FLAG 0x02",
		"#define INTERRUPT_FLAG 0x04",
		"#define DECIMAL_FLAG 0x08",
		"#define BREAK_FLAG 0x10",
		"#define UNUSED_FLAG 0x20",
		"#define OVERFLOW_FLAG 0x40",
		"#define NEGATIVE_FLAG 0x80",
	} {
		assert.Contains(t, out, line)
	}
}

func TestCArrayDeclarationAndIndexing(t *testing.T) {
	// LDA $0300,X; RTS
	report := testReport(t, []byte{0xBD, 0x00, 0x03, 0x60}, 0x8000)

	sink := &Buffer{}
	C(report, sink)
	out := sink.String()

	assert.Contains(t, out, "static uint8_t ram_0300[256];")
	assert.Contains(t, out, "a = ram_0300[x];")
}

func TestCBranchUsesComputedGoto(t *testing.T) {
	// LDA #$01; BNE +2; LDA #$02; (target) RTS
	report := testReport(t, []byte{0xA9, 0x01, 0xD0, 0x02, 0xA9, 0x02, 0x60}, 0x8000)

	sink := &Buffer{}
	C(report, sink)
	out := sink.String()

	assert.Contains(t, out, "static void *loc_8006 = &&loc_8006_impl;")
	assert.Contains(t, out, "if (!(status & ZERO_FLAG)) goto *loc_8006;")
	assert.Contains(t, out, "loc_8006_impl:")
}

func TestCCallsBetweenFunctions(t *testing.T) {
	code := make([]byte, 0x20)
	for i := range code {
		code[i] = 0xFF
	}
	copy(code, []byte{0x20, 0x10, 0x80, 0x60}) // JSR $8010; RTS
	copy(code[0x10:], []byte{0xA9, 0xAA, 0x60})
	report := testReport(t, code, 0x8000)

	sink := &Buffer{}
	C(report, sink)
	out := sink.String()

	assert.Contains(t, out, "void sub_8000(void);")
	assert.Contains(t, out, "void sub_8010(void);")
	assert.Contains(t, out, "sub_8010();")
	assert.Contains(t, out, "sub_8000(); /* reset vector */")
}

func TestCMainPrologue(t *testing.T) {
	report := testReport(t, []byte{0x60}, 0x8000)

	sink := &Buffer{}
	C(report, sink)
	out := sink.String()

	assert.Contains(t, out, "int main(void)")
	assert.Contains(t, out, "sp = 0xFF;")
	assert.Contains(t, out, "status = UNUSED_FLAG;")
	assert.Contains(t, out, "pc = 0x8000;")
	assert.Contains(t, out, "memset(memory, 0, sizeof(memory));")
	assert.Contains(t, out, "for (;;) {")
}

func TestCDeterministic(t *testing.T) {
	code := []byte{0xA9, 0x01, 0x8D, 0x00, 0x20, 0xBD, 0x00, 0x03, 0x60}
	first := testReport(t, code, 0x8000)
	second := testReport(t, code, 0x8000)

	a, b := &Buffer{}, &Buffer{}
	C(first, a)
	C(second, b)
	assert.Equal(t, a.String(), b.String())

	h1, h2 := &Buffer{}, &Buffer{}
	CHeader(first, h1)
	CHeader(second, h2)
	assert.Equal(t, h1.String(), h2.String())
}

func TestCHeaderStructure(t *testing.T) {
	report := testReport(t, []byte{0x8D, 0x00, 0x20, 0x60}, 0x8000)

	sink := &Buffer{}
	CHeader(report, sink)
	out := sink.String()

	assert.True(t, strings.HasPrefix(out, "#ifndef TESTROM_H\n#define TESTROM_H\n"))
	assert.Contains(t, out, "#define PPUCTRL (*(volatile uint8_t *)0x2000)")
	assert.Contains(t, out, "extern uint8_t a, x, y, status, sp;")
	assert.Contains(t, out, "extern uint16_t pc;")
	assert.Contains(t, out, "void sub_8000(void);")
	assert.True(t, strings.HasSuffix(out, "#endif /* TESTROM_H */\n"))
}

func TestGuardName(t *testing.T) {
	assert.Equal(t, "SUPER_MARIO_H", guardName("super-mario"))
	assert.Equal(t, "_1942_H", guardName("1942"))
	assert.Equal(t, "ROM_H", guardName("rom"))
}
