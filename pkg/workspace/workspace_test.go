package workspace

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/master-g/nesrev/pkg/analysis"
	"github.com/master-g/nesrev/pkg/ines"
)

func testReport(t *testing.T) *analysis.Report {
	t.Helper()
	prg := make([]byte, ines.PRGBankSize)
	for i := range prg {
		prg[i] = 0xFF
	}
	// STA $2000; RTS
	copy(prg, []byte{0x8D, 0x00, 0x20, 0x60})
	prg[len(prg)-4] = 0x00
	prg[len(prg)-3] = 0x80

	image := make([]byte, ines.HeaderSize)
	copy(image, []byte{0x4E, 0x45, 0x53, 0x1A})
	image[4] = 1
	image = append(image, prg...)

	rom, err := ines.Load(image)
	require.NoError(t, err)
	return analysis.Analyze(rom)
}

func TestFromReport(t *testing.T) {
	doc := FromReport(testReport(t), "game.nes")

	assert.Equal(t, "game.nes", doc.CurrentFile)
	assert.Equal(t, []string{"game.nes"}, doc.RecentFiles)
	assert.True(t, doc.IsDisassembled)
	assert.True(t, doc.IsDecompiled)

	v, ok := doc.Variables["PPUCTRL"]
	require.True(t, ok)
	assert.Equal(t, "Byte", v.Type)

	fn, ok := doc.Functions["sub_8000"]
	require.True(t, ok)
	assert.Equal(t, "void", fn.ReturnType)
	assert.Empty(t, fn.Parameters)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.json")

	doc := FromReport(testReport(t), "game.nes")
	doc.Variables["PPUCTRL"] = VariableInfo{
		Name:        "PPUCTRL",
		Type:        "Byte",
		Description: "PPU control register",
	}
	require.NoError(t, doc.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}
