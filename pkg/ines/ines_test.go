package ines

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildImage(prgBanks, chrBanks uint8, flag6 uint8) []byte {
	image := make([]byte, HeaderSize)
	copy(image, []byte{0x4E, 0x45, 0x53, 0x1A})
	image[4] = prgBanks
	image[5] = chrBanks
	image[6] = flag6

	prg := make([]byte, int(prgBanks)*PRGBankSize)
	// reset $8000, NMI $8100, IRQ $8200
	prg[len(prg)-6] = 0x00
	prg[len(prg)-5] = 0x81
	prg[len(prg)-4] = 0x00
	prg[len(prg)-3] = 0x80
	prg[len(prg)-2] = 0x00
	prg[len(prg)-1] = 0x82

	image = append(image, prg...)
	image = append(image, make([]byte, int(chrBanks)*CHRBankSize)...)
	return image
}

func TestLoadParsesImage(t *testing.T) {
	rom, err := Load(buildImage(2, 1, 0x01))
	require.NoError(t, err)

	assert.Equal(t, HeaderSize, rom.PRGOffset)
	assert.Equal(t, HeaderSize+2*PRGBankSize, rom.CHROffset)
	assert.Len(t, rom.PRG(), 2*PRGBankSize)
	assert.Len(t, rom.CHR(), CHRBankSize)

	assert.Equal(t, uint16(0x8000), rom.ResetVector)
	assert.Equal(t, uint16(0x8100), rom.NMIVector)
	assert.Equal(t, uint16(0x8200), rom.IRQVector)
	assert.Equal(t, []uint16{0x8000}, rom.EntryPoints)

	assert.Equal(t, uint8(0), rom.MapperID())
	assert.Equal(t, MirroringVertical, rom.Header.Mirroring())
	assert.False(t, rom.Header.HasBattery())
}

func TestLoadRejectsBadMagic(t *testing.T) {
	image := buildImage(1, 0, 0)
	image[0] = 'X'

	_, err := Load(image)
	require.Error(t, err)
	assert.Equal(t, ErrInvalidFormat, errors.Cause(err))
}

func TestLoadRejectsShortBuffer(t *testing.T) {
	_, err := Load([]byte{0x4E, 0x45, 0x53})
	require.Error(t, err)
	assert.Equal(t, ErrInvalidFormat, errors.Cause(err))
}

func TestLoadRejectsOversizedBanks(t *testing.T) {
	image := buildImage(1, 0, 0)
	image[4] = 8 // claims 128KB PRG in a 16KB image

	_, err := Load(image)
	require.Error(t, err)
	assert.Equal(t, ErrInvalidFormat, errors.Cause(err))
}

func TestLoadSkipsTrainer(t *testing.T) {
	image := make([]byte, HeaderSize)
	copy(image, []byte{0x4E, 0x45, 0x53, 0x1A})
	image[4] = 1
	image[6] = 0x04 // trainer present

	trainer := make([]byte, TrainerSize)
	prg := make([]byte, PRGBankSize)
	prg[0] = 0xEA
	prg[len(prg)-4] = 0x00
	prg[len(prg)-3] = 0x80

	image = append(image, trainer...)
	image = append(image, prg...)

	rom, err := Load(image)
	require.NoError(t, err)
	assert.Equal(t, HeaderSize+TrainerSize, rom.PRGOffset)
	assert.Equal(t, uint8(0xEA), rom.PRG()[0])
	assert.Equal(t, uint16(0x8000), rom.ResetVector)
}

func TestMirroringFourScreenOverride(t *testing.T) {
	rom, err := Load(buildImage(1, 0, 0x08|0x01))
	require.NoError(t, err)
	assert.Equal(t, MirroringFourScreen, rom.Header.Mirroring())
}

func TestMapperNibbles(t *testing.T) {
	image := buildImage(1, 0, 0x40) // low nibble 4
	image[7] = 0x10                 // high nibble 1
	rom, err := Load(image)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x14), rom.MapperID())
}

func TestMapperName(t *testing.T) {
	assert.Equal(t, "No Mapper", MapperName(0))
	assert.Equal(t, "MMC1", MapperName(1))
	assert.Equal(t, "Unknown", MapperName(200))
}
